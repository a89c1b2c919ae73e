package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brokerconnect/server/internal/models"
)

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db := newTestDatabase(t)
	seedUser(t, db, "user-1", models.RoleClient)

	err := db.CreateUser(&models.User{
		ID:           "user-2",
		Email:        "user-1@test.com",
		Name:         "Imposter",
		Phone:        "+256700000001",
		PasswordHash: "hash",
		Role:         models.RoleClient,
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestGetUserByEmail(t *testing.T) {
	db := newTestDatabase(t)
	seedUser(t, db, "user-1", models.RoleClient)

	u, err := db.GetUserByEmail("user-1@test.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", u.ID)
	assert.Equal(t, models.RoleClient, u.Role)
	assert.Nil(t, u.Broker)

	_, err = db.GetUserByEmail("nobody@test.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetUserByID_BrokerProfile(t *testing.T) {
	db := newTestDatabase(t)
	seedBroker(t, db, "broker-1")

	u, err := db.GetUserByID("broker-1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleBroker, u.Role)
	require.NotNil(t, u.Broker)
	assert.Equal(t, "BL001", u.Broker.LicenseNumber)
	assert.Equal(t, "CM12345678901234", u.Broker.NationalID)
	assert.Equal(t, models.VerificationPending, u.Broker.VerificationStatus)
}

func TestListBrokers(t *testing.T) {
	db := newTestDatabase(t)
	seedUser(t, db, "client-1", models.RoleClient)
	seedBroker(t, db, "broker-1")
	seedBroker(t, db, "broker-2")

	brokers, err := db.ListBrokers()
	require.NoError(t, err)
	require.Len(t, brokers, 2)
	for _, b := range brokers {
		assert.Equal(t, models.RoleBroker, b.Role)
		assert.NotNil(t, b.Broker)
	}
}

func TestListUsers(t *testing.T) {
	db := newTestDatabase(t)
	seedUser(t, db, "client-1", models.RoleClient)
	seedBroker(t, db, "broker-1")

	users, err := db.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 2)
}

func TestSetBrokerVerification(t *testing.T) {
	db := newTestDatabase(t)
	seedBroker(t, db, "broker-1")

	require.NoError(t, db.SetBrokerVerification("broker-1", models.VerificationVerified, true))

	u, err := db.GetUserByID("broker-1")
	require.NoError(t, err)
	assert.True(t, u.IsVerified)
	require.NotNil(t, u.Broker)
	assert.Equal(t, models.VerificationVerified, u.Broker.VerificationStatus)

	assert.ErrorIs(t, db.SetBrokerVerification("missing", models.VerificationVerified, true), ErrNotFound)
}
