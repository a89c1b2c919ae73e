package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brokerconnect/server/config"
	"brokerconnect/server/internal/auth"
	"brokerconnect/server/internal/database"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabase(":memory:")
	require.NoError(t, err)
	// A pooled :memory: connection per goroutine would each see its own empty
	// database, so pin the pool to one connection.
	db.GetDB().SetMaxOpenConns(1)
	require.NoError(t, db.InitSchema())
	t.Cleanup(func() { db.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)

	cfg := &config.Config{Environment: "production"}
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	handler := NewHandler(db, tokens, cfg, logger)

	router := gin.New()
	SetupRoutes(router, handler)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	return list
}

// registerUser creates an account through the public endpoint and returns the
// user id and a bearer token.
func registerUser(t *testing.T, router *gin.Engine, name, email, role string) (string, string) {
	t.Helper()

	req := map[string]interface{}{
		"name":     name,
		"email":    email,
		"phone":    "+256700000000",
		"password": "password123",
		"role":     role,
	}
	if role == "broker" {
		req["licenseNumber"] = "BL001"
		req["nin"] = "CM12345678901234"
	}

	w := doRequest(t, router, http.MethodPost, "/api/auth/register", "", req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	user := body["user"].(map[string]interface{})
	return user["id"].(string), body["token"].(string)
}

func createProperty(t *testing.T, router *gin.Engine, brokerToken, title string) string {
	t.Helper()
	w := doRequest(t, router, http.MethodPost, "/api/properties", brokerToken, map[string]interface{}{
		"title":    title,
		"category": "house",
		"price":    250000,
		"district": "Kampala",
		"address":  "Plot 1, Main Street",
		"size":     120,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody(t, w)["propertyId"].(string)
}

func createBooking(t *testing.T, router *gin.Engine, clientToken, brokerID, propertyID string) string {
	t.Helper()
	w := doRequest(t, router, http.MethodPost, "/api/bookings", clientToken, map[string]interface{}{
		"brokerId":    brokerID,
		"propertyId":  propertyID,
		"visitDate":   "2025-06-01",
		"visitTime":   "14:00",
		"clientName":  "Jane Client",
		"clientPhone": "+256700000002",
		"message":     "First visit",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	booking := decodeBody(t, w)["booking"].(map[string]interface{})
	return booking["id"].(string)
}

func unreadNotificationCount(t *testing.T, router *gin.Engine, token string) float64 {
	t.Helper()
	w := doRequest(t, router, http.MethodGet, "/api/notifications/unread-count", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	return decodeBody(t, w)["count"].(float64)
}

func TestAuthMiddleware(t *testing.T) {
	router := newTestServer(t)

	w := doRequest(t, router, http.MethodGet, "/api/bookings/client", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/bookings/client", "not-a-token", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	router := newTestServer(t)
	registerUser(t, router, "Jane Client", "jane@test.com", "client")

	// Duplicate email is rejected
	w := doRequest(t, router, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name": "Jane Again", "email": "jane@test.com", "phone": "+256700000000",
		"password": "password123", "role": "client",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email": "jane@test.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])

	w = doRequest(t, router, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email": "jane@test.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := body["token"].(string)
	w = doRequest(t, router, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jane@test.com", decodeBody(t, w)["email"])
}

// TestBookingLifecycle walks a visit request through the full negotiation:
// pending, broker confirmation, broker reschedule, client acceptance. Each step
// is checked against the notifications it produces for the other party.
func TestBookingLifecycle(t *testing.T) {
	router := newTestServer(t)
	brokerID, brokerToken := registerUser(t, router, "Bob Broker", "bob@test.com", "broker")
	_, clientToken := registerUser(t, router, "Jane Client", "jane@test.com", "client")
	propertyID := createProperty(t, router, brokerToken, "Lakeside Villa")

	bookingID := createBooking(t, router, clientToken, brokerID, propertyID)

	// The broker is notified of the new pending request
	assert.Equal(t, float64(1), unreadNotificationCount(t, router, brokerToken))
	w := doRequest(t, router, http.MethodGet, "/api/notifications", brokerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	notifications := decodeList(t, w)
	require.Len(t, notifications, 1)
	assert.Equal(t, "New Property Visit Request", notifications[0]["title"])
	assert.Contains(t, notifications[0]["message"], "Jane Client wants to visit Lakeside Villa")

	// Broker confirms
	w = doRequest(t, router, http.MethodPut, "/api/bookings/"+bookingID+"/status", brokerToken,
		map[string]interface{}{"status": "confirmed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(1), unreadNotificationCount(t, router, clientToken))

	// Broker proposes a new slot
	w = doRequest(t, router, http.MethodPut, "/api/bookings/"+bookingID+"/reschedule", brokerToken,
		map[string]interface{}{"visitDate": "2025-06-03", "visitTime": "10:00", "message": "Morning instead"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, router, http.MethodGet, "/api/bookings/client", clientToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	bookings := decodeList(t, w)
	require.Len(t, bookings, 1)
	assert.Equal(t, "reschedule_pending", bookings[0]["status"])
	assert.Equal(t, "2025-06-03", bookings[0]["visit_date"])
	assert.Equal(t, "Lakeside Villa", bookings[0]["property_title"])

	// Client accepts the proposal
	w = doRequest(t, router, http.MethodPut, "/api/bookings/"+bookingID+"/reschedule-response", clientToken,
		map[string]interface{}{"action": "accept"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, router, http.MethodGet, "/api/bookings/client", clientToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	bookings = decodeList(t, w)
	assert.Equal(t, "confirmed", bookings[0]["status"])
	assert.Equal(t, "2025-06-03", bookings[0]["visit_date"])
	assert.Equal(t, "10:00", bookings[0]["visit_time"])

	// The acceptance lands in the broker's notifications
	w = doRequest(t, router, http.MethodGet, "/api/notifications", brokerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	notifications = decodeList(t, w)
	require.NotEmpty(t, notifications)
	assert.Equal(t, "Reschedule Accepted", notifications[0]["title"])
}

func TestBookingCounterProposal(t *testing.T) {
	router := newTestServer(t)
	brokerID, brokerToken := registerUser(t, router, "Bob Broker", "bob@test.com", "broker")
	_, clientToken := registerUser(t, router, "Jane Client", "jane@test.com", "client")
	propertyID := createProperty(t, router, brokerToken, "Lakeside Villa")
	bookingID := createBooking(t, router, clientToken, brokerID, propertyID)

	w := doRequest(t, router, http.MethodPut, "/api/bookings/"+bookingID+"/reschedule", brokerToken,
		map[string]interface{}{"visitDate": "2025-06-03", "visitTime": "10:00"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// A counter without a concrete slot is rejected before touching the booking
	w = doRequest(t, router, http.MethodPut, "/api/bookings/"+bookingID+"/reschedule-response", clientToken,
		map[string]interface{}{"action": "counter"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodPut, "/api/bookings/"+bookingID+"/reschedule-response", clientToken,
		map[string]interface{}{"action": "counter", "visitDate": "2025-06-04", "visitTime": "16:00"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, router, http.MethodGet, "/api/bookings/broker", brokerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	bookings := decodeList(t, w)
	require.Len(t, bookings, 1)
	assert.Equal(t, "counter_pending", bookings[0]["status"])
	assert.Equal(t, "2025-06-04", bookings[0]["visit_date"])

	// The broker accepts the counter through the generic status endpoint
	w = doRequest(t, router, http.MethodPut, "/api/bookings/"+bookingID+"/status", brokerToken,
		map[string]interface{}{"status": "confirmed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, router, http.MethodGet, "/api/notifications", clientToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	notifications := decodeList(t, w)
	require.NotEmpty(t, notifications)
	assert.Contains(t, notifications[0]["message"], "accepted by the broker")
}

func TestBookingAuthorization(t *testing.T) {
	router := newTestServer(t)
	brokerID, brokerToken := registerUser(t, router, "Bob Broker", "bob@test.com", "broker")
	_, otherBrokerToken := registerUser(t, router, "Ben Broker", "ben@test.com", "broker")
	_, clientToken := registerUser(t, router, "Jane Client", "jane@test.com", "client")
	propertyID := createProperty(t, router, brokerToken, "Lakeside Villa")
	bookingID := createBooking(t, router, clientToken, brokerID, propertyID)

	// A different broker is told apart from a missing booking
	w := doRequest(t, router, http.MethodPut, "/api/bookings/"+bookingID+"/status", otherBrokerToken,
		map[string]interface{}{"status": "confirmed"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, router, http.MethodPut, "/api/bookings/missing/status", brokerToken,
		map[string]interface{}{"status": "confirmed"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Unknown target status
	w = doRequest(t, router, http.MethodPut, "/api/bookings/"+bookingID+"/status", brokerToken,
		map[string]interface{}{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Terminal states admit no further transitions
	w = doRequest(t, router, http.MethodPut, "/api/bookings/"+bookingID+"/status", brokerToken,
		map[string]interface{}{"status": "cancelled"})
	require.Equal(t, http.StatusOK, w.Code)
	w = doRequest(t, router, http.MethodPut, "/api/bookings/"+bookingID+"/status", brokerToken,
		map[string]interface{}{"status": "confirmed"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestReviewFlow(t *testing.T) {
	router := newTestServer(t)
	brokerID, brokerToken := registerUser(t, router, "Bob Broker", "bob@test.com", "broker")
	_, clientToken := registerUser(t, router, "Jane Client", "jane@test.com", "client")
	propertyID := createProperty(t, router, brokerToken, "Lakeside Villa")
	bookingID := createBooking(t, router, clientToken, brokerID, propertyID)

	w := doRequest(t, router, http.MethodGet, "/api/reviews/booking/"+bookingID, clientToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["hasReview"])

	submit := map[string]interface{}{
		"bookingId":      bookingID,
		"brokerId":       brokerID,
		"propertyId":     propertyID,
		"brokerRating":   5,
		"propertyRating": 4,
		"propertyTaken":  true,
	}
	w = doRequest(t, router, http.MethodPost, "/api/reviews", clientToken, submit)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// One review per booking
	w = doRequest(t, router, http.MethodPost, "/api/reviews", clientToken, submit)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/reviews/booking/"+bookingID, clientToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["hasReview"])
}

// TestTakenPropertyExclusion checks that marking a property taken in a review
// hides it from that client's listing only.
func TestTakenPropertyExclusion(t *testing.T) {
	router := newTestServer(t)
	brokerID, brokerToken := registerUser(t, router, "Bob Broker", "bob@test.com", "broker")
	_, clientToken := registerUser(t, router, "Jane Client", "jane@test.com", "client")
	_, otherClientToken := registerUser(t, router, "Joe Client", "joe@test.com", "client")
	propertyID := createProperty(t, router, brokerToken, "Lakeside Villa")
	bookingID := createBooking(t, router, clientToken, brokerID, propertyID)

	w := doRequest(t, router, http.MethodPost, "/api/reviews", clientToken, map[string]interface{}{
		"bookingId":      bookingID,
		"brokerId":       brokerID,
		"propertyId":     propertyID,
		"brokerRating":   5,
		"propertyRating": 4,
		"propertyTaken":  true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(t, router, http.MethodGet, "/api/properties", clientToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeList(t, w))

	w = doRequest(t, router, http.MethodGet, "/api/properties", otherClientToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 1)

	w = doRequest(t, router, http.MethodGet, "/api/properties", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 1)

	w = doRequest(t, router, http.MethodGet, "/api/properties/client/taken", clientToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	taken := decodeList(t, w)
	require.Len(t, taken, 1)
	assert.Equal(t, "Lakeside Villa", taken[0]["title"])
}

func TestNotificationOwnership(t *testing.T) {
	router := newTestServer(t)
	brokerID, brokerToken := registerUser(t, router, "Bob Broker", "bob@test.com", "broker")
	_, clientToken := registerUser(t, router, "Jane Client", "jane@test.com", "client")
	propertyID := createProperty(t, router, brokerToken, "Lakeside Villa")
	createBooking(t, router, clientToken, brokerID, propertyID)

	w := doRequest(t, router, http.MethodGet, "/api/notifications", brokerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	notifications := decodeList(t, w)
	require.Len(t, notifications, 1)
	notificationID := notifications[0]["id"].(string)

	// Someone else's notification reads as missing
	w = doRequest(t, router, http.MethodPut, "/api/notifications/"+notificationID+"/read", clientToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodPut, "/api/notifications/"+notificationID+"/read", brokerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), unreadNotificationCount(t, router, brokerToken))
}

func TestAdminVerification(t *testing.T) {
	router := newTestServer(t)
	brokerID, brokerToken := registerUser(t, router, "Bob Broker", "bob@test.com", "broker")
	_, clientToken := registerUser(t, router, "Jane Client", "jane@test.com", "client")
	_, adminToken := registerUser(t, router, "Ada Admin", "ada@test.com", "admin")

	// Admin routes are role-gated
	w := doRequest(t, router, http.MethodGet, "/api/admin/brokers/pending", clientToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/admin/brokers/pending", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodPut, "/api/admin/brokers/"+brokerID+"/verify", adminToken,
		map[string]interface{}{"action": "approve"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, router, http.MethodGet, "/api/users/me", brokerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decodeBody(t, w)
	assert.Equal(t, true, me["isVerified"])
	broker := me["broker"].(map[string]interface{})
	assert.Equal(t, "verified", broker["verificationStatus"])

	w = doRequest(t, router, http.MethodPut, "/api/admin/brokers/missing/verify", adminToken,
		map[string]interface{}{"action": "approve"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMessagingFlow(t *testing.T) {
	router := newTestServer(t)
	brokerID, brokerToken := registerUser(t, router, "Bob Broker", "bob@test.com", "broker")
	clientID, clientToken := registerUser(t, router, "Jane Client", "jane@test.com", "client")
	propertyID := createProperty(t, router, brokerToken, "Lakeside Villa")

	w := doRequest(t, router, http.MethodPost, "/api/messages", clientToken, map[string]interface{}{
		"receiverId": brokerID,
		"propertyId": propertyID,
		"message":    "Is this still available?",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(t, router, http.MethodGet, "/api/messages/unread-count", brokerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["unreadCount"])

	// Fetching the thread marks it read for the fetcher
	w = doRequest(t, router, http.MethodGet, "/api/messages/"+clientID, brokerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	thread := decodeList(t, w)
	require.Len(t, thread, 1)
	assert.Equal(t, "Is this still available?", thread[0]["message"])

	w = doRequest(t, router, http.MethodGet, "/api/messages/unread-count", brokerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeBody(t, w)["unreadCount"])

	w = doRequest(t, router, http.MethodGet, "/api/messages/conversations", clientToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	conversations := decodeList(t, w)
	require.Len(t, conversations, 1)
	assert.Equal(t, "Bob Broker", conversations[0]["other_user_name"])
}

func TestPropertyViewTracking(t *testing.T) {
	router := newTestServer(t)
	_, brokerToken := registerUser(t, router, "Bob Broker", "bob@test.com", "broker")
	propertyID := createProperty(t, router, brokerToken, "Lakeside Villa")

	w := doRequest(t, router, http.MethodPost, "/api/properties/"+propertyID+"/view", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/properties/"+propertyID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["views"])

	w = doRequest(t, router, http.MethodGet, "/api/properties/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
