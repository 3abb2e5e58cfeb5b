package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colaai/colaai-api/internal/api"
	"github.com/colaai/colaai-api/internal/api/handler/v1/response"
	"github.com/colaai/colaai-api/internal/config"
	"github.com/colaai/colaai-api/internal/db"
	"github.com/colaai/colaai-api/internal/domain"
	"github.com/colaai/colaai-api/internal/repository/dao"
	"github.com/colaai/colaai-api/internal/service"
)

const userAgent = "colaai-test"

type testServer struct {
	t      *testing.T
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	database, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, dao.InitTables(database))
	require.NoError(t, dao.Seed(context.Background(), database))

	conf := &config.AppConfig{
		API: &config.APIConfig{
			Environment:   "test",
			Port:          "8080",
			JWTSigningKey: "server-test-signing-key",
			JWTTTLHours:   1,
		},
		Gin:      &config.GinConfig{Mode: "test"},
		Database: &config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"},
		Postgres: &config.PostgresConfig{},
	}

	return &testServer{t: t, router: api.NewServer(conf, database).Router}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&payload).Encode(body))
	}

	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	return w
}

func (s *testServer) login(email, password string) string {
	s.t.Helper()

	w := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	var res response.LoginResponse
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(s.t, res.Token)

	return res.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())

	return v
}

func TestServer_Healthcheck(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestServer_Auth(t *testing.T) {
	s := newTestServer(t)

	signup := map[string]string{
		"name":            "Ana Souza",
		"email":           "ana@test.com",
		"password":        "Secret@123",
		"confirmPassword": "Secret@123",
	}
	w := s.do(http.MethodPost, "/api/v1/auth/signup", "", signup)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	user := decode[domain.User](t, w)
	assert.Equal(t, domain.RoleParticipant, user.Role)
	assert.NotContains(t, w.Body.String(), "Secret@123")

	w = s.do(http.MethodPost, "/api/v1/auth/signup", "", signup)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), service.ErrUserEmailExists.Error())

	w = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "ana@test.com", "password": "Wrong@123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := s.login("ana@test.com", "Secret@123")
	w = s.do(http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, user.ID, decode[domain.User](t, w).ID)

	w = s.do(http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)
}

func TestServer_EventLifecycle(t *testing.T) {
	s := newTestServer(t)

	organizer := s.login("org@test.com", "Organizer@123")
	participant := s.login("user@test.com", "User@1234")
	admin := s.login("admin@test.com", "Admin@123")

	w := s.do(http.MethodGet, "/api/v1/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	categories := decode[[]domain.EventCategory](t, w)
	require.NotEmpty(t, categories)

	start := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	newEvent := map[string]interface{}{
		"title":           "Go Meetup Recife",
		"description":     "Talks and pizza",
		"startDate":       start,
		"endDate":         start.Add(3 * time.Hour),
		"location":        "Recife",
		"maxParticipants": 2,
		"price":           25.0,
		"categoryId":      categories[0].ID,
	}

	w = s.do(http.MethodPost, "/api/v1/events", participant, newEvent)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, "/api/v1/events", organizer, newEvent)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	event := decode[domain.Event](t, w)
	assert.Equal(t, domain.EventPublished, event.Status)
	assert.True(t, event.IsPublic)

	w = s.do(http.MethodGet, "/api/v1/events?search=meetup", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.Event](t, w), 1)

	w = s.do(http.MethodPost, "/api/v1/payments", participant, map[string]string{
		"eventId":    event.ID.String(),
		"method":     "credit_card",
		"cardNumber": "4000 0000 0000 0002",
		"cardName":   "MARIA",
		"expiryDate": "12/30",
		"cvv":        "123",
	})
	assert.Equal(t, http.StatusPaymentRequired, w.Code)

	w = s.do(http.MethodPost, "/api/v1/payments", participant, map[string]string{
		"eventId":    event.ID.String(),
		"method":     "credit_card",
		"cardNumber": "4111 1111 1111 1111",
		"cardName":   "MARIA",
		"expiryDate": "12/30",
		"cvv":        "123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	checkout := decode[service.Checkout](t, w)
	require.NotNil(t, checkout.Inscription)
	assert.Equal(t, domain.PaymentPaid, checkout.Inscription.PaymentStatus)
	assert.True(t, checkout.Inscription.Paid)

	w = s.do(http.MethodPost, "/api/v1/inscriptions", participant, map[string]string{"eventId": event.ID.String()})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), service.ErrAlreadyInscribed.Error())

	w = s.do(http.MethodGet, "/api/v1/inscriptions", participant, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.Inscription](t, w), 1)

	w = s.do(http.MethodGet, "/api/v1/events/"+event.ID.String()+"/stats", organizer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[domain.EventStats](t, w)
	assert.EqualValues(t, 1, stats.ActiveRegistrations)
	assert.Equal(t, 25.0, stats.TotalRevenue)

	w = s.do(http.MethodGet, "/api/v1/events/"+event.ID.String()+"/stats", participant, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodDelete, "/api/v1/inscriptions/"+checkout.Inscription.ID.String(), participant, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cancelled := decode[domain.Inscription](t, w)
	assert.Equal(t, domain.InscriptionCancelled, cancelled.Status)
	assert.Equal(t, domain.PaymentRefunded, cancelled.PaymentStatus)

	w = s.do(http.MethodGet, "/api/v1/admin/stats", participant, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/v1/admin/stats", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	adminStats := decode[domain.AdminStats](t, w)
	assert.EqualValues(t, 3, adminStats.TotalUsers)
	assert.EqualValues(t, 1, adminStats.TotalEvents)

	w = s.do(http.MethodDelete, "/api/v1/events/"+event.ID.String(), admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/v1/events/"+event.ID.String(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_NotFoundAndBadIDs(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/v1/events/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/v1/events/6f1c2d3e-4b5a-4c6d-8e7f-9a0b1c2d3e4f", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
