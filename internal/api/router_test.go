package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kbhandari/portfolio-api/internal/app"
	"github.com/kbhandari/portfolio-api/internal/database/testutil"
	"github.com/kbhandari/portfolio-api/internal/handlers"
	"github.com/kbhandari/portfolio-api/internal/monitoring"
	"github.com/kbhandari/portfolio-api/internal/monitoring/checks"
	"github.com/kbhandari/portfolio-api/internal/services"
	"github.com/kbhandari/portfolio-api/internal/store"
	"github.com/kbhandari/portfolio-api/pkg/mail"
	"github.com/kbhandari/portfolio-api/pkg/response"
)

type recordingMailer struct {
	sent []mail.Message
}

func (m *recordingMailer) Send(_ context.Context, msg mail.Message) error {
	m.sent = append(m.sent, msg)
	return nil
}

type routerEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	messages *store.GormStore
	mailer   *recordingMailer
}

func newRouterEnv(t *testing.T) *routerEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.MustOpenTestDB(t)
	messages, err := store.NewGormStore(db)
	require.NoError(t, err)

	mailer := &recordingMailer{}
	notifier, err := services.NewNotifier(mailer, "owner@example.com", "https://example.com/verify", 24*time.Hour)
	require.NoError(t, err)

	svc, err := services.NewContactService(messages, notifier)
	require.NoError(t, err)

	contact, err := handlers.NewContactHandler(svc)
	require.NoError(t, err)

	cfg := &app.Config{}
	cfg.Monitoring.Health.Enabled = true
	cfg.Monitoring.Prometheus.Enabled = true
	cfg.Monitoring.Prometheus.Endpoint = "/metrics"

	manager := monitoring.NewHealthManager()
	manager.RegisterReadiness(checks.Database(db, time.Second))

	router, err := NewRouter(db, cfg, contact, manager)
	require.NoError(t, err)

	return &routerEnv{router: router, db: db, messages: messages, mailer: mailer}
}

func (e *routerEnv) do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, response.Envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var payload response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return w, payload
}

var tokenPattern = regexp.MustCompile(`token=([0-9a-f]{64})`)

func (e *routerEnv) sentToken(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, e.mailer.sent)

	match := tokenPattern.FindStringSubmatch(e.mailer.sent[len(e.mailer.sent)-1].Text)
	require.Len(t, match, 2, "verification email must carry the token link")
	return match[1]
}

func TestSubmitFormStoresMessageAndSendsVerification(t *testing.T) {
	env := newRouterEnv(t)

	w, payload := env.do(t, http.MethodPost, "/api/submit-form",
		`{"name":"Jo","email":"jo@x.com","subject":"Hi!","message":"1234567890"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, payload.Success)
	require.Equal(t, "Message received! Check your email to verify.", payload.Message)
	require.NotEmpty(t, payload.MessageID)

	token := env.sentToken(t)
	stored, err := env.messages.FindByToken(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, payload.MessageID, stored.ID)
	require.Equal(t, []string{"jo@x.com"}, env.mailer.sent[0].To)
}

func TestSubmitFormRejectsInvalidInput(t *testing.T) {
	env := newRouterEnv(t)

	w, payload := env.do(t, http.MethodPost, "/api/submit-form",
		`{"name":"Jo","email":"not-an-email","subject":"Hi!","message":"1234567890"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.False(t, payload.Success)
	require.Equal(t, "Validation failed", payload.Message)
	require.Contains(t, payload.Errors, "Valid email address is required")

	require.Empty(t, env.mailer.sent)
}

func TestSubmitFormRejectsMalformedJSON(t *testing.T) {
	env := newRouterEnv(t)

	w, payload := env.do(t, http.MethodPost, "/api/submit-form", `{"name":`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.False(t, payload.Success)
	require.Contains(t, payload.Errors, "Request body must be valid JSON")
}

func TestVerifyEmailUnknownToken(t *testing.T) {
	env := newRouterEnv(t)

	w, payload := env.do(t, http.MethodGet, "/api/verify-email?token=deadbeef", "")

	require.Equal(t, http.StatusNotFound, w.Code)
	require.False(t, payload.Success)
	require.Equal(t, "Invalid or expired verification token", payload.Message)
	require.Empty(t, env.mailer.sent)
}

func TestVerifyEmailDeliversAndDeletes(t *testing.T) {
	env := newRouterEnv(t)

	w, _ := env.do(t, http.MethodPost, "/api/submit-form",
		`{"name":"Jo","email":"jo@x.com","subject":"Hi!","message":"1234567890"}`)
	require.Equal(t, http.StatusOK, w.Code)
	token := env.sentToken(t)

	w, payload := env.do(t, http.MethodGet, "/api/verify-email?token="+token, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, payload.Success)
	require.Equal(t, "Email verified! Your message has been sent successfully.", payload.Message)

	final := env.mailer.sent[len(env.mailer.sent)-1]
	require.Equal(t, []string{"owner@example.com"}, final.To)
	require.Equal(t, "jo@x.com", final.ReplyTo)
	require.Equal(t, "Contact Form: Hi!", final.Subject)

	_, err := env.messages.FindByToken(context.Background(), token)
	require.ErrorIs(t, err, store.ErrNotFound)

	// Second visit answers like an unknown token.
	w, _ = env.do(t, http.MethodGet, "/api/verify-email?token="+token, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	env := newRouterEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	require.Equal(t, "ok", payload["status"])
	require.Equal(t, "Server is running", payload["message"])
}

func TestReadinessEndpoint(t *testing.T) {
	env := newRouterEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health/ready", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"up"`)
}

func TestUnknownRouteEnvelope(t *testing.T) {
	env := newRouterEnv(t)

	w, payload := env.do(t, http.MethodGet, "/api/unknown", "")

	require.Equal(t, http.StatusNotFound, w.Code)
	require.False(t, payload.Success)
	require.Equal(t, "Endpoint not found", payload.Message)
}

func TestMetricsEndpointExposed(t *testing.T) {
	env := newRouterEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}
