package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/cafe-feedback/internal/api/http"
	"github.com/spec-kit/cafe-feedback/internal/api/http/handlers"
	"github.com/spec-kit/cafe-feedback/internal/config"
	"github.com/spec-kit/cafe-feedback/internal/domain"
	"github.com/spec-kit/cafe-feedback/internal/events"
	"github.com/spec-kit/cafe-feedback/internal/observability"
	"github.com/spec-kit/cafe-feedback/internal/relay"
	"github.com/spec-kit/cafe-feedback/internal/repository"
	"github.com/spec-kit/cafe-feedback/internal/service"
)

func newTestApp(t *testing.T, relayClient *relay.Client) *fiber.App {
	t.Helper()

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	store := repository.NewMemoryStore()
	rosterRepo := repository.NewRosterRepository(domain.SeedRoster())
	dispatcher := events.NewInMemoryDispatcher()

	notices := config.NotificationConfig{NoticeTTLMillis: 2500, DegradedTTLMillis: 3500}
	feedbackService := service.NewFeedbackService(context.Background(), notices, service.FeedbackDependencies{
		Store:      store,
		Roster:     rosterRepo,
		Relay:      relayClient,
		Dispatcher: dispatcher,
		Logger:     logger,
		Metrics:    metrics,
	})
	rosterService := service.NewRosterService(config.RosterConfig{FallbackAvatarURL: "https://example.com/fallback.png"}, rosterRepo, dispatcher, logger)
	adminService := service.NewAdminService(store, rosterRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler("cafe-feedback-service", "test", store),
		Staff:    handlers.NewStaffHandler(rosterService),
		Feedback: handlers.NewFeedbackHandler(feedbackService),
		Admin:    handlers.NewAdminHandler(adminService),
	})
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestHealthLive(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSubmitFeedbackRoundTrip(t *testing.T) {
	app := newTestApp(t, nil)

	resp := postJSON(t, app, "/feedback", fiber.Map{
		"employee_id": "e1",
		"rating":      5,
		"comment":     "Great service",
		"order_code":  "A123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var submitted struct {
		Record struct {
			EmployeeID string `json:"employee_id"`
			Rating     int    `json:"rating"`
			Comment    string `json:"comment"`
			OrderCode  string `json:"order_code"`
		} `json:"record"`
		Notice          string `json:"notice"`
		NoticeTTLMillis int    `json:"notice_ttl_ms"`
	}
	decodeData(t, resp, &submitted)
	assert.Equal(t, "e1", submitted.Record.EmployeeID)
	assert.Equal(t, 5, submitted.Record.Rating)
	assert.Equal(t, "Great service", submitted.Record.Comment)
	assert.Equal(t, "A123", submitted.Record.OrderCode)
	assert.NotEmpty(t, submitted.Notice)
	assert.Equal(t, 2500, submitted.NoticeTTLMillis)

	// The admin view resolves the same record back to the staff name.
	req := httptest.NewRequest(http.MethodGet, "/admin/feedback", nil)
	listResp, err := app.Test(req, 5000)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var listed []struct {
		Employee  string `json:"employee"`
		Rating    int    `json:"rating"`
		OrderCode string `json:"order_code"`
	}
	decodeData(t, listResp, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, "Hiếu Hiếu", listed[0].Employee)
	assert.Equal(t, 5, listed[0].Rating)
}

func TestSubmitFeedbackRejectsZeroRating(t *testing.T) {
	app := newTestApp(t, nil)

	resp := postJSON(t, app, "/feedback", fiber.Map{"employee_id": "e1", "rating": 0})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/admin/feedback", nil)
	listResp, err := app.Test(req, 5000)
	require.NoError(t, err)
	var listed []json.RawMessage
	decodeData(t, listResp, &listed)
	assert.Empty(t, listed)
}

func TestSubmitFeedbackUnknownStaff(t *testing.T) {
	app := newTestApp(t, nil)

	resp := postJSON(t, app, "/feedback", fiber.Map{"employee_id": "ghost", "rating": 4})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSubmitFeedbackRelayFailureStillCreated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	client := relay.NewClient(config.RelayConfig{URL: server.URL, Opaque: true, TimeoutSeconds: 2}, zap.NewNop())

	app := newTestApp(t, client)
	resp := postJSON(t, app, "/feedback", fiber.Map{"employee_id": "e1", "rating": 5})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var submitted struct {
		Relayed         bool   `json:"relayed"`
		NoticeTTLMillis int    `json:"notice_ttl_ms"`
		Notice          string `json:"notice"`
	}
	decodeData(t, resp, &submitted)
	assert.False(t, submitted.Relayed)
	assert.Equal(t, 3500, submitted.NoticeTTLMillis)
}

func TestStaffListAndSearch(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/staff", nil)
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	var all []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	decodeData(t, resp, &all)
	assert.Len(t, all, 6)

	req = httptest.NewRequest(http.MethodGet, "/staff?q=thu+ng%C3%A2n", nil)
	resp, err = app.Test(req, 5000)
	require.NoError(t, err)
	var cashiers []struct {
		ID string `json:"id"`
	}
	decodeData(t, resp, &cashiers)
	require.Len(t, cashiers, 1)
	assert.Equal(t, "e3", cashiers[0].ID)
}

func TestStaffImportRawBody(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/staff/import", strings.NewReader("An An,Pha chế,\nTuấn,,\n"))
	req.Header.Set("Content-Type", "text/csv")
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var imported struct {
		Added   int `json:"added"`
		Members []struct {
			Name string `json:"name"`
			Role string `json:"role"`
		} `json:"members"`
	}
	decodeData(t, resp, &imported)
	assert.Equal(t, 2, imported.Added)
	assert.Equal(t, "Tuấn", imported.Members[1].Name)

	listReq := httptest.NewRequest(http.MethodGet, "/staff", nil)
	listResp, err := app.Test(listReq, 5000)
	require.NoError(t, err)
	var all []json.RawMessage
	decodeData(t, listResp, &all)
	assert.Len(t, all, 8)
}

func TestAdminExportCSV(t *testing.T) {
	app := newTestApp(t, nil)

	resp := postJSON(t, app, "/feedback", fiber.Map{"employee_id": "e1", "rating": 5, "comment": "Great service"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = postJSON(t, app, "/feedback", fiber.Map{"employee_id": "e3", "rating": 2})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/admin/feedback/export", nil)
	exportResp, err := app.Test(req, 5000)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, exportResp.StatusCode)

	assert.Equal(t, "text/csv; charset=utf-8", exportResp.Header.Get("Content-Type"))
	disposition := exportResp.Header.Get("Content-Disposition")
	assert.True(t, strings.HasPrefix(disposition, `attachment; filename="feedback_`), disposition)
	assert.True(t, strings.HasSuffix(disposition, `.csv"`), disposition)

	body, err := io.ReadAll(exportResp.Body)
	require.NoError(t, err)
	lines := strings.Split(string(body), "\n")
	require.Len(t, lines, 3, "header plus two rows")
	assert.Equal(t, "timestamp,employeeId,employee,rating,comment,orderCode,source,device", lines[0])
	assert.Contains(t, lines[1], `"Hiếu Hiếu"`)

	// Filtered export narrows the rows the same way the listing does.
	req = httptest.NewRequest(http.MethodGet, "/admin/feedback/export?q=great", nil)
	filteredResp, err := app.Test(req, 5000)
	require.NoError(t, err)
	filteredBody, err := io.ReadAll(filteredResp.Body)
	require.NoError(t, err)
	assert.Len(t, strings.Split(string(filteredBody), "\n"), 2)
}
