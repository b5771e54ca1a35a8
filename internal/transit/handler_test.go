package transit

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shoxx1211/Mzansipass/internal/advisory"
	"github.com/Shoxx1211/Mzansipass/internal/ledger"
)

func newTestRouter(store *ledger.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(store, advisory.NewStatic())

	router := gin.New()
	router.GET("/transit/alerts", h.ListAlerts)
	router.POST("/transit/alerts/report", h.ReportAlert)
	router.POST("/transit/plan", h.PlanTrip)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListAlerts(t *testing.T) {
	store := ledger.New(ledger.NewRand(1))
	router := newTestRouter(store)

	w := doJSON(t, router, "GET", "/transit/alerts", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var alerts []ledger.TransitAlert
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &alerts))
	assert.NotEmpty(t, alerts)
}

func TestReportAlertClassifiedAsDelay(t *testing.T) {
	store := ledger.New(ledger.NewRand(1))
	router := newTestRouter(store)

	w := doJSON(t, router, "POST", "/transit/alerts/report", gin.H{
		"description": "Bus is running 40 minutes late at Thokoza Park",
		"provider":    "Rea Vaya",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var alert ledger.TransitAlert
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &alert))
	assert.Equal(t, ledger.AlertUserReport, alert.Type)
	assert.Equal(t, ledger.CategoryDelay, alert.Category)
	assert.Equal(t, ledger.ProviderReaVaya, alert.Provider)

	// The report is now at the head of the feed.
	assert.Equal(t, alert.ID, store.Alerts()[0].ID)
}

func TestReportAlertUnknownProvider(t *testing.T) {
	store := ledger.New(ledger.NewRand(1))
	router := newTestRouter(store)

	w := doJSON(t, router, "POST", "/transit/alerts/report", gin.H{
		"description": "Something happened",
		"provider":    "Hogwarts Express",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportAlertRequiresDescription(t *testing.T) {
	store := ledger.New(ledger.NewRand(1))
	router := newTestRouter(store)

	w := doJSON(t, router, "POST", "/transit/alerts/report", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlanTrip(t *testing.T) {
	store := ledger.New(ledger.NewRand(1))
	router := newTestRouter(store)

	w := doJSON(t, router, "POST", "/transit/plan", gin.H{"query": "Soweto to Sandton tomorrow morning"})
	require.Equal(t, http.StatusOK, w.Code)

	var routes []advisory.RouteOption
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &routes))
	require.NotEmpty(t, routes)
	assert.NotEmpty(t, routes[0].Steps)
}
