package ticket

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shoxx1211/Mzansipass/internal/ledger"
)

func newTestRouter(store *ledger.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(store)

	router := gin.New()
	router.POST("/tickets", h.Purchase)
	router.GET("/tickets", h.ListTickets)
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

func TestPurchaseTicket(t *testing.T) {
	store := ledger.New(ledger.NewRand(1))
	router := newTestRouter(store)

	before := store.VirtualCard().BalanceCents

	w := doJSON(t, router, "POST", "/tickets", gin.H{
		"ticket_type": "return",
		"from":        "Park Station",
		"to":          "Pretoria",
		"fare_cents":  2250,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var tk ledger.PrasaTicket
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tk))
	assert.Equal(t, ledger.TicketReturn, tk.TicketType)
	assert.Equal(t, ledger.TicketActive, tk.Status)
	assert.Equal(t, ledger.SourceApp, tk.Source)
	assert.NotEmpty(t, tk.QRCodeURL)
	assert.Equal(t, before-2250, store.VirtualCard().BalanceCents)
}

func TestPurchaseTicketInsufficientBalance(t *testing.T) {
	store := ledger.New(ledger.NewRand(1))
	_, err := store.CreateNewUser("Naledi Dlamini") // R50 fresh balance
	require.NoError(t, err)
	router := newTestRouter(store)

	w := doJSON(t, router, "POST", "/tickets", gin.H{
		"ticket_type": "monthly",
		"from":        "Park Station",
		"to":          "Pretoria",
		"fare_cents":  90000,
	})
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, int64(5000), store.VirtualCard().BalanceCents)
	assert.Empty(t, store.Tickets())
}

func TestPurchaseTicketBadType(t *testing.T) {
	store := ledger.New(ledger.NewRand(1))
	router := newTestRouter(store)

	w := doJSON(t, router, "POST", "/tickets", gin.H{
		"ticket_type": "decade",
		"from":        "Park Station",
		"to":          "Pretoria",
		"fare_cents":  2250,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPurchaseTicketCounterSource(t *testing.T) {
	store := ledger.New(ledger.NewRand(1))
	router := newTestRouter(store)

	w := doJSON(t, router, "POST", "/tickets", gin.H{
		"ticket_type": "single",
		"from":        "Germiston",
		"to":          "Park Station",
		"fare_cents":  1500,
		"source":      "Counter",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var tk ledger.PrasaTicket
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tk))
	assert.Equal(t, ledger.SourceCounter, tk.Source)
}

func TestListTickets(t *testing.T) {
	store := ledger.New(ledger.NewRand(1))
	router := newTestRouter(store)

	_, err := store.PurchaseTicket(ledger.TicketSingle, "Germiston", "Park Station", 1500, ledger.SourceApp)
	require.NoError(t, err)

	w := doJSON(t, router, "GET", "/tickets", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tickets []ledger.PrasaTicket
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tickets))
	assert.NotEmpty(t, tickets)
	assert.Equal(t, "Germiston", tickets[0].From)
}
