package user

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
	router.POST("/users", h.CreateUser)
	router.GET("/me", h.GetMe)
	router.POST("/me/pin", h.SetPin)
	router.POST("/me/pin/verify", h.VerifyPin)
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

func TestCreateUser(t *testing.T) {
	store := ledger.New(ledger.NewRand(1))
	router := newTestRouter(store)

	w := doJSON(t, router, "POST", "/users", gin.H{"full_name": "Naledi Dlamini"})
	require.Equal(t, http.StatusCreated, w.Code)

	var u ledger.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))
	assert.Equal(t, "Naledi Dlamini", u.FullName)
	assert.Equal(t, 100, u.LoyaltyPoints)
	assert.Equal(t, int64(5000), store.VirtualCard().BalanceCents)
}

func TestCreateUserRequiresName(t *testing.T) {
	store := ledger.New(ledger.NewRand(1))
	router := newTestRouter(store)

	w := doJSON(t, router, "POST", "/users", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMe(t *testing.T) {
	store := ledger.New(ledger.NewRand(1))
	router := newTestRouter(store)

	w := doJSON(t, router, "GET", "/me", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ProfileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Thabo Mokoena", resp.User.FullName)
	assert.False(t, resp.PinSet)
}

func TestPinLifecycle(t *testing.T) {
	store := ledger.New(ledger.NewRand(1))
	router := newTestRouter(store)

	// Verifying before a PIN exists is forbidden.
	w := doJSON(t, router, "POST", "/me/pin/verify", gin.H{"pin": "4821"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, "POST", "/me/pin", gin.H{"pin": "4821"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "POST", "/me/pin/verify", gin.H{"pin": "4821"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "POST", "/me/pin/verify", gin.H{"pin": "0000"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSetPinRejectsBadFormat(t *testing.T) {
	store := ledger.New(ledger.NewRand(1))
	router := newTestRouter(store)

	for _, pin := range []string{"12", "12345", "abcd"} {
		w := doJSON(t, router, "POST", "/me/pin", gin.H{"pin": pin})
		assert.Equal(t, http.StatusBadRequest, w.Code, pin)
	}
}
