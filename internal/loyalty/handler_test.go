package loyalty

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Shoxx1211/Mzansipass/internal/ledger"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendDisruptionAlert(ctx context.Context, to, contact, userName, notice string) error {
	args := m.Called(ctx, to, contact, userName, notice)
	return args.Error(0)
}

func newTestRouter(store *ledger.Store, notifier Notifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(store, notifier)

	router := gin.New()
	router.GET("/loyalty", h.GetSummary)
	router.GET("/loyalty/challenges", h.ListChallenges)
	router.GET("/loyalty/rewards", h.ListRewards)
	router.POST("/loyalty/rewards/:rewardID/redeem", h.RedeemReward)
	router.POST("/loyalty/notify-contact", h.NotifyContact)
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

func TestGetSummary(t *testing.T) {
	store := ledger.New(ledger.NewRand(1))
	router := newTestRouter(store, nil)

	w := doJSON(t, router, "GET", "/loyalty", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp SummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1250, resp.Points)
	assert.NotEmpty(t, resp.Events)
}

func TestListChallenges(t *testing.T) {
	store := ledger.New(ledger.NewRand(1))
	router := newTestRouter(store, nil)

	w := doJSON(t, router, "GET", "/loyalty/challenges", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var statuses []ChallengeStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &statuses))
	require.NotEmpty(t, statuses)
	for _, s := range statuses {
		assert.NotEmpty(t, s.Challenge.ID)
		assert.False(t, s.Completed)
	}
}

func TestRedeemReward(t *testing.T) {
	store := ledger.New(ledger.NewRand(1))
	router := newTestRouter(store, nil)

	balanceBefore := store.VirtualCard().BalanceCents

	w := doJSON(t, router, "POST", "/loyalty/rewards/rw-voucher-10/redeem", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 750, store.User().LoyaltyPoints)
	assert.Equal(t, balanceBefore+1000, store.VirtualCard().BalanceCents)
}

func TestRedeemRewardInsufficientPoints(t *testing.T) {
	store := ledger.New(ledger.NewRand(1))
	router := newTestRouter(store, nil)

	w := doJSON(t, router, "POST", "/loyalty/rewards/rw-voucher-50/redeem", nil)
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, 1250, store.User().LoyaltyPoints)
}

func TestRedeemUnknownReward(t *testing.T) {
	store := ledger.New(ledger.NewRand(1))
	router := newTestRouter(store, nil)

	w := doJSON(t, router, "POST", "/loyalty/rewards/rw-unicorn/redeem", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotifyContact(t *testing.T) {
	store := ledger.New(ledger.NewRand(1))
	notifier := new(MockNotifier)
	notifier.On("SendDisruptionAlert", mock.Anything, "gogo@example.com", "Gogo", "Thabo Mokoena", mock.Anything).Return(nil)

	router := newTestRouter(store, notifier)

	pointsBefore := store.User().LoyaltyPoints

	w := doJSON(t, router, "POST", "/loyalty/notify-contact", gin.H{
		"contact_name":  "Gogo",
		"contact_email": "gogo@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, pointsBefore+10, store.User().LoyaltyPoints)
	notifier.AssertExpectations(t)
}

func TestNotifyContactQueueFailureStillAwards(t *testing.T) {
	store := ledger.New(ledger.NewRand(1))
	notifier := new(MockNotifier)
	notifier.On("SendDisruptionAlert", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(assert.AnError)

	router := newTestRouter(store, notifier)

	pointsBefore := store.User().LoyaltyPoints

	w := doJSON(t, router, "POST", "/loyalty/notify-contact", gin.H{
		"contact_name":  "Gogo",
		"contact_email": "gogo@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, pointsBefore+10, store.User().LoyaltyPoints)
}

func TestNotifyContactValidation(t *testing.T) {
	store := ledger.New(ledger.NewRand(1))
	router := newTestRouter(store, nil)

	w := doJSON(t, router, "POST", "/loyalty/notify-contact", gin.H{
		"contact_name":  "Gogo",
		"contact_email": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
