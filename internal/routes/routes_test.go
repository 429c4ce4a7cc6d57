package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cardkeeper/internal/models"
	"cardkeeper/internal/services/card"
	"cardkeeper/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type envelope struct {
	Message string     `json:"message"`
	Data    card.State `json:"data"`
	Error   string     `json:"error"`
}

type testServer struct {
	app      *fiber.App
	backend  *card.StubBackend
	registry *card.Registry
	token    string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	backend := &card.StubBackend{}
	registry := card.NewRegistry(func(models.UserClaims) (card.Backend, error) {
		return backend, nil
	}, nil, nil)

	app := fiber.New()
	SetupRoutes(app, Dependencies{JWTSecret: testSecret, Registry: registry})

	token, err := utils.GenerateToken(testSecret, models.UserClaims{UserID: 7}, time.Minute)
	require.NoError(t, err)

	return &testServer{app: app, backend: backend, registry: registry, token: token}
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+ts.token)

	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func (ts *testServer) snapshot(t *testing.T) card.State {
	status, out := ts.do(t, http.MethodGet, "/api/cards", nil)
	require.Equal(t, http.StatusOK, status)
	return out.Data
}

func validForm() models.CardFormData {
	return models.CardFormData{
		CardNumber:     "4111 1111 1111 1111",
		CardHolderName: "Ada Lovelace",
		ExpiryDate:     "12/28",
		CVV:            "123",
	}
}

func TestCards_RequireToken(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/cards", nil)
	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, ts.registry.Len())
}

func TestCards_AddThenRead(t *testing.T) {
	ts := newTestServer(t)

	status, out := ts.do(t, http.MethodPost, "/api/cards", validForm())
	require.Equal(t, http.StatusAccepted, status)
	assert.Equal(t, "Card submission started", out.Message)

	require.Eventually(t, func() bool {
		st := ts.snapshot(t)
		return len(st.Cards) == 1 && !st.IsSubmitting
	}, time.Second, 5*time.Millisecond)

	st := ts.snapshot(t)
	assert.Equal(t, models.CardTypeVisa, st.Cards[0].CardType)
	assert.Equal(t, "1111", st.Cards[0].Last4Digits)
	assert.True(t, st.Cards[0].IsDefault)
	assert.Empty(t, st.Error)
}

func TestCards_AddRejectsMalformedRequests(t *testing.T) {
	ts := newTestServer(t)

	missingHolder := validForm()
	missingHolder.CardHolderName = ""
	status, out := ts.do(t, http.MethodPost, "/api/cards", missingHolder)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, out.Error, "CardHolderName")

	badCVV := validForm()
	badCVV.CVV = "12a"
	status, _ = ts.do(t, http.MethodPost, "/api/cards", badCVV)
	assert.Equal(t, http.StatusBadRequest, status)

	submitted, _, _ := ts.backend.Calls()
	assert.Zero(t, submitted)
}

func TestCards_ShortNumberSurfacesInSnapshot(t *testing.T) {
	ts := newTestServer(t)

	short := validForm()
	short.CardNumber = "4111 1111"
	status, _ := ts.do(t, http.MethodPost, "/api/cards", short)
	require.Equal(t, http.StatusAccepted, status)

	require.Eventually(t, func() bool {
		return ts.snapshot(t).Error == "Invalid card number"
	}, time.Second, 5*time.Millisecond)

	status, out := ts.do(t, http.MethodDelete, "/api/cards/error", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, out.Data.Error)
	assert.Empty(t, out.Data.Cards)
}

func TestCards_SetDefaultAndRemove(t *testing.T) {
	ts := newTestServer(t)

	ctx := context.Background()
	s, err := ts.registry.For(ctx, models.UserClaims{UserID: 7})
	require.NoError(t, err)
	first, err := s.AddCard(ctx, validForm())
	require.NoError(t, err)
	secondForm := validForm()
	secondForm.CardNumber = "5555555555554444"
	second, err := s.AddCard(ctx, secondForm)
	require.NoError(t, err)

	status, _ := ts.do(t, http.MethodPut, "/api/cards/"+second.ID+"/default", nil)
	require.Equal(t, http.StatusAccepted, status)
	require.Eventually(t, func() bool {
		st := ts.snapshot(t)
		return len(st.Cards) == 2 && st.Cards[1].IsDefault && !st.Cards[0].IsDefault
	}, time.Second, 5*time.Millisecond)

	status, _ = ts.do(t, http.MethodDelete, "/api/cards/"+first.ID, nil)
	require.Equal(t, http.StatusAccepted, status)
	require.Eventually(t, func() bool {
		st := ts.snapshot(t)
		return len(st.Cards) == 1 && !st.IsLoading
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, second.ID, ts.snapshot(t).Cards[0].ID)
	assert.Equal(t, []string{second.ID}, ts.backend.Defaults)
	assert.Equal(t, []string{first.ID}, ts.backend.Deleted)
}

func TestCards_BackendFailureIsRecorded(t *testing.T) {
	ts := newTestServer(t)
	ts.backend.DeleteErr = errors.New("card is locked")

	status, _ := ts.do(t, http.MethodDelete, "/api/cards/missing", nil)
	require.Equal(t, http.StatusAccepted, status)

	require.Eventually(t, func() bool {
		return ts.snapshot(t).Error == "card is locked"
	}, time.Second, 5*time.Millisecond)
}

func TestCards_ClearCards(t *testing.T) {
	ts := newTestServer(t)

	ctx := context.Background()
	s, err := ts.registry.For(ctx, models.UserClaims{UserID: 7})
	require.NoError(t, err)
	_, err = s.AddCard(ctx, validForm())
	require.NoError(t, err)

	status, out := ts.do(t, http.MethodDelete, "/api/cards", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, out.Data.Cards)
	assert.Empty(t, ts.snapshot(t).Cards)
}

func TestHealth_WithoutBackingServices(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out struct {
		Status   string            `json:"status"`
		Services map[string]string `json:"services"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", out.Status)
	assert.Equal(t, "disabled", out.Services["redis"])
}

func TestCards_StoreUnavailable(t *testing.T) {
	registry := card.NewRegistry(func(models.UserClaims) (card.Backend, error) {
		return nil, errors.New("no customer")
	}, nil, nil)

	app := fiber.New()
	SetupRoutes(app, Dependencies{JWTSecret: testSecret, Registry: registry})
	token, err := utils.GenerateToken(testSecret, models.UserClaims{UserID: 9}, time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/cards", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, 0, registry.Len())
}
