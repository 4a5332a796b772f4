package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/delta-engine/store/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	srv := httptest.NewServer(NewRouter(NewHandler(store)))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func rawDelta(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

// =============================================================================
// NAMED DELTA CRUD
// =============================================================================

func TestCreateAndGetDelta(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/deltas", map[string]any{
		"id":     "eom",
		"name":   "End of month",
		"config": rawDelta(t, `{"day": 31}`),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[DeltaDTO](t, resp)
	assert.Equal(t, "eom", created.ID)
	assert.Equal(t, "End of month", created.Name)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/deltas/eom", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeBody[DeltaDTO](t, resp)
	require.NotNil(t, got.Config.Day)
	assert.Equal(t, 31.0, *got.Config.Day)
}

func TestCreateDelta_Validation(t *testing.T) {
	srv := newTestServer(t)

	// Missing id.
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/deltas", map[string]any{
		"config": rawDelta(t, `{}`),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Invalid config never reaches storage.
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/deltas", map[string]any{
		"id":     "bad",
		"config": rawDelta(t, `{"month": 13}`),
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody[ErrorResponse](t, resp)
	assert.Equal(t, "Invalid delta configuration", body.Error)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/deltas/bad", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateDelta_DuplicateConflicts(t *testing.T) {
	srv := newTestServer(t)

	payload := map[string]any{"id": "dup", "config": rawDelta(t, `{"days": 1}`)}
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/deltas", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/deltas", payload)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestListDeltas(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/deltas", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeBody[[]DeltaDTO](t, resp))

	for _, id := range []string{"one", "two"} {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/deltas", map[string]any{
			"id": id, "config": rawDelta(t, `{"days": 1}`),
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/deltas", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeBody[[]DeltaDTO](t, resp), 2)
}

func TestDeleteDelta(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/deltas", map[string]any{
		"id": "gone", "config": rawDelta(t, `{"days": 1}`),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/deltas/gone", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/deltas/gone", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// =============================================================================
// OPERATIONS
// =============================================================================

func TestApplyStoredDelta(t *testing.T) {
	srv := newTestServer(t)

	// Last Friday of the month: force day 31 (clamped), then search back.
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/deltas", map[string]any{
		"id":     "last-friday",
		"config": rawDelta(t, `{"day": 31, "week_day": ["FR", -1]}`),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/deltas/last-friday/apply", map[string]any{
		"date": "2023-06-15",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[ApplyResponse](t, resp)
	assert.Equal(t, "2023-06-30T00:00:00.000", body.Result)
}

func TestApplyStoredDelta_UnknownID(t *testing.T) {
	srv := newTestServer(t)
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/deltas/nope/apply", map[string]any{
		"date": "2023-06-15",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestApplyInline(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/apply", map[string]any{
		"delta": rawDelta(t, `{"months": 1}`),
		"date":  "2023-01-31",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[ApplyResponse](t, resp)
	assert.Equal(t, "2023-02-28T00:00:00.000", body.Result)
}

func TestApplyInline_BadDate(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/apply", map[string]any{
		"delta": rawDelta(t, `{"months": 1}`),
		"date":  "soon",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestDiffDates(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/diff", map[string]any{
		"date1": "2020-01-01",
		"date2": "2021-12-31T23:59:59",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[DiffResponse](t, resp)

	require.NotNil(t, body.Delta.Years)
	assert.Equal(t, -1.0, *body.Delta.Years)
	require.NotNil(t, body.Delta.Months)
	assert.Equal(t, -11.0, *body.Delta.Months)
	require.NotNil(t, body.Delta.Days)
	assert.Equal(t, -30.0, *body.Delta.Days)
	require.NotNil(t, body.Delta.Hours)
	assert.Equal(t, -23.0, *body.Delta.Hours)
}

func TestDiffDates_CountLeapDays(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/diff", map[string]any{
		"date1":           "2021-01-01",
		"date2":           "2019-01-01",
		"count_leap_days": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[DiffResponse](t, resp)
	require.NotNil(t, body.Delta.LeapDays)
	assert.Equal(t, 1.0, *body.Delta.LeapDays)
}

func TestConvertInline(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/convert", map[string]any{
		"delta": rawDelta(t, `{"weeks": 2, "days": 1}`),
		"unit":  "seconds",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[ConvertResponse](t, resp)
	assert.Equal(t, "seconds", body.Unit)
	assert.Equal(t, 1296000.0, body.Value)
}

func TestConvertInline_WithReference(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/convert", map[string]any{
		"delta":     rawDelta(t, `{"months": 3}`),
		"unit":      "days",
		"reference": "2024-01-15",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[ConvertResponse](t, resp)
	assert.Equal(t, 91.0, body.Value)
}

func TestConvertInline_UnknownUnit(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/convert", map[string]any{
		"delta": rawDelta(t, `{"days": 1}`),
		"unit":  "fortnights",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestConvertStoredDelta(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/deltas", map[string]any{
		"id": "fortnight", "config": rawDelta(t, `{"weeks": 2}`),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/deltas/fortnight/convert", map[string]any{
		"unit": "days",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[ConvertResponse](t, resp)
	assert.Equal(t, 14.0, body.Value)
}
