package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/barkingside-hub/autoconfirm/pkg/core/rules"
	"github.com/barkingside-hub/autoconfirm/pkg/db"
)

func newTestServer(t *testing.T, ruleSet ...rules.AutoAcceptRule) (*Server, *db.MemoryRuleStore) {
	t.Helper()

	store, err := db.NewMemoryRuleStoreWith(context.Background(), ruleSet)
	require.NoError(t, err)

	server := NewServer(store, nil, zap.NewNop())
	server.now = func() time.Time {
		return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	}
	return server, store
}

func doJSON(t *testing.T, server *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	return rec
}

func kitchenRule(name string, priority int) rules.AutoAcceptRule {
	minShifts := 5
	return rules.AutoAcceptRule{
		Name:               name,
		Enabled:            true,
		Priority:           priority,
		ShiftTypeID:        "kitchen-prep",
		MinCompletedShifts: &minShifts,
		CriteriaLogic:      rules.LogicAnd,
	}
}

func TestHandleEvaluate_AutoConfirm(t *testing.T) {
	server, _ := newTestServer(t, kitchenRule("kitchen regulars", 10))

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rec := doJSON(t, server, http.MethodPost, "/v1/evaluate", map[string]any{
		"shiftContext": map[string]any{
			"shiftTypeId": "kitchen-prep",
			"location":    "ilford",
			"startTime":   now.Add(48 * time.Hour),
		},
		"volunteerContext": map[string]any{
			"completedShifts": 8,
		},
		"now": now,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp decisionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, rules.DecisionAutoConfirm, resp.Decision)
	assert.NotEmpty(t, resp.MatchedRuleID)
}

func TestHandleEvaluate_LeavePending(t *testing.T) {
	server, _ := newTestServer(t, kitchenRule("kitchen regulars", 10))

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rec := doJSON(t, server, http.MethodPost, "/v1/evaluate", map[string]any{
		"shiftContext": map[string]any{
			"shiftTypeId": "kitchen-prep",
			"startTime":   now.Add(48 * time.Hour),
		},
		"volunteerContext": map[string]any{
			"completedShifts": 1,
		},
		"now": now,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp decisionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, rules.DecisionLeavePending, resp.Decision)
	assert.Empty(t, resp.MatchedRuleID)
}

func TestHandleEvaluate_RejectsIncompleteShiftContext(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/v1/evaluate", map[string]any{
		"volunteerContext": map[string]any{},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, server, http.MethodPost, "/v1/evaluate", map[string]any{
		"shiftContext": map[string]any{"shiftTypeId": "kitchen-prep"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleEvaluate_EmptyBody(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/v1/evaluate", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleEvaluateSignup_UnavailableInRulesFileMode(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/v1/signups/evaluate", map[string]any{
		"volunteerId": "vol-1",
		"shiftId":     "shift-1",
	})
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestRuleCRUD(t *testing.T) {
	server, _ := newTestServer(t)

	// Create
	rec := doJSON(t, server, http.MethodPost, "/v1/rules/", kitchenRule("kitchen regulars", 10))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created rules.AutoAcceptRule
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	// List
	rec = doJSON(t, server, http.MethodGet, "/v1/rules/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []rules.AutoAcceptRule
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)

	// Get
	rec = doJSON(t, server, http.MethodGet, "/v1/rules/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Update
	updated := created
	updated.Name = "kitchen regulars v2"
	rec = doJSON(t, server, http.MethodPut, "/v1/rules/"+created.ID, updated)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, server, http.MethodGet, "/v1/rules/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched rules.AutoAcceptRule
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, "kitchen regulars v2", fetched.Name)

	// Delete
	rec = doJSON(t, server, http.MethodDelete, "/v1/rules/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, server, http.MethodGet, "/v1/rules/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateRule_RejectsInvalidRule(t *testing.T) {
	server, _ := newTestServer(t)

	invalid := kitchenRule("", 10)
	rec := doJSON(t, server, http.MethodPost, "/v1/rules/", invalid)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateRule_NotFound(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doJSON(t, server, http.MethodPut, "/v1/rules/no-such-rule", kitchenRule("ghost", 1))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteRule_NotFound(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doJSON(t, server, http.MethodDelete, "/v1/rules/no-such-rule", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doJSON(t, server, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	server, _ := newTestServer(t, kitchenRule("kitchen regulars", 10))

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rec := doJSON(t, server, http.MethodPost, "/v1/evaluate", map[string]any{
		"shiftContext": map[string]any{
			"shiftTypeId": "kitchen-prep",
			"startTime":   now.Add(48 * time.Hour),
		},
		"volunteerContext": map[string]any{"completedShifts": 8},
		"now":              now,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, server, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(),
		fmt.Sprintf(`decision=%q`, rules.DecisionAutoConfirm))
}
