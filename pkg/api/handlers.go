package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/barkingside-hub/autoconfirm/pkg/core/rules"
	"github.com/barkingside-hub/autoconfirm/pkg/core/services"
	"github.com/barkingside-hub/autoconfirm/pkg/db"
)

const maxBodySize = 1 << 20 // 1MB

// evaluateRequest is the call shape of POST /v1/evaluate. Now is optional
// and defaults to the server clock; callers that need reproducible results
// (tests, previews) supply it explicitly.
type evaluateRequest struct {
	Shift     rules.ShiftContext     `json:"shiftContext"`
	Volunteer rules.VolunteerContext `json:"volunteerContext"`
	Now       *time.Time             `json:"now,omitempty"`
}

// evaluateSignupRequest is the call shape of POST /v1/signups/evaluate
type evaluateSignupRequest struct {
	VolunteerID string `json:"volunteerId"`
	ShiftID     string `json:"shiftId"`
}

type decisionResponse struct {
	Decision      rules.Decision `json:"decision"`
	MatchedRuleID string         `json:"matchedRuleId,omitempty"`
	MatchedRules  []string       `json:"matchedRuleIds,omitempty"`
	RuleErrors    []string       `json:"ruleErrors,omitempty"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	if req.Shift.ShiftTypeID == "" {
		s.respondError(w, http.StatusBadRequest, "shiftContext.shiftTypeId is required")
		return
	}
	if req.Shift.StartTime.IsZero() {
		s.respondError(w, http.StatusBadRequest, "shiftContext.startTime is required")
		return
	}

	now := s.now()
	if req.Now != nil {
		now = *req.Now
	}

	start := time.Now()
	decision, err := services.Decide(r.Context(), s.ruleStore, s.logger, rules.EvaluationContext{
		Shift:     req.Shift,
		Volunteer: req.Volunteer,
		Now:       now,
	})
	if err != nil {
		// Candidate retrieval failed: no decision can be made safely. The
		// caller must leave the signup pending; 503 signals exactly that.
		s.logger.Error("Evaluation failed", zap.Error(err))
		s.respondError(w, http.StatusServiceUnavailable, "rule evaluation unavailable, leave signup pending")
		return
	}

	s.metrics.ObserveDecision(string(decision.Decision), len(decision.RuleErrors), time.Since(start))
	s.respondJSON(w, http.StatusOK, toDecisionResponse(decision))
}

func (s *Server) handleEvaluateSignup(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.respondError(w, http.StatusNotImplemented, "signup lookup is not available in rules-file mode")
		return
	}

	var req evaluateSignupRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.VolunteerID == "" || req.ShiftID == "" {
		s.respondError(w, http.StatusBadRequest, "volunteerId and shiftId are required")
		return
	}

	start := time.Now()
	decision, err := services.EvaluateSignup(r.Context(), s.store, s.ruleStore, s.logger,
		req.VolunteerID, req.ShiftID, s.now())
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		s.logger.Error("Signup evaluation failed", zap.Error(err))
		s.respondError(w, http.StatusServiceUnavailable, "rule evaluation unavailable, leave signup pending")
		return
	}

	s.metrics.ObserveDecision(string(decision.Decision), len(decision.RuleErrors), time.Since(start))
	s.respondJSON(w, http.StatusOK, toDecisionResponse(decision))
}

func (s *Server) handleListRules(w http.ResponseWriter, r *http.Request) {
	ruleSet, err := s.ruleStore.ListRules(r.Context())
	if err != nil {
		s.logger.Error("Failed to list rules", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to list rules")
		return
	}
	s.respondJSON(w, http.StatusOK, ruleSet)
}

func (s *Server) handleGetRule(w http.ResponseWriter, r *http.Request) {
	rule, err := s.ruleStore.GetRule(r.Context(), chi.URLParam(r, "ruleID"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		s.logger.Error("Failed to get rule", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to get rule")
		return
	}
	s.respondJSON(w, http.StatusOK, rule)
}

// handleCreateRule persists a new rule. Validation here is authoritative:
// whatever the management UI checked client-side is re-checked on the
// server before anything is stored.
func (s *Server) handleCreateRule(w http.ResponseWriter, r *http.Request) {
	var rule rules.AutoAcceptRule
	if !s.decodeBody(w, r, &rule) {
		return
	}

	if err := s.ruleStore.InsertRule(r.Context(), &rule); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	for _, warning := range rules.Lint(&rule) {
		s.logger.Warn("Rule created with warning",
			zap.String("rule_id", rule.ID),
			zap.String("warning", warning))
	}

	s.respondJSON(w, http.StatusCreated, rule)
}

func (s *Server) handleUpdateRule(w http.ResponseWriter, r *http.Request) {
	var rule rules.AutoAcceptRule
	if !s.decodeBody(w, r, &rule) {
		return
	}
	rule.ID = chi.URLParam(r, "ruleID")

	if err := s.ruleStore.UpdateRule(r.Context(), &rule); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, rule)
}

func (s *Server) handleDeleteRule(w http.ResponseWriter, r *http.Request) {
	if err := s.ruleStore.DeleteRule(r.Context(), chi.URLParam(r, "ruleID")); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		s.logger.Error("Failed to delete rule", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to delete rule")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDecisionResponse(decision *services.SignupDecision) decisionResponse {
	resp := decisionResponse{
		Decision:      decision.Decision,
		MatchedRuleID: decision.MatchedRuleID,
	}
	for _, m := range decision.MatchedRules {
		resp.MatchedRules = append(resp.MatchedRules, m.RuleID)
	}
	for _, re := range decision.RuleErrors {
		resp.RuleErrors = append(resp.RuleErrors, re.Err.Error())
	}
	return resp
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if err == io.EOF {
			s.respondError(w, http.StatusBadRequest, "request body is required")
			return false
		}
		s.respondError(w, http.StatusBadRequest, "invalid JSON in request body")
		return false
	}
	return true
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
