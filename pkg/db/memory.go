package db

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/barkingside-hub/autoconfirm/pkg/core/rules"
)

// MemoryRuleStore is an insertion-ordered, in-memory RuleStore. It backs the
// offline CLI mode (rules loaded from a YAML file) and tests. Reads return
// copies, so callers can treat results as an immutable snapshot.
type MemoryRuleStore struct {
	mu    sync.RWMutex
	rules []rules.AutoAcceptRule
}

// NewMemoryRuleStore creates an empty in-memory rule store
func NewMemoryRuleStore() *MemoryRuleStore {
	return &MemoryRuleStore{}
}

// NewMemoryRuleStoreWith creates a store pre-populated with the given rules,
// preserving their order as the creation order. Rules without an id get one.
func NewMemoryRuleStoreWith(ctx context.Context, ruleSet []rules.AutoAcceptRule) (*MemoryRuleStore, error) {
	store := NewMemoryRuleStore()
	for i := range ruleSet {
		rule := ruleSet[i]
		if err := store.InsertRule(ctx, &rule); err != nil {
			return nil, fmt.Errorf("failed to load rule %d (%q): %w", i, rule.Name, err)
		}
	}
	return store, nil
}

// CandidateRules returns enabled rules in scope for the shift, ordered by
// priority descending with insertion order as the tie-break.
func (s *MemoryRuleStore) CandidateRules(ctx context.Context, shiftTypeID, location string) ([]rules.AutoAcceptRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var candidates []rules.AutoAcceptRule
	for _, rule := range s.rules {
		if !rule.Enabled || !rule.AppliesTo(shiftTypeID, location) {
			continue
		}
		candidates = append(candidates, rule)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority > candidates[j].Priority
	})

	return candidates, nil
}

// ListRules returns all rules in insertion order
func (s *MemoryRuleStore) ListRules(ctx context.Context) ([]rules.AutoAcceptRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]rules.AutoAcceptRule, len(s.rules))
	copy(out, s.rules)
	return out, nil
}

// GetRule returns the rule with the given id
func (s *MemoryRuleStore) GetRule(ctx context.Context, id string) (rules.AutoAcceptRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rule := range s.rules {
		if rule.ID == id {
			return rule, nil
		}
	}
	return rules.AutoAcceptRule{}, fmt.Errorf("rule %s: %w", id, ErrNotFound)
}

// InsertRule validates and stores a new rule, assigning an id and creation
// time if the caller left them unset
func (s *MemoryRuleStore) InsertRule(ctx context.Context, rule *rules.AutoAcceptRule) error {
	if err := rules.Validate(rule); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = time.Now().UTC()
	}

	s.rules = append(s.rules, *rule)
	return nil
}

// UpdateRule validates and replaces an existing rule, keeping its place in
// the creation order
func (s *MemoryRuleStore) UpdateRule(ctx context.Context, rule *rules.AutoAcceptRule) error {
	if err := rules.Validate(rule); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.rules {
		if s.rules[i].ID == rule.ID {
			rule.CreatedAt = s.rules[i].CreatedAt
			s.rules[i] = *rule
			return nil
		}
	}
	return fmt.Errorf("rule %s: %w", rule.ID, ErrNotFound)
}

// DeleteRule removes the rule with the given id
func (s *MemoryRuleStore) DeleteRule(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.rules {
		if s.rules[i].ID == id {
			s.rules = append(s.rules[:i], s.rules[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("rule %s: %w", id, ErrNotFound)
}
