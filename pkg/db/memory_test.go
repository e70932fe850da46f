package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barkingside-hub/autoconfirm/pkg/core/rules"
)

func testRule(name string, priority int) rules.AutoAcceptRule {
	return rules.AutoAcceptRule{
		Name:          name,
		Enabled:       true,
		Priority:      priority,
		Global:        true,
		CriteriaLogic: rules.LogicAnd,
	}
}

func TestMemoryRuleStore_InsertAssignsIdentity(t *testing.T) {
	store := NewMemoryRuleStore()
	rule := testRule("regulars", 10)

	require.NoError(t, store.InsertRule(context.Background(), &rule))
	assert.NotEmpty(t, rule.ID)
	assert.False(t, rule.CreatedAt.IsZero())

	stored, err := store.GetRule(context.Background(), rule.ID)
	require.NoError(t, err)
	assert.Equal(t, "regulars", stored.Name)
}

func TestMemoryRuleStore_InsertRejectsInvalidRule(t *testing.T) {
	store := NewMemoryRuleStore()
	rule := testRule("", 10)

	assert.Error(t, store.InsertRule(context.Background(), &rule))

	all, err := store.ListRules(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMemoryRuleStore_GetMissingRule(t *testing.T) {
	store := NewMemoryRuleStore()

	_, err := store.GetRule(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRuleStore_UpdateKeepsCreationOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRuleStore()

	first := testRule("first", 5)
	second := testRule("second", 5)
	require.NoError(t, store.InsertRule(ctx, &first))
	require.NoError(t, store.InsertRule(ctx, &second))

	updated := first
	updated.Name = "first renamed"
	require.NoError(t, store.UpdateRule(ctx, &updated))

	all, err := store.ListRules(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "first renamed", all[0].Name)
	assert.Equal(t, first.CreatedAt, all[0].CreatedAt)
}

func TestMemoryRuleStore_UpdateMissingRule(t *testing.T) {
	store := NewMemoryRuleStore()
	rule := testRule("ghost", 1)
	rule.ID = "nope"

	assert.ErrorIs(t, store.UpdateRule(context.Background(), &rule), ErrNotFound)
}

func TestMemoryRuleStore_DeleteRule(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRuleStore()

	rule := testRule("short lived", 1)
	require.NoError(t, store.InsertRule(ctx, &rule))
	require.NoError(t, store.DeleteRule(ctx, rule.ID))

	_, err := store.GetRule(ctx, rule.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.DeleteRule(ctx, rule.ID), ErrNotFound)
}

func TestMemoryRuleStore_CandidateRulesFilterAndOrder(t *testing.T) {
	ctx := context.Background()

	global := testRule("global", 5)
	scoped := testRule("kitchen only", 10)
	scoped.Global = false
	scoped.ShiftTypeID = "kitchen-prep"
	other := testRule("dishwasher only", 20)
	other.Global = false
	other.ShiftTypeID = "dishwasher"
	disabled := testRule("disabled", 30)
	disabled.Enabled = false
	elsewhere := testRule("barking only", 40)
	elsewhere.Location = "barking"

	store, err := NewMemoryRuleStoreWith(ctx, []rules.AutoAcceptRule{
		global, scoped, other, disabled, elsewhere,
	})
	require.NoError(t, err)

	candidates, err := store.CandidateRules(ctx, "kitchen-prep", "ilford")
	require.NoError(t, err)

	require.Len(t, candidates, 2)
	assert.Equal(t, "kitchen only", candidates[0].Name)
	assert.Equal(t, "global", candidates[1].Name)
}

func TestMemoryRuleStore_CandidateRulesTieBreakByInsertionOrder(t *testing.T) {
	ctx := context.Background()

	store, err := NewMemoryRuleStoreWith(ctx, []rules.AutoAcceptRule{
		testRule("older", 5),
		testRule("newer", 5),
	})
	require.NoError(t, err)

	candidates, err := store.CandidateRules(ctx, "kitchen-prep", "ilford")
	require.NoError(t, err)

	require.Len(t, candidates, 2)
	assert.Equal(t, "older", candidates[0].Name)
	assert.Equal(t, "newer", candidates[1].Name)
}
