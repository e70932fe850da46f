package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/barkingside-hub/autoconfirm/internal/config"
	"github.com/barkingside-hub/autoconfirm/pkg/core/services"
	"github.com/barkingside-hub/autoconfirm/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg *config.Config

	// RuleStore is the postgres store, optionally wrapped by the redis
	// snapshot cache, or the in-memory store in rules-file mode
	RuleStore db.RuleStore

	// Store is nil in rules-file mode; commands that need volunteer and
	// shift lookups must check for it
	Store services.EvaluateSignupStore

	Logger *zap.Logger
	Ctx    context.Context
}
