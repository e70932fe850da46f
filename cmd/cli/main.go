package main

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/barkingside-hub/autoconfirm/cmd/cli/commands"
	"github.com/barkingside-hub/autoconfirm/internal/config"
	"github.com/barkingside-hub/autoconfirm/pkg/core/services"
	"github.com/barkingside-hub/autoconfirm/pkg/db"
	"github.com/barkingside-hub/autoconfirm/pkg/postgres"
	"github.com/barkingside-hub/autoconfirm/pkg/rediscache"
	"github.com/barkingside-hub/autoconfirm/pkg/utils/logging"
)

var (
	configPath string
	app        *commands.AppContext
	pgDB       *postgres.DB
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "autoconfirm",
		Short: "Auto-confirm engine for volunteer shift signups",
		Long:  `Evaluates volunteer shift signups against configured auto-accept rules, and manages the rule set.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(cmd.Name())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if pgDB != nil {
				pgDB.Close()
			}
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: autoconfirm_config.yaml)")

	rootCmd.AddCommand(commands.ServeCmd(getApp()))
	rootCmd.AddCommand(commands.EvaluateCmd(getApp()))
	rootCmd.AddCommand(commands.ListRulesCmd(getApp()))
	rootCmd.AddCommand(commands.LintRulesCmd(getApp()))
	rootCmd.AddCommand(commands.SimulateCmd(getApp()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// getApp returns the shared AppContext, creating the empty shell on first use.
// Dependencies are populated by initApp before any command runs.
func getApp() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{Ctx: context.Background()}
	}
	return app
}

// initApp sets up logger, config, stores and the optional rule cache
func initApp(commandName string) error {
	appCtx := getApp()
	var err error

	appCtx.Logger, err = logging.InitLogger(commandName)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if configPath != "" {
		appCtx.Cfg, err = config.LoadFromPath(configPath)
	} else {
		appCtx.Cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	appCtx.Logger.Debug("Configuration loaded successfully")

	if appCtx.Cfg.DatabaseURL != "" {
		appCtx.Logger.Info("Connecting to database")
		pgDB, err = postgres.NewDB(appCtx.Ctx, appCtx.Cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		if err := pgDB.RunMigrations(appCtx.Ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		appCtx.RuleStore = pgDB
		appCtx.Store = pgDB

		if appCtx.Cfg.RedisAddr != "" {
			appCtx.Logger.Info("Enabling rule snapshot cache", zap.String("redis_addr", appCtx.Cfg.RedisAddr))
			client := redis.NewClient(&redis.Options{
				Addr:     appCtx.Cfg.RedisAddr,
				Password: appCtx.Cfg.RedisPassword,
			})
			appCtx.RuleStore = rediscache.New(pgDB, client, appCtx.Cfg.RuleCacheTTL(), appCtx.Logger)
		}

		appCtx.Logger.Info("Database initialized successfully")
		return nil
	}

	// Rules-file mode: load the YAML rule set into the in-memory store
	appCtx.Logger.Info("Loading rules file", zap.String("path", appCtx.Cfg.RulesFile))
	ruleSet, err := services.LoadRulesFile(appCtx.Cfg.RulesFile)
	if err != nil {
		return err
	}

	store, err := db.NewMemoryRuleStoreWith(appCtx.Ctx, ruleSet)
	if err != nil {
		return err
	}
	appCtx.RuleStore = store
	appCtx.Logger.Info("Rules loaded", zap.Int("count", len(ruleSet)))

	return nil
}
