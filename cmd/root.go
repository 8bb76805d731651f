package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/config"
	"github.com/abhisek/skillpath/internal/engine"
	"github.com/abhisek/skillpath/internal/logging"
	"github.com/abhisek/skillpath/internal/store"
)

// options holds the persistent flags and the configuration they resolve to.
type options struct {
	dbPath      string
	configPath  string
	catalogPath string
	logLevel    string
	logFormat   string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "skillpath",
		Short: "Personalized learning path recommendations",
		Long: "skillpath measures the gap between a learner's skills and their goals, " +
			"then recommends an ordered, budget-aware sequence of learning resources.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.dbPath, "db", "", "Path to SQLite history database (overrides SKILLPATH_DB env var)")
	pf.StringVar(&opts.configPath, "config", "", "Path to config file (overrides SKILLPATH_CONFIG env var)")
	pf.StringVar(&opts.catalogPath, "catalog", "", "Path to a resource catalog YAML file (default: built-in catalog)")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&opts.logFormat, "log-format", "", "Log format: console or json")

	root.AddCommand(
		newGenerateCmd(opts),
		newCompareCmd(opts),
		newCatalogCmd(opts),
		newSkillsCmd(opts),
		newProfileCmd(),
		newHistoryCmd(opts),
		newStatsCmd(opts),
		newResetCmd(opts),
		newVersionCmd(),
	)
	return root
}

// Execute runs the CLI.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the CLI with ctx.
func ExecuteContext(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// load resolves configuration and initializes logging. Flags take
// precedence over the config file and environment.
func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		if err := logging.ValidLevel(o.logLevel); err != nil {
			return err
		}
		cfg.Log.Level = o.logLevel
	}
	if o.logFormat != "" {
		if o.logFormat != "console" && o.logFormat != "json" {
			return fmt.Errorf("unknown log format %q", o.logFormat)
		}
		cfg.Log.Format = o.logFormat
	}
	if o.catalogPath != "" {
		cfg.Catalog.Path = o.catalogPath
	}

	logCfg := cfg.Logging()
	logCfg.Output = cmd.ErrOrStderr()
	logging.Init(logCfg)

	o.cfg = cfg
	return nil
}

func (o *options) catalog() (*catalog.Catalog, error) {
	if o.cfg.Catalog.Path == "" {
		return catalog.Default()
	}
	return catalog.Load(o.cfg.Catalog.Path)
}

func (o *options) engine() (*engine.Engine, error) {
	c, err := o.catalog()
	if err != nil {
		return nil, err
	}
	return engine.New(c, o.cfg.EngineOptions(logging.Logger())), nil
}

// resolveDBPath returns the database path using --db (highest priority), then
// store.path from config, then SKILLPATH_DB and the default XDG path.
func (o *options) resolveDBPath() (string, error) {
	for _, p := range []string{o.dbPath, o.cfg.Store.Path} {
		if p != "" {
			return p, store.EnsureDir(p)
		}
	}
	return store.DefaultDBPath()
}

func (o *options) openStore() (*store.Store, error) {
	dbPath, err := o.resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	logging.Debug().Str("path", dbPath).Msg("opened history database")
	return s, nil
}
