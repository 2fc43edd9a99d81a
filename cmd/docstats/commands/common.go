package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docstats/internal/config"
	"git.home.luguber.info/inful/docstats/internal/logfields"
	"git.home.luguber.info/inful/docstats/internal/observability"
)

// Global carries state shared by all subcommands.
type Global struct {
	Logger  *slog.Logger
	Context context.Context
	Out     io.Writer // command output; os.Stdout when nil
}

// CLI definition and global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docstats.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" default:"withargs" help:"Scan git history, fetch analytics and write the stats artifact"`
	Fetch    FetchCmd    `cmd:"" help:"Fetch the Search Console summary and print it as JSON"`
	Copy     CopyCmd     `cmd:"" help:"Copy the stats artifact into the site build output"`
	Summary  SummaryCmd  `cmd:"" help:"Print dashboard figures derived from the stats artifact"`
	Watch    WatchCmd    `cmd:"" help:"Regenerate the stats artifact whenever content changes"`
	Init     InitCmd     `cmd:"" help:"Write a default configuration file"`
}

// AfterApply runs after flag parsing; it loads .env files and sets up an
// initial logger from the environment. loadConfig refines it once the
// configuration file is read.
func (c *CLI) AfterApply() error {
	config.LoadDotEnv()
	logging := config.LoggingConfig{Level: config.LogLevelInfo, Format: config.LogFormatText}
	if env, err := config.ReadEnv(); err == nil {
		env.ApplyLoggingOverrides(&logging)
	}
	c.setupLogging(logging)
	return nil
}

func (c *CLI) setupLogging(l config.LoggingConfig) *slog.Logger {
	level := l.Level.SlogLevel()
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := observability.NewLogger(os.Stderr, level, string(l.Format))
	slog.SetDefault(logger)
	return logger
}

// loadConfig reads the configuration file and the environment and applies the
// logging settings they select.
func loadConfig(g *Global, root *CLI) (*config.Config, config.Env, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, config.Env{}, err
	}
	env, err := config.ReadEnv()
	if err != nil {
		return nil, config.Env{}, err
	}
	env.ApplyLoggingOverrides(&cfg.Logging)
	g.Logger = root.setupLogging(cfg.Logging)
	return cfg, env, nil
}

// loadConfigOrDefault is loadConfig for generate, which must always leave an
// artifact behind: an unusable configuration file is logged and the defaults,
// with environment overrides, are used instead.
func loadConfigOrDefault(g *Global, root *CLI) (*config.Config, config.Env) {
	cfg, env, err := loadConfig(g, root)
	if err == nil {
		return cfg, env
	}
	slog.Error("Configuration unusable, continuing with defaults", logfields.Path(root.Config), logfields.Error(err))

	cfg = config.Default()
	env, eerr := config.ReadEnv()
	if eerr != nil {
		slog.Warn("Ignoring unreadable environment settings", logfields.Error(eerr))
		env = config.Env{}
	}
	env.ApplyLoggingOverrides(&cfg.Logging)
	g.Logger = root.setupLogging(cfg.Logging)
	return cfg, env
}

func (g *Global) ctx() context.Context {
	if g.Context == nil {
		return context.Background()
	}
	return g.Context
}

func (g *Global) stdout() io.Writer {
	if g.Out == nil {
		return os.Stdout
	}
	return g.Out
}
