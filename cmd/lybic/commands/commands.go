package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/lybic/lybic-sdk-go/internal/conventions"
	"github.com/lybic/lybic-sdk-go/internal/log"
	"github.com/lybic/lybic-sdk-go/internal/model"
	"github.com/lybic/lybic-sdk-go/internal/printer"
	storageio "github.com/lybic/lybic-sdk-go/internal/storage/io"
	"github.com/lybic/lybic-sdk-go/internal/utils/env"
	"github.com/lybic/lybic-sdk-go/pkg/lybic"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"

	formatTable = "table"
	formatJSON  = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string

	DataDir     string
	ProfilePath string
	OrgID       string
	APIKey      string
	Endpoint    string
	Timeout     time.Duration
	Headers     []string
	JournalPath string
	NoJournal   bool

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)

	defaultDataDir := conventions.DataDir(homedir.HomeDir())
	app.Flag("data-dir", "Directory of the CLI profile and action journal.").Envar("LYBIC_DATA_DIR").Default(defaultDataDir).StringVar(&c.DataDir)
	app.Flag("profile", "Path to the YAML profile (default: <data-dir>/config.yaml).").Envar("LYBIC_PROFILE").StringVar(&c.ProfilePath)

	// Connection flags have no defaults so the profile values can be used when unset.
	app.Flag("org-id", "Lybic organization ID.").Envar(conventions.EnvOrgID).StringVar(&c.OrgID)
	app.Flag("api-key", "Lybic API key.").Envar(conventions.EnvAPIKey).StringVar(&c.APIKey)
	app.Flag("endpoint", "Lybic API endpoint.").Envar(conventions.EnvEndpoint).StringVar(&c.Endpoint)
	app.Flag("timeout", "Request timeout.").DurationVar(&c.Timeout)
	app.Flag("header", "Extra request header in KEY=VALUE form, KEY alone takes the value from the environment (repeatable).").Short('H').StringsVar(&c.Headers)
	app.Flag("journal-path", "Path to the action journal database (default: <data-dir>/journal.db).").Envar("LYBIC_JOURNAL_PATH").StringVar(&c.JournalPath)
	app.Flag("no-journal", "Don't record the executed actions.").BoolVar(&c.NoJournal)

	return c
}

// NewClient returns a Lybic client configured with the flags, falling back to
// the profile values. It must be closed after use.
func (r RootCommand) NewClient(ctx context.Context) (*lybic.Client, error) {
	profile, err := r.loadProfile(ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := r.clientConfig(profile)
	if err != nil {
		return nil, err
	}

	client, err := lybic.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("could not create lybic client: %w", err)
	}

	return client, nil
}

func (r RootCommand) loadProfile(ctx context.Context) (model.Profile, error) {
	path := r.ProfilePath
	explicit := path != ""
	if !explicit {
		path = conventions.ProfilePath(r.DataDir)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return model.Profile{}, fmt.Errorf("invalid profile path: %w", err)
	}

	repo := storageio.NewProfileYAMLRepository(os.DirFS(filepath.Dir(abs)))
	p, err := repo.GetProfile(ctx, filepath.Base(abs))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) && !explicit {
			r.Logger.Debugf("No profile at %s", path)
			return model.Profile{}, nil
		}
		return model.Profile{}, fmt.Errorf("could not load profile: %w", err)
	}

	r.Logger.Debugf("Profile loaded from %s", path)
	return p, nil
}

// clientConfig merges the flags over the profile values.
func (r RootCommand) clientConfig(p model.Profile) (lybic.Config, error) {
	headers, err := env.ParseHeaderSpecs(r.Headers)
	if err != nil {
		return lybic.Config{}, fmt.Errorf("invalid headers: %w", err)
	}

	cfg := lybic.Config{
		OrgID:        firstNonEmpty(r.OrgID, p.OrgID),
		APIKey:       firstNonEmpty(r.APIKey, p.APIKey),
		Endpoint:     firstNonEmpty(r.Endpoint, p.Endpoint),
		Timeout:      r.Timeout,
		ExtraHeaders: env.MergeMaps(p.Headers, headers),
		Logger:       r.Logger,
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = p.Timeout
	}

	if !r.NoJournal {
		cfg.JournalPath = firstNonEmpty(r.JournalPath, p.JournalPath, conventions.JournalPath(r.DataDir))
	}

	if cfg.OrgID == "" {
		return lybic.Config{}, fmt.Errorf("org id is required, use --org-id, $%s or the profile", conventions.EnvOrgID)
	}

	return cfg, nil
}

// Printer returns the printer of an output format.
func (r RootCommand) Printer(format string) printer.Printer {
	if format == formatJSON {
		return printer.NewJSONPrinter(r.Stdout)
	}
	return printer.NewTablePrinter(r.Stdout)
}

func formatFlag(cmd *kingpin.CmdClause, format *string) {
	cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(format, formatTable, formatJSON)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// readInput returns the argument, or the standard input when it's "-".
func readInput(arg string, stdin io.Reader) ([]byte, error) {
	if arg != "-" {
		return []byte(arg), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("could not read stdin: %w", err)
	}
	return data, nil
}
