package lybic

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/lybic/lybic-sdk-go/internal/api"
	"github.com/lybic/lybic-sdk-go/internal/app/computeruse"
	"github.com/lybic/lybic-sdk-go/internal/app/mobileuse"
	"github.com/lybic/lybic-sdk-go/internal/app/org"
	"github.com/lybic/lybic-sdk-go/internal/app/sandbox"
	"github.com/lybic/lybic-sdk-go/internal/app/script"
	"github.com/lybic/lybic-sdk-go/internal/app/shell"
	"github.com/lybic/lybic-sdk-go/internal/log"
	"github.com/lybic/lybic-sdk-go/internal/storage"
	"github.com/lybic/lybic-sdk-go/internal/storage/memory"
	"github.com/lybic/lybic-sdk-go/internal/storage/sqlite"
)

const (
	// DefaultEndpoint is the Lybic API endpoint used when none is configured.
	DefaultEndpoint = api.DefaultEndpoint
	// DefaultTimeout is the request timeout used when none is configured.
	DefaultTimeout = api.DefaultTimeout
	// TrialSessionTokenHeader authenticates trial sessions without an API key.
	TrialSessionTokenHeader = api.TrialSessionTokenHeader
)

// Config configures the SDK client.
//
// The SDK never reads the environment, callers (like the lybic CLI) resolve
// the values and pass them here.
type Config struct {
	// OrgID is the organization the client works on (required).
	OrgID string
	// APIKey authenticates the requests. Required unless ExtraHeaders has
	// the [TrialSessionTokenHeader] header.
	APIKey string
	// Endpoint is the API base URL.
	// Default: https://api.lybic.cn.
	Endpoint string
	// Timeout is applied to every non streaming request. Negative values
	// are replaced by the default with a warning.
	// Default: 10s.
	Timeout time.Duration
	// ExtraHeaders are sent on every request.
	ExtraHeaders map[string]string
	// HTTPClient is the HTTP client used for the requests.
	// Default: a new http.Client.
	HTTPClient *http.Client
	// MaxRetries is the number of retries of idempotent requests that fail
	// with network or server errors.
	// Default: 0.
	MaxRetries int
	// JournalPath is the SQLite database that records the executed actions.
	// When empty the actions are recorded in memory for the client lifetime.
	JournalPath string
	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.OrgID == "" {
		return fmt.Errorf("org id is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	return nil
}

// Client is the main SDK entry point for a Lybic organization.
//
// Create a Client with [New] and release its resources with [Client.Close].
// A Client is safe for concurrent use.
type Client struct {
	api         *api.Client
	orgID       string
	sandboxes   *sandbox.Service
	org         *org.Service
	shell       *shell.Service
	computerUse *computeruse.Service
	mobileUse   *mobileuse.Service
	scripts     *script.Service
	journal     storage.ActionJournal
	logger      log.Logger
	closeFn     func() error
}

// New creates a new SDK client.
//
// The caller must call [Client.Close] when done. Typically used with defer:
//
//	client, err := lybic.New(ctx, lybic.Config{OrgID: "ORG-xxxx", APIKey: "sk-xxxx"})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w: %w", err, ErrNotValid)
	}

	apiClient, err := api.NewClient(api.ClientConfig{
		Endpoint:     cfg.Endpoint,
		APIKey:       cfg.APIKey,
		ExtraHeaders: cfg.ExtraHeaders,
		Timeout:      cfg.Timeout,
		MaxRetries:   cfg.MaxRetries,
		HTTPClient:   cfg.HTTPClient,
		Logger:       cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w: %w", err, ErrNotValid)
	}

	c := &Client{api: apiClient, orgID: cfg.OrgID, logger: cfg.Logger, closeFn: func() error { return nil }}

	if cfg.JournalPath != "" {
		j, err := sqlite.NewJournal(ctx, sqlite.JournalConfig{DBPath: cfg.JournalPath, Logger: cfg.Logger})
		if err != nil {
			return nil, fmt.Errorf("could not open action journal: %w", err)
		}
		c.journal = j
		c.closeFn = j.Close
	} else {
		j, err := memory.NewJournal(memory.JournalConfig{Logger: cfg.Logger})
		if err != nil {
			return nil, fmt.Errorf("could not create action journal: %w", err)
		}
		c.journal = j
	}

	if err := c.initServices(apiClient.Endpoint()); err != nil {
		_ = c.closeFn()
		return nil, err
	}

	return c, nil
}

func (c *Client) initServices(endpoint string) error {
	var err error

	c.sandboxes, err = sandbox.NewService(sandbox.ServiceConfig{Requester: c.api, OrgID: c.orgID, Journal: c.journal, Logger: c.logger})
	if err != nil {
		return fmt.Errorf("could not create sandbox service: %w", err)
	}

	c.org, err = org.NewService(org.ServiceConfig{Requester: c.api, OrgID: c.orgID, Endpoint: endpoint, Logger: c.logger})
	if err != nil {
		return fmt.Errorf("could not create org service: %w", err)
	}

	c.shell, err = shell.NewService(shell.ServiceConfig{Requester: c.api, OrgID: c.orgID, Logger: c.logger})
	if err != nil {
		return fmt.Errorf("could not create shell service: %w", err)
	}

	c.computerUse, err = computeruse.NewService(computeruse.ServiceConfig{Requester: c.api, Logger: c.logger})
	if err != nil {
		return fmt.Errorf("could not create computer use service: %w", err)
	}

	c.mobileUse, err = mobileuse.NewService(mobileuse.ServiceConfig{Requester: c.api, Sandboxes: c.sandboxes, Logger: c.logger})
	if err != nil {
		return fmt.Errorf("could not create mobile use service: %w", err)
	}

	c.scripts, err = script.NewService(script.ServiceConfig{Executor: c.sandboxes, Logger: c.logger})
	if err != nil {
		return fmt.Errorf("could not create script service: %w", err)
	}

	return nil
}

// Close releases resources held by the client, including the journal database.
// After Close returns, the client must not be used.
func (c *Client) Close() error {
	return c.closeFn()
}

// OrgID returns the organization of the client.
func (c *Client) OrgID() string { return c.orgID }

// Endpoint returns the API base URL of the client.
func (c *Client) Endpoint() string { return c.api.Endpoint() }

// Headers returns a copy of the headers sent on every request, credentials included.
func (c *Client) Headers() http.Header { return c.api.Headers() }
