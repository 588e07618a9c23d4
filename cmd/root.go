// ABOUTME: Root command for zelqora CLI
// ABOUTME: Handles global flags and wires the client stack together

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/GramosTV/zelqora-client/internal/api"
	"github.com/GramosTV/zelqora-client/internal/config"
	"github.com/GramosTV/zelqora-client/internal/keystore"
	"github.com/GramosTV/zelqora-client/internal/logger"
	"github.com/GramosTV/zelqora-client/internal/models"
	"github.com/GramosTV/zelqora-client/internal/securemsg"
	"github.com/GramosTV/zelqora-client/internal/session"
	"github.com/GramosTV/zelqora-client/internal/transport"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "zelqora",
	Short: "CLI for the Zelqora healthcare platform",
	Long: `zelqora is a command-line client for the Zelqora healthcare platform.

It manages appointments, secure messages, and reminders against the
Zelqora backend, handling login and token refresh automatically.

Environment Variables:
  ZELQORA_API_URL      Backend API URL (required unless --api-url is set)
  ZELQORA_SESSION_FILE Where the login session is stored`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides ZELQORA_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// app bundles the wired client stack used by every command.
type app struct {
	cfg     *config.Config
	store   *keystore.Store
	api     *api.Client
	session *session.Manager
}

// newApp wires configuration, the session store, and the HTTP stack.
// Login, registration, and token refresh go through a bare client so
// the auth transport never recurses into itself.
func newApp() (*app, error) {
	logger.Init()

	if apiURL != "" {
		os.Setenv("ZELQORA_API_URL", apiURL)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	store := keystore.New(cfg.SessionFile)
	codec := securemsg.New(cfg.MessageKey)
	timeout := time.Duration(cfg.HTTPTimeout) * time.Second
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	base := transport.BaseTransport(cfg.SkipSSLValidation)

	bare := api.New(cfg.APIURL, &http.Client{Timeout: timeout, Transport: base}, codec, cacheTTL)
	coord := session.NewCoordinator(bare, store)

	// 401-driven refresh goes through the session manager so a rejected
	// exchange ends the session, not just the stored tokens. The manager
	// is built after the authed client it serves, hence the indirection.
	var mgr *session.Manager
	authed := api.New(cfg.APIURL, &http.Client{
		Timeout: timeout,
		Transport: transport.Chain(base,
			transport.WithLogging(),
			transport.WithNotify(transport.LogNotifier{}),
			transport.WithAuth(store, transport.RefresherFunc(func(ctx context.Context) (models.TokenPair, error) {
				return mgr.Refresh(ctx)
			})),
		),
	}, codec, cacheTTL)

	mgr = session.NewManager(authed, store, coord, time.Duration(cfg.RefreshLeeway)*time.Second)

	return &app{
		cfg:     cfg,
		store:   store,
		api:     authed,
		session: mgr,
	}, nil
}

// requireUser restores the saved session and returns the signed-in user,
// or an error telling the caller to log in.
func (a *app) requireUser(ctx context.Context) (*models.User, error) {
	if err := a.session.Restore(ctx); err != nil {
		return nil, err
	}
	user := a.session.CurrentUser()
	if user == nil {
		return nil, errors.New("not logged in; run 'zelqora login' first")
	}
	return user, nil
}

// fail prints an error and returns the canonical error exit code.
func fail(w io.Writer, err error) int {
	fmt.Fprintf(w, "Error: %v\n", err)
	return 2
}
