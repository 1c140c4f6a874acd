package cli

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/adforge/adforge-cli/pkg/api"
	"github.com/adforge/adforge-cli/pkg/session"
)

// EnvAPIURL overrides the backend base URL when set.
const EnvAPIURL = "ADFORGE_API_URL"

// CommandContext bundles the dependencies every command needs: the backend
// client, the local session store, and a logger.
type CommandContext struct {
	Client *api.Client
	Store  *session.Store
	Log    *logrus.Logger
}

// NewCommandContext builds a context from flags and environment. An empty
// apiURL falls back to ADFORGE_API_URL, then the client default.
func NewCommandContext(apiURL string, verbose bool) *CommandContext {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if apiURL == "" {
		apiURL = os.Getenv(EnvAPIURL)
	}

	return &CommandContext{
		Client: api.New(apiURL, log),
		Store:  session.NewStore("", log),
		Log:    log,
	}
}
