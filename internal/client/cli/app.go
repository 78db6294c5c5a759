// Package cli implements the interactive Petbook terminal client: a small
// REPL over the session store, the active-pet store and the feed controller.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/avelichko/petbook/internal/client/api"
	"github.com/avelichko/petbook/internal/client/config"
	"github.com/avelichko/petbook/internal/client/feed"
	"github.com/avelichko/petbook/internal/client/pets"
	"github.com/avelichko/petbook/internal/client/session"
	"github.com/avelichko/petbook/internal/client/storage"
	"github.com/avelichko/petbook/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	api     *api.Client
	session *session.Store
	pets    *pets.Store
	feed    *feed.Controller
	reader  *bufio.Reader
	out     io.Writer

	// reactions the acting pet made in this run, post id -> reaction id.
	// Used to toggle like/unlike without a per-post server lookup.
	myReactions map[int64]int64

	// in-flight guards for REPL-level mutations (follow, send).
	busy map[string]bool
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, repo, err := storage.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient := api.New(cfg.APIBaseURL, cfg.MediaBaseURL, log)
	sessionStore := session.New(ctx, repo, apiClient, log, cfg.RefreshInterval)
	apiClient.SetTokenSource(sessionStore.AccessToken)

	petStore := pets.New(ctx, repo, apiClient, sessionStore, log)
	feedCtrl := feed.New(apiClient, petStore, log, cfg.PageSize)

	return &App{
		config:      cfg,
		log:         log,
		db:          db,
		api:         apiClient,
		session:     sessionStore,
		pets:        petStore,
		feed:        feedCtrl,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		myReactions: make(map[int64]int64),
		busy:        make(map[string]bool),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.CloseResources()

	// Pick the session's pets back up after a reload.
	if a.session.IsAuthenticated() {
		_ = a.pets.LoadOwnedPets(ctx)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) CloseResources() {
	a.session.Close()
	_ = a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	s := ""
	if snap := a.session.Snapshot(); snap != nil {
		s = snap.DisplayName
		if pet := a.pets.ActivePet(); pet != nil {
			s = fmt.Sprintf("%s as %s", s, pet.Name)
		}
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// beginOp marks a logical operation in flight. It reports false when the
// same operation is already running, so double submissions are dropped
// client-side rather than deduplicated by the server.
func (a *App) beginOp(name string) bool {
	if a.busy[name] {
		return false
	}
	a.busy[name] = true
	return true
}

func (a *App) endOp(name string) {
	delete(a.busy, name)
}
