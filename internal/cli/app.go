package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/resourcehub/internal/catalog"
	"github.com/dmitrijs2005/resourcehub/internal/dispatch"
	"github.com/dmitrijs2005/resourcehub/internal/logging"
	"github.com/dmitrijs2005/resourcehub/internal/models"
	"github.com/dmitrijs2005/resourcehub/internal/upload"
)

type bookmarkLoader interface {
	Load(ctx context.Context) error
}

type sessionAuth interface {
	SignIn(token string) (models.User, error)
	SignOut()
	CurrentUser(ctx context.Context) (models.User, error)
}

type submitter interface {
	Submit(ctx context.Context, d upload.Draft) error
}

type documentDispatcher interface {
	Dispatch(ctx context.Context, sessionID string, res models.Resource, mode dispatch.Mode) error
}

// Deps are the collaborators an App drives.
type Deps struct {
	View       *catalog.View
	Bookmarks  bookmarkLoader
	Auth       sessionAuth
	Uploader   submitter
	Dispatcher documentDispatcher
	SessionID  string
	In         io.Reader
	Out        io.Writer
	Log        logging.Logger
}

type App struct {
	view       *catalog.View
	bookmarks  bookmarkLoader
	auth       sessionAuth
	uploader   submitter
	dispatcher documentDispatcher
	sessionID  string
	reader     *bufio.Reader
	out        io.Writer
	log        logging.Logger

	// draft survives a failed submit so the user can retry it.
	draft *upload.Draft
}

func NewApp(d Deps) *App {
	return &App{
		view:       d.View,
		bookmarks:  d.Bookmarks,
		auth:       d.Auth,
		uploader:   d.Uploader,
		dispatcher: d.Dispatcher,
		sessionID:  d.SessionID,
		reader:     bufio.NewReader(d.In),
		out:        d.Out,
		log:        d.Log.With("module", "cli"),
	}
}

// Run loads the catalog and bookmarks and then serves commands until the
// input ends or the user quits.
func (a *App) Run(ctx context.Context) {
	_ = a.Reload(ctx)
	a.println("Type 'help' for the list of commands.")
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	_, err := a.auth.CurrentUser(context.Background())
	return err == nil
}

func (a *App) status() string {
	p := a.view.Page()
	user := "guest"
	if u, err := a.auth.CurrentUser(context.Background()); err == nil {
		user = u.ID
	}
	return fmt.Sprintf("%s | page %d/%d | %d/%d resources", user, p.Number, max(1, p.TotalPages), p.Matches, p.Total)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
