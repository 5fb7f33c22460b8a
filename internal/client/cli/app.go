package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/qdrive/internal/client/api"
	"github.com/dmitrijs2005/qdrive/internal/client/config"
	"github.com/fatih/color"
)

// apiClient is the part of *api.Client the commands use.
type apiClient interface {
	LoggedIn() bool
	Register(ctx context.Context, in api.RegisterRequest) (*api.User, error)
	Login(ctx context.Context, email, password string) (*api.User, error)
	Me(ctx context.Context) (*api.User, error)
	RequestRide(ctx context.Context, pickup, destination api.Point) (*api.Ride, error)
	GetRide(ctx context.Context, id string) (*api.Ride, error)
	ProfilePictureUploadURL(ctx context.Context) (*api.UploadURL, error)
	UploadToPresignedURL(ctx context.Context, url string, data []byte) error
	Logout(ctx context.Context) error
}

type App struct {
	config *config.Config
	client apiClient
	reader *bufio.Reader
	out    io.Writer
	user   *api.User
}

func NewApp(c *config.Config) (*App, error) {
	client, err := api.New(c.ServerURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}
	return &App{config: c, client: client, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

func (a *App) isLoggedIn() bool {
	return a.user != nil && a.client.LoggedIn()
}

func (a *App) status() string {
	if a.user == nil {
		return ""
	}
	return fmt.Sprintf(" (%s %s)", a.user.Email, a.user.Role)
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	printlnFn(fmt.Sprintf("Welcome to QDrive CLI, server %s (type 'help' for commands)", a.config.ServerURL))
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) success(format string, args ...any) {
	color.New(color.FgGreen).Fprintf(a.out, format+"\n", args...)
}

func (a *App) failure(err error) error {
	color.New(color.FgRed).Fprintf(a.out, "error: %v\n", err)
	return err
}

func (a *App) requireLogin() error {
	if !a.isLoggedIn() {
		return a.failure(fmt.Errorf("not logged in"))
	}
	return nil
}
