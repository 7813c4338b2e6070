// Package cli implements the interactive console for a local PassKeeper
// vault. All vault operations go through a Session, so nothing works until
// the master password has been entered.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"passkeeper/internal/client/backup"
	"passkeeper/internal/client/config"
	"passkeeper/internal/vault"
)

type App struct {
	config  *config.Config
	session *vault.Session
	backup  *backup.Client
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	store := vault.NewFileStore(c.VaultPath)

	return &App{
		config:  c,
		session: vault.NewSession(store),
		backup:  backup.NewClient(c),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.session.Logout()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.Unlocked()
}
