package cli

import (
	"bufio"
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passkeeper/internal/client/backup"
	"passkeeper/internal/client/config"
	"passkeeper/internal/vault"
)

// ------------ helpers ------------

func readerFromLines(lines ...string) *bufio.Reader {
	if len(lines) == 0 || lines[len(lines)-1] != "" {
		lines = append(lines, "")
	}
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
}

// stubPassword replaces the terminal password reader with a queue of canned
// answers, one per call.
func stubPassword(t *testing.T, passwords ...string) {
	t.Helper()
	old := readPassword
	i := 0
	readPassword = func(int) ([]byte, error) {
		p := passwords[i]
		i++
		return []byte(p), nil
	}
	t.Cleanup(func() { readPassword = old })
}

func newTestApp(t *testing.T, lines ...string) (*App, *bytes.Buffer) {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.VaultPath = filepath.Join(t.TempDir(), "vault.json")

	var out bytes.Buffer
	app := &App{
		config:  cfg,
		session: vault.NewSession(vault.NewFileStore(cfg.VaultPath)),
		backup:  backup.NewClient(cfg),
		reader:  readerFromLines(lines...),
		out:     &out,
	}
	return app, &out
}

func loggedInApp(t *testing.T, lines ...string) (*App, *bytes.Buffer) {
	t.Helper()
	app, out := newTestApp(t, lines...)
	require.NoError(t, app.session.Login([]byte("master-pw")))
	return app, out
}

// ------------ tests ------------

func TestLoginCommand(t *testing.T) {
	stubPassword(t, "master-pw")
	app, out := newTestApp(t)

	app.Login(context.Background())

	assert.True(t, app.isLoggedIn())
	assert.Contains(t, out.String(), "Vault unlocked")
}

func TestLoginEmptyPassword(t *testing.T) {
	stubPassword(t, "")
	app, out := newTestApp(t)

	app.Login(context.Background())

	assert.False(t, app.isLoggedIn())
	assert.Contains(t, out.String(), "Login unsuccessful")
}

func TestAddAndShow(t *testing.T) {
	stubPassword(t, "supersecret")
	app, out := loggedInApp(t, "Gmail", "alice@gmail.com", "Gmail")

	app.add(context.Background())
	assert.Contains(t, out.String(), "Saved")

	out.Reset()
	app.show(context.Background())
	assert.Contains(t, out.String(), "supersecret")
}

func TestListAndSearch(t *testing.T) {
	app, out := loggedInApp(t, "git")
	require.NoError(t, app.session.Put("Gmail", "alice", "s1"))
	require.NoError(t, app.session.Put("GitHub", "alice", "s2"))

	app.list(context.Background())
	assert.Contains(t, out.String(), "Gmail")
	assert.Contains(t, out.String(), "GitHub")
	assert.NotContains(t, out.String(), "s1")

	out.Reset()
	app.search(context.Background())
	assert.Contains(t, out.String(), "GitHub")
	assert.NotContains(t, out.String(), "Gmail")
}

func TestDeleteCommand(t *testing.T) {
	app, out := loggedInApp(t, "Gmail", "Gmail")
	require.NoError(t, app.session.Put("Gmail", "alice", "s1"))

	app.delete(context.Background())
	assert.Contains(t, out.String(), "Deleted")

	out.Reset()
	app.show(context.Background())
	assert.Contains(t, out.String(), "Error")
}

func TestGenerateCommand(t *testing.T) {
	app, out := newTestApp(t, "20")

	app.generate(context.Background())

	password := lastOutputLine(out.String())
	assert.Len(t, password, 20)
}

// lastOutputLine strips the prompt noise and returns the final printed token.
func lastOutputLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	last := lines[len(lines)-1]
	return strings.TrimSpace(strings.TrimPrefix(last, ">"))
}

func TestGenerateDefaultLength(t *testing.T) {
	app, out := newTestApp(t, "", "")

	app.generate(context.Background())

	password := lastOutputLine(out.String())
	assert.Len(t, password, 16)
}

func TestExportCommand(t *testing.T) {
	app, out := loggedInApp(t)
	require.NoError(t, app.session.Put("Gmail", "alice", "plain-secret"))

	app.export(context.Background())
	assert.Contains(t, out.String(), "plain-secret")
	assert.Contains(t, out.String(), "Gmail")
}

func TestClearVaultNeedsConfirmation(t *testing.T) {
	app, out := loggedInApp(t, "no", "yes")
	require.NoError(t, app.session.Put("Gmail", "alice", "s1"))

	app.clearVault(context.Background())
	assert.Contains(t, out.String(), "Cancelled")
	assert.True(t, app.isLoggedIn())

	out.Reset()
	app.clearVault(context.Background())
	assert.Contains(t, out.String(), "cleared")
	assert.False(t, app.isLoggedIn())
}

func TestChangeMasterPasswordCommand(t *testing.T) {
	stubPassword(t, "master-pw", "new-master")
	app, out := loggedInApp(t)
	require.NoError(t, app.session.Put("Gmail", "alice", "s1"))

	app.changeMasterPassword(context.Background())
	assert.Contains(t, out.String(), "Master password changed")

	app.session.Logout()
	require.NoError(t, app.session.Login([]byte("new-master")))
	secret, err := app.session.Reveal("Gmail")
	require.NoError(t, err)
	assert.Equal(t, "s1", secret)
}

func TestCommandsRequireLogin(t *testing.T) {
	app, out := newTestApp(t)

	app.list(context.Background())
	assert.Contains(t, out.String(), vault.ErrVaultLocked.Error())
}
