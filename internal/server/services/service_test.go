package services

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"passkeeper/internal/common"
	"passkeeper/internal/dbx"
	"passkeeper/internal/server/config"
	"passkeeper/internal/server/models"
	"passkeeper/internal/server/repositories/entries"
	"passkeeper/internal/server/repositories/users"
)

// fakeRepoManager vends in-memory repositories that ignore the DBTX handle.
// Transaction semantics are covered by the repository and dbx tests; here we
// exercise service logic.
type fakeRepoManager struct {
	users   *fakeUsersRepo
	entries *fakeEntriesRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:   &fakeUsersRepo{byID: map[string]*models.User{}},
		entries: &fakeEntriesRepo{byID: map[string]*models.Entry{}},
	}
}

func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository     { return m.users }
func (m *fakeRepoManager) Entries(dbx.DBTX) entries.Repository { return m.entries }
func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

type fakeUsersRepo struct {
	byID map[string]*models.User
}

func (r *fakeUsersRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	for _, u := range r.byID {
		if u.UserName == user.UserName {
			return nil, common.ErrUsernameTaken
		}
	}
	cp := *user
	r.byID[user.ID] = &cp
	return user, nil
}

func (r *fakeUsersRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.byID {
		if u.UserName == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUsersRepo) UpdatePasswordHash(_ context.Context, id string, hash string) error {
	u, ok := r.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *fakeUsersRepo) UpdateEncryptedKey(_ context.Context, id string, encryptedKey string) error {
	u, ok := r.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	u.EncryptedKey = encryptedKey
	return nil
}

type fakeEntriesRepo struct {
	byID map[string]*models.Entry
}

func (r *fakeEntriesRepo) Upsert(_ context.Context, e *models.Entry) error {
	for id, existing := range r.byID {
		if existing.UserID == e.UserID && existing.Account == e.Account {
			delete(r.byID, id)
			break
		}
	}
	cp := *e
	r.byID[e.ID] = &cp
	return nil
}

func (r *fakeEntriesRepo) ListByUser(_ context.Context, userID string) ([]*models.Entry, error) {
	var result []*models.Entry
	for _, e := range r.byID {
		if e.UserID == userID {
			cp := *e
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Account < result[j].Account })
	return result, nil
}

func (r *fakeEntriesRepo) GetByID(_ context.Context, userID, id string) (*models.Entry, error) {
	e, ok := r.byID[id]
	if !ok || e.UserID != userID {
		return nil, common.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEntriesRepo) UpdateByID(_ context.Context, e *models.Entry) error {
	existing, ok := r.byID[e.ID]
	if !ok || existing.UserID != e.UserID {
		return common.ErrNotFound
	}
	existing.Account = e.Account
	existing.Username = e.Username
	existing.Secret = e.Secret
	return nil
}

func (r *fakeEntriesRepo) DeleteByID(_ context.Context, userID, id string) error {
	e, ok := r.byID[id]
	if !ok || e.UserID != userID {
		return common.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeEntriesRepo) Search(_ context.Context, userID, query string) ([]*models.Entry, error) {
	all, _ := r.ListByUser(context.Background(), userID)
	q := strings.ToLower(query)
	var result []*models.Entry
	for _, e := range all {
		if strings.Contains(strings.ToLower(e.Account), q) || strings.Contains(strings.ToLower(e.Username), q) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *fakeEntriesRepo) UpdateSecret(_ context.Context, userID, id, secret string) error {
	e, ok := r.byID[id]
	if !ok || e.UserID != userID {
		return common.ErrNotFound
	}
	e.Secret = secret
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return cfg
}

// newServices builds both services over shared fakes and a sqlmock DB used
// only for transaction begin/commit.
func newServices(t *testing.T, cfg *config.Config) (*UserService, *EntryService, *fakeRepoManager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	m := newFakeRepoManager()
	us, err := NewUserService(db, m, cfg)
	require.NoError(t, err)
	es, err := NewEntryService(db, m, cfg)
	require.NoError(t, err)
	return us, es, m, mock
}
