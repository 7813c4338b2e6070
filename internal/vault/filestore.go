package vault

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/natefinch/atomic"

	"passkeeper/internal/common"
)

// fileFormatVersion tags the on-disk vault layout so future changes can keep
// reading old vaults.
const fileFormatVersion = 1

// vaultFile is the on-disk representation: a version tag, the base64 salt,
// and the account-keyed entry map.
type vaultFile struct {
	Version int               `json:"version"`
	Salt    string            `json:"salt,omitempty"`
	Entries map[string]*Entry `json:"entries"`
}

// FileStore persists a vault as a single JSON file. Every write goes through
// write-to-temp-then-atomic-rename, so an interrupted operation leaves the
// previous file intact.
type FileStore struct {
	path string
}

// NewFileStore binds a store to the given file path. The file is created
// lazily on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) load() (*vaultFile, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &vaultFile{Version: fileFormatVersion, Entries: map[string]*Entry{}}, nil
		}
		return nil, fmt.Errorf("%w: reading vault file: %v", common.ErrStorageUnavailable, err)
	}

	f := &vaultFile{}
	if err := json.Unmarshal(raw, f); err != nil {
		return nil, fmt.Errorf("%w: parsing vault file: %v", common.ErrStorageUnavailable, err)
	}
	if f.Version != fileFormatVersion {
		return nil, fmt.Errorf("%w: unsupported vault file version %d", common.ErrStorageUnavailable, f.Version)
	}
	if f.Entries == nil {
		f.Entries = map[string]*Entry{}
	}
	return f, nil
}

func (s *FileStore) save(f *vaultFile) error {
	raw, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding vault file: %w", err)
	}
	if err := atomic.WriteFile(s.path, bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("%w: writing vault file: %v", common.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *FileStore) Salt() ([]byte, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	if f.Salt == "" {
		return nil, nil
	}
	salt, err := base64.StdEncoding.DecodeString(f.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: corrupt salt encoding", common.ErrStorageUnavailable)
	}
	return salt, nil
}

func (s *FileStore) SetSalt(salt []byte) error {
	f, err := s.load()
	if err != nil {
		return err
	}
	f.Salt = base64.StdEncoding.EncodeToString(salt)
	return s.save(f)
}

func (s *FileStore) Get(account string) (*Entry, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	e, ok := f.Entries[account]
	if !ok {
		return nil, common.ErrNotFound
	}
	return e, nil
}

func (s *FileStore) Put(e *Entry) error {
	f, err := s.load()
	if err != nil {
		return err
	}
	f.Entries[e.Account] = e
	return s.save(f)
}

func (s *FileStore) Delete(account string) error {
	f, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := f.Entries[account]; !ok {
		return common.ErrNotFound
	}
	delete(f.Entries, account)
	return s.save(f)
}

func (s *FileStore) List() ([]*Entry, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	result := make([]*Entry, 0, len(f.Entries))
	for _, e := range f.Entries {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Account < result[j].Account })
	return result, nil
}

func (s *FileStore) ReplaceAll(salt []byte, entries []*Entry) error {
	f := &vaultFile{Version: fileFormatVersion, Entries: make(map[string]*Entry, len(entries))}
	if salt != nil {
		f.Salt = base64.StdEncoding.EncodeToString(salt)
	}
	for _, e := range entries {
		f.Entries[e.Account] = e
	}
	return s.save(f)
}
