package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

const fileExt = ".json"

var (
	ErrNotFound   = errors.New("cache entry not found")
	ErrExpired    = errors.New("cache entry expired")
	ErrInvalidKey = errors.New("cache key cannot be empty")
	ErrDisabled   = errors.New("cache is disabled")
)

// Options configures NewFileStore.
type Options struct {
	Directory  string
	Enabled    bool
	TTLSeconds int
	MaxSizeMB  int
}

// FileStore keeps entries as one JSON file per key. Safe for concurrent use.
type FileStore struct {
	dir       string
	enabled   bool
	ttl       int
	maxSizeMB int

	mu sync.RWMutex
}

// NewFileStore creates the cache directory if needed. A disabled store
// accepts every call and returns ErrDisabled.
func NewFileStore(opts Options) (*FileStore, error) {
	if !opts.Enabled {
		return &FileStore{}, nil
	}
	if opts.Directory == "" {
		return nil, errors.New("cache directory cannot be empty")
	}
	if opts.TTLSeconds == 0 {
		opts.TTLSeconds = DefaultTTLSeconds
	}
	if err := ValidateTTL(opts.TTLSeconds); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.Directory, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &FileStore{
		dir:       opts.Directory,
		enabled:   true,
		ttl:       opts.TTLSeconds,
		maxSizeMB: opts.MaxSizeMB,
	}, nil
}

// Get returns the entry for key, ErrNotFound when absent and ErrExpired
// when stale. Stale files are removed.
func (s *FileStore) Get(key string) (*Entry, error) {
	if !s.enabled {
		return nil, ErrDisabled
	}
	if key == "" {
		return nil, ErrInvalidKey
	}

	s.mu.RLock()
	path := s.path(key)
	data, err := os.ReadFile(path)
	s.mu.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache entry: %w", err)
	}

	if entry.IsExpired() {
		s.mu.Lock()
		_ = os.Remove(path)
		s.mu.Unlock()
		return nil, ErrExpired
	}
	return &entry, nil
}

// Set writes data under key, replacing any previous entry. The write goes
// through a temp file and rename so readers never see a partial entry.
func (s *FileStore) Set(key string, data json.RawMessage) error {
	if !s.enabled {
		return ErrDisabled
	}
	if key == "" {
		return ErrInvalidKey
	}

	raw, err := json.MarshalIndent(NewEntry(key, data, s.ttl), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to rename cache file: %w", err)
	}
	return s.evictLocked()
}

// Delete removes key. Missing keys are not an error.
func (s *FileStore) Delete(key string) error {
	if !s.enabled {
		return ErrDisabled
	}
	if key == "" {
		return ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cache file: %w", err)
	}
	return nil
}

// Clear removes every entry.
func (s *FileStore) Clear() error {
	if !s.enabled {
		return ErrDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := s.filesLocked()
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := os.Remove(f.path); err != nil {
			return fmt.Errorf("failed to remove cache file %s: %w", filepath.Base(f.path), err)
		}
	}
	return nil
}

// Size returns the total bytes held by entries.
func (s *FileStore) Size() (int64, error) {
	if !s.enabled {
		return 0, ErrDisabled
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	files, err := s.filesLocked()
	if err != nil {
		return 0, err
	}
	var total int64
	for _, f := range files {
		total += f.size
	}
	return total, nil
}

// Enabled reports whether the store caches anything.
func (s *FileStore) Enabled() bool { return s.enabled }

// Dir returns the cache directory.
func (s *FileStore) Dir() string { return s.dir }

// TTL returns the TTL applied to new entries, in seconds.
func (s *FileStore) TTL() int { return s.ttl }

type cacheFile struct {
	path  string
	size  int64
	mtime int64
}

func (s *FileStore) filesLocked() ([]cacheFile, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}
	files := make([]cacheFile, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() || filepath.Ext(de.Name()) != fileExt {
			continue
		}
		info, infoErr := de.Info()
		if infoErr != nil {
			continue
		}
		files = append(files, cacheFile{
			path:  filepath.Join(s.dir, de.Name()),
			size:  info.Size(),
			mtime: info.ModTime().UnixNano(),
		})
	}
	return files, nil
}

// evictLocked drops the oldest entries until the directory fits maxSizeMB.
func (s *FileStore) evictLocked() error {
	if s.maxSizeMB <= 0 {
		return nil
	}
	files, err := s.filesLocked()
	if err != nil {
		return err
	}
	limit := int64(s.maxSizeMB) * 1024 * 1024
	var total int64
	for _, f := range files {
		total += f.size
	}
	sort.Slice(files, func(i, j int) bool { return files[i].mtime < files[j].mtime })
	for _, f := range files {
		if total <= limit {
			break
		}
		if err := os.Remove(f.path); err == nil {
			total -= f.size
		}
	}
	return nil
}

// path maps a key to its file. Keys from Key are hex; others get separators replaced.
func (s *FileStore) path(key string) string {
	safe := make([]rune, 0, len(key))
	for _, r := range key {
		switch r {
		case '/', '\\', ':':
			r = '_'
		}
		safe = append(safe, r)
	}
	return filepath.Join(s.dir, string(safe)+fileExt)
}
