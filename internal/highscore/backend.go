package highscore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// ErrCorrupt is returned when a stored record cannot be decoded.
var ErrCorrupt = errors.New("highscore: corrupt record")

// Backend persists one leaderboard per title.
type Backend interface {
	Load(title string) ([]Entry, error)
	Save(title string, entries []Entry) error
}

// Key returns the record key of a title's leaderboard.
func Key(title string) string {
	return "arcade." + title + ".highscores"
}

// FileStore keeps every leaderboard in one JSON document of key/value
// records, one key per title.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store at path. A leading ~ expands to the home
// directory. The file is created on first save.
func NewFileStore(path string) (*FileStore, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("highscore: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	return &FileStore{path: path}, nil
}

// Path returns the resolved file path.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("highscore: cannot read %s: %w", s.path, err)
	}
	records := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	return records, nil
}

// Load returns the stored rows of title. A missing file or key is empty.
func (s *FileStore) Load(title string) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		return nil, err
	}
	raw, ok := records[Key(title)]
	if !ok {
		return nil, nil
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: key %s: %v", ErrCorrupt, Key(title), err)
	}
	return entries, nil
}

// Save replaces the rows of title, keeping other titles' records. The file
// is written to a temp file and renamed into place.
func (s *FileStore) Save(title string, entries []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		// A corrupt document is replaced rather than blocking saves forever.
		records = map[string]json.RawMessage{}
	}
	if entries == nil {
		entries = []Entry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("highscore: cannot encode entries: %w", err)
	}
	records[Key(title)] = raw

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("highscore: cannot encode records: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("highscore: cannot create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".highscores-*")
	if err != nil {
		return fmt.Errorf("highscore: cannot create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("highscore: cannot write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("highscore: cannot close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("highscore: cannot replace %s: %w", s.path, err)
	}
	return nil
}

// MemoryStore is a Backend held in memory, used for SSH sessions without a
// database and in tests.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string][]Entry
	// Fail makes every call return this error when set.
	Fail error
}

// NewMemoryStore creates an empty in-memory backend.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string][]Entry{}}
}

func (m *MemoryStore) Load(title string) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return nil, m.Fail
	}
	return slices.Clone(m.records[title]), nil
}

func (m *MemoryStore) Save(title string, entries []Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	m.records[title] = slices.Clone(entries)
	return nil
}
