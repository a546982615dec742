package collaborators

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// localEarningsStore persists earnings as a single JSON file, read
// whole and rewritten atomically on every ApplyUpdates call. Intended
// for single-process local/dev deployments; the cache wrapper in
// cache.go is what makes repeated Get calls cheap.
type localEarningsStore struct {
	mu   sync.Mutex
	path string
}

// NewLocalEarningsStore opens (creating if absent) a JSON-file-backed
// earnings store at path.
func NewLocalEarningsStore(path string) (EarningsStore, error) {
	if err := ensureJSONFile(path, map[string]EarningsRecord{}); err != nil {
		return nil, err
	}
	return &localEarningsStore{path: path}, nil
}

func (s *localEarningsStore) Get(_ context.Context, email string) (EarningsRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.load()
	if err != nil {
		return EarningsRecord{}, err
	}
	key := normalizeEmail(email)
	if rec, ok := records[key]; ok {
		return rec, nil
	}
	return EarningsRecord{Email: key}, nil
}

func (s *localEarningsStore) ApplyUpdates(_ context.Context, updates []EarningsUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.load()
	if err != nil {
		return err
	}
	for _, u := range updates {
		key := normalizeEmail(u.Email)
		rec := records[key]
		rec.Email = key
		rec.Hands += u.Hands
		rec.ChipsDelta += u.ChipsDelta
		rec.Hands6992 += u.Hands6992
		rec.ChipsDelta6992 += u.ChipsDelta6992
		records[key] = rec
	}
	return s.save(records)
}

func (s *localEarningsStore) Close() error { return nil }

func (s *localEarningsStore) load() (map[string]EarningsRecord, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("collaborators: read earnings file: %w", err)
	}
	var records map[string]EarningsRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("collaborators: decode earnings file: %w", err)
	}
	if records == nil {
		records = map[string]EarningsRecord{}
	}
	return records, nil
}

func (s *localEarningsStore) save(records map[string]EarningsRecord) error {
	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("collaborators: encode earnings file: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("collaborators: write earnings file: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// localAllowList reads a flat JSON array of emails from a file on every
// GetAllowedEmails call, matching the reference system's static-file
// allow-list. Opening only creates an empty file if none exists.
type localAllowList struct {
	mu   sync.Mutex
	path string
}

// NewLocalAllowList opens (creating if absent) a JSON-array-backed allow
// list at path.
func NewLocalAllowList(path string) (AllowList, error) {
	if err := ensureJSONFile(path, []string{}); err != nil {
		return nil, err
	}
	return &localAllowList{path: path}, nil
}

func (a *localAllowList) GetAllowedEmails(_ context.Context) (map[string]struct{}, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	raw, err := os.ReadFile(a.path)
	if err != nil {
		return nil, fmt.Errorf("collaborators: read allow-list file: %w", err)
	}
	var emails []string
	if err := json.Unmarshal(raw, &emails); err != nil {
		return nil, fmt.Errorf("collaborators: decode allow-list file: %w", err)
	}
	out := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		out[normalizeEmail(e)] = struct{}{}
	}
	return out, nil
}

func (a *localAllowList) Close() error { return nil }

func ensureJSONFile(path string, empty any) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("collaborators: stat %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("collaborators: mkdir %s: %w", dir, err)
		}
	}
	raw, err := json.Marshal(empty)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
