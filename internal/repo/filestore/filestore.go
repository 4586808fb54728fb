package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hamed0406/endpointwatch/internal/domain"
	"github.com/hamed0406/endpointwatch/internal/repo"
)

var _ repo.Store = (*Store)(nil)

// LatestKey is the state marker: empty after a clean run, the failing
// summary otherwise.
const LatestKey = "LATEST"

// Store lays runs out like an object-storage bucket:
// <dir>/<year>/<YYYYmmdd_HHMMSS>.json plus <dir>/LATEST.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("results dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Key returns the object key a run is stored under, relative to the root.
func Key(r *domain.Run) string {
	t := r.StartedAt.UTC()
	return fmt.Sprintf("%d/%s.json", t.Year(), t.Format("20060102_150405"))
}

func (s *Store) SaveRun(ctx context.Context, r *domain.Run) error {
	b, err := domain.MarshalPretty(r)
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}
	return s.put(Key(r), b)
}

func (s *Store) LatestRun(ctx context.Context) (*domain.Run, error) {
	files, err := filepath.Glob(filepath.Join(s.dir, "*", "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	if len(files) == 0 {
		return nil, nil
	}
	// names sort chronologically
	sort.Slice(files, func(i, j int) bool { return filepath.Base(files[i]) < filepath.Base(files[j]) })
	b, err := os.ReadFile(files[len(files)-1])
	if err != nil {
		return nil, fmt.Errorf("read run: %w", err)
	}
	var r domain.Run
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("decode run: %w", err)
	}
	return &r, nil
}

func (s *Store) LastFailed(ctx context.Context) (bool, error) {
	b, err := os.ReadFile(filepath.Join(s.dir, LatestKey))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read state: %w", err)
	}
	return strings.TrimSpace(string(b)) != "", nil
}

func (s *Store) SetState(ctx context.Context, sum domain.Summary) error {
	var content []byte
	if !sum.Success {
		b, err := domain.MarshalPretty(sum)
		if err != nil {
			return fmt.Errorf("encode state: %w", err)
		}
		content = b
	}
	return s.put(LatestKey, content)
}

func (s *Store) Close() error { return nil }

// put writes through a temp file so readers never see a partial object.
func (s *Store) put(key string, content []byte) error {
	dst := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".put-*")
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("put %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}
