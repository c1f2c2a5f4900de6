package dataset

import (
	"bytes"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/bobby-s-dev/weather-dashboard/assets"
	"github.com/bobby-s-dev/weather-dashboard/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const EmbeddedSource = "embedded"

// Snapshot is an immutable view of the dataset at one version.
type Snapshot struct {
	Records  []models.WeatherRecord
	Version  string
	Source   string
	LoadedAt time.Time
}

// Store holds the current dataset. Every successful load that changes the
// data gets a fresh version identifier so derived results can be keyed by it.
type Store struct {
	path   string
	logger *zap.Logger

	mu       sync.RWMutex
	snapshot Snapshot
	modTime  time.Time
	size     int64
}

// NewStore returns an empty store. An empty path serves the embedded
// dataset.
func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger,
	}
}

// Load reads the dataset if it changed since the last load and reports
// whether a new version was installed. On error the previous snapshot stays
// in place.
func (s *Store) Load() (bool, error) {
	if s.path == "" {
		return s.loadEmbedded()
	}

	info, err := os.Stat(s.path)
	if err != nil {
		return false, fmt.Errorf("stat dataset %s: %w", s.path, err)
	}

	s.mu.RLock()
	unchanged := s.snapshot.Version != "" && info.ModTime().Equal(s.modTime) && info.Size() == s.size
	s.mu.RUnlock()
	if unchanged {
		s.logger.Debug("Dataset unchanged, skipping reload", zap.String("path", s.path))
		return false, nil
	}

	file, err := os.Open(s.path)
	if err != nil {
		return false, fmt.Errorf("open dataset %s: %w", s.path, err)
	}
	defer file.Close()

	records, err := Parse(file)
	if err != nil {
		return false, fmt.Errorf("parse dataset %s: %w", s.path, err)
	}

	s.install(records, s.path)

	s.mu.Lock()
	s.modTime = info.ModTime()
	s.size = info.Size()
	s.mu.Unlock()

	return true, nil
}

func (s *Store) loadEmbedded() (bool, error) {
	s.mu.RLock()
	loaded := s.snapshot.Version != ""
	s.mu.RUnlock()
	if loaded {
		return false, nil
	}

	records, err := Parse(bytes.NewReader(assets.DefaultDataset))
	if err != nil {
		return false, fmt.Errorf("parse embedded dataset: %w", err)
	}

	s.install(records, EmbeddedSource)
	return true, nil
}

func (s *Store) install(records []models.WeatherRecord, source string) {
	snapshot := Snapshot{
		Records:  records,
		Version:  uuid.NewString(),
		Source:   source,
		LoadedAt: time.Now(),
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	s.logger.Info("Dataset loaded",
		zap.String("source", source),
		zap.String("version", snapshot.Version),
		zap.Int("records", len(records)))
}

// Snapshot returns the current dataset. Records must not be modified.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Version != ""
}
