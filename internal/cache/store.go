package cache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"go.uber.org/zap"

	"picon/internal/model"
)

const (
	LatestFile = "latest.json"
	StatsFile  = "stats.json"
	MarkedFile = "marker_symbols.json"
)

// Store reads and writes whole JSON files in one directory.
// It is used from a single goroutine at a time per file.
type Store struct {
	dir    string
	logger *zap.Logger
}

func New(dir string, logger *zap.Logger) *Store {
	return &Store{dir: dir, logger: logger.With(zap.String("component", "cache"))}
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) LoadLatest() (*model.Snapshot, error) {
	var snap model.Snapshot
	if err := s.load(LatestFile, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *Store) SaveLatest(snap *model.Snapshot) error {
	return s.save(LatestFile, snap)
}

func (s *Store) LoadStats() (*model.MarketStats, error) {
	var stats model.MarketStats
	if err := s.load(StatsFile, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *Store) SaveStats(stats *model.MarketStats) error {
	return s.save(StatsFile, stats)
}

func (s *Store) LoadMarked() ([]string, error) {
	var symbols []string
	if err := s.load(MarkedFile, &symbols); err != nil {
		return nil, err
	}
	return symbols, nil
}

// SaveMarked writes the marked symbols sorted, so equal sets give equal files.
func (s *Store) SaveMarked(symbols []string) error {
	sorted := slices.Clone(symbols)
	if sorted == nil {
		sorted = []string{}
	}
	slices.Sort(sorted)
	return s.save(MarkedFile, sorted)
}

func (s *Store) load(name string, out any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Error{Op: "load", Name: name, Kind: ErrNotFound}
		}
		return &Error{Op: "load", Name: name, Kind: ErrIO, Err: err}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Op: "load", Name: name, Kind: ErrParse, Err: err}
	}
	return nil
}

// save writes to a temp file in the cache directory and renames it into place.
func (s *Store) save(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &Error{Op: "save", Name: name, Kind: ErrParse, Err: err}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &Error{Op: "save", Name: name, Kind: ErrIO, Err: err}
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return &Error{Op: "save", Name: name, Kind: ErrIO, Err: err}
	}
	tmpName := tmp.Name()

	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		os.Remove(tmpName)
		return &Error{Op: "save", Name: name, Kind: ErrIO, Err: err}
	}

	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmpName)
		return &Error{Op: "save", Name: name, Kind: ErrIO, Err: err}
	}

	s.logger.Debug("cache file written", zap.String("file", name), zap.Int("bytes", len(data)))
	return nil
}
