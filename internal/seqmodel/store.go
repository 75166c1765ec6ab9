package seqmodel

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ErrArtifactsMissing signals that the model or its scaler is absent.
// A normal, non-fatal condition meaning "use the statistical method";
// a model without its scaler (or vice versa) counts as missing.
var ErrArtifactsMissing = errors.New("model artifacts not available")

// Pair is a loaded model plus the scaler it was fitted with.
type Pair struct {
	Model  *Model
	Scaler *Scaler
}

// Store loads model/scaler artifact pairs with process-wide caching:
// concurrent forecasts share one load, and a pair is reloaded only
// when an underlying file's modification time changes.
type Store struct {
	mu    sync.Mutex
	cache *gocache.Cache
}

type cachedPair struct {
	pair        *Pair
	modelMTime  time.Time
	scalerMTime time.Time
}

// NewStore creates an empty artifact store.
func NewStore() *Store {
	return &Store{cache: gocache.New(gocache.NoExpiration, 0)}
}

// LoadPair returns the artifact pair at the given paths, from cache
// when fresh. Missing files return ErrArtifactsMissing; corrupt files
// return a load error. Both conditions mean "model unavailable" to the
// forecasting engine.
func (s *Store) LoadPair(modelPath, scalerPath string) (*Pair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	modelInfo, err := os.Stat(modelPath)
	if err != nil {
		return nil, ErrArtifactsMissing
	}
	scalerInfo, err := os.Stat(scalerPath)
	if err != nil {
		return nil, ErrArtifactsMissing
	}

	key := modelPath + "|" + scalerPath
	if v, ok := s.cache.Get(key); ok {
		cached := v.(cachedPair)
		if cached.modelMTime.Equal(modelInfo.ModTime()) && cached.scalerMTime.Equal(scalerInfo.ModTime()) {
			return cached.pair, nil
		}
	}

	var m Model
	if err := readGob(modelPath, &m); err != nil {
		return nil, fmt.Errorf("loading model: %w", err)
	}
	var sc Scaler
	if err := readGob(scalerPath, &sc); err != nil {
		return nil, fmt.Errorf("loading scaler: %w", err)
	}

	pair := &Pair{Model: &m, Scaler: &sc}
	s.cache.Set(key, cachedPair{
		pair:        pair,
		modelMTime:  modelInfo.ModTime(),
		scalerMTime: scalerInfo.ModTime(),
	}, gocache.NoExpiration)
	return pair, nil
}

// SaveArtifacts persists a model and its scaler to co-located paths.
func SaveArtifacts(modelPath, scalerPath string, m *Model, sc *Scaler) error {
	if err := writeGob(modelPath, m); err != nil {
		return fmt.Errorf("saving model: %w", err)
	}
	if err := writeGob(scalerPath, sc); err != nil {
		return fmt.Errorf("saving scaler: %w", err)
	}
	return nil
}

func writeGob(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating artifact dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(v); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

func readGob(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}
