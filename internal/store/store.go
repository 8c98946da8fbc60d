package store

import (
	"fmt"
	"sync"

	"CycleSentinel/internal/model"

	"github.com/sirupsen/logrus"
)

// Store holds the latest analysis result with concurrency safety and mirrors
// it to a JSON state file. An empty file path keeps the result in memory only.
type Store struct {
	mu       sync.RWMutex
	latest   *model.AnalysisResult
	filePath string
	log      *logrus.Entry
}

// New creates a Store, restoring the previous result from disk if present.
func New(filePath string, log *logrus.Entry) (*Store, error) {
	s := &Store{filePath: filePath, log: log}
	if filePath == "" {
		return s, nil
	}
	res, err := LoadState(filePath)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	s.latest = res
	if res != nil {
		log.WithFields(logrus.Fields{
			"evaluated_at": res.EvaluatedAt,
			"category":     res.Category,
		}).Info("restored latest analysis")
	}
	return s, nil
}

// Latest returns the most recent result, or nil before the first run.
func (s *Store) Latest() *model.AnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// Set replaces the latest result and persists it. The in-memory value is
// updated even when the write fails.
func (s *Store) Set(res *model.AnalysisResult) error {
	if res == nil {
		return fmt.Errorf("set latest: %w", model.ErrEmptyInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = res
	if s.filePath == "" {
		return nil
	}
	if err := SaveState(s.filePath, res); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}
