// Package store holds the single current analysis result. The lifecycle is
// empty → populated → replaced: query operations fail with ErrNoAnalysis
// until the first upload, and every later upload swaps the whole snapshot in
// one step so readers never see a partially updated result.
package store

import (
	"sync"

	"github.com/meera/rfmscope/backend/internal/rfm"
)

// Store is the minimal contract handlers need to publish and read analysis
// snapshots. Results must be treated as immutable once published.
type Store interface {
	// Current returns the latest published result, or rfm.ErrNoAnalysis if
	// nothing has been uploaded yet.
	Current() (*rfm.AnalysisResult, error)
	// Replace atomically installs a new result, superseding any previous one.
	Replace(result *rfm.AnalysisResult)
}

// Memory is the in-process Store implementation. A single RWMutex guards the
// snapshot pointer; concurrent reads share the lock and a racing upload
// simply wins last-writer-wins.
type Memory struct {
	mu     sync.RWMutex
	result *rfm.AnalysisResult
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{}
}

// Current implements Store.
func (m *Memory) Current() (*rfm.AnalysisResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.result == nil {
		return nil, rfm.ErrNoAnalysis
	}
	return m.result, nil
}

// Replace implements Store.
func (m *Memory) Replace(result *rfm.AnalysisResult) {
	m.mu.Lock()
	m.result = result
	m.mu.Unlock()
}
