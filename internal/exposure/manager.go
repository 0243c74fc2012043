// Package exposure maps fused signals to a persisted target exposure level.
// It is a consumer of the analysis pipeline, not part of it.
package exposure

import (
	"log"
	"sync"

	"IchiVSA/internal/model"
)

// targets maps each signal label to a fraction of capital.
var targets = map[model.Label]float64{
	model.LabelStrongBuy:  1.0,
	model.LabelBuy:        0.75,
	model.LabelNeutral:    0.5,
	model.LabelSell:       0.25,
	model.LabelStrongSell: 0.0,
}

const maxRecentStrength = 30

// Manager applies signals to the exposure state with concurrency safety.
type Manager struct {
	mu       sync.Mutex
	state    *State
	filePath string
}

// NewManager creates a Manager, loading or initializing state from disk.
func NewManager(filePath string) (*Manager, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	m := &Manager{state: state, filePath: filePath}
	if err := m.save(); err != nil {
		return nil, err
	}
	return m, nil
}

// GetState returns a copy of the current exposure state.
func (m *Manager) GetState() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.state
}

// Apply updates the exposure state from a fresh summary and returns the
// target before and after. A summary with an undefined signal (series still
// inside warm-up) leaves the target unchanged.
func (m *Manager) Apply(sum *model.Summary) (before, after float64, changed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	before = m.state.Target
	after = before

	if sum.Signal == model.LabelNone {
		return before, after, false
	}

	if t, ok := targets[sum.Signal]; ok {
		m.state.Target = t
		after = t
	}
	m.state.LastSignal = string(sum.Signal)

	if sum.Strength.Valid {
		switch {
		case sum.Strength.Int > 0:
			m.state.BullishStreak++
			m.state.BearishStreak = 0
		case sum.Strength.Int < 0:
			m.state.BearishStreak++
			m.state.BullishStreak = 0
		default:
			m.state.BullishStreak = 0
			m.state.BearishStreak = 0
		}
		m.state.RecentStrength = append(m.state.RecentStrength, sum.Strength.Int)
		if len(m.state.RecentStrength) > maxRecentStrength {
			m.state.RecentStrength = m.state.RecentStrength[len(m.state.RecentStrength)-maxRecentStrength:]
		}
	}

	if err := m.save(); err != nil {
		log.Printf("[ERROR] failed to save exposure state: %v", err)
	}
	return before, after, after != before
}

// Streak returns the current same-direction signal streak, positive for
// bullish runs and negative for bearish ones.
func (m *Manager) Streak() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.BullishStreak > 0 {
		return m.state.BullishStreak
	}
	return -m.state.BearishStreak
}

func (m *Manager) save() error {
	return SaveState(m.filePath, m.state)
}
