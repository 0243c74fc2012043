package exposure

import (
	"encoding/json"
	"os"
	"time"
)

// State tracks the target exposure derived from past signals.
type State struct {
	Target         float64   `json:"target"` // 0.0 ~ 1.0 fraction of capital
	LastSignal     string    `json:"last_signal"`
	BullishStreak  int       `json:"bullish_streak"`
	BearishStreak  int       `json:"bearish_streak"`
	RecentStrength []int     `json:"recent_strength"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// LoadState reads the exposure state from a JSON file. Returns a neutral
// state if the file doesn't exist.
func LoadState(filePath string) (*State, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{Target: 0.5}, nil
		}
		return nil, err
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// SaveState writes the exposure state to a JSON file.
func SaveState(filePath string, state *State) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
