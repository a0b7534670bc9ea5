package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// PullRecord remembers the most recent successful image pull so that
// `runbox status` can report when the local image was last refreshed.
type PullRecord struct {
	SchemaVersion string    `json:"schema_version"`
	RunID         string    `json:"run_id"`
	Image         string    `json:"image"`
	PulledAt      time.Time `json:"pulled_at"`
	Forced        bool      `json:"forced"`
}

const (
	StateFileName      = ".runbox.state.json"
	StateSchemaVersion = "1.0"
)

// statePath resolves the state file location: the RUNBOX_STATE_FILE override
// if set, otherwise the user's home directory, falling back to the working
// directory when the home directory cannot be determined.
func statePath() string {
	if custom := os.Getenv("RUNBOX_STATE_FILE"); custom != "" {
		return custom
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return StateFileName
	}
	return filepath.Join(homeDir, StateFileName)
}

// loadState attempts to load the last pull record from the state file.
// Returns nil if the file doesn't exist (no pull recorded yet).
func loadState() (*PullRecord, error) {
	path := statePath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var record PullRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}

	return &record, nil
}

// saveState persists the pull record to the state file.
func saveState(record *PullRecord) error {
	record.SchemaVersion = StateSchemaVersion

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}

	if err := os.WriteFile(statePath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// removeStateFile removes the state file.
func removeStateFile() error {
	path := statePath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove state file: %w", err)
	}

	return nil
}
