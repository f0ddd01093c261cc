// Package snapshot loads repository fact snapshots produced by the
// external retrieval layer. The loader is the system's input boundary:
// it accepts JSON or YAML files and validates them into a
// core.RepoSnapshot before any evaluation happens.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sevigo/repro-warden/internal/core"
)

// ErrUnsupportedFormat is returned for snapshot files whose extension
// maps to no known codec.
var ErrUnsupportedFormat = errors.New("unsupported snapshot format")

// Load reads and validates a snapshot file. The format is picked by
// extension: .json, or .yaml/.yml.
func Load(path string) (*core.RepoSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes snapshot bytes in the format implied by ext and
// validates the result.
func Parse(data []byte, ext string) (*core.RepoSnapshot, error) {
	var snap core.RepoSnapshot
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("failed to parse JSON snapshot: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("failed to parse YAML snapshot: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w %q (want .json, .yaml, or .yml)", ErrUnsupportedFormat, ext)
	}

	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}
	return &snap, nil
}

// IsSnapshotFile reports whether a directory entry looks like a
// snapshot file the batch command should pick up.
func IsSnapshotFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
