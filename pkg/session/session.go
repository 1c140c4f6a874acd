// Package session persists wizard snapshots to disk so an interrupted run
// can be resumed. Persistence is best effort: a failed write is logged and
// dropped, never surfaced to the wizard.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/adforge/adforge-cli/pkg/models"
	"github.com/adforge/adforge-cli/pkg/wizard"
)

const (
	// SchemaVersion is the current snapshot schema. Version 1 was the flat
	// single-ad shape; loaders upgrade it on read.
	SchemaVersion = 2

	dirName      = ".adforge"
	snapshotFile = "session.yaml"
)

// ErrNoSnapshot is returned by Load when no snapshot exists.
var ErrNoSnapshot = errors.New("no session snapshot")

// Snapshot is the on-disk shape. Exactly one of State (v2) or Legacy (v1)
// is populated, keyed by Version.
type Snapshot struct {
	Version int                         `yaml:"version"`
	State   *wizard.State               `yaml:"state,omitempty"`
	Legacy  *models.LegacyCampaignSetup `yaml:"legacy,omitempty"`
}

// Store reads and writes snapshots under a base directory.
type Store struct {
	dir string
	log *logrus.Logger
}

// NewStore creates a store rooted at dir. An empty dir resolves to
// ~/.adforge.
func NewStore(dir string, log *logrus.Logger) *Store {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			dir = dirName
		} else {
			dir = filepath.Join(home, dirName)
		}
	}
	if log == nil {
		log = logrus.New()
	}
	return &Store{dir: dir, log: log}
}

// Dir returns the base directory.
func (st *Store) Dir() string {
	return st.dir
}

// Path returns the snapshot file location.
func (st *Store) Path() string {
	return filepath.Join(st.dir, snapshotFile)
}

// Save writes the state as a v2 snapshot. Errors are returned so the
// debouncer can log them; callers that want fire-and-forget semantics go
// through Writer.
func (st *Store) Save(s wizard.State) error {
	if err := os.MkdirAll(st.dir, 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := yaml.Marshal(Snapshot{Version: SchemaVersion, State: &s})
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	tmp := st.Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := os.Rename(tmp, st.Path()); err != nil {
		return fmt.Errorf("failed to replace session: %w", err)
	}
	return nil
}

// Load reads the snapshot, upgrading v1 shapes to the canonical state. A
// missing file yields ErrNoSnapshot.
func (st *Store) Load() (wizard.State, error) {
	data, err := os.ReadFile(st.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return wizard.State{}, ErrNoSnapshot
		}
		return wizard.State{}, fmt.Errorf("failed to read session: %w", err)
	}

	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return wizard.State{}, fmt.Errorf("failed to parse session: %w", err)
	}

	switch {
	case snap.Version >= SchemaVersion && snap.State != nil:
		s := *snap.State
		if len(s.Hierarchy.AdGroups) == 0 {
			s.Hierarchy = models.NewHierarchyConfig()
		}
		if s.Budgets == nil {
			s.Budgets = make(map[models.Platform]float64)
		}
		if s.Step == "" {
			s.Step = wizard.StepDataSource
		}
		return s, nil

	case snap.Legacy != nil:
		st.log.WithField("path", st.Path()).Info("upgrading v1 session snapshot")
		s := wizard.NewState()
		s.Campaign, s.Hierarchy = models.UpgradeLegacySetup(*snap.Legacy)
		if s.Campaign.Platform != "" {
			s.Platforms = []models.Platform{s.Campaign.Platform}
		}
		return s, nil

	default:
		return wizard.State{}, fmt.Errorf("unrecognized session snapshot version %d", snap.Version)
	}
}

// Clear removes the snapshot, ignoring a missing file.
func (st *Store) Clear() error {
	err := os.Remove(st.Path())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}
