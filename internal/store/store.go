// Package store persists application state as JSON files under
// .shiftboard/state and handles backup bundles. Each concern gets its own
// file so a corrupted catalog cannot take the schedule down with it.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/kingrea/shiftboard/internal/logbook"
	"github.com/kingrea/shiftboard/internal/roster"
	"github.com/kingrea/shiftboard/internal/tasks"
)

const (
	scheduleFile = "schedule.json"
	catalogFile  = "catalog.json"
	bookFile     = "assignments.json"
	teamFile     = "team.json"
)

// State is everything the application persists between runs.
type State struct {
	Schedule roster.Schedule     `json:"scheduleData"`
	Catalog  []tasks.Rule        `json:"taskData"`
	Book     tasks.Book          `json:"assignedTasks"`
	Team     []roster.TeamMember `json:"teamMembers"`
}

// Bundle is the export file format: the full state plus a timestamp. The
// JSON field names match the browser-era export so old backups import
// cleanly.
type Bundle struct {
	ExportedAt string `json:"exportDate"`
	State
}

// Store reads and writes state files, debouncing frequent saves.
type Store struct {
	stateDir   string
	exportsDir string
	delay      time.Duration
	log        *logbook.Logbook

	mu      sync.Mutex
	pending *time.Timer
}

// New builds a Store rooted at the given directories. delay controls how
// long ScheduleSave waits before flushing; zero saves immediately.
func New(stateDir, exportsDir string, delay time.Duration, log *logbook.Logbook) *Store {
	return &Store{stateDir: stateDir, exportsDir: exportsDir, delay: delay, log: log}
}

// Load reads the persisted state, seeding defaults for anything missing.
// A store that has never run gets the seed catalog and empty everything
// else, so first launch is immediately usable.
func (s *Store) Load() (State, error) {
	var st State

	if err := s.readJSON(scheduleFile, &st.Schedule); err != nil {
		return State{}, err
	}
	if err := s.readJSON(catalogFile, &st.Catalog); err != nil {
		return State{}, err
	}
	if st.Catalog == nil {
		st.Catalog = tasks.DefaultCatalog()
		s.log.Info("no catalog on disk, seeded %d default rules", len(st.Catalog))
	}
	st.Catalog = tasks.Normalize(st.Catalog, func(msg string) { s.log.Warn("%s", msg) })

	if err := s.readJSON(bookFile, &st.Book); err != nil {
		return State{}, err
	}
	if st.Book == nil {
		st.Book = tasks.Book{}
	}
	if err := s.readJSON(teamFile, &st.Team); err != nil {
		return State{}, err
	}
	return st, nil
}

// Save writes the full state to disk immediately.
func (s *Store) Save(st State) error {
	files := []struct {
		name string
		v    any
	}{
		{scheduleFile, st.Schedule},
		{catalogFile, st.Catalog},
		{bookFile, st.Book},
		{teamFile, st.Team},
	}
	for _, f := range files {
		if err := s.writeJSON(f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot deep-copies the mutable containers of st. Background work and
// deferred writes read from a snapshot so the update loop can keep
// editing the live maps and slices without racing them.
func Snapshot(st State) State {
	st.Schedule.Rows = append([]roster.StaffRow(nil), st.Schedule.Rows...)
	st.Catalog = append([]tasks.Rule(nil), st.Catalog...)
	st.Team = append([]roster.TeamMember(nil), st.Team...)
	if st.Book != nil {
		st.Book = st.Book.Clone()
	}
	return st
}

// ScheduleSave queues a debounced save. Rapid edits collapse into one
// disk write; the snapshot taken is the one passed with the last call.
// Failures are logged rather than returned since the write happens after
// the caller has moved on.
func (s *Store) ScheduleSave(st State) {
	st = Snapshot(st)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		s.pending.Stop()
	}
	if s.delay <= 0 {
		s.pending = nil
		s.saveLogged(st)
		return
	}
	s.pending = time.AfterFunc(s.delay, func() { s.saveLogged(st) })
}

// Flush cancels any pending debounce and saves now.
func (s *Store) Flush(st State) error {
	s.mu.Lock()
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	s.mu.Unlock()
	return s.Save(st)
}

func (s *Store) saveLogged(st State) {
	if err := s.Save(st); err != nil {
		s.log.Error("auto-save failed: %v", err)
		return
	}
	s.log.Info("state auto-saved")
}

// Export writes a timestamped backup bundle and returns its path.
func (s *Store) Export(st State, now time.Time) (string, error) {
	if err := os.MkdirAll(s.exportsDir, 0755); err != nil {
		return "", err
	}
	b := Bundle{ExportedAt: now.Format(time.RFC3339), State: st}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.exportsDir, fmt.Sprintf("shiftboard-backup-%s.json", now.Format("2006-01-02-150405")))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	s.log.Info("exported backup to %s", path)
	return path, nil
}

// LatestExport returns the newest backup bundle in the exports directory.
// The timestamped names sort lexically, so the last match wins.
func (s *Store) LatestExport() (string, error) {
	entries, err := os.ReadDir(s.exportsDir)
	if err != nil {
		return "", err
	}
	latest := ""
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, "shiftboard-backup-") || !strings.HasSuffix(name, ".json") {
			continue
		}
		if name > latest {
			latest = name
		}
	}
	if latest == "" {
		return "", errors.New("no backup bundles found")
	}
	return filepath.Join(s.exportsDir, latest), nil
}

// Import reads a backup bundle and returns its state, normalized the same
// way Load normalizes. The bundle replaces everything; callers confirm
// with the user before adopting it.
func (s *Store) Import(path string) (State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return State{}, err
	}
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return State{}, fmt.Errorf("failed to parse backup bundle: %w", err)
	}
	st := b.State
	st.Catalog = tasks.Normalize(st.Catalog, func(msg string) { s.log.Warn("%s", msg) })
	if st.Book == nil {
		st.Book = tasks.Book{}
	}
	s.log.Info("imported backup from %s (exported %s)", path, b.ExportedAt)
	return st, nil
}

// readJSON fills v from a state file; a missing file leaves v untouched.
func (s *Store) readJSON(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.stateDir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func (s *Store) writeJSON(name string, v any) error {
	if err := os.MkdirAll(s.stateDir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.stateDir, name), data, 0644)
}
