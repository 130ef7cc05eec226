// Package store persists task lists as todo.txt files.
package store

import (
	"errors"
	"os"
	"strings"

	"github.com/twiced-technology-gmbh/todo/internal/clierr"
	"github.com/twiced-technology-gmbh/todo/internal/task"
	"github.com/twiced-technology-gmbh/todo/internal/tasklist"
)

const fileMode = 0o600

// Store reads and writes the active and done task files. Writes are
// atomic: content is staged in a temp file in the same directory and
// renamed over the target, so a crash mid-write never leaves a
// truncated file. Files are not locked; concurrent writers follow
// last-writer-wins.
type Store struct {
	TodoPath string
	DonePath string
}

// New returns a Store over the given file paths.
func New(todoPath, donePath string) *Store {
	return &Store{TodoPath: todoPath, DonePath: donePath}
}

// Load reads the active file. A missing file yields an empty list.
func (s *Store) Load() (tasklist.List, error) {
	return readList(s.TodoPath)
}

// LoadDone reads the done file. A missing file yields an empty list.
func (s *Store) LoadDone() (tasklist.List, error) {
	return readList(s.DonePath)
}

// Save writes the active file.
func (s *Store) Save(l tasklist.List) error {
	return writeList(s.TodoPath, l)
}

// SaveDone writes the done file.
func (s *Store) SaveDone(l tasklist.List) error {
	return writeList(s.DonePath, l)
}

// Archive moves every completed task from active to the done file and
// persists both. Both files are staged as temp files before either is
// committed, with the active file renamed first: a crash in the gap can
// lose the staged done copies but never duplicate a task. It returns
// the remaining active list and the number of tasks moved.
func (s *Store) Archive(active tasklist.List) (tasklist.List, int, error) {
	done, err := s.LoadDone()
	if err != nil {
		return nil, 0, err
	}

	remaining := make(tasklist.List, 0, len(active))
	moved := 0
	for _, t := range active {
		if t.Completed {
			done = append(done, t)
			moved++
		} else {
			remaining = append(remaining, t)
		}
	}
	if moved == 0 {
		return active, 0, nil
	}

	activeTmp, err := stageList(s.TodoPath, remaining)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = os.Remove(activeTmp) }()

	doneTmp, err := stageList(s.DonePath, done)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = os.Remove(doneTmp) }()

	if err := os.Rename(activeTmp, s.TodoPath); err != nil {
		return nil, 0, clierr.Wrap(clierr.FileWriteError, err, "replacing "+s.TodoPath)
	}
	if err := os.Rename(doneTmp, s.DonePath); err != nil {
		return nil, 0, clierr.Wrap(clierr.FileWriteError, err, "replacing "+s.DonePath)
	}
	return remaining, moved, nil
}

func readList(path string) (tasklist.List, error) {
	data, err := os.ReadFile(path) //nolint:gosec // task file path comes from config
	if errors.Is(err, os.ErrNotExist) {
		return tasklist.List{}, nil
	}
	if err != nil {
		return nil, clierr.Wrap(clierr.FileReadError, err, "reading "+path)
	}

	var l tasklist.List
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		l = append(l, task.Parse(line))
	}
	return l, nil
}

func writeList(path string, l tasklist.List) error {
	tmp, err := stageList(path, l)
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp) }()

	if err := os.Rename(tmp, path); err != nil {
		return clierr.Wrap(clierr.FileWriteError, err, "replacing "+path)
	}
	return nil
}

// stageList serializes the list, one task per line with a trailing
// newline, into a temp file next to path and returns the temp path.
func stageList(path string, l tasklist.List) (string, error) {
	var b strings.Builder
	for _, t := range l {
		b.WriteString(t.String())
		b.WriteByte('\n')
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), fileMode); err != nil {
		return "", clierr.Wrap(clierr.FileWriteError, err, "writing "+tmp)
	}
	return tmp, nil
}
