package monitor

import (
	"errors"
	"io/fs"
	"os"
	"time"
)

// FileStatus describes one data document on disk.
type FileStatus struct {
	Path    string    `json:"path"`
	Exists  bool      `json:"exists"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time,omitempty"`
	Err     string    `json:"error,omitempty"`
}

type Status struct {
	Files       []FileStatus `json:"files"`
	Journal     bool         `json:"journal"`
	JournalSize int          `json:"journal_size"`
	LastCheck   time.Time    `json:"last_check"`
}

// JournalSizer is the part of the journal the probe needs.
type JournalSizer interface {
	Size() (int, error)
}

// Check stats every data file and asks the journal for its size. A missing
// file is reported, not treated as a failure; the apps start empty in that case.
func Check(paths []string, journal JournalSizer) Status {
	status := Status{
		Files:     make([]FileStatus, 0, len(paths)),
		LastCheck: time.Now(),
	}
	for _, path := range paths {
		fileStatus := FileStatus{Path: path}
		info, err := os.Stat(path)
		switch {
		case err == nil:
			fileStatus.Exists = true
			fileStatus.Size = info.Size()
			fileStatus.ModTime = info.ModTime()
		case !errors.Is(err, fs.ErrNotExist):
			fileStatus.Err = err.Error()
		}
		status.Files = append(status.Files, fileStatus)
	}
	if journal != nil {
		if size, err := journal.Size(); err == nil {
			status.Journal = true
			status.JournalSize = size
		}
	}
	return status
}
