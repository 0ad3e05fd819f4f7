package app

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/sonemaro/treepp/pkg/logger"
)

// ErrLocked is returned when another run holds the lock for the same report.
var ErrLocked = errors.New("another treepp run is writing this report")

// lockPath returns the lock file guarding outputPath. Runs writing the same
// absolute report path share one lock.
func (a *App) lockPath(outputPath string) (string, error) {
	abs, err := filepath.Abs(outputPath)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", outputPath, err)
	}
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.ToSlash(abs)))
	return filepath.Join(a.lockDir, "treepp-"+id.String()+".lock"), nil
}

// acquireLock takes the run lock without blocking. The returned func releases
// it. The lock file is left in place; removing it would let a later run lock a
// fresh inode while another still holds the old one.
func (a *App) acquireLock(outputPath string) (func(), error) {
	path, err := a.lockPath(outputPath)
	if err != nil {
		return nil, err
	}

	lock := flock.New(path)
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to try lock on %s: %w", path, err)
	}
	if !acquired {
		a.log.WithFields(logger.Fields{
			"lock":   path,
			"output": outputPath,
		}).Error("Report is locked by another run")
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}

	a.log.WithFields(logger.Fields{
		"lock": path,
	}).Trace("Acquired run lock")

	return func() {
		if err := lock.Unlock(); err != nil {
			a.log.WithFields(logger.Fields{
				"error": err,
				"lock":  path,
			}).Warn("Failed to release run lock")
		}
	}, nil
}
