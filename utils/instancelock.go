package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// InstanceLock keeps a second bot process with the same token on this host
// from connecting, which would otherwise handle every command twice.
type InstanceLock struct {
	lockFile *flock.Flock
	lockPath string
}

// NewInstanceLock creates a lock file under lockDir named after a hash of key.
// The key itself (the bot token) never reaches the filesystem.
func NewInstanceLock(lockDir, key string) (*InstanceLock, error) {
	AssertInvariant(key != "", "instance lock key cannot be empty")

	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	sum := sha256.Sum256([]byte(key))
	lockPath := filepath.Join(lockDir, "pinbot-"+hex.EncodeToString(sum[:8])+".lock")

	return &InstanceLock{
		lockFile: flock.New(lockPath),
		lockPath: lockPath,
	}, nil
}

// TryLock returns an error if another instance already holds the lock
func (l *InstanceLock) TryLock() error {
	locked, err := l.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to try lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another pinbot instance is already running with this token (lock %s)", l.lockPath)
	}
	return nil
}

// Unlock releases the lock and removes the lock file
func (l *InstanceLock) Unlock() error {
	if err := l.lockFile.Unlock(); err != nil {
		return fmt.Errorf("failed to unlock: %w", err)
	}
	if err := os.Remove(l.lockPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}

func (l *InstanceLock) LockPath() string {
	return l.lockPath
}
