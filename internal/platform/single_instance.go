package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
)

// ErrAlreadyRunning indicates another stopwatch window already holds the lock.
var ErrAlreadyRunning = errors.New("stopwatch already running")

const (
	lockPortBase  = 20000
	lockPortRange = 20000
)

// InstanceGuard holds the single-instance lock for the GUI.
type InstanceGuard struct {
	listener net.Listener
}

// AcquireSingleInstance binds a localhost port derived from appID.
// A second caller with the same appID gets ErrAlreadyRunning.
func AcquireSingleInstance(appID string) (*InstanceGuard, error) {
	listener, err := net.Listen("tcp", LockAddress(appID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAlreadyRunning, err)
	}
	return &InstanceGuard{listener: listener}, nil
}

// LockAddress returns the loopback address used as the lock for appID.
func LockAddress(appID string) string {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appID))
	port := lockPortBase + int(hash.Sum32()%lockPortRange)
	return fmt.Sprintf("127.0.0.1:%d", port)
}

// Release frees the lock. It is safe on a nil guard.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	guard.listener = nil
	return err
}
