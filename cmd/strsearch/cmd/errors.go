package cmd

import (
	"errors"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

// isDBLockError returns true if the error chain contains a bbolt lock timeout.
func isDBLockError(err error) bool {
	return errors.Is(err, bolt.ErrTimeout)
}

// diagnoseDBLock returns actionable guidance when the results database
// cannot be opened because another process holds its lock.
func diagnoseDBLock(dbPath string) error {
	return fmt.Errorf("results database is locked by another process\n"+
		"  → a `strsearch bench --watch --save` may still be running\n"+
		"  → stop it, or retry without --save\n"+
		"  → database: %s", dbPath)
}
