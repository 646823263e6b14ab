//go:build !unix

package idstore

// Lock is a no-op where flock is unavailable; concurrent writers race and
// the last rename wins.
func Lock(path string) (func() error, error) {
	if _, err := prepareLockPath(path); err != nil {
		return nil, err
	}
	return func() error { return nil }, nil
}
