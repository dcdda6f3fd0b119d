//go:build !linux && !darwin && !windows

package fsutil

// FreeSpace is not implemented on this platform.
func FreeSpace(path string) (uint64, error) {
	return 0, ErrUnsupported
}

// Writable is not implemented on this platform.
func Writable(dir string) error {
	return ErrUnsupported
}
