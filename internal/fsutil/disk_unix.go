//go:build linux || darwin

package fsutil

import "golang.org/x/sys/unix"

// FreeSpace returns the bytes available to an unprivileged user on the volume holding path.
func FreeSpace(path string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, err
	}
	return uint64(st.Bavail) * uint64(st.Bsize), nil
}

// Writable reports whether the current user may create entries in dir.
func Writable(dir string) error {
	return unix.Access(dir, unix.W_OK)
}
