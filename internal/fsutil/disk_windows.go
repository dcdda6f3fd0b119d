//go:build windows

package fsutil

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

// FreeSpace returns the bytes available to the caller on the volume holding path.
func FreeSpace(path string) (uint64, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, err
	}

	var available, total, free uint64
	if err := windows.GetDiskFreeSpaceEx(p, &available, &total, &free); err != nil {
		return 0, err
	}
	return available, nil
}

// Writable reports whether dir is writable. Windows ACLs are not evaluated;
// only the read-only attribute is checked.
func Writable(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if info.Mode().Perm()&0200 == 0 {
		return fmt.Errorf("%s is read-only", dir)
	}
	return nil
}
