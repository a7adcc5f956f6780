//go:build linux

package repository

import (
	"errors"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// birthTime returns the creation time of path via statx. Filesystems that
// do not record it fall back to the modification time.
func birthTime(path string) (time.Time, error) {
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_STATX_SYNC_AS_STAT, unix.STATX_BTIME|unix.STATX_MTIME, &stx)
	if err != nil {
		if errors.Is(err, unix.ENOSYS) {
			return modTime(path)
		}
		return time.Time{}, &os.PathError{Op: "statx", Path: path, Err: err}
	}
	if stx.Mask&unix.STATX_BTIME != 0 {
		return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec)), nil
	}
	return time.Unix(stx.Mtime.Sec, int64(stx.Mtime.Nsec)), nil
}
