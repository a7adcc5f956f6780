//go:build !linux && !darwin

package repository

import "time"

func birthTime(path string) (time.Time, error) {
	return modTime(path)
}
