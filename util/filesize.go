package util

import (
	"os"
)

func GetFileSize(filename string) (uint64, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return 0, err
	}
	return uint64(info.Size()), nil
}
