package filesystem

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

type errFileTooLarge struct {
	path  string
	size  uint64
	limit uint64
}

func (e errFileTooLarge) Error() string {
	return fmt.Sprintf("%s is %s, limit is %s", e.path, humanize.IBytes(e.size), humanize.IBytes(e.limit))
}
