package numa

import (
	"errors"
	"fmt"
)

var ErrDegenerateInput = errors.New("no nodes to compare")

type DegenerateInputError struct {
	CpuNodes    int
	MemoryNodes int
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("%s (cpu nodes: %d, memory nodes: %d)", ErrDegenerateInput, e.CpuNodes, e.MemoryNodes)
}

func (e *DegenerateInputError) Is(target error) bool {
	return target == ErrDegenerateInput
}
