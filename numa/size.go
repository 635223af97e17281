package numa

import "math/big"

type SizeUnit int

const (
	SizeUnitUnknown SizeUnit = iota
	SizeUnitB
	SizeUnitK
	SizeUnitM
	SizeUnitG
)

func (unit SizeUnit) String() string {
	switch unit {
	default:
		return "unknown"
	case SizeUnitB:
		return "B"
	case SizeUnitK:
		return "K"
	case SizeUnitM:
		return "M"
	case SizeUnitG:
		return "G"
	}
}

func NewSizeUnit(input string) SizeUnit {
	switch input {
	default:
		return SizeUnitUnknown
	case "B", "b", "bytes":
		return SizeUnitB
	case "K", "KiB", "k":
		return SizeUnitK
	case "M", "MiB", "MB":
		return SizeUnitM
	case "G", "GiB", "GB":
		return SizeUnitG
	}
}

type Size struct {
	Value uint64
	Unit  SizeUnit
}

func NewSize(value uint64, unit SizeUnit) Size {
	return Size{value, unit}
}

// Bytes returns 0 for an unknown unit.
func (s Size) Bytes() uint64 {
	switch s.Unit {
	default:
		return 0
	case SizeUnitB:
		return s.Value
	case SizeUnitK:
		return s.Value * 1024
	case SizeUnitM:
		return s.Value * 1024 * 1024
	case SizeUnitG:
		return s.Value * 1024 * 1024 * 1024
	}
}

// BigBytes is Bytes without uint64 overflow.
func (s Size) BigBytes() *big.Int {
	shift := uint(0)
	switch s.Unit {
	default:
		return new(big.Int)
	case SizeUnitB:
	case SizeUnitK:
		shift = 10
	case SizeUnitM:
		shift = 20
	case SizeUnitG:
		shift = 30
	}
	return new(big.Int).Lsh(new(big.Int).SetUint64(s.Value), shift)
}

func (s Size) M() uint64 {
	switch s.Unit {
	default:
		return 0
	case SizeUnitB:
		return s.Value / 1024 / 1024
	case SizeUnitK:
		return s.Value / 1024
	case SizeUnitM:
		return s.Value
	case SizeUnitG:
		return s.Value * 1024
	}
}

func (m NodeMemory) Size() Size {
	return NewSize(m.SizeMB, SizeUnitM)
}

func (m NodeMemory) Free() Size {
	return NewSize(m.FreeMB, SizeUnitM)
}
