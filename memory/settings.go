package memory

import (
	"fmt"

	s "github.com/prataprc/gosettings"
)

// DefaultSlabSize is used when no WithSlabSize option is supplied.
const DefaultSlabSize = uintptr(4096)

// DefaultSettings returns the base configuration a Memory starts from.
func DefaultSettings() s.Settings {
	return s.Settings{
		"slab.size": int64(DefaultSlabSize),
	}
}

func slabSizeFromSettings(settings s.Settings) uintptr {
	n := settings.Int64("slab.size")
	if n == 0 {
		n = int64(DefaultSlabSize)
	}
	if n <= 0 || n&(n-1) != 0 {
		panic(fmt.Errorf("memory: slab.size %d is not a positive power of two", n))
	}
	return uintptr(n)
}
