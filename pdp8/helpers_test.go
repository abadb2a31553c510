package pdp8

import (
	"fmt"
	"testing"
)

func assert(t *testing.T, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(fmt.Sprintf("%v %s", cond, format), args...)
	}
}

// newTestCPU builds a CPU with EAE and idle detection enabled and
// history off, the configuration most instruction-level tests want.
func newTestCPU(t *testing.T) *CPU {
	t.Helper()
	cpu, err := NewCPU(Config{
		MemoryWords:     MaxWords,
		EAE:             true,
		Idle:            true,
		HistoryCapacity: 0,
		StopOnIllegal:   true,
	})
	assert(t, err == nil, "NewCPU: %v", err)
	return cpu
}
