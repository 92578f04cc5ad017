package freeslab

import "fmt"

// panicf is the contract-violation reporting idiom used throughout this
// package. Double frees, foreign pointers, and corrupt slabs are
// programming errors, not recoverable failures: the manager asserts and
// aborts rather than returning an error value on its hot path.
func panicf(format string, args ...interface{}) {
	panic(fmt.Errorf("freeslab: "+format, args...))
}
