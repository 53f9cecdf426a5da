package railrl

import "fmt"

// LoadError wraps a failure encountered while reading or validating the
// static topology, policy, or schedule tables.  Init returns this rather
// than panicking, so a caller can retry against a different topology
// directory.
type LoadError struct {
	File   string
	Reason string
}

func (e *LoadError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("load error: %s", e.Reason)
	}
	return fmt.Sprintf("load error in %s: %s", e.File, e.Reason)
}

func loadErrf(file, format string, args ...any) error {
	return &LoadError{File: file, Reason: fmt.Sprintf(format, args...)}
}

// InvariantError describes a simulation state that should be unreachable
// given a validated load.  The engine panics with this type rather than
// continuing to run on corrupted state.
type InvariantError struct {
	Where  string
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated in %s: %s", e.Where, e.Reason)
}

func invariantPanic(where, format string, args ...any) {
	panic(&InvariantError{Where: where, Reason: fmt.Sprintf(format, args...)})
}
