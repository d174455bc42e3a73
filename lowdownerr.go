package lowdown

import "github.com/pkg/errors"

// DepthExceededError reports that the document's AST depth exceeded the
// configured MaxDepth, per spec.md §3/§5/§7 ("Depth exceeded (fatal,
// aborts parse with a diagnostic)"). document.c's equivalent calls
// errx(3) and exits the process; a Go library instead panics with this
// type and Parse recovers it at the API boundary, turning it into a
// returned error — the idiomatic substitute for "this must never be
// partially handled by the caller" (see DESIGN.md's Open Question
// decision on fatal-abort realization).
type DepthExceededError struct {
	MaxDepth int
}

func (e *DepthExceededError) Error() string {
	return errors.Errorf("lowdown: maximum parse tree depth (%d) exceeded", e.MaxDepth).Error()
}

// AllocationError reports the other fatal condition spec.md §7 names:
// allocation failure. Go's runtime already turns real OOM into a process
// abort before user code can react, so this type exists for the one case
// this module can detect ahead of an allocation (implausible input size
// guards in pass1.go) — kept distinct from DepthExceededError so callers
// can tell the two fatal conditions apart if they want to.
type AllocationError struct {
	msg string
}

func newAllocationError(msg string) *AllocationError { return &AllocationError{msg: msg} }

func (e *AllocationError) Error() string {
	return errors.Errorf("lowdown: allocation failure: %s", e.msg).Error()
}

// abortDepth panics with DepthExceededError; called by node push once
// depth exceeds maxDepth (doc.go), recovered in Parse.
func abortDepth(maxDepth int) {
	panic(&DepthExceededError{MaxDepth: maxDepth})
}
