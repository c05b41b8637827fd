// Package recipes holds the search and detail controllers that drive every
// recipeideas front end. Controllers are owned values: they are not safe for
// concurrent use, and the owner (the TUI event loop, a request handler)
// serializes calls. Network work is handed out as a Fetch that the owner runs
// wherever it likes and feeds back through Apply.
package recipes

import "context"

// Phase is the lifecycle position of a request.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseFailure
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// User-facing failure reasons.
const (
	ReasonSearchFailed = "Could not load recipes for this ingredient."
	ReasonNotFound     = "Recipe not found."
	ReasonDetailFailed = "Could not load recipe details."
)

// State is a request's Idle/Loading/Success/Failure position plus its payload.
// Value is only meaningful in PhaseSuccess, except that a search keeps its
// previous list visible while Loading. Reason is set only in PhaseFailure.
type State[T any] struct {
	Phase  Phase
	Value  T
	Reason string
	Err    error // underlying error behind Reason, for logging
}

func (s State[T]) IsIdle() bool    { return s.Phase == PhaseIdle }
func (s State[T]) IsLoading() bool { return s.Phase == PhaseLoading }
func (s State[T]) IsSuccess() bool { return s.Phase == PhaseSuccess }
func (s State[T]) IsFailure() bool { return s.Phase == PhaseFailure }

// Fetch is one dispatched request. It carries the generation the controller
// assigned when the trigger fired; Run may be called from any goroutine.
type Fetch[T any] struct {
	Generation uint64
	Key        string // committed query or selected id

	run func(ctx context.Context, key string) (T, error)
}

// Run performs the request and packages its outcome for Apply.
func (f *Fetch[T]) Run(ctx context.Context) Result[T] {
	v, err := f.run(ctx, f.Key)
	return Result[T]{Generation: f.Generation, Key: f.Key, Value: v, Err: err}
}

// Result is a settled Fetch.
type Result[T any] struct {
	Generation uint64
	Key        string
	Value      T
	Err        error
}
