package domain

// Result is the tri-state outcome of ticking an action or the excavation
// driver. Running means "call again, more work pending"; it is not an
// error and must never be silently collapsed into Success.
type Result string

const (
	ResultSuccess Result = "success"
	ResultFailure Result = "failure"
	ResultRunning Result = "running"
)

// Terminal reports whether the result ends the current tick cycle.
func (r Result) Terminal() bool {
	return r == ResultSuccess || r == ResultFailure
}

func (r Result) String() string {
	return string(r)
}
