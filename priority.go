package hwtopo

// Priority is an abstract thread-scheduling hint. It is a hint to the OS
// scheduler; actual behavior depends on platform, system load, and
// (for the two highest levels) held privileges.
//
// The zero value is Background, not Normal: callers that care about the
// default should set it explicitly rather than relying on a bare
// var Priority.
type Priority int

const (
	// Background is for work that should only run when the CPU is
	// otherwise idle (cloud-save sync, achievement uploads).
	Background Priority = iota
	// Lowest is for non-time-sensitive work more important than
	// Background (telemetry, analytics).
	Lowest
	// BelowNormal is for asynchronous workers, secondary systems, AI
	// planning, preemptable by anything more urgent.
	BelowNormal
	// Normal is the default priority for general application threads.
	Normal
	// AboveNormal is for main-loop logic, input handling, UI threads
	// that must stay responsive without a hard real-time guarantee.
	AboveNormal
	// Highest is for deadline-sensitive work, render or audio mixing
	// threads. Typically requires elevated privileges to honor fully.
	Highest
	// TimeCritical is the highest available precedence. Can starve
	// other processes if misused; requires elevated privileges on
	// Linux and macOS.
	TimeCritical
)

// numPriorities is the width of the Priority enum, used to size
// per-platform scheduling-policy tables.
const numPriorities = int(TimeCritical) + 1
