package bundle

import "time"

// Config controls how the fan-out runs.
type Config struct {
	DefaultLang string
	// Concurrency above 1 runs tasks as a bounded group; otherwise they run in order.
	Concurrency int
	// Timeout bounds each task on its own, so a sequential run may take five times as long.
	Timeout     time.Duration
}

// Request is the generate-all payload.
type Request struct {
	Input string `json:"input"`
	Lang  string `json:"lang,omitempty"`
}

// Response maps task names to generated text. Failed tasks are absent.
type Response map[string]string
