package generator

import (
	"strings"

	"github.com/yanqian/cspark/pkg/metrics"
)

// Task is one of the fixed content generation modes.
type Task string

const (
	TaskSummary Task = "summary"
	TaskYouTube Task = "youtube"
	TaskShorts  Task = "shorts"
	TaskSocial  Task = "social"
	TaskSEO     Task = "seo"
)

// Tasks lists every supported task in the order generate-all runs them.
var Tasks = []Task{TaskSummary, TaskYouTube, TaskShorts, TaskSocial, TaskSEO}

// ParseTask accepts a task name case-insensitively.
func ParseTask(raw string) (Task, bool) {
	candidate := Task(strings.ToLower(strings.TrimSpace(raw)))
	for _, task := range Tasks {
		if task == candidate {
			return task, true
		}
	}
	return "", false
}

// Config holds the generation knobs.
type Config struct {
	Model              string
	MaxInputChars      int
	InlineMaxChars     int
	DefaultLang        string
	DefaultTone        string
	DefaultLength      string
	DefaultMaxTokens   int
	MaxTokensLimit     int
	DefaultTemperature float32
}

// Request is the generation payload accepted by /api/generate.
type Request struct {
	Input       string   `json:"input"`
	Task        string   `json:"task"`
	Lang        string   `json:"lang,omitempty"`
	Tone        string   `json:"tone,omitempty"`
	Length      string   `json:"length,omitempty"`
	Persona     string   `json:"persona,omitempty"`
	MaxTokens   int      `json:"max_tokens,omitempty"`
	Temperature *float32 `json:"temperature,omitempty"`
}

// Response is returned by the generation endpoint. IsFallback marks text that
// came from the static table instead of the model.
type Response struct {
	Result     string              `json:"result"`
	IsFallback bool                `json:"isFallback"`
	Model      string              `json:"model,omitempty"`
	Source     string              `json:"source,omitempty"`
	Usage      *metrics.TokenUsage `json:"usage,omitempty"`
}
