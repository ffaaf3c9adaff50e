package metrics

// TokenUsage captures LLM token counts reported for a completion.
type TokenUsage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens,omitempty"`
	TotalTokens      int `json:"totalTokens"`
}

// IsZero reports whether usage data is absent.
func (u TokenUsage) IsZero() bool {
	return u.PromptTokens == 0 && u.CompletionTokens == 0 && u.TotalTokens == 0
}

// ObserveTokens adds the prompt and completion counts of one completion.
func (r *Recorder) ObserveTokens(model string, usage TokenUsage) {
	if r == nil || usage.IsZero() {
		return
	}
	r.tokens.WithLabelValues(model, "prompt").Add(float64(usage.PromptTokens))
	r.tokens.WithLabelValues(model, "completion").Add(float64(usage.CompletionTokens))
}
