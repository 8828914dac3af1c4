package passage

// CompletionRequest carries everything a completer needs for a single
// user-message completion. Empty BaseURL or Token mean the completer's own
// default.
type CompletionRequest struct {
	BaseURL string // backend location, without the endpoint path
	Token   string // bearer credential
	Model   string
	Message string
}
