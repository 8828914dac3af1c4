package passage

import "context"

// Completer is a strategy pattern interface for completion backends.
// Complete blocks until the backend answers or ctx is done. The returned
// text is the raw content before trimming.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
