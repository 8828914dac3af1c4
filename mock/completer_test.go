package mock_test

import (
	"context"
	"testing"

	"github.com/passagecli/passage"
	"github.com/passagecli/passage/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleter_DelegatesToCompleteFn(t *testing.T) {
	t.Parallel()

	var got passage.CompletionRequest
	c := &mock.Completer{
		CompleteFn: func(_ context.Context, req passage.CompletionRequest) (string, error) {
			got = req
			return "done", nil
		},
	}

	out, err := c.Complete(context.Background(), passage.CompletionRequest{Model: "m", Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "done", out)
	assert.Equal(t, "m", got.Model)
	assert.Equal(t, "hi", got.Message)
}

func TestMemFileStore(t *testing.T) {
	t.Parallel()

	var s mock.MemFileStore
	_, exists, err := s.Read("a")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.Write("a", "x"))
	require.NoError(t, s.Write("a", "y"))

	content, exists, err := s.Read("a")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "y", content)
	assert.Equal(t, []string{"a", "a"}, s.Writes)
}
