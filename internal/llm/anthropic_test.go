package llm

import (
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, stream Stream) (string, error) {
	t.Helper()
	output := ""
	for {
		event, err := stream.Recv()
		if err != nil {
			return output, err
		}
		output += event.Token
	}
}

func TestAnthropicStreamDrainsBufferedTokensBeforeEOF(t *testing.T) {
	// The stream may complete while tokens are still buffered. None of
	// them may be lost to the completion signal.
	for range 1000 {
		sw := newAnthropicCompletionStreamWrapper()
		for _, token := range []string{"Add ", "the ", "change"} {
			sw.push(&token)
		}
		sw.finish(nil)

		output, err := drain(t, sw)
		require.ErrorIs(t, err, io.EOF)
		require.Equal(t, "Add the change", output)
	}
}

func TestAnthropicStreamReturnsErrorAfterTokens(t *testing.T) {
	sw := newAnthropicCompletionStreamWrapper()
	token := "partial"
	sw.push(&token)
	sw.finish(errors.New("connection reset"))

	output, err := drain(t, sw)
	require.Equal(t, "partial", output)
	require.ErrorContains(t, err, "connection reset")
}

func TestAnthropicStreamEOFIsSticky(t *testing.T) {
	sw := newAnthropicCompletionStreamWrapper()
	sw.finish(nil)

	_, err := sw.Recv()
	require.ErrorIs(t, err, io.EOF)
	_, err = sw.Recv()
	require.ErrorIs(t, err, io.EOF)
}

func TestAnthropicStreamIgnoresNilDelta(t *testing.T) {
	sw := newAnthropicCompletionStreamWrapper()
	token := "text"
	sw.push(nil)
	sw.push(&token)
	sw.finish(nil)

	output, err := drain(t, sw)
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, "text", output)
}
