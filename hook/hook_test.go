package hook

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommitMessageContext(t *testing.T) {
	original := `wip: some context

# Please enter the commit message for your changes. Lines starting
# with '#' will be ignored, and an empty message aborts the commit.
`
	require.Equal(t, "wip: some context", commitMessageContext(original))
}

func TestCommitMessageContextEmpty(t *testing.T) {
	original := `
# Please enter the commit message for your changes.
`
	require.Equal(t, "", commitMessageContext(original))
}

func TestSkippedSources(t *testing.T) {
	// A user-written message (-m/-F), a merge, a squash or an amend is
	// never overwritten by a generated one.
	for _, source := range []string{"message", "merge", "squash", "commit"} {
		_, ok := skippedSources[source]
		require.True(t, ok, source)
	}
	for _, source := range []string{"", "template"} {
		_, ok := skippedSources[source]
		require.False(t, ok, source)
	}
}

func TestHookScriptMarker(t *testing.T) {
	require.Contains(t, hookScript, "installed by gcommit")
	require.Contains(t, hookScript, "gcommit prepare-commit-msg")
}
