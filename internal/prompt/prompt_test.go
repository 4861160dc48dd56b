package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const commitMessageHeader = "CONSIDER THE FOLLOWING COMMIT MESSAGE FOR CONTEXT:"

func TestRenderWithoutCommitMessage(t *testing.T) {
	for _, tmpl := range []string{DefaultCommitTitle, DefaultCommitSummary} {
		output, err := Render(tmpl, Data{SummaryPoints: "Fix bug"})
		require.NoError(t, err)
		require.NotContains(t, output, commitMessageHeader)
		require.Contains(t, output, "Fix bug")
	}
}

func TestRenderWithCommitMessage(t *testing.T) {
	data := Data{
		CommitMessage: "wip: first stab at the parser",
		SummaryPoints: "[parser.go]\n- Add a recursive descent parser",
	}
	for _, tmpl := range []string{DefaultCommitTitle, DefaultCommitSummary} {
		output, err := Render(tmpl, data)
		require.NoError(t, err)
		require.Contains(t, output, commitMessageHeader)
		require.Contains(t, output, data.CommitMessage)
		require.Contains(t, output, data.SummaryPoints)
		// The context block comes before the summaries.
		require.Less(t, strings.Index(output, data.CommitMessage), strings.Index(output, data.SummaryPoints))
	}
}

func TestRenderFileDiff(t *testing.T) {
	data := Data{FileDiff: "diff --git a/main.go b/main.go\n+func main() {}"}
	output, err := Render(DefaultFileDiff, data)
	require.NoError(t, err)
	require.Contains(t, output, data.FileDiff)
	require.NotContains(t, output, commitMessageHeader)
}

func TestRenderIsDeterministic(t *testing.T) {
	data := Data{CommitMessage: "context", SummaryPoints: "- Do the thing"}
	first, err := Render(DefaultCommitTitle, data)
	require.NoError(t, err)
	second, err := Render(DefaultCommitTitle, data)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRenderSprigFunctions(t *testing.T) {
	output, err := Render(`{{ upper .Prefix }}`, Data{Prefix: "feat"})
	require.NoError(t, err)
	require.Equal(t, "FEAT", output)
}

func TestRenderInvalidTemplate(t *testing.T) {
	_, err := Render(`{{ .Missing `, Data{})
	require.Error(t, err)
}

func TestRenderPrefixFormat(t *testing.T) {
	output, err := Render(DefaultPrefixFormat, Data{Prefix: "feat"})
	require.NoError(t, err)
	require.Equal(t, "feat: ", output)
}

func TestOr(t *testing.T) {
	require.Equal(t, "override", Or("override", "fallback"))
	require.Equal(t, "fallback", Or("", "fallback"))
}
