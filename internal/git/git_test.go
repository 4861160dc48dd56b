package git

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const twoFileDiff = `diff --git a/internal/git/git.go b/internal/git/git.go
index aadf691..bfef603 100644
--- a/internal/git/git.go
+++ b/internal/git/git.go
@@ -1,3 +1,4 @@
+// Package git shells out to the git binary.
 package git

diff --git a/go.mod b/go.mod
index 1111111..2222222 100644
--- a/go.mod
+++ b/go.mod
@@ -1 +1 @@
-module old
+module new
`

func TestSplitDiff(t *testing.T) {
	fileDiffs := SplitDiff(twoFileDiff)
	require.Len(t, fileDiffs, 2)
	require.Contains(t, fileDiffs[0], "a/internal/git/git.go")
	require.Contains(t, fileDiffs[1], "a/go.mod")
	for _, fileDiff := range fileDiffs {
		require.True(t, len(fileDiff) > 0)
		require.Contains(t, fileDiff, "diff --git")
	}
}

func TestSplitDiffEmpty(t *testing.T) {
	require.Empty(t, SplitDiff(""))
	require.Empty(t, SplitDiff("\n  \n"))
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name     string
		fileDiff string
		want     string
	}{
		{
			name:     "modified file",
			fileDiff: "diff --git a/lib/index.js b/lib/index.js\nindex aadf691..bfef603 100644",
			want:     "lib/index.js",
		},
		{
			name:     "renamed file",
			fileDiff: "diff --git a/old/name.go b/new/name.go\nsimilarity index 90%",
			want:     "new/name.go",
		},
		{
			name:     "not a file header",
			fileDiff: "index aadf691..bfef603 100644",
			want:     "",
		},
		{
			name:     "empty",
			fileDiff: "",
			want:     "",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.want, FileName(test.fileDiff))
		})
	}
}

func TestFileNameOfSplitParts(t *testing.T) {
	fileDiffs := SplitDiff(twoFileDiff)
	require.Len(t, fileDiffs, 2)
	require.Equal(t, "internal/git/git.go", FileName(fileDiffs[0]))
	require.Equal(t, "go.mod", FileName(fileDiffs[1]))
}
