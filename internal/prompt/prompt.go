// Package prompt holds the prompt templates sent to the model, and renders them.
package prompt

import (
	"bytes"
	_ "embed"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pkg/errors"
)

//go:embed templates/file_diff.tmpl
var DefaultFileDiff string

//go:embed templates/commit_summary.tmpl
var DefaultCommitSummary string

//go:embed templates/commit_title.tmpl
var DefaultCommitTitle string

//go:embed templates/conventional_commit.tmpl
var DefaultConventionalCommit string

//go:embed templates/translation.tmpl
var DefaultTranslation string

// DefaultPrefixFormat formats a conventional commit prefix into the final message.
const DefaultPrefixFormat = `{{ .Prefix }}: `

// Data holds the values a template may reference.
// Unset fields render as empty text.
type Data struct {
	// An existing commit message, given to the model as context.
	CommitMessage string
	// The per-file change summaries, pre-joined.
	SummaryPoints string
	// The diff of a single file.
	FileDiff string
	// The language to translate the commit message into.
	OutputLanguage string
	// A validated conventional commit prefix.
	Prefix string
}

// Render the given template with this data.
func Render(tmpl string, data Data) (string, error) {
	t, err := template.New("prompt").Funcs(sprig.FuncMap()).Parse(tmpl)
	if err != nil {
		return "", errors.Wrap(err, "parsing prompt template")
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", errors.Wrap(err, "executing prompt template")
	}
	return buf.String(), nil
}

// Or returns the override if set, and the fallback otherwise.
func Or(override, fallback string) string {
	if override != "" {
		return override
	}
	return fallback
}
