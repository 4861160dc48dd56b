// Package summarize turns per-file diffs into a full commit message.
package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/malonaz/gcommit/internal/configuration"
	"github.com/malonaz/gcommit/internal/debug"
	"github.com/malonaz/gcommit/internal/git"
	"github.com/malonaz/gcommit/internal/llm"
	"github.com/malonaz/gcommit/internal/prompt"
)

// The prefixes the model is allowed to classify a commit with.
var conventionalCommitPrefixes = map[string]struct{}{
	"build": {}, "chore": {}, "ci": {}, "docs": {}, "feat": {},
	"fix": {}, "perf": {}, "refactor": {}, "style": {}, "test": {},
}

// FileSummary of a single file's changes.
type FileSummary struct {
	File    string
	Summary string
}

// Client generates commit messages from file diffs.
type Client struct {
	llmClient llm.Client
	modelName string
	config    *configuration.Config
}

// NewClient instantiates and returns a summarization client.
func NewClient(llmClient llm.Client, modelName string, config *configuration.Config) *Client {
	return &Client{
		llmClient: llmClient,
		modelName: modelName,
		config:    config,
	}
}

// CommitMessage generates a commit message for the given per-file diffs.
// commitMessage is an existing message given to the model as context. It may be empty.
func (c *Client) CommitMessage(ctx context.Context, fileDiffs []string, commitMessage string) (string, error) {
	fileSummaries, err := c.SummarizeFileDiffs(ctx, fileDiffs, commitMessage)
	if err != nil {
		return "", err
	}
	if len(fileSummaries) == 0 {
		return "", errors.New("no file diffs to summarize")
	}
	summaryPoints := JoinSummaryPoints(fileSummaries)

	// The title, the body and the prefix do not depend on each other.
	var title, summary, prefix string
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		title, err = c.commitTitle(groupCtx, summaryPoints, commitMessage)
		return err
	})
	group.Go(func() error {
		var err error
		summary, err = c.commitSummary(groupCtx, summaryPoints, commitMessage)
		return err
	})
	group.Go(func() error {
		var err error
		prefix, err = c.conventionalCommitPrefix(groupCtx, summaryPoints)
		return err
	})
	if err := group.Wait(); err != nil {
		return "", err
	}

	message := strings.TrimSpace(title) + "\n\n" + strings.TrimSpace(summary) + "\n"
	if c.config.Output.ShowPerFileSummary {
		message += "\n"
		for _, fileSummary := range fileSummaries {
			if fileSummary.Summary != "" {
				message += fmt.Sprintf("[%s]\n%s\n", fileSummary.File, fileSummary.Summary)
			}
		}
	}
	message = dedupConsecutiveLines(message)

	message, err = c.translate(ctx, message)
	if err != nil {
		return "", err
	}

	if prefix != "" {
		format := prompt.Or(c.config.Output.ConventionalCommitPrefixFormat, prompt.DefaultPrefixFormat)
		formattedPrefix, err := prompt.Render(format, prompt.Data{Prefix: prefix})
		if err != nil {
			return "", errors.Wrap(err, "rendering prefix format")
		}
		message = formattedPrefix + message
	}
	return message, nil
}

// SummarizeFileDiffs fans out one summarization request per file diff.
// Ignored files are skipped; a failed summary degrades to an empty one.
func (c *Client) SummarizeFileDiffs(ctx context.Context, fileDiffs []string, commitMessage string) ([]*FileSummary, error) {
	logger := debug.GetLogger()
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(c.config.Summarize.Concurrency)

	results := make([]*FileSummary, len(fileDiffs))
	for i, fileDiff := range fileDiffs {
		fileName := git.FileName(fileDiff)
		if fileName == "" {
			continue
		}
		if c.ignored(fileName) {
			logger.Warn("skipping file due to ignore_files setting", "file", fileName)
			continue
		}
		group.Go(func() error {
			summary, err := c.fileDiffSummary(groupCtx, fileDiff, commitMessage)
			if err != nil {
				// One failed file must not sink the whole commit message.
				logger.Error("summarizing file", "file", fileName, "error", err)
				summary = ""
			}
			results[i] = &FileSummary{File: fileName, Summary: strings.TrimSpace(summary)}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	fileSummaries := make([]*FileSummary, 0, len(results))
	for _, fileSummary := range results {
		if fileSummary != nil {
			fileSummaries = append(fileSummaries, fileSummary)
		}
	}
	return fileSummaries, nil
}

// JoinSummaryPoints into the block the title and body templates consume.
func JoinSummaryPoints(fileSummaries []*FileSummary) string {
	points := make([]string, 0, len(fileSummaries))
	for _, fileSummary := range fileSummaries {
		points = append(points, fmt.Sprintf("[%s]\n%s", fileSummary.File, fileSummary.Summary))
	}
	return strings.Join(points, "\n")
}

func (c *Client) fileDiffSummary(ctx context.Context, fileDiff, commitMessage string) (string, error) {
	tmpl := prompt.Or(c.config.Prompts.FileDiff, prompt.DefaultFileDiff)
	promptText, err := prompt.Render(tmpl, prompt.Data{FileDiff: fileDiff, CommitMessage: commitMessage})
	if err != nil {
		return "", errors.Wrap(err, "rendering file diff prompt")
	}
	return c.complete(ctx, promptText)
}

func (c *Client) commitTitle(ctx context.Context, summaryPoints, commitMessage string) (string, error) {
	tmpl := prompt.Or(c.config.Prompts.CommitTitle, prompt.DefaultCommitTitle)
	promptText, err := prompt.Render(tmpl, prompt.Data{SummaryPoints: summaryPoints, CommitMessage: commitMessage})
	if err != nil {
		return "", errors.Wrap(err, "rendering commit title prompt")
	}
	return c.complete(ctx, promptText)
}

func (c *Client) commitSummary(ctx context.Context, summaryPoints, commitMessage string) (string, error) {
	tmpl := prompt.Or(c.config.Prompts.CommitSummary, prompt.DefaultCommitSummary)
	promptText, err := prompt.Render(tmpl, prompt.Data{SummaryPoints: summaryPoints, CommitMessage: commitMessage})
	if err != nil {
		return "", errors.Wrap(err, "rendering commit summary prompt")
	}
	return c.complete(ctx, promptText)
}

// conventionalCommitPrefix asks the model to classify the commit.
// Anything outside the allowed prefixes is discarded.
func (c *Client) conventionalCommitPrefix(ctx context.Context, summaryPoints string) (string, error) {
	if !c.config.Output.ConventionalCommit {
		return "", nil
	}
	tmpl := prompt.Or(c.config.Prompts.ConventionalCommit, prompt.DefaultConventionalCommit)
	promptText, err := prompt.Render(tmpl, prompt.Data{SummaryPoints: summaryPoints})
	if err != nil {
		return "", errors.Wrap(err, "rendering conventional commit prompt")
	}
	completion, err := c.complete(ctx, promptText)
	if err != nil {
		return "", err
	}
	prefix := strings.ToLower(strings.TrimSpace(completion))
	if _, ok := conventionalCommitPrefixes[prefix]; !ok {
		return "", nil
	}
	return prefix, nil
}

func (c *Client) translate(ctx context.Context, message string) (string, error) {
	language := c.config.Output.Language
	if language == "" || strings.EqualFold(language, "en") {
		return message, nil
	}
	tmpl := prompt.Or(c.config.Prompts.Translation, prompt.DefaultTranslation)
	promptText, err := prompt.Render(tmpl, prompt.Data{CommitMessage: message, OutputLanguage: language})
	if err != nil {
		return "", errors.Wrap(err, "rendering translation prompt")
	}
	return c.complete(ctx, promptText)
}

func (c *Client) complete(ctx context.Context, promptText string) (string, error) {
	debug.GetLogger().Debug("sending prompt", "model", c.modelName, "prompt", promptText)
	request := &llm.CreateTextGenerationRequest{
		Model:    c.modelName,
		Messages: []*llm.Message{{Role: llm.UserRole, Content: promptText}},
	}
	completion, err := llm.Complete(ctx, c.llmClient, request)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(completion), nil
}

func (c *Client) ignored(fileName string) bool {
	for _, ignoreFile := range c.config.Summarize.IgnoreFiles {
		if strings.Contains(fileName, ignoreFile) {
			return true
		}
	}
	return false
}

func dedupConsecutiveLines(message string) string {
	lines := strings.Split(message, "\n")
	deduped := make([]string, 0, len(lines))
	for i, line := range lines {
		if i > 0 && line == lines[i-1] {
			continue
		}
		deduped = append(deduped, line)
	}
	return strings.Join(deduped, "\n")
}
