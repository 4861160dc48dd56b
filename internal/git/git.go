// Package git shells out to the git binary.
package git

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

const diffHeader = "diff --git"

// StagedDiff returns the diff of the staging area.
func StagedDiff(ctx context.Context) (string, error) {
	return run(ctx, "diff", "--cached")
}

// SplitDiff splits a diff into per-file diffs.
func SplitDiff(diff string) []string {
	parts := strings.Split(diff, diffHeader)
	fileDiffs := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		fileDiffs = append(fileDiffs, diffHeader+part)
	}
	return fileDiffs
}

// FileName extracts the post-image file name from a per-file diff.
// It returns an empty string if the diff does not start with a file header.
func FileName(fileDiff string) string {
	line, _, _ := strings.Cut(fileDiff, "\n")
	if !strings.HasPrefix(line, diffHeader) {
		return ""
	}
	fields := strings.Fields(strings.TrimPrefix(line, diffHeader))
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimPrefix(fields[len(fields)-1], "b/")
}

// Commit the given message. The message goes through a file to preserve its formatting.
func Commit(ctx context.Context, message string) error {
	f, err := os.CreateTemp("", "gcommit-*.commit")
	if err != nil {
		return errors.Wrap(err, "creating commit message file")
	}
	defer os.Remove(f.Name())
	if _, err := f.WriteString(message); err != nil {
		f.Close()
		return errors.Wrap(err, "writing commit message file")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "closing commit message file")
	}
	_, err = run(ctx, "commit", "--file", f.Name())
	return err
}

// HooksDir returns the hooks directory of the current repository.
func HooksDir(ctx context.Context) (string, error) {
	output, err := run(ctx, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", err
	}
	return filepath.Join(strings.TrimSpace(output), "hooks"), nil
}

func run(ctx context.Context, args ...string) (string, error) {
	path, err := exec.LookPath("git")
	if err != nil {
		return "", errors.Wrap(err, "git not found in your PATH")
	}
	command := exec.CommandContext(ctx, path, args...)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	command.Stdout = stdout
	command.Stderr = stderr
	if err := command.Run(); err != nil {
		return "", errors.Wrapf(err, "running git %s: %s", strings.Join(args, " "), stderr.String())
	}
	return stdout.String(), nil
}
