// Package hook implements the prepare-commit-msg git hook and its installer.
package hook

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/malonaz/gcommit/internal/cli"
	"github.com/malonaz/gcommit/internal/configuration"
	"github.com/malonaz/gcommit/internal/file"
	"github.com/malonaz/gcommit/internal/git"
	"github.com/malonaz/gcommit/internal/llm"
	"github.com/malonaz/gcommit/internal/summarize"
)

const hookName = "prepare-commit-msg"

// hookScript delegates to the gcommit binary. Its marker line lets
// uninstall distinguish our hook from a user's own.
const hookScript = `#!/bin/sh
# installed by gcommit
gcommit prepare-commit-msg --commit-msg-file "$1" --commit-source "$2" --sha1 "$3"
`

// Commit sources for which we leave the message alone: user-written
// messages (-m/-F), merges, squashes and amends.
var skippedSources = map[string]struct{}{
	"message": {},
	"merge":   {},
	"squash":  {},
	"commit":  {},
}

// NewPrepareCommitMsgCmd instantiates and returns the prepare-commit-msg command.
func NewPrepareCommitMsgCmd(config *configuration.Config) *cobra.Command {
	var opts struct {
		LLM           *llm.Opts
		CommitMsgFile string
		CommitSource  string
		SHA1          string
	}

	cmd := &cobra.Command{
		Use:    "prepare-commit-msg",
		Short:  "Run as the prepare-commit-msg git hook",
		Hidden: true,
		Args:   cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			if _, ok := skippedSources[opts.CommitSource]; ok {
				return
			}

			ctx, cancel := context.WithTimeout(context.Background(), time.Duration(config.RequestTimeout)*time.Second)
			defer cancel()

			originalBytes, err := os.ReadFile(opts.CommitMsgFile)
			cobra.CheckErr(errors.Wrap(err, "reading commit message file"))
			original := string(originalBytes)

			gitDiff, err := git.StagedDiff(ctx)
			cobra.CheckErr(err)
			fileDiffs := git.SplitDiff(gitDiff)
			if len(fileDiffs) == 0 {
				return
			}

			llmClient, llmModel, _, err := llm.NewClient(config, opts.LLM)
			cobra.CheckErr(err)

			summarizer := summarize.NewClient(llmClient, llmModel.Name, config)
			message, err := summarizer.CommitMessage(ctx, fileDiffs, commitMessageContext(original))
			cobra.CheckErr(err)

			// The generated message goes first; git keeps the original
			// comment block below it for the user to review.
			content := strings.TrimSpace(message) + "\n\n" + original
			err = os.WriteFile(opts.CommitMsgFile, []byte(content), 0644)
			cobra.CheckErr(errors.Wrap(err, "writing commit message file"))
		},
	}

	opts.LLM = llm.GetOpts(cmd, config.Summarize.DefaultModel)
	cmd.Flags().StringVar(&opts.CommitMsgFile, "commit-msg-file", "", "path to the commit message file")
	cmd.Flags().StringVar(&opts.CommitSource, "commit-source", "", "source of the commit message")
	cmd.Flags().StringVar(&opts.SHA1, "sha1", "", "commit sha, when amending")
	cmd.MarkFlagRequired("commit-msg-file")
	return cmd
}

// NewInstallCmd instantiates and returns the install command.
func NewInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install the prepare-commit-msg hook in the current repository",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			hooksDir, err := git.HooksDir(ctx)
			cobra.CheckErr(err)
			path := filepath.Join(hooksDir, hookName)

			exists, err := file.Exists(path)
			cobra.CheckErr(err)
			if exists {
				ours, err := installedByUs(path)
				cobra.CheckErr(err)
				if !ours {
					cobra.CheckErr(errors.Errorf("a %s hook already exists at %s", hookName, path))
				}
			}

			cobra.CheckErr(os.MkdirAll(hooksDir, 0755))
			cobra.CheckErr(os.WriteFile(path, []byte(hookScript), 0755))
			cli.FileInfo("Installed %s\n", path)
		},
	}
}

// NewUninstallCmd instantiates and returns the uninstall command.
func NewUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the prepare-commit-msg hook from the current repository",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			hooksDir, err := git.HooksDir(ctx)
			cobra.CheckErr(err)
			path := filepath.Join(hooksDir, hookName)

			exists, err := file.Exists(path)
			cobra.CheckErr(err)
			if !exists {
				return
			}
			ours, err := installedByUs(path)
			cobra.CheckErr(err)
			if !ours {
				cobra.CheckErr(errors.Errorf("the %s hook at %s was not installed by gcommit", hookName, path))
			}
			cobra.CheckErr(os.Remove(path))
			cli.FileInfo("Removed %s\n", path)
		},
	}
}

// commitMessageContext strips git's comment block from an existing message.
func commitMessageContext(original string) string {
	lines := []string{}
	for _, line := range strings.Split(original, "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func installedByUs(path string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, errors.Wrap(err, "reading hook")
	}
	return strings.Contains(string(content), "installed by gcommit"), nil
}
