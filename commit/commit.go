// Package commit implements the generate command.
package commit

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/malonaz/gcommit/internal/cli"
	"github.com/malonaz/gcommit/internal/configuration"
	"github.com/malonaz/gcommit/internal/git"
	"github.com/malonaz/gcommit/internal/llm"
	"github.com/malonaz/gcommit/internal/model"
	"github.com/malonaz/gcommit/internal/summarize"
)

// NewCmd instantiates and returns the generate command.
func NewCmd(config *configuration.Config) *cobra.Command {
	var opts struct {
		LLM         *llm.Opts
		Yes         bool
		Context     string
		ShowPerFile bool
	}

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate a commit message for the staged diff",
		Long:    "Summarize each staged file with the model, then generate a commit message from the summaries",
		Args:    cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := context.WithTimeout(context.Background(), time.Duration(config.RequestTimeout)*time.Second)
			defer cancel()

			gitDiff, err := git.StagedDiff(ctx)
			cobra.CheckErr(err)
			fileDiffs := git.SplitDiff(gitDiff)
			if len(fileDiffs) == 0 {
				cobra.CheckErr(errors.New("nothing is staged. Stage your changes with `git add` first"))
			}

			llmClient, llmModel, _, err := llm.NewClient(config, opts.LLM)
			cobra.CheckErr(err)
			if opts.ShowPerFile {
				config.Output.ShowPerFileSummary = true
			}

			cli.Title("gcommit")
			if len(config.Summarize.IgnoreFiles) > 0 {
				cli.FileInfo("Ignoring files matching:\n -%s\n", strings.Join(config.Summarize.IgnoreFiles, "\n -"))
				cli.Separator()
			}
			requestTokens, requestCost, err := model.CalculateRequestCost(llmModel.Name, &llm.Message{Role: llm.UserRole, Content: gitDiff})
			cobra.CheckErr(err)
			cli.CostInfo("Staged diff contains %d tokens costing around $%s to summarize\n", requestTokens, requestCost.String())
			cli.Separator()

			summarizer := summarize.NewClient(llmClient, llmModel.Name, config)
			message, err := summarizer.CommitMessage(ctx, fileDiffs, opts.Context)
			cobra.CheckErr(err)

			cli.AIOutput(message)
			cli.AIOutput("\n")
			cli.Separator()
			responseTokens, responseCost, err := model.CalculateResponseCost(llmModel.Name, message)
			cobra.CheckErr(err)
			cli.CostInfo("Response contains %d tokens costing $%s\n", responseTokens, responseCost.String())
			cli.Separator()

			if !opts.Yes && !cli.QueryUser("Apply commit") {
				return
			}
			cobra.CheckErr(git.Commit(ctx, message))
		},
	}

	opts.LLM = llm.GetOpts(cmd, config.Summarize.DefaultModel)
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "apply the commit without confirmation")
	cmd.Flags().StringVar(&opts.Context, "context", "", "an existing commit message to give the model as context")
	cmd.Flags().BoolVar(&opts.ShowPerFile, "show-per-file", false, "append the per-file summaries to the message")
	return cmd
}
