// Package config implements the config command.
package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/malonaz/gcommit/internal/cli"
	"github.com/malonaz/gcommit/internal/file"
)

// NewCmd instantiates and returns the config command.
func NewCmd(configFilepath string) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the configuration file",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			path, err := file.ExpandPath(configFilepath)
			cobra.CheckErr(err)
			content, err := os.ReadFile(path)
			cobra.CheckErr(errors.Wrap(err, "reading configuration file"))
			cli.FileInfo("%s\n", path)
			cli.Separator()
			cli.AIOutput(string(content))
			cli.AIOutput("\n")
		},
	}
}
