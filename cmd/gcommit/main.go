package main

import (
	"github.com/spf13/cobra"

	"github.com/malonaz/gcommit/commit"
	"github.com/malonaz/gcommit/config"
	"github.com/malonaz/gcommit/hook"
	"github.com/malonaz/gcommit/internal/configuration"
)

const configFilepath = "~/.config/gcommit/config.json"

var rootCmd = &cobra.Command{
	Use:     "gcommit",
	Short:   "A CLI that writes your commit messages",
	Version: "1.0",
}

func main() {
	cfg, err := configuration.Parse(configFilepath)
	if err != nil {
		panic(err)
	}

	rootCmd.AddCommand(commit.NewCmd(cfg))
	rootCmd.AddCommand(hook.NewPrepareCommitMsgCmd(cfg))
	rootCmd.AddCommand(hook.NewInstallCmd())
	rootCmd.AddCommand(hook.NewUninstallCmd())
	rootCmd.AddCommand(config.NewCmd(configFilepath))
	rootCmd.Execute()
}
