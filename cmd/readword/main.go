package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zczcm85/readword/internal/cli"
	"github.com/zczcm85/readword/internal/models"
	"github.com/zczcm85/readword/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey())
		return lister.ListAvailableModels()
	}

	proc := processor.NewProcessor(flags)

	// Handle --list-providers flag
	if flags.ListProviders {
		proc.ListProviders()
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("please provide a word list file or '-' for stdin")
	}
	flags.WordFile = args[0]

	return proc.Run(context.Background())
}
