package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hamed0406/endpointwatch/internal/config"
)

var cfg = config.FromEnv()

var rootCmd = &cobra.Command{
	Use:           "endpointwatch",
	Short:         "Verify a tree of HTTP endpoints",
	Long:          `endpointwatch fetches every endpoint in an endpoints file, descends into nested endpoints and checks each response body.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func main() {
	rootCmd.AddCommand(checkCmd, validateCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
