package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "equity-reporter",
	Short: "A CLI for managing the Equity Reporter services",
	Long:  `Equity Reporter schedules market research jobs, scores equities and assembles recommendation reports.`,
}

func main() {

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}
