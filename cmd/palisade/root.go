package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "palisade",
	Short: "Palisade is a validation gate for workflow transitions",
	Long: `Palisade decides whether a content item may move through a workflow
transition by aggregating validator results against a configured severity
threshold. Definitions live as documents in a Loam repository or a YAML file.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing the gate definitions")
	rootCmd.PersistentFlags().String("file", "", "YAML definitions file (overrides --dir)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}
