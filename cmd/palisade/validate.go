package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/palisade/internal/cli"
	"github.com/aretw0/palisade/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the gate definitions for consistency",
	Long:  `Loads every transition definition and reports invalid thresholds, poll knobs, and message keys.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Definitions are valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	file, _ := cmd.Flags().GetString("file")
	if !cmd.Flags().Changed("dir") && len(args) > 0 {
		dir = args[0]
	}

	loader, err := cli.BuildLoader(dir, file)
	if err != nil {
		return fmt.Errorf("failed to load definitions: %w", err)
	}

	return validator.ValidateDefinitions(context.Background(), loader)
}
