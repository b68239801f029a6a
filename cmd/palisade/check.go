package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/palisade/internal/cli"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <transition>",
	Short: "Run a gate check for a workflow transition",
	Long: `Evaluates the validation gate for one transition and item. Validator
results are simulated with --validator specs, which makes the command a dry
run of the gate policy:

  palisade check publish --item-path /content/home \
    --validator spell-check=Valid --validator link-check=Error

Exits 0 when the transition may proceed and 1 when it is blocked.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		file, _ := cmd.Flags().GetString("file")
		debug, _ := cmd.Flags().GetBool("debug")

		itemID, _ := cmd.Flags().GetString("item")
		itemPath, _ := cmd.Flags().GetString("item-path")
		language, _ := cmd.Flags().GetString("language")
		version, _ := cmd.Flags().GetInt("version")
		validators, _ := cmd.Flags().GetStringArray("validator")
		jsonMode, _ := cmd.Flags().GetBool("json")

		opts := cli.CheckOptions{
			Dir:          dir,
			File:         file,
			TransitionID: args[0],
			ItemID:       itemID,
			ItemPath:     itemPath,
			Language:     language,
			Version:      version,
			Validators:   validators,
			Debug:        debug,
			JSON:         jsonMode,
		}

		err := cli.RunCheck(context.Background(), opts)
		if err == nil {
			return
		}
		if !errors.Is(err, cli.ErrBlocked) {
			fmt.Printf("Error: %v\n", err)
		}
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().String("item", "", "ID of an item defined alongside the transitions")
	checkCmd.Flags().String("item-path", "", "Content item path (alternative to --item)")
	checkCmd.Flags().String("language", "en", "Item language")
	checkCmd.Flags().Int("version", 1, "Item version")
	checkCmd.Flags().StringArray("validator", nil, "Simulated validator result: name=Result or name=Result:rounds (repeatable)")
	checkCmd.Flags().Bool("json", false, "Print the outcome as JSON even on a terminal")
}
