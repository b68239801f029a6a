package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/palisade"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of palisade",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("palisade version %s\n", strings.TrimSpace(palisade.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
