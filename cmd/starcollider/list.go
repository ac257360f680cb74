package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/star-collider/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered frontends",
	Long:  `Display every frontend Star Collider can run on.`,
	Run: func(cmd *cobra.Command, args []string) {
		frontends := registry.List()
		if len(frontends) == 0 {
			fmt.Println("No frontends registered.")
			return
		}

		fmt.Println("Frontends:")
		fmt.Println()
		fmt.Printf("  %-12s %s\n", "ID", "Title")
		fmt.Printf("  %-12s %s\n", "--", "-----")
		for _, f := range frontends {
			fmt.Printf("  %-12s %s\n", f.ID, f.Title)
		}
		fmt.Println()
		fmt.Println("Use 'starcollider menu' to pick one interactively.")
	},
}
