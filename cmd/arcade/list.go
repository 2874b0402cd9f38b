package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-eggs/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available titles",
	Long:  `Shows a list of all titles registered in the arcade.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	titles := registry.List()

	if len(titles) == 0 {
		fmt.Fprintln(out, "No titles available.")
		return
	}

	fmt.Fprintln(out, "Available titles:")
	fmt.Fprintln(out)

	idLen := len("ID")
	for _, g := range titles {
		idLen = max(idLen, len(g.ID))
	}

	fmt.Fprintf(out, "  %-*s  %s\n", idLen, "ID", "Title")
	fmt.Fprintf(out, "  %-*s  %s\n", idLen, "--", "-----")
	for _, g := range titles {
		fmt.Fprintf(out, "  %-*s  %s\n", idLen, g.ID, g.Title)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'arcade play <id>' to play a title.")
}
