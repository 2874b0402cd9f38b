package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-eggs/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a title picker",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, left/right to change the difficulty
and Enter to start a title. Closing a title returns to the menu.

Controls:
  Up/Down/j/k    - Navigate
  Left/Right     - Difficulty preset
  Enter/Space    - Start title
  Tab            - Leaderboards
  Q              - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --store file`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	a, err := newArcade()
	if err != nil {
		return err
	}
	defer a.Close()

	stopProfile, err := startProfile()
	if err != nil {
		return err
	}
	defer stopProfile()

	width, height := terminalSize()
	for {
		res, err := tui.RunMenu(a.launcher.Board, a.launcher.Options.Preset, width, height)
		if err != nil {
			return err
		}
		width, height = res.Width, res.Height

		switch {
		case res.Quit:
			return nil

		case res.WantsScoreboard:
			goBack, err := tui.RunScoreboard(a.launcher.Board, a.store, width, height)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		case res.GameID != "":
			a.launcher.Options.Preset = res.Preset
			if flagSeed == 0 {
				a.launcher.Runtime.Seed = seed()
			}
			if err := playTitle(a, res.GameID); err != nil {
				logger.Error("title failed", "title", res.GameID, "error", err)
			}

		default:
			return nil
		}
	}
}
