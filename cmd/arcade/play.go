package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-eggs/internal/platform/term"
	"github.com/vovakirdan/arcade-eggs/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play <title>",
	Short: "Play a title",
	Long: `Start playing the specified title.

Controls:
  Arrows/WASD  - Move or steer
  Space        - Launch the ball
  Enter        - Confirm initials
  P            - Pause
  M            - Mute
  R            - Restart (after game over)
  Esc/Q        - Close the title
  Ctrl+S       - Save a text screenshot
  Ctrl+C       - Quit

Difficulty presets:
  easy   - Start slower, progress to max
  normal - Start at the default pace
  hard   - Start near max
  fixed  - No progression

Examples:
  arcade play pong
  arcade play breakout --preset easy
  arcade play cycles --frontend tcell
  arcade play pong --config ./my-pong.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	id := args[0]
	if err := requireTitle(id); err != nil {
		return err
	}

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

	return playTitle(a, id)
}

// playTitle runs one title in the selected frontend until it closes.
func playTitle(a *arcade, id string) error {
	w, h := terminalSize()

	restore := logToFile()
	defer restore()

	switch flagFrontend {
	case "tcell":
		eng, err := a.launcher.Open(id, w, h)
		if err != nil {
			return err
		}
		return term.Run(eng, term.Options{FPS: flagFPS, Logger: logger})
	case "tea", "":
		eng, err := a.launcher.Open(id, w, h-tui.FooterRows)
		if err != nil {
			return err
		}
		return tui.Run(eng, tui.ModelOptions{FPS: flagFPS, Logger: logger})
	default:
		return fmt.Errorf("unknown frontend %q (want tea or tcell)", flagFrontend)
	}
}
