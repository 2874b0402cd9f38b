// arcade runs the hidden arcade titles in the terminal.
//
// Usage:
//
//	arcade list              - List available titles
//	arcade play <title>      - Play a title
//	arcade menu              - Pick titles interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores <title>    - Show the leaderboard and run stats of a title
//
// Global flags:
//
//	--fps <rate>         - Display rate (default: 60)
//	--seed <value>       - RNG seed for reproducible runs
//	--db <path>          - Scores database (default: ~/.arcade/scores.db)
//	--store <kind>       - Leaderboard backend: sqlite or file
//	--preset <name>      - Difficulty preset: easy, normal, hard, fixed
//	--frontend <name>    - Terminal frontend: tea or tcell
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	// Import titles to register them
	_ "github.com/vovakirdan/arcade-eggs/internal/games/breakout"
	_ "github.com/vovakirdan/arcade-eggs/internal/games/cycles"
	_ "github.com/vovakirdan/arcade-eggs/internal/games/pong"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagStore      string
	flagMute       bool
	flagNotifyURL  string
	flagLogLevel   string
	flagFrontend   string
	flagProfile    string
	flagPreset     string
	flagConfig     string
	flagScoresFile string
	flagEngineCfg  string
)

// .env is read before the flag defaults below consult the environment. A
// missing file is the normal case.
var _ = godotenv.Load()

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "arcade"})

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Arcade - hidden retro titles for your terminal",
	Long: `Arcade runs small real-time titles in the terminal: a paddle duel,
a brick breaker and a light-cycle duel.

Available commands:
  list     - Show all available titles
  play     - Play a specific title directly
  menu     - Interactive picker
  serve    - Start SSH server for remote play
  scores   - View leaderboards and run history

Examples:
  arcade list
  arcade play pong
  arcade play cycles --preset hard
  arcade menu --frontend tcell
  arcade serve --ssh :2222
  arcade scores breakout`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupLogging()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Display rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", envOr("ARCADE_DB", "~/.arcade/scores.db"), "Path to scores database")
	pf.StringVar(&flagStore, "store", "sqlite", "Leaderboard backend: sqlite or file")
	pf.BoolVar(&flagMute, "mute", false, "Start with sound muted")
	pf.StringVar(&flagNotifyURL, "notify-url", os.Getenv("ARCADE_NOTIFY_URL"), "Websocket URL receiving top-score events")
	pf.StringVar(&flagLogLevel, "log-level", os.Getenv("ARCADE_LOG_LEVEL"), "Log level: debug, info, warn, error")
	pf.StringVar(&flagFrontend, "frontend", "tea", "Terminal frontend: tea or tcell")
	pf.StringVar(&flagProfile, "profile", "", "Write a cpu or mem profile to the working directory")
	pf.StringVar(&flagPreset, "preset", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagConfig, "config", "", "Path to a custom title config YAML")
	pf.StringVar(&flagEngineCfg, "engine-config", "", "Path to a custom engine timings YAML")
	pf.StringVar(&flagScoresFile, "scores-file", "~/.arcade/leaderboards.json", "Leaderboard file used by --store file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
