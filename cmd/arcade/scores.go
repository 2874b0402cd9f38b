package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var flagRecent int

var scoresCmd = &cobra.Command{
	Use:   "scores <title>",
	Short: "Show the leaderboard of a title",
	Long: `Display the leaderboard, lifetime stats and the most recent runs of a
title. Stats and runs need the sqlite store.

Examples:
  arcade scores pong
  arcade scores cycles --recent 10
  arcade scores breakout --store file`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 5, "Number of recent runs to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	id := args[0]
	if err := requireTitle(id); err != nil {
		return err
	}

	a, err := newArcade()
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	entries := a.launcher.Board.Load(id).Entries()

	fmt.Fprintf(out, "Leaderboard - %s\n\n", id)
	if len(entries) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintf(out, "\nPlay 'arcade play %s' to set the first top score!\n", id)
	} else {
		fmt.Fprintf(out, "  %-4s  %-4s  %s\n", "Rank", "Name", "Score")
		fmt.Fprintf(out, "  %-4s  %-4s  %s\n", "----", "----", "-----")
		for i, e := range entries {
			fmt.Fprintf(out, "  %-4d  %-4s  %d\n", i+1, e.Initials, e.Score)
		}
	}

	if a.store == nil {
		return nil
	}

	stats, err := a.store.GetGameStats(id)
	if err != nil {
		return err
	}
	if stats.RunsCount == 0 {
		return nil
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Runs: %d  Best: %d  Best level: %d  Avg: %.0f  Played: %s\n",
		stats.RunsCount, stats.HighScore, stats.BestLevel, stats.AvgScore,
		stats.TotalTime.Round(time.Second))

	runs, err := a.store.RecentRuns(id, flagRecent)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		return nil
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-16s  %-8s  %-5s  %s\n", "Date", "Score", "Level", "Time")
	for _, r := range runs {
		fmt.Fprintf(out, "  %-16s  %-8d  %-5d  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Score, r.Level, r.Duration.Round(time.Second))
	}
	return nil
}
