package main

import (
	"github.com/spf13/cobra"

	"ckg/internal/query"
)

var (
	timelineFormat string
)

var timelineCmd = &cobra.Command{
	Use:   "timeline <entity-id>",
	Short: "Show an entity's evolution timeline",
	Long:  "Merge diffs, clone detections, and debt signals into a chronological history with churn and stability scores",
	Args:  cobra.ExactArgs(1),
	Run:   runTimeline,
}

func init() {
	timelineCmd.Flags().StringVar(&timelineFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(timelineCmd)
}

// TimelineResponseCLI wraps the timeline for CLI output.
type TimelineResponseCLI struct {
	query.Timeline
}

func runTimeline(cmd *cobra.Command, args []string) {
	logger := newLogger(timelineFormat)
	engine := mustGetEngine(logger)

	timeline, err := engine.Timeline(args[0])
	if err != nil {
		fail("assembling timeline", err)
	}

	emit(&TimelineResponseCLI{Timeline: *timeline}, timelineFormat)
}
