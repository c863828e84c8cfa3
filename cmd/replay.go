package cmd

import (
	"os"
	"time"

	"github.com/josephlewis42/loadables/core/ttylog"
	"github.com/spf13/cobra"
)

var replayMaxPause time.Duration

// replayCmd plays back a recorded playground session.
var replayCmd = &cobra.Command{
	Use:   "replay FILE." + ttylog.AsciicastFileExt,
	Short: "Play a recorded playground session.",
	Long:  `Plays a session recorded with "playground --record" back to the current terminal.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		fd, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer fd.Close()

		return ttylog.Replay(
			ttylog.NewAsciicastLogSource(fd),
			ttylog.NewRealTimePlayback(replayMaxPause, ttylog.NewClientOutput(cmd.OutOrStdout())))
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().DurationVar(&replayMaxPause, "max-pause", 3*time.Second, "longest pause between events, 0 plays without pausing")
}
