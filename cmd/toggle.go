package cmd

import (
	"fmt"

	"github.com/kartoza/kartoza-audio-limiter/internal/daemon"
	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Pause or resume a running limiter",
	RunE: func(cmd *cobra.Command, args []string) error {
		pid, running := daemon.Running()
		if !running {
			return fmt.Errorf("no limiter is running; start one with 'kartoza-audio-limiter run'")
		}
		if err := daemon.Toggle(pid); err != nil {
			return fmt.Errorf("signalling limiter (pid %d): %w", pid, err)
		}
		fmt.Println("Toggled")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}
