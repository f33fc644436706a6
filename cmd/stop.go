package cmd

import (
	"fmt"

	"github.com/kartoza/kartoza-audio-limiter/internal/daemon"
	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop a running limiter",
	RunE: func(cmd *cobra.Command, args []string) error {
		pid, running := daemon.Running()
		if !running {
			fmt.Println("No limiter is running")
			return nil
		}
		if err := daemon.Stop(pid); err != nil {
			return fmt.Errorf("stopping limiter (pid %d): %w", pid, err)
		}
		fmt.Printf("Stopped limiter (pid %d)\n", pid)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
