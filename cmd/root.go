package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion sets the application version (called from main)
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "kartoza-audio-limiter",
	Short: "Keep sudden loud audio under a volume cap",
	Long: `Kartoza Audio Limiter watches the system output level and turns the
master volume down when playback would exceed a configured loudness cap,
then eases it back up once things quiet down.

It supports:
  - Peak detection with attack, hold and release timing
  - A leeway zone for gentle proportional attenuation near the cap
  - Manual volume changes detected and respected with a cooldown
  - An adaptive stabilizer that widens the leeway on noisy content
  - A TUI control panel, a system tray applet and a headless mode

Running without arguments opens the control panel. If a limiter is
already running (tray or headless), the panel attaches to it.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runPanel(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
