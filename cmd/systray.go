package cmd

import (
	"fmt"

	"github.com/kartoza/kartoza-audio-limiter/internal/config"
	"github.com/kartoza/kartoza-audio-limiter/internal/daemon"
	"github.com/kartoza/kartoza-audio-limiter/internal/limiter"
	"github.com/kartoza/kartoza-audio-limiter/internal/systray"
	"github.com/spf13/cobra"
)

var systrayCmd = &cobra.Command{
	Use:   "systray",
	Short: "Run as a system tray application",
	Long: `Run the limiter as a system tray applet.

The tray icon shows the limiter state (green: watching, orange:
limiting, gray: disabled):
  - Left-click: enable/disable limiting
  - Right-click: menu with Open Panel and Quit

The applet owns the limiter loop, registers the global hotkeys
(Ctrl+Alt+Up/Down: cap up/down, Ctrl+Alt+Y: toggle) and saves
settings on exit. 'Open Panel' launches the control panel in a
terminal, attached to this instance.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if pid, running := daemon.Running(); running {
			return fmt.Errorf("a limiter is already running (pid %d)", pid)
		}

		appCfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		device, cleanup, err := newAudioDevice()
		if err != nil {
			return err
		}
		defer cleanup()

		cfg := limiter.NewConfig(appCfg.Limiter)
		lim := limiter.New(cfg, device)
		return systray.RunWithHandler(lim, cfg, appCfg)
	},
}

func init() {
	rootCmd.AddCommand(systrayCmd)
}
