package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/kartoza/kartoza-audio-limiter/internal/audio"
	"github.com/kartoza/kartoza-audio-limiter/internal/config"
	"github.com/kartoza/kartoza-audio-limiter/internal/daemon"
	"github.com/kartoza/kartoza-audio-limiter/internal/limiter"
	"github.com/kartoza/kartoza-audio-limiter/internal/models"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the limiter in the foreground",
	Long: `Run the limiter loop headless in the foreground.

Writes a pid file and publishes status once a second so 'status',
'toggle' and 'stop' can talk to it. On Unix the process responds to
SIGUSR1 (toggle limiting), SIGHUP (reload settings from disk) and
SIGTERM (save settings and exit).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHeadless()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runHeadless() error {
	if pid, running := daemon.Running(); running {
		return fmt.Errorf("a limiter is already running (pid %d)", pid)
	}

	appCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	meter, err := audio.NewMeter()
	if err != nil {
		return fmt.Errorf("opening peak meter: %w", err)
	}
	defer meter.Close()

	ctl, err := audio.NewSystemVolume()
	if err != nil {
		return fmt.Errorf("opening volume control: %w", err)
	}

	device, err := audio.NewDevice(meter, ctl)
	if err != nil {
		return fmt.Errorf("probing audio device: %w", err)
	}

	cfg := limiter.NewConfig(appCfg.Limiter)
	lim := limiter.New(cfg, device)
	if err := lim.Start(); err != nil {
		return err
	}
	defer lim.Stop()

	if err := daemon.WritePID(); err != nil {
		return fmt.Errorf("writing pid file: %w", err)
	}
	defer daemon.RemovePID()
	defer daemon.RemoveStatus()

	sigs := make(chan os.Signal, 4)
	daemon.Notify(sigs)

	statusTicker := time.NewTicker(1 * time.Second)
	defer statusTicker.Stop()
	startTime := time.Now()

	fmt.Printf("Limiting to %.0f%% volume cap (pid %d). Ctrl-C to stop.\n",
		cfg.VolumeCap()*100, os.Getpid())

	for {
		select {
		case sig := <-sigs:
			switch {
			case daemon.IsToggle(sig):
				if cfg.ToggleRunning() {
					fmt.Println("Limiting enabled")
				} else {
					fmt.Println("Limiting disabled")
				}
			case daemon.IsReload(sig):
				if fresh, err := config.Load(); err == nil {
					*appCfg = *fresh
					cfg.Apply(fresh.Limiter)
					fmt.Println("Settings reloaded")
				} else {
					fmt.Fprintf(os.Stderr, "Reload failed: %v\n", err)
				}
			default:
				appCfg.Limiter = cfg.Settings()
				if err := config.Save(appCfg); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: could not save settings: %v\n", err)
				}
				return nil
			}

		case <-statusTicker.C:
			tel := lim.Telemetry()
			daemon.WriteStatus(models.Status{
				PID:            os.Getpid(),
				Running:        tel.Running,
				Limiting:       tel.Limiting,
				Peak:           tel.Peak,
				Volume:         tel.Volume,
				OriginalVolume: tel.OriginalVolume,
				VolumeCap:      tel.VolumeCap,
				CurrentLeeway:  tel.CurrentLeeway,
				BaseLeeway:     tel.BaseLeeway,
				StartTime:      startTime,
			})
		}
	}
}
