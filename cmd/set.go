package cmd

import (
	"fmt"

	"github.com/kartoza/kartoza-audio-limiter/internal/autostart"
	"github.com/kartoza/kartoza-audio-limiter/internal/config"
	"github.com/kartoza/kartoza-audio-limiter/internal/daemon"
	"github.com/spf13/cobra"
)

var (
	setCap        float64
	setAttack     float64
	setRelease    float64
	setHold       float64
	setCooldown   float64
	setLeeway     float64
	setDampening  float64
	setDampSpeed  float64
	setStabilizer bool
	setStabWindow float64
	setStabThresh int
	setStabMax    float64
	setStabStep   float64
	setStabChange float64
	setAutostart  bool
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Update persisted limiter settings",
	Long: `Update one or more persisted settings. Only flags you pass are
changed; everything else keeps its current value. A running limiter
picks up the change immediately.

Examples:
  kartoza-audio-limiter set --cap 20
  kartoza-audio-limiter set --attack 50 --release 500
  kartoza-audio-limiter set --stabilizer --leeway 3
  kartoza-audio-limiter set --autostart=true`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appCfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		s := &appCfg.Limiter
		changed := false

		if cmd.Flags().Changed("cap") {
			s.VolumeCap = setCap / 100
			changed = true
		}
		if cmd.Flags().Changed("attack") {
			s.AttackTime = setAttack / 1000
			changed = true
		}
		if cmd.Flags().Changed("release") {
			s.ReleaseTime = setRelease / 1000
			changed = true
		}
		if cmd.Flags().Changed("hold") {
			s.HoldTime = setHold / 1000
			changed = true
		}
		if cmd.Flags().Changed("cooldown") {
			s.UserCooldown = setCooldown
			changed = true
		}
		if cmd.Flags().Changed("leeway") {
			s.LeewayDB = setLeeway
			changed = true
		}
		if cmd.Flags().Changed("dampening") {
			s.Dampening = setDampening
			changed = true
		}
		if cmd.Flags().Changed("damp-speed") {
			s.DampeningSpeed = setDampSpeed
			changed = true
		}
		if cmd.Flags().Changed("stabilizer") {
			s.StabilizerEnabled = setStabilizer
			changed = true
		}
		if cmd.Flags().Changed("stab-window") {
			s.StabilizerWindow = setStabWindow
			changed = true
		}
		if cmd.Flags().Changed("stab-threshold") {
			s.StabilizerThreshold = setStabThresh
			changed = true
		}
		if cmd.Flags().Changed("stab-max-leeway") {
			s.StabilizerMaxLeeway = setStabMax
			changed = true
		}
		if cmd.Flags().Changed("stab-step") {
			s.StabilizerStep = setStabStep
			changed = true
		}
		if cmd.Flags().Changed("stab-change") {
			s.StabilizerChangeThreshold = setStabChange / 100
			changed = true
		}

		if cmd.Flags().Changed("autostart") {
			appCfg.RunAtStartup = setAutostart
			if err := autostart.Sync(setAutostart); err != nil {
				return fmt.Errorf("updating login item: %w", err)
			}
			changed = true
		}

		if !changed {
			return fmt.Errorf("nothing to change; see 'kartoza-audio-limiter set --help'")
		}

		*s = s.Clamped()
		if err := config.Save(appCfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}

		if pid, running := daemon.Running(); running {
			if err := daemon.Reload(pid); err != nil {
				fmt.Printf("Saved; could not notify running limiter (pid %d): %v\n", pid, err)
				return nil
			}
			fmt.Println("Saved and applied to the running limiter")
			return nil
		}

		fmt.Println("Saved")
		return nil
	},
}

func init() {
	setCmd.Flags().Float64Var(&setCap, "cap", 20, "Volume cap in percent (1-100)")
	setCmd.Flags().Float64Var(&setAttack, "attack", 50, "Attack time in milliseconds")
	setCmd.Flags().Float64Var(&setRelease, "release", 500, "Release time in milliseconds")
	setCmd.Flags().Float64Var(&setHold, "hold", 150, "Hold time in milliseconds")
	setCmd.Flags().Float64Var(&setCooldown, "cooldown", 2, "User override cooldown in seconds")
	setCmd.Flags().Float64Var(&setLeeway, "leeway", 3, "Leeway above the cap in dB")
	setCmd.Flags().Float64Var(&setDampening, "dampening", 1, "Sustained-peak dampening factor (>= 1)")
	setCmd.Flags().Float64Var(&setDampSpeed, "damp-speed", 0, "Seconds over which dampening ramps in")
	setCmd.Flags().BoolVar(&setStabilizer, "stabilizer", false, "Enable the adaptive leeway stabilizer")
	setCmd.Flags().Float64Var(&setStabWindow, "stab-window", 5, "Stabilizer window in seconds")
	setCmd.Flags().IntVar(&setStabThresh, "stab-threshold", 5, "Volume changes per window before leeway rises")
	setCmd.Flags().Float64Var(&setStabMax, "stab-max-leeway", 12, "Stabilizer leeway ceiling in dB")
	setCmd.Flags().Float64Var(&setStabStep, "stab-step", 1, "Stabilizer adjustment step in dB")
	setCmd.Flags().Float64Var(&setStabChange, "stab-change", 5, "Volume change that counts as significant, in percent")
	setCmd.Flags().BoolVar(&setAutostart, "autostart", false, "Start the tray applet at login")
	rootCmd.AddCommand(setCmd)
}
