package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kartoza/kartoza-audio-limiter/internal/daemon"
	"github.com/spf13/cobra"
)

var jsonOutput bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show limiter status",
	Long:  `Display the state of a running limiter: whether it is limiting, the current peak and volume, and the active leeway.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pid, running := daemon.Running()
		if !running {
			if jsonOutput {
				fmt.Println(`{"running": false}`)
				return nil
			}
			fmt.Println("Limiter: NOT RUNNING")
			return nil
		}

		st, err := daemon.ReadStatus()
		if err != nil {
			return fmt.Errorf("limiter running (pid %d) but status unreadable: %w", pid, err)
		}

		if jsonOutput {
			data, err := json.MarshalIndent(st, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		state := "WATCHING"
		if !st.Running {
			state = "DISABLED"
		} else if st.Limiting {
			state = "LIMITING"
		}

		uptime := time.Since(st.StartTime).Round(time.Second)
		fmt.Printf("Limiter:   %s (pid %d, up %s)\n", state, st.PID, uptime)
		fmt.Printf("Peak:      %.0f%%\n", st.Peak*100)
		fmt.Printf("Volume:    %.0f%%\n", st.Volume*100)
		fmt.Printf("Cap:       %.0f%%\n", st.VolumeCap*100)
		if st.Limiting {
			fmt.Printf("Restoring to: %.0f%%\n", st.OriginalVolume*100)
		}
		if st.CurrentLeeway != st.BaseLeeway {
			fmt.Printf("Leeway:    %.1f dB (base %.1f dB)\n", st.CurrentLeeway, st.BaseLeeway)
		} else {
			fmt.Printf("Leeway:    %.1f dB\n", st.CurrentLeeway)
		}

		return nil
	},
}

func init() {
	statusCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output status as JSON")
	rootCmd.AddCommand(statusCmd)
}
