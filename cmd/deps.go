package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/kartoza/kartoza-audio-limiter/internal/deps"
	"github.com/spf13/cobra"
)

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Check for required dependencies",
	Long:  `Check if the external programs the limiter relies on are installed and available.`,
	Run: func(cmd *cobra.Command, args []string) {
		required, optional := deps.CheckAll()

		// Colors
		green := lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
		red := lipgloss.NewStyle().Foreground(lipgloss.Color("#E95420"))
		gray := lipgloss.NewStyle().Foreground(lipgloss.Color("#9A9EA0"))
		cyan := lipgloss.NewStyle().Foreground(lipgloss.Color("#00BCD4"))
		bold := lipgloss.NewStyle().Bold(true)

		fmt.Println()
		fmt.Printf("%s %s\n\n", bold.Render("Audio Server:"), cyan.Render(deps.GetAudioServerName()))

		fmt.Println(bold.Render("Required Dependencies:"))
		fmt.Println()

		allRequiredOk := true
		for _, r := range required {
			var status string
			if r.Available {
				status = green.Render("✓")
			} else {
				status = red.Render("✗")
				allRequiredOk = false
			}
			fmt.Printf("  %s %s\n", status, bold.Render(r.Dependency.Name))
			fmt.Printf("    %s\n", gray.Render(r.Dependency.Description))
			if r.Available {
				fmt.Printf("    Path: %s\n", r.Path)
			}
			fmt.Println()
		}

		fmt.Println(bold.Render("Optional Dependencies:"))
		fmt.Println()
		for _, r := range optional {
			var status string
			if r.Available {
				status = green.Render("✓")
			} else {
				status = gray.Render("-")
			}
			fmt.Printf("  %s %s  %s\n", status, bold.Render(r.Dependency.Name), gray.Render(r.Dependency.Description))
		}
		fmt.Println()

		if !allRequiredOk {
			fmt.Println(red.Render("Some required dependencies are missing."))
		} else {
			fmt.Println(green.Render("All required dependencies are available."))
		}
	},
}

func init() {
	rootCmd.AddCommand(depsCmd)
}
