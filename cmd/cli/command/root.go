package command

// root.go defines the root command and the global flags.

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var apiURL string // Global flag for API server URL

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "topmovies",
	Short: "topmovies - keep a ranked list of the movies you have watched",
	Long: `topmovies talks to the topmovies API server. Use it to:
- Search TMDB and add a title to your list
- Rate and review what you added
- See your list ranked by rating

Use "topmovies command -h" to see all available commands.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	defaultAPI := os.Getenv("TOPMOVIES_API")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:8080"
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultAPI, "API server URL")
}

func printDivider(w io.Writer) {
	fmt.Fprintln(w, color.HiBlackString(strings.Repeat("-", 50)))
}
