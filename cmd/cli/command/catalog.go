package command

import (
	"fmt"
	"strings"

	"topmovies/cmd/cli/command/client"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [title]",
	Short: "Search TMDB for a title to add",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		candidates, err := client.NewHTTPClient(apiURL).SearchCatalog(query)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(candidates) == 0 {
			fmt.Fprintf(out, "No titles found matching '%s'.\n", query)
			return nil
		}

		fmt.Fprintf(out, "Found %d titles matching '%s':\n\n", len(candidates), query)
		for _, c := range candidates {
			year := "????"
			if c.Year > 0 {
				year = fmt.Sprintf("%d", c.Year)
			}
			fmt.Fprintf(out, "%8d  %s (%s)\n", c.ExternalID, color.CyanString(c.Title), year)
		}
		fmt.Fprintln(out, "\nAdd one with 'topmovies add <external-id>'.")
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add [external-id]",
	Short: "Add a TMDB title to your list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		externalID, err := parseID(args[0], "external")
		if err != nil {
			return err
		}

		m, err := client.NewHTTPClient(apiURL).AddFromCatalog(externalID)
		if err != nil {
			return fmt.Errorf("failed to add movie: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "Added %s (%d) as movie %d\n", m.Title, m.Year, m.ID)
		fmt.Fprintf(out, "Rate it with 'topmovies rate %d <rating> <review>'.\n", m.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd, addCmd)
}
