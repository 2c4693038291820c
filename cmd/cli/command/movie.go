package command

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"topmovies/cmd/cli/command/client"
	"topmovies/internal/microservices/http-api/dto"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show your movies ranked by rating",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		movies, err := client.NewHTTPClient(apiURL).ListMovies()
		if err != nil {
			return fmt.Errorf("failed to get movie list: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(movies) == 0 {
			fmt.Fprintln(out, "Your list is empty. Add a movie with 'topmovies search <title>'.")
			return nil
		}

		// best first, the way a top list reads
		for i := len(movies) - 1; i >= 0; i-- {
			printMovieLine(out, movies[i])
		}
		return nil
	},
}

var showTitle string

var showCmd = &cobra.Command{
	Use:   "show [id] | show --title <title>",
	Short: "Show one movie by id or by exact title",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewHTTPClient(apiURL)

		var (
			m   *dto.MovieResponse
			err error
		)
		switch {
		case showTitle != "" && len(args) > 0:
			return fmt.Errorf("give either a movie ID or --title, not both")
		case showTitle != "":
			m, err = c.GetMovieByTitle(showTitle)
		case len(args) == 1:
			id, parseErr := parseID(args[0], "movie")
			if parseErr != nil {
				return parseErr
			}
			m, err = c.GetMovie(id)
		default:
			return fmt.Errorf("a movie ID or --title is required")
		}
		if err != nil {
			return fmt.Errorf("failed to get movie: %w", err)
		}
		printMovie(cmd.OutOrStdout(), *m)
		return nil
	},
}

var rateCmd = &cobra.Command{
	Use:   "rate [id] [rating] [review...]",
	Short: "Rate (0-10) and review a movie",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "movie")
		if err != nil {
			return err
		}
		rating, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid rating %q: must be a number from 0 to 10", args[1])
		}
		review := strings.Join(args[2:], " ")

		m, err := client.NewHTTPClient(apiURL).RateMovie(id, rating, review)
		if err != nil {
			return fmt.Errorf("failed to rate movie: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Rated %s: %.1f\n", m.Title, rating)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Remove a movie from your list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "movie")
		if err != nil {
			return err
		}

		if err := client.NewHTTPClient(apiURL).DeleteMovie(id); err != nil {
			return fmt.Errorf("failed to delete movie: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Movie %d deleted\n", id)
		return nil
	},
}

func init() {
	showCmd.Flags().StringVar(&showTitle, "title", "", "exact title as stored in your list")
	rootCmd.AddCommand(listCmd, showCmd, rateCmd, deleteCmd)
}

func parseID(raw, what string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID: %q", what, raw)
	}
	return id, nil
}

func printMovieLine(w io.Writer, m dto.MovieResponse) {
	rank := "-"
	if m.Ranking != nil {
		rank = strconv.Itoa(*m.Ranking)
	}
	rating := color.HiBlackString("unrated")
	if m.Rating != nil {
		rating = color.YellowString("%.1f", *m.Rating)
	}
	fmt.Fprintf(w, "#%-3s %s (%d)  %s  [id %d]\n", rank, color.CyanString(m.Title), m.Year, rating, m.ID)
}

func printMovie(w io.Writer, m dto.MovieResponse) {
	fmt.Fprintf(w, "ID: %d\n", m.ID)
	fmt.Fprintf(w, "Title: %s\n", color.CyanString(m.Title))
	if m.Year > 0 {
		fmt.Fprintf(w, "Year: %d\n", m.Year)
	}
	if m.Rating != nil {
		fmt.Fprintf(w, "Rating: %.1f\n", *m.Rating)
	} else {
		fmt.Fprintln(w, "Rating: not rated yet")
	}
	if m.Review != nil {
		fmt.Fprintf(w, "Review: %s\n", *m.Review)
	}
	fmt.Fprintf(w, "Description: %s\n", m.Description)
	fmt.Fprintf(w, "Poster: %s\n", m.ImgURL)
	printDivider(w)
}
