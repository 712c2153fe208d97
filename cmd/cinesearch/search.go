package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmcdole/cinesearch/internal/domain"
)

var (
	searchPage  int
	searchPages int
)

// searchCmd prints one or more pages of results
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for movies by title",
	Long: `Search OMDb for titles matching the query and print the results.

By default a single page (up to 10 rows) is printed. Use --page to pick
a page, or --pages to fetch several pages in a row.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVarP(&searchPage, "page", "p", 1, "page of results to print")
	searchCmd.Flags().IntVar(&searchPages, "pages", 1, "number of pages to fetch, starting at page 1")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	if searchPage < 1 {
		return fmt.Errorf("invalid page %d: pages start at 1", searchPage)
	}
	if searchPages < 1 {
		return fmt.Errorf("invalid page count %d", searchPages)
	}
	if searchPages > 1 && cmd.Flags().Changed("page") {
		return fmt.Errorf("--page and --pages cannot be combined")
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	out := cmd.OutOrStdout()

	if searchPages > 1 {
		results, total, err := a.search.SearchPages(ctx, query, searchPages, func(loaded, total int) {
			fmt.Fprintf(os.Stderr, "\rFetched %d of %d results...", loaded, total)
		})
		fmt.Fprint(os.Stderr, "\r\033[K")
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Fprintln(out, "No movies found.")
			return nil
		}
		printResults(out, results, a.favorites.Current())
		fmt.Fprintf(out, "%d of %d results\n", len(results), total)
		return nil
	}

	outcome := a.search.Search(ctx, query, searchPage)
	switch outcome.Kind {
	case domain.OutcomeFailed:
		return fmt.Errorf("%s: %w", outcome.Message, outcome.Err)
	case domain.OutcomeEmpty:
		fmt.Fprintln(out, outcome.Message)
		return nil
	}

	printResults(out, outcome.Page.Results, a.favorites.Current())
	fmt.Fprintf(out, "Page %d · %d results in total\n", searchPage, outcome.Page.TotalResults)
	return nil
}
