package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmcdole/cinesearch/internal/domain"
)

var showOpen bool

// showCmd prints the detail record for one title
var showCmd = &cobra.Command{
	Use:   "show <imdb-id>",
	Short: "Show details for a movie",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().BoolVarP(&showOpen, "open", "o", false, "also open the IMDb page in the browser")
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	outcome := a.search.Detail(context.Background(), args[0])
	switch outcome.Kind {
	case domain.OutcomeFailed:
		return fmt.Errorf("%s: %w", outcome.Message, outcome.Err)
	case domain.OutcomeEmpty:
		return fmt.Errorf("%s (%s)", outcome.Message, args[0])
	}

	detail := *outcome.Detail
	printDetail(cmd.OutOrStdout(), detail, a.favorites.Contains(detail.ID))

	if showOpen {
		return a.links.OpenIMDb(detail)
	}
	return nil
}
