package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmcdole/cinesearch/internal/service"
	"github.com/mmcdole/cinesearch/internal/tui/styles"
)

var favMatch string

// favCmd groups the favorites subcommands
var favCmd = &cobra.Command{
	Use:   "fav",
	Short: "Manage favorite movies",
}

var favListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite movies",
	Long: `List favorite movies with their details. With --match, only titles
that fuzzy-match the text are shown, best matches first.`,
	Args: cobra.NoArgs,
	RunE: runFavList,
}

var favToggleCmd = &cobra.Command{
	Use:   "toggle <imdb-id>",
	Short: "Add or remove a favorite",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavToggle,
}

func init() {
	rootCmd.AddCommand(favCmd)
	favCmd.AddCommand(favListCmd)
	favCmd.AddCommand(favToggleCmd)

	favListCmd.Flags().StringVarP(&favMatch, "match", "m", "", "only show titles matching this text")
}

func runFavList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	ids := a.favorites.Current().IDs()
	if len(ids) == 0 {
		fmt.Fprintln(out, "No favorites yet.")
		return nil
	}

	details, err := a.search.ResolveFavorites(context.Background(), ids)
	if err != nil {
		return fmt.Errorf("failed to look up favorites: %w", err)
	}

	if favMatch != "" {
		details = service.FilterDetails(details, favMatch)
		if len(details) == 0 {
			fmt.Fprintf(out, "No favorites match %q.\n", favMatch)
			return nil
		}
	}

	printDetails(out, details)
	if missing := len(ids) - len(details); missing > 0 && favMatch == "" {
		fmt.Fprintf(out, "%d favorites could not be looked up\n", missing)
	}
	return nil
}

func runFavToggle(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	id := args[0]
	saved := make(chan error, 1)
	set := a.favorites.ToggleAsync(id, func(err error) { saved <- err })
	if err := <-saved; err != nil {
		return fmt.Errorf("could not save favorites: %w", err)
	}

	if set.Contains(id) {
		fmt.Fprintln(cmd.OutOrStdout(), styles.SuccessStyle.Render(fmt.Sprintf("%s Added %s to favorites (%d total)", styles.FavoriteChar, id, set.Len())))
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from favorites (%d total)\n", id, set.Len())
	}
	return nil
}
