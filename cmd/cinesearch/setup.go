package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/mmcdole/cinesearch/internal/config"
	"github.com/mmcdole/cinesearch/internal/tui/styles"
)

// ensureAPIKey prompts for an OMDb API key on first run and saves it.
// Without a terminal it fails with a hint instead.
func ensureAPIKey(cfg *config.Config) error {
	if cfg.IsConfigured() {
		return nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("no OMDb API key configured; set omdb.api_key in the config file or CINESEARCH_OMDB_API_KEY")
	}

	fmt.Println()
	fmt.Println("Welcome to cinesearch!")
	fmt.Println()
	fmt.Println("An OMDb API key is required. Get a free one at https://www.omdbapi.com/apikey.aspx")
	fmt.Println()

	var key string
	for {
		fmt.Print("OMDb API key: ")
		keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			// Some terminals refuse raw mode; fall back to a visible read
			key, err = bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read API key: %w", err)
			}
		} else {
			key = string(keyBytes)
		}

		key = strings.TrimSpace(key)
		if key != "" {
			break
		}
		fmt.Println("API key cannot be empty. Please try again.")
	}

	cfg.OMDb.APIKey = key
	if err := config.SaveConfig(cfg, cfgFile); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println(styles.SuccessStyle.Render("✓ Saved to " + cfg.File()))
	fmt.Println()
	logger.Info("api key configured", "config", cfg.File())
	return nil
}
