package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reelscout/reelscout/config"
	"github.com/reelscout/reelscout/search"
)

var searchCmd = &cobra.Command{
	Use:          "search <query>",
	Short:        "Look up Reelgood titles by name",
	Example:      `  reelscout search inception`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&flagJSON, "json", false, "output only JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if len(query) < 2 {
		return errors.New("search query must be at least 2 characters")
	}

	cfg := config.Load()
	initLogger(cfg.Log, flagDebug)

	client := search.NewClient(cfg.Search)
	results, err := client.Search(cmd.Context(), query)
	if err != nil {
		return err
	}

	if flagJSON {
		printJSON(results)
		return nil
	}

	if len(results) == 0 {
		fmt.Printf("No titles found for %q\n", query)
		return nil
	}
	for _, r := range results {
		if r.Year > 0 {
			fmt.Printf("%s (%d) [%s]\n    %s\n", r.Title, r.Year, r.Type, r.URL)
		} else {
			fmt.Printf("%s [%s]\n    %s\n", r.Title, r.Type, r.URL)
		}
	}
	return nil
}
