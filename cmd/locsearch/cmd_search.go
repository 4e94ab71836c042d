package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doleances-service/internal/locationsearch"
)

var selectIndex int

var searchCmd = &cobra.Command{
	Use:   "search <text...>",
	Short: "Run one location search and print the ranked results",
	Long: `Loads the administrative catalog, types the query into a search session
and waits for the debounced geocoder lookup. With --select N the N-th result
(1-based) is committed and the selected location is printed as JSON.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&selectIndex, "select", 0, "commit the N-th result (1-based)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	client := newClient()
	searcher := locationsearch.NewSearcher(
		locationsearch.NewCatalog(client, log),
		client,
		locationsearch.Options{
			CountryCodes: cfg.Nominatim.CountryCodes,
			GeocodeLimit: cfg.Search.GeocodeLimit,
			MaxResults:   cfg.Search.MaxResults,
			Debounce:     cfg.Search.Debounce,
		},
		log,
	)
	if err := searcher.Catalog().Preload(ctx); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	updates := make(chan []locationsearch.SearchResult, 4)
	changes := make(chan locationsearch.Change, 1)
	session := locationsearch.NewSession(searcher, locationsearch.SessionConfig{
		OnResults: func(results []locationsearch.SearchResult) {
			select {
			case updates <- results:
			default:
			}
		},
		OnChange: func(change locationsearch.Change) {
			select {
			case changes <- change:
			default:
			}
		},
	}, log)
	defer session.Close()

	session.SetQuery(query)

	// первая выдача - локальные совпадения; вторая приходит после поиска в геокодере
	results, err := waitResults(ctx, updates)
	if err != nil {
		return err
	}
	if !locationsearch.TooShort(query) {
		if merged, err := waitResults(ctx, updates); err == nil {
			results = merged
		} else {
			log.Warn("Geocoder lookup did not finish, showing local matches")
		}
	}

	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "No results")
		return nil
	}

	if selectIndex == 0 {
		for i, r := range results {
			if r.Subtitle != "" {
				fmt.Fprintf(out, "%2d. [%s] %s - %s\n", i+1, r.Kind, r.Label, r.Subtitle)
			} else {
				fmt.Fprintf(out, "%2d. [%s] %s\n", i+1, r.Kind, r.Label)
			}
		}
		return nil
	}

	if selectIndex < 1 || selectIndex > len(results) {
		return fmt.Errorf("--select must be between 1 and %d", len(results))
	}
	session.SelectResult(results[selectIndex-1])

	change := <-changes
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(change)
}

func waitResults(ctx context.Context, updates <-chan []locationsearch.SearchResult) ([]locationsearch.SearchResult, error) {
	select {
	case results := <-updates:
		return results, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func joinParents(names []string) string {
	return strings.Join(names, ", ")
}
