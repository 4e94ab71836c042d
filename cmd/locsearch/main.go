// Command locsearch - терминальный клиент поиска места.
// Работает против запущенного API: справочники из /api/geo/*, геокодер из /api/nominatim/search.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/doleances-service/internal/config"
	"github.com/doleances-service/internal/infrastructure/geoapi"
	"github.com/doleances-service/internal/pkg/logger"
)

var (
	apiURL  string
	token   string
	timeout time.Duration
	verbose bool

	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "locsearch",
	Short:         "Search Madagascar places the way the report form does",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if apiURL == "" {
			apiURL = cfg.Search.APIURL
		}

		level := "warn"
		if verbose {
			level = "debug"
		}
		log, err = logger.New(level, "locsearch")
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "API base URL (default: LOCSEARCH_API_URL)")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("LOCSEARCH_TOKEN"), "auth cookie value")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 20*time.Second, "overall timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(areasCmd)
}

func newClient() *geoapi.Client {
	return geoapi.NewClient(geoapi.Config{
		BaseURL:    apiURL,
		AuthToken:  token,
		CookieName: cfg.Auth.CookieName,
		Timeout:    timeout,
	}, log)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
