package main

import (
	"io"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aegean-group/property-cli/internal/fetcher"
	"github.com/aegean-group/property-cli/internal/model"
)

var (
	importFilePath string
	importFeedURL  string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a scraped listing catalog",
	Long:  "Reads a catalog JSON document from a local file or the configured feed URL, validates it, and stores it as a new raw snapshot.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		var r io.ReadCloser
		switch {
		case importFilePath != "":
			f, err := os.Open(importFilePath)
			if err != nil {
				return eris.Wrapf(err, "import: open %s", importFilePath)
			}
			r = f
		default:
			url := importFeedURL
			if url == "" {
				url = cfg.Feed.URL
			}
			if url == "" {
				return eris.New("import: either --file or a feed URL is required (PROPERTY_FEED_URL)")
			}
			f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
				UserAgent:  cfg.Feed.UserAgent,
				Timeout:    time.Duration(cfg.Feed.TimeoutSecs) * time.Second,
				MaxRetries: cfg.Feed.MaxRetries,
				RateLimit:  cfg.Feed.RateLimit,
			})
			body, err := f.Download(ctx, url)
			if err != nil {
				return err
			}
			r = body
		}
		defer r.Close()

		catalog, err := model.DecodeCatalog(r)
		if err != nil {
			return err
		}

		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		snap, err := s.SaveCatalog(ctx, catalog)
		if err != nil {
			return err
		}

		zap.L().Info("import complete",
			zap.String("snapshot_id", snap.ID),
			zap.Int("listings", snap.ListingCount),
			zap.Time("scraped_date", snap.ScrapedDate),
		)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importFilePath, "file", "", "path to catalog JSON file")
	importCmd.Flags().StringVar(&importFeedURL, "url", "", "feed URL (default from config)")
	rootCmd.AddCommand(importCmd)
}
