package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aegean-group/property-cli/internal/model"
)

var enrichFilePath string

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Run the enrichment pass over the latest catalog",
	Long:  "Attaches nearest airport/beach/city proximity, region, and investment estimates to every listing in the latest raw snapshot, and stores the result as a new enriched snapshot.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		var catalog *model.Catalog
		if enrichFilePath != "" {
			f, err := os.Open(enrichFilePath)
			if err != nil {
				return eris.Wrapf(err, "enrich: open %s", enrichFilePath)
			}
			defer f.Close()
			catalog, err = model.DecodeCatalog(f)
			if err != nil {
				return err
			}
		} else {
			catalog, err = s.LatestCatalog(ctx)
			if err != nil {
				return err
			}
			if catalog == nil {
				return eris.New("enrich: no raw snapshot found, run 'import' first")
			}
		}

		enricher, err := newEnricher()
		if err != nil {
			return err
		}

		enriched, err := enricher.EnrichCatalog(ctx, catalog)
		if err != nil {
			return err
		}

		snap, err := s.SaveEnriched(ctx, enriched)
		if err != nil {
			return err
		}

		zap.L().Info("enrich complete",
			zap.String("snapshot_id", snap.ID),
			zap.Int("listings", snap.ListingCount),
		)
		return nil
	},
}

func init() {
	enrichCmd.Flags().StringVar(&enrichFilePath, "file", "", "enrich a catalog JSON file instead of the latest snapshot")
	rootCmd.AddCommand(enrichCmd)
}
