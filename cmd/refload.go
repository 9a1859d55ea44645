package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aegean-group/property-cli/internal/geo"
)

var (
	refloadYAMLPath string
	refloadShpPath  string
	refloadShpKind  string
)

var refloadCmd = &cobra.Command{
	Use:   "refload",
	Short: "Load reference points into the store",
	Long: `Loads airport/beach/city reference points from a YAML file, or one
kind from a shapefile, and upserts them into the reference_points table.
With no flags, loads the built-in Greek reference tables.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		var pts []geo.Point
		switch {
		case refloadYAMLPath != "":
			airports, beaches, cities, err := geo.LoadYAML(refloadYAMLPath)
			if err != nil {
				return err
			}
			pts = append(pts, airports.Points()...)
			pts = append(pts, beaches.Points()...)
			pts = append(pts, cities.Points()...)
		case refloadShpPath != "":
			kind := geo.PointKind(refloadShpKind)
			switch kind {
			case geo.KindAirport, geo.KindBeach, geo.KindCity:
			default:
				return eris.Errorf("refload: --kind must be airport, beach, or city (got %q)", refloadShpKind)
			}
			set, err := geo.LoadShapefile(refloadShpPath, kind)
			if err != nil {
				return err
			}
			pts = set.Points()
		default:
			pts = append(pts, geo.DefaultAirports().Points()...)
			pts = append(pts, geo.DefaultBeaches().Points()...)
			pts = append(pts, geo.DefaultCities().Points()...)
		}

		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		n, err := s.SaveReferencePoints(ctx, pts)
		if err != nil {
			return err
		}

		zap.L().Info("refload complete", zap.Int("points", n))
		return nil
	},
}

func init() {
	refloadCmd.Flags().StringVar(&refloadYAMLPath, "yaml", "", "path to reference YAML file")
	refloadCmd.Flags().StringVar(&refloadShpPath, "shapefile", "", "path to a shapefile of one point kind")
	refloadCmd.Flags().StringVar(&refloadShpKind, "kind", "beach", "point kind for --shapefile (airport, beach, city)")
	refloadCmd.MarkFlagsMutuallyExclusive("yaml", "shapefile")
	rootCmd.AddCommand(refloadCmd)
}
