package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/aegean-group/property-cli/internal/model"
	"github.com/aegean-group/property-cli/internal/scorer"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Rank enriched listings by weighted multi-criteria score",
	Long: `Scores every listing in the latest enriched snapshot against the
catalog-wide metric ranges, then ranks them by the weighted total.

Weights are read from config and can be overridden per run. Filters
narrow the output without changing any score: the normalization ranges
and the top pick always come from the full catalog.

Examples:
  # Rank everything with stock weights
  score

  # Prioritize cheap listings near an airport
  score --weight-price 40 --weight-airport 30

  # Ionian listings under 150k, exported to a spreadsheet
  score --region ionian_islands --max-price 150000 --format xlsx --output scores.xlsx`,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	for _, name := range scorer.ComponentNames {
		f.Float64("weight-"+name, 0, fmt.Sprintf("%s weight (overrides config)", name))
	}
	f.String("region", "", "filter: region key (e.g., ionian_islands)")
	f.Float64("max-price", 0, "filter: maximum price in EUR")
	f.Float64("max-airport-minutes", 0, "filter: maximum drive to nearest airport")
	f.Int("limit", 0, "maximum number of results (0=all)")
	f.String("output", "", "output file path (default: stdout)")
	f.String("format", "table", "output format: table, csv, or xlsx")
	f.String("file", "", "score an enriched catalog JSON file instead of the latest snapshot")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	filePath, _ := cmd.Flags().GetString("file")
	limit, _ := cmd.Flags().GetInt("limit")

	if format != "table" && format != "csv" && format != "xlsx" {
		return eris.Errorf("score: --format must be table, csv, or xlsx (got %q)", format)
	}
	if format == "xlsx" && outputPath == "" {
		return eris.New("score: --format xlsx requires --output")
	}

	enriched, err := loadEnriched(cmd, filePath)
	if err != nil {
		return err
	}
	if len(enriched.Listings) == 0 {
		fmt.Println("Catalog is empty, nothing to score.")
		return nil
	}

	weights := weightsFromConfig(cfg.Score)
	for _, name := range scorer.ComponentNames {
		flag := "weight-" + name
		if !cmd.Flags().Changed(flag) {
			continue
		}
		v, _ := cmd.Flags().GetFloat64(flag)
		switch name {
		case scorer.ComponentPrice:
			weights.Price = v
		case scorer.ComponentAirport:
			weights.Airport = v
		case scorer.ComponentBeach:
			weights.Beach = v
		case scorer.ComponentSize:
			weights.Size = v
		case scorer.ComponentYield:
			weights.Yield = v
		case scorer.ComponentRenovation:
			weights.Renovation = v
		}
	}

	sc, err := scorer.New(enriched.Listings, weights)
	if err != nil {
		return err
	}

	scored := sc.ScoreAll(enriched.Listings)
	top := scorer.TopPick(scored)

	crit := model.FilterCriteria{}
	if region, _ := cmd.Flags().GetString("region"); region != "" {
		crit.Region = model.Region(region)
	}
	if cmd.Flags().Changed("max-price") {
		v, _ := cmd.Flags().GetFloat64("max-price")
		crit.MaxPrice = &v
	}
	if cmd.Flags().Changed("max-airport-minutes") {
		v, _ := cmd.Flags().GetFloat64("max-airport-minutes")
		crit.MaxAirportMinutes = &v
	}

	results := scorer.Filter(scored, crit)
	scorer.Rank(results)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	zap.L().Info("scoring complete",
		zap.Int("catalog", len(scored)),
		zap.Int("matched", len(results)),
	)

	if err := outputScoreResults(results, format, outputPath); err != nil {
		return err
	}

	if format == "table" && top != nil {
		printTopPick(top)
	}
	return nil
}

func loadEnriched(cmd *cobra.Command, filePath string) (*model.EnrichedCatalog, error) {
	if filePath != "" {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, eris.Wrapf(err, "score: open %s", filePath)
		}
		defer f.Close()
		var e model.EnrichedCatalog
		if err := json.NewDecoder(f).Decode(&e); err != nil {
			return nil, eris.Wrapf(err, "score: decode %s", filePath)
		}
		return &e, nil
	}

	s, err := openStore(cmd.Context())
	if err != nil {
		return nil, err
	}
	defer s.Close()

	e, err := s.LatestEnriched(cmd.Context())
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, eris.New("score: no enriched snapshot found, run 'enrich' first")
	}
	return e, nil
}

func outputScoreResults(results []model.ScoredListing, format, outputPath string) error {
	if format == "xlsx" {
		return writeScoreXLSX(outputPath, results)
	}

	var w io.Writer = os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "score: create output file %s", outputPath)
		}
		defer f.Close() //nolint:errcheck
		w = f
	}

	switch format {
	case "csv":
		return writeScoreCSV(w, results)
	default:
		return writeScoreTable(w, results)
	}
}

func writeScoreCSV(w io.Writer, results []model.ScoredListing) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"id", "title", "region", "price_eur", "area_sqm", "airport_min", "beach_km", "yield_pct", "score"}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "score: write CSV header")
	}

	for _, r := range results {
		row := []string{
			r.ID,
			r.Title,
			string(r.Region),
			formatOptional(r.Price, "%.0f"),
			formatOptional(r.AreaSqm, "%.0f"),
			formatAirportMin(&r.EnrichedListing),
			formatBeachKm(&r.EnrichedListing),
			formatOptional(r.GrossYieldPct, "%.1f"),
			fmt.Sprintf("%.1f", r.Score),
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "score: write CSV row")
		}
	}
	return nil
}

func writeScoreTable(w io.Writer, results []model.ScoredListing) error {
	p := message.NewPrinter(language.English)

	header := fmt.Sprintf("%-40s %-16s %12s %8s %11s %9s %7s %6s\n",
		"Title", "Region", "Price EUR", "Sqm", "Airport min", "Beach km", "Yield", "Score")
	if _, err := fmt.Fprint(w, header); err != nil {
		return eris.Wrap(err, "score: write table header")
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 115)); err != nil {
		return eris.Wrap(err, "score: write table separator")
	}

	for _, r := range results {
		title := r.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		price := "-"
		if r.Price != nil {
			price = p.Sprintf("%.0f", *r.Price)
		}
		line := fmt.Sprintf("%-40s %-16s %12s %8s %11s %9s %7s %6.1f\n",
			title, r.Region, price,
			formatOptional(r.AreaSqm, "%.0f"),
			formatAirportMin(&r.EnrichedListing),
			formatBeachKm(&r.EnrichedListing),
			formatOptional(r.GrossYieldPct, "%.1f"),
			r.Score)
		if _, err := fmt.Fprint(w, line); err != nil {
			return eris.Wrap(err, "score: write table row")
		}
	}
	return nil
}

func writeScoreXLSX(path string, results []model.ScoredListing) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Scores")
	if err != nil {
		return eris.Wrap(err, "score: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{"ID", "Title", "Region", "Price EUR", "Area sqm", "Airport min", "Beach km", "Yield %", "Score"} {
		header.AddCell().Value = h
	}

	for _, r := range results {
		row := sheet.AddRow()
		row.AddCell().Value = r.ID
		row.AddCell().Value = r.Title
		row.AddCell().Value = string(r.Region)
		addOptionalCell(row, r.Price, "0")
		addOptionalCell(row, r.AreaSqm, "0")
		if r.Airport != nil {
			row.AddCell().SetFloatWithFormat(r.Airport.DriveMinutes, "0.0")
		} else {
			row.AddCell()
		}
		if r.Beach != nil {
			row.AddCell().SetFloatWithFormat(r.Beach.DistanceKm, "0.0")
		} else {
			row.AddCell()
		}
		addOptionalCell(row, r.GrossYieldPct, "0.0")
		row.AddCell().SetFloatWithFormat(r.Score, "0.0")
	}

	return eris.Wrapf(f.Save(path), "score: save %s", path)
}

func addOptionalCell(row *xlsx.Row, v *float64, numFmt string) {
	cell := row.AddCell()
	if v != nil {
		cell.SetFloatWithFormat(*v, numFmt)
	}
}

func printTopPick(top *model.ScoredListing) {
	fmt.Printf("\n--- Top pick (full catalog) ---\n")
	fmt.Printf("%s (%s), score %.1f\n", top.Title, top.Region, top.Score)
	if top.Price != nil {
		fmt.Printf("Price:   EUR %.0f\n", *top.Price)
	}
	if top.Airport != nil {
		fmt.Printf("Airport: %s, %.0f min drive\n", top.Airport.Name, top.Airport.DriveMinutes)
	}
	if top.Beach != nil {
		fmt.Printf("Beach:   %s, %.1f km\n", top.Beach.Name, top.Beach.DistanceKm)
	}
	if top.GrossYieldPct != nil {
		fmt.Printf("Yield:   %.1f%% gross\n", *top.GrossYieldPct)
	}
}

func formatOptional(v *float64, f string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(f, *v)
}

func formatAirportMin(e *model.EnrichedListing) string {
	if e.Airport == nil {
		return "-"
	}
	return fmt.Sprintf("%.0f", e.Airport.DriveMinutes)
}

func formatBeachKm(e *model.EnrichedListing) string {
	if e.Beach == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", e.Beach.DistanceKm)
}
