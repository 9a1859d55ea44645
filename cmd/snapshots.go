package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aegean-group/property-cli/internal/store"
)

var (
	snapshotsKind  string
	snapshotsLimit int
)

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List stored catalog snapshots",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		snaps, err := s.ListSnapshots(ctx, store.SnapshotFilter{
			Kind:  store.SnapshotKind(snapshotsKind),
			Limit: snapshotsLimit,
		})
		if err != nil {
			return err
		}
		if len(snaps) == 0 {
			fmt.Println("No snapshots found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tKIND\tLISTINGS\tSCRAPED\tCREATED")
		for _, sn := range snaps {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
				sn.ID, sn.Kind, sn.ListingCount,
				sn.ScrapedDate.Format("2006-01-02"),
				sn.CreatedAt.Format("2006-01-02 15:04"),
			)
		}
		return w.Flush()
	},
}

func init() {
	snapshotsCmd.Flags().StringVar(&snapshotsKind, "kind", "", "filter by kind (raw, enriched)")
	snapshotsCmd.Flags().IntVar(&snapshotsLimit, "limit", 20, "maximum number of snapshots")
	rootCmd.AddCommand(snapshotsCmd)
}
