package store

import (
	"context"
	"time"

	"github.com/aegean-group/property-cli/internal/geo"
	"github.com/aegean-group/property-cli/internal/model"
)

// SnapshotKind distinguishes raw imports from enriched passes.
type SnapshotKind string

const (
	SnapshotRaw      SnapshotKind = "raw"
	SnapshotEnriched SnapshotKind = "enriched"
)

// Snapshot is the stored metadata of one catalog version.
type Snapshot struct {
	ID           string       `json:"id"`
	Kind         SnapshotKind `json:"kind"`
	ScrapedDate  time.Time    `json:"scraped_date"`
	ListingCount int          `json:"listing_count"`
	CreatedAt    time.Time    `json:"created_at"`
}

// SnapshotFilter specifies criteria for listing snapshots.
type SnapshotFilter struct {
	Kind   SnapshotKind `json:"kind,omitempty"`
	Limit  int          `json:"limit,omitempty"`
	Offset int          `json:"offset,omitempty"`
}

// Store defines the persistence interface for catalog snapshots and
// reference points. Catalogs are stored whole, as JSON documents; every
// import or enrichment pass creates a new snapshot rather than mutating
// the previous one.
type Store interface {
	// Catalog snapshots
	SaveCatalog(ctx context.Context, c *model.Catalog) (*Snapshot, error)
	LatestCatalog(ctx context.Context) (*model.Catalog, error)
	SaveEnriched(ctx context.Context, e *model.EnrichedCatalog) (*Snapshot, error)
	LatestEnriched(ctx context.Context) (*model.EnrichedCatalog, error)
	ListSnapshots(ctx context.Context, filter SnapshotFilter) ([]Snapshot, error)

	// Reference points
	SaveReferencePoints(ctx context.Context, pts []geo.Point) (int, error)
	LoadReferencePoints(ctx context.Context, kind geo.PointKind) ([]geo.Point, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
