package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/aegean-group/property-cli/internal/db"
	"github.com/aegean-group/property-cli/internal/geo"
	"github.com/aegean-group/property-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS snapshots (
	id            TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	kind          TEXT NOT NULL,
	scraped_date  TIMESTAMPTZ NOT NULL,
	listing_count INTEGER NOT NULL,
	document      JSONB NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS enriched_listings (
	snapshot_id   TEXT NOT NULL REFERENCES snapshots(id),
	listing_id    TEXT NOT NULL,
	region        TEXT NOT NULL,
	price         DOUBLE PRECISION,
	area_sqm      DOUBLE PRECISION,
	airport_min   DOUBLE PRECISION,
	beach_km      DOUBLE PRECISION,
	gross_yield   DOUBLE PRECISION,
	document      JSONB NOT NULL,
	PRIMARY KEY (snapshot_id, listing_id)
);

CREATE TABLE IF NOT EXISTS reference_points (
	kind       TEXT NOT NULL,
	name       TEXT NOT NULL,
	code       TEXT,
	lat        DOUBLE PRECISION NOT NULL,
	lng        DOUBLE PRECISION NOT NULL,
	year_round BOOLEAN NOT NULL DEFAULT false,
	population INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (kind, name)
);

CREATE INDEX IF NOT EXISTS idx_snapshots_kind_created ON snapshots(kind, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_enriched_listings_region ON enriched_listings(region);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) SaveCatalog(ctx context.Context, c *model.Catalog) (*Snapshot, error) {
	return s.saveSnapshot(ctx, SnapshotRaw, c.ScrapedDate, len(c.Listings), c)
}

// SaveEnriched stores the document snapshot, then flattens the listings
// into per-row form for ad hoc SQL. The flat rows are a projection of the
// document, not a second source of truth.
func (s *PostgresStore) SaveEnriched(ctx context.Context, e *model.EnrichedCatalog) (*Snapshot, error) {
	snap, err := s.saveSnapshot(ctx, SnapshotEnriched, e.ScrapedDate, len(e.Listings), e)
	if err != nil {
		return nil, err
	}

	rows := make([][]any, 0, len(e.Listings))
	for i := range e.Listings {
		l := &e.Listings[i]
		doc, err := json.Marshal(l)
		if err != nil {
			return nil, eris.Wrapf(err, "postgres: marshal listing %s", l.ID)
		}
		var airportMin, beachKm *float64
		if l.Airport != nil {
			airportMin = &l.Airport.DriveMinutes
		}
		if l.Beach != nil {
			beachKm = &l.Beach.DistanceKm
		}
		rows = append(rows, []any{
			snap.ID, l.ID, string(l.Region),
			l.Price, l.AreaSqm, airportMin, beachKm, l.GrossYieldPct, doc,
		})
	}

	if _, err := db.CopyFrom(ctx, s.pool, "enriched_listings",
		[]string{"snapshot_id", "listing_id", "region", "price", "area_sqm", "airport_min", "beach_km", "gross_yield", "document"},
		rows,
	); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *PostgresStore) saveSnapshot(ctx context.Context, kind SnapshotKind, scraped time.Time, count int, doc any) (*Snapshot, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: marshal %s snapshot", kind)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO snapshots (id, kind, scraped_date, listing_count, document, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		id, string(kind), scraped, count, docJSON, now,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: insert %s snapshot", kind)
	}

	return &Snapshot{
		ID:           id,
		Kind:         kind,
		ScrapedDate:  scraped,
		ListingCount: count,
		CreatedAt:    now,
	}, nil
}

func (s *PostgresStore) LatestCatalog(ctx context.Context) (*model.Catalog, error) {
	doc, err := s.latestDocument(ctx, SnapshotRaw)
	if err != nil || doc == nil {
		return nil, err
	}
	var c model.Catalog
	if err := json.Unmarshal(doc, &c); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal catalog")
	}
	return &c, nil
}

func (s *PostgresStore) LatestEnriched(ctx context.Context) (*model.EnrichedCatalog, error) {
	doc, err := s.latestDocument(ctx, SnapshotEnriched)
	if err != nil || doc == nil {
		return nil, err
	}
	var e model.EnrichedCatalog
	if err := json.Unmarshal(doc, &e); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal enriched catalog")
	}
	return &e, nil
}

func (s *PostgresStore) latestDocument(ctx context.Context, kind SnapshotKind) ([]byte, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx,
		`SELECT document FROM snapshots WHERE kind = $1 ORDER BY created_at DESC LIMIT 1`,
		string(kind),
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: latest %s snapshot", kind)
	}
	return doc, nil
}

func (s *PostgresStore) ListSnapshots(ctx context.Context, filter SnapshotFilter) ([]Snapshot, error) {
	query := `SELECT id, kind, scraped_date, listing_count, created_at FROM snapshots WHERE true`
	args := []any{}
	argIdx := 1

	if filter.Kind != "" {
		query += fmt.Sprintf(` AND kind = $%d`, argIdx)
		args = append(args, string(filter.Kind))
		argIdx++
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list snapshots")
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var sn Snapshot
		var kind string
		if err := rows.Scan(&sn.ID, &kind, &sn.ScrapedDate, &sn.ListingCount, &sn.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan snapshot")
		}
		sn.Kind = SnapshotKind(kind)
		snaps = append(snaps, sn)
	}
	return snaps, eris.Wrap(rows.Err(), "postgres: list snapshots iterate")
}

func (s *PostgresStore) SaveReferencePoints(ctx context.Context, pts []geo.Point) (int, error) {
	rows := make([][]any, 0, len(pts))
	for _, p := range pts {
		rows = append(rows, []any{
			string(p.Kind), p.Name, p.Code, p.Lat, p.Lng, p.YearRound, p.Population,
		})
	}

	n, err := db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table:        "reference_points",
		Columns:      []string{"kind", "name", "code", "lat", "lng", "year_round", "population"},
		ConflictKeys: []string{"kind", "name"},
	}, rows)
	return int(n), err
}

func (s *PostgresStore) LoadReferencePoints(ctx context.Context, kind geo.PointKind) ([]geo.Point, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT kind, name, code, lat, lng, year_round, population
		 FROM reference_points WHERE kind = $1 ORDER BY name`,
		string(kind),
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: load %s reference points", kind)
	}
	defer rows.Close()

	var pts []geo.Point
	for rows.Next() {
		var p geo.Point
		var k string
		var code *string
		if err := rows.Scan(&k, &p.Name, &code, &p.Lat, &p.Lng, &p.YearRound, &p.Population); err != nil {
			return nil, eris.Wrap(err, "postgres: scan reference point")
		}
		p.Kind = geo.PointKind(k)
		if code != nil {
			p.Code = *code
		}
		pts = append(pts, p)
	}
	return pts, eris.Wrap(rows.Err(), "postgres: load reference points iterate")
}
