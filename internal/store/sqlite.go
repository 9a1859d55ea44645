package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/aegean-group/property-cli/internal/geo"
	"github.com/aegean-group/property-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS snapshots (
	id            TEXT PRIMARY KEY,
	kind          TEXT NOT NULL,
	scraped_date  DATETIME NOT NULL,
	listing_count INTEGER NOT NULL,
	document      TEXT NOT NULL,
	created_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS reference_points (
	kind       TEXT NOT NULL,
	name       TEXT NOT NULL,
	code       TEXT,
	lat        REAL NOT NULL,
	lng        REAL NOT NULL,
	year_round INTEGER NOT NULL DEFAULT 0,
	population INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (kind, name)
);

CREATE INDEX IF NOT EXISTS idx_snapshots_kind_created ON snapshots(kind, created_at DESC);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveCatalog(ctx context.Context, c *model.Catalog) (*Snapshot, error) {
	return s.saveSnapshot(ctx, SnapshotRaw, c.ScrapedDate, len(c.Listings), c)
}

func (s *SQLiteStore) SaveEnriched(ctx context.Context, e *model.EnrichedCatalog) (*Snapshot, error) {
	return s.saveSnapshot(ctx, SnapshotEnriched, e.ScrapedDate, len(e.Listings), e)
}

func (s *SQLiteStore) saveSnapshot(ctx context.Context, kind SnapshotKind, scraped time.Time, count int, doc any) (*Snapshot, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: marshal %s snapshot", kind)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, kind, scraped_date, listing_count, document, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, string(kind), scraped, count, string(docJSON), now,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: insert %s snapshot", kind)
	}

	return &Snapshot{
		ID:           id,
		Kind:         kind,
		ScrapedDate:  scraped,
		ListingCount: count,
		CreatedAt:    now,
	}, nil
}

func (s *SQLiteStore) LatestCatalog(ctx context.Context) (*model.Catalog, error) {
	doc, err := s.latestDocument(ctx, SnapshotRaw)
	if err != nil || doc == nil {
		return nil, err
	}
	var c model.Catalog
	if err := json.Unmarshal(doc, &c); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal catalog")
	}
	return &c, nil
}

func (s *SQLiteStore) LatestEnriched(ctx context.Context) (*model.EnrichedCatalog, error) {
	doc, err := s.latestDocument(ctx, SnapshotEnriched)
	if err != nil || doc == nil {
		return nil, err
	}
	var e model.EnrichedCatalog
	if err := json.Unmarshal(doc, &e); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal enriched catalog")
	}
	return &e, nil
}

func (s *SQLiteStore) latestDocument(ctx context.Context, kind SnapshotKind) ([]byte, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM snapshots WHERE kind = ? ORDER BY created_at DESC LIMIT 1`,
		string(kind),
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: latest %s snapshot", kind)
	}
	return []byte(doc), nil
}

func (s *SQLiteStore) ListSnapshots(ctx context.Context, filter SnapshotFilter) ([]Snapshot, error) {
	query := `SELECT id, kind, scraped_date, listing_count, created_at FROM snapshots WHERE 1=1`
	var args []any

	if filter.Kind != "" {
		query += ` AND kind = ?`
		args = append(args, string(filter.Kind))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list snapshots")
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var sn Snapshot
		var kind string
		if err := rows.Scan(&sn.ID, &kind, &sn.ScrapedDate, &sn.ListingCount, &sn.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan snapshot")
		}
		sn.Kind = SnapshotKind(kind)
		snaps = append(snaps, sn)
	}
	return snaps, eris.Wrap(rows.Err(), "sqlite: list snapshots iterate")
}

func (s *SQLiteStore) SaveReferencePoints(ctx context.Context, pts []geo.Point) (int, error) {
	if len(pts) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO reference_points (kind, name, code, lat, lng, year_round, population)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (kind, name) DO UPDATE SET
		   code = excluded.code, lat = excluded.lat, lng = excluded.lng,
		   year_round = excluded.year_round, population = excluded.population`,
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare upsert reference point")
	}
	defer stmt.Close()

	for _, p := range pts {
		if _, err := stmt.ExecContext(ctx,
			string(p.Kind), p.Name, p.Code, p.Lat, p.Lng, p.YearRound, p.Population,
		); err != nil {
			return 0, eris.Wrapf(err, "sqlite: upsert reference point %s", p.Name)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit reference points")
	}
	return len(pts), nil
}

func (s *SQLiteStore) LoadReferencePoints(ctx context.Context, kind geo.PointKind) ([]geo.Point, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, name, code, lat, lng, year_round, population
		 FROM reference_points WHERE kind = ? ORDER BY name`,
		string(kind),
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: load %s reference points", kind)
	}
	defer rows.Close()

	var pts []geo.Point
	for rows.Next() {
		var p geo.Point
		var k string
		var code sql.NullString
		if err := rows.Scan(&k, &p.Name, &code, &p.Lat, &p.Lng, &p.YearRound, &p.Population); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan reference point")
		}
		p.Kind = geo.PointKind(k)
		p.Code = code.String
		pts = append(pts, p)
	}
	return pts, eris.Wrap(rows.Err(), "sqlite: load reference points iterate")
}
