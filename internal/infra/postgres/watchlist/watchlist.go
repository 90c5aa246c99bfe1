package infra_postgres_watchlist

import (
	"context"

	"github.com/humanbelnik/watchnext/internal/model"
	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS watchlist (
	id              TEXT PRIMARY KEY,
	position        INTEGER NOT NULL,
	title           TEXT NOT NULL,
	kind            TEXT NOT NULL,
	url             TEXT NOT NULL DEFAULT '',
	original_title  TEXT NOT NULL DEFAULT '',
	description     TEXT NOT NULL DEFAULT '',
	poster_url      TEXT NOT NULL DEFAULT '',
	release_date    TEXT NOT NULL DEFAULT '',
	start_year      INTEGER,
	runtime_minutes INTEGER,
	genres          TEXT[],
	average_rating  DOUBLE PRECISION,
	num_votes       INTEGER
)`

const insertQuery = `
	INSERT INTO watchlist (
		id, position, title, kind, url, original_title, description,
		poster_url, release_date, start_year, runtime_minutes, genres,
		average_rating, num_votes
	) VALUES (
		:id, :position, :title, :kind, :url, :original_title, :description,
		:poster_url, :release_date, :start_year, :runtime_minutes, :genres,
		:average_rating, :num_votes
	)
`

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

func (d *Driver) EnsureSchema(ctx context.Context) error {
	_, err := d.db.ExecContext(ctx, schema)
	return err
}

// Save replaces the stored watchlist; position 0 is the most recent entry.
func (d *Driver) Save(ctx context.Context, titles []model.Title) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM watchlist`); err != nil {
		return err
	}

	for i, t := range titles {
		if _, err := tx.NamedExecContext(ctx, insertQuery, fromModel(i, t)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *Driver) Load(ctx context.Context) ([]model.Title, error) {
	var rows []titleDTO

	query := `
		SELECT id, position, title, kind, url, original_title, description,
		       poster_url, release_date, start_year, runtime_minutes, genres,
		       average_rating, num_votes
		FROM watchlist
		ORDER BY position
	`

	if err := d.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	titles := make([]model.Title, 0, len(rows))
	for _, r := range rows {
		titles = append(titles, r.toModel())
	}

	return titles, nil
}
