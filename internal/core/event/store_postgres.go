// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package event

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/chronomap/internal/platform/database/schema"
	"github.com/taibuivan/chronomap/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed event store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
ListRows reads the whole events table.

Description: Dates are selected as text so that PostgreSQL renders
BC dates with its native "YYYY-MM-DD BC" suffix, which is the token
shape understood by the chrono package.
*/
func (repository *PostgresRepository) ListRows(context context.Context) ([]Row, error) {
	query := fmt.Sprintf(`
		SELECT %s::text, %s, %s::text, %s::text, %s, %s, %s, %s
		FROM %s
		ORDER BY %s ASC NULLS LAST;
	`,
		schema.PublicEvents.ID,
		schema.PublicEvents.Title,
		schema.PublicEvents.StartDate,
		schema.PublicEvents.EndDate,
		schema.PublicEvents.Lat,
		schema.PublicEvents.Lng,
		schema.PublicEvents.Summary,
		schema.PublicEvents.YouTubeURL,
		schema.PublicEvents.Table,
		schema.PublicEvents.StartDate,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_events")
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(
			&row.ID,
			&row.Title,
			&row.StartDate,
			&row.EndDate,
			&row.Lat,
			&row.Lng,
			&row.Summary,
			&row.YouTubeURL,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_event")
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_events")
	}

	return result, nil
}
