package trust

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusuite/schoolms/pkg/pg"
)

// PGDirectory reads trust records from the system dataset's trusts
// table. It is the production Directory implementation; the table is
// written only by the onboarding workflow.
type PGDirectory struct {
	db *pgxpool.Pool
}

// NewPGDirectory creates a directory backed by the system pool.
func NewPGDirectory(db *pgxpool.Pool) *PGDirectory {
	return &PGDirectory{db: db}
}

// Lookup fetches a record by normalized key. Missing rows map to
// ErrTrustNotFound; status filtering is the Validator's job so an
// inactive record is still returned here.
func (d *PGDirectory) Lookup(ctx context.Context, key string) (*Trust, error) {
	const query = `
		SELECT id, key, name, status, database_name, created_at
		FROM trusts
		WHERE key = $1`

	var t Trust
	err := d.db.QueryRow(ctx, query, key).Scan(
		&t.ID, &t.Key, &t.Name, &t.Status, &t.DatabaseName, &t.CreatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrTrustNotFound
		}
		return nil, errors.Join(ErrResolution, err)
	}
	return &t, nil
}
