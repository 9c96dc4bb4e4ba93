package shelf

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/libris/libris/internal/platform/database/schema"
	"github.com/libris/libris/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListShelves(ctx context.Context, limit, offset int) ([]*Shelf, int, error) {
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.Shelf.Table)

	var total int
	if err := repository.db.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_shelves")
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		ORDER BY %s ASC
		LIMIT $1 OFFSET $2
	`,
		schema.Shelf.ID, schema.Shelf.Name, schema.Shelf.Location, schema.Shelf.CreatedAt,
		schema.Shelf.Table, schema.Shelf.Name,
	)

	rows, err := repository.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_shelves")
	}
	defer rows.Close()

	var shelves []*Shelf
	for rows.Next() {
		s := &Shelf{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Location, &s.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_shelf")
		}
		shelves = append(shelves, s)
	}

	return shelves, total, nil
}

func (repository *PostgresRepository) GetShelf(ctx context.Context, id string) (*Shelf, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.Shelf.ID, schema.Shelf.Name, schema.Shelf.Location, schema.Shelf.CreatedAt,
		schema.Shelf.Table, schema.Shelf.ID,
	)
	s := &Shelf{}

	err := repository.db.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.Location, &s.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_shelf")
	}

	return s, nil
}

func (repository *PostgresRepository) CreateShelf(ctx context.Context, s *Shelf) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW())
		RETURNING %s
	`,
		schema.Shelf.Table, schema.Shelf.ID, schema.Shelf.Name, schema.Shelf.Location, schema.Shelf.CreatedAt,
		schema.Shelf.CreatedAt,
	)

	err := repository.db.QueryRow(ctx, query, s.ID, s.Name, s.Location).Scan(&s.CreatedAt)
	return dberr.Wrap(err, "create_shelf")
}

func (repository *PostgresRepository) UpdateShelf(ctx context.Context, s *Shelf) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3
		WHERE %s = $1
	`,
		schema.Shelf.Table, schema.Shelf.Name, schema.Shelf.Location, schema.Shelf.ID,
	)

	cmd, err := repository.db.Exec(ctx, query, s.ID, s.Name, s.Location)
	if err != nil {
		return dberr.Wrap(err, "update_shelf")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteShelf(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Shelf.Table, schema.Shelf.ID)

	cmd, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_shelf")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
