package author

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

func (repository *PostgresRepository) ListAuthors(ctx context.Context, f Filter, limit, offset int) ([]*Author, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
	`,
		schema.Author.ID, schema.Author.FirstName, schema.Author.LastName, schema.Author.CreatedAt,
		schema.Author.Table,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.Author.Table)

	args := []any{}
	countArgs := []any{}

	if f.Query != "" {
		searchTerm := "%" + f.Query + "%"
		query += fmt.Sprintf(` WHERE (%s ILIKE $1 OR %s ILIKE $1)`, schema.Author.FirstName, schema.Author.LastName)
		countQuery += fmt.Sprintf(` WHERE (%s ILIKE $1 OR %s ILIKE $1)`, schema.Author.FirstName, schema.Author.LastName)
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += fmt.Sprintf(" ORDER BY %s ASC, %s ASC LIMIT $%d OFFSET $%d",
		schema.Author.LastName, schema.Author.FirstName, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_authors")
	}

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_authors")
	}
	defer rows.Close()

	var authors []*Author
	for rows.Next() {
		a := &Author{}
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_author")
		}
		authors = append(authors, a)
	}

	return authors, total, nil
}

func (repository *PostgresRepository) GetAuthor(ctx context.Context, id string) (*Author, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.Author.ID, schema.Author.FirstName, schema.Author.LastName, schema.Author.CreatedAt,
		schema.Author.Table, schema.Author.ID,
	)
	a := &Author{}

	err := repository.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.FirstName, &a.LastName, &a.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_author")
	}

	return a, nil
}

func (repository *PostgresRepository) CreateAuthor(ctx context.Context, a *Author, firstNorm, lastNorm string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING %s
	`,
		schema.Author.Table, schema.Author.ID, schema.Author.FirstName, schema.Author.LastName,
		schema.Author.FirstNameNorm, schema.Author.LastNameNorm, schema.Author.CreatedAt,
		schema.Author.CreatedAt,
	)

	err := repository.db.QueryRow(ctx, query, a.ID, a.FirstName, a.LastName, firstNorm, lastNorm).Scan(&a.CreatedAt)
	return dberr.Wrap(err, "create_author")
}

func (repository *PostgresRepository) UpdateAuthor(ctx context.Context, a *Author, firstNorm, lastNorm string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $1
	`,
		schema.Author.Table, schema.Author.FirstName, schema.Author.LastName,
		schema.Author.FirstNameNorm, schema.Author.LastNameNorm,
		schema.Author.ID,
	)

	cmd, err := repository.db.Exec(ctx, query, a.ID, a.FirstName, a.LastName, firstNorm, lastNorm)
	if err != nil {
		return dberr.Wrap(err, "update_author")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteAuthor(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Author.Table, schema.Author.ID)

	cmd, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_author")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) ExistsByName(ctx context.Context, firstNorm, lastNorm, excludeID string) (bool, error) {
	query, args := existsByNameQuery(firstNorm, lastNorm, excludeID)

	var exists bool
	if err := repository.db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "author_exists_by_name")
	}

	return exists, nil
}

// existsByNameQuery builds the duplicate-name probe. The id column is typed
// uuid, so the exclusion clause is only emitted when there is a real id to
// exclude; an empty string would not encode as a uuid parameter.
func existsByNameQuery(firstNorm, lastNorm, excludeID string) (string, []any) {
	if excludeID == "" {
		query := fmt.Sprintf(`
			SELECT EXISTS (
				SELECT 1 FROM %s
				WHERE %s = $1 AND %s = $2
			)
		`,
			schema.Author.Table,
			schema.Author.FirstNameNorm, schema.Author.LastNameNorm,
		)
		return query, []any{firstNorm, lastNorm}
	}

	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s
			WHERE %s = $1 AND %s = $2 AND %s != $3
		)
	`,
		schema.Author.Table,
		schema.Author.FirstNameNorm, schema.Author.LastNameNorm, schema.Author.ID,
	)
	return query, []any{firstNorm, lastNorm, excludeID}
}
