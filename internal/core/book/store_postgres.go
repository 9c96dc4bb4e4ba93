package book

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

// selectColumns renders the date column as YYYY-MM-DD text so the API never
// leaks a timestamp representation.
func selectColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, to_char(%s, 'YYYY-MM-DD'), %s, %s, %s, %s",
		schema.Book.ID, schema.Book.Title, schema.Book.Author, schema.Book.ISBN,
		schema.Book.Date, schema.Book.Description, schema.Book.Jacket, schema.Book.Shelf,
		schema.Book.CreatedAt,
	)
}

func scanBook(row interface{ Scan(dest ...any) error }) (*Book, error) {
	b := &Book{}
	err := row.Scan(&b.ID, &b.Title, &b.AuthorID, &b.ISBN, &b.Date, &b.Description, &b.Jacket, &b.ShelfID, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (repository *PostgresRepository) ListBooks(ctx context.Context, f Filter, limit, offset int) ([]*Book, int, error) {
	where := ""
	args := []any{}

	addClause := func(clause string, value any) {
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		args = append(args, value)
		where += fmt.Sprintf(clause, len(args))
	}

	if f.Query != "" {
		addClause(schema.Book.Title+" ILIKE $%d", "%"+f.Query+"%")
	}
	if f.AuthorID != "" {
		addClause(schema.Book.Author+" = $%d", f.AuthorID)
	}
	if f.ShelfID != "" {
		addClause(schema.Book.Shelf+" = $%d", f.ShelfID)
	}

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.Book.Table) + where

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_books")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s`, selectColumns(), schema.Book.Table) + where +
		fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d OFFSET $%d", schema.Book.Title, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	var books []*Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_book")
		}
		books = append(books, b)
	}

	return books, total, nil
}

func (repository *PostgresRepository) GetBook(ctx context.Context, id string) (*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns(), schema.Book.Table, schema.Book.ID)

	b, err := scanBook(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_book")
	}
	return b, nil
}

func (repository *PostgresRepository) CreateBook(ctx context.Context, b *Book) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING %s
	`,
		schema.Book.Table,
		schema.Book.ID, schema.Book.Title, schema.Book.Author, schema.Book.ISBN,
		schema.Book.Date, schema.Book.Description, schema.Book.Shelf, schema.Book.CreatedAt,
		schema.Book.CreatedAt,
	)

	err := repository.db.QueryRow(ctx, query,
		b.ID, b.Title, b.AuthorID, b.ISBN, b.Date, b.Description, b.ShelfID,
	).Scan(&b.CreatedAt)
	return dberr.Wrap(err, "create_book")
}

func (repository *PostgresRepository) UpdateBook(ctx context.Context, b *Book) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7
		WHERE %s = $1
	`,
		schema.Book.Table,
		schema.Book.Title, schema.Book.Author, schema.Book.ISBN,
		schema.Book.Date, schema.Book.Description, schema.Book.Shelf,
		schema.Book.ID,
	)

	cmd, err := repository.db.Exec(ctx, query,
		b.ID, b.Title, b.AuthorID, b.ISBN, b.Date, b.Description, b.ShelfID,
	)
	if err != nil {
		return dberr.Wrap(err, "update_book")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteBook(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Book.Table, schema.Book.ID)

	cmd, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_book")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) UpdateJacket(ctx context.Context, id string, stem *string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.Book.Table, schema.Book.Jacket, schema.Book.ID)

	cmd, err := repository.db.Exec(ctx, query, id, stem)
	if err != nil {
		return dberr.Wrap(err, "update_book_jacket")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// ActiveStems lists every jacket stem still referenced by a book. Consumed
// by the orphan sweeper, not by the API.
func (repository *PostgresRepository) ActiveStems(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s IS NOT NULL`,
		schema.Book.Jacket, schema.Book.Table, schema.Book.Jacket)

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "active_stems")
	}
	defer rows.Close()

	var stems []string
	for rows.Next() {
		var stem string
		if err := rows.Scan(&stem); err != nil {
			return nil, dberr.Wrap(err, "scan_stem")
		}
		stems = append(stems, stem)
	}
	return stems, nil
}

func (repository *PostgresRepository) ISBNExists(ctx context.Context, isbn, excludeID string) (bool, error) {
	query, args := isbnExistsQuery(isbn, excludeID)

	var exists bool
	if err := repository.db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "book_isbn_exists")
	}
	return exists, nil
}

// isbnExistsQuery builds the duplicate-ISBN probe. The id column is typed
// uuid, so the exclusion clause is only emitted when there is a real id to
// exclude; an empty string would not encode as a uuid parameter.
func isbnExistsQuery(isbn, excludeID string) (string, []any) {
	if excludeID == "" {
		query := fmt.Sprintf(`
			SELECT EXISTS (
				SELECT 1 FROM %s WHERE %s = $1
			)
		`, schema.Book.Table, schema.Book.ISBN)
		return query, []any{isbn}
	}

	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s WHERE %s = $1 AND %s != $2
		)
	`, schema.Book.Table, schema.Book.ISBN, schema.Book.ID)
	return query, []any{isbn, excludeID}
}

func (repository *PostgresRepository) AuthorExists(ctx context.Context, authorID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.Author.Table, schema.Author.ID)

	var exists bool
	if err := repository.db.QueryRow(ctx, query, authorID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "author_exists")
	}
	return exists, nil
}

func (repository *PostgresRepository) ShelfExists(ctx context.Context, shelfID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.Shelf.Table, schema.Shelf.ID)

	var exists bool
	if err := repository.db.QueryRow(ctx, query, shelfID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "shelf_exists")
	}
	return exists, nil
}
