package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/magscene/magsav/internal/entity"
)

const uniqueViolation = "23505"

// table maps one entity kind onto its PostgreSQL table.
type table[T entity.Record] struct {
	name string
	// columns written on insert and update, in the order of values.
	columns []string
	// generated columns read back after the writable ones.
	generated []string
	search    []string
	// status is the column stats and the status filter work on.
	status string
	client string
	// maintenance is the column holding the next planned maintenance date.
	maintenance string
	touch       bool
	values      func(T) []any
	// scan returns targets for id, columns and generated columns.
	scan func(*T) []any
}

func (t table[T]) selectColumns() []string {
	cols := make([]string, 0, 1+len(t.columns)+len(t.generated))
	cols = append(cols, "id")
	cols = append(cols, t.columns...)
	cols = append(cols, t.generated...)

	return cols
}

func (t table[T]) returning() string {
	return "RETURNING " + strings.Join(t.selectColumns(), ", ")
}

// Store is the PostgreSQL persistence of one entity kind.
type Store[T entity.Record] struct {
	db *pgxpool.Pool
	t  table[T]
}

func newStore[T entity.Record](db *pgxpool.Pool, t table[T]) *Store[T] {
	return &Store[T]{db: db, t: t}
}

func (s *Store[T]) List(ctx context.Context, filter entity.ListFilter) ([]T, error) {
	filter = filter.Normalize()

	stmt := sq.Select(s.t.selectColumns()...).From(s.t.name).PlaceholderFormat(sq.Dollar)
	stmt = s.applyFilter(stmt, filter)

	sqlQuery, args, err := stmt.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	records := make([]T, 0)

	for rows.Next() {
		var rec T

		err = rows.Scan(s.t.scan(&rec)...)
		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (s *Store[T]) applyFilter(stmt sq.SelectBuilder, filter entity.ListFilter) sq.SelectBuilder {
	if filter.Search != "" && len(s.t.search) > 0 {
		pattern := "%" + filter.Search + "%"

		or := make(sq.Or, 0, len(s.t.search))
		for _, col := range s.t.search {
			or = append(or, sq.ILike{col: pattern})
		}

		stmt = stmt.Where(or)
	}

	if filter.Status != "" && s.t.status != "" {
		stmt = stmt.Where(sq.Eq{s.t.status: filter.Status})
	}

	if filter.ClientID != nil && s.t.client != "" {
		stmt = stmt.Where(sq.Eq{s.t.client: *filter.ClientID})
	}

	stmt = stmt.OrderBy("id ASC")
	stmt = stmt.Limit(filter.Limit)
	stmt = stmt.Offset((filter.Page - 1) * filter.Limit)

	return stmt
}

func (s *Store[T]) ByID(ctx context.Context, id int64) (T, error) {
	var rec T

	sqlQuery, args, err := sq.Select(s.t.selectColumns()...).
		From(s.t.name).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return rec, err
	}

	err = s.db.QueryRow(ctx, sqlQuery, args...).Scan(s.t.scan(&rec)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rec, fmt.Errorf("%w: %s %d", entity.ErrNotFound, s.t.name, id)
		}

		return rec, err
	}

	return rec, nil
}

func (s *Store[T]) Create(ctx context.Context, rec T) (T, error) {
	var created T

	sqlQuery, args, err := sq.Insert(s.t.name).
		Columns(s.t.columns...).
		Values(s.t.values(rec)...).
		Suffix(s.t.returning()).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return created, err
	}

	err = s.db.QueryRow(ctx, sqlQuery, args...).Scan(s.t.scan(&created)...)
	if err != nil {
		return created, mapWriteErr(err)
	}

	return created, nil
}

func (s *Store[T]) Update(ctx context.Context, rec T) (T, error) {
	var updated T

	values := s.t.values(rec)

	set := make(map[string]any, len(s.t.columns)+1)
	for i, col := range s.t.columns {
		set[col] = values[i]
	}

	if s.t.touch {
		set["updated_at"] = time.Now()
	}

	sqlQuery, args, err := sq.Update(s.t.name).
		SetMap(set).
		Where(sq.Eq{"id": rec.RecordID()}).
		Suffix(s.t.returning()).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return updated, err
	}

	err = s.db.QueryRow(ctx, sqlQuery, args...).Scan(s.t.scan(&updated)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return updated, fmt.Errorf("%w: %s %d", entity.ErrNotFound, s.t.name, rec.RecordID())
		}

		return updated, mapWriteErr(err)
	}

	return updated, nil
}

func (s *Store[T]) Delete(ctx context.Context, id int64) error {
	sqlQuery, args, err := sq.Delete(s.t.name).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := s.db.Exec(ctx, sqlQuery, args...)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %d", entity.ErrNotFound, s.t.name, id)
	}

	return nil
}

// CountByStatus returns the number of rows per status value and the total.
func (s *Store[T]) CountByStatus(ctx context.Context) (map[string]int, int, error) {
	counts := make(map[string]int)

	if s.t.status == "" {
		var total int

		err := s.db.QueryRow(ctx, "SELECT count(*) FROM "+s.t.name).Scan(&total)
		if err != nil {
			return nil, 0, err
		}

		return counts, total, nil
	}

	sqlQuery, args, err := sq.Select(s.t.status+"::text", "count(*)").
		From(s.t.name).
		GroupBy(s.t.status).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	total := 0

	for rows.Next() {
		var (
			status string
			n      int
		)

		err = rows.Scan(&status, &n)
		if err != nil {
			return nil, 0, err
		}

		counts[status] = n
		total += n
	}

	return counts, total, rows.Err()
}

// MaintenanceDue lists rows whose next maintenance date is before now.
func (s *Store[T]) MaintenanceDue(ctx context.Context, kind entity.Kind, now time.Time) ([]entity.MaintenanceDue, error) {
	if s.t.maintenance == "" {
		return nil, fmt.Errorf("%s has no maintenance schedule", s.t.name)
	}

	sqlQuery, args, err := sq.Select("id", "name", s.t.maintenance).
		From(s.t.name).
		Where(sq.Lt{s.t.maintenance: now}).
		OrderBy(s.t.maintenance).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var due []entity.MaintenanceDue

	for rows.Next() {
		d := entity.MaintenanceDue{Kind: kind}

		err = rows.Scan(&d.ID, &d.Name, &d.Due)
		if err != nil {
			return nil, err
		}

		due = append(due, d)
	}

	return due, rows.Err()
}

func mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", entity.ErrAlreadyExists, pgErr.ConstraintName)
	}

	return err
}
