package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magscene/magsav/internal/entity"
	"github.com/magscene/magsav/pkg/logger"
)

// Catalog holds the business rules shared by every record kind.
type Catalog[T entity.Record] struct {
	kind     entity.Kind
	repo     Repository[T]
	events   Producer
	defaults func(now time.Time) T
	validate func(T) error
	now      func() time.Time
}

func newCatalog[T entity.Record](
	kind entity.Kind,
	repo Repository[T],
	events Producer,
	defaults func(now time.Time) T,
	validate func(T) error,
) *Catalog[T] {
	return &Catalog[T]{
		kind:     kind,
		repo:     repo,
		events:   events,
		defaults: defaults,
		validate: validate,
		now:      time.Now,
	}
}

func (c *Catalog[T]) setClock(now func() time.Time) {
	c.now = now
}

func (c *Catalog[T]) Kind() entity.Kind {
	return c.kind
}

func (c *Catalog[T]) List(ctx context.Context, filter entity.ListFilter) ([]T, error) {
	records, err := c.repo.List(logger.WithKind(ctx, c.kind.String()), filter.Normalize())
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.kind, err)
	}

	return records, nil
}

func (c *Catalog[T]) Get(ctx context.Context, id int64) (T, error) {
	return c.repo.ByID(logger.WithKind(ctx, c.kind.String()), id)
}

// Create builds a record from the submitted fields on top of the kind
// defaults, validates it and stores it.
func (c *Catalog[T]) Create(ctx context.Context, fields map[string]any) (T, error) {
	var zero T

	rec, err := mergeFields(c.defaults(c.now()), fields)
	if err != nil {
		return zero, err
	}

	return c.Insert(ctx, rec)
}

// Insert validates and stores an already built record.
func (c *Catalog[T]) Insert(ctx context.Context, rec T) (T, error) {
	ctx = logger.WithKind(ctx, c.kind.String())

	if err := c.validate(rec); err != nil {
		return rec, err
	}

	created, err := c.repo.Create(ctx, rec)
	if err != nil {
		return rec, fmt.Errorf("create %s: %w", c.kind, err)
	}

	slog.InfoContext(ctx, "record created", slog.Int64("id", created.RecordID()))
	c.publish(ctx, created.RecordID(), entity.ActionCreated)

	return created, nil
}

// Update overlays the submitted fields on the stored record. Fields that are
// not submitted keep their value; an explicit null clears an optional field.
func (c *Catalog[T]) Update(ctx context.Context, id int64, fields map[string]any) (T, error) {
	ctx = logger.WithKind(ctx, c.kind.String())

	existing, err := c.repo.ByID(ctx, id)
	if err != nil {
		return existing, err
	}

	rec, err := mergeFields(existing, fields)
	if err != nil {
		return existing, err
	}

	return c.Save(ctx, rec)
}

// Save validates and writes back a full record.
func (c *Catalog[T]) Save(ctx context.Context, rec T) (T, error) {
	ctx = logger.WithKind(ctx, c.kind.String())

	if err := c.validate(rec); err != nil {
		return rec, err
	}

	updated, err := c.repo.Update(ctx, rec)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return rec, err
		}

		return rec, fmt.Errorf("update %s %d: %w", c.kind, rec.RecordID(), err)
	}

	slog.InfoContext(ctx, "record updated", slog.Int64("id", updated.RecordID()))
	c.publish(ctx, updated.RecordID(), entity.ActionUpdated)

	return updated, nil
}

func (c *Catalog[T]) Delete(ctx context.Context, id int64) error {
	ctx = logger.WithKind(ctx, c.kind.String())

	err := c.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "record deleted", slog.Int64("id", id))
	c.publish(ctx, id, entity.ActionDeleted)

	return nil
}

func (c *Catalog[T]) CountByStatus(ctx context.Context) (map[string]int, int, error) {
	return c.repo.CountByStatus(ctx)
}

func (c *Catalog[T]) publish(ctx context.Context, id int64, action entity.RecordAction) {
	if c.events == nil {
		return
	}

	c.events.SendRecordChanged(ctx, entity.RecordEvent{
		Kind:   c.kind,
		ID:     id,
		Action: action,
		At:     c.now().UTC(),
	})
}

// mergeFields overlays fields on base through its JSON form so that the
// field names accepted are exactly the JSON names of the record. The id is
// never taken from fields.
func mergeFields[T entity.Record](base T, fields map[string]any) (T, error) {
	var merged T

	raw, err := json.Marshal(base)
	if err != nil {
		return merged, err
	}

	values := make(map[string]any)

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	if err = dec.Decode(&values); err != nil {
		return merged, err
	}

	for name, value := range fields {
		if name == "id" {
			continue
		}

		values[name] = value
	}

	raw, err = json.Marshal(values)
	if err != nil {
		return merged, fmt.Errorf("%w: %w", entity.ErrIncorrectRequestBody, err)
	}

	dec = json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	if err = dec.Decode(&merged); err != nil {
		return merged, fieldDecodeError(err)
	}

	return merged, nil
}

func fieldDecodeError(err error) error {
	verr := &entity.ValidationError{}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return verr.Add(typeErr.Field, "type de valeur invalide")
	}

	// json reports unknown fields only through the message text.
	if name, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		return verr.Add(strings.Trim(name, `"`), "champ inconnu")
	}

	return verr.Add("", err.Error())
}
