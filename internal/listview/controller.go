package listview

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Record is what the controller needs to know about an entity.
type Record interface {
	RecordID() int64
	DisplayTitle() string
}

// Fields are the submitted values of an edit or create form, keyed by JSON
// field name. Updates carry only the changed fields.
type Fields = map[string]any

type Reader[T Record] interface {
	FetchCollection(ctx context.Context) ([]T, error)
	FetchSingle(ctx context.Context, id int64) (T, error)
}

type Writer[T Record] interface {
	UpdateRecord(ctx context.Context, id int64, fields Fields) (T, error)
	CreateRecord(ctx context.Context, fields Fields) (T, error)
	DeleteRecord(ctx context.Context, id int64) error
}

// Navigator resolves the view a record links to.
type Navigator[T Record] interface {
	Route(rec T) (string, error)
}

type LoadState int

const (
	Loading LoadState = iota
	Ready
	Failed
)

func (s LoadState) String() string {
	switch s {
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "loading"
	}
}

// Page describes the page a controller drives.
type Page struct {
	Title string
}

type Config[T Record] struct {
	Title     string
	Reader    Reader[T]
	Writer    Writer[T]
	Navigator Navigator[T]
	Filter    Filter[T]
	// Validate runs before any write. creating is true for new records.
	Validate func(fields Fields, creating bool) error
	Drawer   []DrawerOption
}

// Controller mediates between a collection view and the single detail
// drawer and edit surface that show one record at a time. It is safe for
// concurrent use.
type Controller[T Record] struct {
	cfg    Config[T]
	drawer *Drawer[T]

	mu         sync.Mutex
	records    []T
	state      LoadState
	loadErr    error
	writeErr   error
	selected   int64
	hasSel     bool
	detailOpen bool
	editOpen   bool
	creating   bool
	editID     int64
	// editGen changes whenever the edit surface is opened or closed so a
	// late write response does not close a surface opened afterwards.
	editGen uint64
	query   Query
	// seq is the number of the latest dispatched reload.
	seq uint64
}

func New[T Record](cfg Config[T]) *Controller[T] {
	c := &Controller[T]{
		cfg:    cfg,
		drawer: NewDrawer[T](cfg.Drawer...),
		state:  Loading,
	}

	c.drawer.OnClosed(c.drawerClosed)

	return c
}

// Activate returns the page descriptor.
func (c *Controller[T]) Activate() Page {
	return Page{Title: c.cfg.Title}
}

func (c *Controller[T]) Drawer() *Drawer[T] {
	return c.drawer
}

// SelectRow toggles the selection of id. Selecting the selected record
// deselects it and closes the drawer if open; selecting any other record
// shows it, replacing the drawer content in place when already open. The
// edit surface is never affected.
func (c *Controller[T]) SelectRow(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hasSel && c.selected == id {
		c.hasSel = false

		if c.detailOpen {
			c.detailOpen = false
			c.drawer.Close()
		}

		return nil
	}

	rec, ok := c.find(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownRecord, id)
	}

	c.show(rec)

	return nil
}

// Open fetches a single record and shows it in the drawer. It serves
// records reached by navigation that may not be in the loaded collection.
func (c *Controller[T]) Open(ctx context.Context, id int64) error {
	rec, err := c.cfg.Reader.FetchSingle(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.show(rec)

	return nil
}

func (c *Controller[T]) show(rec T) {
	c.selected = rec.RecordID()
	c.hasSel = true
	c.detailOpen = true
	c.drawer.Open(rec)
}

// CloseDetail closes the drawer. The selection is kept until the drawer has
// finished closing.
func (c *Controller[T]) CloseDetail() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.detailOpen {
		return
	}

	c.detailOpen = false
	c.drawer.Close()
}

func (c *Controller[T]) drawerClosed() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.detailOpen && !c.editOpen {
		c.hasSel = false
	}
}

// RequestEdit selects id and opens the edit surface for it. The detail
// drawer does not need to be open. The edit target stays id even if another
// row is selected while editing.
func (c *Controller[T]) RequestEdit(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.find(id); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownRecord, id)
	}

	c.selected = id
	c.hasSel = true
	c.editID = id
	c.openEdit(false)

	return nil
}

// RequestCreate opens the edit surface for a new record.
func (c *Controller[T]) RequestCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.openEdit(true)
}

func (c *Controller[T]) openEdit(creating bool) {
	c.editOpen = true
	c.creating = creating
	c.writeErr = nil
	c.editGen++
}

// CloseEdit closes the edit surface. The detail drawer is left exactly as
// it is.
func (c *Controller[T]) CloseEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closeEdit()
}

func (c *Controller[T]) closeEdit() {
	if !c.editOpen {
		return
	}

	c.editOpen = false
	c.creating = false
	c.writeErr = nil
	c.editGen++

	if !c.detailOpen && c.drawer.State() == DrawerClosed {
		c.hasSel = false
	}
}

// SubmitEdit validates fields and sends them as a partial update of the
// record being edited. On success the edit surface closes and the whole
// collection is reloaded. On failure the surface stays open with the error
// kept as WriteError and the collection is left untouched.
func (c *Controller[T]) SubmitEdit(ctx context.Context, fields Fields) error {
	c.mu.Lock()

	if !c.editOpen || c.creating {
		c.mu.Unlock()
		return ErrNoEdit
	}

	id := c.editID

	c.mu.Unlock()

	return c.submit(ctx, fields, false, func(ctx context.Context) (T, error) {
		return c.cfg.Writer.UpdateRecord(ctx, id, fields)
	})
}

// SubmitCreate is SubmitEdit for a surface opened with RequestCreate.
func (c *Controller[T]) SubmitCreate(ctx context.Context, fields Fields) error {
	c.mu.Lock()

	if !c.editOpen || !c.creating {
		c.mu.Unlock()
		return ErrNoEdit
	}

	c.mu.Unlock()

	return c.submit(ctx, fields, true, func(ctx context.Context) (T, error) {
		return c.cfg.Writer.CreateRecord(ctx, fields)
	})
}

func (c *Controller[T]) submit(
	ctx context.Context, fields Fields, creating bool, write func(context.Context) (T, error),
) error {
	c.mu.Lock()
	gen := c.editGen
	c.mu.Unlock()

	if c.cfg.Validate != nil {
		if err := c.cfg.Validate(fields, creating); err != nil {
			if !errors.Is(err, ErrValidationFailed) {
				err = fmt.Errorf("%w: %w", ErrValidationFailed, err)
			}

			c.setWriteErr(gen, err)

			return err
		}
	}

	_, err := write(ctx)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrWriteFailed, err)
		c.setWriteErr(gen, err)

		return err
	}

	c.mu.Lock()

	if c.editGen == gen {
		c.closeEdit()
	}

	c.mu.Unlock()

	return c.Reload(ctx)
}

func (c *Controller[T]) setWriteErr(gen uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.editGen == gen && c.editOpen {
		c.writeErr = err
	}
}

// Delete removes id. A rejected delete is kept as WriteError and nothing
// else changes; on success the drawer and edit surface showing id close and
// the collection is reloaded.
func (c *Controller[T]) Delete(ctx context.Context, id int64) error {
	err := c.cfg.Writer.DeleteRecord(ctx, id)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrWriteFailed, err)

		c.mu.Lock()
		c.writeErr = err
		c.mu.Unlock()

		return err
	}

	c.mu.Lock()

	if c.editOpen && !c.creating && c.editID == id {
		c.closeEdit()
	}

	if c.detailOpen && c.selected == id {
		c.detailOpen = false
		c.drawer.Close()
	}

	c.writeErr = nil

	c.mu.Unlock()

	return c.Reload(ctx)
}

// Reload reads the whole collection. Only the latest dispatched reload is
// applied: an older response resolving later returns ErrStale and changes
// nothing. A failed read replaces the list with the error state.
func (c *Controller[T]) Reload(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.state = Loading
	c.mu.Unlock()

	records, err := c.cfg.Reader.FetchCollection(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		return ErrStale
	}

	if err != nil {
		c.records = nil
		c.state = Failed
		c.loadErr = fmt.Errorf("%w: %w", ErrLoadFailed, err)

		return c.loadErr
	}

	c.records = records
	c.state = Ready
	c.loadErr = nil

	if c.detailOpen {
		if rec, ok := c.find(c.selected); ok {
			c.drawer.Refresh(rec)
		}
	}

	return nil
}

// Retry is the manual retry offered after a failed load.
func (c *Controller[T]) Retry(ctx context.Context) error {
	return c.Reload(ctx)
}

// Visible returns the collection filtered by the current query, or nothing
// while the collection is not loaded.
func (c *Controller[T]) Visible() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Failed {
		return nil
	}

	return c.cfg.Filter.Apply(c.records, c.query)
}

func (c *Controller[T]) SetQuery(q Query) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.query = q
}

func (c *Controller[T]) Query() Query {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.query
}

// Route resolves the navigation target of a loaded record.
func (c *Controller[T]) Route(id int64) (string, error) {
	if c.cfg.Navigator == nil {
		return "", ErrNoNavigator
	}

	c.mu.Lock()
	rec, ok := c.find(id)
	c.mu.Unlock()

	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownRecord, id)
	}

	return c.cfg.Navigator.Route(rec)
}

// EditTarget returns the record being edited. ok is false when the edit
// surface is closed or creating.
func (c *Controller[T]) EditTarget() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T

	if !c.editOpen || c.creating {
		return zero, false
	}

	return c.find(c.editID)
}

func (c *Controller[T]) find(id int64) (T, bool) {
	for _, rec := range c.records {
		if rec.RecordID() == id {
			return rec, true
		}
	}

	var zero T

	return zero, false
}

// Snapshot is a consistent view of the controller state for rendering.
type Snapshot[T Record] struct {
	State      LoadState
	LoadErr    error
	WriteErr   error
	Selected   int64
	HasSel     bool
	DetailOpen bool
	EditOpen   bool
	Creating   bool
	Query      Query
	Visible    []T
	Total      int
}

func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot[T]{
		State:      c.state,
		LoadErr:    c.loadErr,
		WriteErr:   c.writeErr,
		Selected:   c.selected,
		HasSel:     c.hasSel,
		DetailOpen: c.detailOpen,
		EditOpen:   c.editOpen,
		Creating:   c.creating,
		Query:      c.query,
		Total:      len(c.records),
	}

	if c.state != Failed {
		s.Visible = c.cfg.Filter.Apply(c.records, c.query)
	}

	return s
}

func (c *Controller[T]) State() LoadState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

func (c *Controller[T]) LoadError() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loadErr
}

func (c *Controller[T]) WriteError() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.writeErr
}

func (c *Controller[T]) Selected() (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.selected, c.hasSel
}

func (c *Controller[T]) DetailOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.detailOpen
}

func (c *Controller[T]) EditOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.editOpen
}
