package console

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/magscene/magsav/internal/entity"
	"github.com/magscene/magsav/internal/httpclients/backoffice"
	"github.com/magscene/magsav/internal/listview"
)

var errNoLink = errors.New("aucun enregistrement lié")

// ReadWriter is the backend collection of one kind.
type ReadWriter[T listview.Record] interface {
	listview.Reader[T]
	listview.Writer[T]
}

type row struct {
	ID    int64
	Cells []string
}

type header struct {
	Title string
	Width int
}

// pageView is a consistent, kind independent snapshot used for rendering.
type pageView struct {
	Title      string
	Columns    []header
	Rows       []row
	Total      int
	Status     string
	State      listview.LoadState
	LoadErr    error
	Selected   int64
	HasSel     bool
	DetailOpen bool
	EditOpen   bool
	Search     string
}

type detailLine struct {
	Label string
	Value string
}

type drawerView struct {
	State listview.DrawerState
	Gen   uint64
	Title string
	Lines []detailLine
}

// Page is one entity kind of the console: a list controller plus the schema
// that renders it.
type Page interface {
	Kind() entity.Kind
	Title() string

	view() pageView
	drawer() drawerView
	finishDrawer(gen uint64) bool

	reload(ctx context.Context) error
	open(ctx context.Context, id int64) error
	selectRow(id int64) error
	closeDetail()

	editForm(id int64) (*form, error)
	createForm() *form
	closeEdit()
	submit(ctx context.Context, fields listview.Fields, creating bool) error
	remove(ctx context.Context, id int64) error
	writeErr() error

	setSearch(s string)
	cycleStatus() string
	link(id int64) (string, error)
}

type kindPage[T listview.Record] struct {
	schema Schema[T]
	ctrl   *listview.Controller[T]
	status int
}

type schemaNavigator[T listview.Record] struct {
	link func(T) (string, bool)
}

func (n schemaNavigator[T]) Route(rec T) (string, error) {
	target, ok := n.link(rec)
	if !ok {
		return "", errNoLink
	}

	return target, nil
}

func NewPage[T listview.Record](s Schema[T], rw ReadWriter[T], opts ...listview.DrawerOption) Page {
	cfg := listview.Config[T]{
		Title:    s.Kind.Title(),
		Reader:   rw,
		Writer:   rw,
		Filter:   s.filter(),
		Validate: formValidator(s.Form),
		Drawer:   append([]listview.DrawerOption{listview.WithManualFinish()}, opts...),
	}

	if s.Link != nil {
		cfg.Navigator = schemaNavigator[T]{link: s.Link}
	}

	return &kindPage[T]{schema: s, ctrl: listview.New(cfg), status: -1}
}

func (p *kindPage[T]) Kind() entity.Kind {
	return p.schema.Kind
}

func (p *kindPage[T]) Title() string {
	return p.ctrl.Activate().Title
}

func (p *kindPage[T]) view() pageView {
	snap := p.ctrl.Snapshot()

	v := pageView{
		Title:      p.Title(),
		Columns:    make([]header, len(p.schema.Columns)),
		Rows:       make([]row, 0, len(snap.Visible)),
		Total:      snap.Total,
		State:      snap.State,
		LoadErr:    snap.LoadErr,
		Selected:   snap.Selected,
		HasSel:     snap.HasSel,
		DetailOpen: snap.DetailOpen,
		EditOpen:   snap.EditOpen,
		Search:     snap.Query.Search,
	}

	if p.status >= 0 {
		v.Status = p.schema.Statuses[p.status]
	}

	for i, c := range p.schema.Columns {
		v.Columns[i] = header{Title: c.Title, Width: c.Width}
	}

	for _, rec := range snap.Visible {
		cells := make([]string, len(p.schema.Columns))
		for i, c := range p.schema.Columns {
			cells[i] = c.Value(rec)
		}

		v.Rows = append(v.Rows, row{ID: rec.RecordID(), Cells: cells})
	}

	return v
}

func (p *kindPage[T]) drawer() drawerView {
	d := p.ctrl.Drawer()

	v := drawerView{State: d.State(), Gen: d.Generation()}

	rec, ok := d.Content()
	if !ok {
		return v
	}

	v.Title = rec.DisplayTitle()
	v.Lines = detailLines(rec, p.schema.Form)

	return v
}

func (p *kindPage[T]) finishDrawer(gen uint64) bool {
	return p.ctrl.Drawer().Finish(gen)
}

func (p *kindPage[T]) reload(ctx context.Context) error {
	return p.ctrl.Reload(ctx)
}

func (p *kindPage[T]) open(ctx context.Context, id int64) error {
	return p.ctrl.Open(ctx, id)
}

func (p *kindPage[T]) selectRow(id int64) error {
	return p.ctrl.SelectRow(id)
}

func (p *kindPage[T]) closeDetail() {
	p.ctrl.CloseDetail()
}

func (p *kindPage[T]) editForm(id int64) (*form, error) {
	err := p.ctrl.RequestEdit(id)
	if err != nil {
		return nil, err
	}

	rec, ok := p.ctrl.EditTarget()
	if !ok {
		return nil, fmt.Errorf("%w: %d", listview.ErrUnknownRecord, id)
	}

	values, err := recordValues(rec, p.schema.Form)
	if err != nil {
		p.ctrl.CloseEdit()
		return nil, err
	}

	return newForm("Modifier "+rec.DisplayTitle(), p.schema.Form, values, false), nil
}

func (p *kindPage[T]) createForm() *form {
	p.ctrl.RequestCreate()

	return newForm("Nouveau : "+p.Title(), p.schema.Form, map[string]string{}, true)
}

func (p *kindPage[T]) closeEdit() {
	p.ctrl.CloseEdit()
}

func (p *kindPage[T]) submit(ctx context.Context, fields listview.Fields, creating bool) error {
	if creating {
		return p.ctrl.SubmitCreate(ctx, fields)
	}

	return p.ctrl.SubmitEdit(ctx, fields)
}

func (p *kindPage[T]) remove(ctx context.Context, id int64) error {
	return p.ctrl.Delete(ctx, id)
}

func (p *kindPage[T]) writeErr() error {
	return p.ctrl.WriteError()
}

func (p *kindPage[T]) setSearch(s string) {
	q := p.ctrl.Query()
	q.Search = s
	p.ctrl.SetQuery(q)
}

// cycleStatus moves the status filter to the next value, wrapping back to
// no filter after the last one.
func (p *kindPage[T]) cycleStatus() string {
	if p.schema.Status == nil {
		return ""
	}

	p.status++
	if p.status >= len(p.schema.Statuses) {
		p.status = -1
	}

	q := p.ctrl.Query()
	q.Equals = map[string]string{}

	if p.status >= 0 {
		q.Equals[statusFilter] = p.schema.Statuses[p.status]
	}

	p.ctrl.SetQuery(q)

	if p.status < 0 {
		return ""
	}

	return p.schema.Statuses[p.status]
}

func (p *kindPage[T]) link(id int64) (string, error) {
	return p.ctrl.Route(id)
}

// detailLines lists the form fields first, in form order, then every other
// field of the record sorted by name.
func detailLines(rec any, specs []FieldSpec) []detailLine {
	m, err := recordMap(rec)
	if err != nil {
		return []detailLine{{Label: "erreur", Value: err.Error()}}
	}

	lines := []detailLine{}
	seen := map[string]bool{}

	if v, ok := m["id"]; ok {
		lines = append(lines, detailLine{Label: "id", Value: fmt.Sprint(v)})
		seen["id"] = true
	}

	for _, spec := range specs {
		seen[spec.Name] = true

		v, ok := m[spec.Name]
		if !ok || v == nil {
			continue
		}

		lines = append(lines, detailLine{Label: spec.Label, Value: detailValue(spec.Name, v)})
	}

	rest := make([]string, 0, len(m))
	for name := range m {
		if !seen[name] {
			rest = append(rest, name)
		}
	}

	sort.Strings(rest)

	for _, name := range rest {
		if m[name] == nil {
			continue
		}

		lines = append(lines, detailLine{Label: name, Value: detailValue(name, m[name])})
	}

	return lines
}

func detailValue(name string, v any) string {
	switch val := v.(type) {
	case bool:
		if val {
			return "oui"
		}

		return "non"
	case string:
		if strings.HasSuffix(name, "Date") || strings.HasSuffix(name, "At") {
			return formatDate(val, "2006-01-02 15:04")
		}

		return val
	default:
		return fmt.Sprint(val)
	}
}

// parseLink splits a "kind/id" navigation target.
func parseLink(target string) (entity.Kind, int64, error) {
	kind, rawID, ok := strings.Cut(target, "/")
	if !ok || !entity.Kind(kind).IsValid() {
		return "", 0, fmt.Errorf("lien invalide %q", target)
	}

	var id int64

	_, err := fmt.Sscan(rawID, &id)
	if err != nil {
		return "", 0, fmt.Errorf("lien invalide %q: %w", target, err)
	}

	return entity.Kind(kind), id, nil
}

// fieldErrors extracts per field messages from a local or a server side
// validation failure.
func fieldErrors(err error) map[string]string {
	var verr *listview.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields
	}

	var apiErr *backoffice.APIError
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		fields := make(map[string]string, len(apiErr.Fields))
		for _, f := range apiErr.Fields {
			fields[f.Field] = f.Message
		}

		return fields
	}

	return nil
}

func pageIndex(pages []Page, kind entity.Kind) int {
	return slices.IndexFunc(pages, func(p Page) bool { return p.Kind() == kind })
}
