package console

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/magscene/magsav/internal/entity"
	"github.com/magscene/magsav/internal/listview"
)

type store[T listview.Record] struct {
	mu       sync.Mutex
	records  []T
	nextID   int64
	loadErr  error
	writeErr error
	updates  []listview.Fields
	creates  []listview.Fields
	deletes  []int64
}

func newStore[T listview.Record](records ...T) *store[T] {
	return &store[T]{records: records, nextID: 100}
}

func (s *store[T]) FetchCollection(context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loadErr != nil {
		return nil, s.loadErr
	}

	return append([]T(nil), s.records...), nil
}

func (s *store[T]) FetchSingle(_ context.Context, id int64) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if rec.RecordID() == id {
			return rec, nil
		}
	}

	var zero T

	return zero, entity.ErrNotFound
}

func (s *store[T]) UpdateRecord(_ context.Context, id int64, fields listview.Fields) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T

	if s.writeErr != nil {
		return zero, s.writeErr
	}

	s.updates = append(s.updates, fields)

	for i, rec := range s.records {
		if rec.RecordID() == id {
			updated, err := merge(rec, fields)
			if err != nil {
				return zero, err
			}

			s.records[i] = updated

			return updated, nil
		}
	}

	return zero, entity.ErrNotFound
}

func (s *store[T]) CreateRecord(_ context.Context, fields listview.Fields) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T

	if s.writeErr != nil {
		return zero, s.writeErr
	}

	s.creates = append(s.creates, fields)

	withID := listview.Fields{"id": s.nextID}
	for k, v := range fields {
		withID[k] = v
	}

	s.nextID++

	created, err := merge(zero, withID)
	if err != nil {
		return zero, err
	}

	s.records = append(s.records, created)

	return created, nil
}

func (s *store[T]) DeleteRecord(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.writeErr != nil {
		return s.writeErr
	}

	s.deletes = append(s.deletes, id)

	for i, rec := range s.records {
		if rec.RecordID() == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}

	return entity.ErrNotFound
}

func merge[T any](rec T, fields listview.Fields) (T, error) {
	var out T

	raw, err := json.Marshal(rec)
	if err != nil {
		return out, err
	}

	m := map[string]any{}
	if err = json.Unmarshal(raw, &m); err != nil {
		return out, err
	}

	for k, v := range fields {
		m[k] = v
	}

	raw, err = json.Marshal(m)
	if err != nil {
		return out, err
	}

	err = json.Unmarshal(raw, &out)

	return out, err
}

type validateCall struct {
	id     int64
	action entity.ValidationAction
}

type fakeAPI struct {
	mu         sync.Mutex
	validated  []validateCall
	authorized []int64
}

func (f *fakeAPI) Stats(context.Context) (entity.DashboardStats, error) {
	return entity.DashboardStats{
		Totals:   map[entity.Kind]int{entity.KindClient: 2, entity.KindServiceRequest: 1},
		ByStatus: map[entity.Kind]map[string]int{entity.KindServiceRequest: {"PENDING": 1}},
	}, nil
}

func (f *fakeAPI) ValidateServiceRequest(
	_ context.Context, id int64, action entity.ValidationAction,
) (entity.ServiceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.validated = append(f.validated, validateCall{id: id, action: action})

	return entity.ServiceRequest{ID: id, RequestNumber: "SAV-1", Status: entity.RequestValidated}, nil
}

func (f *fakeAPI) AuthorizeRMA(_ context.Context, id int64) (entity.RMA, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.authorized = append(f.authorized, id)

	return entity.RMA{ID: id, RMANumber: "RMA-1", Status: entity.RMAApproved}, nil
}

type fixture struct {
	m        *Model
	api      *fakeAPI
	clients  *store[entity.Client]
	requests *store[entity.ServiceRequest]
}

func ptr[T any](v T) *T {
	return &v
}

func newFixture(t *testing.T, start entity.Kind) *fixture {
	t.Helper()

	f := &fixture{
		api: &fakeAPI{},
		clients: newStore(
			entity.Client{ID: 1, Name: "Alpha", Type: entity.ClientTypeIndividual, Active: true, City: ptr("Lyon")},
			entity.Client{ID: 2, Name: "Beta", Type: entity.ClientTypeCompany, Active: false},
		),
		requests: newStore(
			entity.ServiceRequest{
				ID: 7, RequestNumber: "SAV-251020-00000007", Title: "Console muette",
				Status: entity.RequestPending, Priority: entity.PriorityHigh, ClientID: ptr(int64(1)),
			},
		),
	}

	pages := []Page{
		NewPage(ServiceRequestSchema(), f.requests),
		NewPage(ClientSchema(), f.clients),
	}

	f.m = New(context.Background(), f.api, pages, start)
	settle(t, f.m, f.m.Init())

	return f
}

// settle runs cmd and every command it leads to, feeding each message back
// into the model.
func settle(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()

	queue := []tea.Cmd{cmd}

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]

		if c == nil {
			continue
		}

		switch msg := c().(type) {
		case nil, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
}

func press(m *Model, keyName string) tea.Cmd {
	var msg tea.KeyMsg

	switch keyName {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keyName)}
	}

	_, cmd := m.Update(msg)

	return cmd
}

func rowIDs(m *Model) []int64 {
	ids := []int64{}
	for _, r := range m.page().view().Rows {
		ids = append(ids, r.ID)
	}

	return ids
}

func TestModel_StartsOnRequestedKind(t *testing.T) {
	t.Parallel()

	f := newFixture(t, entity.KindClient)

	require.Equal(t, entity.KindClient, f.m.page().Kind())
	require.Equal(t, "Clients", f.m.page().Title())
	require.Equal(t, []int64{1, 2}, rowIDs(f.m))
	require.NotNil(t, f.m.stats)
	require.Contains(t, f.m.View(), "Alpha")
}

func TestModel_SelectToggleFinishesAfterAnimation(t *testing.T) {
	t.Parallel()

	f := newFixture(t, entity.KindClient)
	p := f.m.page()

	settle(t, f.m, press(f.m, "enter"))

	d := p.drawer()
	require.Equal(t, listview.DrawerOpen, d.State)
	require.Equal(t, "Alpha", d.Title)

	cmd := press(f.m, "enter")

	d = p.drawer()
	require.Equal(t, listview.DrawerClosing, d.State)
	require.Equal(t, "Alpha", d.Title)
	require.False(t, p.view().DetailOpen)
	require.Contains(t, f.m.View(), "(fermeture)")

	start := time.Now()
	settle(t, f.m, cmd)

	require.GreaterOrEqual(t, time.Since(start), listview.CloseAnimation)
	require.Equal(t, listview.DrawerClosed, p.drawer().State)
	require.False(t, p.view().HasSel)
}

func TestModel_ReopenDuringCloseKeepsDrawer(t *testing.T) {
	t.Parallel()

	f := newFixture(t, entity.KindClient)
	p := f.m.page()

	settle(t, f.m, press(f.m, "enter"))

	closing := press(f.m, "esc")
	require.Equal(t, listview.DrawerClosing, p.drawer().State)
	require.True(t, p.view().HasSel)

	settle(t, f.m, press(f.m, "down"))
	settle(t, f.m, press(f.m, "enter"))
	settle(t, f.m, closing)

	d := p.drawer()
	require.Equal(t, listview.DrawerOpen, d.State)
	require.Equal(t, "Beta", d.Title)
}

func TestModel_EditSubmitsChangedFields(t *testing.T) {
	t.Parallel()

	f := newFixture(t, entity.KindClient)

	settle(t, f.m, press(f.m, "e"))
	require.Equal(t, modeForm, f.m.mode)
	require.Equal(t, "Alpha", f.m.form.initial["name"])
	require.Equal(t, "oui", f.m.form.initial["active"])

	require.True(t, f.m.form.Set("city", "Paris"))
	require.True(t, f.m.form.Set("phone", "04 72 00 00 00"))

	settle(t, f.m, press(f.m, "enter"))

	require.Equal(t, modeBrowse, f.m.mode)
	require.Nil(t, f.m.form)
	require.Equal(t, []listview.Fields{{"city": "Paris", "phone": "04 72 00 00 00"}}, f.clients.updates)
	require.False(t, f.m.failed)

	rec, err := f.clients.FetchSingle(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Paris", *rec.City)
}

func TestModel_EditValidationBlocksSubmit(t *testing.T) {
	t.Parallel()

	f := newFixture(t, entity.KindClient)
	p := f.m.page()

	settle(t, f.m, press(f.m, "e"))
	f.m.form.Set("name", "")
	f.m.form.Set("type", "ASSOCIATION")

	settle(t, f.m, press(f.m, "enter"))

	require.Equal(t, modeForm, f.m.mode)
	require.Empty(t, f.clients.updates)
	require.ErrorIs(t, p.writeErr(), listview.ErrValidationFailed)
	require.Equal(t, map[string]string{"name": msgRequired, "type": msgOption}, fieldErrors(p.writeErr()))
	require.True(t, f.m.failed)
}

func TestModel_WriteFailureKeepsForm(t *testing.T) {
	t.Parallel()

	f := newFixture(t, entity.KindClient)
	p := f.m.page()
	f.clients.writeErr = errors.New("connection refused")

	settle(t, f.m, press(f.m, "e"))
	f.m.form.Set("city", "Nice")

	settle(t, f.m, press(f.m, "enter"))

	require.Equal(t, modeForm, f.m.mode)
	require.ErrorIs(t, p.writeErr(), listview.ErrWriteFailed)
	require.Equal(t, "Nice", f.m.form.inputs[5].Value())
	require.Equal(t, []int64{1, 2}, rowIDs(f.m))

	press(f.m, "esc")
	require.Equal(t, modeBrowse, f.m.mode)
	require.False(t, p.view().EditOpen)
}

func TestModel_CreateAndDelete(t *testing.T) {
	t.Parallel()

	f := newFixture(t, entity.KindClient)

	settle(t, f.m, press(f.m, "n"))
	require.True(t, f.m.form.creating)

	f.m.form.Set("name", "Gamma")
	f.m.form.Set("active", "oui")
	settle(t, f.m, press(f.m, "enter"))

	require.Equal(t, []listview.Fields{{"name": "Gamma", "active": true}}, f.clients.creates)
	require.Equal(t, []int64{1, 2, 100}, rowIDs(f.m))

	settle(t, f.m, press(f.m, "down"))
	settle(t, f.m, press(f.m, "down"))
	settle(t, f.m, press(f.m, "d"))
	require.Empty(t, f.clients.deletes)

	settle(t, f.m, press(f.m, "d"))
	require.Equal(t, []int64{100}, f.clients.deletes)
	require.Equal(t, []int64{1, 2}, rowIDs(f.m))
}

func TestModel_LoadFailureAndRetry(t *testing.T) {
	t.Parallel()

	f := newFixture(t, entity.KindServiceRequest)
	f.clients.loadErr = errors.New("503 Service Unavailable")

	settle(t, f.m, press(f.m, "tab"))

	require.Equal(t, entity.KindClient, f.m.page().Kind())
	require.Equal(t, listview.Failed, f.m.page().view().State)
	require.Empty(t, rowIDs(f.m))
	require.Contains(t, f.m.View(), "Chargement impossible")

	f.clients.loadErr = nil
	settle(t, f.m, press(f.m, "r"))

	require.Equal(t, listview.Ready, f.m.page().view().State)
	require.Equal(t, []int64{1, 2}, rowIDs(f.m))
}

func TestModel_SearchAndStatusFilter(t *testing.T) {
	t.Parallel()

	f := newFixture(t, entity.KindClient)

	press(f.m, "/")
	require.Equal(t, modeSearch, f.m.mode)

	press(f.m, "bet")
	require.Equal(t, []int64{2}, rowIDs(f.m))

	press(f.m, "esc")
	require.Equal(t, modeBrowse, f.m.mode)
	require.Equal(t, []int64{1, 2}, rowIDs(f.m))

	press(f.m, "s")
	require.Equal(t, []int64{1}, rowIDs(f.m))

	press(f.m, "s")
	require.Equal(t, []int64{2}, rowIDs(f.m))

	press(f.m, "s")
	require.Equal(t, []int64{1, 2}, rowIDs(f.m))
}

func TestModel_ValidateRequestWithPicker(t *testing.T) {
	t.Parallel()

	f := newFixture(t, entity.KindServiceRequest)

	press(f.m, "v")
	require.Equal(t, modePicker, f.m.mode)

	press(f.m, "down")
	settle(t, f.m, press(f.m, "enter"))

	require.Equal(t, modeBrowse, f.m.mode)
	require.Equal(t, []validateCall{{id: 7, action: entity.ActionDiagnostic}}, f.api.validated)
	require.Contains(t, f.m.message, "Diagnostic")
}

func TestModel_FollowLinkOpensTarget(t *testing.T) {
	t.Parallel()

	f := newFixture(t, entity.KindServiceRequest)

	settle(t, f.m, press(f.m, "g"))

	require.Equal(t, entity.KindClient, f.m.page().Kind())

	d := f.m.page().drawer()
	require.Equal(t, listview.DrawerOpen, d.State)
	require.Equal(t, "Alpha", d.Title)
}

func TestFormFields(t *testing.T) {
	t.Parallel()

	specs := ContractSchema().Form
	f := newForm("t", specs, map[string]string{"contractNumber": "C-1", "clientId": "4", "active": "oui"}, false)

	f.Set("amount", "12,50")
	f.Set("endDate", "2025-12-31")
	f.Set("active", "non")
	f.Set("clientId", "")
	f.Set("type", "location")

	require.Equal(t, listview.Fields{
		"amount":   json.Number("12.50"),
		"endDate":  time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		"active":   false,
		"clientId": nil,
		"type":     "LOCATION",
	}, f.Fields())

	validate := formValidator(specs)
	err := validate(f.Fields(), false)
	require.Equal(t, map[string]string{"clientId": msgRequired}, fieldErrors(err))

	err = validate(listview.Fields{"contractNumber": "C-2", "startDate": "demain", "clientId": json.Number("1")}, true)
	require.Equal(t, map[string]string{"startDate": msgDate}, fieldErrors(err))

	require.NoError(t, validate(listview.Fields{"amount": json.Number("3")}, false))
}

func TestDetailLines(t *testing.T) {
	t.Parallel()

	rec := entity.Client{ID: 1, Name: "Alpha", Type: entity.ClientTypeIndividual, Active: true, City: ptr("Lyon")}

	lines := detailLines(rec, ClientSchema().Form)

	require.Equal(t, []detailLine{
		{Label: "id", Value: "1"},
		{Label: "Nom", Value: "Alpha"},
		{Label: "Type", Value: "PARTICULIER"},
		{Label: "Ville", Value: "Lyon"},
		{Label: "Actif", Value: "oui"},
		{Label: "createdAt", Value: "0001-01-01 00:00"},
	}, lines)
}

func TestParseLink(t *testing.T) {
	t.Parallel()

	kind, id, err := parseLink("clients/12")
	require.NoError(t, err)
	require.Equal(t, entity.KindClient, kind)
	require.Equal(t, int64(12), id)

	_, _, err = parseLink("planets/1")
	require.Error(t, err)

	_, _, err = parseLink("clients/x")
	require.Error(t, err)
}
