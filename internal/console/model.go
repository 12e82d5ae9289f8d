package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/magscene/magsav/internal/entity"
	"github.com/magscene/magsav/internal/httpclients/backoffice"
	"github.com/magscene/magsav/internal/listview"
)

const (
	drawerWidth = 44
	chromeLines = 7
)

// Backoffice is the part of the API that is not a plain collection.
type Backoffice interface {
	Stats(ctx context.Context) (entity.DashboardStats, error)
	ValidateServiceRequest(ctx context.Context, id int64, action entity.ValidationAction) (entity.ServiceRequest, error)
	AuthorizeRMA(ctx context.Context, id int64) (entity.RMA, error)
}

var validationActions = []entity.ValidationAction{
	entity.ActionInternalRepair,
	entity.ActionDiagnostic,
	entity.ActionRMA,
	entity.ActionScrap,
}

var actionLabels = map[entity.ValidationAction]string{
	entity.ActionInternalRepair: "Réparation interne",
	entity.ActionDiagnostic:     "Diagnostic",
	entity.ActionRMA:            "Retour fournisseur (RMA)",
	entity.ActionScrap:          "Mise au rebut",
}

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeForm
	modePicker
)

type (
	loadedMsg struct {
		kind entity.Kind
		err  error
	}
	writtenMsg struct {
		kind entity.Kind
		what string
		err  error
	}
	openedMsg struct {
		kind entity.Kind
		err  error
	}
	actionMsg struct {
		kind entity.Kind
		text string
		err  error
	}
	statsMsg struct {
		stats entity.DashboardStats
		err   error
	}
	drawerDoneMsg struct {
		kind entity.Kind
		gen  uint64
	}
)

type Model struct {
	ctx   context.Context
	api   Backoffice
	pages []Page

	active int
	cursor int
	width  int
	height int
	mode   mode

	search  textinput.Model
	form    *form
	picker  int
	pickID  int64
	confirm int64

	stats   *entity.DashboardStats
	message string
	failed  bool

	// closing holds the drawer generation whose finish signal is scheduled.
	closing map[entity.Kind]uint64
	loaded  map[entity.Kind]bool
	help    help.Model
}

// New builds the console on pages. The page of kind start is shown first
// when present.
func New(ctx context.Context, api Backoffice, pages []Page, start entity.Kind) *Model {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "rechercher"

	m := &Model{
		ctx:     ctx,
		api:     api,
		pages:   pages,
		search:  search,
		closing: map[entity.Kind]uint64{},
		loaded:  map[entity.Kind]bool{},
		help:    help.New(),
		width:   120,
		height:  40,
	}

	if i := pageIndex(pages, start); i >= 0 {
		m.active = i
	}

	return m
}

// NewPages builds one page per kind backed by the REST collections of c.
func NewPages(c *backoffice.Client) []Page {
	return []Page{
		NewPage(EquipmentSchema(), backoffice.NewCollection[entity.Equipment](c, entity.KindEquipment)),
		NewPage(ServiceRequestSchema(), backoffice.NewCollection[entity.ServiceRequest](c, entity.KindServiceRequest)),
		NewPage(RepairSchema(), backoffice.NewCollection[entity.Repair](c, entity.KindRepair)),
		NewPage(RMASchema(), backoffice.NewCollection[entity.RMA](c, entity.KindRMA)),
		NewPage(ClientSchema(), backoffice.NewCollection[entity.Client](c, entity.KindClient)),
		NewPage(ContractSchema(), backoffice.NewCollection[entity.Contract](c, entity.KindContract)),
		NewPage(VehicleSchema(), backoffice.NewCollection[entity.Vehicle](c, entity.KindVehicle)),
		NewPage(PersonnelSchema(), backoffice.NewCollection[entity.Personnel](c, entity.KindPersonnel)),
		NewPage(SupplierSchema(), backoffice.NewCollection[entity.Supplier](c, entity.KindSupplier)),
		NewPage(ProjectSchema(), backoffice.NewCollection[entity.Project](c, entity.KindProject)),
	}
}

func (m *Model) Init() tea.Cmd {
	if len(m.pages) == 0 {
		return tea.Quit
	}

	return tea.Batch(m.load(m.page()), m.fetchStats())
}

func (m *Model) page() Page {
	return m.pages[m.active]
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case loadedMsg:
		if msg.err != nil && !errors.Is(msg.err, listview.ErrStale) {
			slog.ErrorContext(m.ctx, "load failed", "kind", msg.kind, "error", msg.err)
		}
	case writtenMsg:
		cmd = m.written(msg)
	case openedMsg:
		if msg.err != nil {
			m.flashErr(msg.err)
		}
	case actionMsg:
		if msg.err != nil {
			m.flashErr(msg.err)
			break
		}

		m.flash(msg.text)

		if i := pageIndex(m.pages, msg.kind); i >= 0 {
			cmd = tea.Batch(m.load(m.pages[i]), m.fetchStats())
		}
	case statsMsg:
		if msg.err != nil {
			slog.WarnContext(m.ctx, "stats unavailable", "error", msg.err)
			break
		}

		m.stats = &msg.stats
	case drawerDoneMsg:
		if i := pageIndex(m.pages, msg.kind); i >= 0 {
			m.pages[i].finishDrawer(msg.gen)
		}

		if m.closing[msg.kind] == msg.gen {
			delete(m.closing, msg.kind)
		}
	case tea.KeyMsg:
		cmd = m.key(msg)
	}

	m.clampCursor()

	return m, tea.Batch(cmd, m.scheduleFinish())
}

// scheduleFinish starts the close animation signal of every drawer that
// entered Closing since the last update.
func (m *Model) scheduleFinish() tea.Cmd {
	var cmds []tea.Cmd

	for _, p := range m.pages {
		d := p.drawer()
		if d.State != listview.DrawerClosing || m.closing[p.Kind()] == d.Gen {
			continue
		}

		kind, gen := p.Kind(), d.Gen
		m.closing[kind] = gen

		cmds = append(cmds, tea.Tick(listview.CloseAnimation, func(time.Time) tea.Msg {
			return drawerDoneMsg{kind: kind, gen: gen}
		}))
	}

	return tea.Batch(cmds...)
}

func (m *Model) written(msg writtenMsg) tea.Cmd {
	switch {
	case msg.err == nil:
		m.flash(msg.what)
	case errors.Is(msg.err, listview.ErrStale):
	default:
		m.flashErr(msg.err)
	}

	if m.mode == modeForm && !m.page().view().EditOpen {
		m.mode = modeBrowse
		m.form = nil
	}

	return m.fetchStats()
}

func (m *Model) key(msg tea.KeyMsg) tea.Cmd {
	switch m.mode {
	case modeSearch:
		return m.searchKey(msg)
	case modeForm:
		return m.formKey(msg)
	case modePicker:
		return m.pickerKey(msg)
	default:
		return m.browseKey(msg)
	}
}

func (m *Model) browseKey(msg tea.KeyMsg) tea.Cmd {
	p := m.page()
	v := p.view()
	current, hasRow := m.current(v)

	if !key.Matches(msg, keys.Delete) {
		m.confirm = 0
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.NextPage):
		return m.switchPage(m.active + 1)
	case key.Matches(msg, keys.PrevPage):
		return m.switchPage(m.active - 1)
	case key.Matches(msg, keys.Up):
		m.cursor--
	case key.Matches(msg, keys.Down):
		m.cursor++
	case key.Matches(msg, keys.Select):
		if hasRow {
			m.flashErr(p.selectRow(current.ID))
		}
	case key.Matches(msg, keys.Close):
		p.closeDetail()
	case key.Matches(msg, keys.Edit):
		if !hasRow {
			return nil
		}

		f, err := p.editForm(current.ID)
		if err != nil {
			m.flashErr(err)
			return nil
		}

		m.form, m.mode = f, modeForm
	case key.Matches(msg, keys.New):
		m.form, m.mode = p.createForm(), modeForm
	case key.Matches(msg, keys.Delete):
		if !hasRow {
			return nil
		}

		if m.confirm != current.ID {
			m.confirm = current.ID
			m.flash("Appuyer de nouveau sur d pour supprimer la ligne sélectionnée")

			return nil
		}

		m.confirm = 0

		return m.remove(p, current.ID)
	case key.Matches(msg, keys.Search):
		m.mode = modeSearch
		m.search.SetValue(v.Search)

		return m.search.Focus()
	case key.Matches(msg, keys.Status):
		if status := p.cycleStatus(); status != "" {
			m.flash("Filtre statut : " + status)
		} else {
			m.flash("Filtre statut retiré")
		}

		m.cursor = 0
	case key.Matches(msg, keys.Reload):
		return tea.Batch(m.load(p), m.fetchStats())
	case key.Matches(msg, keys.Follow):
		if hasRow {
			return m.follow(p, current.ID)
		}
	case key.Matches(msg, keys.Validate):
		if hasRow && p.Kind() == entity.KindServiceRequest {
			m.mode, m.picker, m.pickID = modePicker, 0, current.ID
		}
	case key.Matches(msg, keys.Authorize):
		if hasRow && p.Kind() == entity.KindRMA {
			return m.authorize(current.ID)
		}
	}

	return nil
}

func (m *Model) formKey(msg tea.KeyMsg) tea.Cmd {
	p := m.page()

	switch {
	case key.Matches(msg, formKeys.Cancel):
		p.closeEdit()
		m.form, m.mode = nil, modeBrowse

		return nil
	case key.Matches(msg, formKeys.Submit):
		fields, creating := m.form.Fields(), m.form.creating
		what := "Modifications enregistrées"

		if creating {
			what = "Enregistrement créé"
		}

		return func() tea.Msg {
			return writtenMsg{kind: p.Kind(), what: what, err: p.submit(m.ctx, fields, creating)}
		}
	default:
		return m.form.Update(msg)
	}
}

func (m *Model) searchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.search.Blur()
		m.mode = modeBrowse

		return nil
	case tea.KeyEsc:
		m.search.SetValue("")
		m.search.Blur()
		m.page().setSearch("")
		m.mode = modeBrowse

		return nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	m.page().setSearch(m.search.Value())
	m.cursor = 0

	return cmd
}

func (m *Model) pickerKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Up):
		m.picker = (m.picker + len(validationActions) - 1) % len(validationActions)
	case key.Matches(msg, keys.Down):
		m.picker = (m.picker + 1) % len(validationActions)
	case key.Matches(msg, keys.Close):
		m.mode = modeBrowse
	case key.Matches(msg, keys.Select):
		m.mode = modeBrowse
		return m.validate(m.pickID, validationActions[m.picker])
	}

	return nil
}

func (m *Model) switchPage(i int) tea.Cmd {
	if m.form != nil {
		return nil
	}

	n := len(m.pages)
	m.active = (i%n + n) % n
	m.cursor = 0
	m.confirm = 0

	p := m.page()
	if m.loaded[p.Kind()] {
		return nil
	}

	return m.load(p)
}

func (m *Model) follow(p Page, id int64) tea.Cmd {
	target, err := p.link(id)
	if err != nil {
		m.flashErr(err)
		return nil
	}

	kind, targetID, err := parseLink(target)
	if err != nil {
		m.flashErr(err)
		return nil
	}

	i := pageIndex(m.pages, kind)
	if i < 0 {
		m.flashErr(fmt.Errorf("page %s absente", kind))
		return nil
	}

	load := m.switchPage(i)
	dest := m.pages[i]

	return tea.Batch(load, func() tea.Msg {
		return openedMsg{kind: kind, err: dest.open(m.ctx, targetID)}
	})
}

func (m *Model) load(p Page) tea.Cmd {
	m.loaded[p.Kind()] = true

	return func() tea.Msg {
		return loadedMsg{kind: p.Kind(), err: p.reload(m.ctx)}
	}
}

func (m *Model) remove(p Page, id int64) tea.Cmd {
	return func() tea.Msg {
		return writtenMsg{kind: p.Kind(), what: "Enregistrement supprimé", err: p.remove(m.ctx, id)}
	}
}

func (m *Model) fetchStats() tea.Cmd {
	if m.api == nil {
		return nil
	}

	return func() tea.Msg {
		stats, err := m.api.Stats(m.ctx)
		return statsMsg{stats: stats, err: err}
	}
}

func (m *Model) validate(id int64, action entity.ValidationAction) tea.Cmd {
	return func() tea.Msg {
		req, err := m.api.ValidateServiceRequest(m.ctx, id, action)
		if err != nil {
			return actionMsg{kind: entity.KindServiceRequest, err: err}
		}

		return actionMsg{
			kind: entity.KindServiceRequest,
			text: fmt.Sprintf("Demande %s validée : %s", req.RequestNumber, actionLabels[action]),
		}
	}
}

func (m *Model) authorize(id int64) tea.Cmd {
	return func() tea.Msg {
		rma, err := m.api.AuthorizeRMA(m.ctx, id)
		if err != nil {
			return actionMsg{kind: entity.KindRMA, err: err}
		}

		return actionMsg{kind: entity.KindRMA, text: "RMA " + rma.RMANumber + " autorisé"}
	}
}

func (m *Model) current(v pageView) (row, bool) {
	if m.cursor < 0 || m.cursor >= len(v.Rows) {
		return row{}, false
	}

	return v.Rows[m.cursor], true
}

func (m *Model) clampCursor() {
	if len(m.pages) == 0 {
		return
	}

	n := len(m.page().view().Rows)

	m.cursor = min(m.cursor, n-1)
	m.cursor = max(m.cursor, 0)
}

func (m *Model) flash(text string) {
	m.message, m.failed = text, false
}

func (m *Model) flashErr(err error) {
	if err == nil {
		return
	}

	m.message, m.failed = err.Error(), true
}

func (m *Model) View() string {
	if len(m.pages) == 0 {
		return ""
	}

	p := m.page()
	v := p.view()

	sections := []string{m.tabsView(), m.statsView(), m.titleView(v)}

	switch m.mode {
	case modeForm:
		sections = append(sections, m.form.View(m.width, p.writeErr()))
	case modePicker:
		sections = append(sections, m.pickerView())
	default:
		sections = append(sections, m.bodyView(p, v))
	}

	sections = append(sections, m.footerView())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) tabsView() string {
	tabs := make([]string, len(m.pages))

	for i, p := range m.pages {
		style := tabStyle
		if i == m.active {
			style = activeTabStyle
		}

		tabs[i] = style.Render(p.Title())
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) statsView() string {
	if m.stats == nil {
		return faintStyle.Render("…")
	}

	parts := make([]string, 0, len(entity.Kinds))

	for _, kind := range entity.Kinds {
		n, ok := m.stats.Totals[kind]
		if !ok {
			continue
		}

		part := fmt.Sprintf("%s %d", kind.Title(), n)

		if pending := m.stats.ByStatus[kind][string(entity.RequestPending)]; kind == entity.KindServiceRequest && pending > 0 {
			part += fmt.Sprintf(" (%d en attente)", pending)
		}

		parts = append(parts, part)
	}

	return faintStyle.Render(strings.Join(parts, " · "))
}

func (m *Model) titleView(v pageView) string {
	title := titleStyle.Render(v.Title)

	info := fmt.Sprintf(" %d/%d", len(v.Rows), v.Total)
	if v.Search != "" {
		info += fmt.Sprintf("  recherche « %s »", v.Search)
	}

	if v.Status != "" {
		info += "  statut " + v.Status
	}

	if m.mode == modeSearch {
		return title + faintStyle.Render(info) + "\n" + m.search.View()
	}

	return title + faintStyle.Render(info) + "\n"
}

func (m *Model) bodyView(p Page, v pageView) string {
	switch {
	case v.State == listview.Failed:
		msg := "Chargement impossible"
		if v.LoadErr != nil {
			msg += "\n\n" + v.LoadErr.Error()
		}

		return panelStyle.Render(errorStyle.Render(msg) + "\n\n" + faintStyle.Render("r pour réessayer"))
	case v.State == listview.Loading && v.Total == 0:
		return faintStyle.Render("Chargement…")
	}

	table := m.tableView(v)

	d := p.drawer()
	if d.State == listview.DrawerClosed {
		return table
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, table, m.drawerView(d))
}

func (m *Model) tableView(v pageView) string {
	var b strings.Builder

	cells := make([]string, len(v.Columns))
	for i, c := range v.Columns {
		cells[i] = cell(c.Title, c.Width)
	}

	b.WriteString("  " + headerStyle.Render(strings.Join(cells, " ")) + "\n")

	if len(v.Rows) == 0 {
		b.WriteString(faintStyle.Render("  Aucun enregistrement"))
		return b.String()
	}

	visible := max(m.height-chromeLines, 1)
	start := max(m.cursor-visible+1, 0)
	end := min(start+visible, len(v.Rows))

	for i := start; i < end; i++ {
		r := v.Rows[i]

		for j, c := range v.Columns {
			cells[j] = cell(r.Cells[j], c.Width)
		}

		line := strings.Join(cells, " ")

		marker := "  "
		if v.HasSel && v.Selected == r.ID {
			marker = selectedStyle.Render("● ")
		}

		if i == m.cursor {
			line = cursorStyle.Render(line)
		}

		b.WriteString(marker + line + "\n")
	}

	return b.String()
}

func (m *Model) drawerView(d drawerView) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(d.Title))

	if d.State == listview.DrawerClosing {
		b.WriteString(faintStyle.Render(" (fermeture)"))
	}

	b.WriteString("\n\n")

	for _, l := range d.Lines {
		b.WriteString(labelStyle.Render(l.Label+" : ") + l.Value + "\n")
	}

	style := drawerStyle
	if d.State == listview.DrawerClosing {
		style = drawerClosingStyle
	}

	return style.Width(drawerWidth).Render(b.String())
}

func (m *Model) pickerView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Valider la demande") + "\n\n")

	for i, action := range validationActions {
		line := "  " + actionLabels[action]
		if i == m.picker {
			line = cursorStyle.Render("› " + actionLabels[action])
		}

		b.WriteString(line + "\n")
	}

	return modalStyle.Render(b.String())
}

func (m *Model) footerView() string {
	status := ""
	if m.message != "" {
		style := infoStyle
		if m.failed {
			style = errorStyle
		}

		status = style.Render(m.message) + "\n"
	}

	if m.mode == modeForm {
		return status + m.help.View(formKeys)
	}

	return status + m.help.View(keys)
}

func cell(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		s = string(r[:max(width-1, 0)]) + "…"
	}

	return lipgloss.NewStyle().Width(width).MaxWidth(width).Render(s)
}
