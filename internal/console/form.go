package console

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/magscene/magsav/internal/listview"
)

const (
	msgRequired = "champ obligatoire"
	msgNumber   = "nombre attendu"
	msgDate     = "date attendue (AAAA-MM-JJ)"
	msgBool     = "oui ou non attendu"
	msgOption   = "valeur invalide"
)

// form is the edit surface: one text input per editable field.
type form struct {
	title    string
	creating bool
	specs    []FieldSpec
	inputs   []textinput.Model
	initial  map[string]string
	focus    int
}

func newForm(title string, specs []FieldSpec, initial map[string]string, creating bool) *form {
	f := &form{
		title:    title,
		creating: creating,
		specs:    specs,
		inputs:   make([]textinput.Model, len(specs)),
		initial:  initial,
	}

	for i, spec := range specs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 255
		in.Width = 40
		in.SetValue(initial[spec.Name])

		switch spec.Kind {
		case FieldEnum:
			in.Placeholder = strings.Join(spec.Options, "|")
		case FieldDate:
			in.Placeholder = "AAAA-MM-JJ"
		case FieldBool:
			in.Placeholder = "oui|non"
		}

		f.inputs[i] = in
	}

	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}

	return f
}

func (f *form) Update(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, formKeys.Next):
			return f.move(1)
		case key.Matches(km, formKeys.Prev):
			return f.move(-1)
		}
	}

	if len(f.inputs) == 0 {
		return nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)

	return cmd
}

func (f *form) move(delta int) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}

	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)

	return f.inputs[f.focus].Focus()
}

// Set replaces the text of a field. It returns false for unknown fields.
func (f *form) Set(name, value string) bool {
	for i, spec := range f.specs {
		if spec.Name == name {
			f.inputs[i].SetValue(value)
			return true
		}
	}

	return false
}

// Fields returns what to submit: every filled field for a new record, only
// the changed ones for an update. A field emptied during an update is sent
// as null.
func (f *form) Fields() listview.Fields {
	fields := listview.Fields{}

	for i, spec := range f.specs {
		value := strings.TrimSpace(f.inputs[i].Value())

		if f.creating {
			if value != "" {
				fields[spec.Name] = parseInput(spec, value)
			}

			continue
		}

		if value != strings.TrimSpace(f.initial[spec.Name]) {
			fields[spec.Name] = parseInput(spec, value)
		}
	}

	return fields
}

func (f *form) View(width int, writeErr error) string {
	fieldErrs := fieldErrors(writeErr)

	labelWidth := 0
	for _, spec := range f.specs {
		labelWidth = max(labelWidth, lipgloss.Width(spec.Label)+2)
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(f.title))
	b.WriteString("\n\n")

	for i, spec := range f.specs {
		label := spec.Label
		if spec.Required {
			label += " *"
		}

		style := labelStyle
		if i == f.focus {
			style = focusedLabelStyle
		}

		b.WriteString(style.Width(labelWidth).Render(label))
		b.WriteString(f.inputs[i].View())

		if msg, ok := fieldErrs[spec.Name]; ok {
			b.WriteString("  " + errorStyle.Render(msg))
		}

		b.WriteString("\n")
	}

	if writeErr != nil && fieldErrs == nil {
		b.WriteString("\n" + errorStyle.Render(writeErr.Error()) + "\n")
	}

	return modalStyle.Width(min(width-4, 90)).Render(b.String())
}

func parseInput(spec FieldSpec, value string) any {
	if value == "" {
		return nil
	}

	switch spec.Kind {
	case FieldNumber:
		n := strings.ReplaceAll(value, ",", ".")
		if _, err := strconv.ParseFloat(n, 64); err == nil {
			return json.Number(n)
		}
	case FieldDate:
		if t, err := time.Parse(dateLayout, value); err == nil {
			return t
		}
	case FieldBool:
		switch strings.ToLower(value) {
		case "oui", "o", "true", "1":
			return true
		case "non", "n", "false", "0":
			return false
		}
	case FieldEnum:
		return strings.ToUpper(value)
	}

	return value
}

// formValidator checks the submitted fields before anything is sent.
func formValidator(specs []FieldSpec) func(listview.Fields, bool) error {
	return func(fields listview.Fields, creating bool) error {
		errs := map[string]string{}

		for _, spec := range specs {
			v, present := fields[spec.Name]

			if spec.Required && ((creating && !present) || (present && v == nil)) {
				errs[spec.Name] = msgRequired
				continue
			}

			if v == nil {
				continue
			}

			if msg, ok := checkKind(spec, v); !ok {
				errs[spec.Name] = msg
			}
		}

		if len(errs) > 0 {
			return &listview.ValidationError{Fields: errs}
		}

		return nil
	}
}

func checkKind(spec FieldSpec, v any) (string, bool) {
	switch spec.Kind {
	case FieldNumber:
		_, ok := v.(json.Number)
		return msgNumber, ok
	case FieldDate:
		_, ok := v.(time.Time)
		return msgDate, ok
	case FieldBool:
		_, ok := v.(bool)
		return msgBool, ok
	case FieldEnum:
		s, ok := v.(string)
		return msgOption, ok && slices.Contains(spec.Options, s)
	default:
		return "", true
	}
}

// recordValues renders the current values of a record as form text, keyed
// by JSON field name.
func recordValues(rec any, specs []FieldSpec) (map[string]string, error) {
	m, err := recordMap(rec)
	if err != nil {
		return nil, err
	}

	values := make(map[string]string, len(specs))

	for _, spec := range specs {
		v, ok := m[spec.Name]
		if !ok || v == nil {
			continue
		}

		switch spec.Kind {
		case FieldDate:
			values[spec.Name] = formatDate(v, dateLayout)
		case FieldBool:
			if b, ok := v.(bool); ok {
				values[spec.Name] = map[bool]string{true: "oui", false: "non"}[b]
				continue
			}

			values[spec.Name] = fmt.Sprint(v)
		default:
			values[spec.Name] = fmt.Sprint(v)
		}
	}

	return values, nil
}

func recordMap(rec any) (map[string]any, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var m map[string]any

	err = dec.Decode(&m)
	if err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}

	return m, nil
}

func formatDate(v any, layout string) string {
	s, ok := v.(string)
	if !ok {
		return fmt.Sprint(v)
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}

	return t.Format(layout)
}
