package console

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	Select    key.Binding
	Edit      key.Binding
	New       key.Binding
	Delete    key.Binding
	Close     key.Binding
	Search    key.Binding
	Status    key.Binding
	Reload    key.Binding
	Follow    key.Binding
	Validate  key.Binding
	Authorize key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "haut")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "bas")),
	NextPage:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "page suivante")),
	PrevPage:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("S-tab", "page précédente")),
	Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("entrée", "détail")),
	Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "modifier")),
	New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "nouveau")),
	Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "supprimer")),
	Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("échap", "fermer")),
	Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "rechercher")),
	Status:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "statut")),
	Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recharger")),
	Follow:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "lien")),
	Validate:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "valider la demande")),
	Authorize: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "autoriser le RMA")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quitter")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Edit, k.New, k.Delete, k.Search, k.Status, k.Reload, k.NextPage, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPage, k.PrevPage},
		{k.Select, k.Close, k.Edit, k.New, k.Delete},
		{k.Search, k.Status, k.Reload, k.Follow},
		{k.Validate, k.Authorize, k.Quit},
	}
}

type formKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Cancel key.Binding
}

var formKeys = formKeyMap{
	Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "champ suivant")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("S-tab", "champ précédent")),
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("entrée", "enregistrer")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("échap", "annuler")),
}

func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Submit, k.Cancel}
}

func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
