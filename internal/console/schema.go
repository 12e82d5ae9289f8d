package console

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magscene/magsav/internal/entity"
	"github.com/magscene/magsav/internal/listview"
)

type FieldKind int

const (
	FieldText FieldKind = iota
	FieldNumber
	FieldDate
	FieldBool
	FieldEnum
)

const dateLayout = "2006-01-02"

// FieldSpec describes one input of the edit form. Name is the JSON field
// name sent to the backend.
type FieldSpec struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	Options  []string
}

type Column[T listview.Record] struct {
	Title string
	Width int
	Value func(T) string
}

// Schema tells the console how to show and edit one record kind.
type Schema[T listview.Record] struct {
	Kind    entity.Kind
	Columns []Column[T]
	Form    []FieldSpec
	Search  []func(T) string
	// Status feeds the filter cycled with the status key.
	Status   func(T) string
	Statuses []string
	// Link names the record another record points at, as "kind/id".
	Link func(T) (string, bool)
}

func (s Schema[T]) filter() listview.Filter[T] {
	f := listview.Filter[T]{Text: s.Search}

	if s.Status != nil {
		f.Enums = map[string]func(T) string{statusFilter: s.Status}
	}

	return f
}

const statusFilter = "status"

func str(p *string) string {
	if p == nil {
		return ""
	}

	return *p
}

func date(p *time.Time) string {
	if p == nil || p.IsZero() {
		return ""
	}

	return p.Format(dateLayout)
}

func money(p *decimal.Decimal) string {
	if p == nil {
		return ""
	}

	return p.StringFixed(2)
}

func active(b bool) string {
	if b {
		return "actif"
	}

	return "inactif"
}

func link(kind entity.Kind, p *int64) (string, bool) {
	if p == nil {
		return "", false
	}

	return fmt.Sprintf("%s/%d", kind, *p), true
}

var activeStatuses = []string{"actif", "inactif"}

func EquipmentSchema() Schema[entity.Equipment] {
	return Schema[entity.Equipment]{
		Kind: entity.KindEquipment,
		Columns: []Column[entity.Equipment]{
			{Title: "UID", Width: 8, Value: entity.Equipment.UID},
			{Title: "Nom", Width: 28, Value: func(e entity.Equipment) string { return e.Name }},
			{Title: "Marque", Width: 14, Value: func(e entity.Equipment) string { return str(e.Brand) }},
			{Title: "Catégorie", Width: 14, Value: func(e entity.Equipment) string { return str(e.Category) }},
			{Title: "Statut", Width: 12, Value: func(e entity.Equipment) string { return string(e.Status) }},
			{Title: "Stock", Width: 6, Value: func(e entity.Equipment) string { return strconv.Itoa(e.Stock) }},
			{Title: "Emplacement", Width: 14, Value: func(e entity.Equipment) string { return str(e.Location) }},
		},
		Form: []FieldSpec{
			{Name: "name", Label: "Nom", Required: true},
			{Name: "category", Label: "Catégorie"},
			{Name: "subCategory", Label: "Sous-catégorie"},
			{Name: "brand", Label: "Marque"},
			{Name: "model", Label: "Modèle"},
			{Name: "serialNumber", Label: "N° de série"},
			{Name: "internalReference", Label: "Référence interne"},
			{Name: "location", Label: "Emplacement"},
			{Name: "status", Label: "Statut", Kind: FieldEnum, Options: entity.EquipmentStatuses},
			{Name: "purchasePrice", Label: "Prix d'achat", Kind: FieldNumber},
			{Name: "purchaseDate", Label: "Date d'achat", Kind: FieldDate},
			{Name: "stock", Label: "Stock", Kind: FieldNumber},
			{Name: "nextMaintenanceDate", Label: "Prochaine maintenance", Kind: FieldDate},
			{Name: "notes", Label: "Notes"},
		},
		Search: []func(entity.Equipment) string{
			func(e entity.Equipment) string { return e.Name },
			func(e entity.Equipment) string { return str(e.Brand) },
			func(e entity.Equipment) string { return str(e.Model) },
			func(e entity.Equipment) string { return str(e.SerialNumber) },
			func(e entity.Equipment) string { return str(e.Category) },
			func(e entity.Equipment) string { return str(e.Location) },
		},
		Status:   func(e entity.Equipment) string { return string(e.Status) },
		Statuses: entity.EquipmentStatuses,
	}
}

func ServiceRequestSchema() Schema[entity.ServiceRequest] {
	return Schema[entity.ServiceRequest]{
		Kind: entity.KindServiceRequest,
		Columns: []Column[entity.ServiceRequest]{
			{Title: "Numéro", Width: 20, Value: func(r entity.ServiceRequest) string { return r.RequestNumber }},
			{Title: "Titre", Width: 30, Value: func(r entity.ServiceRequest) string { return r.Title }},
			{Title: "Priorité", Width: 8, Value: func(r entity.ServiceRequest) string { return string(r.Priority) }},
			{Title: "Statut", Width: 10, Value: func(r entity.ServiceRequest) string { return string(r.Status) }},
			{Title: "Date", Width: 10, Value: func(r entity.ServiceRequest) string { return date(&r.RequestDate) }},
		},
		Form: []FieldSpec{
			{Name: "title", Label: "Titre", Required: true},
			{Name: "description", Label: "Description"},
			{Name: "priority", Label: "Priorité", Kind: FieldEnum, Options: entity.Priorities},
			{Name: "clientId", Label: "Client (id)", Kind: FieldNumber},
			{Name: "equipmentId", Label: "Equipement (id)", Kind: FieldNumber},
			{Name: "assignedTo", Label: "Technicien (id)", Kind: FieldNumber},
		},
		Search: []func(entity.ServiceRequest) string{
			func(r entity.ServiceRequest) string { return r.RequestNumber },
			func(r entity.ServiceRequest) string { return r.Title },
			func(r entity.ServiceRequest) string { return str(r.Description) },
		},
		Status:   func(r entity.ServiceRequest) string { return string(r.Status) },
		Statuses: entity.ServiceRequestStatuses,
		Link: func(r entity.ServiceRequest) (string, bool) {
			if r.ClientID != nil {
				return link(entity.KindClient, r.ClientID)
			}

			return link(entity.KindEquipment, r.EquipmentID)
		},
	}
}

func RepairSchema() Schema[entity.Repair] {
	return Schema[entity.Repair]{
		Kind: entity.KindRepair,
		Columns: []Column[entity.Repair]{
			{Title: "Numéro", Width: 20, Value: func(r entity.Repair) string { return r.RepairNumber }},
			{Title: "Description", Width: 30, Value: func(r entity.Repair) string { return r.Description }},
			{Title: "Statut", Width: 13, Value: func(r entity.Repair) string { return string(r.Status) }},
			{Title: "Priorité", Width: 8, Value: func(r entity.Repair) string { return string(r.Priority) }},
			{Title: "Coût", Width: 10, Value: func(r entity.Repair) string { return money(r.Cost) }},
		},
		Form: []FieldSpec{
			{Name: "description", Label: "Description", Required: true},
			{Name: "problemDescription", Label: "Problème"},
			{Name: "status", Label: "Statut", Kind: FieldEnum, Options: entity.RepairStatuses},
			{Name: "priority", Label: "Priorité", Kind: FieldEnum, Options: entity.Priorities},
			{Name: "cost", Label: "Coût", Kind: FieldNumber},
			{Name: "startDate", Label: "Début", Kind: FieldDate},
			{Name: "endDate", Label: "Fin", Kind: FieldDate},
			{Name: "equipmentId", Label: "Equipement (id)", Kind: FieldNumber},
			{Name: "technicianId", Label: "Technicien (id)", Kind: FieldNumber},
		},
		Search: []func(entity.Repair) string{
			func(r entity.Repair) string { return r.RepairNumber },
			func(r entity.Repair) string { return r.Description },
			func(r entity.Repair) string { return str(r.ProblemDescription) },
		},
		Status:   func(r entity.Repair) string { return string(r.Status) },
		Statuses: entity.RepairStatuses,
		Link: func(r entity.Repair) (string, bool) {
			if r.ServiceRequestID != nil {
				return link(entity.KindServiceRequest, r.ServiceRequestID)
			}

			return link(entity.KindEquipment, r.EquipmentID)
		},
	}
}

func RMASchema() Schema[entity.RMA] {
	return Schema[entity.RMA]{
		Kind: entity.KindRMA,
		Columns: []Column[entity.RMA]{
			{Title: "Numéro", Width: 20, Value: func(r entity.RMA) string { return r.RMANumber }},
			{Title: "Motif", Width: 30, Value: func(r entity.RMA) string { return r.Reason }},
			{Title: "Statut", Width: 10, Value: func(r entity.RMA) string { return string(r.Status) }},
			{Title: "Date", Width: 10, Value: func(r entity.RMA) string { return date(&r.RequestDate) }},
		},
		Form: []FieldSpec{
			{Name: "reason", Label: "Motif", Required: true},
			{Name: "status", Label: "Statut", Kind: FieldEnum, Options: entity.RMAStatuses},
			{Name: "priority", Label: "Priorité", Kind: FieldEnum, Options: entity.Priorities},
			{Name: "equipmentId", Label: "Equipement (id)", Kind: FieldNumber},
			{Name: "clientId", Label: "Client (id)", Kind: FieldNumber},
			{Name: "supplierId", Label: "Fournisseur (id)", Kind: FieldNumber},
			{Name: "notes", Label: "Notes"},
		},
		Search: []func(entity.RMA) string{
			func(r entity.RMA) string { return r.RMANumber },
			func(r entity.RMA) string { return r.Reason },
		},
		Status:   func(r entity.RMA) string { return string(r.Status) },
		Statuses: entity.RMAStatuses,
		Link: func(r entity.RMA) (string, bool) {
			if r.SupplierID != nil {
				return link(entity.KindSupplier, r.SupplierID)
			}

			return link(entity.KindClient, r.ClientID)
		},
	}
}

func ClientSchema() Schema[entity.Client] {
	return Schema[entity.Client]{
		Kind: entity.KindClient,
		Columns: []Column[entity.Client]{
			{Title: "Nom", Width: 28, Value: func(c entity.Client) string { return c.Name }},
			{Title: "Type", Width: 13, Value: func(c entity.Client) string { return string(c.Type) }},
			{Title: "Ville", Width: 14, Value: func(c entity.Client) string { return str(c.City) }},
			{Title: "E-mail", Width: 24, Value: func(c entity.Client) string { return str(c.Email) }},
			{Title: "Téléphone", Width: 14, Value: func(c entity.Client) string { return str(c.Phone) }},
		},
		Form: []FieldSpec{
			{Name: "name", Label: "Nom", Required: true},
			{Name: "type", Label: "Type", Kind: FieldEnum, Options: entity.ClientTypes},
			{Name: "email", Label: "E-mail"},
			{Name: "phone", Label: "Téléphone"},
			{Name: "address", Label: "Adresse"},
			{Name: "city", Label: "Ville"},
			{Name: "postalCode", Label: "Code postal"},
			{Name: "country", Label: "Pays"},
			{Name: "active", Label: "Actif", Kind: FieldBool},
			{Name: "notes", Label: "Notes"},
		},
		Search: []func(entity.Client) string{
			func(c entity.Client) string { return c.Name },
			func(c entity.Client) string { return str(c.Email) },
			func(c entity.Client) string { return str(c.Phone) },
			func(c entity.Client) string { return str(c.City) },
		},
		Status:   func(c entity.Client) string { return active(c.Active) },
		Statuses: activeStatuses,
	}
}

func ContractSchema() Schema[entity.Contract] {
	return Schema[entity.Contract]{
		Kind: entity.KindContract,
		Columns: []Column[entity.Contract]{
			{Title: "Numéro", Width: 16, Value: func(c entity.Contract) string { return c.ContractNumber }},
			{Title: "Type", Width: 12, Value: func(c entity.Contract) string { return string(c.Type) }},
			{Title: "Statut", Width: 10, Value: func(c entity.Contract) string { return string(c.Status) }},
			{Title: "Début", Width: 10, Value: func(c entity.Contract) string { return date(&c.StartDate) }},
			{Title: "Fin", Width: 10, Value: func(c entity.Contract) string { return date(c.EndDate) }},
			{Title: "Montant", Width: 10, Value: func(c entity.Contract) string { return money(c.Amount) }},
		},
		Form: []FieldSpec{
			{Name: "contractNumber", Label: "Numéro", Required: true},
			{Name: "clientId", Label: "Client (id)", Kind: FieldNumber, Required: true},
			{Name: "type", Label: "Type", Kind: FieldEnum, Options: entity.ContractTypes},
			{Name: "status", Label: "Statut", Kind: FieldEnum, Options: entity.ContractStatuses},
			{Name: "startDate", Label: "Début", Kind: FieldDate, Required: true},
			{Name: "endDate", Label: "Fin", Kind: FieldDate},
			{Name: "amount", Label: "Montant", Kind: FieldNumber},
			{Name: "description", Label: "Description"},
			{Name: "active", Label: "Actif", Kind: FieldBool},
		},
		Search: []func(entity.Contract) string{
			func(c entity.Contract) string { return c.ContractNumber },
			func(c entity.Contract) string { return str(c.Description) },
		},
		Status:   func(c entity.Contract) string { return string(c.Status) },
		Statuses: entity.ContractStatuses,
		Link: func(c entity.Contract) (string, bool) {
			return link(entity.KindClient, &c.ClientID)
		},
	}
}

func VehicleSchema() Schema[entity.Vehicle] {
	return Schema[entity.Vehicle]{
		Kind: entity.KindVehicle,
		Columns: []Column[entity.Vehicle]{
			{Title: "Nom", Width: 20, Value: func(v entity.Vehicle) string { return v.Name }},
			{Title: "Immatriculation", Width: 15, Value: func(v entity.Vehicle) string { return v.LicensePlate }},
			{Title: "Type", Width: 12, Value: func(v entity.Vehicle) string { return string(v.Type) }},
			{Title: "Statut", Width: 12, Value: func(v entity.Vehicle) string { return string(v.Status) }},
			{Title: "Maintenance", Width: 11, Value: func(v entity.Vehicle) string { return date(v.NextMaintenanceDate) }},
		},
		Form: []FieldSpec{
			{Name: "name", Label: "Nom", Required: true},
			{Name: "licensePlate", Label: "Immatriculation", Required: true},
			{Name: "brand", Label: "Marque", Required: true},
			{Name: "model", Label: "Modèle", Required: true},
			{Name: "type", Label: "Type", Kind: FieldEnum, Options: entity.VehicleTypes},
			{Name: "status", Label: "Statut", Kind: FieldEnum, Options: entity.VehicleStatuses},
			{Name: "fuelType", Label: "Carburant"},
			{Name: "year", Label: "Année", Kind: FieldNumber},
			{Name: "mileage", Label: "Kilométrage", Kind: FieldNumber},
			{Name: "owner", Label: "Propriétaire"},
			{Name: "nextMaintenanceDate", Label: "Prochaine maintenance", Kind: FieldDate},
			{Name: "notes", Label: "Notes"},
		},
		Search: []func(entity.Vehicle) string{
			func(v entity.Vehicle) string { return v.Name },
			func(v entity.Vehicle) string { return v.LicensePlate },
			func(v entity.Vehicle) string { return v.Brand },
			func(v entity.Vehicle) string { return v.Model },
		},
		Status:   func(v entity.Vehicle) string { return string(v.Status) },
		Statuses: entity.VehicleStatuses,
	}
}

func PersonnelSchema() Schema[entity.Personnel] {
	return Schema[entity.Personnel]{
		Kind: entity.KindPersonnel,
		Columns: []Column[entity.Personnel]{
			{Title: "Nom", Width: 18, Value: func(p entity.Personnel) string { return p.LastName }},
			{Title: "Prénom", Width: 16, Value: func(p entity.Personnel) string { return p.FirstName }},
			{Title: "Type", Width: 12, Value: func(p entity.Personnel) string { return string(p.Type) }},
			{Title: "Poste", Width: 18, Value: func(p entity.Personnel) string { return str(p.Position) }},
			{Title: "Statut", Width: 8, Value: func(p entity.Personnel) string { return active(p.Active) }},
		},
		Form: []FieldSpec{
			{Name: "firstName", Label: "Prénom", Required: true},
			{Name: "lastName", Label: "Nom", Required: true},
			{Name: "email", Label: "E-mail"},
			{Name: "phone", Label: "Téléphone"},
			{Name: "type", Label: "Type", Kind: FieldEnum, Options: entity.PersonnelTypes},
			{Name: "position", Label: "Poste"},
			{Name: "active", Label: "Actif", Kind: FieldBool},
			{Name: "hireDate", Label: "Embauche", Kind: FieldDate},
		},
		Search: []func(entity.Personnel) string{
			func(p entity.Personnel) string { return p.FirstName },
			func(p entity.Personnel) string { return p.LastName },
			func(p entity.Personnel) string { return str(p.Email) },
			func(p entity.Personnel) string { return str(p.Position) },
		},
		Status:   func(p entity.Personnel) string { return active(p.Active) },
		Statuses: activeStatuses,
	}
}

func SupplierSchema() Schema[entity.Supplier] {
	return Schema[entity.Supplier]{
		Kind: entity.KindSupplier,
		Columns: []Column[entity.Supplier]{
			{Title: "Nom", Width: 26, Value: func(s entity.Supplier) string { return s.Name }},
			{Title: "Contact", Width: 18, Value: func(s entity.Supplier) string { return str(s.Contact) }},
			{Title: "Téléphone", Width: 14, Value: func(s entity.Supplier) string { return str(s.Phone) }},
			{Title: "E-mail", Width: 24, Value: func(s entity.Supplier) string { return str(s.Email) }},
		},
		Form: []FieldSpec{
			{Name: "name", Label: "Nom", Required: true},
			{Name: "type", Label: "Type"},
			{Name: "contact", Label: "Contact"},
			{Name: "email", Label: "E-mail"},
			{Name: "phone", Label: "Téléphone"},
			{Name: "address", Label: "Adresse"},
			{Name: "city", Label: "Ville"},
			{Name: "postalCode", Label: "Code postal"},
			{Name: "country", Label: "Pays"},
			{Name: "website", Label: "Site web"},
			{Name: "active", Label: "Actif", Kind: FieldBool},
			{Name: "notes", Label: "Notes"},
		},
		Search: []func(entity.Supplier) string{
			func(s entity.Supplier) string { return s.Name },
			func(s entity.Supplier) string { return str(s.Contact) },
			func(s entity.Supplier) string { return str(s.Email) },
		},
		Status:   func(s entity.Supplier) string { return active(s.Active) },
		Statuses: activeStatuses,
	}
}

func ProjectSchema() Schema[entity.Project] {
	return Schema[entity.Project]{
		Kind: entity.KindProject,
		Columns: []Column[entity.Project]{
			{Title: "Numéro", Width: 20, Value: func(p entity.Project) string { return p.ProjectNumber }},
			{Title: "Nom", Width: 28, Value: func(p entity.Project) string { return p.Name }},
			{Title: "Statut", Width: 12, Value: func(p entity.Project) string { return string(p.Status) }},
			{Title: "Début", Width: 10, Value: func(p entity.Project) string { return date(p.StartDate) }},
			{Title: "Budget", Width: 10, Value: func(p entity.Project) string { return money(p.Budget) }},
		},
		Form: []FieldSpec{
			{Name: "name", Label: "Nom", Required: true},
			{Name: "clientId", Label: "Client (id)", Kind: FieldNumber},
			{Name: "status", Label: "Statut", Kind: FieldEnum, Options: entity.ProjectStatuses},
			{Name: "startDate", Label: "Début", Kind: FieldDate},
			{Name: "endDate", Label: "Fin", Kind: FieldDate},
			{Name: "budget", Label: "Budget", Kind: FieldNumber},
			{Name: "description", Label: "Description"},
		},
		Search: []func(entity.Project) string{
			func(p entity.Project) string { return p.ProjectNumber },
			func(p entity.Project) string { return p.Name },
			func(p entity.Project) string { return str(p.Description) },
		},
		Status:   func(p entity.Project) string { return string(p.Status) },
		Statuses: entity.ProjectStatuses,
		Link: func(p entity.Project) (string, bool) {
			return link(entity.KindClient, p.ClientID)
		},
	}
}
