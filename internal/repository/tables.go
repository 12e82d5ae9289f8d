package repository

import "github.com/magscene/magsav/internal/entity"

var clientsTable = table[entity.Client]{
	name: "clients",
	columns: []string{
		"name", "type", "email", "phone", "address", "city", "postal_code", "country", "active", "notes",
	},
	generated: []string{"created_at", "updated_at"},
	search:    []string{"name", "email", "phone", "city"},
	status:    "type",
	touch:     true,
	values: func(c entity.Client) []any {
		return []any{c.Name, c.Type, c.Email, c.Phone, c.Address, c.City, c.PostalCode, c.Country, c.Active, c.Notes}
	},
	scan: func(c *entity.Client) []any {
		return []any{
			&c.ID, &c.Name, &c.Type, &c.Email, &c.Phone, &c.Address, &c.City, &c.PostalCode, &c.Country,
			&c.Active, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
		}
	},
}

var suppliersTable = table[entity.Supplier]{
	name: "suppliers",
	columns: []string{
		"name", "type", "contact", "email", "phone", "address", "city", "postal_code", "country", "website",
		"active", "notes",
	},
	generated: []string{"created_at"},
	search:    []string{"name", "contact", "email", "city"},
	values: func(s entity.Supplier) []any {
		return []any{
			s.Name, s.Type, s.Contact, s.Email, s.Phone, s.Address, s.City, s.PostalCode, s.Country, s.Website,
			s.Active, s.Notes,
		}
	},
	scan: func(s *entity.Supplier) []any {
		return []any{
			&s.ID, &s.Name, &s.Type, &s.Contact, &s.Email, &s.Phone, &s.Address, &s.City, &s.PostalCode,
			&s.Country, &s.Website, &s.Active, &s.Notes, &s.CreatedAt,
		}
	},
}

var equipmentTable = table[entity.Equipment]{
	name: "equipment",
	columns: []string{
		"name", "description", "category", "sub_category", "status", "internal_reference", "qr_code", "brand",
		"model", "serial_number", "location", "purchase_price", "purchase_date", "stock",
		"last_maintenance_date", "next_maintenance_date", "photo_path", "notes",
	},
	generated:   []string{"created_at", "updated_at"},
	search:      []string{"name", "internal_reference", "serial_number", "brand", "model"},
	status:      "status",
	maintenance: "next_maintenance_date",
	touch:       true,
	values: func(e entity.Equipment) []any {
		return []any{
			e.Name, e.Description, e.Category, e.SubCategory, e.Status, e.InternalReference, e.QRCode, e.Brand,
			e.Model, e.SerialNumber, e.Location, e.PurchasePrice, e.PurchaseDate, e.Stock,
			e.LastMaintenanceDate, e.NextMaintenanceDate, e.PhotoPath, e.Notes,
		}
	},
	scan: func(e *entity.Equipment) []any {
		return []any{
			&e.ID, &e.Name, &e.Description, &e.Category, &e.SubCategory, &e.Status, &e.InternalReference,
			&e.QRCode, &e.Brand, &e.Model, &e.SerialNumber, &e.Location, &e.PurchasePrice, &e.PurchaseDate,
			&e.Stock, &e.LastMaintenanceDate, &e.NextMaintenanceDate, &e.PhotoPath, &e.Notes,
			&e.CreatedAt, &e.UpdatedAt,
		}
	},
}

var vehiclesTable = table[entity.Vehicle]{
	name: "vehicles",
	columns: []string{
		"name", "license_plate", "brand", "model", "type", "status", "fuel_type", "year", "mileage", "owner",
		"last_maintenance_date", "next_maintenance_date", "notes",
	},
	generated:   []string{"created_at"},
	search:      []string{"name", "license_plate", "brand", "model"},
	status:      "status",
	maintenance: "next_maintenance_date",
	values: func(v entity.Vehicle) []any {
		return []any{
			v.Name, v.LicensePlate, v.Brand, v.Model, v.Type, v.Status, v.FuelType, v.Year, v.Mileage, v.Owner,
			v.LastMaintenanceDate, v.NextMaintenanceDate, v.Notes,
		}
	},
	scan: func(v *entity.Vehicle) []any {
		return []any{
			&v.ID, &v.Name, &v.LicensePlate, &v.Brand, &v.Model, &v.Type, &v.Status, &v.FuelType, &v.Year,
			&v.Mileage, &v.Owner, &v.LastMaintenanceDate, &v.NextMaintenanceDate, &v.Notes, &v.CreatedAt,
		}
	},
}

var contractsTable = table[entity.Contract]{
	name: "contracts",
	columns: []string{
		"contract_number", "client_id", "type", "status", "start_date", "end_date", "amount", "description", "active",
	},
	generated: []string{"created_at"},
	search:    []string{"contract_number", "description"},
	status:    "status",
	client:    "client_id",
	values: func(c entity.Contract) []any {
		return []any{
			c.ContractNumber, c.ClientID, c.Type, c.Status, c.StartDate, c.EndDate, c.Amount, c.Description, c.Active,
		}
	},
	scan: func(c *entity.Contract) []any {
		return []any{
			&c.ID, &c.ContractNumber, &c.ClientID, &c.Type, &c.Status, &c.StartDate, &c.EndDate, &c.Amount,
			&c.Description, &c.Active, &c.CreatedAt,
		}
	},
}

var personnelTable = table[entity.Personnel]{
	name:      "personnel",
	columns:   []string{"first_name", "last_name", "email", "phone", "type", "position", "active", "hire_date"},
	generated: []string{"created_at"},
	search:    []string{"first_name", "last_name", "email", "position"},
	status:    "type",
	values: func(p entity.Personnel) []any {
		return []any{p.FirstName, p.LastName, p.Email, p.Phone, p.Type, p.Position, p.Active, p.HireDate}
	},
	scan: func(p *entity.Personnel) []any {
		return []any{
			&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.Type, &p.Position, &p.Active, &p.HireDate,
			&p.CreatedAt,
		}
	},
}

var serviceRequestsTable = table[entity.ServiceRequest]{
	name: "service_requests",
	columns: []string{
		"request_number", "title", "description", "status", "priority", "request_date", "client_id",
		"equipment_id", "assigned_to", "validation_action", "related_repair_id", "related_rma_id",
	},
	search: []string{"request_number", "title", "description"},
	status: "status",
	client: "client_id",
	values: func(r entity.ServiceRequest) []any {
		return []any{
			r.RequestNumber, r.Title, r.Description, r.Status, r.Priority, r.RequestDate, r.ClientID,
			r.EquipmentID, r.AssignedTo, r.ValidationAction, r.RelatedRepairID, r.RelatedRMAID,
		}
	},
	scan: func(r *entity.ServiceRequest) []any {
		return []any{
			&r.ID, &r.RequestNumber, &r.Title, &r.Description, &r.Status, &r.Priority, &r.RequestDate,
			&r.ClientID, &r.EquipmentID, &r.AssignedTo, &r.ValidationAction, &r.RelatedRepairID, &r.RelatedRMAID,
		}
	},
}

var repairsTable = table[entity.Repair]{
	name: "repairs",
	columns: []string{
		"repair_number", "description", "status", "priority", "start_date", "end_date", "cost", "technician_id",
		"equipment_id", "problem_description", "service_request_id",
	},
	search: []string{"repair_number", "description", "problem_description"},
	status: "status",
	values: func(r entity.Repair) []any {
		return []any{
			r.RepairNumber, r.Description, r.Status, r.Priority, r.StartDate, r.EndDate, r.Cost, r.TechnicianID,
			r.EquipmentID, r.ProblemDescription, r.ServiceRequestID,
		}
	},
	scan: func(r *entity.Repair) []any {
		return []any{
			&r.ID, &r.RepairNumber, &r.Description, &r.Status, &r.Priority, &r.StartDate, &r.EndDate, &r.Cost,
			&r.TechnicianID, &r.EquipmentID, &r.ProblemDescription, &r.ServiceRequestID,
		}
	},
}

var rmasTable = table[entity.RMA]{
	name: "rmas",
	columns: []string{
		"rma_number", "reason", "status", "priority", "request_date", "equipment_id", "client_id", "supplier_id",
		"notes", "service_request_id",
	},
	search: []string{"rma_number", "reason", "notes"},
	status: "status",
	client: "client_id",
	values: func(r entity.RMA) []any {
		return []any{
			r.RMANumber, r.Reason, r.Status, r.Priority, r.RequestDate, r.EquipmentID, r.ClientID, r.SupplierID,
			r.Notes, r.ServiceRequestID,
		}
	},
	scan: func(r *entity.RMA) []any {
		return []any{
			&r.ID, &r.RMANumber, &r.Reason, &r.Status, &r.Priority, &r.RequestDate, &r.EquipmentID, &r.ClientID,
			&r.SupplierID, &r.Notes, &r.ServiceRequestID,
		}
	},
}

var projectsTable = table[entity.Project]{
	name: "projects",
	columns: []string{
		"project_number", "name", "client_id", "status", "start_date", "end_date", "budget", "description",
	},
	search: []string{"project_number", "name", "description"},
	status: "status",
	client: "client_id",
	values: func(p entity.Project) []any {
		return []any{p.ProjectNumber, p.Name, p.ClientID, p.Status, p.StartDate, p.EndDate, p.Budget, p.Description}
	},
	scan: func(p *entity.Project) []any {
		return []any{
			&p.ID, &p.ProjectNumber, &p.Name, &p.ClientID, &p.Status, &p.StartDate, &p.EndDate, &p.Budget,
			&p.Description,
		}
	},
}
