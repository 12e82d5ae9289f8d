package service

import (
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magscene/magsav/internal/entity"
)

const (
	maxNameLen = 255
	minYear    = 1950
)

var phoneRe = regexp.MustCompile(`^\+?[0-9 .\-()]{6,20}$`)

const (
	msgRequired = "champ obligatoire"
	msgTooLong  = "trop long"
	msgInvalid  = "valeur invalide"
	msgEmail    = "adresse e-mail invalide"
	msgPhone    = "numéro de téléphone invalide"
	msgNegative = "doit être positif"
	msgDates    = "doit être postérieure à la date de début"
)

func required(verr *entity.ValidationError, field, value string) {
	value = strings.TrimSpace(value)

	switch {
	case value == "":
		verr.Add(field, msgRequired)
	case len([]rune(value)) > maxNameLen:
		verr.Add(field, msgTooLong)
	}
}

func optionalEmail(verr *entity.ValidationError, field string, value *string) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return
	}

	addr, err := mail.ParseAddress(*value)
	if err != nil || addr.Address != strings.TrimSpace(*value) {
		verr.Add(field, msgEmail)
	}
}

func optionalPhone(verr *entity.ValidationError, field string, value *string) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return
	}

	if !phoneRe.MatchString(strings.TrimSpace(*value)) {
		verr.Add(field, msgPhone)
	}
}

func nonNegative(verr *entity.ValidationError, field string, value *decimal.Decimal) {
	if value != nil && value.IsNegative() {
		verr.Add(field, msgNegative)
	}
}

func dateOrder(verr *entity.ValidationError, field string, start, end *time.Time) {
	if start != nil && end != nil && end.Before(*start) {
		verr.Add(field, msgDates)
	}
}

func ValidateClient(c entity.Client) error {
	verr := &entity.ValidationError{}

	required(verr, "name", c.Name)

	if !c.Type.IsValid() {
		verr.Add("type", msgInvalid)
	}

	optionalEmail(verr, "email", c.Email)
	optionalPhone(verr, "phone", c.Phone)

	return verr.Err()
}

func ValidateSupplier(s entity.Supplier) error {
	verr := &entity.ValidationError{}

	required(verr, "name", s.Name)
	optionalEmail(verr, "email", s.Email)
	optionalPhone(verr, "phone", s.Phone)

	if s.Website != nil && *s.Website != "" &&
		!strings.HasPrefix(*s.Website, "http://") && !strings.HasPrefix(*s.Website, "https://") {
		verr.Add("website", msgInvalid)
	}

	return verr.Err()
}

func ValidateEquipment(e entity.Equipment) error {
	verr := &entity.ValidationError{}

	required(verr, "name", e.Name)

	if !e.Status.IsValid() {
		verr.Add("status", msgInvalid)
	}

	if e.Stock < 0 {
		verr.Add("stock", msgNegative)
	}

	nonNegative(verr, "purchasePrice", e.PurchasePrice)

	return verr.Err()
}

func ValidateVehicle(v entity.Vehicle) error {
	verr := &entity.ValidationError{}

	required(verr, "name", v.Name)
	required(verr, "licensePlate", v.LicensePlate)
	required(verr, "brand", v.Brand)
	required(verr, "model", v.Model)

	if !v.Type.IsValid() {
		verr.Add("type", msgInvalid)
	}

	if !v.Status.IsValid() {
		verr.Add("status", msgInvalid)
	}

	if v.Year != nil && (*v.Year < minYear || *v.Year > time.Now().Year()+1) {
		verr.Add("year", msgInvalid)
	}

	if v.Mileage != nil && *v.Mileage < 0 {
		verr.Add("mileage", msgNegative)
	}

	return verr.Err()
}

func ValidateContract(c entity.Contract) error {
	verr := &entity.ValidationError{}

	required(verr, "contractNumber", c.ContractNumber)

	if c.ClientID <= 0 {
		verr.Add("clientId", msgRequired)
	}

	if !c.Type.IsValid() {
		verr.Add("type", msgInvalid)
	}

	if !c.Status.IsValid() {
		verr.Add("status", msgInvalid)
	}

	if c.StartDate.IsZero() {
		verr.Add("startDate", msgRequired)
	} else {
		dateOrder(verr, "endDate", &c.StartDate, c.EndDate)
	}

	nonNegative(verr, "amount", c.Amount)

	return verr.Err()
}

func ValidatePersonnel(p entity.Personnel) error {
	verr := &entity.ValidationError{}

	required(verr, "firstName", p.FirstName)
	required(verr, "lastName", p.LastName)

	if !p.Type.IsValid() {
		verr.Add("type", msgInvalid)
	}

	optionalEmail(verr, "email", p.Email)
	optionalPhone(verr, "phone", p.Phone)

	return verr.Err()
}

func ValidateServiceRequest(r entity.ServiceRequest) error {
	verr := &entity.ValidationError{}

	required(verr, "requestNumber", r.RequestNumber)
	required(verr, "title", r.Title)

	if !r.Status.IsValid() {
		verr.Add("status", msgInvalid)
	}

	if !r.Priority.IsValid() {
		verr.Add("priority", msgInvalid)
	}

	if r.ValidationAction != nil && !r.ValidationAction.IsValid() {
		verr.Add("validationAction", msgInvalid)
	}

	return verr.Err()
}

func ValidateRepair(r entity.Repair) error {
	verr := &entity.ValidationError{}

	required(verr, "repairNumber", r.RepairNumber)
	required(verr, "description", r.Description)

	if !r.Status.IsValid() {
		verr.Add("status", msgInvalid)
	}

	if !r.Priority.IsValid() {
		verr.Add("priority", msgInvalid)
	}

	nonNegative(verr, "cost", r.Cost)
	dateOrder(verr, "endDate", r.StartDate, r.EndDate)

	return verr.Err()
}

func ValidateRMA(r entity.RMA) error {
	verr := &entity.ValidationError{}

	required(verr, "rmaNumber", r.RMANumber)
	required(verr, "reason", r.Reason)

	if !r.Status.IsValid() {
		verr.Add("status", msgInvalid)
	}

	if r.Priority != nil && !r.Priority.IsValid() {
		verr.Add("priority", msgInvalid)
	}

	return verr.Err()
}

func ValidateProject(p entity.Project) error {
	verr := &entity.ValidationError{}

	required(verr, "projectNumber", p.ProjectNumber)
	required(verr, "name", p.Name)

	if !p.Status.IsValid() {
		verr.Add("status", msgInvalid)
	}

	nonNegative(verr, "budget", p.Budget)
	dateOrder(verr, "endDate", p.StartDate, p.EndDate)

	return verr.Err()
}
