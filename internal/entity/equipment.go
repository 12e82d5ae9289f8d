package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type EquipmentStatus string

const (
	EquipmentAvailable   EquipmentStatus = "AVAILABLE"
	EquipmentInUse       EquipmentStatus = "IN_USE"
	EquipmentMaintenance EquipmentStatus = "MAINTENANCE"
	EquipmentOutOfOrder  EquipmentStatus = "OUT_OF_ORDER"
	EquipmentRetired     EquipmentStatus = "RETIRED"
)

var EquipmentStatuses = []string{
	string(EquipmentAvailable),
	string(EquipmentInUse),
	string(EquipmentMaintenance),
	string(EquipmentOutOfOrder),
	string(EquipmentRetired),
}

func (s EquipmentStatus) IsValid() bool {
	switch s {
	case EquipmentAvailable, EquipmentInUse, EquipmentMaintenance, EquipmentOutOfOrder, EquipmentRetired:
		return true
	default:
		return false
	}
}

type Equipment struct {
	ID                  int64            `json:"id"`
	Name                string           `json:"name"`
	Description         *string          `json:"description,omitempty"`
	Category            *string          `json:"category,omitempty"`
	SubCategory         *string          `json:"subCategory,omitempty"`
	Status              EquipmentStatus  `json:"status"`
	InternalReference   *string          `json:"internalReference,omitempty"`
	QRCode              *string          `json:"qrCode,omitempty"`
	Brand               *string          `json:"brand,omitempty"`
	Model               *string          `json:"model,omitempty"`
	SerialNumber        *string          `json:"serialNumber,omitempty"`
	Location            *string          `json:"location,omitempty"`
	PurchasePrice       *decimal.Decimal `json:"purchasePrice,omitempty"`
	PurchaseDate        *time.Time       `json:"purchaseDate,omitempty"`
	Stock               int              `json:"stock"`
	LastMaintenanceDate *time.Time       `json:"lastMaintenanceDate,omitempty"`
	NextMaintenanceDate *time.Time       `json:"nextMaintenanceDate,omitempty"`
	PhotoPath           *string          `json:"photoPath,omitempty"`
	Notes               *string          `json:"notes,omitempty"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           *time.Time       `json:"updatedAt,omitempty"`
}

func (e Equipment) RecordID() int64 { return e.ID }

func (e Equipment) DisplayTitle() string { return e.Name }

// UID is the short label printed on equipment tags: three letters of the
// category (EQP when unknown) followed by the last four digits of the id.
func (e Equipment) UID() string {
	prefix := "EQP"

	if e.Category != nil && *e.Category != "" {
		runes := []rune(strings.ToUpper(*e.Category))
		if len(runes) > 3 {
			runes = runes[:3]
		}

		prefix = string(runes) + strings.Repeat("X", 3-len(runes))
	}

	id := fmt.Sprintf("%04d", e.ID)

	return prefix + id[len(id)-4:]
}

type VehicleType string

const (
	VehicleVan         VehicleType = "VAN"
	VehicleLight       VehicleType = "VL"
	VehicleTruck       VehicleType = "TRUCK"
	VehicleTrailer     VehicleType = "TRAILER"
	VehicleMobileStage VehicleType = "SCENE_MOBILE"
	VehicleCar         VehicleType = "CAR"
	VehicleOther       VehicleType = "OTHER"
)

var VehicleTypes = []string{
	string(VehicleVan),
	string(VehicleLight),
	string(VehicleTruck),
	string(VehicleTrailer),
	string(VehicleMobileStage),
	string(VehicleCar),
	string(VehicleOther),
}

func (t VehicleType) IsValid() bool {
	switch t {
	case VehicleVan, VehicleLight, VehicleTruck, VehicleTrailer, VehicleMobileStage, VehicleCar, VehicleOther:
		return true
	default:
		return false
	}
}

type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "AVAILABLE"
	VehicleInUse       VehicleStatus = "IN_USE"
	VehicleMaintenance VehicleStatus = "MAINTENANCE"
	VehicleOutOfOrder  VehicleStatus = "OUT_OF_ORDER"
	VehicleRentedOut   VehicleStatus = "RENTED_OUT"
	VehicleReserved    VehicleStatus = "RESERVED"
)

var VehicleStatuses = []string{
	string(VehicleAvailable),
	string(VehicleInUse),
	string(VehicleMaintenance),
	string(VehicleOutOfOrder),
	string(VehicleRentedOut),
	string(VehicleReserved),
}

func (s VehicleStatus) IsValid() bool {
	switch s {
	case VehicleAvailable, VehicleInUse, VehicleMaintenance, VehicleOutOfOrder, VehicleRentedOut, VehicleReserved:
		return true
	default:
		return false
	}
}

type Vehicle struct {
	ID                  int64         `json:"id"`
	Name                string        `json:"name"`
	LicensePlate        string        `json:"licensePlate"`
	Brand               string        `json:"brand"`
	Model               string        `json:"model"`
	Type                VehicleType   `json:"type"`
	Status              VehicleStatus `json:"status"`
	FuelType            *string       `json:"fuelType,omitempty"`
	Year                *int          `json:"year,omitempty"`
	Mileage             *int          `json:"mileage,omitempty"`
	Owner               *string       `json:"owner,omitempty"`
	LastMaintenanceDate *time.Time    `json:"lastMaintenanceDate,omitempty"`
	NextMaintenanceDate *time.Time    `json:"nextMaintenanceDate,omitempty"`
	Notes               *string       `json:"notes,omitempty"`
	CreatedAt           time.Time     `json:"createdAt"`
}

func (v Vehicle) RecordID() int64 { return v.ID }

func (v Vehicle) DisplayTitle() string {
	if v.LicensePlate == "" {
		return v.Name
	}

	return v.Name + " (" + v.LicensePlate + ")"
}
