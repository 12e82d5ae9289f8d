package service

import (
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/magscene/magsav/internal/entity"
)

// number builds a business reference such as SAV-251020-1A2B3C4D.
func number(prefix string, now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.Must(uuid.NewV4()).String(), "-", "")[:8])

	return prefix + "-" + now.Format("060102") + "-" + suffix
}

func defaultClient(time.Time) entity.Client {
	return entity.Client{Type: entity.ClientTypeIndividual, Active: true}
}

func defaultSupplier(time.Time) entity.Supplier {
	return entity.Supplier{Active: true}
}

func defaultEquipment(time.Time) entity.Equipment {
	return entity.Equipment{Status: entity.EquipmentAvailable}
}

func defaultVehicle(time.Time) entity.Vehicle {
	return entity.Vehicle{Status: entity.VehicleAvailable}
}

func defaultContract(time.Time) entity.Contract {
	return entity.Contract{Status: entity.ContractDraft, Active: true}
}

func defaultPersonnel(time.Time) entity.Personnel {
	return entity.Personnel{Type: entity.PersonnelPermanent, Active: true}
}

func defaultServiceRequest(now time.Time) entity.ServiceRequest {
	return entity.ServiceRequest{
		RequestNumber: number("SAV", now),
		Status:        entity.RequestPending,
		Priority:      entity.PriorityMedium,
		RequestDate:   now,
	}
}

func defaultRepair(now time.Time) entity.Repair {
	return entity.Repair{
		RepairNumber: number("REP", now),
		Status:       entity.RepairPending,
		Priority:     entity.PriorityMedium,
	}
}

func defaultRMA(now time.Time) entity.RMA {
	return entity.RMA{
		RMANumber:   number("RMA", now),
		Status:      entity.RMARequested,
		RequestDate: now,
	}
}

func defaultProject(now time.Time) entity.Project {
	return entity.Project{
		ProjectNumber: number("PRJ", now),
		Status:        entity.ProjectDraft,
	}
}
