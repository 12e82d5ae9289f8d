package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/magscene/magsav/internal/entity"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=service.go -destination=../mocks/service.go -package=mocks

type Repository[T entity.Record] interface {
	List(ctx context.Context, filter entity.ListFilter) ([]T, error)
	ByID(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, rec T) (T, error)
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context) (map[string]int, int, error)
}

// MaintainedRepository stores a kind that carries a maintenance schedule.
type MaintainedRepository[T entity.Record] interface {
	Repository[T]
	MaintenanceDue(ctx context.Context, kind entity.Kind, now time.Time) ([]entity.MaintenanceDue, error)
}

type Producer interface {
	SendRecordChanged(ctx context.Context, event entity.RecordEvent)
}

type PhotoStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, string, error)
}

type Repositories struct {
	Clients         Repository[entity.Client]
	Suppliers       Repository[entity.Supplier]
	Equipment       MaintainedRepository[entity.Equipment]
	Vehicles        MaintainedRepository[entity.Vehicle]
	Contracts       Repository[entity.Contract]
	Personnel       Repository[entity.Personnel]
	ServiceRequests Repository[entity.ServiceRequest]
	Repairs         Repository[entity.Repair]
	RMAs            Repository[entity.RMA]
	Projects        Repository[entity.Project]
}

type Service struct {
	Clients         *Catalog[entity.Client]
	Suppliers       *Catalog[entity.Supplier]
	Equipment       *Catalog[entity.Equipment]
	Vehicles        *Catalog[entity.Vehicle]
	Contracts       *Catalog[entity.Contract]
	Personnel       *Catalog[entity.Personnel]
	ServiceRequests *Catalog[entity.ServiceRequest]
	Repairs         *Catalog[entity.Repair]
	RMAs            *Catalog[entity.RMA]
	Projects        *Catalog[entity.Project]

	repos    Repositories
	events   Producer
	photos   PhotoStorage
	now      func() time.Time
	counters []statusCounter
}

type statusCounter interface {
	Kind() entity.Kind
	CountByStatus(ctx context.Context) (map[string]int, int, error)
	setClock(now func() time.Time)
}

// New wires one catalog per kind. photos may be nil when no bucket is configured.
func New(repos Repositories, events Producer, photos PhotoStorage) *Service {
	s := &Service{
		repos:  repos,
		events: events,
		photos: photos,
		now:    time.Now,
	}

	s.Clients = newCatalog(entity.KindClient, repos.Clients, events, defaultClient, ValidateClient)
	s.Suppliers = newCatalog(entity.KindSupplier, repos.Suppliers, events, defaultSupplier, ValidateSupplier)
	s.Equipment = newCatalog[entity.Equipment](entity.KindEquipment, repos.Equipment, events, defaultEquipment, ValidateEquipment)
	s.Vehicles = newCatalog[entity.Vehicle](entity.KindVehicle, repos.Vehicles, events, defaultVehicle, ValidateVehicle)
	s.Contracts = newCatalog(entity.KindContract, repos.Contracts, events, defaultContract, ValidateContract)
	s.Personnel = newCatalog(entity.KindPersonnel, repos.Personnel, events, defaultPersonnel, ValidatePersonnel)
	s.ServiceRequests = newCatalog(
		entity.KindServiceRequest, repos.ServiceRequests, events, defaultServiceRequest, ValidateServiceRequest)
	s.Repairs = newCatalog(entity.KindRepair, repos.Repairs, events, defaultRepair, ValidateRepair)
	s.RMAs = newCatalog(entity.KindRMA, repos.RMAs, events, defaultRMA, ValidateRMA)
	s.Projects = newCatalog(entity.KindProject, repos.Projects, events, defaultProject, ValidateProject)

	s.counters = []statusCounter{
		s.Clients, s.Suppliers, s.Equipment, s.Vehicles, s.Contracts,
		s.Personnel, s.ServiceRequests, s.Repairs, s.RMAs, s.Projects,
	}

	return s
}

// SetClock replaces the time source used for defaults, numbers and events.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now

	for _, c := range s.counters {
		c.setClock(now)
	}
}

func (s *Service) DashboardStats(ctx context.Context) (entity.DashboardStats, error) {
	stats := entity.DashboardStats{
		Totals:   make(map[entity.Kind]int, len(s.counters)),
		ByStatus: make(map[entity.Kind]map[string]int, len(s.counters)),
	}

	for _, c := range s.counters {
		byStatus, total, err := c.CountByStatus(ctx)
		if err != nil {
			return entity.DashboardStats{}, fmt.Errorf("count %s: %w", c.Kind(), err)
		}

		stats.Totals[c.Kind()] = total
		stats.ByStatus[c.Kind()] = byStatus
	}

	return stats, nil
}
