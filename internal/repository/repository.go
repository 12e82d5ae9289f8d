package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/magscene/magsav/internal/entity"
)

type Repository struct {
	Clients         *Store[entity.Client]
	Suppliers       *Store[entity.Supplier]
	Equipment       *Store[entity.Equipment]
	Vehicles        *Store[entity.Vehicle]
	Contracts       *Store[entity.Contract]
	Personnel       *Store[entity.Personnel]
	ServiceRequests *Store[entity.ServiceRequest]
	Repairs         *Store[entity.Repair]
	RMAs            *Store[entity.RMA]
	Projects        *Store[entity.Project]
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{
		Clients:         newStore(pool, clientsTable),
		Suppliers:       newStore(pool, suppliersTable),
		Equipment:       newStore(pool, equipmentTable),
		Vehicles:        newStore(pool, vehiclesTable),
		Contracts:       newStore(pool, contractsTable),
		Personnel:       newStore(pool, personnelTable),
		ServiceRequests: newStore(pool, serviceRequestsTable),
		Repairs:         newStore(pool, repairsTable),
		RMAs:            newStore(pool, rmasTable),
		Projects:        newStore(pool, projectsTable),
	}
}
