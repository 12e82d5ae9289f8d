package repository

import (
	"context"
	"os"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/require"

	"github.com/magscene/magsav/internal/entity"
	"github.com/magscene/magsav/pkg/postgres"
)

func TestStore_ApplyFilter(t *testing.T) {
	t.Parallel()

	s := &Store[entity.ServiceRequest]{t: serviceRequestsTable}
	clientID := int64(4)

	stmt := sq.Select("id").From(s.t.name).PlaceholderFormat(sq.Dollar)
	stmt = s.applyFilter(stmt, entity.ListFilter{
		Search:   "ampli",
		Status:   "PENDING",
		ClientID: &clientID,
		Page:     2,
		Limit:    50,
	}.Normalize())

	query, args, err := stmt.ToSql()
	require.NoError(t, err)
	require.Contains(t, query, "ILIKE $1")
	require.Contains(t, query, "status = $")
	require.Contains(t, query, "client_id = $")
	require.Contains(t, query, "ORDER BY id ASC LIMIT 50 OFFSET 50")
	require.Equal(t, "%ampli%", args[0])
	require.Contains(t, args, "PENDING")
	require.Contains(t, args, int64(4))
}

func TestStore_ApplyFilterIgnoresMissingColumns(t *testing.T) {
	t.Parallel()

	s := &Store[entity.Supplier]{t: suppliersTable}

	stmt := sq.Select("id").From(s.t.name).PlaceholderFormat(sq.Dollar)
	stmt = s.applyFilter(stmt, entity.ListFilter{Status: "actif"}.Normalize())

	query, args, err := stmt.ToSql()
	require.NoError(t, err)
	require.Equal(t, "SELECT id FROM suppliers ORDER BY id ASC LIMIT 500 OFFSET 0", query)
	require.Empty(t, args)
}

// newTestRepository connects to TEST_POSTGRES_DSN, migrates it and empties
// every table. The test is skipped when the variable is not set.
func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN is not set")
	}

	ctx := context.Background()

	pool, err := postgres.Connect(ctx, dsn, 4)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.UpMigrations(ctx, dsn))

	_, err = pool.Exec(ctx, `TRUNCATE clients, suppliers, equipment, vehicles, contracts, personnel,
		service_requests, repairs, rmas, projects RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return New(pool)
}

func TestStore_CRUD(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	city := "Lyon"

	created, err := repo.Clients.Create(ctx, entity.Client{
		Name:   "Martin Jean",
		Type:   entity.ClientTypeIndividual,
		City:   &city,
		Active: true,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())
	require.Nil(t, created.UpdatedAt)

	got, err := repo.Clients.ByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Lyon", *got.City)

	got.Type = entity.ClientTypeCompany
	got.City = nil

	updated, err := repo.Clients.Update(ctx, got)
	require.NoError(t, err)
	require.Equal(t, entity.ClientTypeCompany, updated.Type)
	require.Nil(t, updated.City)
	require.NotNil(t, updated.UpdatedAt)

	list, err := repo.Clients.List(ctx, entity.ListFilter{Search: "MARTIN"})
	require.NoError(t, err)
	require.Len(t, list, 1)

	counts, total, err := repo.Clients.CountByStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, map[string]int{"ENTREPRISE": 1}, counts)

	require.NoError(t, repo.Clients.Delete(ctx, created.ID))
	require.ErrorIs(t, repo.Clients.Delete(ctx, created.ID), entity.ErrNotFound)

	_, err = repo.Clients.ByID(ctx, created.ID)
	require.ErrorIs(t, err, entity.ErrNotFound)

	_, err = repo.Clients.Update(ctx, updated)
	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestStore_UniqueViolation(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	v := entity.Vehicle{
		Name: "Master", LicensePlate: "AB-123-CD", Brand: "Renault", Model: "Master",
		Type: entity.VehicleVan, Status: entity.VehicleAvailable,
	}

	_, err := repo.Vehicles.Create(ctx, v)
	require.NoError(t, err)

	_, err = repo.Vehicles.Create(ctx, v)
	require.ErrorIs(t, err, entity.ErrAlreadyExists)
}

func TestStore_MaintenanceDue(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	now := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -3)
	future := now.AddDate(0, 1, 0)

	late, err := repo.Equipment.Create(ctx, entity.Equipment{
		Name: "Console SQ6", Status: entity.EquipmentAvailable, NextMaintenanceDate: &past,
	})
	require.NoError(t, err)

	_, err = repo.Equipment.Create(ctx, entity.Equipment{
		Name: "Lyre Robe", Status: entity.EquipmentAvailable, NextMaintenanceDate: &future,
	})
	require.NoError(t, err)

	_, err = repo.Equipment.Create(ctx, entity.Equipment{Name: "Câble DMX", Status: entity.EquipmentAvailable})
	require.NoError(t, err)

	due, err := repo.Equipment.MaintenanceDue(ctx, entity.KindEquipment, now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.Equal(t, late.ID, due[0].ID)
	require.Equal(t, "Console SQ6", due[0].Name)
	require.Equal(t, entity.KindEquipment, due[0].Kind)

	_, err = repo.Clients.MaintenanceDue(ctx, entity.KindClient, now)
	require.Error(t, err)
}
