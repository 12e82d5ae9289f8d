package service_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/magscene/magsav/internal/csvimport"
	"github.com/magscene/magsav/internal/entity"
	"github.com/magscene/magsav/internal/mocks"
	"github.com/magscene/magsav/internal/service"
)

var now = time.Date(2025, 10, 20, 9, 30, 0, 0, time.UTC)

type suite struct {
	svc       *service.Service
	clients   *mocks.MockRepository[entity.Client]
	suppliers *mocks.MockRepository[entity.Supplier]
	equipment *mocks.MockMaintainedRepository[entity.Equipment]
	vehicles  *mocks.MockMaintainedRepository[entity.Vehicle]
	requests  *mocks.MockRepository[entity.ServiceRequest]
	repairs   *mocks.MockRepository[entity.Repair]
	rmas      *mocks.MockRepository[entity.RMA]
	producer  *mocks.MockProducer
	photos    *mocks.MockPhotoStorage
}

func newSuite(t *testing.T, withPhotos bool) *suite {
	t.Helper()

	ctrl := gomock.NewController(t)

	s := &suite{
		clients:   mocks.NewMockRepository[entity.Client](ctrl),
		suppliers: mocks.NewMockRepository[entity.Supplier](ctrl),
		equipment: mocks.NewMockMaintainedRepository[entity.Equipment](ctrl),
		vehicles:  mocks.NewMockMaintainedRepository[entity.Vehicle](ctrl),
		requests:  mocks.NewMockRepository[entity.ServiceRequest](ctrl),
		repairs:   mocks.NewMockRepository[entity.Repair](ctrl),
		rmas:      mocks.NewMockRepository[entity.RMA](ctrl),
		producer:  mocks.NewMockProducer(ctrl),
		photos:    mocks.NewMockPhotoStorage(ctrl),
	}

	repos := service.Repositories{
		Clients:         s.clients,
		Suppliers:       s.suppliers,
		Equipment:       s.equipment,
		Vehicles:        s.vehicles,
		Contracts:       mocks.NewMockRepository[entity.Contract](ctrl),
		Personnel:       mocks.NewMockRepository[entity.Personnel](ctrl),
		ServiceRequests: s.requests,
		Repairs:         s.repairs,
		RMAs:            s.rmas,
		Projects:        mocks.NewMockRepository[entity.Project](ctrl),
	}

	var photos service.PhotoStorage
	if withPhotos {
		photos = s.photos
	}

	s.svc = service.New(repos, s.producer, photos)
	s.svc.SetClock(func() time.Time { return now })

	return s
}

func ptr[T any](v T) *T {
	return &v
}

func TestCatalog_CreateAppliesDefaults(t *testing.T) {
	t.Parallel()

	s := newSuite(t, false)
	ctx := context.Background()

	s.clients.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c entity.Client) (entity.Client, error) {
			require.Equal(t, "Alpha", c.Name)
			require.Equal(t, entity.ClientTypeIndividual, c.Type)
			require.True(t, c.Active)
			require.Equal(t, "alpha@example.com", *c.Email)

			c.ID = 1

			return c, nil
		})

	s.producer.EXPECT().SendRecordChanged(gomock.Any(), entity.RecordEvent{
		Kind:   entity.KindClient,
		ID:     1,
		Action: entity.ActionCreated,
		At:     now,
	})

	created, err := s.svc.Clients.Create(ctx, map[string]any{
		"id":    99,
		"name":  "Alpha",
		"email": "alpha@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)
}

func TestCatalog_CreateRejectsInvalid(t *testing.T) {
	t.Parallel()

	s := newSuite(t, false)

	_, err := s.svc.Clients.Create(context.Background(), map[string]any{
		"email": "not-an-email",
		"type":  "UNKNOWN",
	})
	require.ErrorIs(t, err, entity.ErrValidation)

	var verr *entity.ValidationError
	require.True(t, errors.As(err, &verr))

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}

	require.Equal(t, []string{"name", "type", "email"}, fields)
}

func TestCatalog_UpdateMergesFields(t *testing.T) {
	t.Parallel()

	s := newSuite(t, false)
	ctx := context.Background()

	existing := entity.Client{
		ID:     5,
		Name:   "Alpha",
		Type:   entity.ClientTypeCompany,
		Email:  ptr("alpha@example.com"),
		City:   ptr("Paris"),
		Active: true,
	}

	s.clients.EXPECT().ByID(gomock.Any(), int64(5)).Return(existing, nil)
	s.clients.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c entity.Client) (entity.Client, error) {
			require.Equal(t, int64(5), c.ID)
			require.Equal(t, "Alpha", c.Name)
			require.Equal(t, entity.ClientTypeCompany, c.Type)
			require.Equal(t, "Lyon", *c.City)
			require.Nil(t, c.Email)

			return c, nil
		})
	s.producer.EXPECT().SendRecordChanged(gomock.Any(), gomock.Any())

	updated, err := s.svc.Clients.Update(ctx, 5, map[string]any{
		"id":    77,
		"city":  "Lyon",
		"email": nil,
	})
	require.NoError(t, err)
	require.Equal(t, "Lyon", *updated.City)
}

func TestCatalog_UpdateRejectsUnknownField(t *testing.T) {
	t.Parallel()

	s := newSuite(t, false)

	s.clients.EXPECT().ByID(gomock.Any(), int64(5)).Return(entity.Client{
		ID: 5, Name: "Alpha", Type: entity.ClientTypeIndividual,
	}, nil)

	_, err := s.svc.Clients.Update(context.Background(), 5, map[string]any{"colour": "red"})
	require.ErrorIs(t, err, entity.ErrValidation)
	require.Contains(t, err.Error(), "colour")
}

func TestCatalog_UpdateNotFound(t *testing.T) {
	t.Parallel()

	s := newSuite(t, false)

	s.clients.EXPECT().ByID(gomock.Any(), int64(404)).Return(entity.Client{}, entity.ErrNotFound)

	_, err := s.svc.Clients.Update(context.Background(), 404, map[string]any{"name": "x"})
	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestCatalog_DeletePublishes(t *testing.T) {
	t.Parallel()

	s := newSuite(t, false)

	s.repairs.EXPECT().Delete(gomock.Any(), int64(3)).Return(nil)
	s.producer.EXPECT().SendRecordChanged(gomock.Any(), entity.RecordEvent{
		Kind: entity.KindRepair, ID: 3, Action: entity.ActionDeleted, At: now,
	})

	require.NoError(t, s.svc.Repairs.Delete(context.Background(), 3))
}

func TestService_ValidateRequestCreatesRMA(t *testing.T) {
	t.Parallel()

	s := newSuite(t, false)
	ctx := context.Background()

	req := entity.ServiceRequest{
		ID:            7,
		RequestNumber: "SAV-1",
		Title:         "Ampli HS",
		Status:        entity.RequestPending,
		Priority:      entity.PriorityHigh,
		ClientID:      ptr(int64(3)),
		EquipmentID:   ptr(int64(12)),
	}

	s.requests.EXPECT().ByID(gomock.Any(), int64(7)).Return(req, nil)
	s.rmas.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r entity.RMA) (entity.RMA, error) {
			require.True(t, strings.HasPrefix(r.RMANumber, "RMA-251020-"))
			require.Equal(t, "Ampli HS", r.Reason)
			require.Equal(t, entity.RMARequested, r.Status)
			require.Equal(t, entity.PriorityHigh, *r.Priority)
			require.Equal(t, int64(3), *r.ClientID)
			require.Equal(t, int64(7), *r.ServiceRequestID)

			r.ID = 11

			return r, nil
		})
	s.requests.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r entity.ServiceRequest) (entity.ServiceRequest, error) {
			return r, nil
		})
	s.producer.EXPECT().SendRecordChanged(gomock.Any(), gomock.Any()).Times(2)

	validated, err := s.svc.ValidateRequest(ctx, 7, entity.ActionRMA)
	require.NoError(t, err)
	require.Equal(t, entity.RequestValidated, validated.Status)
	require.Equal(t, entity.ActionRMA, *validated.ValidationAction)
	require.Equal(t, int64(11), *validated.RelatedRMAID)
	require.Nil(t, validated.RelatedRepairID)
}

func TestService_ValidateRequestDiagnosticCreatesRepair(t *testing.T) {
	t.Parallel()

	s := newSuite(t, false)

	s.requests.EXPECT().ByID(gomock.Any(), int64(8)).Return(entity.ServiceRequest{
		ID: 8, RequestNumber: "SAV-2", Title: "Bruit", Status: entity.RequestPending, Priority: entity.PriorityLow,
	}, nil)
	s.repairs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r entity.Repair) (entity.Repair, error) {
			require.Equal(t, entity.RepairDiagnostic, r.Status)
			require.Equal(t, entity.PriorityLow, r.Priority)
			require.Equal(t, now, *r.StartDate)

			r.ID = 21

			return r, nil
		})
	s.requests.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r entity.ServiceRequest) (entity.ServiceRequest, error) {
			return r, nil
		})
	s.producer.EXPECT().SendRecordChanged(gomock.Any(), gomock.Any()).Times(2)

	validated, err := s.svc.ValidateRequest(context.Background(), 8, entity.ActionDiagnostic)
	require.NoError(t, err)
	require.Equal(t, int64(21), *validated.RelatedRepairID)
}

func TestService_ValidateRequestScrapRetiresEquipment(t *testing.T) {
	t.Parallel()

	s := newSuite(t, false)

	s.requests.EXPECT().ByID(gomock.Any(), int64(9)).Return(entity.ServiceRequest{
		ID: 9, RequestNumber: "SAV-3", Title: "Cassé", Status: entity.RequestPending,
		Priority: entity.PriorityMedium, EquipmentID: ptr(int64(12)),
	}, nil)
	s.equipment.EXPECT().ByID(gomock.Any(), int64(12)).Return(entity.Equipment{
		ID: 12, Name: "Lyre", Status: entity.EquipmentOutOfOrder,
	}, nil)
	s.equipment.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e entity.Equipment) (entity.Equipment, error) {
			require.Equal(t, entity.EquipmentRetired, e.Status)
			require.Equal(t, "Lyre", e.Name)

			return e, nil
		})
	s.requests.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r entity.ServiceRequest) (entity.ServiceRequest, error) {
			return r, nil
		})
	s.producer.EXPECT().SendRecordChanged(gomock.Any(), gomock.Any()).Times(2)

	validated, err := s.svc.ValidateRequest(context.Background(), 9, entity.ActionScrap)
	require.NoError(t, err)
	require.Equal(t, entity.RequestValidated, validated.Status)
}

func TestService_ValidateRequestConflict(t *testing.T) {
	t.Parallel()

	s := newSuite(t, false)

	s.requests.EXPECT().ByID(gomock.Any(), int64(7)).Return(entity.ServiceRequest{
		ID: 7, Status: entity.RequestValidated,
	}, nil)

	_, err := s.svc.ValidateRequest(context.Background(), 7, entity.ActionRMA)
	require.ErrorIs(t, err, entity.ErrConflict)

	_, err = s.svc.ValidateRequest(context.Background(), 7, entity.ValidationAction("BURN"))
	require.ErrorIs(t, err, entity.ErrValidation)
}

func TestService_AuthorizeRMA(t *testing.T) {
	t.Parallel()

	s := newSuite(t, false)
	ctx := context.Background()

	s.rmas.EXPECT().ByID(gomock.Any(), int64(1)).Return(entity.RMA{
		ID: 1, RMANumber: "RMA-1", Reason: "HS", Status: entity.RMARequested,
	}, nil)
	s.rmas.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r entity.RMA) (entity.RMA, error) {
			return r, nil
		})
	s.producer.EXPECT().SendRecordChanged(gomock.Any(), gomock.Any())

	rma, err := s.svc.AuthorizeRMA(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, entity.RMAApproved, rma.Status)

	s.rmas.EXPECT().ByID(gomock.Any(), int64(2)).Return(entity.RMA{
		ID: 2, RMANumber: "RMA-2", Reason: "HS", Status: entity.RMAShipped,
	}, nil)

	_, err = s.svc.AuthorizeRMA(ctx, 2)
	require.ErrorIs(t, err, entity.ErrConflict)
}

func TestService_ImportProducts(t *testing.T) {
	t.Parallel()

	s := newSuite(t, false)

	table := csvimport.Table{
		Headers: []string{"Nom", "Marque", "Modele", "Prix", "Stock"},
		Rows: [][]string{
			{"Ampli", "Yamaha", "X1", "12,50", "3"},
			{"Console", "", "", "", "abc"},
			{"", "Shure", "SM58", "99", "1"},
		},
	}

	s.equipment.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e entity.Equipment) (entity.Equipment, error) {
			require.Equal(t, "Ampli", e.Name)
			require.Equal(t, "Yamaha", *e.Brand)
			require.True(t, e.PurchasePrice.Equal(decimal.RequireFromString("12.5")))
			require.Equal(t, 3, e.Stock)
			require.Equal(t, entity.EquipmentAvailable, e.Status)

			e.ID = 1

			return e, nil
		})
	s.producer.EXPECT().SendRecordChanged(gomock.Any(), gomock.Any())

	result, err := s.svc.Import(context.Background(), csvimport.TypeProducts, table)
	require.NoError(t, err)
	require.Equal(t, 3, result.Total)
	require.Equal(t, 1, result.Created)
	require.Len(t, result.Errors, 2)
	require.Equal(t, 3, result.Errors[0].Row)
	require.Contains(t, result.Errors[0].Message, "stock")
	require.Equal(t, 4, result.Errors[1].Row)
	require.Contains(t, result.Errors[1].Message, "name")
}

func TestService_ImportRejectsMissingColumns(t *testing.T) {
	t.Parallel()

	s := newSuite(t, false)

	_, err := s.svc.Import(context.Background(), csvimport.TypeClients, csvimport.Table{
		Headers: []string{"nom"},
	})
	require.ErrorIs(t, err, entity.ErrValidation)
	require.ErrorIs(t, err, csvimport.ErrMissingColumns)
}

func TestService_ImportServiceOrderLinksClient(t *testing.T) {
	t.Parallel()

	s := newSuite(t, false)

	table := csvimport.Table{
		Headers: []string{"client_nom", "appareil_marque", "appareil_modele", "symptome", "statut"},
		Rows:    [][]string{{"Dupont", "Shure", "SM58", "Grésille", "pending"}},
	}

	s.clients.EXPECT().List(gomock.Any(), gomock.Any()).Return([]entity.Client{
		{ID: 2, Name: "Dupont Jean"},
		{ID: 4, Name: "dupont"},
	}, nil)
	s.requests.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r entity.ServiceRequest) (entity.ServiceRequest, error) {
			require.Equal(t, "Grésille", r.Title)
			require.Equal(t, "Appareil: Shure SM58", *r.Description)
			require.Equal(t, int64(4), *r.ClientID)
			require.Equal(t, entity.RequestPending, r.Status)
			require.Equal(t, now, r.RequestDate)

			r.ID = 1

			return r, nil
		})
	s.producer.EXPECT().SendRecordChanged(gomock.Any(), gomock.Any())

	result, err := s.svc.Import(context.Background(), csvimport.TypeServiceOrders, table)
	require.NoError(t, err)
	require.Equal(t, 1, result.Created)
	require.Empty(t, result.Errors)
}

func TestService_DashboardStats(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)

	repos := service.Repositories{
		Clients:         mocks.NewMockRepository[entity.Client](ctrl),
		Suppliers:       mocks.NewMockRepository[entity.Supplier](ctrl),
		Equipment:       mocks.NewMockMaintainedRepository[entity.Equipment](ctrl),
		Vehicles:        mocks.NewMockMaintainedRepository[entity.Vehicle](ctrl),
		Contracts:       mocks.NewMockRepository[entity.Contract](ctrl),
		Personnel:       mocks.NewMockRepository[entity.Personnel](ctrl),
		ServiceRequests: mocks.NewMockRepository[entity.ServiceRequest](ctrl),
		Repairs:         mocks.NewMockRepository[entity.Repair](ctrl),
		RMAs:            mocks.NewMockRepository[entity.RMA](ctrl),
		Projects:        mocks.NewMockRepository[entity.Project](ctrl),
	}

	equipment := repos.Equipment.(*mocks.MockMaintainedRepository[entity.Equipment])
	equipment.EXPECT().CountByStatus(gomock.Any()).Return(map[string]int{"AVAILABLE": 4, "RETIRED": 1}, 5, nil)

	repos.Clients.(*mocks.MockRepository[entity.Client]).EXPECT().
		CountByStatus(gomock.Any()).Return(map[string]int{"PARTICULIER": 2}, 2, nil)
	repos.Suppliers.(*mocks.MockRepository[entity.Supplier]).EXPECT().
		CountByStatus(gomock.Any()).Return(map[string]int{}, 3, nil)
	repos.Vehicles.(*mocks.MockMaintainedRepository[entity.Vehicle]).EXPECT().
		CountByStatus(gomock.Any()).Return(map[string]int{}, 0, nil)
	repos.Contracts.(*mocks.MockRepository[entity.Contract]).EXPECT().
		CountByStatus(gomock.Any()).Return(map[string]int{}, 0, nil)
	repos.Personnel.(*mocks.MockRepository[entity.Personnel]).EXPECT().
		CountByStatus(gomock.Any()).Return(map[string]int{}, 0, nil)
	repos.ServiceRequests.(*mocks.MockRepository[entity.ServiceRequest]).EXPECT().
		CountByStatus(gomock.Any()).Return(map[string]int{"PENDING": 1}, 1, nil)
	repos.Repairs.(*mocks.MockRepository[entity.Repair]).EXPECT().
		CountByStatus(gomock.Any()).Return(map[string]int{}, 0, nil)
	repos.RMAs.(*mocks.MockRepository[entity.RMA]).EXPECT().
		CountByStatus(gomock.Any()).Return(map[string]int{}, 0, nil)
	repos.Projects.(*mocks.MockRepository[entity.Project]).EXPECT().
		CountByStatus(gomock.Any()).Return(map[string]int{}, 0, nil)

	stats, err := service.New(repos, nil, nil).DashboardStats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats.Totals, len(entity.Kinds))
	require.Equal(t, 5, stats.Totals[entity.KindEquipment])
	require.Equal(t, 1, stats.ByStatus[entity.KindEquipment]["RETIRED"])
	require.Equal(t, 2, stats.Totals[entity.KindClient])
	require.Equal(t, 3, stats.Totals[entity.KindSupplier])
}

func TestService_NotifyMaintenanceDue(t *testing.T) {
	t.Parallel()

	s := newSuite(t, false)

	s.equipment.EXPECT().MaintenanceDue(gomock.Any(), entity.KindEquipment, now).Return([]entity.MaintenanceDue{
		{Kind: entity.KindEquipment, ID: 4, Name: "Lyre", Due: now.AddDate(0, 0, -2)},
	}, nil)
	s.vehicles.EXPECT().MaintenanceDue(gomock.Any(), entity.KindVehicle, now).Return([]entity.MaintenanceDue{
		{Kind: entity.KindVehicle, ID: 9, Name: "Master", Due: now.AddDate(0, -1, 0)},
	}, nil)
	s.producer.EXPECT().SendRecordChanged(gomock.Any(), entity.RecordEvent{
		Kind: entity.KindEquipment, ID: 4, Action: entity.ActionMaintenanceDue, At: now,
	})
	s.producer.EXPECT().SendRecordChanged(gomock.Any(), entity.RecordEvent{
		Kind: entity.KindVehicle, ID: 9, Action: entity.ActionMaintenanceDue, At: now,
	})

	require.NoError(t, s.svc.NotifyMaintenanceDue(context.Background()))
}

func TestService_UploadEquipmentPhoto(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	disabled := newSuite(t, false)
	_, err := disabled.svc.UploadEquipmentPhoto(ctx, 1, strings.NewReader("img"), 3, "image/png")
	require.ErrorIs(t, err, entity.ErrPhotoStorageDisabled)

	s := newSuite(t, true)

	_, err = s.svc.UploadEquipmentPhoto(ctx, 1, strings.NewReader("img"), 3, "application/pdf")
	require.ErrorIs(t, err, entity.ErrValidation)

	stored := entity.Equipment{ID: 1, Name: "Lyre", Status: entity.EquipmentAvailable}

	var key string

	s.equipment.EXPECT().ByID(gomock.Any(), int64(1)).Return(stored, nil).Times(2)
	s.photos.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), int64(3), "image/png").DoAndReturn(
		func(_ context.Context, k string, _ io.Reader, _ int64, _ string) error {
			key = k
			return nil
		})
	s.equipment.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e entity.Equipment) (entity.Equipment, error) {
			return e, nil
		})
	s.producer.EXPECT().SendRecordChanged(gomock.Any(), gomock.Any())

	updated, err := s.svc.UploadEquipmentPhoto(ctx, 1, strings.NewReader("img"), 3, "image/png")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(key, "equipment/1/"))
	require.True(t, strings.HasSuffix(key, ".png"))
	require.Equal(t, key, *updated.PhotoPath)
}

func TestService_EquipmentPhoto(t *testing.T) {
	t.Parallel()

	s := newSuite(t, true)
	ctx := context.Background()

	s.equipment.EXPECT().ByID(gomock.Any(), int64(1)).Return(entity.Equipment{ID: 1, Name: "Lyre"}, nil)

	_, _, err := s.svc.EquipmentPhoto(ctx, 1)
	require.ErrorIs(t, err, entity.ErrNotFound)

	s.equipment.EXPECT().ByID(gomock.Any(), int64(2)).Return(entity.Equipment{
		ID: 2, Name: "Console", PhotoPath: ptr("equipment/2/a.jpg"),
	}, nil)
	s.photos.EXPECT().Download(gomock.Any(), "equipment/2/a.jpg").
		Return(io.NopCloser(strings.NewReader("jpeg")), "image/jpeg", nil)

	body, contentType, err := s.svc.EquipmentPhoto(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", contentType)

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	require.Equal(t, "jpeg", string(data))
}
