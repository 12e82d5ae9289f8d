package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/magscene/magsav/internal/api"
	"github.com/magscene/magsav/internal/entity"
	"github.com/magscene/magsav/internal/mocks"
	"github.com/magscene/magsav/internal/service"
)

type observed struct {
	method string
	route  string
	code   int
}

type recorder struct {
	mu   sync.Mutex
	seen []observed
}

func (r *recorder) ObserveRequest(method, route string, code int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seen = append(r.seen, observed{method: method, route: route, code: code})
}

type suite struct {
	srv      http.Handler
	metrics  *recorder
	clients  *mocks.MockRepository[entity.Client]
	equip    *mocks.MockMaintainedRepository[entity.Equipment]
	rmas     *mocks.MockRepository[entity.RMA]
	producer *mocks.MockProducer
}

func newSuite(t *testing.T) *suite {
	t.Helper()

	ctrl := gomock.NewController(t)

	s := &suite{
		metrics:  &recorder{},
		clients:  mocks.NewMockRepository[entity.Client](ctrl),
		equip:    mocks.NewMockMaintainedRepository[entity.Equipment](ctrl),
		rmas:     mocks.NewMockRepository[entity.RMA](ctrl),
		producer: mocks.NewMockProducer(ctrl),
	}

	svc := service.New(service.Repositories{
		Clients:         s.clients,
		Suppliers:       mocks.NewMockRepository[entity.Supplier](ctrl),
		Equipment:       s.equip,
		Vehicles:        mocks.NewMockMaintainedRepository[entity.Vehicle](ctrl),
		Contracts:       mocks.NewMockRepository[entity.Contract](ctrl),
		Personnel:       mocks.NewMockRepository[entity.Personnel](ctrl),
		ServiceRequests: mocks.NewMockRepository[entity.ServiceRequest](ctrl),
		Repairs:         mocks.NewMockRepository[entity.Repair](ctrl),
		RMAs:            s.rmas,
		Projects:        mocks.NewMockRepository[entity.Project](ctrl),
	}, s.producer, nil)

	s.srv = api.NewRouter(
		api.NewHandler(svc, 0),
		api.NewMiddleware(s.metrics),
		api.ServiceResources(svc),
		nil,
	)

	return s
}

func (s *suite) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	s.srv.ServeHTTP(rec, req)

	return rec
}

func decodeErr(t *testing.T, rec *httptest.ResponseRecorder) api.ResponseError {
	t.Helper()

	var resp api.ResponseError
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	return resp
}

func TestResource_List(t *testing.T) {
	t.Parallel()

	s := newSuite(t)

	clientID := int64(3)
	s.clients.EXPECT().List(gomock.Any(), entity.ListFilter{
		Search:   "alp",
		Status:   "active",
		ClientID: &clientID,
		Page:     2,
		Limit:    50,
	}).Return([]entity.Client{{ID: 1, Name: "Alpha"}}, nil)

	rec := s.do(t, http.MethodGet, "/api/clients?search=alp&status=active&clientId=3&page=2&limit=50", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []entity.Client
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Equal(t, []entity.Client{{ID: 1, Name: "Alpha"}}, got)

	rec = s.do(t, http.MethodGet, "/api/clients?limit=many", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResource_GetErrors(t *testing.T) {
	t.Parallel()

	s := newSuite(t)

	rec := s.do(t, http.MethodGet, "/api/clients/abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	s.clients.EXPECT().ByID(gomock.Any(), int64(7)).Return(entity.Client{}, entity.ErrNotFound)

	rec = s.do(t, http.MethodGet, "/api/clients/7", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, entity.ErrMsgNotFound, decodeErr(t, rec).Message)
}

func TestResource_CreateValidation(t *testing.T) {
	t.Parallel()

	s := newSuite(t)

	rec := s.do(t, http.MethodPost, "/api/clients", `{"email":"nope"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeErr(t, rec)
	require.Equal(t, entity.ErrMsgValidation, resp.Message)
	require.Equal(t, []entity.FieldError{
		{Field: "name", Message: "champ obligatoire"},
		{Field: "email", Message: "adresse e-mail invalide"},
	}, resp.Fields)

	rec = s.do(t, http.MethodPost, "/api/clients", `[1,2]`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, entity.ErrMsgBadRequest, decodeErr(t, rec).Message)
}

func TestResource_CreateAndUpdate(t *testing.T) {
	t.Parallel()

	s := newSuite(t)

	s.clients.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c entity.Client) (entity.Client, error) {
			c.ID = 12
			return c, nil
		})
	s.producer.EXPECT().SendRecordChanged(gomock.Any(), gomock.Any()).Times(2)

	rec := s.do(t, http.MethodPost, "/api/clients", `{"name":"Alpha"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created entity.Client
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	require.Equal(t, int64(12), created.ID)
	require.Equal(t, entity.ClientTypeIndividual, created.Type)

	s.clients.EXPECT().ByID(gomock.Any(), int64(12)).Return(created, nil).Times(2)
	s.clients.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c entity.Client) (entity.Client, error) {
			return c, nil
		})

	rec = s.do(t, http.MethodPut, "/api/clients/12", `{"city":"Lyon"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated entity.Client
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
	require.Equal(t, "Alpha", updated.Name)
	require.Equal(t, "Lyon", *updated.City)

	rec = s.do(t, http.MethodPut, "/api/clients/12", `{"colour":"red"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResource_Delete(t *testing.T) {
	t.Parallel()

	s := newSuite(t)

	s.equip.EXPECT().Delete(gomock.Any(), int64(5)).Return(nil)
	s.producer.EXPECT().SendRecordChanged(gomock.Any(), gomock.Any())

	rec := s.do(t, http.MethodDelete, "/api/equipment/5", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	s.equip.EXPECT().Delete(gomock.Any(), int64(6)).Return(entity.ErrNotFound)

	rec = s.do(t, http.MethodDelete, "/api/equipment/6", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_AuthorizeRMA(t *testing.T) {
	t.Parallel()

	s := newSuite(t)

	rma := entity.RMA{ID: 4, RMANumber: "RMA-251020-0A1B2C3D", Reason: "Panne", Status: entity.RMARequested}

	s.rmas.EXPECT().ByID(gomock.Any(), int64(4)).Return(rma, nil)
	s.rmas.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r entity.RMA) (entity.RMA, error) {
			return r, nil
		})
	s.producer.EXPECT().SendRecordChanged(gomock.Any(), gomock.Any())

	rec := s.do(t, http.MethodPost, "/api/rma/4/authorize", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got entity.RMA
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Equal(t, entity.RMAApproved, got.Status)

	rma.Status = entity.RMAShipped
	s.rmas.EXPECT().ByID(gomock.Any(), int64(4)).Return(rma, nil)

	rec = s.do(t, http.MethodPost, "/api/rma/4/authorize", "")
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandler_ValidateRequestRejectsAction(t *testing.T) {
	t.Parallel()

	s := newSuite(t)

	rec := s.do(t, http.MethodPost, "/api/service-requests/1/validate", `{"action":"BURN"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, []entity.FieldError{{Field: "action", Message: "valeur invalide"}}, decodeErr(t, rec).Fields)

	rec = s.do(t, http.MethodPost, "/api/service-requests/1/validate", `{`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)

	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return buf, mw.FormDataContentType()
}

func TestHandler_Import(t *testing.T) {
	t.Parallel()

	s := newSuite(t)

	post := func(importType, filename, content string) *httptest.ResponseRecorder {
		body, contentType := multipartBody(t, "file", filename, content)

		req := httptest.NewRequest(http.MethodPost, "/api/import/"+importType, body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		s.srv.ServeHTTP(rec, req)

		return rec
	}

	require.Equal(t, http.StatusBadRequest, post("factures", "a.csv", "x\n").Code)
	require.Equal(t, http.StatusBadRequest, post("clients", "a.txt", "nom\n").Code)
	require.Equal(t, http.StatusBadRequest, post("clients", "a.csv", "").Code)

	rec := post("clients", "a.csv", "nom;prenom\nMartin;Jean\n")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, entity.ErrMsgValidation, decodeErr(t, rec).Message)

	s.clients.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c entity.Client) (entity.Client, error) {
			require.Equal(t, "Martin Jean", c.Name)
			c.ID = 1

			return c, nil
		})
	s.producer.EXPECT().SendRecordChanged(gomock.Any(), gomock.Any())

	rec = post("clients", "a.csv", "nom,prenom,telephone,email,adresse\nMartin,Jean,,,\n,,,broken,\n")
	require.Equal(t, http.StatusOK, rec.Code)

	var result entity.ImportResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	require.Equal(t, 2, result.Total)
	require.Equal(t, 1, result.Created)
	require.Len(t, result.Errors, 1)
	require.Equal(t, 3, result.Errors[0].Row)
}

func TestHandler_PhotoStorageDisabled(t *testing.T) {
	t.Parallel()

	s := newSuite(t)

	body, contentType := multipartBody(t, "photo", "lyre.png", "\x89PNG\r\n\x1a\n0000")

	req := httptest.NewRequest(http.MethodPut, "/api/equipment/1/photo", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	s.srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/equipment/1/photo", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMiddleware_RequestIDAndMetrics(t *testing.T) {
	t.Parallel()

	s := newSuite(t)

	s.clients.EXPECT().ByID(gomock.Any(), int64(7)).Return(entity.Client{ID: 7, Name: "Alpha"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/clients/7", nil)
	req.Header.Set("X-Request-Id", "req-42")

	rec := httptest.NewRecorder()
	s.srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "req-42", rec.Header().Get("X-Request-Id"))

	rec = s.do(t, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	require.Equal(t, []observed{
		{method: http.MethodGet, route: "/api/clients/{id}", code: http.StatusOK},
		{method: http.MethodGet, route: "/api/health", code: http.StatusOK},
	}, s.metrics.seen)
}

func TestMiddleware_Recover(t *testing.T) {
	t.Parallel()

	mw := api.NewMiddleware(nil)

	h := mw.Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, entity.ErrMsgInternal, decodeErr(t, rec).Message)
}
