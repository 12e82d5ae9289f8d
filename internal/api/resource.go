package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/magscene/magsav/internal/entity"
)

// Catalog is the CRUD surface of one record kind.
type Catalog[T entity.Record] interface {
	Kind() entity.Kind
	List(ctx context.Context, filter entity.ListFilter) ([]T, error)
	Get(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, fields map[string]any) (T, error)
	Update(ctx context.Context, id int64, fields map[string]any) (T, error)
	Delete(ctx context.Context, id int64) error
}

// Resource registers the REST routes of a record kind.
type Resource interface {
	Kind() entity.Kind
	Register(r chi.Router)
}

type resource[T entity.Record] struct {
	c Catalog[T]
}

func NewResource[T entity.Record](c Catalog[T]) Resource {
	return &resource[T]{c: c}
}

func (res *resource[T]) Kind() entity.Kind {
	return res.c.Kind()
}

func (res *resource[T]) Register(r chi.Router) {
	base := "/" + res.c.Kind().String()

	r.Get(base, res.List)
	r.Post(base, res.Create)
	r.Get(base+"/{id}", res.Get)
	r.Put(base+"/{id}", res.Update)
	r.Delete(base+"/{id}", res.Delete)
}

// List godoc
// @Summary      Liste des enregistrements
// @Description  Recherche insensible à la casse sur les colonnes de recherche du type, filtre par statut et client
// @Tags         records
// @Produce      json
// @Param        kind      path   string  true   "Type d'enregistrement" Enums(clients, equipment, vehicles, contracts, personnel, service-requests, repairs, rma, suppliers, projects)
// @Param        search    query  string  false  "Texte recherché"
// @Param        status    query  string  false  "Statut exact"
// @Param        clientId  query  int     false  "Client"
// @Param        limit     query  int     false  "Taille de page (500 par défaut)"
// @Param        page      query  int     false  "Numéro de page"
// @Success      200 {array}  object
// @Failure      400 {object} ResponseError
// @Failure      500 {object} ResponseError
// @Router       /{kind} [get]
func (res *resource[T]) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := parseFilter(r)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	records, err := res.c.List(ctx, filter)
	if err != nil {
		sendServiceErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, records)
}

// Get godoc
// @Summary      Détail d'un enregistrement
// @Tags         records
// @Produce      json
// @Param        kind  path  string  true  "Type d'enregistrement"
// @Param        id    path  int     true  "Identifiant"
// @Success      200 {object} object
// @Failure      404 {object} ResponseError
// @Router       /{kind}/{id} [get]
func (res *resource[T]) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	rec, err := res.c.Get(ctx, id)
	if err != nil {
		sendServiceErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, rec)
}

// Create godoc
// @Summary      Création d'un enregistrement
// @Description  Les champs absents prennent la valeur par défaut du type
// @Tags         records
// @Accept       json
// @Produce      json
// @Param        kind     path  string  true  "Type d'enregistrement"
// @Param        request  body  object  true  "Champs de l'enregistrement"
// @Success      201 {object} object
// @Failure      400 {object} ResponseError
// @Failure      409 {object} ResponseError
// @Router       /{kind} [post]
func (res *resource[T]) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	fields, err := decodeFields(r.Body)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	rec, err := res.c.Create(ctx, fields)
	if err != nil {
		sendServiceErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusCreated, rec)
}

// Update godoc
// @Summary      Modification partielle
// @Description  Seuls les champs présents sont modifiés, null efface un champ optionnel
// @Tags         records
// @Accept       json
// @Produce      json
// @Param        kind     path  string  true  "Type d'enregistrement"
// @Param        id       path  int     true  "Identifiant"
// @Param        request  body  object  true  "Champs modifiés"
// @Success      200 {object} object
// @Failure      400 {object} ResponseError
// @Failure      404 {object} ResponseError
// @Router       /{kind}/{id} [put]
func (res *resource[T]) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	fields, err := decodeFields(r.Body)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	rec, err := res.c.Update(ctx, id, fields)
	if err != nil {
		sendServiceErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, rec)
}

// Delete godoc
// @Summary      Suppression
// @Tags         records
// @Param        kind  path  string  true  "Type d'enregistrement"
// @Param        id    path  int     true  "Identifiant"
// @Success      204
// @Failure      404 {object} ResponseError
// @Router       /{kind}/{id} [delete]
func (res *resource[T]) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	err = res.c.Delete(ctx, id)
	if err != nil {
		sendServiceErr(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
