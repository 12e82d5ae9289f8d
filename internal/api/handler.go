package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/magscene/magsav/internal/csvimport"
	"github.com/magscene/magsav/internal/entity"
)

// MaxPhotoSize bounds an equipment photo upload.
const MaxPhotoSize = 10 << 20

// multipart envelope around the file itself
const formOverhead = 1 << 20

type Service interface {
	DashboardStats(ctx context.Context) (entity.DashboardStats, error)
	ValidateRequest(ctx context.Context, id int64, action entity.ValidationAction) (entity.ServiceRequest, error)
	AuthorizeRMA(ctx context.Context, id int64) (entity.RMA, error)
	Import(ctx context.Context, t csvimport.Type, table csvimport.Table) (entity.ImportResult, error)
	UploadEquipmentPhoto(ctx context.Context, id int64, body io.Reader, size int64, contentType string) (entity.Equipment, error)
	EquipmentPhoto(ctx context.Context, id int64) (io.ReadCloser, string, error)
}

// @title MAGSAV API
// @version 1.0
// @description Back office du service après-vente : parc matériel, demandes SAV, réparations, RMA et import CSV.
// @BasePath /api

type Handler struct {
	s              Service
	importMaxBytes int64
}

func NewHandler(s Service, importMaxBytes int64) *Handler {
	if importMaxBytes <= 0 {
		importMaxBytes = csvimport.MaxFileSize
	}

	return &Handler{
		s:              s,
		importMaxBytes: importMaxBytes,
	}
}

// Health godoc
// @Summary      Etat du service
// @Tags         health
// @Success      200 {string} string "ok"
// @Router       /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, err := w.Write([]byte("ok\n"))
	if err != nil {
		slog.ErrorContext(ctx, "write health", "error", err)
	}
}

// Stats godoc
// @Summary      Compteurs du tableau de bord
// @Description  Nombre d'enregistrements par type et par statut
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} entity.DashboardStats
// @Failure      500 {object} ResponseError
// @Router       /dashboard/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.s.DashboardStats(ctx)
	if err != nil {
		sendServiceErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, stats)
}

type ValidateRequestBody struct {
	Action entity.ValidationAction `json:"action"`
}

// ValidateRequest godoc
// @Summary      Validation d'une demande SAV
// @Description  Clôt le tri d'une demande en attente et crée la suite choisie : réparation, diagnostic, RMA ou mise au rebut
// @Tags         service-requests
// @Accept       json
// @Produce      json
// @Param        id       path  int                  true  "Identifiant de la demande"
// @Param        request  body  ValidateRequestBody  true  "Action"
// @Success      200 {object} entity.ServiceRequest
// @Failure      400 {object} ResponseError
// @Failure      404 {object} ResponseError
// @Failure      409 {object} ResponseError "La demande n'est plus en attente"
// @Router       /service-requests/{id}/validate [post]
func (h *Handler) ValidateRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	var body ValidateRequestBody

	err = json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, fmt.Errorf("%w: %w", entity.ErrIncorrectRequestBody, err), entity.ErrMsgBadRequest)
		return
	}

	req, err := h.s.ValidateRequest(ctx, id, body.Action)
	if err != nil {
		sendServiceErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, req)
}

// AuthorizeRMA godoc
// @Summary      Autorisation d'un RMA
// @Tags         rma
// @Produce      json
// @Param        id  path  int  true  "Identifiant du RMA"
// @Success      200 {object} entity.RMA
// @Failure      404 {object} ResponseError
// @Failure      409 {object} ResponseError "Le RMA n'est plus à l'état demandé"
// @Router       /rma/{id}/authorize [post]
func (h *Handler) AuthorizeRMA(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	rma, err := h.s.AuthorizeRMA(ctx, id)
	if err != nil {
		sendServiceErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, rma)
}

// Import godoc
// @Summary      Import CSV
// @Description  Crée un enregistrement par ligne valide. Les lignes rejetées sont listées avec leur numéro, l'en-tête étant la ligne 1.
// @Tags         import
// @Accept       mpfd
// @Produce      json
// @Param        type  path      string  true  "Type d'import" Enums(clients, fournisseurs, dossiers_sav, produits)
// @Param        file  formData  file    true  "Fichier CSV"
// @Success      200 {object} entity.ImportResult
// @Failure      400 {object} ResponseError
// @Failure      413 {object} ResponseError
// @Router       /import/{type} [post]
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	t := csvimport.Type(chi.URLParam(r, "type"))
	if !t.IsValid() {
		SendErr(ctx, w, http.StatusBadRequest, fmt.Errorf("%w: %q", csvimport.ErrUnknownType, t), entity.ErrMsgBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.importMaxBytes+formOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		sendFormErr(ctx, w, err)
		return
	}
	defer file.Close()

	err = csvimport.CheckUpload(header.Filename, header.Size)
	if err != nil {
		sendImportErr(ctx, w, err)
		return
	}

	table, err := csvimport.Parse(file)
	if err != nil {
		sendImportErr(ctx, w, err)
		return
	}

	result, err := h.s.Import(ctx, t, table)
	if err != nil {
		sendServiceErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, result)
}

// UploadPhoto godoc
// @Summary      Photo d'un équipement
// @Description  Formats acceptés : JPEG, PNG, WebP
// @Tags         equipment
// @Accept       mpfd
// @Produce      json
// @Param        id     path      int   true  "Identifiant de l'équipement"
// @Param        photo  formData  file  true  "Image"
// @Success      200 {object} entity.Equipment
// @Failure      400 {object} ResponseError
// @Failure      404 {object} ResponseError
// @Failure      413 {object} ResponseError
// @Failure      503 {object} ResponseError "Stockage non configuré"
// @Router       /equipment/{id}/photo [put]
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxPhotoSize+formOverhead)

	file, header, err := r.FormFile("photo")
	if err != nil {
		sendFormErr(ctx, w, err)
		return
	}
	defer file.Close()

	if header.Size > MaxPhotoSize {
		SendErr(ctx, w, http.StatusRequestEntityTooLarge, fmt.Errorf("photo of %d bytes", header.Size), "Fichier trop volumineux")
		return
	}

	// the declared part type is not trusted
	head := make([]byte, 512)

	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		SendErr(ctx, w, http.StatusBadRequest, fmt.Errorf("%w: %w", entity.ErrIncorrectRequestBody, err), entity.ErrMsgBadRequest)
		return
	}

	contentType := http.DetectContentType(head[:n])
	body := io.MultiReader(bytes.NewReader(head[:n]), file)

	equipment, err := h.s.UploadEquipmentPhoto(ctx, id, body, header.Size, contentType)
	if err != nil {
		sendServiceErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, equipment)
}

// Photo godoc
// @Summary      Télécharge la photo d'un équipement
// @Tags         equipment
// @Produce      image/jpeg,image/png,image/webp
// @Param        id  path  int  true  "Identifiant de l'équipement"
// @Success      200 {file} binary
// @Failure      404 {object} ResponseError
// @Failure      503 {object} ResponseError "Stockage non configuré"
// @Router       /equipment/{id}/photo [get]
func (h *Handler) Photo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	body, contentType, err := h.s.EquipmentPhoto(ctx, id)
	if err != nil {
		sendServiceErr(ctx, w, err)
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)

	_, err = io.Copy(w, body)
	if err != nil {
		slog.ErrorContext(ctx, "stream photo", "error", err, "equipment_id", id)
	}
}

func sendFormErr(ctx context.Context, w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		SendErr(ctx, w, http.StatusRequestEntityTooLarge, err, "Fichier trop volumineux")
		return
	}

	SendErr(ctx, w, http.StatusBadRequest, fmt.Errorf("%w: %w", entity.ErrIncorrectRequestBody, err), entity.ErrMsgBadRequest)
}

func sendImportErr(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, csvimport.ErrTooLarge):
		SendErr(ctx, w, http.StatusRequestEntityTooLarge, err, "Fichier trop volumineux")
	case errors.Is(err, csvimport.ErrNotCSV), errors.Is(err, csvimport.ErrEmpty):
		SendErr(ctx, w, http.StatusBadRequest, err, "Fichier CSV invalide")
	default:
		SendErr(ctx, w, http.StatusBadRequest, fmt.Errorf("%w: %w", entity.ErrIncorrectRequestBody, err), "Fichier CSV invalide")
	}
}
