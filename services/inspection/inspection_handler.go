package inspectionservice

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"net/http"
	"oamanager/datastore"
	"oamanager/models"
	"oamanager/utils"
)

type InspectionHandler struct {
	Service InspectionService
	Logger  *zap.Logger
}

func NewInspectionHandler(service InspectionService, logger *zap.Logger) *InspectionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InspectionHandler{
		Service: service,
		Logger:  logger,
	}
}

func (h *InspectionHandler) ListInspections(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.InspectionFilter{
		AssetUID:   utils.QueryString(r, "assetUid"),
		Synced:     utils.QueryBool(r, "synced"),
		From:       datastore.ParseTimestamp(q.Get("from")),
		To:         datastore.ParseTimestamp(q.Get("to")),
		Pagination: utils.ParsePagination(r),
	}
	page, err := h.Service.ListInspections(r.Context(), filter)
	if err != nil {
		utils.HandleStoreError(w, r, h.Logger, err, "inspection", "")
		return
	}
	utils.RespondJSON(w, http.StatusOK, page)
}

func (h *InspectionHandler) CreateInspection(w http.ResponseWriter, r *http.Request) {
	var payload models.InspectionPayload
	if err := utils.ParseJSONBody(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "invalid request body")
		return
	}
	ins, err := h.Service.CreateInspection(r.Context(), payload)
	if err != nil {
		utils.HandleStoreError(w, r, h.Logger, err, "inspection", payload.ID)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, ins)
}

func (h *InspectionHandler) UpdateInspection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch models.InspectionPatch
	if err := utils.ParseJSONBody(r, &patch); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "invalid request body")
		return
	}
	ins, err := h.Service.UpdateInspection(r.Context(), id, patch)
	if err != nil {
		utils.HandleStoreError(w, r, h.Logger, err, "inspection", id)
		return
	}
	utils.RespondJSON(w, http.StatusOK, ins)
}

func (h *InspectionHandler) DeleteInspection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existed, err := h.Service.DeleteInspection(r.Context(), id)
	if err != nil {
		utils.HandleStoreError(w, r, h.Logger, err, "inspection", id)
		return
	}
	if !existed {
		utils.RespondNotFound(w, "inspection", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
