package assetservice

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"net/http"
	"oamanager/models"
	"oamanager/utils"
)

type AssetHandler struct {
	Service AssetService
	Logger  *zap.Logger
}

func NewAssetHandler(service AssetService, logger *zap.Logger) *AssetHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssetHandler{
		Service: service,
		Logger:  logger,
	}
}

func (h *AssetHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	filter := models.AssetFilter{
		Q:          utils.QueryString(r, "q"),
		Status:     utils.QueryString(r, "status"),
		Team:       utils.QueryString(r, "team"),
		Pagination: utils.ParsePagination(r),
	}
	page, err := h.Service.ListAssets(r.Context(), filter)
	if err != nil {
		utils.HandleStoreError(w, r, h.Logger, err, "asset", "")
		return
	}
	utils.RespondJSON(w, http.StatusOK, page)
}

func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	detail, err := h.Service.GetAssetDetail(r.Context(), uid)
	if err != nil {
		utils.HandleStoreError(w, r, h.Logger, err, "asset", uid)
		return
	}
	utils.RespondJSON(w, http.StatusOK, detail)
}

// UpsertAsset answers 201 when the uid was new and 200 when it was patched.
func (h *AssetHandler) UpsertAsset(w http.ResponseWriter, r *http.Request) {
	var payload models.AssetPayload
	if err := utils.ParseJSONBody(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "invalid request body")
		return
	}
	res, err := h.Service.UpsertAsset(r.Context(), payload)
	if err != nil {
		utils.HandleStoreError(w, r, h.Logger, err, "asset", payload.UID)
		return
	}
	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	utils.RespondJSON(w, status, res)
}

func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	res, err := h.Service.DisposeAsset(r.Context(), uid)
	if err != nil {
		utils.HandleStoreError(w, r, h.Logger, err, "asset", uid)
		return
	}
	utils.RespondJSON(w, http.StatusOK, res)
}
