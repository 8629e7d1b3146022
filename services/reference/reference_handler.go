package referenceservice

import (
	"go.uber.org/zap"
	"net/http"
	"oamanager/models"
	"oamanager/utils"
)

type ReferenceHandler struct {
	Service ReferenceService
	Logger  *zap.Logger
}

func NewReferenceHandler(service ReferenceService, logger *zap.Logger) *ReferenceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReferenceHandler{
		Service: service,
		Logger:  logger,
	}
}

type itemsRes[T any] struct {
	Items []T `json:"items"`
}

func (h *ReferenceHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	query := models.UserQuery{
		Q:    utils.QueryString(r, "q"),
		Team: utils.QueryString(r, "team"),
	}
	users, err := h.Service.SearchUsers(r.Context(), query)
	if err != nil {
		utils.HandleStoreError(w, r, h.Logger, err, "user", "")
		return
	}
	utils.RespondJSON(w, http.StatusOK, itemsRes[models.UserRef]{Items: users})
}

func (h *ReferenceHandler) SearchAssets(w http.ResponseWriter, r *http.Request) {
	refs, err := h.Service.SearchAssets(r.Context(), utils.QueryString(r, "q"))
	if err != nil {
		utils.HandleStoreError(w, r, h.Logger, err, "asset", "")
		return
	}
	utils.RespondJSON(w, http.StatusOK, itemsRes[models.AssetRef]{Items: refs})
}

func (h *ReferenceHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.DashboardStats(r.Context())
	if err != nil {
		utils.HandleStoreError(w, r, h.Logger, err, "dashboard", "")
		return
	}
	utils.RespondJSON(w, http.StatusOK, stats)
}
