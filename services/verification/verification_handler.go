package verificationservice

import (
	"fmt"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"io"
	"net/http"
	"oamanager/models"
	"oamanager/utils"
	"strconv"
)

// maxSignatureBytes bounds both the multipart form and the image itself.
const maxSignatureBytes = 10 << 20

type VerificationHandler struct {
	Service VerificationService
	Logger  *zap.Logger
}

func NewVerificationHandler(service VerificationService, logger *zap.Logger) *VerificationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VerificationHandler{
		Service: service,
		Logger:  logger,
	}
}

func (h *VerificationHandler) ListVerifications(w http.ResponseWriter, r *http.Request) {
	filter := models.VerificationFilter{
		Team:       utils.QueryString(r, "team"),
		AssetUID:   utils.QueryString(r, "assetUid"),
		Pagination: utils.ParsePagination(r),
	}
	page, err := h.Service.ListVerifications(r.Context(), filter)
	if err != nil {
		utils.HandleStoreError(w, r, h.Logger, err, "verification", "")
		return
	}
	utils.RespondJSON(w, http.StatusOK, page)
}

func (h *VerificationHandler) GetVerification(w http.ResponseWriter, r *http.Request) {
	assetUID := chi.URLParam(r, "assetUid")
	detail, err := h.Service.GetVerificationDetail(r.Context(), assetUID)
	if err != nil {
		utils.HandleStoreError(w, r, h.Logger, err, "verification", assetUID)
		return
	}
	utils.RespondJSON(w, http.StatusOK, detail)
}

// UploadSignature takes a multipart form with a PNG "file" part and optional
// userId and userName fields.
func (h *VerificationHandler) UploadSignature(w http.ResponseWriter, r *http.Request) {
	assetUID := chi.URLParam(r, "assetUid")
	r.Body = http.MaxBytesReader(w, r.Body, maxSignatureBytes+1<<20)
	if err := r.ParseMultipartForm(maxSignatureBytes); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "file is required")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "file is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxSignatureBytes+1))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "failed to read file")
		return
	}
	if len(content) > maxSignatureBytes {
		utils.RespondError(w, http.StatusBadRequest, nil, "file is too large")
		return
	}

	meta, err := h.Service.UploadSignature(r.Context(), assetUID, SignatureUpload{
		Content:  content,
		UserID:   r.FormValue("userId"),
		UserName: r.FormValue("userName"),
	})
	if err != nil {
		utils.HandleStoreError(w, r, h.Logger, err, "asset", assetUID)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, models.SignatureUploadRes{
		SignatureID:     meta.SignatureID,
		StorageLocation: fmt.Sprintf("/verifications/%s/signatures", assetUID),
	})
}

// GetSignature streams the asset's current signature image.
func (h *VerificationHandler) GetSignature(w http.ResponseWriter, r *http.Request) {
	assetUID := chi.URLParam(r, "assetUid")
	info, body, err := h.Service.OpenSignature(r.Context(), assetUID)
	if err != nil {
		utils.HandleStoreError(w, r, h.Logger, err, "signature", assetUID)
		return
	}
	defer body.Close()

	contentType := info.ContentType
	if contentType == "" {
		contentType = signatureContentType
	}
	w.Header().Set("Content-Type", contentType)
	if info.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		h.Logger.Warn("signature stream interrupted", zap.String("assetUid", assetUID), zap.Error(err))
	}
}

func (h *VerificationHandler) BatchAssign(w http.ResponseWriter, r *http.Request) {
	var req models.BatchAssignReq
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "signatureId is required")
		return
	}
	res, err := h.Service.BatchAssign(r.Context(), req)
	if err != nil {
		utils.HandleStoreError(w, r, h.Logger, err, "signature", req.SignatureID)
		return
	}
	utils.RespondJSON(w, http.StatusOK, res)
}
