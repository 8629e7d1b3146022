package authservice

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"net/http"
	"oamanager/models"
	"oamanager/providers"
	"oamanager/utils"
	"strings"
)

// AuthHandler hands out bearer tokens. Credentials are not checked against a
// directory: any non-blank username and password pair is accepted and the
// username becomes the token subject.
type AuthHandler struct {
	Tokens providers.TokenProvider
	Logger *zap.Logger
}

func NewAuthHandler(tokens providers.TokenProvider, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{
		Tokens: tokens,
		Logger: logger,
	}
}

func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req models.TokenReq
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "invalid request body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Password = strings.TrimSpace(req.Password)
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "username and password are required")
		return
	}
	h.respondToken(w, r, req.Username)
}

// RefreshToken exchanges a live token for a new one with the same subject.
// The presented token is revoked once its replacement is issued.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshReq
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondError(w, http.StatusUnauthorized, err, "refresh_token is required")
		return
	}
	identity, ok := h.Tokens.Verify(r.Context(), req.RefreshToken)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, errors.New("invalid refresh token"), "invalid refresh token")
		return
	}
	if !h.respondToken(w, r, identity) {
		return
	}
	if err := h.Tokens.Revoke(r.Context(), req.RefreshToken); err != nil {
		h.Logger.Warn("failed to revoke refreshed token", zap.String("subject", identity), zap.Error(err))
	}
}

func (h *AuthHandler) respondToken(w http.ResponseWriter, r *http.Request, identity string) bool {
	token, ttl, err := h.Tokens.Issue(r.Context(), identity)
	if err != nil {
		utils.HandleStoreError(w, r, h.Logger, err, "token", "")
		return false
	}
	h.Logger.Info("token issued", zap.String("subject", identity))
	utils.RespondJSON(w, http.StatusOK, models.TokenRes{
		AccessToken: token,
		ExpiresIn:   int(ttl.Seconds()),
	})
	return true
}
