package handlers

import (
	"net/http"

	"github.com/schoolpay/schoolpay-gobackend/internal/response"
	"github.com/schoolpay/schoolpay-gobackend/internal/services"
	"github.com/schoolpay/schoolpay-gobackend/pkg/log"
)

type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// GenerateNewToken issues a fresh bearer token for the shared backend
// capability.
func (h *AuthHandler) GenerateNewToken(w http.ResponseWriter, r *http.Request) {
	token, err := h.service.GenerateToken()
	if err != nil {
		log.GetLogger().Error().Err(err).Msg("failed to generate token")
		response.Error(w, http.StatusInternalServerError, response.CodeInternal, response.MsgInternal)
		return
	}

	response.Success(w, map[string]string{"token": token})
}
