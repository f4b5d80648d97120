package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/hospital-workforce/internal/transport"
	"github.com/frahmantamala/hospital-workforce/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Login: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.Service.Authenticate(dto)
	if err != nil {
		h.Logger.Warn("Login: authentication failed", "email", dto.Email)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("RefreshToken: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	tokens, err := h.Service.RefreshTokens(dto.RefreshToken)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

// Logout is stateless on the server side; clients drop their tokens.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// Me returns the authenticated actor profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	profile, ok := ProfileFromContext(r.Context())
	if !ok || profile == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	h.WriteJSON(w, http.StatusOK, profile)
}

// AuthMiddleware resolves the bearer token to a profile and stores it in
// the request context. Inactive profiles are rejected here so no handler
// ever sees a deactivated actor.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}

		profile, err := h.Service.GetProfile(claims.UserID)
		if err != nil {
			h.Logger.Error("AuthMiddleware: profile lookup failed", "error", err, "user_id", claims.UserID)
			h.HandleServiceError(w, err)
			return
		}

		if !profile.IsActive {
			h.WriteError(w, http.StatusForbidden, "profile is inactive")
			return
		}

		ctx := ContextWithProfile(r.Context(), profile)
		ctx = logger.With(ctx, "userID", profile.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
