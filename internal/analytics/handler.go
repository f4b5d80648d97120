package analytics

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/hospital-workforce/internal/accesscontrol"
	"github.com/frahmantamala/hospital-workforce/internal/auth"
	"github.com/frahmantamala/hospital-workforce/internal/transport"
	"github.com/frahmantamala/hospital-workforce/pkg/logger"
)

type ServiceAPI interface {
	Summarize(ctx context.Context, actor *accesscontrol.Actor, requestedHospitalID string) (*Summary, error)
}

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

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	summary, err := h.Service.Summarize(r.Context(), actor, r.URL.Query().Get("hospital_id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"data": summary})
}
