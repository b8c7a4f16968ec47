package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/frostvortexog/ZenithWave-Selling-Bot/internal/telegram"
	"github.com/frostvortexog/ZenithWave-Selling-Bot/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type UpdateHandler interface {
	Handle(ctx context.Context, upd *telegram.Update)
}

type Handlers struct {
	bot UpdateHandler
}

func New(bot UpdateHandler) *Handlers {
	return &Handlers{
		bot: bot,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/healthz", h.Health)
	r.Post("/webhook", h.Webhook)

	return r
}

// Webhook receives one Bot API update. It always answers 200 once the
// payload parses, so the provider does not redeliver processed updates.
func (h *Handlers) Webhook(w http.ResponseWriter, r *http.Request) {
	var upd telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		zap.L().Warn("can't decode webhook update", zap.Error(err))
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.bot.Handle(r.Context(), &upd)
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "ok"})
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "ok"})
}
