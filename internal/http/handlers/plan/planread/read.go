// Package planread реализует HTTP-обработчик экрана подписки:
// каталог тарифов и текущий тариф пользователя.
package planread

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ventureradar/venture-radar/internal/http/middlewarectx"
	"github.com/ventureradar/venture-radar/internal/http/response"
	planservice "github.com/ventureradar/venture-radar/internal/services/plan"
)

// Handler обрабатывает запросы на получение каталога тарифов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога тарифов.
type Service interface {
	Plans() []planservice.Plan
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Экран подписки
// @Description Возвращает каталог тарифов и текущий тариф пользователя. Для пробного тарифа включает дату окончания.
// @Tags Subscription
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Каталог тарифов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /subscription [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	record, ok := middlewarectx.RecordFromContext(r.Context())
	if !ok {
		log.Error("session record missing in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Unauthorized(r.URL.Path))
		return
	}

	log.Info("plans read", slog.String("tier", string(record.Tier)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"plans":         h.service.Plans(),
		"current_tier":  record.Tier,
		"trial_ends_at": record.TrialEndsAt,
	}))
}
