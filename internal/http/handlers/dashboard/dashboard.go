// Package dashboard реализует HTTP-обработчик сводки дашборда:
// счетчики каталога и лента последних дайджестов.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ventureradar/venture-radar/internal/http/middlewarectx"
	"github.com/ventureradar/venture-radar/internal/http/response"
	"github.com/ventureradar/venture-radar/internal/lib/sl"
	"github.com/ventureradar/venture-radar/internal/models"
	dashboardservice "github.com/ventureradar/venture-radar/internal/services/dashboard"
)

// Handler обрабатывает запросы сводки дашборда.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики сводки.
type Service interface {
	Summary(ctx context.Context, record models.SessionRecord) (*dashboardservice.Summary, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Сводка дашборда
// @Description Возвращает счетчики каталога, текущий тариф и последние дайджесты.
// @Tags Dashboard
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Сводка"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dashboard/digest [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard"

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

	summary, err := h.service.Summary(r.Context(), *record)
	if err != nil {
		log.Error("failed to build summary", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build summary"))
		return
	}

	log.Info("summary built", slog.String("email", record.Email))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"summary": summary,
	}))
}
