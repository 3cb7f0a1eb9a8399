// Package teamlist реализует HTTP-обработчик списка участников команды.
// Доступен только администраторам.
package teamlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ventureradar/venture-radar/internal/http/response"
	"github.com/ventureradar/venture-radar/internal/lib/sl"
	"github.com/ventureradar/venture-radar/internal/models"
)

// Handler обрабатывает запросы на получение списка участников.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка участников.
type Service interface {
	List(ctx context.Context) ([]*models.TeamMember, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список участников
// @Description Возвращает участников команды. Требует роль администратора.
// @Tags Team
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Список участников"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /team [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.team.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	members, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list team members", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list team members"))
		return
	}

	log.Info("team members listed", slog.Int("count", len(members)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"members": members,
	}))
}
