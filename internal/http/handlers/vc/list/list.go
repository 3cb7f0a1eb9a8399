// Package list реализует HTTP-обработчик списка фондов с поиском и пагинацией.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ventureradar/venture-radar/internal/http/response"
	"github.com/ventureradar/venture-radar/internal/lib/sl"
	"github.com/ventureradar/venture-radar/internal/models"
)

// Handler обрабатывает запросы списка фондов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка фондов.
type Service interface {
	List(ctx context.Context, filter models.VCFilter) ([]*models.VC, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список фондов
// @Description Возвращает фонды каталога с поиском по подстроке и пагинацией.
// @Tags VCs
// @Produce  json
// @Security BearerAuth
// @Param q query string false "Подстрока поиска"
// @Param limit query int false "Максимум записей"
// @Param offset query int false "Смещение"
// @Success 200 {object} map[string]any "Список фондов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /vcs [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.vc.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := models.VCFilter{Query: r.URL.Query().Get("q")}
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	filter.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	vcs, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list vcs", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list vcs"))
		return
	}

	log.Info("vcs listed", slog.Int("count", len(vcs)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"vcs": vcs,
	}))
}
