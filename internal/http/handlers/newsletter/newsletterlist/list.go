// Package newsletterlist реализует HTTP-обработчик списка обработанных выпусков.
package newsletterlist

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

// Handler обрабатывает запросы на получение списка выпусков.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка выпусков.
type Service interface {
	List(ctx context.Context, filter models.NewsletterFilter) ([]*models.Newsletter, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список выпусков
// @Description Возвращает обработанные выпуски рассылок, новые сверху.
// @Tags Newsletters
// @Produce  json
// @Security BearerAuth
// @Param q query string false "Подстрока поиска"
// @Param limit query int false "Максимум записей"
// @Param offset query int false "Смещение"
// @Success 200 {object} map[string]any "Список выпусков"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /newsletters [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.newsletter.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := models.NewsletterFilter{Query: r.URL.Query().Get("q")}
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	filter.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	newsletters, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list newsletters", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list newsletters"))
		return
	}

	log.Info("newsletters listed", slog.Int("count", len(newsletters)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"newsletters": newsletters,
	}))
}
