// Package newsletterread реализует HTTP-обработчик получения выпуска по ID.
//
// Отсутствующий ID отвечает 404 с путём возврата к списку выпусков.
package newsletterread

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ventureradar/venture-radar/internal/http/response"
	"github.com/ventureradar/venture-radar/internal/lib/sl"
	"github.com/ventureradar/venture-radar/internal/models"
	newsletterservice "github.com/ventureradar/venture-radar/internal/services/newsletter"
)

// Handler обрабатывает запросы на получение выпуска по ID.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения выпуска.
type Service interface {
	Read(ctx context.Context, id int) (*models.Newsletter, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить выпуск
// @Description Возвращает выпуск рассылки по ID; для отсутствующего ID отвечает 404 с путём возврата к списку.
// @Tags Newsletters
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID выпуска"
// @Success 200 {object} map[string]any "Данные выпуска"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Выпуск не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /newsletters/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.newsletter.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	newsletter, err := h.service.Read(r.Context(), id)
	if err != nil {
		if errors.Is(err, newsletterservice.ErrNotFound) {
			log.Info("newsletter not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.NotFound("newsletter not found", "/newsletters"))
			return
		}
		log.Error("failed to read newsletter", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read newsletter"))
		return
	}

	log.Info("newsletter read", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"newsletter": newsletter,
	}))
}
