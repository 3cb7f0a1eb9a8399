// Package settingsread реализует HTTP-обработчик чтения настроек.
//
// Вкладка краулера возвращается только администраторам.
package settingsread

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
	settingsservice "github.com/ventureradar/venture-radar/internal/services/settings"
)

// Handler обрабатывает запросы на чтение настроек.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения настроек.
type Service interface {
	Get(ctx context.Context, record models.SessionRecord) (*settingsservice.Settings, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Прочитать настройки
// @Description Возвращает настройки профиля и уведомлений; настройки краулера — только администраторам.
// @Tags Settings
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Настройки пользователя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /settings [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.settings.read"

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

	settings, err := h.service.Get(r.Context(), *record)
	if err != nil {
		log.Error("failed to read settings", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read settings"))
		return
	}

	log.Info("settings read", slog.String("email", record.Email))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"settings": settings,
	}))
}
