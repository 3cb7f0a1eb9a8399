// Package settingsupdate реализует HTTP-обработчик сохранения настроек.
//
// Изменение имени синхронизируется с записью сессии; поля краулера
// принимаются только от администраторов.
package settingsupdate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/ventureradar/venture-radar/internal/http/middlewarectx"
	"github.com/ventureradar/venture-radar/internal/http/response"
	"github.com/ventureradar/venture-radar/internal/lib/sl"
	"github.com/ventureradar/venture-radar/internal/models"
	settingsservice "github.com/ventureradar/venture-radar/internal/services/settings"
)

// Request — тело запроса на сохранение настроек.
type Request struct {
	Name           string                  `json:"name" validate:"omitempty,min=2,max=100"`
	DigestEmails   bool                    `json:"digest_emails"`
	ProductUpdates bool                    `json:"product_updates"`
	Crawler        *models.CrawlerSettings `json:"crawler,omitempty"`
}

// Handler обрабатывает запросы на сохранение настроек.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики сохранения настроек.
type Service interface {
	Apply(ctx context.Context, sessionUID string, record models.SessionRecord, update settingsservice.Update) (*models.SessionRecord, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Сохранить настройки
// @Description Сохраняет настройки профиля и уведомлений; настройки краулера принимаются только от администраторов.
// @Tags Settings
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Новые настройки"
// @Success 200 {object} map[string]any "Обновленная запись сессии"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /settings [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.settings.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var validateErrs validator.ValidationErrors
		errors.As(err, &validateErrs)
		log.Error("invalid request", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(validateErrs))
		return
	}

	record, ok := middlewarectx.RecordFromContext(r.Context())
	if !ok {
		log.Error("session record missing in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Unauthorized(r.URL.Path))
		return
	}
	sessionUID, ok := middlewarectx.SessionUIDFromContext(r.Context())
	if !ok {
		log.Error("session uid missing in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Unauthorized(r.URL.Path))
		return
	}

	updated, err := h.service.Apply(r.Context(), sessionUID, *record, settingsservice.Update{
		Name:           req.Name,
		DigestEmails:   req.DigestEmails,
		ProductUpdates: req.ProductUpdates,
		Crawler:        req.Crawler,
	})
	if err != nil {
		log.Error("failed to apply settings", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not apply settings"))
		return
	}

	log.Info("settings applied", slog.String("email", record.Email))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": updated,
	}))
}
