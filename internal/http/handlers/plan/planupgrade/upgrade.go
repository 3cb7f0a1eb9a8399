// Package planupgrade реализует HTTP-обработчик смены тарифа.
//
// Успешная смена обновляет запись сессии на месте: повторная
// авторизация не требуется, ответ содержит обновленную запись.
package planupgrade

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
	planservice "github.com/ventureradar/venture-radar/internal/services/plan"
)

// Request — тело запроса на смену тарифа.
type Request struct {
	Tier string `json:"tier" validate:"required,oneof=trial basic premium"`
}

// Handler обрабатывает запросы на смену тарифа.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики смены тарифа.
type Service interface {
	Upgrade(ctx context.Context, sessionUID string, record models.SessionRecord, tier models.Tier) (*models.SessionRecord, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Сменить тариф
// @Description Переводит пользователя на выбранный тариф и обновляет запись сессии.
// @Tags Subscription
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Целевой тариф"
// @Success 200 {object} map[string]any "Обновленная запись сессии"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscription/upgrade [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.upgrade"

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

	tier, err := models.ParseTier(req.Tier)
	if err != nil {
		log.Error("unknown tier", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("unknown tier"))
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

	updated, err := h.service.Upgrade(r.Context(), sessionUID, *record, tier)
	if err != nil {
		if errors.Is(err, planservice.ErrUnknownPlan) {
			log.Error("unknown plan", slog.String("tier", req.Tier))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown plan"))
			return
		}
		log.Error("failed to upgrade plan", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not upgrade plan"))
		return
	}

	log.Info("plan upgraded", slog.String("tier", string(tier)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": updated,
	}))
}
