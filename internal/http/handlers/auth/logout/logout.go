// Package logout реализует HTTP-обработчик выхода.
//
// Запись сессии уничтожается до формирования ответа, поэтому главная
// страница никогда не увидит авторизованное состояние после выхода.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ventureradar/venture-radar/internal/http/middlewarectx"
	"github.com/ventureradar/venture-radar/internal/http/response"
	"github.com/ventureradar/venture-radar/internal/lib/sl"
)

// Handler обрабатывает HTTP-запросы выхода.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики выхода.
type Service interface {
	Logout(ctx context.Context, sessionUID string) error
}

// New создает новый Handler с указанными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Выход пользователя
// @Description Уничтожает запись сессии и возвращает адрес главной страницы.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Успешный выход"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sessionUID, ok := middlewarectx.SessionUIDFromContext(r.Context())
	if !ok {
		log.Error("session uid missing in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Unauthorized(r.URL.Path))
		return
	}

	if err := h.service.Logout(r.Context(), sessionUID); err != nil {
		log.Error("failed to clear session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	log.Info("logout success")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"home_url": "/",
	}))
}
