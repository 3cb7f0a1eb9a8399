// Package navigation реализует HTTP-обработчик навигационной панели.
//
// Возвращает фиксированный упорядоченный список пунктов, отфильтрованный
// по роли текущей сессии: пункт Team присутствует только у администраторов.
// Обе раскладки панели (широкая и свёрнутая) строятся из одного списка,
// поэтому расходиться им не из чего.
package navigation

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ventureradar/venture-radar/internal/http/middlewarectx"
	"github.com/ventureradar/venture-radar/internal/http/response"
	"github.com/ventureradar/venture-radar/internal/models"
)

// Entry — один пункт навигации.
type Entry struct {
	Name string `json:"name"` // Отображаемое название
	Path string `json:"path"` // Маршрут экрана
	Icon string `json:"icon"` // Имя иконки для клиента
}

// Фиксированный порядок пунктов; adminOnly помечает пункты,
// видимые только администраторам.
var entries = []struct {
	entry     Entry
	adminOnly bool
}{
	{Entry{Name: "Dashboard", Path: "/dashboard", Icon: "home"}, false},
	{Entry{Name: "VC Directory", Path: "/vcs", Icon: "list"}, false},
	{Entry{Name: "Newsletters", Path: "/newsletters", Icon: "send"}, false},
	{Entry{Name: "Team", Path: "/team", Icon: "users"}, true},
	{Entry{Name: "Subscription", Path: "/subscription", Icon: "credit-card"}, false},
	{Entry{Name: "Settings", Path: "/settings", Icon: "settings"}, false},
}

// EntriesForRole возвращает список пунктов для роли.
func EntriesForRole(role models.Role) []Entry {
	result := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.adminOnly && role != models.RoleAdmin {
			continue
		}
		result = append(result, e.entry)
	}
	return result
}

// Handler обрабатывает HTTP-запросы навигационной панели.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Навигационная панель
// @Description Возвращает пункты навигации для роли текущей сессии и данные для шапки панели.
// @Tags Navigation
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Пункты навигации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /navigation [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.navigation"

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

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"entries": EntriesForRole(record.Role),
		"name":    record.Name,
		"email":   record.Email,
		"tier":    record.Tier,
	}))
}
