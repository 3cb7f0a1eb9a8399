package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/ventureradar/venture-radar/internal/http/response"
	"github.com/ventureradar/venture-radar/internal/models"
)

// RequireAdmin возвращает middleware, пропускающий только сессии с ролью admin.
// Ставится после SessionMiddleware.
func RequireAdmin(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			record, ok := RecordFromContext(r.Context())
			if !ok {
				log.Error("session record missing in context")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Unauthorized(r.URL.Path))
				return
			}
			if record.Role != models.RoleAdmin {
				log.Info("admin access denied", slog.String("email", record.Email))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("admin access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
