// Package middlewarectx содержит HTTP middleware: проверку сессии на каждом
// запросе (route guard), требование роли admin и ограничение частоты запросов.
//
// SessionMiddleware разбирает токен из заголовка Authorization и загружает
// запись сессии из хранилища. Отсутствие записи — единственный признак
// неавторизованного посетителя: такой запрос получает 401 с адресом экрана
// входа, в котором сохранён исходный путь для возврата после входа.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ventureradar/venture-radar/internal/http/response"
	"github.com/ventureradar/venture-radar/internal/lib/jwt"
	"github.com/ventureradar/venture-radar/internal/lib/sl"
	"github.com/ventureradar/venture-radar/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// SessionUID — ключ UID сессии в контексте.
	SessionUID Key = "session_uid"
	// Session — ключ записи сессии в контексте.
	Session Key = "session_record"
)

// SessionStore описывает чтение записи сессии.
type SessionStore interface {
	Get(ctx context.Context, sessionUID string) (*models.SessionRecord, error)
}

// RecordFromContext возвращает запись сессии из контекста запроса.
func RecordFromContext(ctx context.Context) (*models.SessionRecord, bool) {
	record, ok := ctx.Value(Session).(*models.SessionRecord)
	return record, ok
}

// SessionUIDFromContext возвращает UID сессии из контекста запроса.
func SessionUIDFromContext(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(SessionUID).(string)
	return uid, ok
}

// SessionMiddleware возвращает middleware, проверяющий сессию на каждом
// запросе. Невалидный токен, отсутствующая или испорченная запись сессии
// равнозначны: посетитель неавторизован и получает 401 с адресом входа.
func SessionMiddleware(store SessionStore, maker jwt.Maker, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Info("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Unauthorized(r.URL.Path))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := maker.ParseToken(tokenStr)
			if err != nil {
				log.Info("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Unauthorized(r.URL.Path))
				return
			}

			record, err := store.Get(r.Context(), claims.SessionUID)
			if err != nil {
				log.Error("failed to load session record", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}
			if record == nil {
				// Запись уничтожена выходом или отсутствует: токен больше не действует.
				log.Info("session record absent")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Unauthorized(r.URL.Path))
				return
			}

			ctx := context.WithValue(r.Context(), SessionUID, claims.SessionUID)
			ctx = context.WithValue(ctx, Session, record)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
