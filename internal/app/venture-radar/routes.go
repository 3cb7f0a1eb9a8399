package ventureradar

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/ventureradar/venture-radar/internal/http/handlers/auth/login"
	"github.com/ventureradar/venture-radar/internal/http/handlers/auth/logout"
	"github.com/ventureradar/venture-radar/internal/http/handlers/auth/register"
	dashboardhandler "github.com/ventureradar/venture-radar/internal/http/handlers/dashboard"
	"github.com/ventureradar/venture-radar/internal/http/handlers/health"
	"github.com/ventureradar/venture-radar/internal/http/handlers/navigation"
	"github.com/ventureradar/venture-radar/internal/http/handlers/newsletter/newsletterlist"
	"github.com/ventureradar/venture-radar/internal/http/handlers/newsletter/newsletterread"
	"github.com/ventureradar/venture-radar/internal/http/handlers/plan/planread"
	"github.com/ventureradar/venture-radar/internal/http/handlers/plan/planupgrade"
	"github.com/ventureradar/venture-radar/internal/http/handlers/settings/settingsread"
	"github.com/ventureradar/venture-radar/internal/http/handlers/settings/settingsupdate"
	"github.com/ventureradar/venture-radar/internal/http/handlers/team/teaminvite"
	"github.com/ventureradar/venture-radar/internal/http/handlers/team/teamlist"
	"github.com/ventureradar/venture-radar/internal/http/handlers/team/teamremove"
	"github.com/ventureradar/venture-radar/internal/http/handlers/team/teamrole"
	"github.com/ventureradar/venture-radar/internal/http/handlers/vc/create"
	"github.com/ventureradar/venture-radar/internal/http/handlers/vc/list"
	"github.com/ventureradar/venture-radar/internal/http/handlers/vc/read"
	"github.com/ventureradar/venture-radar/internal/http/handlers/vc/remove"
	"github.com/ventureradar/venture-radar/internal/http/handlers/vc/update"
	"github.com/ventureradar/venture-radar/internal/http/middlewarectx"
	"github.com/ventureradar/venture-radar/internal/http/response"
	"github.com/ventureradar/venture-radar/internal/lib/jwt"
	authservice "github.com/ventureradar/venture-radar/internal/services/auth"
	dashboardservice "github.com/ventureradar/venture-radar/internal/services/dashboard"
	newsletterservice "github.com/ventureradar/venture-radar/internal/services/newsletter"
	planservice "github.com/ventureradar/venture-radar/internal/services/plan"
	settingsservice "github.com/ventureradar/venture-radar/internal/services/settings"
	teamservice "github.com/ventureradar/venture-radar/internal/services/team"
	vcservice "github.com/ventureradar/venture-radar/internal/services/vc"
	"github.com/ventureradar/venture-radar/internal/session"

	"net/http"
)

// RouteDeps — зависимости маршрутов приложения.
type RouteDeps struct {
	Sessions   *session.Store
	JWTMaker   jwt.Maker
	Auth       *authservice.AuthService
	VCs        *vcservice.VCService
	Newsletter *newsletterservice.NewsletterService
	Team       *teamservice.TeamService
	Plans      *planservice.PlanService
	Settings   *settingsservice.SettingsService
	Dashboard  *dashboardservice.DashboardService
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, deps *RouteDeps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, deps.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, deps.Auth).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа за охраной маршрутов: запись сессии проверяется
		// на каждом запросе
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(deps.Sessions, deps.JWTMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/logout", logout.New(logger, deps.Auth).ServeHTTP)
			r.Get("/navigation", navigation.New(logger).ServeHTTP)
			r.Get("/dashboard/digest", dashboardhandler.New(logger, deps.Dashboard).ServeHTTP)

			r.Post("/vcs", create.New(logger, deps.VCs).ServeHTTP)
			r.Get("/vcs", list.New(logger, deps.VCs).ServeHTTP)
			r.Get("/vcs/{id}", read.New(logger, deps.VCs).ServeHTTP)
			r.Put("/vcs/{id}", update.New(logger, deps.VCs).ServeHTTP)
			r.Delete("/vcs/{id}", remove.New(logger, deps.VCs).ServeHTTP)

			r.Get("/newsletters", newsletterlist.New(logger, deps.Newsletter).ServeHTTP)
			r.Get("/newsletters/{id}", newsletterread.New(logger, deps.Newsletter).ServeHTTP)

			r.Get("/subscription", planread.New(logger, deps.Plans).ServeHTTP)
			r.Post("/subscription/upgrade", planupgrade.New(logger, deps.Plans).ServeHTTP)

			r.Get("/settings", settingsread.New(logger, deps.Settings).ServeHTTP)
			r.Put("/settings", settingsupdate.New(logger, deps.Settings).ServeHTTP)

			// Экран команды виден только администраторам
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireAdmin(logger))
				r.Get("/team", teamlist.New(logger, deps.Team).ServeHTTP)
				r.Post("/team/invite", teaminvite.New(logger, deps.Team).ServeHTTP)
				r.Put("/team/{id}/role", teamrole.New(logger, deps.Team).ServeHTTP)
				r.Delete("/team/{id}", teamremove.New(logger, deps.Team).ServeHTTP)
			})
		})
	})

	// Неизвестный путь отвечает 404 с путём возврата на дашборд
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, req, response.NotFound("page not found", response.DefaultLandingPath))
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
