package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	accounthandler "github.com/interviai/backend/internal/handler/account"
	interviewhandler "github.com/interviai/backend/internal/handler/interview"
	resumehandler "github.com/interviai/backend/internal/handler/resume"
	middlewarePkg "github.com/interviai/backend/internal/middleware"
	accountservice "github.com/interviai/backend/internal/service/account"
	"github.com/interviai/backend/internal/service/relay"
	resumeservice "github.com/interviai/backend/internal/service/resume"
	"github.com/interviai/backend/pkg/utils"
)

// Deps carries the services the router wires into handlers. ResumeSvc and
// Generator are nil when the AI credentials are not configured; the affected
// routes degrade instead of the server refusing to start.
type Deps struct {
	ClientOrigin string
	UploadMax    int64
	AccountSvc   *accountservice.Service
	ResumeSvc    *resumeservice.Service
	RelaySvc     *relay.Service
	Generator    relay.AnswerGenerator
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(deps.ClientOrigin))

	accountHandler := accounthandler.New(deps.AccountSvc)
	interviewHandler := interviewhandler.New(deps.RelaySvc, deps.Generator, deps.ClientOrigin)

	r.Route("/api", func(api chi.Router) {
		accountHandler.RegisterRoutes(api)
		interviewHandler.RegisterRoutes(api)

		if deps.ResumeSvc != nil {
			resumeHandler := resumehandler.New(deps.ResumeSvc, deps.UploadMax)
			resumeHandler.RegisterRoutes(api)
		} else {
			api.Post("/resumeupload", func(w http.ResponseWriter, r *http.Request) {
				utils.RespondError(w, http.StatusServiceUnavailable, "resume processing unavailable")
			})
		}
	})

	return r
}
