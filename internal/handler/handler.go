package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/config"
	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/repository"
	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/simulation"
)

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	repository *repository.Repository
	translator ut.Translator
	store      simulation.Store
	publisher  simulation.Publisher
	runner     *simulation.Runner

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, store simulation.Store, publisher simulation.Publisher) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		config:     cfg,
		repository: repo,
		translator: trans,
		store:      store,
		publisher:  publisher,
		runner:     simulation.NewRunner(simulation.DefaultsFromConfig(&cfg.Simulation)),

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)
	h.Mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.config.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           h.config.CORS.MaxAge,
	}))

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/zones", func(r chi.Router) {
			r.Get("/", h.GetAllZones)
			r.With(h.RequiredRole(adminOnly)).Post("/", h.CreateZone)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.zoneInfo)
				r.Get("/", h.GetZone)
				r.With(h.RequiredRole(adminOnly)).Patch("/", h.UpdateZone)
				r.With(h.RequiredRole(adminOnly)).Delete("/", h.DeleteZone)
			})
		})

		r.Route("/simulations", func(r chi.Router) {
			r.Post("/", h.CreateSimulation)
			r.Get("/{id}", h.GetSimulation)
		})
	})
}
