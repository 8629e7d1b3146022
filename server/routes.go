package server

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"oamanager/providers/middlewareprovider"
	"oamanager/utils"
	"time"
)

// authRequestsPerMinute caps token requests per client IP.
const authRequestsPerMinute = 20

func (srv *Server) InjectRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewareprovider.Instrument)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: srv.Config.GetCORSOrigins(),
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	//public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/auth", func(a chi.Router) {
		a.Use(httprate.LimitByIP(authRequestsPerMinute, time.Minute))
		a.Post("/token", srv.AuthHandler.IssueToken)
		a.Post("/refresh", srv.AuthHandler.RefreshToken)
	})

	//protected
	r.Group(func(protected chi.Router) {
		protected.Use(srv.Middleware.BearerAuthMiddleware())

		protected.Route("/assets", func(assets chi.Router) {
			assets.Get("/", srv.AssetHandler.ListAssets)
			assets.Post("/", srv.AssetHandler.UpsertAsset)
			assets.Get("/{uid}", srv.AssetHandler.GetAsset)
			assets.Delete("/{uid}", srv.AssetHandler.DeleteAsset)
		})

		protected.Route("/inspections", func(inspections chi.Router) {
			inspections.Get("/", srv.InspectionHandler.ListInspections)
			inspections.Post("/", srv.InspectionHandler.CreateInspection)
			inspections.Patch("/{id}", srv.InspectionHandler.UpdateInspection)
			inspections.Delete("/{id}", srv.InspectionHandler.DeleteInspection)
		})

		protected.Route("/verifications", func(verifications chi.Router) {
			verifications.Get("/", srv.VerificationHandler.ListVerifications)
			verifications.Post("/batch", srv.VerificationHandler.BatchAssign)
			verifications.Get("/{assetUid}", srv.VerificationHandler.GetVerification)
			verifications.Post("/{assetUid}/signatures", srv.VerificationHandler.UploadSignature)
			verifications.Get("/{assetUid}/signatures", srv.VerificationHandler.GetSignature)
		})

		protected.Route("/references", func(references chi.Router) {
			references.Get("/users", srv.ReferenceHandler.SearchUsers)
			references.Get("/assets", srv.ReferenceHandler.SearchAssets)
		})

		protected.Get("/dashboard/stats", srv.ReferenceHandler.DashboardStats)
	})

	return r
}
