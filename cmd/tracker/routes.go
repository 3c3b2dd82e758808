package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	getcases "case-tracker/http-server/cases/get"
	savecases "case-tracker/http-server/cases/save"
	upcases "case-tracker/http-server/cases/update"
	"case-tracker/http-server/downtime"
	"case-tracker/http-server/generate-report/history"
	getproduction "case-tracker/http-server/production/get"
	adminstandards "case-tracker/http-server/standards/admin"
	getstandards "case-tracker/http-server/standards/get"
	getunits "case-tracker/http-server/units/get"
	"case-tracker/internal/config"
	"case-tracker/internal/middleware/auth"
	"case-tracker/internal/service/cases"
	"case-tracker/internal/service/export"
	"case-tracker/internal/service/production"
	"case-tracker/internal/standards"
	"case-tracker/internal/storage"
	"case-tracker/internal/storage/mysql"
	"case-tracker/internal/unitseq"
)

type services struct {
	cases      *cases.Service
	production *production.Service
	export     *export.Service
}

func routes(cfg config.Config, log *slog.Logger, store *mysql.Storage, std *standards.Store, units unitseq.Table, svc services) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// Register
	router.Post("/api/register/calculate", savecases.Calculate(log, svc.cases))
	router.Post("/api/register/cases", savecases.SaveCase(log, svc.cases, storage.KindRegular))

	router.Get("/api/cases/{id}", getcases.GetCase(log, store, storage.KindRegular))
	router.Put("/api/cases/{id}", upcases.UpdateCase(log, svc.cases, storage.KindRegular))
	router.Delete("/api/cases/{id}", upcases.DeleteCase(log, svc.cases, storage.KindRegular))

	// Production
	router.Get("/api/production/daily", getproduction.Daily(log, svc.production))
	router.Get("/api/production/filters", getproduction.Filters(log, store))
	router.Get("/api/production", getproduction.Range(log, svc.production))

	// History
	router.Get("/api/history", getcases.History(log, store))
	router.Get("/api/history/export.csv", history.ExportCSV(log, svc.export))
	router.Get("/api/history/export.xlsx", history.ExportExcel(log, svc.export))

	// Overtime
	router.Route("/api/overtime", func(r chi.Router) {
		r.Post("/calculate", savecases.Calculate(log, svc.cases))
		r.Post("/cases", savecases.SaveCase(log, svc.cases, storage.KindOvertime))
		r.Get("/cases", getcases.ListByDate(log, store, storage.KindOvertime))
		r.Get("/cases/{id}", getcases.GetCase(log, store, storage.KindOvertime))
		r.Put("/cases/{id}", upcases.UpdateCase(log, svc.cases, storage.KindOvertime))
		r.Delete("/cases/{id}", upcases.DeleteCase(log, svc.cases, storage.KindOvertime))
		r.Get("/daily", getproduction.Overtime(log, svc.production))
	})

	// Downtime
	router.Post("/api/downtimes", downtime.Save(log, svc.cases))
	router.Get("/api/downtimes", downtime.List(log, store))
	router.Get("/api/downtimes/reasons", downtime.Reasons())
	router.Delete("/api/downtimes/{id}", downtime.Delete(log, svc.cases))

	// Units
	router.Get("/api/units/equivalent", getunits.EquivalentUnits(log, units))
	router.Get("/api/units/regions", getunits.Regions(units))

	// Standards, только чтение
	router.Get("/api/standards", getstandards.GetStandards(std))
	router.Get("/api/standards/types", getstandards.GetCaseTypes(std))

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Get("/standards", adminstandards.GetStandards(log, std))
	adminRouter.Put("/standards", adminstandards.SetStandard(log, std))
	adminRouter.Post("/standards/types", adminstandards.AddType(log, std))
	adminRouter.Delete("/standards/{region}", adminstandards.DeleteRegion(log, std))
	adminRouter.Delete("/standards/{region}/{type}", adminstandards.DeleteType(log, std))
	adminRouter.Post("/standards/import", adminstandards.ImportStandards(log, std))
	adminRouter.Get("/standards/export", adminstandards.ExportStandards(log, std))
	adminRouter.Post("/standards/save", adminstandards.SaveStandards(log, std))
	adminRouter.Post("/standards/reload", adminstandards.ReloadStandards(log, std))

	router.Mount("/api/admin", adminRouter)

	return router
}
