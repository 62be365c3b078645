package main

import (
	"embed"
	"log"
	"net/http"

	"github.com/AdnanSameer1724/careers-page-builder/internal/company"
	"github.com/AdnanSameer1724/careers-page-builder/internal/config"
	"github.com/AdnanSameer1724/careers-page-builder/internal/database"
	"github.com/AdnanSameer1724/careers-page-builder/internal/email"
	"github.com/AdnanSameer1724/careers-page-builder/internal/handler"
	"github.com/AdnanSameer1724/careers-page-builder/internal/job"
	"github.com/AdnanSameer1724/careers-page-builder/internal/section"
	"github.com/AdnanSameer1724/careers-page-builder/internal/server"
	"github.com/AdnanSameer1724/careers-page-builder/internal/template"
	"github.com/AdnanSameer1724/careers-page-builder/internal/user"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

//go:embed static/views
var viewsFS embed.FS

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("unable to load config: %+v", err)
	}
	conn, err := database.GetDbConn(
		cfg.DatabaseUser,
		cfg.DatabasePassword,
		cfg.DatabaseHost,
		cfg.DatabasePort,
		cfg.DatabaseName,
		cfg.DatabaseSSLMode,
	)
	if err != nil {
		log.Fatalf("unable to connect to postgres: %v", err)
	}
	defer database.CloseDbConn(conn)
	emailClient, err := email.NewClient(cfg.EmailAPIKey, cfg.SupportEmail, cfg.NoReplyEmail, cfg.SiteName)
	if err != nil {
		log.Fatalf("unable to initialise email client: %v", err)
	}
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)

	svr := server.NewServer(
		cfg,
		conn,
		mux.NewRouter(),
		template.NewTemplate(viewsFS),
		emailClient,
		sessionStore,
	)

	companyRepo := company.NewRepository(conn)
	sectionRepo := section.NewRepository(conn)
	jobRepo := job.NewRepository(conn)
	userRepo := user.NewRepository(conn)

	svr.RegisterRoute("/sitemap.xml", handler.SitemapIndexHandler(svr, companyRepo), []string{"GET"})
	svr.RegisterRoute("/robots.txt", handler.RobotsTxtHandler, []string{"GET"})

	svr.RegisterPathPrefix("/s/", http.StripPrefix("/s/", http.FileServer(http.Dir("./static/assets"))), []string{"GET"})

	svr.RegisterRoute("/", handler.IndexPageHandler(svr), []string{"GET"})

	//
	// auth routes
	//

	svr.RegisterRoute("/auth", handler.GetAuthPageHandler(svr), []string{"GET"})
	svr.RegisterRoute("/x/auth", handler.RequestTokenSignOn(svr, userRepo), []string{"POST"})
	svr.RegisterRoute("/x/auth/{token}", handler.VerifyTokenSignOn(svr, userRepo, companyRepo), []string{"GET"})

	//
	// company profile
	//

	svr.RegisterRoute("/companies/{slug}", handler.UpdateCompanyHandler(svr, companyRepo), []string{"PUT"})

	//
	// page sections: full replace of a company's ordered section set
	//

	svr.RegisterRoute("/sections", handler.SaveSectionsHandler(svr, sectionRepo), []string{"POST"})

	//
	// job postings
	//

	svr.RegisterRoute("/jobs", handler.CreateJobHandler(svr, jobRepo), []string{"POST"})
	svr.RegisterRoute("/jobs/{id}", handler.UpdateJobHandler(svr, jobRepo), []string{"PUT"})
	svr.RegisterRoute("/jobs/{id}", handler.DeleteJobHandler(svr, jobRepo), []string{"DELETE"})

	//
	// media files (company logos and banners)
	//

	svr.RegisterRoute("/x/s/m", handler.SaveMediaPageHandler(svr), []string{"POST"})
	svr.RegisterRoute("/x/s/m/meta/{slug}", handler.RetrieveMetaImagePageHandler(svr, companyRepo, jobRepo), []string{"GET"})
	svr.RegisterRoute("/x/s/m/{id}", handler.UpdateMediaPageHandler(svr), []string{"PUT"})
	svr.RegisterRoute("/x/s/m/{id}", handler.RetrieveMediaPageHandler(svr), []string{"GET"})

	//
	// machine-triggered maintenance tasks
	//

	svr.RegisterRoute("/x/task/cleanup", handler.TriggerCleanupHandler(svr, userRepo), []string{"POST"})

	//
	// public careers page and recruiter editor
	//

	svr.RegisterRoute("/{slug}/careers", handler.CareersPageHandler(svr, companyRepo, sectionRepo, jobRepo), []string{"GET"})
	svr.RegisterRoute("/{slug}/edit", handler.EditPageHandler(svr, companyRepo, sectionRepo, jobRepo), []string{"GET"})

	log.Fatal(svr.Run())
}
