package main

import (
	"log"
	"os"

	"github.com/AdnanSameer1724/careers-page-builder/internal/company"
	"github.com/AdnanSameer1724/careers-page-builder/internal/config"
	"github.com/AdnanSameer1724/careers-page-builder/internal/database"
	"github.com/AdnanSameer1724/careers-page-builder/internal/user"
)

// Provisions a new company tenant along with its first recruiter account.
// Usage: create <company name> <recruiter email>
func main() {
	if len(os.Args) != 3 {
		log.Fatalf("usage: %s <company name> <recruiter email>", os.Args[0])
	}
	companyName := os.Args[1]
	recruiterEmail := os.Args[2]

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("unable to load config %v", err)
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

	companyRepo := company.NewRepository(conn)
	userRepo := user.NewRepository(conn)

	c, err := companyRepo.CreateCompany(companyName, cfg.DefaultPrimaryColor, cfg.DefaultSecondaryColor)
	if err != nil {
		log.Fatalf("unable to create company %q: %v", companyName, err)
	}
	log.Printf("created company %s with slug %s\n", c.ID, c.Slug)

	u, err := userRepo.CreateUser(recruiterEmail, c.ID)
	if err != nil {
		log.Fatalf("unable to create recruiter %q: %v", recruiterEmail, err)
	}
	log.Printf("created recruiter %s for company %s\n", u.Email, c.Slug)
	log.Printf("careers page: %s%s/%s/careers\n", cfg.URLProtocol, cfg.SiteHost, c.Slug)
}
