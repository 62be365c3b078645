package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

type Config struct {
	Port                  string
	DatabaseUser          string
	DatabasePassword      string
	DatabaseHost          string
	DatabasePort          string
	DatabaseName          string
	DatabaseSSLMode       string
	SessionKey            []byte
	JwtSigningKey         []byte
	Env                   string // either prod or dev, will disable https and few other bits
	AdminEmail            string
	SupportEmail          string // displayed on the site for support queries
	NoReplyEmail          string // used for transactional emails
	EmailAPIKey           string
	SiteName              string
	SiteHost              string
	MachineToken          string // shared secret for machine-triggered maintenance tasks
	URLProtocol           string
	SentryDSN             string
	DefaultPrimaryColor   string // brand primary color assigned to newly provisioned companies
	DefaultSecondaryColor string // brand secondary color assigned to newly provisioned companies
}

func LoadConfig() (Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		return Config{}, fmt.Errorf("PORT cannot be empty")
	}
	databaseUser := os.Getenv("DATABASE_USER")
	if databaseUser == "" {
		return Config{}, fmt.Errorf("DATABASE_USER cannot be empty")
	}
	databasePassword := os.Getenv("DATABASE_PASSWORD")
	if databasePassword == "" {
		return Config{}, fmt.Errorf("DATABASE_PASSWORD cannot be empty")
	}
	databaseHost := os.Getenv("DATABASE_HOST")
	if databaseHost == "" {
		return Config{}, fmt.Errorf("DATABASE_HOST cannot be empty")
	}
	databasePort := os.Getenv("DATABASE_PORT")
	if databasePort == "" {
		return Config{}, fmt.Errorf("DATABASE_PORT cannot be empty")
	}
	databaseName := os.Getenv("DATABASE_NAME")
	if databaseName == "" {
		return Config{}, fmt.Errorf("DATABASE_NAME cannot be empty")
	}
	databaseSSLMode := os.Getenv("DATABASE_SSL_MODE")
	if databaseSSLMode == "" {
		return Config{}, fmt.Errorf("DATABASE_SSL_MODE cannot be empty")
	}
	env := strings.ToLower(os.Getenv("ENV"))
	if env == "" {
		return Config{}, fmt.Errorf("ENV cannot be empty")
	}
	sessionKeyString := os.Getenv("SESSION_KEY")
	if sessionKeyString == "" {
		return Config{}, fmt.Errorf("SESSION_KEY cannot be empty")
	}
	sessionKeyBytes, err := base64.StdEncoding.DecodeString(sessionKeyString)
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to decode session key to bytes")
	}
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		return Config{}, fmt.Errorf("JWT_SIGNING_KEY cannot be empty")
	}
	jwtSigningKeyBytes, err := base64.StdEncoding.DecodeString(jwtSigningKey)
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to decode jwt signing key to bytes")
	}
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		return Config{}, fmt.Errorf("ADMIN_EMAIL cannot be empty")
	}
	supportEmail := os.Getenv("SUPPORT_EMAIL")
	if supportEmail == "" {
		return Config{}, fmt.Errorf("SUPPORT_EMAIL cannot be empty")
	}
	noReplyEmail := os.Getenv("NO_REPLY_EMAIL")
	if noReplyEmail == "" {
		return Config{}, fmt.Errorf("NO_REPLY_EMAIL cannot be empty")
	}
	emailAPIKey := os.Getenv("EMAIL_API_KEY")
	if emailAPIKey == "" {
		return Config{}, fmt.Errorf("EMAIL_API_KEY cannot be empty")
	}
	siteName := os.Getenv("SITE_NAME")
	if siteName == "" {
		return Config{}, fmt.Errorf("SITE_NAME cannot be empty")
	}
	siteHost := os.Getenv("SITE_HOST")
	if siteHost == "" {
		return Config{}, fmt.Errorf("SITE_HOST cannot be empty")
	}
	machineToken := os.Getenv("MACHINE_TOKEN")
	if machineToken == "" {
		return Config{}, fmt.Errorf("MACHINE_TOKEN cannot be empty")
	}
	sentryDSN := os.Getenv("SENTRY_DSN")
	defaultPrimaryColor := os.Getenv("DEFAULT_PRIMARY_COLOR")
	if defaultPrimaryColor == "" {
		defaultPrimaryColor = "#2563eb"
	}
	defaultSecondaryColor := os.Getenv("DEFAULT_SECONDARY_COLOR")
	if defaultSecondaryColor == "" {
		defaultSecondaryColor = "#1e40af"
	}
	urlProtocol := "http://"
	if !strings.EqualFold(env, "dev") {
		urlProtocol = "https://"
	}

	return Config{
		Port:                  port,
		DatabaseUser:          databaseUser,
		DatabasePassword:      databasePassword,
		DatabaseHost:          databaseHost,
		DatabasePort:          databasePort,
		DatabaseName:          databaseName,
		DatabaseSSLMode:       databaseSSLMode,
		SessionKey:            sessionKeyBytes,
		JwtSigningKey:         jwtSigningKeyBytes,
		Env:                   env,
		AdminEmail:            adminEmail,
		SupportEmail:          supportEmail,
		NoReplyEmail:          noReplyEmail,
		EmailAPIKey:           emailAPIKey,
		SiteName:              siteName,
		SiteHost:              siteHost,
		MachineToken:          machineToken,
		URLProtocol:           urlProtocol,
		SentryDSN:             sentryDSN,
		DefaultPrimaryColor:   defaultPrimaryColor,
		DefaultSecondaryColor: defaultSecondaryColor,
	}, nil
}
