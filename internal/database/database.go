package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/segmentio/ksuid"

	_ "github.com/lib/pq"
)

// Table Structure:
//
// CREATE TABLE IF NOT EXISTS company (
// 	id CHAR(27) NOT NULL UNIQUE,
// 	slug VARCHAR(255) NOT NULL UNIQUE,
// 	name VARCHAR(255) NOT NULL,
// 	tagline VARCHAR(255) DEFAULT NULL,
// 	brand_primary_color CHAR(7) NOT NULL,
// 	brand_secondary_color CHAR(7) NOT NULL,
// 	logo_image_id CHAR(27) DEFAULT NULL,
// 	banner_image_id CHAR(27) DEFAULT NULL,
// 	culture_video_url VARCHAR(255) DEFAULT NULL,
// 	created_at TIMESTAMP NOT NULL,
// 	updated_at TIMESTAMP NOT NULL,
// 	PRIMARY KEY(id)
// );
// CREATE UNIQUE INDEX company_slug_idx ON company (slug);

// CREATE TABLE IF NOT EXISTS company_section (
// 	id CHAR(27) NOT NULL UNIQUE,
// 	company_id CHAR(27) NOT NULL REFERENCES company (id) ON DELETE CASCADE,
// 	section_type VARCHAR(50) NOT NULL DEFAULT 'custom',
// 	title VARCHAR(255) NOT NULL,
// 	content TEXT DEFAULT NULL,
// 	order_index INTEGER NOT NULL,
// 	created_at TIMESTAMP NOT NULL,
// 	PRIMARY KEY(id)
// );
// CREATE INDEX company_section_company_id_idx ON company_section (company_id);
// CREATE UNIQUE INDEX company_section_order_idx ON company_section (company_id, order_index);

// CREATE TABLE IF NOT EXISTS job (
// 	id CHAR(27) NOT NULL UNIQUE,
// 	company_id CHAR(27) NOT NULL REFERENCES company (id) ON DELETE CASCADE,
// 	title VARCHAR(255) NOT NULL,
// 	location VARCHAR(255) DEFAULT NULL,
// 	job_type VARCHAR(50) DEFAULT 'Full-time',
// 	department VARCHAR(255) DEFAULT NULL,
// 	description TEXT DEFAULT NULL,
// 	requirements TEXT DEFAULT NULL,
// 	is_active BOOLEAN NOT NULL DEFAULT TRUE,
// 	created_at TIMESTAMP NOT NULL,
// 	PRIMARY KEY(id)
// );
// CREATE INDEX job_company_id_idx ON job (company_id);

// CREATE TABLE IF NOT EXISTS users (
// 	id CHAR(27) NOT NULL UNIQUE,
// 	email VARCHAR(255) NOT NULL UNIQUE,
// 	company_id CHAR(27) NOT NULL REFERENCES company (id),
// 	created_at TIMESTAMP NOT NULL,
// 	PRIMARY KEY(id)
// );

// CREATE TABLE IF NOT EXISTS user_sign_on_token (
// 	token CHAR(27) NOT NULL UNIQUE,
// 	email VARCHAR(255) NOT NULL,
// 	created_at TIMESTAMP NOT NULL DEFAULT NOW()
// );
// CREATE UNIQUE INDEX user_sign_on_token_idx ON user_sign_on_token (token);

// CREATE TABLE IF NOT EXISTS image (
// 	id CHAR(27) NOT NULL UNIQUE,
// 	company_id CHAR(27) NOT NULL REFERENCES company (id),
// 	bytes BYTEA NOT NULL,
// 	media_type VARCHAR(100) NOT NULL,
// 	PRIMARY KEY(id)
// );

type Media struct {
	CompanyID string
	Bytes     []byte
	MediaType string
}

func GetDbConn(databaseUser string, databasePassword string, databaseHost string, databasePort string, databaseName string, sslMode string) (*sql.DB, error) {
	databaseURL := fmt.Sprintf("postgres://%v:%v@%v:%v/%v?sslmode=%s",
		databaseUser,
		databasePassword,
		databaseHost,
		databasePort,
		databaseName,
		sslMode,
	)
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	err = db.Ping()
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(20)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

func CloseDbConn(conn *sql.DB) {
	conn.Close()
}

func SaveMedia(conn *sql.DB, media Media) (string, error) {
	mediaID, err := ksuid.NewRandom()
	if err != nil {
		return "", err
	}
	_, err = conn.Exec(`INSERT INTO image (id, company_id, bytes, media_type) VALUES ($1, $2, $3, $4)`, mediaID.String(), media.CompanyID, media.Bytes, media.MediaType)
	if err != nil {
		return "", err
	}
	return mediaID.String(), nil
}

func UpdateMedia(conn *sql.DB, media Media, mediaID string) error {
	_, err := conn.Exec(`UPDATE image SET bytes = $1, media_type = $2 WHERE id = $3`, media.Bytes, media.MediaType, mediaID)
	return err
}

func GetMediaByID(conn *sql.DB, mediaID string) (Media, error) {
	var media Media
	row := conn.QueryRow(`SELECT company_id, bytes, media_type FROM image WHERE id = $1`, mediaID)
	if err := row.Scan(&media.CompanyID, &media.Bytes, &media.MediaType); err != nil {
		return media, err
	}
	return media, nil
}

// DeleteStaleImages removes images no longer referenced by any company
// logo or banner.
func DeleteStaleImages(conn *sql.DB) error {
	stmt := `DELETE FROM image WHERE id NOT IN (SELECT logo_image_id FROM company WHERE logo_image_id IS NOT NULL) AND id NOT IN (SELECT banner_image_id FROM company WHERE banner_image_id IS NOT NULL)`
	_, err := conn.Exec(stmt)
	return err
}
