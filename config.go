package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr      string
	DataDir   string
	UploadDir string
	// APIURL, when set, proxies /api to an external backend instead of
	// serving the built-in one.
	APIURL string
	// AuthKey is required on officer and admin logins.
	AuthKey string
	Seed    bool
}

var cfg Config

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func loadConfig() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Could not load .env: %v", err)
	}
	cfg = Config{
		Addr:      getEnv("GMS_ADDR", ":8080"),
		DataDir:   getEnv("GMS_DATA_DIR", "data"),
		UploadDir: getEnv("GMS_UPLOAD_DIR", "uploads"),
		APIURL:    getEnv("GMS_API_URL", ""),
		AuthKey:   getEnv("GMS_AUTH_KEY", "changeme"),
		Seed:      getEnv("GMS_SEED", "") == "1",
	}
}
