package config

import (
	"os"
	"strings"
)

// Config holds all environment-driven settings for the API.
type Config struct {
	MongoURI      string
	MongoDatabase string
	APIPort       string
	JWTSecret     string

	CloudinaryURL    string
	CloudinaryFolder string

	FirebaseAPIKey          string
	FirebaseAllowUnverified bool

	AllowedOrigins []string
}

// Load reads configuration from the environment. Call godotenv.Load first
// if a .env file should be honoured.
func Load() Config {
	cfg := Config{
		MongoURI:                os.Getenv("MONGO_URI"),
		MongoDatabase:           os.Getenv("MONGO_DATABASE"),
		APIPort:                 os.Getenv("API_PORT"),
		JWTSecret:               os.Getenv("JWT_SECRET"),
		CloudinaryURL:           os.Getenv("CLOUDINARY_URL"),
		CloudinaryFolder:        os.Getenv("CLOUDINARY_FOLDER"),
		FirebaseAPIKey:          os.Getenv("FIREBASE_API_KEY"),
		FirebaseAllowUnverified: os.Getenv("FIREBASE_ALLOW_UNVERIFIED") == "true",
	}

	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = "servihub"
	}
	if cfg.APIPort == "" {
		cfg.APIPort = "8080"
	}
	if cfg.CloudinaryFolder == "" {
		cfg.CloudinaryFolder = "servihub"
	}

	origins := os.Getenv("ALLOWED_ORIGINS")
	if origins == "" {
		cfg.AllowedOrigins = []string{"http://localhost:3000"}
	} else {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	return cfg
}
