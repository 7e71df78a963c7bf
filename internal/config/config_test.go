package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MONGO_DATABASE", "")
	t.Setenv("API_PORT", "")
	t.Setenv("CLOUDINARY_FOLDER", "")
	t.Setenv("FIREBASE_ALLOW_UNVERIFIED", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg := Load()
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "servihub", cfg.MongoDatabase)
	assert.Equal(t, "8080", cfg.APIPort)
	assert.Equal(t, "servihub", cfg.CloudinaryFolder)
	assert.False(t, cfg.FirebaseAllowUnverified)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MONGO_DATABASE", "marketplace")
	t.Setenv("API_PORT", "9090")
	t.Setenv("FIREBASE_ALLOW_UNVERIFIED", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com ,")

	cfg := Load()
	assert.Equal(t, "marketplace", cfg.MongoDatabase)
	assert.Equal(t, "9090", cfg.APIPort)
	assert.True(t, cfg.FirebaseAllowUnverified)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
}
