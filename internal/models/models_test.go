package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleUser))
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RoleSuperAdmin))
	assert.False(t, ValidRole("owner"))
	assert.False(t, ValidRole(""))
	assert.False(t, ValidRole("Admin"))
}

func TestValidServiceKind(t *testing.T) {
	assert.True(t, ValidServiceKind(ServiceKindCleaning))
	assert.True(t, ValidServiceKind(ServiceKindHotel))
	assert.True(t, ValidServiceKind(ServiceKindRide))
	assert.False(t, ValidServiceKind("taxi"))
	assert.False(t, ValidServiceKind(""))
}

func TestValidCleaningCategory(t *testing.T) {
	for _, c := range CleaningCategories {
		assert.True(t, ValidCleaningCategory(c), "category %q", c)
	}
	assert.False(t, ValidCleaningCategory("Gardening"))
	assert.False(t, ValidCleaningCategory(""))
	assert.False(t, ValidCleaningCategory("home"))
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, "ServiHub", s.SiteName)
	assert.True(t, s.AllowRegistrations)
	assert.Equal(t, 5, s.MaxFileSize)
	assert.NotEmpty(t, s.AllowedFileTypes)
}
