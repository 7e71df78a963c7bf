package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servihub/marketplace-api/internal/models"
)

func TestParseBannerMetrics(t *testing.T) {
	metrics := parseBannerMetrics(`[{"label":"Happy Customers","value":"10k+"},{"label":"Cities","value":"25"}]`)
	require.Len(t, metrics, 2)
	assert.Equal(t, models.BannerMetric{Label: "Happy Customers", Value: "10k+"}, metrics[0])
	assert.Equal(t, models.BannerMetric{Label: "Cities", Value: "25"}, metrics[1])

	assert.Equal(t, []models.BannerMetric{}, parseBannerMetrics(""))
	assert.Equal(t, []models.BannerMetric{}, parseBannerMetrics("not json"))
}
