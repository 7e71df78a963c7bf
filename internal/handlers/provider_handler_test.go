package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/servihub/marketplace-api/internal/models"
)

func TestParseSpecialties(t *testing.T) {
	// JSON array form.
	assert.Equal(t, []string{"plumbing", "electrical"}, parseSpecialties(`["plumbing","electrical"]`))

	// Comma-separated fallback with whitespace trimming.
	assert.Equal(t, []string{"plumbing", "electrical"}, parseSpecialties("plumbing, electrical"))

	assert.Equal(t, []string{}, parseSpecialties(""))
	assert.Equal(t, []string{}, parseSpecialties(" , ,"))
}

func TestServiceRefRequestParse(t *testing.T) {
	providerID := primitive.NewObjectID()
	serviceID := primitive.NewObjectID()

	req := serviceRefRequest{
		ProviderID: providerID.Hex(),
		ServiceID:  serviceID.Hex(),
		Kind:       models.ServiceKindHotel,
	}
	gotProvider, ref, err := req.parse()
	require.NoError(t, err)
	assert.Equal(t, providerID, gotProvider)
	assert.Equal(t, models.ServiceRef{Kind: models.ServiceKindHotel, ID: serviceID}, ref)

	_, _, err = serviceRefRequest{ProviderID: "bad", ServiceID: serviceID.Hex(), Kind: models.ServiceKindHotel}.parse()
	assert.Error(t, err)

	_, _, err = serviceRefRequest{ProviderID: providerID.Hex(), ServiceID: "bad", Kind: models.ServiceKindHotel}.parse()
	assert.Error(t, err)
}
