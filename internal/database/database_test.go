package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func findIndex(t *testing.T, indexes []mongo.IndexModel, field string) mongo.IndexModel {
	t.Helper()
	for _, idx := range indexes {
		keys, ok := idx.Keys.(bson.D)
		require.True(t, ok)
		require.Len(t, keys, 1)
		if keys[0].Key == field {
			return idx
		}
	}
	t.Fatalf("no index declared on %q", field)
	return mongo.IndexModel{}
}

func TestCollectionIndexesEnforceEmailUniqueness(t *testing.T) {
	indexes := collectionIndexes()

	email := findIndex(t, indexes["users"], "email")
	require.NotNil(t, email.Options)
	require.NotNil(t, email.Options.Unique)
	assert.True(t, *email.Options.Unique)
	// Every user has an email, so the index must not be sparse.
	assert.Nil(t, email.Options.Sparse)
}

func TestCollectionIndexesSparseUniqueExternalIDs(t *testing.T) {
	indexes := collectionIndexes()

	for _, field := range []string{"googleId", "firebaseUid"} {
		idx := findIndex(t, indexes["users"], field)
		require.NotNil(t, idx.Options, field)
		require.NotNil(t, idx.Options.Unique, field)
		assert.True(t, *idx.Options.Unique, field)
		require.NotNil(t, idx.Options.Sparse, field)
		assert.True(t, *idx.Options.Sparse, field)
	}

	user := findIndex(t, indexes["providers"], "user")
	require.NotNil(t, user.Options)
	require.NotNil(t, user.Options.Unique)
	assert.True(t, *user.Options.Unique)
	require.NotNil(t, user.Options.Sparse)
	assert.True(t, *user.Options.Sparse)
}
