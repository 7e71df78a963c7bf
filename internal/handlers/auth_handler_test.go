package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newJSONTestContext builds a gin context carrying a JSON request body.
func newJSONTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("existing email is rejected with no insert", func(mt *mtest.T) {
		// The existence check finds a user with the same email.
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "servihub.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "email", Value: "jane@example.com"},
			{Key: "name", Value: "Jane"},
		}))

		h := NewHandler(mt.DB, nil, nil, nil)
		c, w := newJSONTestContext(http.MethodPost, "/api/auth/register",
			`{"name":"Jane Again","email":"jane@example.com","password":"longenough1"}`)

		h.RegisterUser(c)

		// Exactly one mocked response was queued, so reaching InsertOne
		// would have failed the handler with a 500 instead.
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "already exists")
	})
}

func TestRegisterUserRejectsBadPayload(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("short password", func(mt *mtest.T) {
		h := NewHandler(mt.DB, nil, nil, nil)
		c, w := newJSONTestContext(http.MethodPost, "/api/auth/register",
			`{"name":"Jane","email":"jane@example.com","password":"short"}`)

		h.RegisterUser(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	mt.Run("invalid email", func(mt *mtest.T) {
		h := NewHandler(mt.DB, nil, nil, nil)
		c, w := newJSONTestContext(http.MethodPost, "/api/auth/register",
			`{"name":"Jane","email":"not-an-email","password":"longenough1"}`)

		h.RegisterUser(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
