package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/servihub/marketplace-api/internal/models"
	"github.com/servihub/marketplace-api/internal/services"
)

// Handler holds everything the route handlers need: the database plus the
// injected upload, pricing and identity services.
type Handler struct {
	DB       *mongo.Database
	Uploader services.Uploader
	Fare     services.FareEstimator
	Identity services.IdentityVerifier
}

func NewHandler(db *mongo.Database, up services.Uploader, fare services.FareEstimator, identity services.IdentityVerifier) *Handler {
	return &Handler{DB: db, Uploader: up, Fare: fare, Identity: identity}
}

// readFormFiles loads every file under a multipart field into memory for
// forwarding to the upload service.
func readFormFiles(c *gin.Context, field string) []services.UploadFile {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	var files []services.UploadFile
	for _, fh := range form.File[field] {
		data, err := readFileHeader(fh)
		if err != nil {
			log.Printf("Failed to read uploaded file %s: %v", fh.Filename, err)
			continue
		}
		files = append(files, services.UploadFile{Name: fh.Filename, Data: data})
	}
	return files
}

func readFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// parseExistingImages decodes the client-supplied JSON array of image URLs it
// wants retained on update. Anything unparseable counts as an empty list.
func parseExistingImages(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var urls []string
	if err := json.Unmarshal([]byte(raw), &urls); err != nil {
		return []string{}
	}
	return urls
}

// linkServiceToProvider appends a service reference to a provider's services
// list. Best-effort: callers log the error and keep the created record.
func (h *Handler) linkServiceToProvider(ctx context.Context, providerID primitive.ObjectID, ref models.ServiceRef) error {
	_, err := h.DB.Collection("providers").UpdateOne(ctx,
		bson.M{"_id": providerID},
		bson.M{"$addToSet": bson.M{"services": ref}},
	)
	return err
}

// unlinkServiceFromProvider pulls a service reference from a provider's
// services list. Pulling an absent reference is a no-op.
func (h *Handler) unlinkServiceFromProvider(ctx context.Context, providerID primitive.ObjectID, ref models.ServiceRef) error {
	_, err := h.DB.Collection("providers").UpdateOne(ctx,
		bson.M{"_id": providerID},
		bson.M{"$pull": bson.M{"services": ref}},
	)
	return err
}
