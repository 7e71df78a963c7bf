package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/servihub/marketplace-api/internal/models"
	"github.com/servihub/marketplace-api/internal/services"
)

// parseSpecialties accepts either a JSON array or a comma-separated list.
func parseSpecialties(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var specialties []string
	if err := json.Unmarshal([]byte(raw), &specialties); err == nil {
		return specialties
	}
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			specialties = append(specialties, s)
		}
	}
	if specialties == nil {
		specialties = []string{}
	}
	return specialties
}

// AddProvider creates a vendor profile with logo and gallery uploads. When
// the caller presents a Firebase token, the new provider is linked both ways
// and the user is promoted to admin.
func (h *Handler) AddProvider(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "name is required"})
		return
	}

	// Resolve the calling user, if any. Provider creation works without
	// a token; the link is simply skipped.
	var userID *primitive.ObjectID
	if token, ok := bearerToken(c); ok {
		if identity, err := h.Identity.Verify(c.Request.Context(), token); err == nil {
			var user models.User
			if err := h.DB.Collection("users").FindOne(context.TODO(), bson.M{"firebaseUid": identity.UID}).Decode(&user); err == nil {
				userID = &user.ID
			}
		}
	}

	logoURL := ""
	if logoFiles := readFormFiles(c, "logo"); len(logoFiles) > 0 {
		urls, failed := services.UploadAll(c.Request.Context(), h.Uploader, logoFiles[:1], "providers")
		if len(failed) > 0 {
			log.Printf("AddProvider: logo upload failed: %v", failed[0].Err)
		}
		if len(urls) > 0 {
			logoURL = urls[0]
		}
	}

	files := readFormFiles(c, "images")
	images, failed := services.UploadAll(c.Request.Context(), h.Uploader, files, "providers")
	if len(failed) > 0 {
		log.Printf("AddProvider: %d of %d image uploads failed", len(failed), len(files))
	}
	if images == nil {
		images = []string{}
	}

	rating := 0.0
	if v, err := strconv.ParseFloat(c.PostForm("rating"), 64); err == nil {
		rating = v
	}
	isActive := true
	if v := c.PostForm("isActive"); v != "" {
		isActive = v == "true"
	}

	now := time.Now()
	provider := models.Provider{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Description: c.PostForm("description"),
		Email:       c.PostForm("email"),
		Phone:       c.PostForm("phone"),
		Address:     c.PostForm("address"),
		City:        c.PostForm("city"),
		State:       c.PostForm("state"),
		Pincode:     c.PostForm("pincode"),
		Rating:      rating,
		Logo:        logoURL,
		Images:      images,
		Services:    []models.ServiceRef{},
		Specialties: parseSpecialties(c.PostForm("specialties")),
		IsActive:    isActive,
		User:        userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := h.DB.Collection("providers").InsertOne(context.TODO(), provider); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create provider"})
		return
	}

	message := "Provider created (user not linked)"
	if userID != nil {
		_, err := h.DB.Collection("users").UpdateOne(context.TODO(),
			bson.M{"_id": *userID},
			bson.M{"$set": bson.M{"provider": provider.ID, "role": models.RoleAdmin, "updatedAt": now}},
		)
		if err != nil {
			log.Printf("Failed to link user %s to provider %s: %v", userID.Hex(), provider.ID.Hex(), err)
		} else {
			message = "Provider created and user role updated to admin"
		}
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "provider": provider, "message": message})
}

func (h *Handler) GetProviders(c *gin.Context) {
	filter := bson.M{}
	if isActive := c.Query("isActive"); isActive != "" {
		filter["isActive"] = isActive == "true"
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.DB.Collection("providers").Find(context.TODO(), filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch providers"})
		return
	}
	defer cursor.Close(context.TODO())

	var providers []models.Provider
	if err := cursor.All(context.TODO(), &providers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to decode providers"})
		return
	}
	if providers == nil {
		providers = []models.Provider{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "providers": providers})
}

// providerServices fans out to the three service collections in parallel and
// joins the results.
func (h *Handler) providerServices(ctx context.Context, providerID primitive.ObjectID) (cleanings []models.Cleaning, hotels []models.Hotel, rides []models.Ride, err error) {
	filter := bson.M{"provider": providerID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cursor, err := h.DB.Collection("cleanings").Find(gctx, filter)
		if err != nil {
			return err
		}
		defer cursor.Close(gctx)
		return cursor.All(gctx, &cleanings)
	})
	g.Go(func() error {
		cursor, err := h.DB.Collection("hotels").Find(gctx, filter)
		if err != nil {
			return err
		}
		defer cursor.Close(gctx)
		return cursor.All(gctx, &hotels)
	})
	g.Go(func() error {
		cursor, err := h.DB.Collection("rides").Find(gctx, filter)
		if err != nil {
			return err
		}
		defer cursor.Close(gctx)
		return cursor.All(gctx, &rides)
	})

	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	if cleanings == nil {
		cleanings = []models.Cleaning{}
	}
	if hotels == nil {
		hotels = []models.Hotel{}
	}
	if rides == nil {
		rides = []models.Ride{}
	}
	return cleanings, hotels, rides, nil
}

func (h *Handler) GetProviderByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid provider ID"})
		return
	}

	var provider models.Provider
	if err := h.DB.Collection("providers").FindOne(context.TODO(), bson.M{"_id": id}).Decode(&provider); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Provider not found"})
		return
	}

	cleanings, hotels, rides, err := h.providerServices(c.Request.Context(), provider.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"provider": provider,
		"allServices": gin.H{
			"cleaning": cleanings,
			"hotels":   hotels,
			"rides":    rides,
		},
	})
}

// GetProviderAllServices returns all three service lists for a provider, with
// per-kind and total counts.
func (h *Handler) GetProviderAllServices(c *gin.Context) {
	providerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Provider ID is required"})
		return
	}

	cleanings, hotels, rides, err := h.providerServices(c.Request.Context(), providerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"services": gin.H{
			"cleaning": cleanings,
			"hotels":   hotels,
			"rides":    rides,
		},
		"counts": gin.H{
			"cleaning": len(cleanings),
			"hotels":   len(hotels),
			"rides":    len(rides),
			"total":    len(cleanings) + len(hotels) + len(rides),
		},
	})
}

func (h *Handler) UpdateProvider(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid provider ID"})
		return
	}

	logoURL := c.PostForm("existingLogo")
	if logoFiles := readFormFiles(c, "logo"); len(logoFiles) > 0 {
		urls, failed := services.UploadAll(c.Request.Context(), h.Uploader, logoFiles[:1], "providers")
		if len(failed) > 0 {
			log.Printf("UpdateProvider: logo upload failed: %v", failed[0].Err)
		}
		if len(urls) > 0 {
			logoURL = urls[0]
		}
	}

	existing := parseExistingImages(c.PostForm("existingImages"))
	files := readFormFiles(c, "images")
	uploaded, failed := services.UploadAll(c.Request.Context(), h.Uploader, files, "providers")
	if len(failed) > 0 {
		log.Printf("UpdateProvider: %d of %d image uploads failed", len(failed), len(files))
	}

	update := bson.M{
		"logo":      logoURL,
		"images":    append(existing, uploaded...),
		"updatedAt": time.Now(),
	}
	if v := c.PostForm("name"); v != "" {
		update["name"] = v
	}
	if v := c.PostForm("description"); v != "" {
		update["description"] = v
	}
	if v := c.PostForm("email"); v != "" {
		update["email"] = v
	}
	if v := c.PostForm("phone"); v != "" {
		update["phone"] = v
	}
	if v := c.PostForm("address"); v != "" {
		update["address"] = v
	}
	if v := c.PostForm("city"); v != "" {
		update["city"] = v
	}
	if v := c.PostForm("state"); v != "" {
		update["state"] = v
	}
	if v := c.PostForm("pincode"); v != "" {
		update["pincode"] = v
	}
	if v, err := strconv.ParseFloat(c.PostForm("rating"), 64); err == nil {
		update["rating"] = v
	}
	if v := c.PostForm("specialties"); v != "" {
		update["specialties"] = parseSpecialties(v)
	}
	if v := c.PostForm("isActive"); v != "" {
		update["isActive"] = v == "true"
	}

	result := h.DB.Collection("providers").FindOneAndUpdate(context.TODO(),
		bson.M{"_id": id},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var provider models.Provider
	if err := result.Decode(&provider); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Provider not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "provider": provider})
}

func (h *Handler) DeleteProvider(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid provider ID"})
		return
	}

	if _, err := h.DB.Collection("providers").DeleteOne(context.TODO(), bson.M{"_id": id}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete provider"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Provider deleted"})
}

type serviceRefRequest struct {
	ProviderID string `json:"providerId" binding:"required"`
	ServiceID  string `json:"serviceId" binding:"required"`
	Kind       string `json:"kind" binding:"required"`
}

func (r serviceRefRequest) parse() (primitive.ObjectID, models.ServiceRef, error) {
	providerID, err := primitive.ObjectIDFromHex(r.ProviderID)
	if err != nil {
		return primitive.NilObjectID, models.ServiceRef{}, err
	}
	serviceID, err := primitive.ObjectIDFromHex(r.ServiceID)
	if err != nil {
		return primitive.NilObjectID, models.ServiceRef{}, err
	}
	return providerID, models.ServiceRef{Kind: r.Kind, ID: serviceID}, nil
}

// AddServiceToProvider appends a tagged service reference to a provider's
// services list.
func (h *Handler) AddServiceToProvider(c *gin.Context) {
	var req serviceRefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "providerId, serviceId and kind are required"})
		return
	}
	if !models.ValidServiceKind(req.Kind) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid service kind"})
		return
	}

	providerID, ref, err := req.parse()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid ID"})
		return
	}

	result := h.DB.Collection("providers").FindOneAndUpdate(context.TODO(),
		bson.M{"_id": providerID},
		bson.M{"$addToSet": bson.M{"services": ref}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var provider models.Provider
	if err := result.Decode(&provider); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Provider not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "provider": provider})
}

// RemoveServiceFromProvider pulls a tagged service reference; pulling an
// absent reference leaves the list unchanged.
func (h *Handler) RemoveServiceFromProvider(c *gin.Context) {
	var req serviceRefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "providerId, serviceId and kind are required"})
		return
	}
	if !models.ValidServiceKind(req.Kind) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid service kind"})
		return
	}

	providerID, ref, err := req.parse()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid ID"})
		return
	}

	result := h.DB.Collection("providers").FindOneAndUpdate(context.TODO(),
		bson.M{"_id": providerID},
		bson.M{"$pull": bson.M{"services": ref}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var provider models.Provider
	if err := result.Decode(&provider); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Provider not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "provider": provider})
}
