package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/servihub/marketplace-api/internal/models"
	"github.com/servihub/marketplace-api/internal/services"
)

const (
	defaultGradientStart = "#e0f2ff"
	defaultGradientEnd   = "#ffffff"
)

// uploadSingle uploads the first file under a field, returning "" when no
// file was sent or the upload failed.
func (h *Handler) uploadSingle(c *gin.Context, field, folder string) string {
	files := readFormFiles(c, field)
	if len(files) == 0 {
		if fh, err := c.FormFile(field); err == nil {
			if data, err := readFileHeader(fh); err == nil {
				files = []services.UploadFile{{Name: fh.Filename, Data: data}}
			}
		}
	}
	if len(files) == 0 {
		return ""
	}
	urls, failed := services.UploadAll(c.Request.Context(), h.Uploader, files[:1], folder)
	if len(failed) > 0 {
		log.Printf("Upload of %s failed: %v", failed[0].Name, failed[0].Err)
		return ""
	}
	return urls[0]
}

func parseBannerMetrics(raw string) []models.BannerMetric {
	if raw == "" {
		return []models.BannerMetric{}
	}
	var metrics []models.BannerMetric
	if err := json.Unmarshal([]byte(raw), &metrics); err != nil {
		return []models.BannerMetric{}
	}
	return metrics
}

func (h *Handler) AddHomeBanner(c *gin.Context) {
	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "title is required"})
		return
	}

	gradientStart := c.PostForm("gradientStart")
	if gradientStart == "" {
		gradientStart = defaultGradientStart
	}
	gradientEnd := c.PostForm("gradientEnd")
	if gradientEnd == "" {
		gradientEnd = defaultGradientEnd
	}

	now := time.Now()
	banner := models.HomeBanner{
		ID:            primitive.NewObjectID(),
		Title:         title,
		Subtitle:      c.PostForm("subtitle"),
		ButtonText:    c.PostForm("buttonText"),
		ButtonLink:    c.PostForm("buttonLink"),
		Image:         h.uploadSingle(c, "image", "banners/home"),
		Metrics:       parseBannerMetrics(c.PostForm("metrics")),
		GradientStart: gradientStart,
		GradientEnd:   gradientEnd,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := h.DB.Collection("home_banners").InsertOne(context.TODO(), banner); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create banner"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "banner": banner})
}

func (h *Handler) GetHomeBanners(c *gin.Context) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.DB.Collection("home_banners").Find(context.TODO(), bson.M{}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch banners"})
		return
	}
	defer cursor.Close(context.TODO())

	var banners []models.HomeBanner
	if err := cursor.All(context.TODO(), &banners); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to decode banners"})
		return
	}
	if banners == nil {
		banners = []models.HomeBanner{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "banners": banners})
}

func (h *Handler) GetHomeBannerByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid banner ID"})
		return
	}

	var banner models.HomeBanner
	if err := h.DB.Collection("home_banners").FindOne(context.TODO(), bson.M{"_id": id}).Decode(&banner); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Banner not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "banner": banner})
}

func (h *Handler) UpdateHomeBanner(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid banner ID"})
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if v := c.PostForm("title"); v != "" {
		update["title"] = v
	}
	if v := c.PostForm("subtitle"); v != "" {
		update["subtitle"] = v
	}
	if v := c.PostForm("buttonText"); v != "" {
		update["buttonText"] = v
	}
	if v := c.PostForm("buttonLink"); v != "" {
		update["buttonLink"] = v
	}
	if v := c.PostForm("gradientStart"); v != "" {
		update["gradientStart"] = v
	}
	if v := c.PostForm("gradientEnd"); v != "" {
		update["gradientEnd"] = v
	}
	if v := c.PostForm("metrics"); v != "" {
		update["metrics"] = parseBannerMetrics(v)
	}
	if img := h.uploadSingle(c, "image", "banners/home"); img != "" {
		update["image"] = img
	}

	result := h.DB.Collection("home_banners").FindOneAndUpdate(context.TODO(),
		bson.M{"_id": id},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var banner models.HomeBanner
	if err := result.Decode(&banner); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Banner not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "banner": banner})
}

func (h *Handler) DeleteHomeBanner(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid banner ID"})
		return
	}

	if _, err := h.DB.Collection("home_banners").DeleteOne(context.TODO(), bson.M{"_id": id}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete banner"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Banner deleted successfully"})
}

// AddCleaningBanner replaces the current cleaning banner: at most one exists
// at a time.
func (h *Handler) AddCleaningBanner(c *gin.Context) {
	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "title is required"})
		return
	}

	image := h.uploadSingle(c, "image", "banners/cleaning")
	if image == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No image uploaded"})
		return
	}

	banners := h.DB.Collection("cleaning_banners")
	if _, err := banners.DeleteMany(context.TODO(), bson.M{}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to replace banner"})
		return
	}

	now := time.Now()
	banner := models.CleaningBanner{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Subtitle:  c.PostForm("subtitle"),
		Image:     image,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := banners.InsertOne(context.TODO(), banner); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create banner"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "banner": banner})
}

func (h *Handler) GetCleaningBanners(c *gin.Context) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.DB.Collection("cleaning_banners").Find(context.TODO(), bson.M{}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch banners"})
		return
	}
	defer cursor.Close(context.TODO())

	var banners []models.CleaningBanner
	if err := cursor.All(context.TODO(), &banners); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to decode banners"})
		return
	}
	if banners == nil {
		banners = []models.CleaningBanner{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "banners": banners})
}

func (h *Handler) GetCleaningBannerByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid banner ID"})
		return
	}

	var banner models.CleaningBanner
	if err := h.DB.Collection("cleaning_banners").FindOne(context.TODO(), bson.M{"_id": id}).Decode(&banner); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Banner not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "banner": banner})
}

func (h *Handler) UpdateCleaningBanner(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid banner ID"})
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if v := c.PostForm("title"); v != "" {
		update["title"] = v
	}
	if v := c.PostForm("subtitle"); v != "" {
		update["subtitle"] = v
	}
	if v := c.PostForm("active"); v != "" {
		update["active"] = v == "true"
	}
	if img := h.uploadSingle(c, "image", "banners/cleaning"); img != "" {
		update["image"] = img
	}

	result := h.DB.Collection("cleaning_banners").FindOneAndUpdate(context.TODO(),
		bson.M{"_id": id},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var banner models.CleaningBanner
	if err := result.Decode(&banner); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Banner not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "banner": banner})
}

func (h *Handler) DeleteCleaningBanner(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid banner ID"})
		return
	}

	if _, err := h.DB.Collection("cleaning_banners").DeleteOne(context.TODO(), bson.M{"_id": id}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete banner"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Banner deleted"})
}
