package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/servihub/marketplace-api/internal/models"
	"github.com/servihub/marketplace-api/internal/utils"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`

	// Optional provider profile details, used for the auto-created provider.
	ProviderName string `json:"providerName"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	Description  string `json:"description"`
}

// RegisterUser creates a local-credential user and, best-effort, a linked
// provider profile. A provider-creation failure does not fail registration.
func (h *Handler) RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	users := h.DB.Collection("users")

	// Existence check first for a clean 409; the unique index on email backs
	// it up against concurrent registrations.
	switch err := users.FindOne(context.TODO(), bson.M{"email": req.Email}).Err(); err {
	case mongo.ErrNoDocuments:
	case nil:
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "An account with this email already exists"})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to check existing users"})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to hash password"})
		return
	}

	now := time.Now()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		Email:     req.Email,
		Password:  hashedPassword,
		Role:      models.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := users.InsertOne(context.TODO(), user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "An account with this email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create user"})
		return
	}

	providerName := req.ProviderName
	if providerName == "" {
		providerName = req.Name
	}
	description := req.Description
	if description == "" {
		description = "Service provider account for " + req.Name
	}
	provider := models.Provider{
		ID:          primitive.NewObjectID(),
		Name:        providerName,
		Description: description,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Pincode:     req.Pincode,
		Images:      []string{},
		Services:    []models.ServiceRef{},
		Specialties: []string{},
		IsActive:    true,
		User:        &user.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := h.DB.Collection("providers").InsertOne(context.TODO(), provider); err != nil {
		log.Printf("Provider creation failed for %s: %v", req.Email, err)
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "User registered successfully. Provider creation had an issue.",
			"user":    user,
		})
		return
	}

	if _, err := users.UpdateOne(context.TODO(), bson.M{"_id": user.ID}, bson.M{"$set": bson.M{"provider": provider.ID}}); err != nil {
		log.Printf("Failed to link user %s to provider: %v", req.Email, err)
	}
	user.Provider = &provider.ID

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "User registered and provider created successfully",
		"user":     user,
		"provider": provider,
	})
}

// Login checks local credentials and issues a session token. Unknown email
// and wrong password produce the same response to avoid account enumeration.
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	var user models.User
	err := h.DB.Collection("users").FindOne(context.TODO(), bson.M{"email": req.Email}).Decode(&user)
	if err != nil || !utils.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not generate token"})
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": user})
}

// GoogleAuth upserts a user from Google profile details and issues a session
// token.
func (h *Handler) GoogleAuth(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Name     string `json:"name" binding:"required"`
		GoogleID string `json:"googleId" binding:"required"`
		Image    string `json:"image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing required fields"})
		return
	}

	users := h.DB.Collection("users")

	var user models.User
	err := users.FindOne(context.TODO(), bson.M{
		"$or": []bson.M{{"email": req.Email}, {"googleId": req.GoogleID}},
	}).Decode(&user)

	switch {
	case err == mongo.ErrNoDocuments:
		now := time.Now()
		user = models.User{
			ID:        primitive.NewObjectID(),
			Name:      req.Name,
			Email:     req.Email,
			GoogleID:  req.GoogleID,
			Image:     req.Image,
			Role:      models.RoleUser,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := users.InsertOne(context.TODO(), user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create user"})
			return
		}
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	case user.GoogleID == "":
		update := bson.M{"googleId": req.GoogleID, "updatedAt": time.Now()}
		if req.Image != "" {
			update["image"] = req.Image
		}
		if _, err := users.UpdateOne(context.TODO(), bson.M{"_id": user.ID}, bson.M{"$set": update}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update user"})
			return
		}
		user.GoogleID = req.GoogleID
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not generate token"})
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": user})
}

// bearerToken extracts the raw token from an Authorization header.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(authHeader, "Bearer "), true
}

// SyncFirebaseUser exchanges a Firebase ID token for a local session: the
// external identity is mapped to an existing user by uid or email, created
// when absent, then a locally signed session token is issued.
func (h *Handler) SyncFirebaseUser(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "No token provided"})
		return
	}

	identity, err := h.Identity.Verify(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token"})
		return
	}

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Image    string `json:"image"`
		GoogleID string `json:"googleId"`
	}
	_ = c.ShouldBindJSON(&req) // body is optional profile hints

	email := identity.Email
	if email == "" {
		email = req.Email
	}
	name := req.Name
	if name == "" {
		name = identity.DisplayName
	}
	if name == "" {
		name = "User"
	}
	image := req.Image
	if image == "" {
		image = identity.PhotoURL
	}

	users := h.DB.Collection("users")

	var user models.User
	err = users.FindOne(context.TODO(), bson.M{
		"$or": []bson.M{{"firebaseUid": identity.UID}, {"email": email}},
	}).Decode(&user)

	switch {
	case err == mongo.ErrNoDocuments:
		now := time.Now()
		user = models.User{
			ID:          primitive.NewObjectID(),
			Name:        name,
			Email:       email,
			FirebaseUID: identity.UID,
			GoogleID:    req.GoogleID,
			Image:       image,
			Role:        models.RoleUser,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if _, err := users.InsertOne(context.TODO(), user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create user"})
			return
		}
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	default:
		update := bson.M{
			"firebaseUid": identity.UID,
			"name":        name,
			"email":       email,
			"updatedAt":   time.Now(),
		}
		if image != "" {
			update["image"] = image
		}
		if req.GoogleID != "" {
			update["googleId"] = req.GoogleID
		}
		if _, err := users.UpdateOne(context.TODO(), bson.M{"_id": user.ID}, bson.M{"$set": update}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update user"})
			return
		}
		user.FirebaseUID = identity.UID
		user.Name = name
		user.Email = email
	}

	sessionToken, err := utils.GenerateJWT(user.ID.Hex(), user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   sessionToken,
		"user": gin.H{
			"_id":   user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
			"image": user.Image,
		},
	})
}

// firebaseUserFromRequest resolves the local user behind the presented
// Firebase token.
func (h *Handler) firebaseUserFromRequest(c *gin.Context) (*models.User, bool) {
	token, ok := bearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "No token provided"})
		return nil, false
	}

	identity, err := h.Identity.Verify(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token"})
		return nil, false
	}

	var user models.User
	err = h.DB.Collection("users").FindOne(context.TODO(), bson.M{"firebaseUid": identity.UID}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return nil, false
	}
	return &user, true
}

// GetFirebaseUser returns the profile of the user behind the Firebase token.
func (h *Handler) GetFirebaseUser(c *gin.Context) {
	user, ok := h.firebaseUserFromRequest(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"_id":      user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"role":     user.Role,
			"image":    user.Image,
			"provider": user.Provider,
		},
	})
}

// UpdateFirebaseUser updates the profile of the user behind the Firebase
// token.
func (h *Handler) UpdateFirebaseUser(c *gin.Context) {
	user, ok := h.firebaseUserFromRequest(c)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No update fields provided"})
		return
	}

	_, err := h.DB.Collection("users").UpdateOne(context.TODO(),
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"name": req.Name, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update user"})
		return
	}
	user.Name = req.Name

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User updated successfully",
		"user": gin.H{
			"_id":      user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"role":     user.Role,
			"image":    user.Image,
			"provider": user.Provider,
		},
	})
}

// UpdateUserRole lets a superadmin change another user's role.
func (h *Handler) UpdateUserRole(c *gin.Context) {
	requester, ok := h.firebaseUserFromRequest(c)
	if !ok {
		return
	}
	if requester.Role != models.RoleSuperAdmin {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Only superadmin can update user roles"})
		return
	}

	var req struct {
		UserID string `json:"userId" binding:"required"`
		Role   string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}
	if !models.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid role"})
		return
	}

	targetID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID"})
		return
	}

	users := h.DB.Collection("users")
	result, err := users.UpdateOne(context.TODO(),
		bson.M{"_id": targetID},
		bson.M{"$set": bson.M{"role": req.Role, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update role"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User to update not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User role updated successfully"})
}
