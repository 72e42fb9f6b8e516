package handlers

import (
	"errors"
	"net/http"

	"moodyme/backend/internal/database"
	"moodyme/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentPayload defines the structure for creating or updating a content page.
type ContentPayload struct {
	Type     models.ContentType `json:"type" binding:"required"`
	Title    string             `json:"title" binding:"required,max=255"`
	Body     string             `json:"body" binding:"required"`
	IsActive *bool              `json:"is_active"`
}

func (p *ContentPayload) active() bool {
	if p.IsActive == nil {
		return true
	}
	return *p.IsActive
}

// contentTypeFilter reads the optional ?type= query parameter; unknown types
// are ignored rather than rejected, matching the mobile app's expectations.
func contentTypeFilter(c *gin.Context) (models.ContentType, bool) {
	t := models.ContentType(c.Query("type"))
	if t != "" && models.IsKnownContentType(t) {
		return t, true
	}
	return "", false
}

// ListPublicContentHandler returns active content pages for the mobile app,
// optionally filtered by type. No authentication required.
func ListPublicContentHandler(c *gin.Context) {
	db := database.GetDB().Where("is_active = ?", true)
	if t, ok := contentTypeFilter(c); ok {
		db = db.Where("type = ?", t)
	}

	var contents []models.Content
	if err := db.Order("updated_at desc").Find(&contents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list content"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"contents": contents})
}

// ListContentHandler returns all content pages for the admin dashboard.
func ListContentHandler(c *gin.Context) {
	db := database.GetDB()
	if t, ok := contentTypeFilter(c); ok {
		db = db.Where("type = ?", t)
	}

	var contents []models.Content
	if err := db.Order("updated_at desc").Find(&contents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list content"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"contents": contents})
}

// CreateContentHandler handles the creation of a new content page.
func CreateContentHandler(c *gin.Context) {
	var payload ContentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	if !models.IsKnownContentType(payload.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown content type: " + string(payload.Type)})
		return
	}

	content := models.Content{
		Type:     payload.Type,
		Title:    payload.Title,
		Body:     payload.Body,
		IsActive: payload.active(),
	}

	if err := database.GetDB().Create(&content).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create content"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Content created successfully", "content": content})
}

// GetContentHandler handles fetching a single content page by its ID.
func GetContentHandler(c *gin.Context) {
	contentID, err := uuid.Parse(c.Param("contentId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content ID format"})
		return
	}

	var content models.Content
	if err := database.GetDB().Where("id = ?", contentID).First(&content).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch content"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": content})
}

// UpdateContentHandler handles updating an existing content page.
func UpdateContentHandler(c *gin.Context) {
	contentID, err := uuid.Parse(c.Param("contentId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content ID format"})
		return
	}

	var payload ContentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	if !models.IsKnownContentType(payload.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown content type: " + string(payload.Type)})
		return
	}

	db := database.GetDB()
	var content models.Content
	if err := db.Where("id = ?", contentID).First(&content).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch content"})
		return
	}

	content.Type = payload.Type
	content.Title = payload.Title
	content.Body = payload.Body
	content.IsActive = payload.active()

	if err := db.Save(&content).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update content"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Content updated successfully", "content": content})
}

// DeleteContentHandler handles deleting a content page.
func DeleteContentHandler(c *gin.Context) {
	contentID, err := uuid.Parse(c.Param("contentId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content ID format"})
		return
	}

	res := database.GetDB().Where("id = ?", contentID).Delete(&models.Content{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete content"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Content deleted successfully"})
}
