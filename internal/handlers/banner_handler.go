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

// BannerPayload defines the structure for creating or updating a banner.
type BannerPayload struct {
	Title        string `json:"title" binding:"required,max=255"`
	Subtitle     string `json:"subtitle" binding:"max=255"`
	ImageURL     string `json:"image_url" binding:"required,url"`
	Link         string `json:"link" binding:"omitempty,url"`
	DisplayOrder int    `json:"display_order"`
	IsActive     *bool  `json:"is_active"`
}

func (p *BannerPayload) active() bool {
	if p.IsActive == nil {
		return true
	}
	return *p.IsActive
}

// ListPublicBannersHandler returns active banners for the mobile app,
// ordered by display order. No authentication required.
func ListPublicBannersHandler(c *gin.Context) {
	db := database.GetDB()
	var banners []models.Banner
	if err := db.Where("is_active = ?", true).Order("display_order asc").Find(&banners).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list banners"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"banners": banners})
}

// ListBannersHandler returns all banners, active or not, for the admin dashboard.
func ListBannersHandler(c *gin.Context) {
	db := database.GetDB()
	var banners []models.Banner
	if err := db.Order("display_order asc").Find(&banners).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list banners"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"banners": banners})
}

// CreateBannerHandler handles the creation of a new banner.
func CreateBannerHandler(c *gin.Context) {
	var payload BannerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	banner := models.Banner{
		// ID is set by the BeforeCreate hook
		Title:        payload.Title,
		Subtitle:     payload.Subtitle,
		ImageURL:     payload.ImageURL,
		Link:         payload.Link,
		DisplayOrder: payload.DisplayOrder,
		IsActive:     payload.active(),
	}

	if err := database.GetDB().Create(&banner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create banner"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Banner created successfully", "banner": banner})
}

// GetBannerHandler handles fetching a single banner by its ID.
func GetBannerHandler(c *gin.Context) {
	bannerID, err := uuid.Parse(c.Param("bannerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid banner ID format"})
		return
	}

	var banner models.Banner
	if err := database.GetDB().Where("id = ?", bannerID).First(&banner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch banner"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"banner": banner})
}

// UpdateBannerHandler handles updating an existing banner.
func UpdateBannerHandler(c *gin.Context) {
	bannerID, err := uuid.Parse(c.Param("bannerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid banner ID format"})
		return
	}

	var payload BannerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	db := database.GetDB()
	var banner models.Banner
	if err := db.Where("id = ?", bannerID).First(&banner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch banner"})
		return
	}

	banner.Title = payload.Title
	banner.Subtitle = payload.Subtitle
	banner.ImageURL = payload.ImageURL
	banner.Link = payload.Link
	banner.DisplayOrder = payload.DisplayOrder
	banner.IsActive = payload.active()

	if err := db.Save(&banner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update banner"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Banner updated successfully", "banner": banner})
}

// DeleteBannerHandler handles deleting a banner.
func DeleteBannerHandler(c *gin.Context) {
	bannerID, err := uuid.Parse(c.Param("bannerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid banner ID format"})
		return
	}

	res := database.GetDB().Where("id = ?", bannerID).Delete(&models.Banner{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete banner"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Banner deleted successfully"})
}
