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

// ListUsersHandler returns app users for the admin dashboard, paginated.
func ListUsersHandler(c *gin.Context) {
	page, pageSize := GetPaginationParams(c)
	db := database.GetDB()

	var totalItems int64
	if err := db.Model(&models.User{}).Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
		return
	}

	var users []models.User
	if err := db.Scopes(PaginateScope(page, pageSize)).Order("created_at desc").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}

	totalPages := totalItems / int64(pageSize)
	if totalItems%int64(pageSize) != 0 {
		totalPages++
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Items:      users,
		TotalItems: totalItems,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   pageSize,
	})
}

// GetUserHandler handles fetching a single user by ID.
func GetUserHandler(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	var user models.User
	if err := database.GetDB().Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateUserPayload defines the admin-editable user fields. The password is
// deliberately absent: it only changes through the reset flow or the user
// themselves.
type UpdateUserPayload struct {
	FirstName string          `json:"first_name" binding:"required,max=100"`
	LastName  string          `json:"last_name" binding:"required,max=100"`
	Role      models.UserRole `json:"role" binding:"required,oneof=user admin"`
	IsActive  *bool           `json:"is_active" binding:"required"`
}

// UpdateUserHandler handles updating a user account.
func UpdateUserHandler(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	var payload UpdateUserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	db := database.GetDB()
	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	user.FirstName = payload.FirstName
	user.LastName = payload.LastName
	user.Role = payload.Role
	user.IsActive = *payload.IsActive

	if err := db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "user": user})
}

// DeleteUserHandler handles deleting a user account. Admins cannot delete
// their own account.
func DeleteUserHandler(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	callerValue, exists := c.Get("userID")
	callerID, ok := callerValue.(uuid.UUID)
	if !exists || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}
	if callerID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot delete your own account"})
		return
	}

	res := database.GetDB().Where("id = ?", userID).Delete(&models.User{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
