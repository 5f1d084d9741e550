package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tastehub/tastehub-api/config"
	"github.com/tastehub/tastehub-api/models"
)

// GetUser handles GET /users/:email - fetches a user profile
func GetUser(c *gin.Context) {
	email := c.Param("email")

	var user models.User
	if err := config.GetDB().Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "User not found",
				},
			})
			return
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

// UpsertUserRequest represents the registration request body
type UpsertUserRequest struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
	Role        string `json:"role"`
}

// UpsertUser handles POST /users - creates a user on first registration or
// refreshes display fields and last-login on a returning one
func UpsertUser(c *gin.Context) {
	var req UpsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	if req.Email == "" || req.UID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Email and UID are required",
			},
		})
		return
	}

	db := config.GetDB()

	var existing models.User
	err := db.Where("email = ?", req.Email).First(&existing).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"display_name": req.DisplayName,
			"photo_url":    req.PhotoURL,
			"last_login":   time.Now(),
		}
		if err := db.Model(&existing).Updates(updates).Error; err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "User updated",
			"data":    existing,
		})
	case errors.Is(err, gorm.ErrRecordNotFound):
		role := req.Role
		if role == "" {
			role = "customer"
		}
		user := models.User{
			UID:         req.UID,
			Email:       req.Email,
			DisplayName: req.DisplayName,
			PhotoURL:    req.PhotoURL,
			Role:        role,
			LastLogin:   time.Now(),
		}
		if err := db.Create(&user).Error; err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "User created successfully",
			"data":    user,
		})
	default:
		respondServiceError(c, err)
	}
}

// UpdateProfileRequest represents the profile update request body
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName"`
	PhotoURL    *string `json:"photoURL"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	Bio         *string `json:"bio"`
}

func (r *UpdateProfileRequest) updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.DisplayName != nil {
		updates["display_name"] = *r.DisplayName
	}
	if r.PhotoURL != nil {
		updates["photo_url"] = *r.PhotoURL
	}
	if r.Phone != nil {
		updates["phone"] = *r.Phone
	}
	if r.Address != nil {
		updates["address"] = *r.Address
	}
	if r.Bio != nil {
		updates["bio"] = *r.Bio
	}
	return updates
}

// UpdateUserProfile handles PUT /users/:email and PATCH /users/:email -
// partial profile update; absent fields are left alone
func UpdateUserProfile(c *gin.Context) {
	email := c.Param("email")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	updates := req.updates()
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "No updatable fields provided",
			},
		})
		return
	}

	db := config.GetDB()
	result := db.Model(&models.User{}).Where("email = ?", email).Updates(updates)
	if result.Error != nil {
		respondServiceError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "User not found",
			},
		})
		return
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"data":    user,
	})
}

// UpdateUserRoleRequest represents the role patch request body
type UpdateUserRoleRequest struct {
	Role string `json:"role"`
}

// UpdateUserRole handles PATCH /users/:email/role - switches a user between
// the customer and admin roles
func UpdateUserRole(c *gin.Context) {
	email := c.Param("email")

	var req UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	if req.Role != "customer" && req.Role != "admin" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid role",
			},
		})
		return
	}

	result := config.GetDB().Model(&models.User{}).
		Where("email = ?", email).
		Update("role", req.Role)
	if result.Error != nil {
		respondServiceError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "User not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Role updated to " + req.Role,
	})
}

// ListUsers handles GET /users - lists every user (admins only)
func ListUsers(c *gin.Context) {
	users := []models.User{}
	if err := config.GetDB().Find(&users).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    users,
	})
}
