package controllers

import (
	"errors"
	"net/http"
	"time"

	"arco-factory-manager/config"
	"arco-factory-manager/models"
	"arco-factory-manager/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Login signs a user in. A first sign-in with an unknown email provisions
// that account on the spot with the admin role.
func Login(c *gin.Context) {
	var in LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	var user models.User
	err := config.DB.Where("email = ?", in.Email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			utils.Error(c, http.StatusInternalServerError, "failed to create account", hashErr)
			return
		}
		user = models.User{
			Email:        in.Email,
			PasswordHash: string(hash),
			Role:         "admin",
			IsActive:     true,
		}
		if err := config.DB.Create(&user).Error; err != nil {
			config.LogError("auth", "Login", "auto-provision", err)
			utils.Error(c, http.StatusInternalServerError, "failed to create account", err)
			return
		}
		config.GetLogger().WithField("email", user.Email).Info("auto-provisioned admin account")
	case err != nil:
		config.LogError("auth", "Login", "lookup", err)
		utils.Error(c, http.StatusInternalServerError, "failed to sign in", err)
		return
	default:
		if !user.IsActive {
			utils.Error(c, http.StatusUnauthorized, "account is disabled", nil)
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
			utils.Error(c, http.StatusUnauthorized, "wrong password", nil)
			return
		}
	}

	now := time.Now().UTC()
	if err := config.DB.Model(&user).Update("last_login_at", now).Error; err != nil {
		config.LogError("auth", "Login", "update last_login_at", err)
	}

	token, err := utils.GenerateToken(user.ID, user.Name, user.Role, 24*time.Hour)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to issue token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "signed in",
		"token":   token,
		"data":    user,
	})
}

func Profile(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	var user models.User
	if err := config.DB.First(&user, uid).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "user not found", err)
		return
	}
	utils.Success(c, "profile", user)
}

type ChangePasswordInput struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

func ChangePassword(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	var in ChangePasswordInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	var user models.User
	if err := config.DB.First(&user, uid).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "user not found", err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.OldPassword)) != nil {
		utils.Error(c, http.StatusUnauthorized, "wrong password", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to change password", err)
		return
	}
	if err := config.DB.Model(&user).Update("password_hash", string(hash)).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to change password", err)
		return
	}
	utils.Success(c, "password changed", nil)
}
