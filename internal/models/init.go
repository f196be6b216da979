package models

import (
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/constants"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultAdmin creates the bootstrap admin account when none exists.
func InitDefaultAdmin(username, password string) error {
	var count int64
	DB.Model(&Admin{}).Count(&count)

	// keep the bootstrap admin on the admin role even after later edits
	if count > 0 {
		if err := DB.Model(&Admin{}).Where("username = ?", "admin").Update("role", constants.AdminRoleAdmin).Error; err != nil {
			logger.Warnw("ensure_default_admin_role_failed", "error", err)
		}
		return nil
	}

	if username == "" {
		username = "admin"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := Admin{
		Username:     username,
		PasswordHash: string(hash),
		Role:         constants.AdminRoleAdmin,
	}

	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_admin_created_with_default_password", "username", username, "password", password)
		logger.Warnw("default_admin_password_change_required", "username", username)
	} else {
		logger.Warnw("default_admin_created", "username", username, "password_hidden", true)
	}

	return nil
}
