package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"attendance_backend/internals/constants"
	authRepo "attendance_backend/internals/features/users/auth/repository"
	authService "attendance_backend/internals/features/users/auth/service"
	"attendance_backend/internals/features/users/user/model"
)

type UserSeed struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SeedUsersFromJSON inserts users missing by email; passwords are bcrypt-hashed.
func SeedUsersFromJSON(db *gorm.DB, filePath string) error {
	log.Info().Str("file", filePath).Msg("📥 reading users")

	file, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", filePath, err)
	}
	var inputs []UserSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}

	for _, data := range inputs {
		email := strings.ToLower(strings.TrimSpace(data.Email))
		if !constants.IsValidRole(data.Role) {
			return fmt.Errorf("user %s: unknown role %q", email, data.Role)
		}

		var existing model.UserModel
		err := db.Where("email = ?", email).First(&existing).Error
		if err == nil {
			log.Debug().Str("email", email).Msg("user exists, skipped")
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := authService.HashPassword(data.Password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", email, err)
		}
		u := model.UserModel{
			Name:     data.Name,
			Email:    email,
			Password: hashed,
			Role:     data.Role,
			IsActive: true,
		}
		if err := authRepo.CreateUser(context.Background(), db, &u); err != nil {
			return fmt.Errorf("insert user %s: %w", email, err)
		}
		log.Info().Str("email", email).Msg("✅ user inserted")
	}
	return nil
}
