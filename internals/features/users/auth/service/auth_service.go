package service

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"attendance_backend/internals/configs"
	authRepo "attendance_backend/internals/features/users/auth/repository"
	helper "attendance_backend/internals/helpers"
	helperAuth "attendance_backend/internals/helpers/auth"
)

const blacklistFallbackTTL = 2 * time.Minute

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

func nowUTC() time.Time { return time.Now().UTC() }

// ========================== LOGIN ==========================
func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input LoginRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	input.Email = strings.TrimSpace(input.Email)
	if err := helper.Validate.Struct(&input); err != nil {
		return helper.JsonFromValidator(c, err)
	}

	user, err := authRepo.FindUserByEmail(c.UserContext(), db, input.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error().Err(err).Msg("login lookup")
			return helper.JsonError(c, fiber.StatusInternalServerError, "")
		}
		return helper.JsonError(c, fiber.StatusUnauthorized, "These credentials do not match our records.")
	}
	if err := CheckPasswordHash(user.Password, input.Password); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "These credentials do not match our records.")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated.")
	}

	token, exp, err := IssueAccessToken(*user, configs.JWTSecret, nowUTC(), configs.JWTTTL)
	if err != nil {
		log.Error().Err(err).Msg("issue access token")
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  exp,
	})

	return helper.JsonOK(c, "Login successful", LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   exp,
		User: UserResponse{
			ID:    user.ID.String(),
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	})
}

// ========================== LOGOUT ==========================
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	raw := helperAuth.GetRawAccessToken(c)
	if raw != "" {
		until := TokenExpiry(raw, configs.JWTSecret, nowUTC(), blacklistFallbackTTL)
		if err := helperAuth.Add(c.UserContext(), db, raw, configs.JWTSecret, until); err != nil {
			log.Warn().Err(err).Msg("failed to blacklist token")
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  nowUTC().Add(-time.Hour),
		MaxAge:   -1,
	})
	return helper.JsonOK(c, "Logout successful", nil)
}

// ========================== ME ==========================
func Me(db *gorm.DB, c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	user, err := authRepo.FindUserByID(c.UserContext(), db, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	return helper.JsonOK(c, "ok", UserResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})
}
