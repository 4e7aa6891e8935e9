package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys filled by the JWT middleware.
const (
	LocUserID    = "user_id"
	LocUserRole  = "userRole"
	LocUserName  = "user_name"
	LocRawToken  = "raw_token"
	LocJWTClaims = "jwt_claims"
)

// Actor is the identity a request acts as. Services take it as an explicit
// argument and never read request state themselves.
type Actor struct {
	ID   uuid.UUID `json:"id"`
	Role string    `json:"role"`
	Name string    `json:"name,omitempty"`
}

func (a Actor) Is(role string) bool { return a.Role == role }

// ActorFromCtx returns 401 when the middleware did not authenticate the request.
func ActorFromCtx(c *fiber.Ctx) (Actor, error) {
	id, err := GetUserIDFromToken(c)
	if err != nil {
		return Actor{}, err
	}
	role, _ := c.Locals(LocUserRole).(string)
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return Actor{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: missing role information")
	}
	name, _ := c.Locals(LocUserName).(string)
	return Actor{ID: id, Role: role, Name: name}, nil
}

// GetUserIDFromToken reads c.Locals("user_id"): 401 when missing, 400 when malformed.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	var s string
	switch t := c.Locals(LocUserID).(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}
		return t, nil
	case string:
		s = t
	case []byte:
		s = string(t)
	case nil:
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid user id in token")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid user id in token")
	}
	return id, nil
}
