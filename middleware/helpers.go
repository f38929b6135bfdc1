package middleware

import (
	"context"
	"fmt"

	"github.com/Dosada05/tennis-league/models"
	"github.com/golang-jwt/jwt/v4"
)

// Определяем константы для имен JWT claims
const (
	JWTClaimUserID = "user_id"
	JWTClaimRole   = "role"
)

func GetUserIDFromContext(ctx context.Context) (string, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", errNoClaims
	}

	userIDClaim, ok := claims[JWTClaimUserID]
	if !ok {
		return "", fmt.Errorf("missing '%s' claim in token", JWTClaimUserID)
	}
	userID, ok := userIDClaim.(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("invalid '%s' claim: expected non-empty string, got %T", JWTClaimUserID, userIDClaim)
	}
	return userID, nil
}

func GetUserRoleFromContext(ctx context.Context) (models.UserRole, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", errNoClaims
	}

	roleClaim, ok := claims[JWTClaimRole]
	if !ok {
		return "", fmt.Errorf("missing '%s' claim in token", JWTClaimRole)
	}
	roleStr, ok := roleClaim.(string)
	if !ok {
		return "", fmt.Errorf("invalid type for '%s' claim: expected string, got %T", JWTClaimRole, roleClaim)
	}

	role := models.UserRole(roleStr)
	switch role {
	case models.RoleAdmin, models.RoleViewer:
		return role, nil
	default:
		return "", fmt.Errorf("invalid role value in claim: %q", roleStr)
	}
}
