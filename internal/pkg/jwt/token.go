package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
)

// ErrInvalidClaims is returned when a valid signature carries unusable claims
var ErrInvalidClaims = errors.New("invalid token claims")

// Identity is the driver identity carried by a token
type Identity struct {
	DriverID uuid.UUID
	MSISDN   string
	Role     string
}

// GenerateToken generates a JWT token for the given driver
func GenerateToken(driverID uuid.UUID, msisdn, role string, cfg *models.Config) (string, int64, error) {
	expiresAt := time.Now().Add(time.Duration(cfg.JWT.Expiration) * time.Minute).Unix()

	claims := jwt.MapClaims{
		"driver_id": driverID.String(),
		"msisdn":    msisdn,
		"role":      role,
		"exp":       expiresAt,
		"iss":       cfg.JWT.Issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(cfg.JWT.Secret))
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresAt, nil
}

// ValidateToken validates a JWT token and returns the claims
func ValidateToken(tokenString string, secret string) (*jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return &claims, nil
	}

	return nil, ErrInvalidClaims
}

// ParseIdentity validates the token and extracts the driver identity
func ParseIdentity(tokenString, secret string) (*Identity, error) {
	claims, err := ValidateToken(tokenString, secret)
	if err != nil {
		return nil, err
	}

	raw, ok := (*claims)["driver_id"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing driver_id", ErrInvalidClaims)
	}
	driverID, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: driver_id is not a valid UUID", ErrInvalidClaims)
	}

	msisdn, _ := (*claims)["msisdn"].(string)
	role, _ := (*claims)["role"].(string)

	return &Identity{DriverID: driverID, MSISDN: msisdn, Role: role}, nil
}
