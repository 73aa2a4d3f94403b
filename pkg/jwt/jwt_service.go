package jwt

import (
	"errors"
	"fmt"
	"time"

	"canteen-backend/domain"
	"canteen-backend/internal/utils"

	"github.com/golang-jwt/jwt/v4"
)

const SessionTTL = 2 * time.Hour

type (
	JWTService interface {
		GenerateSessionToken(userID string, sessionID string, expiresAt time.Time) (string, error)
		ParseSessionToken(token string) (*SessionClaims, error)
		GenerateActionToken(purpose string, data map[string]any, duration time.Duration) (string, error)
		ValidateActionToken(token string, purpose string) (jwt.MapClaims, error)
	}

	SessionClaims struct {
		UserID    string `json:"user_id"`
		SessionID string `json:"session_id"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
	}
)

func getSecretKey() string {
	utils.LoadConfig()
	return utils.GetConfig("JWT_SECRET")
}

func NewJWTService() JWTService {
	return NewJWTServiceWithSecret(getSecretKey())
}

func NewJWTServiceWithSecret(secret string) JWTService {
	return &jwtService{
		secretKey: secret,
		issuer:    "CANTEEN",
	}
}

func (j *jwtService) GenerateSessionToken(userID string, sessionID string, expiresAt time.Time) (string, error) {
	claims := SessionClaims{
		userID,
		sessionID,
		jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ParseSessionToken(token string) (*SessionClaims, error) {
	t_Token, err := jwt.ParseWithClaims(token, &SessionClaims{}, j.parseToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	claims, ok := t_Token.Claims.(*SessionClaims)
	if !ok || !t_Token.Valid || claims.UserID == "" || claims.SessionID == "" || claims.Issuer != j.issuer {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

// GenerateActionToken signs a short-lived single-purpose token such as an
// email confirmation link or an OAuth state value.
func (j *jwtService) GenerateActionToken(purpose string, data map[string]any, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{}

	for key, value := range data {
		claims[key] = value
	}

	claims["purpose"] = purpose
	claims["exp"] = time.Now().Add(duration).Unix()
	claims["iat"] = time.Now().Unix()
	claims["iss"] = j.issuer

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) ValidateActionToken(token string, purpose string) (jwt.MapClaims, error) {
	t_Token, err := jwt.ParseWithClaims(token, jwt.MapClaims{}, j.parseToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := t_Token.Claims.(jwt.MapClaims)
	if !ok || !t_Token.Valid || claims["purpose"] != purpose {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}
