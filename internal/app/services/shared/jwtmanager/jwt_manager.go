package jwtmanager

import (
	"clinic-ledger-service/internal/app/config"
	"clinic-ledger-service/internal/app/models"
	"clinic-ledger-service/internal/pkg/constvars"
	"clinic-ledger-service/internal/pkg/exceptions"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// Claims carried by staff access tokens. Tokens are issued by the identity
// provider; this service only verifies them.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager verifies HS256 access tokens.
type JWTManager struct {
	log    *zap.Logger
	secret []byte
	issuer string
	now    func() time.Time
}

func NewJWTManager(cfg *config.InternalConfig, log *zap.Logger) (*JWTManager, error) {
	secret := strings.TrimSpace(cfg.JWT.Secret)
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}
	return &JWTManager{
		log:    log,
		secret: []byte(secret),
		issuer: strings.TrimSpace(cfg.JWT.Issuer),
		now:    time.Now,
	}, nil
}

// VerifyToken checks signature, expiry and issuer and returns the caller.
func (j *JWTManager) VerifyToken(ctx context.Context, token string) (models.Identity, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if strings.TrimSpace(token) == "" {
		return models.Identity{}, exceptions.ErrTokenMissing(nil)
	}

	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New(constvars.ErrDevAuthSigningMethod)
		}
		return j.secret, nil
	})
	if err != nil || !parsed.Valid {
		j.log.Info("JWTManager.VerifyToken rejected token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return models.Identity{}, exceptions.ErrTokenInvalidOrExpired(err)
	}

	if j.issuer != "" && !claims.VerifyIssuer(j.issuer, true) {
		return models.Identity{}, exceptions.ErrTokenInvalidOrExpired(fmt.Errorf("unexpected issuer %q", claims.Issuer))
	}
	if claims.UserID == "" || claims.Role == "" {
		return models.Identity{}, exceptions.ErrTokenInvalidOrExpired(errors.New("user_id or role claim missing"))
	}

	return models.Identity{UserID: claims.UserID, Role: claims.Role}, nil
}

// CreateToken signs a token for identity. Used by tooling and tests; the
// HTTP surface never issues tokens.
func (j *JWTManager) CreateToken(identity models.Identity, ttl time.Duration) (string, error) {
	now := j.now().UTC()
	claims := Claims{
		UserID: identity.UserID,
		Role:   identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
}
