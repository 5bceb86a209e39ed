package jwt

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/eventz-dev/eventz/internal/domain"
	internal_errors "github.com/eventz-dev/eventz/internal/errors"
	"github.com/eventz-dev/eventz/internal/logger"
)

type JwtService interface {
	NewToken(sess domain.Session) (string, error)
	DecodeSession(jwtStr string) (*domain.Session, error)
}

type Jwt struct {
	secretKey string
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) JwtService {
	return &Jwt{secretKey, ttl}
}

func (j *Jwt) NewToken(sess domain.Session) (string, error) {
	claims := jwt.MapClaims{}
	claims["uid"] = sess.UserId
	claims["username"] = sess.Username
	claims["wallet"] = sess.WalletAddress
	claims["admin"] = sess.Admin
	claims["exp"] = time.Now().Add(j.ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("failed to sign token", "error", err)
		return "", errors.New("Can't create token")
	}

	return tokenString, nil
}

func (j *Jwt) DecodeSession(jwtStr string) (*domain.Session, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		// Verify signing algorithm
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, &internal_errors.ErrorWithStatusCode{Message: fmt.Sprintf("Unexpected signing method: %v", token.Header["alg"]), StatusCode: http.StatusUnauthorized}
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid token signature", StatusCode: http.StatusUnauthorized}
	}

	if !token.Valid {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid access token", StatusCode: http.StatusUnauthorized}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid token claims", StatusCode: http.StatusUnauthorized}
	}

	sess := &domain.Session{}
	if uid, ok := claims["uid"].(string); ok {
		sess.UserId = uid
	}
	if username, ok := claims["username"].(string); ok {
		sess.Username = username
	}
	if wallet, ok := claims["wallet"].(string); ok {
		sess.WalletAddress = wallet
	}
	if admin, ok := claims["admin"].(bool); ok {
		sess.Admin = admin
	}
	if sess.UserId == "" {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid token claims", StatusCode: http.StatusUnauthorized}
	}

	return sess, nil
}
