package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrMissingKey   = errors.New("signing secret is required")
)

// Claims identifies the comment author a bearer token was issued to
type Claims struct {
	UserID uint   `json:"uid"`
	Name   string `json:"name"`

	jwt.RegisteredClaims
}

// Service issues and validates HS256 bearer tokens
type Service struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewService creates a token service signing with secret
func NewService(secret, issuer string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, ErrMissingKey
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// IssueToken signs a token for the given user
func (s *Service) IssueToken(userID uint, name string) (string, error) {
	if userID == 0 {
		return "", fmt.Errorf("issuing token: user id is required")
	}

	now := s.now()
	claims := Claims{
		UserID: userID,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies the signature, issuer and lifetime of a token
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
