package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Domenick1991/wanderlust/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the identity fields a request needs without a user lookup.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	IsAdmin  bool   `json:"admin"`
}

type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs an HS256 token for the user.
func (i *TokenIssuer) Issue(user *domain.User) (string, error) {
	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Parse validates the token and returns the identity it carries. Any failure
// is ErrUnauthenticated.
func (i *TokenIssuer) Parse(tokenString string) (*domain.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", domain.ErrUnauthenticated)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, errors.New("invalid subject"))
	}
	return &domain.Identity{UserID: userID, Username: claims.Username, IsAdmin: claims.IsAdmin}, nil
}
