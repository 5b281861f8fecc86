package core

import (
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

// Roles, as named by the backend profiles.
const (
	RoleAdmin      = "Admin"
	RoleInstructor = "Instructor"
	RoleStudent    = "Student"
	RoleAlumni     = "Alumni"
)

var (
	NowFunc = time.Now // mockable

	// tokens expiring within tokenLeeway are treated as expired
	tokenLeeway = 30 * time.Second

	ErrNoToken = errors.New("no access token")
)

type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username,omitempty"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

func (u User) FullName() string {
	return CleanString(u.FirstName + " " + u.LastName)
}

func (u User) IsAdmin() bool {
	return strings.EqualFold(u.Role, RoleAdmin)
}

func (u User) IsInstructor() bool {
	return strings.EqualFold(u.Role, RoleInstructor)
}

func (u User) IsStudent() bool {
	return strings.EqualFold(u.Role, RoleStudent)
}

// Claims are the fields we read from the backend's access tokens.
// Signatures are never verified client-side.
type Claims struct {
	jwt.StandardClaims
	TokenType string `json:"token_type,omitempty"`
	UserID    int    `json:"user_id,omitempty"`
}

// ParseClaims decodes token without verifying its signature.
func ParseClaims(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	claims := new(Claims)
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return nil, errors.Wrap(err, "parsing token claims")
	}
	return claims, nil
}

// Session is the authenticated (or anonymous) context of one caller.
// It is created per request (portal) or per command (cli) and passed explicitly.
type Session struct {
	User         *User
	AccessToken  string
	RefreshToken string
}

func NewSession(access, refresh string) *Session {
	return &Session{AccessToken: access, RefreshToken: refresh}
}

func (s *Session) IsAuthenticated() bool {
	return s != nil && s.AccessToken != ""
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.User != nil && s.User.IsAdmin()
}

func (s *Session) Role() string {
	if s == nil || s.User == nil {
		return ""
	}
	return s.User.Role
}

// CurrentUser returns the session's user or an empty one.
func (s *Session) CurrentUser() User {
	if s == nil || s.User == nil {
		return User{}
	}
	return *s.User
}

// AccessExpired tells whether the access token is missing, unreadable or about to expire.
func (s *Session) AccessExpired() bool {
	if !s.IsAuthenticated() {
		return true
	}
	claims, err := ParseClaims(s.AccessToken)
	if err != nil {
		return true
	}
	if claims.ExpiresAt == 0 {
		return false
	}
	return NowFunc().Add(tokenLeeway).Unix() >= claims.ExpiresAt
}

// CanRefresh tells whether the refresh token is present and still valid.
func (s *Session) CanRefresh() bool {
	if s == nil || s.RefreshToken == "" {
		return false
	}
	claims, err := ParseClaims(s.RefreshToken)
	if err != nil {
		return false
	}
	return claims.ExpiresAt == 0 || NowFunc().Unix() < claims.ExpiresAt
}
