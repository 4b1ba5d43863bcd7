package model

import (
	"time"

	"github.com/golang-jwt/jwt"
)

type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	UserName  string    `json:"user_name"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserClaims are the JWT claims carried by the session token
type UserClaims struct {
	UserName string `json:"user_name"`
	jwt.StandardClaims
}

// ConnectedAccount stores TikTok OAuth credentials per user
type ConnectedAccount struct {
	ID           int64      `json:"id"`
	UserID       string     `json:"user_id"`
	OpenID       string     `json:"open_id"`
	Username     string     `json:"username"`
	AccessToken  string     `json:"-"`
	RefreshToken string     `json:"-"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	Scopes       string     `json:"scopes"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// StatsSnapshot is one persisted daily reading of an account's stats, used to
// build history charts within the plan's history window
type StatsSnapshot struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Followers  int64     `json:"followers"`
	Likes      int64     `json:"likes"`
	Videos     int64     `json:"videos"`
	TotalViews int64     `json:"total_views"`
	CapturedAt time.Time `json:"captured_at"`
}
