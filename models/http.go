package models

import "time"

// AuthRequest is the JSON body of the register and login endpoints.
type AuthRequest struct {
	// Username as entered by the user. Normalization (trim, lowercase,
	// character stripping) happens server-side.
	Username string `json:"username"`

	// Password in plain text. Carried only in the request body of a
	// confidentiality-preserving channel and hashed immediately on arrival.
	Password string `json:"password"`
}

// UsernameRequest is the JSON body of the username push endpoint.
type UsernameRequest struct {
	Username string `json:"username"`
}

// UsernamesResponse is returned by the recent-usernames endpoint, newest
// entry first.
type UsernamesResponse struct {
	Usernames []RecentUsername `json:"usernames"`
}

// OKResponse is the minimal success/failure envelope used by endpoints that
// carry no further payload.
type OKResponse struct {
	OK bool `json:"ok"`
}

// ErrorResponse is the envelope for user-facing errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	OK   bool   `json:"ok"`
	Name string `json:"name"`

	// Token is the opaque session token for clients that do not use the
	// session cookie (e.g. the CLI client).
	Token string `json:"token"`

	// ExpiresAt is the session's initial sliding-expiry deadline.
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionCheckResponse is returned by the session check endpoint.
// A missing, expired, or superseded token yields OK=false with HTTP 200 —
// never an error status.
type SessionCheckResponse struct {
	OK        bool       `json:"ok"`
	Name      string     `json:"name,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	// Progress is the freshly accrued snapshot, present only when OK.
	Progress *ProgressInfo `json:"progress,omitempty"`
}

// ProgressInfo is the progress snapshot nested in session check responses.
type ProgressInfo struct {
	Level      int64   `json:"level"`
	XP         float64 `json:"xp"`
	XPPerLevel float64 `json:"per_level"`
	XPPerSec   float64 `json:"per_sec"`
}

// ProgressResponse is returned by the progress sync endpoint.
//
// ForceLogout is set when the presented session has been superseded by a
// newer login: the caller must discard its token, but the progress snapshot
// still reflects the accrual that just happened.
type ProgressResponse struct {
	OK          bool      `json:"ok"`
	ForceLogout bool      `json:"force_logout,omitempty"`
	Name        string    `json:"name"`
	Level       int64     `json:"level"`
	XP          float64   `json:"xp"`
	XPPerLevel  float64   `json:"per_level"`
	XPPerSec    float64   `json:"per_sec"`
	ServerTime  time.Time `json:"server_time"`
}
