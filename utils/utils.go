package utils

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/unicode/norm"
)

const (
	SessionCookieName = "session"

	ParamMissingError      = "One or more of the required parameters was missing."
	PasswordsDoNotMatchErr = "Passwords do not match"
	LoginFailedErr         = "Login failed"
	PasswordResetFailedErr = "Password reset failed"
	UnauthorizedErr        = "unauthorized"
	ResetRequestedMessage  = "If that account exists, a reset token has been issued."
)

func MissingParamError(param string) string {
	return fmt.Sprintf("Missing %s parameter.", param)
}

// Hasher is the one-way password hashing collaborator.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	return string(bytes), err
}

func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NormalizeEmail canonicalizes an email for storage and lookup: NFC form,
// trimmed, lowercased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(email)))
}

// SessionTTL is the validity window of issued session tokens.
func SessionTTL() time.Duration {
	hStr := os.Getenv("SESSION_TTL_HOURS")
	hours, _ := strconv.Atoi(hStr)
	if hours <= 0 {
		hours = 72
	}
	return time.Duration(hours) * time.Hour
}

// ResetTTL is the validity window of password-reset tokens.
func ResetTTL() time.Duration {
	mStr := os.Getenv("RESET_TTL_MINUTES")
	mins, _ := strconv.Atoi(mStr)
	if mins <= 0 {
		mins = 60
	}
	return time.Duration(mins) * time.Minute
}

func SetSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Domain:   os.Getenv("COOKIE_DOMAIN"),
		HttpOnly: true,
		Secure:   os.Getenv("COOKIE_SECURE") == "true",
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(c *gin.Context) {
	secure := os.Getenv("COOKIE_SECURE") == "true"
	domain := os.Getenv("COOKIE_DOMAIN")

	c.SetCookie(SessionCookieName, "", -1, "/", domain, secure, true)
}
