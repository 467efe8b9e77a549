package controllers

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/princinho/accountsapi/auth"
	"github.com/princinho/accountsapi/dto"
	"github.com/princinho/accountsapi/models"
	"github.com/princinho/accountsapi/store"
	"github.com/princinho/accountsapi/utils"
)

// POST /api/auth/register
func Register(users store.UserStore, hasher utils.Hasher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.RegisterDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": utils.ParamMissingError})
			return
		}

		// Per-field missing checks so the client knows which one to fix.
		for _, p := range []struct{ name, value string }{
			{"firstName", body.FirstName},
			{"lastName", body.LastName},
			{"email", body.Email},
			{"password", body.Password},
			{"confirmPassword", body.ConfirmPassword},
		} {
			if p.value == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": utils.MissingParamError(p.name)})
				return
			}
		}

		if body.Password != body.ConfirmPassword {
			c.JSON(http.StatusBadRequest, gin.H{"error": utils.PasswordsDoNotMatchErr})
			return
		}

		hash, err := hasher.Hash(body.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
			return
		}

		user := &models.User{
			Email:        utils.NormalizeEmail(body.Email),
			FirstName:    body.FirstName,
			LastName:     body.LastName,
			Role:         models.RoleStandard, // self-service signups are never admins
			PasswordHash: hash,
		}

		if _, err := users.Create(c.Request.Context(), user); err != nil {
			if errors.Is(err, store.ErrDuplicateEmail) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "email already in use"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, user)
	}
}

// POST /api/auth/login
func Login(users store.UserStore, hasher utils.Hasher, tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.LoginDTO
		if err := c.ShouldBindJSON(&body); err != nil || body.Email == "" || body.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": utils.ParamMissingError})
			return
		}

		user, err := users.FindByEmail(c.Request.Context(), utils.NormalizeEmail(body.Email))
		if err != nil {
			log.Print("login lookup failed: ", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Unknown email and bad password produce the same response.
		if user == nil || !hasher.Verify(body.Password, user.PasswordHash) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": utils.LoginFailedErr})
			return
		}

		credential, err := tokens.Issue(auth.SessionClaim{
			UserID: user.ID.Hex(),
			Role:   user.Role,
		})
		if err != nil {
			log.Print("token issuance failed: ", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue session"})
			return
		}

		utils.SetSessionCookie(c, credential, tokens.TTL())
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// GET /api/auth/logout
//
// Clears the client-side credential only. The token itself stays valid
// until its natural expiry; there is no server-side session to revoke.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.ClearSessionCookie(c)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// POST /api/auth/forgot-password
func ForgotPassword(users store.UserStore, resets *auth.ResetManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.ForgotPasswordDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": utils.ParamMissingError})
			return
		}

		user, err := users.FindByEmail(c.Request.Context(), utils.NormalizeEmail(body.Email))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
			return
		}

		// Respond identically whether or not the email resolves, so the
		// endpoint cannot be used to enumerate accounts.
		resp := gin.H{"message": utils.ResetRequestedMessage}
		if user != nil {
			req, err := resets.RequestReset(c.Request.Context(), user.ID.Hex())
			if err != nil {
				log.Print("reset request failed: ", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "reset request failed"})
				return
			}
			// Token delivery is out-of-band (email). Exposing it in the
			// response is for local development only.
			if os.Getenv("RESET_DEV_EXPOSE_TOKEN") == "true" {
				resp["token"] = req.Token
				resp["userId"] = user.ID.Hex()
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}

// POST /api/auth/reset-password
func ResetPassword(resets *auth.ResetManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.ResetPasswordDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": utils.ParamMissingError})
			return
		}

		user, err := resets.Redeem(c.Request.Context(), body.UserID, body.Token, body.NewPassword)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrUserNotFound),
				errors.Is(err, auth.ErrNoResetPending),
				errors.Is(err, auth.ErrTokenMismatch),
				errors.Is(err, auth.ErrTokenExpired):
				// One message for every redemption failure: the reason
				// would tell an attacker which ids have pending resets.
				c.JSON(http.StatusBadRequest, gin.H{"error": utils.PasswordResetFailedErr})
			default:
				log.Print("reset redemption failed: ", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "reset failed"})
			}
			return
		}

		c.JSON(http.StatusOK, user)
	}
}
