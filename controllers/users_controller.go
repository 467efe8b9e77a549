package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/accountsapi/dto"
	"github.com/princinho/accountsapi/models"
	"github.com/princinho/accountsapi/store"
	"github.com/princinho/accountsapi/utils"
)

// GET /api/users/all
func GetUsers(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := users.FindAll(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": all})
	}
}

// POST /api/users/add
func CreateUser(users store.UserStore, hasher utils.Hasher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateUserDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": utils.ParamMissingError})
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
			Role:         models.RoleStandard, // admins are only ever seeded
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

// PUT /api/users/update/:id
func UpdateUser(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.UpdateUserDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": utils.ParamMissingError})
			return
		}

		user, err := users.Update(c.Request.Context(), c.Param("id"), store.UserUpdate{
			FirstName: body.FirstName,
			LastName:  body.LastName,
		})
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// DELETE /api/users/delete/:id
func DeleteUser(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := users.Delete(c.Request.Context(), c.Param("id"))
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// POST /api/users/:id/avatar
func UploadAvatar(users store.UserStore, v *utils.FileValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		user, err := users.FindByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if user == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		fileHeader, err := c.FormFile("avatar")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
			return
		}
		if _, err := v.ValidateFile(fileHeader); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		client, bucket, err := utils.NewGCSClient(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
			return
		}
		defer client.Close()

		url, err := utils.UploadAvatarToGCS(c.Request.Context(), client, bucket, id, fileHeader)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if err := users.SetAvatarURL(c.Request.Context(), id, url); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"avatarUrl": url})
	}
}
