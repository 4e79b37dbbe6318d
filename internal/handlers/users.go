package handlers

import (
	"net/http"

	"github.com/chachabrian/covoit-backend/internal/domain"
	"github.com/chachabrian/covoit-backend/internal/models"
	"github.com/gin-gonic/gin"
)

func profileResponse(u *models.User) gin.H {
	return gin.H{
		"id":          u.ID,
		"displayName": u.DisplayName,
		"email":       u.Email,
		"phoneNumber": u.PhoneNumber,
	}
}

// GetProfile retrieves the user's profile
func GetProfile(users Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.Get(c.Request.Context(), c.GetUint("userId"))
		if err != nil {
			RespondDomainError(c, domain.Wrap("load profile", err))
			return
		}
		c.JSON(http.StatusOK, profileResponse(user))
	}
}

// UpdateProfile creates the local profile on first write.
func UpdateProfile(users Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			DisplayName *string `json:"displayName"`
			Email       *string `json:"email"`
			PhoneNumber *string `json:"phoneNumber"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		user, err := users.Get(c.Request.Context(), userId)
		if domain.IsNotFound(err) {
			user, err = &models.User{ID: userId}, nil
		}
		if err != nil {
			RespondDomainError(c, domain.Wrap("load profile", err))
			return
		}

		if input.DisplayName != nil {
			user.DisplayName = *input.DisplayName
		}
		if input.Email != nil {
			user.Email = *input.Email
		}
		if input.PhoneNumber != nil {
			user.PhoneNumber = *input.PhoneNumber
		}

		if err := users.SaveProfile(c.Request.Context(), user); err != nil {
			RespondDomainError(c, domain.Internal("save profile", err))
			return
		}
		c.JSON(http.StatusOK, profileResponse(user))
	}
}
