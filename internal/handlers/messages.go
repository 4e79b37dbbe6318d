package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetMessages(conv Conversations) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		msgs, err := conv.List(c.Request.Context(), id, c.GetUint("userId"))
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, msgs)
	}
}

// SendMessage posts to the other party of the booking.
func SendMessage(conv Conversations) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		var input struct {
			Content string `json:"content"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		msg, err := conv.Send(c.Request.Context(), id, c.GetUint("userId"), input.Content)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusCreated, msg)
	}
}

func GetConversations(conv Conversations) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := conv.Conversations(c.Request.Context(), c.GetUint("userId"))
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}
