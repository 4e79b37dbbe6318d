package handlers

import (
	"net/http"
	"strconv"

	"github.com/chachabrian/covoit-backend/internal/domain"
	"github.com/chachabrian/covoit-backend/internal/middleware"
	"github.com/chachabrian/covoit-backend/pkg/utils"
	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code domain.Code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     message,
		Code:      string(code),
		RequestID: middleware.GetRequestID(c),
	})
}

// StatusFor maps an error code to its HTTP status.
func StatusFor(code domain.Code) int {
	switch code {
	case domain.CodeInvalidRequest, domain.CodeSelfBooking, domain.CodeCodeMismatch:
		return http.StatusBadRequest
	case domain.CodeUnauthorized:
		return http.StatusForbidden
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeDuplicateActiveRequest, domain.CodeAlreadyDecided,
		domain.CodeInvalidState, domain.CodeInsufficientCapacity:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondDomainError maps domain errors to HTTP responses. Internal errors
// are logged and answered with a generic message.
func RespondDomainError(c *gin.Context, err error) {
	code := domain.CodeOf(err)
	status := StatusFor(code)
	if status == http.StatusInternalServerError {
		utils.LogEvent(middleware.GetRequestID(c), "http", c.Request.Method+" "+c.FullPath(), err.Error())
		respondError(c, status, domain.CodeInternal, "something went wrong, please try again")
		return
	}
	respondError(c, status, code, err.Error())
}

func respondBindError(c *gin.Context, err error) {
	respondError(c, http.StatusBadRequest, domain.CodeInvalidRequest, err.Error())
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, domain.CodeInvalidRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
