package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintracker/internal/errors"
	"fintracker/internal/middleware"
	"fintracker/internal/uuid"
)

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse represents a plain confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// parsePathID reads a UUID path parameter.
// Returns ErrInvalidInput if the parameter is not a valid UUID.
func parsePathID(c *gin.Context, param string) (string, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// parseFlexibleTime accepts a calendar date (2006-01-02) or an RFC 3339
// timestamp.
func parseFlexibleTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or RFC3339", value)
}

// parseOptionalTime parses value when it is non-empty.
func parseOptionalTime(value, field string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := parseFlexibleTime(value)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, field+": "+err.Error())
	}
	return &t, nil
}

// parseIDList flattens repeated and comma-separated values into UUIDs.
func parseIDList(values []string, field string) ([]string, error) {
	var ids []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+field+" id: "+part)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// respondWithError records err on the context and aborts. The ErrorHandler
// middleware renders it as an ErrorResponse.
func respondWithError(c *gin.Context, err error) {
	middleware.AbortWithError(c, err)
}
