package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yleanad/village-homeschool-app/internal/helpers"
	"github.com/yleanad/village-homeschool-app/internal/models"
)

// sessionFrom pulls the authenticated session placed on the context by the
// auth middleware. A missing session aborts with 401.
func sessionFrom(c *gin.Context) (*helpers.Session, bool) {
	value, exists := c.Get("session")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
		return nil, false
	}
	session, ok := value.(*helpers.Session)
	if !ok {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse("invalid session"))
		return nil, false
	}
	return session, true
}

// familySessionFrom additionally requires that the user has completed
// onboarding and owns a family profile.
func familySessionFrom(c *gin.Context) (*helpers.Session, bool) {
	session, ok := sessionFrom(c)
	if !ok {
		return nil, false
	}
	if !session.HasFamily() {
		c.JSON(http.StatusPreconditionFailed, models.ErrorResponse("create a family profile first"))
		return nil, false
	}
	return session, true
}

// parseIDParam parses a uuid path parameter, tolerating stray quotes from
// templated clients.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := helpers.StringTrim(c.Param(name))
	if raw == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(name+" is required"))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid "+name+" format"))
		return uuid.Nil, false
	}
	return id, true
}

// serviceError writes the response for a failed service call using the
// error taxonomy's status mapping.
func serviceError(c *gin.Context, err error) {
	c.JSON(models.StatusCode(err), models.ErrorResponse(err.Error()))
}
