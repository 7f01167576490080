package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yleanad/village-homeschool-app/internal/models"
	"github.com/yleanad/village-homeschool-app/internal/services"
)

func DiscoverNearby(d *services.DiscoveryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := familySessionFrom(c)
		if !ok {
			return
		}

		// Omitted radius falls back to the profile's search radius.
		var radius float64
		if raw := c.Query("radius"); raw != "" {
			parsed, err := strconv.ParseFloat(raw, 64)
			if err != nil || parsed <= 0 {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid radius parameter"))
				return
			}
			radius = parsed
		}

		var filter services.DiscoveryFilter
		if raw := c.Query("min_age"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid min_age parameter"))
				return
			}
			filter.MinAge = parsed
		}
		if raw := c.Query("max_age"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid max_age parameter"))
				return
			}
			filter.MaxAge = parsed
		}
		if raw := c.Query("interests"); raw != "" {
			filter.Interests = strings.Split(raw, ",")
		}

		results, err := d.DiscoverNearby(c.Request.Context(), session, radius, filter)
		if err != nil {
			serviceError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(results, ""))
	}
}

func SearchFamilies(d *services.DiscoveryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := familySessionFrom(c)
		if !ok {
			return
		}

		query := c.Query("q")
		if query == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("q parameter is required"))
			return
		}

		results, err := d.SearchFamilies(c.Request.Context(), session, query)
		if err != nil {
			serviceError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(results, ""))
	}
}
