package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yleanad/village-homeschool-app/internal/models"
	"github.com/yleanad/village-homeschool-app/internal/services"
)

func CreateEvent(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := familySessionFrom(c)
		if !ok {
			return
		}

		var event models.Event
		if err := c.ShouldBindJSON(&event); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		created, err := e.CreateEvent(c.Request.Context(), session, &event)
		if err != nil {
			serviceError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "event created"))
	}
}

func ListEvents(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := sessionFrom(c); !ok {
			return
		}

		city := c.Query("city")
		eventType := models.EventType(c.Query("type"))
		upcomingOnly := c.DefaultQuery("upcoming", "true") != "false"

		limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid limit parameter"))
			return
		}
		offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if err != nil || offset < 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid offset parameter"))
			return
		}

		events, total, err := e.ListEvents(c.Request.Context(), city, eventType, upcomingOnly, offset, limit)
		if err != nil {
			serviceError(c, err)
			return
		}

		page := (offset / limit) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(events, page, limit, total))
	}
}

func GetEvent(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := sessionFrom(c); !ok {
			return
		}

		eventID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		event, err := e.GetEvent(c.Request.Context(), eventID)
		if err != nil {
			serviceError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(event, ""))
	}
}

func MyEvents(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := familySessionFrom(c)
		if !ok {
			return
		}

		hosted, attending, err := e.MyEvents(c.Request.Context(), session)
		if err != nil {
			serviceError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"hosted":    hosted,
			"attending": attending,
		}, ""))
	}
}

func CalendarEvents(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := familySessionFrom(c)
		if !ok {
			return
		}

		var year, month int
		var err error
		if raw := c.Query("year"); raw != "" {
			if year, err = strconv.Atoi(raw); err != nil || year < 1970 {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid year parameter"))
				return
			}
		}
		if raw := c.Query("month"); raw != "" {
			if month, err = strconv.Atoi(raw); err != nil || month < 1 || month > 12 {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid month parameter"))
				return
			}
		}

		events, err := e.CalendarEvents(c.Request.Context(), session, year, time.Month(month))
		if err != nil {
			serviceError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(events, ""))
	}
}

func RsvpEvent(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := familySessionFrom(c)
		if !ok {
			return
		}

		eventID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		if err := e.Rsvp(c.Request.Context(), session, eventID); err != nil {
			serviceError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "rsvp confirmed"))
	}
}

func CancelRsvp(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := familySessionFrom(c)
		if !ok {
			return
		}

		eventID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		if err := e.CancelRsvp(c.Request.Context(), session, eventID); err != nil {
			serviceError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "rsvp cancelled"))
	}
}
