package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yleanad/village-homeschool-app/internal/models"
	"github.com/yleanad/village-homeschool-app/internal/services"
)

func CreateMeetupRequest(m *services.MeetupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := familySessionFrom(c)
		if !ok {
			return
		}

		var request models.MeetupRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		created, err := m.CreateRequest(c.Request.Context(), session, &request)
		if err != nil {
			serviceError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "meetup request sent"))
	}
}

func ListMeetupRequests(m *services.MeetupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := familySessionFrom(c)
		if !ok {
			return
		}

		incoming, outgoing, err := m.ListRequests(c.Request.Context(), session)
		if err != nil {
			serviceError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"incoming": incoming,
			"outgoing": outgoing,
		}, ""))
	}
}

func AcceptMeetupRequest(m *services.MeetupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := familySessionFrom(c)
		if !ok {
			return
		}

		requestID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		accepted, err := m.Accept(c.Request.Context(), session, requestID)
		if err != nil {
			serviceError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(accepted, "meetup request accepted"))
	}
}

func DeclineMeetupRequest(m *services.MeetupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := familySessionFrom(c)
		if !ok {
			return
		}

		requestID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		declined, err := m.Decline(c.Request.Context(), session, requestID)
		if err != nil {
			serviceError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(declined, "meetup request declined"))
	}
}
