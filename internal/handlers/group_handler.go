package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yleanad/village-homeschool-app/internal/models"
	"github.com/yleanad/village-homeschool-app/internal/services"
)

func CreateGroup(g *services.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := familySessionFrom(c)
		if !ok {
			return
		}

		var group models.CoopGroup
		if err := c.ShouldBindJSON(&group); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		created, err := g.CreateGroup(c.Request.Context(), session, &group)
		if err != nil {
			serviceError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "group created"))
	}
}

func ListGroups(g *services.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := sessionFrom(c); !ok {
			return
		}

		groups, err := g.ListGroups(c.Request.Context(), c.Query("city"), models.GroupType(c.Query("type")))
		if err != nil {
			serviceError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(groups, ""))
	}
}

func MyGroups(g *services.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := familySessionFrom(c)
		if !ok {
			return
		}

		owned, memberOf, err := g.MyGroups(c.Request.Context(), session)
		if err != nil {
			serviceError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"owned":     owned,
			"member_of": memberOf,
		}, ""))
	}
}

func GetGroup(g *services.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := familySessionFrom(c)
		if !ok {
			return
		}

		groupID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		group, err := g.GetGroup(c.Request.Context(), session, groupID)
		if err != nil {
			serviceError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(group, ""))
	}
}

func JoinGroup(g *services.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := familySessionFrom(c)
		if !ok {
			return
		}

		groupID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		pending, err := g.Join(c.Request.Context(), session, groupID)
		if err != nil {
			serviceError(c, err)
			return
		}

		if pending {
			c.JSON(http.StatusAccepted, models.SuccessResponse(nil, "join request submitted"))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "joined group"))
	}
}

func LeaveGroup(g *services.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := familySessionFrom(c)
		if !ok {
			return
		}

		groupID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		if err := g.Leave(c.Request.Context(), session, groupID); err != nil {
			serviceError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "left group"))
	}
}

func ApproveJoinRequest(g *services.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := familySessionFrom(c)
		if !ok {
			return
		}

		groupID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		familyID, ok := parseIDParam(c, "family_id")
		if !ok {
			return
		}

		if err := g.ApproveJoinRequest(c.Request.Context(), session, groupID, familyID); err != nil {
			serviceError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "join request approved"))
	}
}

func RejectJoinRequest(g *services.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := familySessionFrom(c)
		if !ok {
			return
		}

		groupID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		familyID, ok := parseIDParam(c, "family_id")
		if !ok {
			return
		}

		if err := g.RejectJoinRequest(c.Request.Context(), session, groupID, familyID); err != nil {
			serviceError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "join request rejected"))
	}
}

func DeleteGroup(g *services.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := familySessionFrom(c)
		if !ok {
			return
		}

		groupID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		if err := g.DeleteGroup(c.Request.Context(), session, groupID); err != nil {
			serviceError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "group deleted"))
	}
}
