package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yleanad/village-homeschool-app/internal/models"
	"github.com/yleanad/village-homeschool-app/internal/services"
)

func CreateFamilyProfile(f *services.FamilyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionFrom(c)
		if !ok {
			return
		}

		var input services.ProfileInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		profile, err := f.CreateProfile(c.Request.Context(), session, &input)
		if err != nil {
			serviceError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(profile, "family profile created"))
	}
}

func GetMyFamilyProfile(f *services.FamilyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionFrom(c)
		if !ok {
			return
		}

		profile, err := f.GetMyProfile(c.Request.Context(), session)
		if err != nil {
			serviceError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(profile, ""))
	}
}

func UpdateFamilyProfile(f *services.FamilyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionFrom(c)
		if !ok {
			return
		}

		var input services.ProfileInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		profile, err := f.UpdateProfile(c.Request.Context(), session, &input)
		if err != nil {
			serviceError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(profile, "family profile updated"))
	}
}

func GetFamilyProfile(f *services.FamilyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := sessionFrom(c); !ok {
			return
		}

		familyID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		profile, err := f.GetProfile(c.Request.Context(), familyID)
		if err != nil {
			serviceError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(profile, ""))
	}
}

func UploadFamilyPhoto(f *services.FamilyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionFrom(c)
		if !ok {
			return
		}

		var req struct {
			Image string `json:"image" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("image data is required"))
			return
		}

		profile, err := f.UploadPhoto(c.Request.Context(), session, req.Image)
		if err != nil {
			serviceError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(profile, "profile photo updated"))
	}
}
