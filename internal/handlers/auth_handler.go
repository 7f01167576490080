package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/yleanad/village-homeschool-app/internal/models"
	"github.com/yleanad/village-homeschool-app/internal/services"
)

const refreshTokenMaxAge = 3600 * 24 * 30

func setAuthCookies(c *gin.Context, accessToken string, expiresIn int, refreshToken string) {
	isProduction := os.Getenv("GIN_MODE") == "production"
	c.SetCookie("access_token", accessToken, expiresIn, "/", "", isProduction, true)
	c.SetCookie("refresh_token", refreshToken, refreshTokenMaxAge, "/", "", isProduction, true)
}

func SignUp(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := c.ShouldBindJSON(&user); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		res, err := u.SignUp(c.Request.Context(), &user)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(res, "account created, check your email to confirm"))
	}
}

func SignIn(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}

		tokenRes, err := u.SignIn(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("invalid email or password"))
			return
		}

		setAuthCookies(c, tokenRes.AccessToken, tokenRes.ExpiresIn, tokenRes.RefreshToken)

		// Tokens travel in cookies only.
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"user": tokenRes.User,
		}, "signed in"))
	}
}

func RefreshToken(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		refreshToken, err := c.Cookie("refresh_token")
		if err != nil || refreshToken == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("refresh token is required"))
			return
		}

		tokenRes, err := u.RefreshToken(c.Request.Context(), refreshToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("token refresh failed"))
			return
		}

		setAuthCookies(c, tokenRes.AccessToken, tokenRes.ExpiresIn, tokenRes.RefreshToken)
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "token refreshed"))
	}
}

func SignOut() gin.HandlerFunc {
	return func(c *gin.Context) {
		isProduction := os.Getenv("GIN_MODE") == "production"
		c.SetCookie("access_token", "", -1, "/", "", isProduction, true)
		c.SetCookie("refresh_token", "", -1, "/", "", isProduction, true)
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "signed out"))
	}
}
