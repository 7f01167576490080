package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yleanad/village-homeschool-app/internal/container"
	"github.com/yleanad/village-homeschool-app/internal/handlers"
	"github.com/yleanad/village-homeschool-app/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	// API version 1
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "village-api",
			})
		})

		// public routes
		v1.POST("/signup", handlers.SignUp(container.UserService))
		v1.POST("/login", handlers.SignIn(container.UserService))
		v1.POST("/refresh", handlers.RefreshToken(container.UserService))
		v1.POST("/logout", handlers.SignOut())
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(container.UserService, container.FamilyRepo, container.Logger))

	familyRoutes := protected.Group("/family")
	{
		familyRoutes.POST("/profile", handlers.CreateFamilyProfile(container.FamilyService))
		familyRoutes.GET("/profile", handlers.GetMyFamilyProfile(container.FamilyService))
		familyRoutes.PUT("/profile", handlers.UpdateFamilyProfile(container.FamilyService))
		familyRoutes.POST("/profile/photo", handlers.UploadFamilyPhoto(container.FamilyService))
		familyRoutes.GET("/:id", handlers.GetFamilyProfile(container.FamilyService))
	}

	discoveryRoutes := protected.Group("/families")
	{
		discoveryRoutes.GET("/nearby", handlers.DiscoverNearby(container.DiscoveryService))
		discoveryRoutes.GET("/search", handlers.SearchFamilies(container.DiscoveryService))
	}

	meetupRoutes := protected.Group("/meetup-requests")
	{
		meetupRoutes.POST("/", handlers.CreateMeetupRequest(container.MeetupService))
		meetupRoutes.GET("/", handlers.ListMeetupRequests(container.MeetupService))
		meetupRoutes.POST("/:id/accept", handlers.AcceptMeetupRequest(container.MeetupService))
		meetupRoutes.POST("/:id/decline", handlers.DeclineMeetupRequest(container.MeetupService))
	}

	eventRoutes := protected.Group("/events")
	{
		eventRoutes.POST("/", handlers.CreateEvent(container.EventService))
		eventRoutes.GET("/", handlers.ListEvents(container.EventService))
		eventRoutes.GET("/my", handlers.MyEvents(container.EventService))
		eventRoutes.GET("/calendar", handlers.CalendarEvents(container.EventService))
		eventRoutes.GET("/:id", handlers.GetEvent(container.EventService))
		eventRoutes.POST("/:id/rsvp", handlers.RsvpEvent(container.EventService))
		eventRoutes.DELETE("/:id/rsvp", handlers.CancelRsvp(container.EventService))
	}

	groupRoutes := protected.Group("/groups")
	{
		groupRoutes.POST("/", handlers.CreateGroup(container.GroupService))
		groupRoutes.GET("/", handlers.ListGroups(container.GroupService))
		groupRoutes.GET("/my", handlers.MyGroups(container.GroupService))
		groupRoutes.GET("/:id", handlers.GetGroup(container.GroupService))
		groupRoutes.POST("/:id/join", handlers.JoinGroup(container.GroupService))
		groupRoutes.DELETE("/:id/leave", handlers.LeaveGroup(container.GroupService))
		groupRoutes.POST("/:id/requests/:family_id/approve", handlers.ApproveJoinRequest(container.GroupService))
		groupRoutes.POST("/:id/requests/:family_id/reject", handlers.RejectJoinRequest(container.GroupService))
		groupRoutes.DELETE("/:id", handlers.DeleteGroup(container.GroupService))
	}

	return r
}
