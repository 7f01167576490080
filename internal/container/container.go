package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/supabase-community/supabase-go"
	"github.com/yleanad/village-homeschool-app/internal/geocode"
	"github.com/yleanad/village-homeschool-app/internal/models"
	"github.com/yleanad/village-homeschool-app/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger     *slog.Logger
	Cloudinary *cloudinary.Cloudinary
	// Database clients
	SupabaseClient *supabase.Client
	MongoDBClient  *mongo.Client

	FamilyRepo models.FamilyRepo

	UserService      *services.UserService
	FamilyService    *services.FamilyService
	DiscoveryService *services.DiscoveryService
	MeetupService    *services.MeetupService
	EventService     *services.EventService
	GroupService     *services.GroupService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	cld *cloudinary.Cloudinary,
	supabaseClient *supabase.Client,
	mongoDBClient *mongo.Client,
	supaUrl, supaKey, dbName, geocoderBaseURL string,
) *Container {
	// Initialize repositories
	supa := models.SupabaseNewRepo(supabaseClient, supaUrl, supaKey)
	mdb := models.MongodbNewRepo(mongoDBClient, dbName)
	geocoder := geocode.NewNominatimGeocoder(geocoderBaseURL)

	userService := services.NewUserService(supa)
	familyService := services.NewFamilyService(mdb, geocoder, cld)
	discoveryService := services.NewDiscoveryService(mdb)
	meetupService := services.NewMeetupService(mdb, mdb)
	eventService := services.NewEventService(mdb)
	groupService := services.NewGroupService(mdb)

	return &Container{
		Logger:           logger,
		Cloudinary:       cld,
		SupabaseClient:   supabaseClient,
		MongoDBClient:    mongoDBClient,
		FamilyRepo:       mdb,
		UserService:      userService,
		FamilyService:    familyService,
		DiscoveryService: discoveryService,
		MeetupService:    meetupService,
		EventService:     eventService,
		GroupService:     groupService,
	}
}
