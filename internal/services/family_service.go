package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/google/uuid"
	"github.com/yleanad/village-homeschool-app/internal/geocode"
	"github.com/yleanad/village-homeschool-app/internal/helpers"
	"github.com/yleanad/village-homeschool-app/internal/models"
)

const defaultSearchRadius = 25

// ProfileInput carries the client-supplied profile fields. The address parts
// are geocoded server side; clients never submit coordinates directly.
type ProfileInput struct {
	FamilyName   string         `json:"family_name" validate:"required"`
	Bio          string         `json:"bio"`
	City         string         `json:"city"`
	State        string         `json:"state"`
	ZipCode      string         `json:"zip_code"`
	Children     []models.Child `json:"kids" validate:"dive"`
	Interests    []string       `json:"interests"`
	SearchRadius int            `json:"search_radius"`
}

type FamilyService struct {
	familyRepo models.FamilyRepo
	geocoder   geocode.Geocoder
	cld        *cloudinary.Cloudinary
}

func NewFamilyService(familyRepo models.FamilyRepo, geocoder geocode.Geocoder, cld *cloudinary.Cloudinary) *FamilyService {
	return &FamilyService{
		familyRepo: familyRepo,
		geocoder:   geocoder,
		cld:        cld,
	}
}

// CreateProfile registers the one profile a user gets. Geocoding failure is
// not a request failure: the profile is saved without a location and stays
// out of discovery until an update resolves the address.
func (fs *FamilyService) CreateProfile(ctx context.Context, session *helpers.Session, input *ProfileInput) (*models.FamilyProfile, error) {
	if input.SearchRadius <= 0 {
		input.SearchRadius = defaultSearchRadius
	}

	profile := &models.FamilyProfile{
		UserID:       session.UserID,
		FamilyName:   helpers.StringTrim(input.FamilyName),
		Bio:          input.Bio,
		Children:     input.Children,
		Interests:    input.Interests,
		SearchRadius: input.SearchRadius,
	}
	profile.NormalizeInterests()
	profile.Location = fs.resolveLocation(ctx, input)

	if err := profile.ValidateProfile(); err != nil {
		return nil, err
	}

	return fs.familyRepo.CreateProfile(ctx, profile)
}

// UpdateProfile applies the input over the stored profile. Address fields are
// re-geocoded; if that fails the previous location is kept rather than wiped.
func (fs *FamilyService) UpdateProfile(ctx context.Context, session *helpers.Session, input *ProfileInput) (*models.FamilyProfile, error) {
	current, err := fs.familyRepo.GetProfileByUserID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	if input.SearchRadius <= 0 {
		input.SearchRadius = current.SearchRadius
	}

	updated := &models.FamilyProfile{
		ID:           current.ID,
		UserID:       current.UserID,
		FamilyName:   helpers.StringTrim(input.FamilyName),
		Bio:          input.Bio,
		Children:     input.Children,
		Interests:    input.Interests,
		SearchRadius: input.SearchRadius,
		Location:     current.Location,
	}
	updated.NormalizeInterests()
	if loc := fs.resolveLocation(ctx, input); loc != nil {
		updated.Location = loc
	}

	if err := updated.ValidateProfile(); err != nil {
		return nil, err
	}

	update := map[string]interface{}{
		"family_name":   updated.FamilyName,
		"bio":           updated.Bio,
		"kids":          updated.Children,
		"interests":     updated.Interests,
		"search_radius": updated.SearchRadius,
	}
	if updated.Location != nil {
		update["location"] = updated.Location
	}

	return fs.familyRepo.UpdateProfile(ctx, session.UserID, update)
}

func (fs *FamilyService) resolveLocation(ctx context.Context, input *ProfileInput) *models.FamilyLocation {
	if input.ZipCode == "" && (input.City == "" || input.State == "") {
		return nil
	}

	lat, lon, err := fs.geocoder.Geocode(ctx, input.ZipCode, input.City, input.State)
	if err != nil {
		slog.Warn("geocoding failed, profile saved without location",
			"zip_code", input.ZipCode, "city", input.City, "error", err)
		return nil
	}

	return &models.FamilyLocation{
		Latitude:  lat,
		Longitude: lon,
		City:      input.City,
		State:     input.State,
		ZipCode:   input.ZipCode,
	}
}

func (fs *FamilyService) GetMyProfile(ctx context.Context, session *helpers.Session) (*models.FamilyProfile, error) {
	return fs.familyRepo.GetProfileByUserID(ctx, session.UserID)
}

func (fs *FamilyService) GetProfile(ctx context.Context, familyID uuid.UUID) (*models.FamilyProfile, error) {
	if familyID == uuid.Nil {
		return nil, fmt.Errorf("invalid family ID")
	}
	return fs.familyRepo.GetProfileByID(ctx, familyID)
}

// UploadPhoto stores a profile picture in Cloudinary and records its URL.
func (fs *FamilyService) UploadPhoto(ctx context.Context, session *helpers.Session, image string) (*models.FamilyProfile, error) {
	url, publicID, err := helpers.UploadImage(ctx, fs.cld, image, helpers.ProfileFolder)
	if err != nil {
		return nil, err
	}

	profile, err := fs.familyRepo.UpdateProfile(ctx, session.UserID, map[string]interface{}{
		"profile_picture": url,
	})
	if err != nil {
		if delErr := helpers.DeleteImage(ctx, fs.cld, publicID); delErr != nil {
			slog.Error("failed to clean up orphaned upload", "public_id", publicID, "error", delErr)
		}
		return nil, err
	}
	return profile, nil
}
