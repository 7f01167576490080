package services

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/yleanad/village-homeschool-app/internal/models"
)

// In-memory repo fakes mirroring the mongo implementations' semantics,
// including the guarded-update error classification.

type fakeFamilyRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*models.FamilyProfile
}

func newFakeFamilyRepo() *fakeFamilyRepo {
	return &fakeFamilyRepo{profiles: make(map[uuid.UUID]*models.FamilyProfile)}
}

func (f *fakeFamilyRepo) CreateProfile(_ context.Context, profile *models.FamilyProfile) (*models.FamilyProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.UserID == profile.UserID {
			return nil, models.ErrProfileExists
		}
	}
	profile.BeforeCreate()
	f.profiles[profile.ID] = profile
	return profile, nil
}

func (f *fakeFamilyRepo) GetProfileByUserID(_ context.Context, userID uuid.UUID) (*models.FamilyProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeFamilyRepo) GetProfileByID(_ context.Context, familyID uuid.UUID) (*models.FamilyProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.profiles[familyID]; ok {
		return p, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeFamilyRepo) UpdateProfile(_ context.Context, userID uuid.UUID, update map[string]interface{}) (*models.FamilyProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.UserID != userID {
			continue
		}
		if v, ok := update["family_name"].(string); ok {
			p.FamilyName = v
		}
		if v, ok := update["bio"].(string); ok {
			p.Bio = v
		}
		if v, ok := update["kids"].([]models.Child); ok {
			p.Children = v
		}
		if v, ok := update["interests"].([]string); ok {
			p.Interests = v
		}
		if v, ok := update["search_radius"].(int); ok {
			p.SearchRadius = v
		}
		if v, ok := update["location"].(*models.FamilyLocation); ok {
			p.Location = v
		}
		if v, ok := update["profile_picture"].(string); ok {
			p.ProfilePicture = v
		}
		return p, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeFamilyRepo) ListCandidates(_ context.Context, excludeFamilyID uuid.UUID) ([]*models.FamilyProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.FamilyProfile
	for _, p := range f.profiles {
		if p.ID == excludeFamilyID || p.Location == nil {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeFamilyRepo) ListOthers(_ context.Context, excludeFamilyID uuid.UUID) ([]*models.FamilyProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.FamilyProfile
	for _, p := range f.profiles {
		if p.ID == excludeFamilyID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type fakeMeetupRepo struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*models.MeetupRequest
	events   *fakeEventRepo
}

func newFakeMeetupRepo(events *fakeEventRepo) *fakeMeetupRepo {
	return &fakeMeetupRepo{
		requests: make(map[uuid.UUID]*models.MeetupRequest),
		events:   events,
	}
}

func (f *fakeMeetupRepo) CreateRequest(_ context.Context, request *models.MeetupRequest) (*models.MeetupRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request.BeforeCreate()
	f.requests[request.ID] = request
	return request, nil
}

func (f *fakeMeetupRepo) GetRequest(_ context.Context, requestID uuid.UUID) (*models.MeetupRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.requests[requestID]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeMeetupRepo) ListIncoming(_ context.Context, familyID uuid.UUID) ([]*models.MeetupRequest, error) {
	return f.list(func(r *models.MeetupRequest) bool { return r.TargetFamilyID == familyID })
}

func (f *fakeMeetupRepo) ListOutgoing(_ context.Context, familyID uuid.UUID) ([]*models.MeetupRequest, error) {
	return f.list(func(r *models.MeetupRequest) bool { return r.RequesterFamilyID == familyID })
}

func (f *fakeMeetupRepo) list(keep func(*models.MeetupRequest) bool) ([]*models.MeetupRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.MeetupRequest
	for _, r := range f.requests {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeMeetupRepo) DeclineRequest(_ context.Context, requestID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[requestID]
	if !ok {
		return models.ErrNotFound
	}
	if r.Status != models.MeetupPending {
		return models.ErrAlreadyResolved
	}
	r.Status = models.MeetupDeclined
	return nil
}

func (f *fakeMeetupRepo) AcceptRequestWithEvent(ctx context.Context, requestID uuid.UUID, event *models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[requestID]
	if !ok {
		return models.ErrNotFound
	}
	if r.Status != models.MeetupPending {
		return models.ErrAlreadyResolved
	}
	r.Status = models.MeetupAccepted
	_, err := f.events.CreateEvent(ctx, event)
	return err
}

type fakeEventRepo struct {
	mu     sync.Mutex
	events map[uuid.UUID]*models.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[uuid.UUID]*models.Event)}
}

func (f *fakeEventRepo) CreateEvent(_ context.Context, event *models.Event) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event.BeforeCreate()
	f.events[event.ID] = event
	return event, nil
}

func (f *fakeEventRepo) GetEvent(_ context.Context, eventID uuid.UUID) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.events[eventID]; ok {
		copied := *e
		copied.Attendees = append([]uuid.UUID(nil), e.Attendees...)
		return &copied, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeEventRepo) ListEvents(_ context.Context, filter models.EventFilter) ([]*models.Event, error) {
	return f.list(func(e *models.Event) bool {
		if filter.City != "" && e.City != filter.City {
			return false
		}
		if filter.EventType != "" && e.EventType != filter.EventType {
			return false
		}
		if filter.UpcomingFrom != "" && e.Date < filter.UpcomingFrom {
			return false
		}
		return true
	})
}

func (f *fakeEventRepo) ListHostedBy(_ context.Context, familyID uuid.UUID) ([]*models.Event, error) {
	return f.list(func(e *models.Event) bool { return e.HostFamilyID == familyID })
}

func (f *fakeEventRepo) ListAttending(_ context.Context, familyID uuid.UUID) ([]*models.Event, error) {
	return f.list(func(e *models.Event) bool {
		return e.HasAttendee(familyID) && e.HostFamilyID != familyID
	})
}

func (f *fakeEventRepo) ListCalendar(_ context.Context, familyID uuid.UUID, startDate, endDate string) ([]*models.Event, error) {
	return f.list(func(e *models.Event) bool {
		return e.HasAttendee(familyID) && e.Date >= startDate && e.Date < endDate
	})
}

func (f *fakeEventRepo) list(keep func(*models.Event) bool) ([]*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Event
	for _, e := range f.events {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (f *fakeEventRepo) AddAttendee(_ context.Context, eventID, familyID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[eventID]
	if !ok {
		return models.ErrNotFound
	}
	if e.HasAttendee(familyID) {
		return models.ErrAlreadyAttending
	}
	if e.MaxAttendees > 0 && len(e.Attendees) >= e.MaxAttendees {
		return models.ErrEventFull
	}
	e.Attendees = append(e.Attendees, familyID)
	return nil
}

func (f *fakeEventRepo) RemoveAttendee(_ context.Context, eventID, familyID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[eventID]
	if !ok {
		return models.ErrNotFound
	}
	for i, id := range e.Attendees {
		if id == familyID {
			e.Attendees = append(e.Attendees[:i], e.Attendees[i+1:]...)
			return nil
		}
	}
	return models.ErrNotAttending
}

func (f *fakeEventRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

type fakeGroupRepo struct {
	mu     sync.Mutex
	groups map[uuid.UUID]*models.CoopGroup
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{groups: make(map[uuid.UUID]*models.CoopGroup)}
}

func (f *fakeGroupRepo) CreateGroup(_ context.Context, group *models.CoopGroup) (*models.CoopGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	group.BeforeCreate()
	f.groups[group.ID] = group
	return group, nil
}

func (f *fakeGroupRepo) GetGroup(_ context.Context, groupID uuid.UUID) (*models.CoopGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if g, ok := f.groups[groupID]; ok {
		copied := *g
		copied.Members = append([]models.GroupMember(nil), g.Members...)
		copied.JoinRequests = append([]models.JoinRequest(nil), g.JoinRequests...)
		return &copied, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeGroupRepo) ListPublicGroups(_ context.Context, city string, groupType models.GroupType) ([]*models.CoopGroup, error) {
	return f.list(func(g *models.CoopGroup) bool {
		if g.IsPrivate {
			return false
		}
		if city != "" && g.City != city {
			return false
		}
		if groupType != "" && g.GroupType != groupType {
			return false
		}
		return true
	})
}

func (f *fakeGroupRepo) ListOwnedBy(_ context.Context, familyID uuid.UUID) ([]*models.CoopGroup, error) {
	return f.list(func(g *models.CoopGroup) bool { return g.OwnerFamilyID == familyID })
}

func (f *fakeGroupRepo) ListMemberOf(_ context.Context, familyID uuid.UUID) ([]*models.CoopGroup, error) {
	return f.list(func(g *models.CoopGroup) bool {
		return g.HasMember(familyID) && g.OwnerFamilyID != familyID
	})
}

func (f *fakeGroupRepo) list(keep func(*models.CoopGroup) bool) ([]*models.CoopGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.CoopGroup
	for _, g := range f.groups {
		if keep(g) {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (f *fakeGroupRepo) AddMember(_ context.Context, groupID, familyID uuid.UUID, role models.GroupRole) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.groups[groupID]
	if !ok {
		return models.ErrNotFound
	}
	if g.HasMember(familyID) {
		return models.ErrAlreadyMember
	}
	if g.MaxMembers > 0 && len(g.Members) >= g.MaxMembers {
		return models.ErrGroupFull
	}
	g.Members = append(g.Members, models.GroupMember{FamilyID: familyID, Role: role})
	for i, r := range g.JoinRequests {
		if r.FamilyID == familyID {
			g.JoinRequests = append(g.JoinRequests[:i], g.JoinRequests[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeGroupRepo) RemoveMember(_ context.Context, groupID, familyID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.groups[groupID]
	if !ok {
		return models.ErrNotFound
	}
	for i, m := range g.Members {
		if m.FamilyID == familyID {
			g.Members = append(g.Members[:i], g.Members[i+1:]...)
			return nil
		}
	}
	return models.ErrNotMember
}

func (f *fakeGroupRepo) AddJoinRequest(_ context.Context, groupID, familyID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.groups[groupID]
	if !ok {
		return models.ErrNotFound
	}
	if g.HasJoinRequest(familyID) {
		return nil
	}
	g.JoinRequests = append(g.JoinRequests, models.JoinRequest{FamilyID: familyID})
	return nil
}

func (f *fakeGroupRepo) RemoveJoinRequest(_ context.Context, groupID, familyID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.groups[groupID]
	if !ok {
		return models.ErrNotFound
	}
	for i, r := range g.JoinRequests {
		if r.FamilyID == familyID {
			g.JoinRequests = append(g.JoinRequests[:i], g.JoinRequests[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func (f *fakeGroupRepo) DeleteGroup(_ context.Context, groupID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.groups[groupID]; !ok {
		return models.ErrNotFound
	}
	delete(f.groups, groupID)
	return nil
}

// seedProfile inserts a geocoded profile directly, bypassing validation.
func seedProfile(repo *fakeFamilyRepo, name string, lat, lon float64, interests ...string) *models.FamilyProfile {
	profile := &models.FamilyProfile{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		FamilyName: name,
		Location: &models.FamilyLocation{
			Latitude:  lat,
			Longitude: lon,
			City:      "Austin",
			State:     "TX",
		},
		Interests:    interests,
		SearchRadius: 25,
	}
	repo.mu.Lock()
	repo.profiles[profile.ID] = profile
	repo.mu.Unlock()
	return profile
}

// seedUnlocatedProfile inserts a profile that has not been geocoded.
func seedUnlocatedProfile(repo *fakeFamilyRepo, name string) *models.FamilyProfile {
	profile := &models.FamilyProfile{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		FamilyName:   name,
		SearchRadius: 25,
	}
	repo.mu.Lock()
	repo.profiles[profile.ID] = profile
	repo.mu.Unlock()
	return profile
}
