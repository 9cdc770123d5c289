package service

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/tripfolio/tripfolio-backend-go/internal/database"
	"github.com/tripfolio/tripfolio-backend-go/internal/models"
	"github.com/tripfolio/tripfolio-backend-go/internal/repository"
)

type serviceFixture struct {
	db     *sql.DB
	trips  *TripService
	shares *ShareService
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.NewMigrationManager(db).RunMigrations())

	tripRepo := repository.NewTripRepository(db)
	trips := NewTripService(tripRepo, repository.NewTripDayRepository(db))
	attachments := NewAttachmentService(repository.NewAttachmentRepository(db), trips, t.TempDir())
	return &serviceFixture{
		db:    db,
		trips: trips,
		shares: NewShareService(
			repository.NewShareRepository(db),
			tripRepo,
			repository.NewPackingRepository(db),
			attachments,
			"https://planner.test",
		),
	}
}

func (f *serviceFixture) createTrip(t *testing.T, owner string) *models.Trip {
	t.Helper()
	trip, err := f.trips.CreateTrip(owner, models.TripCreate{
		Name: "Paris",
		Days: []models.DayCreate{{Label: "Day 1"}},
	})
	require.NoError(t, err)
	return trip
}

func (f *serviceFixture) join(t *testing.T, trip *models.Trip, member string) {
	t.Helper()
	require.NoError(t, f.shares.InviteMember(trip.User, trip.ID, member))
	require.NoError(t, f.shares.AcceptInvite(member, trip.ID))
}

func TestTripAccessControl(t *testing.T) {
	f := newServiceFixture(t)
	trip := f.createTrip(t, "alice")

	_, err := f.trips.GetTrip("mallory", trip.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.trips.GetTrip("alice", 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	// A pending invitee has no access until they accept
	require.NoError(t, f.shares.InviteMember("alice", trip.ID, "bob"))
	_, err = f.trips.GetTrip("bob", trip.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, f.shares.AcceptInvite("bob", trip.ID))
	got, err := f.trips.GetTrip("bob", trip.ID)
	require.NoError(t, err)
	assert.Equal(t, trip.ID, got.ID)

	// Joined members can edit but not delete
	_, err = f.trips.CreateDay("bob", trip.ID, models.DayCreate{Label: "Day 2"})
	require.NoError(t, err)
	assert.ErrorIs(t, f.trips.DeleteTrip("bob", trip.ID), ErrForbidden)
	require.NoError(t, f.trips.DeleteTrip("alice", trip.ID))
}

func TestArchivedTripIsReadOnly(t *testing.T) {
	f := newServiceFixture(t)
	trip := f.createTrip(t, "alice")

	archived := true
	_, err := f.trips.UpdateTrip("alice", trip.ID, models.TripUpdate{Archived: &archived})
	require.NoError(t, err)

	// Reads still work
	_, err = f.trips.GetTrip("alice", trip.ID)
	require.NoError(t, err)

	// Content edits are refused
	_, err = f.trips.CreateDay("alice", trip.ID, models.DayCreate{Label: "Day 2"})
	assert.ErrorIs(t, err, ErrTripArchived)

	name := "Renamed"
	_, err = f.trips.UpdateTrip("alice", trip.ID, models.TripUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrTripArchived)

	// Unarchiving is the one allowed update
	unarchived := false
	got, err := f.trips.UpdateTrip("alice", trip.ID, models.TripUpdate{Archived: &unarchived})
	require.NoError(t, err)
	assert.False(t, got.Archived)

	_, err = f.trips.CreateDay("alice", trip.ID, models.DayCreate{Label: "Day 2"})
	require.NoError(t, err)
}

func TestItemPayerMustBeMember(t *testing.T) {
	f := newServiceFixture(t)
	trip := f.createTrip(t, "alice")
	f.join(t, trip, "bob")

	dayID := trip.Days[0].ID

	_, err := f.trips.CreateItem("alice", trip.ID, dayID, models.ItemCreate{
		Time: "09:00", Text: "Lunch", Price: 20, PaidBy: "bob",
	})
	require.NoError(t, err)

	_, err = f.trips.CreateItem("alice", trip.ID, dayID, models.ItemCreate{
		Time: "10:00", Text: "Dinner", Price: 30, PaidBy: "stranger",
	})
	assert.Error(t, err)
}

func TestItemPlaceMustBeLinkedToTrip(t *testing.T) {
	f := newServiceFixture(t)

	category, err := repository.NewCategoryRepository(f.db).CreateCategory(models.CategoryCreate{
		Name: "Museum", Color: "#ff0000",
	})
	require.NoError(t, err)
	place, err := repository.NewPlaceRepository(f.db).CreatePlace("alice", models.PlaceCreate{
		Name: "Louvre", Lat: 48.86, Lng: 2.33, CategoryID: category.ID,
	})
	require.NoError(t, err)

	trip := f.createTrip(t, "alice")
	dayID := trip.Days[0].ID

	// Not linked to the trip yet
	_, err = f.trips.CreateItem("alice", trip.ID, dayID, models.ItemCreate{
		Time: "09:00", Text: "Visit", PlaceID: &place.ID,
	})
	assert.Error(t, err)

	_, err = f.trips.UpdateTrip("alice", trip.ID, models.TripUpdate{PlaceIDs: []int64{place.ID}})
	require.NoError(t, err)

	item, err := f.trips.CreateItem("alice", trip.ID, dayID, models.ItemCreate{
		Time: "09:00", Text: "Visit", PlaceID: &place.ID,
	})
	require.NoError(t, err)

	// A zero place id clears the link without triggering the check
	var zero int64
	item, err = f.trips.UpdateItem("alice", trip.ID, item.ID, models.ItemUpdate{PlaceID: &zero})
	require.NoError(t, err)
	assert.Nil(t, item.PlaceID)
}

func TestUnlinkingUsedPlaceRefused(t *testing.T) {
	f := newServiceFixture(t)

	category, err := repository.NewCategoryRepository(f.db).CreateCategory(models.CategoryCreate{
		Name: "Museum", Color: "#ff0000",
	})
	require.NoError(t, err)
	place, err := repository.NewPlaceRepository(f.db).CreatePlace("alice", models.PlaceCreate{
		Name: "Louvre", Lat: 48.86, Lng: 2.33, CategoryID: category.ID,
	})
	require.NoError(t, err)

	trip := f.createTrip(t, "alice")
	_, err = f.trips.UpdateTrip("alice", trip.ID, models.TripUpdate{PlaceIDs: []int64{place.ID}})
	require.NoError(t, err)

	item, err := f.trips.CreateItem("alice", trip.ID, trip.Days[0].ID, models.ItemCreate{
		Time: "10:00", Text: "Visit", PlaceID: &place.ID,
	})
	require.NoError(t, err)

	// Dropping a place an item still points at is refused
	_, err = f.trips.UpdateTrip("alice", trip.ID, models.TripUpdate{PlaceIDs: []int64{}})
	assert.ErrorIs(t, err, repository.ErrPlaceInUse)

	// Keeping it is fine
	_, err = f.trips.UpdateTrip("alice", trip.ID, models.TripUpdate{PlaceIDs: []int64{place.ID}})
	require.NoError(t, err)

	// Once no item references the place, it can be unlinked
	require.NoError(t, f.trips.DeleteItem("alice", trip.ID, item.ID))
	got, err := f.trips.UpdateTrip("alice", trip.ID, models.TripUpdate{PlaceIDs: []int64{}})
	require.NoError(t, err)
	assert.Empty(t, got.PlaceIDs)
}

func TestShareLinkFlow(t *testing.T) {
	f := newServiceFixture(t)
	trip := f.createTrip(t, "alice")

	// Only the owner can share
	_, err := f.shares.ShareTrip("bob", trip.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	url, err := f.shares.GetShareURL("alice", trip.ID)
	require.NoError(t, err)
	assert.Nil(t, url, "unshared trip has no link")

	url, err = f.shares.ShareTrip("alice", trip.ID)
	require.NoError(t, err)
	assert.Contains(t, url.URL, "https://planner.test/shared/")

	token := url.URL[len("https://planner.test/shared/"):]
	shared, err := f.shares.GetSharedTrip(token)
	require.NoError(t, err)
	assert.Equal(t, trip.ID, shared.ID)

	// Packing and checklist are readable through the token too
	_, err = repository.NewPackingRepository(f.db).CreatePackingItem(trip.ID, models.PackingItemCreate{
		Text: "Socks", Category: models.PackingClothes,
	})
	require.NoError(t, err)
	packing, err := f.shares.GetSharedPacking(token)
	require.NoError(t, err)
	require.Len(t, packing, 1)
	assert.Equal(t, "Socks", packing[0].Text)

	checklist, err := f.shares.GetSharedChecklist(token)
	require.NoError(t, err)
	assert.Empty(t, checklist)

	require.NoError(t, f.shares.UnshareTrip("alice", trip.ID))
	_, err = f.shares.GetSharedTrip(token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvitationLifecycle(t *testing.T) {
	f := newServiceFixture(t)
	trip := f.createTrip(t, "alice")

	assert.Error(t, f.shares.InviteMember("alice", trip.ID, "alice"), "owner cannot be invited")

	require.NoError(t, f.shares.InviteMember("alice", trip.ID, "bob"))
	assert.Error(t, f.shares.InviteMember("alice", trip.ID, "bob"), "double invite refused")

	invites, err := f.shares.GetInvitations("bob")
	require.NoError(t, err)
	require.Len(t, invites, 1)
	assert.Equal(t, "Paris", invites[0].Name)

	require.NoError(t, f.shares.DeclineInvite("bob", trip.ID))
	invites, err = f.shares.GetInvitations("bob")
	require.NoError(t, err)
	assert.Empty(t, invites)

	// Accepting after declining fails: no pending invitation left
	assert.Error(t, f.shares.AcceptInvite("bob", trip.ID))
}

func TestMemberCanLeaveButNotEvict(t *testing.T) {
	f := newServiceFixture(t)
	trip := f.createTrip(t, "alice")
	f.join(t, trip, "bob")
	f.join(t, trip, "carol")

	// A member cannot remove another member
	assert.ErrorIs(t, f.shares.RemoveMember("bob", trip.ID, "carol"), ErrForbidden)

	// But can leave
	require.NoError(t, f.shares.RemoveMember("bob", trip.ID, "bob"))
	_, err := f.trips.GetTrip("bob", trip.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// And the owner can evict anyone
	require.NoError(t, f.shares.RemoveMember("alice", trip.ID, "carol"))
	_, err = f.trips.GetTrip("carol", trip.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}
