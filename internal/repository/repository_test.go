package repository

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/tripfolio/tripfolio-backend-go/internal/database"
	"github.com/tripfolio/tripfolio-backend-go/internal/models"
)

// testDB opens a fresh in-memory database with the full schema applied
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// A single connection keeps the in-memory database alive
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec("PRAGMA foreign_keys=ON")
	require.NoError(t, err)

	require.NoError(t, database.NewMigrationManager(db).RunMigrations())
	return db
}

func seedCategory(t *testing.T, db *sql.DB, name string) *models.Category {
	t.Helper()
	c, err := NewCategoryRepository(db).CreateCategory(models.CategoryCreate{
		Name:  name,
		Color: "#3b82f6",
	})
	require.NoError(t, err)
	return c
}

func seedPlace(t *testing.T, db *sql.DB, user, name string, categoryID int64) *models.Place {
	t.Helper()
	p, err := NewPlaceRepository(db).CreatePlace(user, models.PlaceCreate{
		Name:       name,
		Lat:        48.85,
		Lng:        2.35,
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	return p
}

func TestCategoryCRUD(t *testing.T) {
	db := testDB(t)
	repo := NewCategoryRepository(db)

	created, err := repo.CreateCategory(models.CategoryCreate{Name: "Museum", Color: "#ff0000"})
	require.NoError(t, err)
	assert.Equal(t, "Museum", created.Name)

	newColor := "#00ff00"
	updated, err := repo.UpdateCategory(created.ID, models.CategoryUpdate{Color: &newColor})
	require.NoError(t, err)
	assert.Equal(t, "#00ff00", updated.Color)
	assert.Equal(t, "Museum", updated.Name)

	require.NoError(t, repo.DeleteCategory(created.ID))
	got, err := repo.GetCategoryByID(created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCategoryDeleteRefusedWhileInUse(t *testing.T) {
	db := testDB(t)
	category := seedCategory(t, db, "Museum")
	seedPlace(t, db, "alice", "Louvre", category.ID)

	err := NewCategoryRepository(db).DeleteCategory(category.ID)
	assert.ErrorIs(t, err, ErrCategoryInUse)
}

func TestPlaceCRUDAndFilter(t *testing.T) {
	db := testDB(t)
	repo := NewPlaceRepository(db)
	category := seedCategory(t, db, "Museum")

	louvre := seedPlace(t, db, "alice", "Louvre", category.ID)
	assert.Equal(t, "Museum", louvre.Category.Name)

	visited := true
	_, err := repo.UpdatePlace(louvre.ID, models.PlaceUpdate{Visited: &visited})
	require.NoError(t, err)

	seedPlace(t, db, "alice", "Orsay", category.ID)
	seedPlace(t, db, "bob", "Louvre", category.ID)

	// Owner scoping
	places, err := repo.GetPlaces("alice", models.PlaceFilter{})
	require.NoError(t, err)
	assert.Len(t, places, 2)

	// Visited filter
	places, err = repo.GetPlaces("alice", models.PlaceFilter{Visited: &visited})
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "Louvre", places[0].Name)

	// Case-insensitive name search
	places, err = repo.GetPlaces("alice", models.PlaceFilter{Query: "ors"})
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "Orsay", places[0].Name)
}

func TestPlaceDeleteRefusedWhileReferenced(t *testing.T) {
	db := testDB(t)
	category := seedCategory(t, db, "Museum")
	place := seedPlace(t, db, "alice", "Louvre", category.ID)

	tripRepo := NewTripRepository(db)
	trip, err := tripRepo.CreateTrip("alice", models.TripCreate{
		Name:     "Paris",
		Days:     []models.DayCreate{{Label: "Day 1"}},
		PlaceIDs: []int64{place.ID},
	})
	require.NoError(t, err)

	dayRepo := NewTripDayRepository(db)
	_, err = dayRepo.CreateItem(trip.Days[0].ID, models.ItemCreate{
		Time: "10:00", Text: "Visit", PlaceID: &place.ID,
	})
	require.NoError(t, err)

	placeRepo := NewPlaceRepository(db)
	assert.ErrorIs(t, placeRepo.DeletePlace(place.ID), ErrPlaceInUse)

	// Once the item stops referencing it, deletion unlinks and succeeds
	_, err = db.Exec(`DELETE FROM trip_items`)
	require.NoError(t, err)
	require.NoError(t, placeRepo.DeletePlace(place.ID))

	got, err := tripRepo.GetTripByID(trip.ID)
	require.NoError(t, err)
	assert.Empty(t, got.PlaceIDs)
}

func TestTripAssembly(t *testing.T) {
	db := testDB(t)
	category := seedCategory(t, db, "Museum")
	place := seedPlace(t, db, "alice", "Louvre", category.ID)

	tripRepo := NewTripRepository(db)
	trip, err := tripRepo.CreateTrip("alice", models.TripCreate{
		Name:     "Paris",
		Currency: "EUR",
		Days: []models.DayCreate{
			{Label: "Day 1", Dt: "2026-09-01"},
			{Label: "Day 2", Dt: "2026-09-02"},
		},
		PlaceIDs: []int64{place.ID},
	})
	require.NoError(t, err)

	dayRepo := NewTripDayRepository(db)
	// Insert out of time order; assembly must order by time
	_, err = dayRepo.CreateItem(trip.Days[0].ID, models.ItemCreate{Time: "14:00", Text: "Museum", PlaceID: &place.ID})
	require.NoError(t, err)
	_, err = dayRepo.CreateItem(trip.Days[0].ID, models.ItemCreate{Time: "09:00", Text: "Breakfast"})
	require.NoError(t, err)

	got, err := tripRepo.GetTripByID(trip.ID)
	require.NoError(t, err)
	require.Len(t, got.Days, 2)
	require.Len(t, got.Days[0].Items, 2)
	assert.Equal(t, "09:00", got.Days[0].Items[0].Time)
	assert.Equal(t, "14:00", got.Days[0].Items[1].Time)

	// The linked place is resolved onto the item
	museum := got.Days[0].Items[1]
	require.NotNil(t, museum.Place)
	assert.Equal(t, "Louvre", museum.Place.Name)

	assert.Equal(t, []int64{place.ID}, got.PlaceIDs)
	assert.False(t, got.Shared)
}

func TestTripListIncludesJoinedTrips(t *testing.T) {
	db := testDB(t)
	tripRepo := NewTripRepository(db)
	shareRepo := NewShareRepository(db)

	trip, err := tripRepo.CreateTrip("alice", models.TripCreate{Name: "Paris"})
	require.NoError(t, err)

	require.NoError(t, shareRepo.InviteMember(trip.ID, "bob", "alice"))

	// Pending invitation: not listed yet
	trips, err := tripRepo.GetTrips("bob")
	require.NoError(t, err)
	assert.Empty(t, trips)

	require.NoError(t, shareRepo.AcceptInvite(trip.ID, "bob"))
	trips, err = tripRepo.GetTrips("bob")
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, "Paris", trips[0].Name)
}

func TestDuplicateDayLabel(t *testing.T) {
	db := testDB(t)
	tripRepo := NewTripRepository(db)
	dayRepo := NewTripDayRepository(db)

	trip, err := tripRepo.CreateTrip("alice", models.TripCreate{
		Name: "Paris",
		Days: []models.DayCreate{{Label: "Day 1"}, {Label: "Day 2"}},
	})
	require.NoError(t, err)

	_, err = dayRepo.CreateDay(trip.ID, models.DayCreate{Label: "Day 1"})
	assert.ErrorIs(t, err, ErrDuplicateDayLabel)

	// Renaming onto another day's label is refused too
	label := "Day 2"
	_, err = dayRepo.UpdateDay(trip.Days[0].ID, models.DayUpdate{Label: &label})
	assert.ErrorIs(t, err, ErrDuplicateDayLabel)

	// Renaming a day to its own label is fine
	own := "Day 1"
	day, err := dayRepo.UpdateDay(trip.Days[0].ID, models.DayUpdate{Label: &own})
	require.NoError(t, err)
	assert.Equal(t, "Day 1", day.Label)
}

func TestItemUpdateClearsPlaceLink(t *testing.T) {
	db := testDB(t)
	category := seedCategory(t, db, "Museum")
	place := seedPlace(t, db, "alice", "Louvre", category.ID)

	tripRepo := NewTripRepository(db)
	trip, err := tripRepo.CreateTrip("alice", models.TripCreate{
		Name:     "Paris",
		Days:     []models.DayCreate{{Label: "Day 1"}},
		PlaceIDs: []int64{place.ID},
	})
	require.NoError(t, err)

	dayRepo := NewTripDayRepository(db)
	item, err := dayRepo.CreateItem(trip.Days[0].ID, models.ItemCreate{
		Time: "10:00", Text: "Visit", PlaceID: &place.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, item.PlaceID)

	var zero int64
	item, err = dayRepo.UpdateItem(item.ID, models.ItemUpdate{PlaceID: &zero})
	require.NoError(t, err)
	assert.Nil(t, item.PlaceID)
}

func TestShareTokenLifecycle(t *testing.T) {
	db := testDB(t)
	tripRepo := NewTripRepository(db)
	shareRepo := NewShareRepository(db)

	trip, err := tripRepo.CreateTrip("alice", models.TripCreate{Name: "Paris"})
	require.NoError(t, err)

	share, err := shareRepo.CreateShare(trip.ID, "token-1")
	require.NoError(t, err)
	assert.Equal(t, "token-1", share.Token)

	got, err := tripRepo.GetTripByID(trip.ID)
	require.NoError(t, err)
	assert.True(t, got.Shared)

	// Re-sharing rotates the token
	share, err = shareRepo.CreateShare(trip.ID, "token-2")
	require.NoError(t, err)
	assert.Equal(t, "token-2", share.Token)

	resolved, err := shareRepo.GetShareByToken("token-1")
	require.NoError(t, err)
	assert.Nil(t, resolved)

	resolved, err = shareRepo.GetShareByToken("token-2")
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, trip.ID, resolved.TripID)

	require.NoError(t, shareRepo.DeleteShare(trip.ID))
	got, err = tripRepo.GetTripByID(trip.ID)
	require.NoError(t, err)
	assert.False(t, got.Shared)
}

func TestMemberBalances(t *testing.T) {
	db := testDB(t)
	tripRepo := NewTripRepository(db)
	dayRepo := NewTripDayRepository(db)

	trip, err := tripRepo.CreateTrip("alice", models.TripCreate{
		Name: "Paris",
		Days: []models.DayCreate{{Label: "Day 1"}},
	})
	require.NoError(t, err)

	dayID := trip.Days[0].ID
	_, err = dayRepo.CreateItem(dayID, models.ItemCreate{Time: "09:00", Text: "A", Price: 30, PaidBy: "alice"})
	require.NoError(t, err)
	_, err = dayRepo.CreateItem(dayID, models.ItemCreate{Time: "10:00", Text: "B", Price: 20, PaidBy: "bob"})
	require.NoError(t, err)
	_, err = dayRepo.CreateItem(dayID, models.ItemCreate{Time: "11:00", Text: "C", Price: 15, PaidBy: "alice"})
	require.NoError(t, err)
	_, err = dayRepo.CreateItem(dayID, models.ItemCreate{Time: "12:00", Text: "no payer", Price: 99})
	require.NoError(t, err)

	balances, err := tripRepo.GetMemberBalances(trip.ID)
	require.NoError(t, err)
	require.Len(t, balances, 2)
	assert.Equal(t, models.MemberBalance{User: "alice", Balance: 45}, balances[0])
	assert.Equal(t, models.MemberBalance{User: "bob", Balance: 20}, balances[1])
}

func TestSettingsDefaultsAndUpdate(t *testing.T) {
	db := testDB(t)
	repo := NewSettingsRepository(db)

	settings, err := repo.GetSettings("alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", settings.Username)
	assert.Equal(t, 5, settings.DuplicateDist)
	assert.Equal(t, "EUR", settings.Currency)

	dist := 0
	dark := true
	settings, err = repo.UpdateSettings("alice", models.SettingsUpdate{
		DuplicateDist: &dist,
		ModeDark:      &dark,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, settings.DuplicateDist)
	assert.True(t, settings.ModeDark)
}

func TestPackingAndChecklist(t *testing.T) {
	db := testDB(t)
	tripRepo := NewTripRepository(db)
	repo := NewPackingRepository(db)

	trip, err := tripRepo.CreateTrip("alice", models.TripCreate{Name: "Paris"})
	require.NoError(t, err)

	item, err := repo.CreatePackingItem(trip.ID, models.PackingItemCreate{
		Text: "Socks", Category: models.PackingClothes,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, item.Qt, "quantity defaults to 1")
	assert.False(t, item.Packed)

	packed := true
	item, err = repo.UpdatePackingItem(item.ID, models.PackingItemUpdate{Packed: &packed})
	require.NoError(t, err)
	assert.True(t, item.Packed)

	check, err := repo.CreateChecklistItem(trip.ID, models.ChecklistItemCreate{Text: "Book tickets"})
	require.NoError(t, err)

	checked := true
	check, err = repo.UpdateChecklistItem(check.ID, models.ChecklistItemUpdate{Checked: &checked})
	require.NoError(t, err)
	assert.True(t, check.Checked)

	require.NoError(t, repo.DeletePackingItem(item.ID))
	items, err := repo.GetPackingItems(trip.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestBackupLifecycle(t *testing.T) {
	db := testDB(t)
	repo := NewBackupRepository(db)

	backup, err := repo.CreateBackup("alice")
	require.NoError(t, err)
	assert.Equal(t, models.BackupStatusPending, backup.Status)

	pending, err := repo.HasPending("alice")
	require.NoError(t, err)
	assert.True(t, pending)

	claimed, err := repo.ClaimPending()
	require.NoError(t, err)
	require.NotNil(t, claimed)
	assert.Equal(t, models.BackupStatusProcessing, claimed.Status)

	// Nothing else to claim
	next, err := repo.ClaimPending()
	require.NoError(t, err)
	assert.Nil(t, next)

	require.NoError(t, repo.MarkCompleted(claimed.ID, "backup_alice_1.json", 1234))
	done, err := repo.GetBackupByID(claimed.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BackupStatusCompleted, done.Status)
	assert.Equal(t, int64(1234), done.FileSize)
	assert.NotNil(t, done.CompletedAt)

	pending, err = repo.HasPending("alice")
	require.NoError(t, err)
	assert.False(t, pending)
}
