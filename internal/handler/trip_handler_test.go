package handler

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/tripfolio/tripfolio-backend-go/internal/database"
	"github.com/tripfolio/tripfolio-backend-go/internal/middleware"
	"github.com/tripfolio/tripfolio-backend-go/internal/models"
	"github.com/tripfolio/tripfolio-backend-go/internal/repository"
	"github.com/tripfolio/tripfolio-backend-go/internal/service"
	"github.com/tripfolio/tripfolio-backend-go/internal/spatial"
)

// testRouter builds a trip route tree over an in-memory database with a
// stub auth middleware; the X-Test-User header stands in for the JWT
func testRouter(t *testing.T) (*gin.Engine, *service.TripService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.NewMigrationManager(db).RunMigrations())

	trips := service.NewTripService(
		repository.NewTripRepository(db),
		repository.NewTripDayRepository(db),
	)
	h := NewTripHandler(trips)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UsernameKey, c.GetHeader("X-Test-User"))
	})
	r.GET("/trips/:id", h.GetTripByID)
	r.POST("/trips", h.CreateTrip)
	r.GET("/trips/:id/view", h.GetViewModel)
	r.GET("/trips/:id/highlight", h.GetHighlight)

	return r, trips
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, r *gin.Engine, method, path, user, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("X-Test-User", user)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestCreateAndGetTrip(t *testing.T) {
	r, _ := testRouter(t)

	w, env := doRequest(t, r, "POST", "/trips", "alice",
		`{"name":"Paris","days":[{"label":"Day 1"}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, env.Code)

	var trip models.Trip
	require.NoError(t, json.Unmarshal(env.Data, &trip))
	assert.Equal(t, "Paris", trip.Name)
	assert.Equal(t, "alice", trip.User)
	require.Len(t, trip.Days, 1)

	w, _ = doRequest(t, r, "GET", "/trips/1", "alice", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetTripErrorMapping(t *testing.T) {
	r, _ := testRouter(t)

	doRequest(t, r, "POST", "/trips", "alice", `{"name":"Paris"}`)

	w, _ := doRequest(t, r, "GET", "/trips/1", "mallory", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doRequest(t, r, "GET", "/trips/999", "alice", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doRequest(t, r, "GET", "/trips/bogus", "alice", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestViewModelEndpoint(t *testing.T) {
	r, trips := testRouter(t)

	trip, err := trips.CreateTrip("alice", models.TripCreate{
		Name: "Paris",
		Days: []models.DayCreate{{Label: "Day 1"}, {Label: "Day 2"}},
	})
	require.NoError(t, err)

	dayID := trip.Days[0].ID
	_, err = trips.CreateItem("alice", trip.ID, dayID, models.ItemCreate{Time: "14:00", Text: "Museum"})
	require.NoError(t, err)
	_, err = trips.CreateItem("alice", trip.ID, dayID, models.ItemCreate{Time: "09:00", Text: "Breakfast", Price: 12})
	require.NoError(t, err)

	w, env := doRequest(t, r, "GET", "/trips/1/view", "alice", "")
	require.Equal(t, http.StatusOK, w.Code)

	var days []struct {
		Day   models.TripDay `json:"day"`
		Items []struct {
			Text string `json:"text"`
			Time string `json:"time"`
		} `json:"items"`
		Stats struct {
			Count int     `json:"count"`
			Cost  float64 `json:"cost"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &days))
	require.Len(t, days, 2, "empty day kept without a filter query")

	require.Len(t, days[0].Items, 2)
	assert.Equal(t, "Breakfast", days[0].Items[0].Text, "items sorted by time")
	assert.Equal(t, "Museum", days[0].Items[1].Text)
	assert.Equal(t, 2, days[0].Stats.Count)
	assert.Equal(t, 12.0, days[0].Stats.Cost)

	// A query filters items and drops days left empty
	_, env = doRequest(t, r, "GET", "/trips/1/view?query=museum", "alice", "")
	require.NoError(t, json.Unmarshal(env.Data, &days))
	require.Len(t, days, 1)
	require.Len(t, days[0].Items, 1)
	assert.Equal(t, "Museum", days[0].Items[0].Text)
}

func TestHighlightEndpoint(t *testing.T) {
	r, trips := testRouter(t)

	lat1, lng1 := 48.8584, 2.2945
	lat2, lng2 := 48.8606, 2.3376
	lat3, lng3 := 48.8530, 2.3499

	trip, err := trips.CreateTrip("alice", models.TripCreate{
		Name: "Paris",
		Days: []models.DayCreate{{Label: "Day 1"}},
	})
	require.NoError(t, err)

	dayID := trip.Days[0].ID
	for i, pt := range []struct{ lat, lng float64 }{{lat1, lng1}, {lat2, lng2}, {lat3, lng3}} {
		pt := pt
		_, err = trips.CreateItem("alice", trip.ID, dayID, models.ItemCreate{
			Time: fmt.Sprintf("0%d:00", i+1), Text: "Stop", Lat: &pt.lat, Lng: &pt.lng,
		})
		require.NoError(t, err)
	}

	w, env := doRequest(t, r, "GET", fmt.Sprintf("/trips/1/highlight?day=%d", dayID), "alice", "")
	require.Equal(t, http.StatusOK, w.Code)

	var highlight struct {
		Paths []struct {
			Color  string          `json:"color"`
			Coords []spatial.Point `json:"coords"`
		} `json:"paths"`
		Bounds []spatial.Point `json:"bounds"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &highlight))
	require.Len(t, highlight.Paths, 1)
	assert.Equal(t, "#0000FF", highlight.Paths[0].Color, "single day draws blue")
	assert.Len(t, highlight.Paths[0].Coords, 3)
	assert.Len(t, highlight.Bounds, 3)
	assert.Equal(t, lat1, highlight.Bounds[0].Lat)

	// A trip with nothing located yields an empty overlay
	_, err = trips.CreateTrip("alice", models.TripCreate{Name: "Empty"})
	require.NoError(t, err)
	w, env = doRequest(t, r, "GET", "/trips/2/highlight", "alice", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", string(env.Data), "nothing to show serializes as null")
}
