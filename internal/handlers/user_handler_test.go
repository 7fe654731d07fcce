package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserIncludesCounts(t *testing.T) {
	store := newMemStore()
	john := store.addUser("john", "john@example.com")
	susan := store.addUser("susan", "susan@example.com")

	store.addPost(susan.ID, "hello", time.Now().UTC())
	store.addPost(susan.ID, "world", time.Now().UTC())

	followRepo := &fakeFollowRepo{store}
	require.NoError(t, followRepo.Follow(john.ID, susan.ID))

	h := NewUserHandler(&fakeUserRepo{store}, followRepo)

	c, rec := newTestContext(t, http.MethodGet, "/users/2", john.ID)
	c.SetParamNames("id")
	c.SetParamValues("2")
	require.NoError(t, h.GetUser(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Equal(t, "susan", data["username"])
	assert.Equal(t, float64(2), data["post_count"])
	assert.Equal(t, float64(1), data["follower_count"])
	assert.Equal(t, float64(0), data["following_count"])
	// Public profiles never expose the email.
	assert.NotContains(t, data, "email")
}

func TestGetProfileIncludesEmail(t *testing.T) {
	store := newMemStore()
	john := store.addUser("john", "john@example.com")

	h := NewUserHandler(&fakeUserRepo{store}, &fakeFollowRepo{store})

	c, rec := newTestContext(t, http.MethodGet, "/profile", john.ID)
	require.NoError(t, h.GetProfile(c))

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Equal(t, "john@example.com", data["email"])
}

func TestGetFollowersListing(t *testing.T) {
	store := newMemStore()
	john := store.addUser("john", "john@example.com")
	susan := store.addUser("susan", "susan@example.com")

	followRepo := &fakeFollowRepo{store}
	require.NoError(t, followRepo.Follow(john.ID, susan.ID))

	h := NewUserHandler(&fakeUserRepo{store}, followRepo)

	c, rec := newTestContext(t, http.MethodGet, "/users/2/followers", john.ID)
	c.SetParamNames("id")
	c.SetParamValues("2")
	require.NoError(t, h.GetFollowers(c))

	var resp struct {
		Items []struct {
			Username string `json:"username"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "john", resp.Items[0].Username)
}

func TestGetFollowersPaginates(t *testing.T) {
	store := newMemStore()
	john := store.addUser("john", "john@example.com")
	susan := store.addUser("susan", "susan@example.com")
	mary := store.addUser("mary", "mary@example.com")

	followRepo := &fakeFollowRepo{store}
	require.NoError(t, followRepo.Follow(john.ID, susan.ID))
	require.NoError(t, followRepo.Follow(mary.ID, susan.ID))

	h := NewUserHandler(&fakeUserRepo{store}, followRepo)

	c, rec := newTestContext(t, http.MethodGet, "/users/2/followers?page=2&per_page=1", john.ID)
	c.SetParamNames("id")
	c.SetParamValues("2")
	require.NoError(t, h.GetFollowers(c))

	var resp struct {
		Items []struct {
			Username string `json:"username"`
		} `json:"items"`
		Meta struct {
			Page       int   `json:"page"`
			PerPage    int   `json:"per_page"`
			TotalItems int64 `json:"total_items"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// Page 2 holds exactly the one follower the envelope says it does.
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "mary", resp.Items[0].Username)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 1, resp.Meta.PerPage)
	assert.Equal(t, int64(2), resp.Meta.TotalItems)
}

func TestUpdateProfileDuplicateUsername(t *testing.T) {
	store := newMemStore()
	store.addUser("john", "john@example.com")
	susan := store.addUser("susan", "susan@example.com")

	h := NewUserHandler(&fakeUserRepo{store}, &fakeFollowRepo{store})

	c, _ := newJSONContext(t, http.MethodPut, "/profile",
		`{"username": "john"}`, susan.ID)
	err := h.UpdateProfile(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)

	c, _ = newJSONContext(t, http.MethodPut, "/profile",
		`{"email": "john@example.com"}`, susan.ID)
	err = h.UpdateProfile(c)
	require.Error(t, err)
	he, ok = err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestUpdateProfileKeepsOwnUsername(t *testing.T) {
	store := newMemStore()
	susan := store.addUser("susan", "susan@example.com")

	h := NewUserHandler(&fakeUserRepo{store}, &fakeFollowRepo{store})

	// Re-sending the current username alongside a new about_me is not a
	// conflict.
	c, rec := newJSONContext(t, http.MethodPut, "/profile",
		`{"username": "susan", "about_me": "hello there"}`, susan.ID)
	require.NoError(t, h.UpdateProfile(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello there", store.users[susan.ID].AboutMe)
}
