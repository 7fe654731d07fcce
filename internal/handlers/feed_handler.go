package handlers

import (
	"net/http"

	"github.com/jmalone/microblog/backend/internal/models"
	"github.com/jmalone/microblog/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles timeline HTTP requests
type FeedHandler struct {
	postRepository repositories.PostRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(postRepo repositories.PostRepository) *FeedHandler {
	return &FeedHandler{postRepository: postRepo}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed returns the current user's timeline: their own posts and posts by
// everyone they follow, newest first.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, perPage := pageParams(c)
	posts, total, err := h.postRepository.FollowingPosts(currentUserID, page, perPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	items := make([]models.Dict, len(posts))
	for i := range posts {
		items[i] = posts[i].ToDict()
	}

	return c.JSON(http.StatusOK, collection(items, page, perPage, total, "/api/v1/feed"))
}
