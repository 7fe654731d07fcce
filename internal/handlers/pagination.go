package handlers

import (
	"fmt"
	"math"
	"strconv"

	"github.com/jmalone/microblog/backend/internal/models"
	"github.com/labstack/echo/v4"
)

const (
	defaultPerPage = 25
	maxPerPage     = 100
)

// pageParams reads page/per_page query parameters with sane bounds.
func pageParams(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	perPage, _ := strconv.Atoi(c.QueryParam("per_page"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > maxPerPage {
		perPage = defaultPerPage
	}
	return page, perPage
}

// collection wraps serialized items in the standard pagination envelope:
// items, meta and _links with self/next/prev.
func collection(items []models.Dict, page, perPage int, total int64, endpoint string) echo.Map {
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))

	link := func(p int) string {
		return fmt.Sprintf("%s?page=%d&per_page=%d", endpoint, p, perPage)
	}
	links := echo.Map{"self": link(page), "next": nil, "prev": nil}
	if page < totalPages {
		links["next"] = link(page + 1)
	}
	if page > 1 {
		links["prev"] = link(page - 1)
	}

	if items == nil {
		items = []models.Dict{}
	}
	return echo.Map{
		"items": items,
		"meta": echo.Map{
			"page":        page,
			"per_page":    perPage,
			"total_pages": totalPages,
			"total_items": total,
		},
		"_links": links,
	}
}
