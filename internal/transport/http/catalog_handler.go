package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Lombok_Tourism_BackEnd/internal/domain"
	"github.com/njprem/Lombok_Tourism_BackEnd/internal/util"
)

type CatalogHandler struct {
	catalog Catalog
}

func RegisterCatalog(e *echo.Echo, catalog Catalog) {
	h := &CatalogHandler{catalog: catalog}

	api := e.Group(apiPrefix)
	api.GET("/home", h.home)
	api.GET("/destinations", h.listDestinations)
	api.GET("/destinations/:slug", h.viewDestination)
	api.GET("/categories", h.listCategories)
	api.GET("/categories/:slug", h.getCategory)
	api.GET("/districts", h.listDistricts)
	api.GET("/districts/:slug", h.getDistrict)
	api.GET("/surprise", h.surprise)
}

func (h *CatalogHandler) home(c echo.Context) error {
	digest, err := h.catalog.Home(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"featured":   digest.Featured,
		"popular":    digest.Popular,
		"categories": digest.Categories,
	})
}

func (h *CatalogHandler) listDestinations(c echo.Context) error {
	filter := parseDestinationFilter(c)
	page, err := h.catalog.ListDestinations(c.Request().Context(), filter)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"destinations": page.Items,
		"filter": util.Envelope{
			"q":        filter.TextQuery,
			"category": filter.CategorySlug,
		},
		"meta": util.Envelope{
			"page":         page.Page,
			"page_size":    page.PageSize,
			"total_items":  page.TotalItems,
			"total_pages":  page.TotalPages,
			"has_next":     page.HasNext,
			"has_previous": page.HasPrevious,
		},
	})
}

// viewDestination counts one view per successful request.
func (h *CatalogHandler) viewDestination(c echo.Context) error {
	dest, err := h.catalog.ViewDestination(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("destination", dest))
}

func (h *CatalogHandler) listCategories(c echo.Context) error {
	categories, err := h.catalog.ListCategories(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("categories", categories))
}

func (h *CatalogHandler) getCategory(c echo.Context) error {
	detail, err := h.catalog.GetCategory(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("category", detail.Category).With("destinations", detail.Destinations))
}

func (h *CatalogHandler) listDistricts(c echo.Context) error {
	districts, err := h.catalog.ListDistricts(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("districts", districts))
}

func (h *CatalogHandler) getDistrict(c echo.Context) error {
	detail, err := h.catalog.GetDistrict(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("district", detail.District).With("destinations", detail.Destinations))
}

func (h *CatalogHandler) surprise(c echo.Context) error {
	summaries, err := h.catalog.Surprise(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("destinations", summaries))
}

// parseDestinationFilter reads q, category and page. A missing or malformed page means page 1.
func parseDestinationFilter(c echo.Context) domain.DestinationFilter {
	filter := domain.DestinationFilter{
		TextQuery:    strings.TrimSpace(c.QueryParam("q")),
		CategorySlug: strings.TrimSpace(c.QueryParam("category")),
		Page:         1,
	}
	if page, err := strconv.Atoi(strings.TrimSpace(c.QueryParam("page"))); err == nil && page > 0 {
		filter.Page = page
	}
	return filter
}
