package http

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/njprem/Lombok_Tourism_BackEnd/internal/domain"
	"github.com/njprem/Lombok_Tourism_BackEnd/internal/service"
	"github.com/njprem/Lombok_Tourism_BackEnd/internal/util"
)

type AdminServices struct {
	Accounts     Accounts
	Districts    DistrictManager
	Categories   CategoryManager
	Destinations DestinationManager
	Dashboard    Dashboard
}

type AdminHandler struct {
	districts    DistrictManager
	categories   CategoryManager
	destinations DestinationManager
	dashboard    Dashboard
}

func RegisterAdmin(e *echo.Echo, svc AdminServices) {
	h := &AdminHandler{
		districts:    svc.Districts,
		categories:   svc.Categories,
		destinations: svc.Destinations,
		dashboard:    svc.Dashboard,
	}

	admin := e.Group(apiPrefix+"/admin", middleware.BodyLimit("64M"), RequireAuth(svc.Accounts), RequireStaff())
	admin.GET("/dashboard", h.stats)

	admin.POST("/districts", h.createDistrict)
	admin.PUT("/districts/:id", h.updateDistrict)
	admin.DELETE("/districts/:id", h.deleteDistrict)

	admin.POST("/categories", h.createCategory)
	admin.PUT("/categories/:id", h.updateCategory)
	admin.DELETE("/categories/:id", h.deleteCategory)

	admin.GET("/destinations/:id", h.getDestination)
	admin.POST("/destinations", h.createDestination)
	admin.PUT("/destinations/:id", h.updateDestination)
	admin.DELETE("/destinations/:id", h.deleteDestination)
	admin.POST("/destinations/:id/gallery", h.addGalleryImages)
	admin.DELETE("/destinations/:id/gallery/:imageID", h.deleteGalleryImage)
}

func (h *AdminHandler) stats(c echo.Context) error {
	stats, err := h.dashboard.Stats(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("stats", stats))
}

func (h *AdminHandler) createDistrict(c echo.Context) error {
	return h.saveDistrict(c, uuid.Nil)
}

func (h *AdminHandler) updateDistrict(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid district id"))
	}
	return h.saveDistrict(c, id)
}

func (h *AdminHandler) saveDistrict(c echo.Context, id uuid.UUID) error {
	form, err := readForm(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	input := domain.DistrictInput{
		Name:        formString(form, "name"),
		Slug:        formString(form, "slug"),
		Description: formString(form, "description"),
	}

	uploads := &uploadSet{}
	defer uploads.Close()
	thumbnail, err := uploads.optional(c, "thumbnail")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("unable to read upload"))
	}

	if id == uuid.Nil {
		district, err := h.districts.Create(c.Request().Context(), input, thumbnail)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusCreated, util.Data("district", district))
	}
	district, err := h.districts.Update(c.Request().Context(), id, input, thumbnail)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("district", district))
}

func (h *AdminHandler) deleteDistrict(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid district id"))
	}
	if err := h.districts.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// bindCategory accepts JSON or form bodies.
func bindCategory(c echo.Context) (domain.CategoryInput, error) {
	var input domain.CategoryInput
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		err := c.Bind(&input)
		return input, err
	}
	form, err := readForm(c)
	if err != nil {
		return input, err
	}
	input.Name = formString(form, "name")
	input.Slug = formString(form, "slug")
	input.Icon = formString(form, "icon")
	input.Description = formString(form, "description")
	return input, nil
}

func (h *AdminHandler) createCategory(c echo.Context) error {
	input, err := bindCategory(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	category, err := h.categories.Create(c.Request().Context(), input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Data("category", category))
}

func (h *AdminHandler) updateCategory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid category id"))
	}
	input, err := bindCategory(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	category, err := h.categories.Update(c.Request().Context(), id, input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("category", category))
}

func (h *AdminHandler) deleteCategory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid category id"))
	}
	if err := h.categories.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) getDestination(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid destination id"))
	}
	dest, err := h.destinations.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("destination", dest))
}

func parseDestinationInput(c echo.Context) (domain.DestinationInput, error) {
	form, err := readForm(c)
	if err != nil {
		return domain.DestinationInput{}, err
	}
	input := domain.DestinationInput{
		Name:           formString(form, "name"),
		Slug:           formString(form, "slug"),
		Description:    formString(form, "description"),
		MapsEmbedURL:   formString(form, "maps_embed_url"),
		AdditionalInfo: formString(form, "additional_info"),
	}
	if input.DistrictID, err = formUUID(form, "district_id"); err != nil {
		return input, err
	}
	if input.CategoryID, err = formUUID(form, "category_id"); err != nil {
		return input, err
	}
	if input.ManagerID, err = formUUID(form, "manager_id"); err != nil {
		return input, err
	}
	return input, nil
}

func (h *AdminHandler) createDestination(c echo.Context) error {
	account, ok := CurrentAccount(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	input, err := parseDestinationInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	uploads := &uploadSet{}
	defer uploads.Close()
	mainImage, err := uploads.optional(c, "main_image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("unable to read upload"))
	}

	dest, err := h.destinations.Create(c.Request().Context(), account.ID, input, mainImage)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Data("destination", dest))
}

func (h *AdminHandler) updateDestination(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid destination id"))
	}
	input, err := parseDestinationInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	uploads := &uploadSet{}
	defer uploads.Close()
	mainImage, err := uploads.optional(c, "main_image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("unable to read upload"))
	}

	dest, err := h.destinations.Update(c.Request().Context(), id, input, mainImage)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("destination", dest))
}

func (h *AdminHandler) deleteDestination(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid destination id"))
	}
	if err := h.destinations.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// addGalleryImages takes files under "images" with an optional parallel "captions" list.
func (h *AdminHandler) addGalleryImages(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid destination id"))
	}
	form, err := readForm(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	headers := multipartFiles(c, "images", "images[]")
	if len(headers) == 0 {
		return c.JSON(http.StatusBadRequest, util.Error("at least one image file is required"))
	}
	captions := append([]string{}, form["captions"]...)
	captions = append(captions, form["captions[]"]...)

	uploads := &uploadSet{}
	defer uploads.Close()
	items := make([]service.GalleryUpload, 0, len(headers))
	for i, header := range headers {
		image, err := uploads.open(header)
		if err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("unable to read upload"))
		}
		item := service.GalleryUpload{Image: *image}
		if i < len(captions) && strings.TrimSpace(captions[i]) != "" {
			caption := captions[i]
			item.Caption = &caption
		}
		items = append(items, item)
	}

	images, err := h.destinations.AddGalleryImages(c.Request().Context(), id, items)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Data("gallery", images))
}

func (h *AdminHandler) deleteGalleryImage(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid destination id"))
	}
	imageID, err := uuid.Parse(c.Param("imageID"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid image id"))
	}
	if err := h.destinations.DeleteGalleryImage(c.Request().Context(), id, imageID); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
