package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smetaworks/estimates-api/internal/core/domain"
	"github.com/smetaworks/estimates-api/internal/core/ports"
)

// DocumentHandler serves document metadata for staff.
type DocumentHandler struct {
	service ports.DocumentService
}

func NewDocumentHandler(service ports.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

type createDocumentRequest struct {
	ClientID string `json:"client_id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	FileURL  string `json:"file_url" validate:"required"`
}

type documentsResponse struct {
	Documents []domain.Document `json:"documents"`
}

// List returns the documents visible to the caller.
//
// @Summary      List documents
// @Tags         documents
// @Produce      json
// @Success      200  {object}  documentsResponse
// @Failure      401  {object}  map[string]string
// @Router       /documents [get]
func (h *DocumentHandler) List(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	docs, err := h.service.List(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, documentsResponse{Documents: docs})
}

// Create stores a document record owned by the caller.
//
// @Summary      Create a document record
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        body  body      createDocumentRequest  true  "Document details"
// @Success      201   {object}  domain.Document
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /documents [post]
func (h *DocumentHandler) Create(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	var req createDocumentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	doc, err := h.service.Create(c.Request().Context(), p, ports.CreateDocumentInput{
		ClientID: req.ClientID,
		Name:     req.Name,
		FileURL:  req.FileURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, doc)
}

// Delete removes a document record.
//
// @Summary      Delete a document
// @Tags         documents
// @Produce      json
// @Param        id  path      string  true  "Document id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /documents/{id} [delete]
func (h *DocumentHandler) Delete(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Документ удален"})
}

// ToggleVisibility flips whether the client portal can see the document.
//
// @Summary      Toggle document visibility
// @Tags         documents
// @Produce      json
// @Param        id  path      string  true  "Document id"
// @Success      200  {object}  domain.Document
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /documents/{id}/toggle-visibility [post]
func (h *DocumentHandler) ToggleVisibility(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	doc, err := h.service.ToggleVisibility(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}
