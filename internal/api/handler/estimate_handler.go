package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smetaworks/estimates-api/internal/core/domain"
	"github.com/smetaworks/estimates-api/internal/core/ports"
)

// EstimateHandler serves estimates and completion acts. Both live in the same
// store; the handler keeps the two surfaces apart so an act id never resolves
// through an estimate route.
type EstimateHandler struct {
	service ports.EstimateService
}

func NewEstimateHandler(service ports.EstimateService) *EstimateHandler {
	return &EstimateHandler{service: service}
}

type workItemRequest struct {
	Name     string  `json:"name" validate:"required"`
	Unit     string  `json:"unit" validate:"required"`
	Quantity float64 `json:"quantity" validate:"gt=0"`
	Price    float64 `json:"price" validate:"min=0"`
}

type createEstimateRequest struct {
	ClientID   string            `json:"client_id" validate:"required"`
	DesignerID string            `json:"designer_id"`
	Title      string            `json:"title" validate:"required"`
	IsAct      bool              `json:"is_act"`
	Items      []workItemRequest `json:"items" validate:"dive"`
}

// updateEstimateRequest is a full replacement of the mutable fields, not a
// patch: omitting designer_id or items clears them.
type updateEstimateRequest struct {
	Title      string            `json:"title" validate:"required"`
	Status     string            `json:"status" validate:"required,oneof=draft sent approved rejected"`
	DesignerID string            `json:"designer_id"`
	Items      []workItemRequest `json:"items" validate:"dive"`
}

type estimatesResponse struct {
	Estimates []domain.Estimate `json:"estimates"`
}

type actsResponse struct {
	Acts []domain.Estimate `json:"acts"`
}

func workItemInputs(items []workItemRequest) []ports.WorkItemInput {
	out := make([]ports.WorkItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, ports.WorkItemInput{
			Name:     it.Name,
			Unit:     it.Unit,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}
	return out
}

// List returns the estimates visible to the caller.
//
// @Summary      List estimates
// @Tags         estimates
// @Produce      json
// @Success      200  {object}  estimatesResponse
// @Failure      401  {object}  map[string]string
// @Router       /estimates [get]
func (h *EstimateHandler) List(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	estimates, err := h.service.List(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, estimatesResponse{Estimates: estimates})
}

// Get returns one estimate.
//
// @Summary      Get an estimate
// @Tags         estimates
// @Produce      json
// @Param        id  path      string  true  "Estimate id"
// @Success      200  {object}  domain.Estimate
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /estimates/{id} [get]
func (h *EstimateHandler) Get(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	estimate, err := h.service.Get(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, estimate)
}

// Create stores a new estimate or act owned by the caller. The total is
// always recomputed from the items server-side.
//
// @Summary      Create an estimate
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Param        body  body      createEstimateRequest  true  "Estimate details"
// @Success      201   {object}  domain.Estimate
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /estimates [post]
func (h *EstimateHandler) Create(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	var req createEstimateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	estimate, err := h.service.Create(c.Request().Context(), p, ports.CreateEstimateInput{
		ClientID:   req.ClientID,
		DesignerID: req.DesignerID,
		Title:      req.Title,
		IsAct:      req.IsAct,
		Items:      workItemInputs(req.Items),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, estimate)
}

// Update replaces the mutable fields of an estimate.
//
// @Summary      Update an estimate
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Estimate id"
// @Param        body  body      updateEstimateRequest  true  "Fields to update"
// @Success      200   {object}  domain.Estimate
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /estimates/{id} [put]
func (h *EstimateHandler) Update(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	var req updateEstimateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	estimate, err := h.service.Update(c.Request().Context(), p, c.Param("id"), ports.UpdateEstimateInput{
		Title:      req.Title,
		Status:     req.Status,
		DesignerID: req.DesignerID,
		Items:      workItemInputs(req.Items),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, estimate)
}

// Delete removes an estimate.
//
// @Summary      Delete an estimate
// @Tags         estimates
// @Produce      json
// @Param        id  path      string  true  "Estimate id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /estimates/{id} [delete]
func (h *EstimateHandler) Delete(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Смета удалена"})
}

// ListActs returns the completion acts visible to the caller.
//
// @Summary      List acts
// @Tags         acts
// @Produce      json
// @Success      200  {object}  actsResponse
// @Failure      401  {object}  map[string]string
// @Router       /acts [get]
func (h *EstimateHandler) ListActs(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	acts, err := h.service.ListActs(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, actsResponse{Acts: acts})
}

// ToggleActVisibility flips whether the client portal can see the act.
//
// @Summary      Toggle act visibility
// @Tags         acts
// @Produce      json
// @Param        id  path      string  true  "Act id"
// @Success      200  {object}  domain.Estimate
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /acts/{id}/toggle-visibility [post]
func (h *EstimateHandler) ToggleActVisibility(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	act, err := h.service.ToggleActVisibility(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, act)
}
