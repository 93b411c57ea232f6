package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/AlmacenCentral-api/internal/application/dto"
	"github.com/jhoicas/AlmacenCentral-api/internal/application/issues"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain"
)

// PartsIssueHandler maneja las peticiones HTTP de salidas de repuestos (protegido).
type PartsIssueHandler struct {
	uc *issues.PartsIssueUseCase
}

// NewPartsIssueHandler construye el handler.
func NewPartsIssueHandler(uc *issues.PartsIssueUseCase) *PartsIssueHandler {
	return &PartsIssueHandler{uc: uc}
}

// Create godoc
// @Summary      Crear salida de repuestos (debita stock y avanza la orden enlazada)
// @Tags         parts-issues
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartsIssueRequest  true  "Salida"
// @Success      201   {object}  dto.CreatePartsIssueResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/parts-issues [post]
func (h *PartsIssueHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartsIssueRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateIssue(c.UserContext(), in, GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "service_center_id y líneas con from_stock y quantity > 0 son requeridos"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "centro de servicio, fila de stock u orden de compra inexistente"})
		case errors.Is(err, domain.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "la orden enlazada no admite salidas en su estado actual"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar salidas de repuestos
// @Tags         parts-issues
// @Security     Bearer
// @Produce      json
// @Param        service_center  query  string  false  "Filtro por centro de servicio"
// @Param        limit           query  int     false  "Límite"   default(50)
// @Param        offset          query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.PartsIssueListResponse
// @Router       /api/parts-issues [get]
func (h *PartsIssueHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	serviceCenter := c.Query("service_center")
	// Un usuario de centro solo ve las salidas dirigidas a su centro.
	if scID := GetServiceCenterID(c); scID != "" {
		serviceCenter = scID
	}
	out, err := h.uc.List(serviceCenter, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener salida de repuestos por ID
// @Tags         parts-issues
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la salida"
// @Success      200  {object}  dto.PartsIssueResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/parts-issues/{id} [get]
func (h *PartsIssueHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "salida no encontrada"})
	}
	return c.JSON(out)
}

// Receive godoc
// @Summary      Confirmar recepción de una salida en el centro de servicio
// @Tags         parts-issues
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la salida"
// @Success      200  {object}  dto.PartsIssueResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/parts-issues/{id}/receive [post]
func (h *PartsIssueHandler) Receive(c *fiber.Ctx) error {
	out, err := h.uc.Receive(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "salida no encontrada"})
		case errors.Is(err, domain.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "la salida ya fue recibida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
