package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/AlmacenCentral-api/internal/application/dto"
	"github.com/jhoicas/AlmacenCentral-api/internal/application/usecase"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/entity"
)

// ServiceCenterHandler maneja las peticiones HTTP de centros de servicio (protegido).
type ServiceCenterHandler struct {
	uc *usecase.ServiceCenterUseCase
}

// NewServiceCenterHandler construye el handler.
func NewServiceCenterHandler(uc *usecase.ServiceCenterUseCase) *ServiceCenterHandler {
	return &ServiceCenterHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar centro de servicio
// @Tags         service-centers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateServiceCenterRequest  true  "Centro"
// @Success      201   {object}  dto.ServiceCenterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/service-centers [post]
func (h *ServiceCenterHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateServiceCenterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sc, err := h.uc.Create(in.Code, in.Name, in.Address, in.Phone)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code y name son requeridos"})
		case errors.Is(err, domain.ErrDuplicate):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el código de centro ya existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toServiceCenterResponse(sc))
}

// GetByID godoc
// @Summary      Obtener centro de servicio por ID
// @Tags         service-centers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del centro"
// @Success      200  {object}  dto.ServiceCenterResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/service-centers/{id} [get]
func (h *ServiceCenterHandler) GetByID(c *fiber.Ctx) error {
	sc, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if sc == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "centro de servicio no encontrado"})
	}
	return c.JSON(toServiceCenterResponse(sc))
}

// List godoc
// @Summary      Listar centros de servicio
// @Tags         service-centers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(50)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {array}  dto.ServiceCenterResponse
// @Router       /api/service-centers [get]
func (h *ServiceCenterHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.uc.List(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.ServiceCenterResponse, 0, len(list))
	for _, sc := range list {
		out = append(out, *toServiceCenterResponse(sc))
	}
	return c.JSON(out)
}

func toServiceCenterResponse(sc *entity.ServiceCenter) *dto.ServiceCenterResponse {
	if sc == nil {
		return nil
	}
	return &dto.ServiceCenterResponse{
		ID:        sc.ID,
		Code:      sc.Code,
		Name:      sc.Name,
		Address:   sc.Address,
		Phone:     sc.Phone,
		CreatedAt: sc.CreatedAt,
	}
}
