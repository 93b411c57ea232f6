package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/AlmacenCentral-api/internal/application/dto"
	"github.com/jhoicas/AlmacenCentral-api/internal/application/usecase"
)

// DashboardHandler expone la proyección de estadísticas del almacén central.
type DashboardHandler struct {
	uc *usecase.StatsUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.StatsUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats godoc
// @Summary      Estadísticas del almacén central
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CentralInventoryStatsResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	out, err := h.uc.GetStats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
