package company

import (
	"logisched-backend/internal/database"
	"logisched-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CompanyResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	VehicleGoal int    `json:"vehicle_goal"`
}

// GET /api/companies - alimenta o seletor do formulário de agendamento
func ListCompaniesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var companies []models.Company
		if err := database.DB.Order("name asc").Find(&companies).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao carregar empresas. Verifique a conexão com o banco.")
		}

		resp := make([]CompanyResponse, 0, len(companies))
		for _, comp := range companies {
			resp = append(resp, CompanyResponse{ID: comp.ID, Name: comp.Name, VehicleGoal: comp.VehicleGoal})
		}
		return c.JSON(resp)
	}
}
