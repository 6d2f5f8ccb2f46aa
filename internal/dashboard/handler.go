package dashboard

import (
	"time"

	"logisched-backend/internal/database"
	"logisched-backend/internal/models"
	"logisched-backend/internal/scheduling"

	"github.com/gofiber/fiber/v2"
)

// GET /api/dashboard/metrics?company_id=1&uf=MG&start_date=2024-01-01&end_date=2024-01-31&profile_name=Truck
func MetricsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		filters := Filters{ProfileName: c.Query("profile_name")}
		if start := c.Query("start_date"); start != "" {
			if t, err := time.Parse("2006-01-02", start); err == nil {
				filters.StartDate = &t
			}
		}
		if end := c.Query("end_date"); end != "" {
			if t, err := time.Parse("2006-01-02", end); err == nil {
				filters.EndDate = &t
			}
		}

		q := database.DB.
			Preload("Categories.Plates").
			Preload("Capacities").
			Preload("CapacitiesSpot").
			Preload("Company")
		q = scheduling.ApplyScheduleFilters(q, c)

		// Filtro por perfil seleciona só agendamentos que usam o perfil;
		// dentro do conjunto, o agregador restringe as somas de capacidade
		if filters.ProfileName != "" {
			q = q.Where("EXISTS (SELECT 1 FROM schedule_capacities sc WHERE sc.schedule_id = schedules.id AND sc.profile_name = ?)",
				filters.ProfileName)
		}

		var schedules []models.Schedule
		if err := q.Order("schedule_date desc").Find(&schedules).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao carregar métricas")
		}

		var companies []models.Company
		if err := database.DB.Find(&companies).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao carregar empresas")
		}
		goals := make(map[uint]int, len(companies))
		for _, comp := range companies {
			goals[comp.ID] = comp.VehicleGoal
		}

		var categories []models.Category
		if err := database.DB.Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao carregar categorias")
		}
		kinds := make(map[string]models.CategoryKind, len(categories))
		for _, cat := range categories {
			kinds[cat.Name] = cat.Kind
		}

		return c.JSON(Aggregate(schedules, goals, kinds, filters))
	}
}
