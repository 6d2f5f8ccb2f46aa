package export

import (
	"fmt"

	"logisched-backend/internal/database"
	"logisched-backend/internal/models"
	"logisched-backend/internal/scheduling"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Agendamentos"

// GET /api/schedules/export - planilha xlsx com as três tabelas
func SchedulesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.
			Preload("Categories.Plates").
			Preload("Capacities").
			Preload("CapacitiesSpot").
			Preload("Company")
		q = scheduling.ApplyScheduleFilters(q, c)

		var schedules []models.Schedule
		if err := q.Order("schedule_date desc").Find(&schedules).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao carregar agendamentos")
		}

		var categories []models.Category
		if err := database.DB.Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao carregar categorias")
		}
		kinds := make(map[string]models.CategoryKind, len(categories))
		for _, cat := range categories {
			kinds[cat.Name] = cat.Kind
		}

		f := excelize.NewFile()
		defer f.Close()

		if err := f.SetSheetName("Sheet1", sheetName); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao montar planilha")
		}

		for i, row := range BuildRows(schedules, kinds) {
			if row == nil {
				continue // linha em branco separando as tabelas
			}
			cell := fmt.Sprintf("A%d", i+1)
			if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Erro ao montar planilha")
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao gerar o arquivo")
		}

		c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set("Content-Disposition", `attachment; filename=agendamentos.xlsx`)
		return c.Send(buf.Bytes())
	}
}
