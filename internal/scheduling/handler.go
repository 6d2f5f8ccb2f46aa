package scheduling

import (
	"errors"
	"time"

	"logisched-backend/internal/audit"
	"logisched-backend/internal/auth"
	"logisched-backend/internal/database"
	"logisched-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ScheduleResponse struct {
	ID           uint   `json:"id"`
	CompanyID    uint   `json:"company_id"`
	CompanyName  string `json:"company_name,omitempty"`
	Uf           string `json:"uf"`
	ScheduleDate string `json:"schedule_date"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at,omitempty"`

	Categories     []models.ScheduleCategory     `json:"categories"`
	Capacities     []models.ScheduleCapacity     `json:"capacities"`
	CapacitiesSpot []models.ScheduleCapacitySpot `json:"capacities_spot"`

	TotalCapacityKg     int `json:"total_capacity_kg"`
	TotalVehicles       int `json:"total_vehicles"`
	TotalCapacitySpotKg int `json:"total_capacity_spot_kg"`
	TotalVehiclesSpot   int `json:"total_vehicles_spot"`
}

// NewScheduleResponse monta a resposta com os totais somados na hora.
// profileFilter restringe quais entradas de capacidade contam nos totais
// (vazio = todas); categorias nunca são filtradas por perfil.
func NewScheduleResponse(s models.Schedule, profileFilter string) ScheduleResponse {
	resp := ScheduleResponse{
		ID:           s.ID,
		CompanyID:    s.CompanyID,
		CompanyName:  s.Company.Name,
		Uf:           s.Uf,
		ScheduleDate: s.ScheduleDate.Format("2006-01-02"),
		CreatedAt:    s.CreatedAt.Format(time.RFC3339),
		Categories:   s.Categories,
	}
	if s.UpdatedAt != nil {
		resp.UpdatedAt = s.UpdatedAt.Format(time.RFC3339)
	}
	if resp.Categories == nil {
		resp.Categories = []models.ScheduleCategory{}
	}

	resp.Capacities = make([]models.ScheduleCapacity, 0, len(s.Capacities))
	for _, cap := range s.Capacities {
		if profileFilter != "" && cap.ProfileName != profileFilter {
			continue
		}
		resp.Capacities = append(resp.Capacities, cap)
		resp.TotalCapacityKg += cap.TotalWeightKg
		resp.TotalVehicles += cap.VehicleCount
	}

	resp.CapacitiesSpot = make([]models.ScheduleCapacitySpot, 0, len(s.CapacitiesSpot))
	for _, cap := range s.CapacitiesSpot {
		if profileFilter != "" && cap.ProfileName != profileFilter {
			continue
		}
		resp.CapacitiesSpot = append(resp.CapacitiesSpot, cap)
		resp.TotalCapacitySpotKg += cap.TotalWeightKg
		resp.TotalVehiclesSpot += cap.VehicleCount
	}

	return resp
}

// ApplyScheduleFilters traduz os filtros de query (company_id, uf,
// start_date, end_date) para a consulta. Datas inválidas são ignoradas,
// como no comportamento original.
func ApplyScheduleFilters(q *gorm.DB, c *fiber.Ctx) *gorm.DB {
	if companyID := c.QueryInt("company_id"); companyID > 0 {
		q = q.Where("company_id = ?", companyID)
	}
	if uf := c.Query("uf"); uf != "" {
		q = q.Where("uf = ?", normalizeUf(uf))
	}
	if start := c.Query("start_date"); start != "" {
		if t, err := time.Parse("2006-01-02", start); err == nil {
			q = q.Where("schedule_date >= ?", t)
		}
	}
	if end := c.Query("end_date"); end != "" {
		if t, err := time.Parse("2006-01-02", end); err == nil {
			q = q.Where("schedule_date <= ?", t)
		}
	}
	return q
}

func normalizeUf(uf string) string {
	out := make([]rune, 0, len(uf))
	for _, r := range uf {
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}

func preloadSchedule(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Categories.Plates").
		Preload("Capacities").
		Preload("CapacitiesSpot").
		Preload("Company")
}

func loadRegistry(db *gorm.DB) (*ProfileRegistry, error) {
	var profiles []models.CapacityProfile
	if err := db.Preload("Companies").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return NewProfileRegistry(profiles), nil
}

func loadCategoryKinds(db *gorm.DB) (map[string]models.CategoryKind, error) {
	var categories []models.Category
	if err := db.Find(&categories).Error; err != nil {
		return nil, err
	}
	kinds := make(map[string]models.CategoryKind, len(categories))
	for _, cat := range categories {
		kinds[cat.Name] = cat.Kind
	}
	return kinds, nil
}

// GET /api/schedules
func ListSchedulesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var schedules []models.Schedule

		q := preloadSchedule(database.DB)
		q = ApplyScheduleFilters(q, c)

		if err := q.Order("schedule_date desc").Find(&schedules).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao carregar agendamentos")
		}

		resp := make([]ScheduleResponse, 0, len(schedules))
		for _, s := range schedules {
			resp = append(resp, NewScheduleResponse(s, ""))
		}

		return c.JSON(resp)
	}
}

// POST /api/schedules
func CreateScheduleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input ScheduleInput
		if err := c.BodyParser(&input); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		scheduleDate, err := time.Parse("2006-01-02", input.ScheduleDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Data do agendamento inválida, use AAAA-MM-DD")
		}

		registry, verr, err := prepareAndValidate(input)
		if err != nil {
			return err
		}
		if verr != nil {
			return rejectValidation(c, verr)
		}

		// A empresa só é checada depois das regras de consistência interna:
		// a primeira violação de conteúdo vence a empresa inexistente.
		var company models.Company
		if err := database.DB.First(&company, "id = ?", input.CompanyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Empresa não encontrada. Recarregue a página para atualizar a lista de empresas.")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao consultar empresa")
		}

		schedule := buildSchedule(input, scheduleDate, registry)

		if err := database.DB.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&schedule).Error
		}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao salvar no banco de dados: "+err.Error())
		}

		audit.Record(auth.RoleFromContext(c), "schedule", schedule.ID, models.AuditActionCreate,
			"Agendamento criado para "+company.Name+" em "+input.ScheduleDate)

		schedule.Company = company

		return c.Status(fiber.StatusCreated).JSON(NewScheduleResponse(schedule, ""))
	}
}

// PUT /api/schedules/:id - substituição completa: todas as linhas filhas
// são descartadas e recriadas na mesma transação. Sem versionamento
// otimista: escritas concorrentes no mesmo agendamento resolvem por
// last-write-wins.
func UpdateScheduleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var existing models.Schedule
		if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Agendamento não encontrado")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao consultar agendamento")
		}

		var input ScheduleInput
		if err := c.BodyParser(&input); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		scheduleDate, err := time.Parse("2006-01-02", input.ScheduleDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Data do agendamento inválida, use AAAA-MM-DD")
		}

		registry, verr, err := prepareAndValidate(input)
		if err != nil {
			return err
		}
		if verr != nil {
			return rejectValidation(c, verr)
		}

		var company models.Company
		if err := database.DB.First(&company, "id = ?", input.CompanyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Empresa não encontrada")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao consultar empresa")
		}

		replacement := buildSchedule(input, scheduleDate, registry)

		now := time.Now()
		if err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := deleteChildren(tx, existing.ID); err != nil {
				return err
			}

			updates := map[string]interface{}{
				"company_id":    input.CompanyID,
				"uf":            normalizeUf(input.Uf),
				"schedule_date": scheduleDate,
				"updated_at":    now,
			}
			if err := tx.Model(&models.Schedule{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
				return err
			}

			for i := range replacement.Categories {
				replacement.Categories[i].ScheduleID = existing.ID
			}
			for i := range replacement.Capacities {
				replacement.Capacities[i].ScheduleID = existing.ID
			}
			for i := range replacement.CapacitiesSpot {
				replacement.CapacitiesSpot[i].ScheduleID = existing.ID
			}
			if len(replacement.Categories) > 0 {
				if err := tx.Create(&replacement.Categories).Error; err != nil {
					return err
				}
			}
			if len(replacement.Capacities) > 0 {
				if err := tx.Create(&replacement.Capacities).Error; err != nil {
					return err
				}
			}
			if len(replacement.CapacitiesSpot) > 0 {
				if err := tx.Create(&replacement.CapacitiesSpot).Error; err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao atualizar agendamento: "+err.Error())
		}

		audit.Record(auth.RoleFromContext(c), "schedule", existing.ID, models.AuditActionUpdate,
			"Agendamento atualizado para "+company.Name+" em "+input.ScheduleDate)

		var updated models.Schedule
		if err := preloadSchedule(database.DB).First(&updated, "id = ?", existing.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao recarregar agendamento")
		}

		return c.JSON(NewScheduleResponse(updated, ""))
	}
}

// DELETE /api/schedules/:id - apaga o agregado inteiro em uma transação
func DeleteScheduleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var schedule models.Schedule
		if err := database.DB.First(&schedule, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Agendamento não encontrado")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao consultar agendamento")
		}

		if err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := deleteChildren(tx, schedule.ID); err != nil {
				return err
			}
			return tx.Delete(&models.Schedule{}, "id = ?", schedule.ID).Error
		}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao excluir agendamento")
		}

		audit.Record(auth.RoleFromContext(c), "schedule", schedule.ID, models.AuditActionDelete,
			"Agendamento excluído")

		return c.JSON(fiber.Map{"ok": true})
	}
}

// prepareAndValidate carrega cadastro e vocabulário e roda o validador puro.
func prepareAndValidate(input ScheduleInput) (*ProfileRegistry, *ValidationError, error) {
	registry, err := loadRegistry(database.DB)
	if err != nil {
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Erro ao carregar perfis")
	}
	kinds, err := loadCategoryKinds(database.DB)
	if err != nil {
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Erro ao carregar categorias")
	}

	return registry, Validate(input, kinds, registry), nil
}

func rejectValidation(c *fiber.Ctx, verr *ValidationError) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": verr.Message,
		"code":  verr.Code,
		"field": verr.Field,
	})
}

// buildSchedule converte a entrada validada em modelo, com os pesos
// resolvidos uma única vez. Categorias zeradas são descartadas, como no
// comportamento original.
func buildSchedule(input ScheduleInput, scheduleDate time.Time, reg *ProfileRegistry) models.Schedule {
	schedule := models.Schedule{
		CompanyID:    input.CompanyID,
		Uf:           normalizeUf(input.Uf),
		ScheduleDate: scheduleDate,
	}

	for _, cat := range input.Categories {
		if cat.Count <= 0 {
			continue
		}
		mc := models.ScheduleCategory{
			CategoryName: cat.CategoryName,
			Count:        cat.Count,
			ProfileName:  cat.ProfileName,
		}
		for _, plate := range cat.Plates {
			mc.Plates = append(mc.Plates, models.UnavailablePlate{
				PlateNumber: plate.PlateNumber,
				Reason:      plate.Reason,
			})
		}
		schedule.Categories = append(schedule.Categories, mc)
	}

	annotated, _ := Calculate(input.Capacities, reg)
	for _, a := range annotated {
		schedule.Capacities = append(schedule.Capacities, models.ScheduleCapacity{
			ProfileName:   a.ProfileName,
			VehicleCount:  a.VehicleCount,
			TotalWeightKg: a.TotalWeightKg,
		})
	}

	annotatedSpot, _ := Calculate(input.CapacitiesSpot, reg)
	for _, a := range annotatedSpot {
		schedule.CapacitiesSpot = append(schedule.CapacitiesSpot, models.ScheduleCapacitySpot{
			ProfileName:   a.ProfileName,
			VehicleCount:  a.VehicleCount,
			TotalWeightKg: a.TotalWeightKg,
		})
	}

	return schedule
}

func deleteChildren(tx *gorm.DB, scheduleID uint) error {
	if err := tx.Where("schedule_category_id IN (?)",
		tx.Model(&models.ScheduleCategory{}).Select("id").Where("schedule_id = ?", scheduleID),
	).Delete(&models.UnavailablePlate{}).Error; err != nil {
		return err
	}
	if err := tx.Where("schedule_id = ?", scheduleID).Delete(&models.ScheduleCategory{}).Error; err != nil {
		return err
	}
	if err := tx.Where("schedule_id = ?", scheduleID).Delete(&models.ScheduleCapacity{}).Error; err != nil {
		return err
	}
	return tx.Where("schedule_id = ?", scheduleID).Delete(&models.ScheduleCapacitySpot{}).Error
}
