package admin

import (
	"errors"
	"strings"

	"logisched-backend/internal/audit"
	"logisched-backend/internal/auth"
	"logisched-backend/internal/database"
	"logisched-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UfRequest struct {
	Name string `json:"name"`
}

type CategoryRequest struct {
	Name string              `json:"name"`
	Kind models.CategoryKind `json:"kind"`
}

type ProfileRequest struct {
	Name       string `json:"name"`
	WeightKg   int    `json:"weight_kg"`
	Spot       bool   `json:"spot"`
	CompanyIDs []uint `json:"company_ids"`
}

type ProfileResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	WeightKg   int    `json:"weight_kg"`
	Spot       bool   `json:"spot"`
	CompanyIDs []uint `json:"company_ids"`
}

type CompanyRequest struct {
	Name        string `json:"name"`
	VehicleGoal int    `json:"vehicle_goal"`
}

// --- UFs ---

// GET /api/ufs (público, alimenta o formulário de agendamento)
func ListUfsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var ufs []models.Uf
		if err := database.DB.Order("name asc").Find(&ufs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao carregar UFs")
		}
		return c.JSON(ufs)
	}
}

// POST /api/admin/ufs
func CreateUfHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UfRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		name := strings.ToUpper(strings.TrimSpace(body.Name))
		if len(name) != 2 {
			return fiber.NewError(fiber.StatusBadRequest, "UF deve ter 2 letras")
		}

		uf := models.Uf{Name: name}
		if err := database.DB.Create(&uf).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "UF já existe")
		}

		return c.Status(fiber.StatusCreated).JSON(uf)
	}
}

// DELETE /api/admin/ufs/:id
func DeleteUfHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}
		if err := database.DB.Delete(&models.Uf{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao excluir UF")
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}

// --- Categorias (vocabulário) ---

// GET /api/categories (público)
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []models.Category
		if err := database.DB.Order("id asc").Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao carregar categorias")
		}
		return c.JSON(categories)
	}
}

// POST /api/admin/categories
func CreateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nome da categoria é obrigatório")
		}
		if body.Kind == "" {
			body.Kind = models.CategoryKindPlain
		}
		switch body.Kind {
		case models.CategoryKindPlain, models.CategoryKindLost, models.CategoryKindUnavailable, models.CategoryKindSpot:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Tipo de categoria inválido")
		}

		category := models.Category{Name: body.Name, Kind: body.Kind}
		if err := database.DB.Create(&category).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "Categoria já existe")
		}

		audit.Record(auth.RoleFromContext(c), "category", category.ID, models.AuditActionCreate,
			"Categoria criada: "+category.Name)

		return c.Status(fiber.StatusCreated).JSON(category)
	}
}

// DELETE /api/admin/categories/:id - recusa excluir categoria em uso
func DeleteCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var category models.Category
		if err := database.DB.First(&category, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Categoria não encontrada")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao consultar categoria")
		}

		var refs int64
		database.DB.Model(&models.ScheduleCategory{}).Where("category_name = ?", category.Name).Count(&refs)
		if refs > 0 {
			return fiber.NewError(fiber.StatusConflict, "Categoria em uso por agendamentos existentes")
		}

		if err := database.DB.Delete(&category).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao excluir categoria")
		}

		audit.Record(auth.RoleFromContext(c), "category", category.ID, models.AuditActionDelete,
			"Categoria excluída: "+category.Name)

		return c.JSON(fiber.Map{"ok": true})
	}
}

// --- Perfis de capacidade ---

// GET /api/profiles (público; ?company_id= restringe aos perfis da empresa)
func ListProfilesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var profiles []models.CapacityProfile
		if err := database.DB.Preload("Companies").Order("weight_kg asc").Find(&profiles).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao carregar perfis")
		}

		companyID := c.QueryInt("company_id")

		resp := make([]ProfileResponse, 0, len(profiles))
		for _, p := range profiles {
			if companyID > 0 && len(p.Companies) > 0 && !profileAllows(p, uint(companyID)) {
				continue
			}
			resp = append(resp, toProfileResponse(p))
		}
		return c.JSON(resp)
	}
}

// POST /api/admin/profiles
func CreateProfileHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProfileRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nome do perfil é obrigatório")
		}
		if body.WeightKg < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Peso não pode ser negativo")
		}

		profile := models.CapacityProfile{
			Name:     body.Name,
			WeightKg: body.WeightKg,
			Spot:     body.Spot,
		}

		// Associação vazia = perfil global, utilizável por todas as empresas
		for _, cid := range body.CompanyIDs {
			var company models.Company
			if err := database.DB.First(&company, "id = ?", cid).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Empresa não encontrada")
			}
			profile.Companies = append(profile.Companies, company)
		}

		if err := database.DB.Create(&profile).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "Perfil já existe")
		}

		audit.Record(auth.RoleFromContext(c), "capacity_profile", profile.ID, models.AuditActionCreate,
			"Perfil criado: "+profile.Name)

		return c.Status(fiber.StatusCreated).JSON(toProfileResponse(profile))
	}
}

// PUT /api/admin/profiles/:id - renomear só é permitido sem referências,
// porque as capacidades gravadas apontam para o perfil pelo nome
func UpdateProfileHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var profile models.CapacityProfile
		if err := database.DB.Preload("Companies").First(&profile, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Perfil não encontrado")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao consultar perfil")
		}

		var body ProfileRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name != "" && body.Name != profile.Name {
			if refs := countProfileReferences(profile.Name); refs > 0 {
				return fiber.NewError(fiber.StatusConflict, "Perfil referenciado por agendamentos, não pode ser renomeado")
			}
			profile.Name = body.Name
		}
		if body.WeightKg < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Peso não pode ser negativo")
		}
		profile.WeightKg = body.WeightKg
		profile.Spot = body.Spot

		var companies []models.Company
		for _, cid := range body.CompanyIDs {
			var company models.Company
			if err := database.DB.First(&company, "id = ?", cid).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Empresa não encontrada")
			}
			companies = append(companies, company)
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&profile).Error; err != nil {
				return err
			}
			return tx.Model(&profile).Association("Companies").Replace(&companies)
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao atualizar perfil")
		}

		audit.Record(auth.RoleFromContext(c), "capacity_profile", profile.ID, models.AuditActionUpdate,
			"Perfil atualizado: "+profile.Name)

		profile.Companies = companies
		return c.JSON(toProfileResponse(profile))
	}
}

// DELETE /api/admin/profiles/:id - recusa excluir perfil referenciado
func DeleteProfileHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var profile models.CapacityProfile
		if err := database.DB.First(&profile, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Perfil não encontrado")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao consultar perfil")
		}

		if refs := countProfileReferences(profile.Name); refs > 0 {
			return fiber.NewError(fiber.StatusConflict, "Perfil referenciado por agendamentos existentes, exclusão recusada")
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&profile).Association("Companies").Clear(); err != nil {
				return err
			}
			return tx.Delete(&profile).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao excluir perfil")
		}

		audit.Record(auth.RoleFromContext(c), "capacity_profile", profile.ID, models.AuditActionDelete,
			"Perfil excluído: "+profile.Name)

		return c.JSON(fiber.Map{"ok": true})
	}
}

// --- Empresas (metas) ---

// POST /api/admin/companies
func CreateCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CompanyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nome da empresa é obrigatório")
		}
		if body.VehicleGoal < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Meta não pode ser negativa")
		}

		company := models.Company{Name: body.Name, VehicleGoal: body.VehicleGoal}
		if err := database.DB.Create(&company).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "Empresa já existe")
		}

		audit.Record(auth.RoleFromContext(c), "company", company.ID, models.AuditActionCreate,
			"Empresa criada: "+company.Name)

		return c.Status(fiber.StatusCreated).JSON(company)
	}
}

// PUT /api/admin/companies/:id - edita nome e meta diária
func UpdateCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var company models.Company
		if err := database.DB.First(&company, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Empresa não encontrada")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao consultar empresa")
		}

		var body CompanyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if name := strings.TrimSpace(body.Name); name != "" {
			company.Name = name
		}
		if body.VehicleGoal < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Meta não pode ser negativa")
		}
		company.VehicleGoal = body.VehicleGoal

		if err := database.DB.Save(&company).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "Empresa já existe com este nome")
		}

		audit.Record(auth.RoleFromContext(c), "company", company.ID, models.AuditActionUpdate,
			"Empresa atualizada: "+company.Name)

		return c.JSON(company)
	}
}

// DELETE /api/admin/companies/:id - recusa excluir empresa com agendamentos
func DeleteCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		var company models.Company
		if err := database.DB.First(&company, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Empresa não encontrada")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao consultar empresa")
		}

		var refs int64
		database.DB.Model(&models.Schedule{}).Where("company_id = ?", company.ID).Count(&refs)
		if refs > 0 {
			return fiber.NewError(fiber.StatusConflict, "Empresa possui agendamentos, exclusão recusada")
		}

		if err := database.DB.Delete(&company).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao excluir empresa")
		}

		audit.Record(auth.RoleFromContext(c), "company", company.ID, models.AuditActionDelete,
			"Empresa excluída: "+company.Name)

		return c.JSON(fiber.Map{"ok": true})
	}
}

// countProfileReferences conta referências pelo nome nas capacidades
// gravadas (regulares e spot) e nas categorias que exigem perfil.
func countProfileReferences(name string) int64 {
	var total, refs int64

	database.DB.Model(&models.ScheduleCapacity{}).Where("profile_name = ?", name).Count(&refs)
	total += refs
	database.DB.Model(&models.ScheduleCapacitySpot{}).Where("profile_name = ?", name).Count(&refs)
	total += refs
	database.DB.Model(&models.ScheduleCategory{}).Where("profile_name = ?", name).Count(&refs)
	total += refs

	return total
}

func profileAllows(p models.CapacityProfile, companyID uint) bool {
	for _, c := range p.Companies {
		if c.ID == companyID {
			return true
		}
	}
	return false
}

func toProfileResponse(p models.CapacityProfile) ProfileResponse {
	resp := ProfileResponse{
		ID:         p.ID,
		Name:       p.Name,
		WeightKg:   p.WeightKg,
		Spot:       p.Spot,
		CompanyIDs: []uint{},
	}
	for _, c := range p.Companies {
		resp.CompanyIDs = append(resp.CompanyIDs, c.ID)
	}
	return resp
}
