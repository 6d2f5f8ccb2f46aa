package scheduling

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"logisched-backend/internal/database"
	"logisched-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Banco sqlite em memória com os seeds mínimos para o fluxo de agendamento.
func setupScheduleDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// Uma única conexão, senão cada conexão do pool abre um :memory: vazio
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Company{},
		&models.Uf{},
		&models.Category{},
		&models.CapacityProfile{},
		&models.Schedule{},
		&models.ScheduleCategory{},
		&models.UnavailablePlate{},
		&models.ScheduleCapacity{},
		&models.ScheduleCapacitySpot{},
		&models.AuditLog{},
	))

	require.NoError(t, db.Create(&models.Company{Name: "Itambé"}).Error)
	require.NoError(t, db.Create(&[]models.Category{
		{Name: "Carros em rota", Kind: models.CategoryKindPlain},
		{Name: "Perdidas", Kind: models.CategoryKindLost},
		{Name: "Indisponíveis", Kind: models.CategoryKindUnavailable},
		{Name: "Spot/Parado", Kind: models.CategoryKindSpot},
	}).Error)
	require.NoError(t, db.Create(&[]models.CapacityProfile{
		{Name: "HR", WeightKg: 1500},
		{Name: "Truck", WeightKg: 14000},
	}).Error)

	database.DB = db
	return db
}

func newScheduleApp() *fiber.App {
	// Mesmo ErrorHandler JSON do servidor, para decodificar 404s no teste
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Post("/api/schedules", CreateScheduleHandler())
	app.Put("/api/schedules/:id", UpdateScheduleHandler())
	return app
}

func sendJSON(t *testing.T, app *fiber.App, method, url string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(method, url, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestCreateScheduleValidationWinsOverUnknownCompany(t *testing.T) {
	setupScheduleDB(t)
	app := newScheduleApp()

	// Empresa inexistente E detalhe de placas inconsistente na mesma
	// submissão: a regra de conteúdo responde primeiro
	input := ScheduleInput{
		CompanyID:    999,
		Uf:           "MG",
		ScheduleDate: "2024-03-01",
		Categories: []CategoryInput{
			{CategoryName: "Indisponíveis", Count: 2, Plates: []PlateInput{
				{PlateNumber: "ABC1D23", Reason: "Pane"},
			}},
		},
	}

	resp, body := sendJSON(t, app, "POST", "/api/schedules", input)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, CodePlateCountMismatch, body["code"])
}

func TestCreateScheduleUnknownCompany(t *testing.T) {
	setupScheduleDB(t)
	app := newScheduleApp()

	// Submissão internamente válida: aí sim a empresa inexistente é o erro
	input := ScheduleInput{
		CompanyID:    999,
		Uf:           "MG",
		ScheduleDate: "2024-03-01",
		Categories: []CategoryInput{
			{CategoryName: "Carros em rota", Count: 3},
		},
		Capacities: []CapacityInput{
			{ProfileName: "HR", VehicleCount: 2},
		},
	}

	resp, _ := sendJSON(t, app, "POST", "/api/schedules", input)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreateSchedulePersistsAndOmitsUpdatedAt(t *testing.T) {
	db := setupScheduleDB(t)
	app := newScheduleApp()

	input := ScheduleInput{
		CompanyID:    1,
		Uf:           "mg",
		ScheduleDate: "2024-03-01",
		Categories: []CategoryInput{
			{CategoryName: "Carros em rota", Count: 3},
		},
		Capacities: []CapacityInput{
			{ProfileName: "HR", VehicleCount: 2},
			{ProfileName: "Truck", VehicleCount: 1},
		},
	}

	resp, body := sendJSON(t, app, "POST", "/api/schedules", input)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	assert.Equal(t, "MG", body["uf"])
	assert.Equal(t, float64(17000), body["total_capacity_kg"])
	assert.Equal(t, float64(3), body["total_vehicles"])

	// Agendamento recém-criado ainda não tem data de edição
	_, hasUpdatedAt := body["updated_at"]
	assert.False(t, hasUpdatedAt)

	var stored models.Schedule
	require.NoError(t, db.Preload("Capacities").First(&stored, "id = ?", uint(body["id"].(float64))).Error)
	assert.Nil(t, stored.UpdatedAt)
	assert.Len(t, stored.Capacities, 2)
}

func TestUpdateScheduleValidationWinsOverUnknownCompany(t *testing.T) {
	setupScheduleDB(t)
	app := newScheduleApp()

	valid := ScheduleInput{
		CompanyID:    1,
		Uf:           "MG",
		ScheduleDate: "2024-03-01",
		Categories: []CategoryInput{
			{CategoryName: "Carros em rota", Count: 3},
		},
	}
	resp, created := sendJSON(t, app, "POST", "/api/schedules", valid)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id := int(created["id"].(float64))

	// Perdidas sem perfil + empresa inexistente: validação responde primeiro
	broken := ScheduleInput{
		CompanyID:    999,
		Uf:           "MG",
		ScheduleDate: "2024-03-02",
		Categories: []CategoryInput{
			{CategoryName: "Perdidas", Count: 1},
		},
	}
	resp, body := sendJSON(t, app, "PUT", "/api/schedules/"+strconv.Itoa(id), broken)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, CodeProfileRequired, body["code"])
}

func TestUpdateScheduleSetsUpdatedAt(t *testing.T) {
	db := setupScheduleDB(t)
	app := newScheduleApp()

	valid := ScheduleInput{
		CompanyID:    1,
		Uf:           "MG",
		ScheduleDate: "2024-03-01",
		Categories: []CategoryInput{
			{CategoryName: "Carros em rota", Count: 3},
		},
	}
	resp, created := sendJSON(t, app, "POST", "/api/schedules", valid)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id := int(created["id"].(float64))

	valid.Categories[0].Count = 5
	resp, body := sendJSON(t, app, "PUT", "/api/schedules/"+strconv.Itoa(id), valid)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["updated_at"])

	var stored models.Schedule
	require.NoError(t, db.First(&stored, "id = ?", id).Error)
	require.NotNil(t, stored.UpdatedAt)
}

