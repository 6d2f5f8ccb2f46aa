package admin

import (
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"logisched-backend/internal/database"
	"logisched-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAdminDB(t *testing.T) *gorm.DB {
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

	database.DB = db
	return db
}

func newAdminApp() *fiber.App {
	app := fiber.New()
	app.Delete("/api/admin/profiles/:id", DeleteProfileHandler())
	return app
}

func TestDeleteProfileReferencedBySchedule(t *testing.T) {
	db := setupAdminDB(t)
	app := newAdminApp()

	profile := models.CapacityProfile{Name: "Truck", WeightKg: 14000}
	require.NoError(t, db.Create(&profile).Error)

	company := models.Company{Name: "DPA"}
	require.NoError(t, db.Create(&company).Error)

	schedule := models.Schedule{
		CompanyID:    company.ID,
		Uf:           "MG",
		ScheduleDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Capacities: []models.ScheduleCapacity{
			{ProfileName: "Truck", VehicleCount: 1, TotalWeightKg: 14000},
		},
	}
	require.NoError(t, db.Create(&schedule).Error)

	url := "/api/admin/profiles/" + strconv.Itoa(int(profile.ID))

	// Perfil referenciado por uma capacidade gravada: exclusão recusada
	resp, err := app.Test(httptest.NewRequest("DELETE", url, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var survivor models.CapacityProfile
	assert.NoError(t, db.First(&survivor, "id = ?", profile.ID).Error)

	// Sem referências restantes, a exclusão passa
	require.NoError(t, db.Where("profile_name = ?", "Truck").Delete(&models.ScheduleCapacity{}).Error)

	resp, err = app.Test(httptest.NewRequest("DELETE", url, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	err = db.First(&models.CapacityProfile{}, "id = ?", profile.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteProfileReferencedByLostCategory(t *testing.T) {
	db := setupAdminDB(t)
	app := newAdminApp()

	profile := models.CapacityProfile{Name: "HR", WeightKg: 1500}
	require.NoError(t, db.Create(&profile).Error)

	company := models.Company{Name: "Itambé"}
	require.NoError(t, db.Create(&company).Error)

	schedule := models.Schedule{
		CompanyID:    company.ID,
		Uf:           "MG",
		ScheduleDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Categories: []models.ScheduleCategory{
			{CategoryName: "Perdidas", Count: 2, ProfileName: "HR"},
		},
	}
	require.NoError(t, db.Create(&schedule).Error)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/admin/profiles/"+strconv.Itoa(int(profile.ID)), nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var survivor models.CapacityProfile
	assert.NoError(t, db.First(&survivor, "id = ?", profile.ID).Error)
}
