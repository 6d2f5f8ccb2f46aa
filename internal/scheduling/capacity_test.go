package scheduling

import (
	"testing"

	"logisched-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	entries := []CapacityInput{
		{ProfileName: "HR", VehicleCount: 2},
		{ProfileName: "Truck", VehicleCount: 1},
	}

	annotated, totals := Calculate(entries, testRegistry())

	require.Len(t, annotated, 2)
	assert.Equal(t, 3000, annotated[0].TotalWeightKg)  // 2 × 1500
	assert.Equal(t, 14000, annotated[1].TotalWeightKg) // 1 × 14000
	assert.Equal(t, 17000, totals.TotalCapacityKg)
	assert.Equal(t, 3, totals.TotalVehicles)
}

func TestCalculateUnknownProfileWeighsZero(t *testing.T) {
	// Fallback legado: perfil fora do cadastro vale peso zero
	entries := []CapacityInput{
		{ProfileName: "Romeu e Julieta", VehicleCount: 4},
		{ProfileName: "HR", VehicleCount: 1},
	}

	annotated, totals := Calculate(entries, testRegistry())

	assert.Equal(t, 0, annotated[0].TotalWeightKg)
	assert.Equal(t, 1500, totals.TotalCapacityKg)
	assert.Equal(t, 5, totals.TotalVehicles)
}

func TestCalculateEmpty(t *testing.T) {
	annotated, totals := Calculate(nil, testRegistry())

	assert.Empty(t, annotated)
	assert.Zero(t, totals.TotalCapacityKg)
	assert.Zero(t, totals.TotalVehicles)
}

func TestProfileRegistryCompanyScope(t *testing.T) {
	reg := NewProfileRegistry([]models.CapacityProfile{
		{Name: "HR", WeightKg: 1500},
		{Name: "Truck Exclusivo", WeightKg: 14000, Companies: []models.Company{{ID: 7}}},
	})

	assert.True(t, reg.Has("HR"))
	assert.False(t, reg.Has("Carreta"))

	// Perfil global libera qualquer empresa
	assert.True(t, reg.AllowedFor("HR", 1))
	assert.True(t, reg.AllowedFor("HR", 7))

	// Perfil restrito só libera as associadas
	assert.True(t, reg.AllowedFor("Truck Exclusivo", 7))
	assert.False(t, reg.AllowedFor("Truck Exclusivo", 1))

	// Desconhecido não é liberado para ninguém
	assert.False(t, reg.AllowedFor("Carreta", 1))
}
