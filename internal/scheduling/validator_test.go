package scheduling

import (
	"testing"

	"logisched-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() *ProfileRegistry {
	return NewProfileRegistry([]models.CapacityProfile{
		{Name: "HR", WeightKg: 1500},
		{Name: "3/4", WeightKg: 3500},
		{Name: "Toco", WeightKg: 7000},
		{Name: "Truck", WeightKg: 14000},
	})
}

func testKinds() map[string]models.CategoryKind {
	return map[string]models.CategoryKind{
		"Carros em rota": models.CategoryKindPlain,
		"Reentrega":      models.CategoryKindPlain,
		"Perdidas":       models.CategoryKindLost,
		"Indisponíveis":  models.CategoryKindUnavailable,
		"Spot/Parado":    models.CategoryKindSpot,
	}
}

func TestValidateAccepted(t *testing.T) {
	input := ScheduleInput{
		CompanyID:    1,
		Uf:           "MG",
		ScheduleDate: "2024-03-01",
		Categories: []CategoryInput{
			{CategoryName: "Carros em rota", Count: 12},
			{CategoryName: "Perdidas", Count: 2, ProfileName: "Truck"},
			{CategoryName: "Indisponíveis", Count: 2, Plates: []PlateInput{
				{PlateNumber: "ABC1D23", Reason: "Manutenção"},
				{PlateNumber: "DEF4G56", Reason: "Sem motorista"},
			}},
			{CategoryName: "Spot/Parado", Count: 3},
		},
		Capacities: []CapacityInput{
			{ProfileName: "HR", VehicleCount: 2},
			{ProfileName: "Truck", VehicleCount: 1},
		},
		CapacitiesSpot: []CapacityInput{
			{ProfileName: "HR", VehicleCount: 3},
		},
	}

	assert.Nil(t, Validate(input, testKinds(), testRegistry()))
}

func TestValidatePlateDetail(t *testing.T) {
	tests := []struct {
		name     string
		category CategoryInput
		wantCode string
	}{
		{
			name: "contagem maior que placas",
			category: CategoryInput{CategoryName: "Indisponíveis", Count: 2, Plates: []PlateInput{
				{PlateNumber: "ABC1D23", Reason: "Pane"},
			}},
			wantCode: CodePlateCountMismatch,
		},
		{
			name: "contagem menor que placas",
			category: CategoryInput{CategoryName: "Indisponíveis", Count: 1, Plates: []PlateInput{
				{PlateNumber: "ABC1D23", Reason: "Pane"},
				{PlateNumber: "DEF4G56", Reason: "Pane"},
			}},
			wantCode: CodePlateCountMismatch,
		},
		{
			name: "placa em branco",
			category: CategoryInput{CategoryName: "Indisponíveis", Count: 1, Plates: []PlateInput{
				{PlateNumber: "   ", Reason: "Pane"},
			}},
			wantCode: CodeBlankPlate,
		},
		{
			name: "motivo em branco",
			category: CategoryInput{CategoryName: "Indisponíveis", Count: 1, Plates: []PlateInput{
				{PlateNumber: "ABC1D23", Reason: ""},
			}},
			wantCode: CodeBlankReason,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := ScheduleInput{Categories: []CategoryInput{tt.category}}
			verr := Validate(input, testKinds(), testRegistry())
			require.NotNil(t, verr)
			assert.Equal(t, tt.wantCode, verr.Code)
		})
	}
}

func TestValidateLostRequiresProfile(t *testing.T) {
	input := ScheduleInput{
		Categories: []CategoryInput{
			{CategoryName: "Perdidas", Count: 1},
		},
	}

	verr := Validate(input, testKinds(), testRegistry())
	require.NotNil(t, verr)
	assert.Equal(t, CodeProfileRequired, verr.Code)
	assert.Equal(t, "Perdidas", verr.Field)
}

func TestValidateSpotCount(t *testing.T) {
	input := ScheduleInput{
		Categories: []CategoryInput{
			{CategoryName: "Spot/Parado", Count: 5},
		},
		CapacitiesSpot: []CapacityInput{
			{ProfileName: "HR", VehicleCount: 2},
			{ProfileName: "Toco", VehicleCount: 2},
		},
	}

	verr := Validate(input, testKinds(), testRegistry())
	require.NotNil(t, verr)
	assert.Equal(t, CodeSpotCountMismatch, verr.Code)

	// Sem a categoria spot, capacidades spot soltas passam sem checagem
	input.Categories = nil
	assert.Nil(t, Validate(input, testKinds(), testRegistry()))
}

func TestValidateUnknownProfiles(t *testing.T) {
	input := ScheduleInput{
		Categories: []CategoryInput{
			{CategoryName: "Perdidas", Count: 1, ProfileName: "Carreta"},
		},
		Capacities: []CapacityInput{
			{ProfileName: "Bitrem", VehicleCount: 1},
			{ProfileName: "HR", VehicleCount: 2},
		},
	}

	verr := Validate(input, testKinds(), testRegistry())
	require.NotNil(t, verr)
	assert.Equal(t, CodeUnknownProfile, verr.Code)
	// Todos os perfis ausentes são nomeados, em ordem estável
	assert.Equal(t, "Bitrem, Carreta", verr.Field)
}

func TestValidateRuleOrder(t *testing.T) {
	// Detalhe de placas (regra 1) vence perfil desconhecido (regra 4)
	input := ScheduleInput{
		Categories: []CategoryInput{
			{CategoryName: "Indisponíveis", Count: 3},
		},
		Capacities: []CapacityInput{
			{ProfileName: "Inexistente", VehicleCount: 1},
		},
	}

	verr := Validate(input, testKinds(), testRegistry())
	require.NotNil(t, verr)
	assert.Equal(t, CodePlateCountMismatch, verr.Code)
}

func TestValidateUnknownCategoryTreatedAsPlain(t *testing.T) {
	input := ScheduleInput{
		Categories: []CategoryInput{
			{CategoryName: "Categoria Nova", Count: 4},
		},
	}

	assert.Nil(t, Validate(input, testKinds(), testRegistry()))
}
