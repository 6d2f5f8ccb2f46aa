package scheduling

import (
	"fmt"
	"sort"
	"strings"

	"logisched-backend/internal/models"
)

// Entrada de um agendamento como chega do cliente, antes de virar modelo.
type PlateInput struct {
	PlateNumber string `json:"plate_number"`
	Reason      string `json:"reason"`
}

type CategoryInput struct {
	CategoryName string       `json:"category_name"`
	Count        int          `json:"count"`
	ProfileName  string       `json:"profile_name"`
	Plates       []PlateInput `json:"plates"`
}

type CapacityInput struct {
	ProfileName  string `json:"profile_name"`
	VehicleCount int    `json:"vehicle_count"`
}

type ScheduleInput struct {
	CompanyID      uint            `json:"company_id"`
	Uf             string          `json:"uf"`
	ScheduleDate   string          `json:"schedule_date"` // "2006-01-02"
	Categories     []CategoryInput `json:"categories"`
	Capacities     []CapacityInput `json:"capacities"`
	CapacitiesSpot []CapacityInput `json:"capacities_spot"`
}

// Códigos de rejeição do validador.
const (
	CodePlateCountMismatch = "plate_count_mismatch"
	CodeBlankPlate         = "blank_plate"
	CodeBlankReason        = "blank_reason"
	CodeProfileRequired    = "profile_required"
	CodeSpotCountMismatch  = "spot_count_mismatch"
	CodeUnknownProfile     = "unknown_profile"
)

// ValidationError nomeia a primeira regra violada e o campo ofensor.
// Sempre recuperável: o cliente corrige e reenvia.
type ValidationError struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checa a consistência interna de um agendamento proposto.
// Função pura: nenhum efeito colateral, primeira violação vence.
// A existência da empresa é a última checagem, feita pelo handler depois
// que todas as regras de conteúdo passaram.
func Validate(in ScheduleInput, kinds map[string]models.CategoryKind, reg *ProfileRegistry) *ValidationError {
	// 1. Categorias com detalhe por ocorrência: contagem bate com as placas
	for _, cat := range in.Categories {
		if kinds[cat.CategoryName] != models.CategoryKindUnavailable {
			continue
		}
		if cat.Count != len(cat.Plates) {
			return &ValidationError{
				Code:    CodePlateCountMismatch,
				Field:   cat.CategoryName,
				Message: fmt.Sprintf("Para %d viagens indisponíveis, informe %d placas com motivo", cat.Count, cat.Count),
			}
		}
		for _, plate := range cat.Plates {
			if strings.TrimSpace(plate.PlateNumber) == "" {
				return &ValidationError{
					Code:    CodeBlankPlate,
					Field:   cat.CategoryName,
					Message: "Placa em branco não é permitida",
				}
			}
			if strings.TrimSpace(plate.Reason) == "" {
				return &ValidationError{
					Code:    CodeBlankReason,
					Field:   plate.PlateNumber,
					Message: fmt.Sprintf("Informe o motivo da placa %s", plate.PlateNumber),
				}
			}
		}
	}

	// 2. Categorias que exigem perfil (viagens perdidas)
	for _, cat := range in.Categories {
		if kinds[cat.CategoryName] != models.CategoryKindLost {
			continue
		}
		if strings.TrimSpace(cat.ProfileName) == "" {
			return &ValidationError{
				Code:    CodeProfileRequired,
				Field:   cat.CategoryName,
				Message: fmt.Sprintf("Informe o perfil dos veículos da categoria %s", cat.CategoryName),
			}
		}
	}

	// 3. Categoria spot presente: contagem bate com a soma das capacidades
	// spot. Sem a categoria, capacidades spot soltas são aceitas sem checagem.
	for _, cat := range in.Categories {
		if kinds[cat.CategoryName] != models.CategoryKindSpot {
			continue
		}
		spotSum := 0
		for _, cap := range in.CapacitiesSpot {
			spotSum += cap.VehicleCount
		}
		if cat.Count != spotSum {
			return &ValidationError{
				Code:    CodeSpotCountMismatch,
				Field:   cat.CategoryName,
				Message: fmt.Sprintf("Categoria %s com %d veículos, mas as capacidades spot somam %d", cat.CategoryName, cat.Count, spotSum),
			}
		}
	}

	// 4. Todo perfil referenciado precisa existir no cadastro
	missing := map[string]bool{}
	for _, cap := range in.Capacities {
		if !reg.Has(cap.ProfileName) {
			missing[cap.ProfileName] = true
		}
	}
	for _, cap := range in.CapacitiesSpot {
		if !reg.Has(cap.ProfileName) {
			missing[cap.ProfileName] = true
		}
	}
	for _, cat := range in.Categories {
		if cat.ProfileName != "" && !reg.Has(cat.ProfileName) {
			missing[cat.ProfileName] = true
		}
	}
	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for name := range missing {
			names = append(names, name)
		}
		sort.Strings(names)
		return &ValidationError{
			Code:    CodeUnknownProfile,
			Field:   strings.Join(names, ", "),
			Message: fmt.Sprintf("Perfil desconhecido: %s", strings.Join(names, ", ")),
		}
	}

	return nil
}
