package export

import (
	"strings"

	"logisched-backend/internal/models"
)

// Cabeçalhos das três tabelas do export.
var (
	categoryHeader = []interface{}{"Data", "Empresa", "Categoria", "Quantidade", "Placas (Indisponíveis)"}
	capacityHeader = []interface{}{"Data", "Empresa", "Perfil", "Veículos", "Capacidade (kg)"}
	spotHeader     = []interface{}{"Data", "Empresa", "Perfil (Spot)", "Veículos", "Capacidade (kg)"}
)

// BuildRows monta as linhas lógicas do documento de export: três tabelas
// independentes separadas por linhas em branco, na ordem dos agendamentos
// recebidos (data decrescente) e dos filhos de cada um. Renderização pura
// e determinística - a mesma entrada produz sempre as mesmas linhas.
func BuildRows(schedules []models.Schedule, kinds map[string]models.CategoryKind) [][]interface{} {
	rows := [][]interface{}{categoryHeader}

	// Tabela 1: categorias
	for _, s := range schedules {
		date := s.ScheduleDate.Format("02/01/2006")
		for _, cat := range s.Categories {
			plates := "-"
			if kinds[cat.CategoryName] == models.CategoryKindUnavailable {
				plates = renderPlates(cat.Plates)
			}
			rows = append(rows, []interface{}{date, s.Company.Name, cat.CategoryName, cat.Count, plates})
		}
	}

	rows = append(rows, nil, nil)

	// Tabela 2: capacidades regulares
	rows = append(rows, capacityHeader)
	for _, s := range schedules {
		date := s.ScheduleDate.Format("02/01/2006")
		for _, cap := range s.Capacities {
			rows = append(rows, []interface{}{date, s.Company.Name, cap.ProfileName, cap.VehicleCount, cap.TotalWeightKg})
		}
	}

	rows = append(rows, nil, nil)

	// Tabela 3: capacidades spot
	rows = append(rows, spotHeader)
	for _, s := range schedules {
		date := s.ScheduleDate.Format("02/01/2006")
		for _, cap := range s.CapacitiesSpot {
			rows = append(rows, []interface{}{date, s.Company.Name, cap.ProfileName, cap.VehicleCount, cap.TotalWeightKg})
		}
	}

	return rows
}

// renderPlates junta "PLACA (motivo)" separadas por vírgula.
func renderPlates(plates []models.UnavailablePlate) string {
	if len(plates) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(plates))
	for _, p := range plates {
		parts = append(parts, p.PlateNumber+" ("+p.Reason+")")
	}
	return strings.Join(parts, ", ")
}
