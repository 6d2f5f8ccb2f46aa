package dashboard

import (
	"sort"
	"time"

	"logisched-backend/internal/models"
	"logisched-backend/internal/scheduling"
)

// Filters são os filtros que o chamador aplicou na consulta. O agregador
// só usa o recorte de datas (para a meta do período) e o perfil (para
// restringir as somas de capacidade) - a seleção de agendamentos em si já
// chegou pronta do banco.
type Filters struct {
	ProfileName string
	StartDate   *time.Time
	EndDate     *time.Time
}

type CompanyCapacity struct {
	Company    string `json:"company"`
	CapacityKg int    `json:"capacity_kg"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// GoalFulfillment compara o realizado de uma empresa com a meta do
// período (meta diária × número de dias).
type GoalFulfillment struct {
	Company   string `json:"company"`
	Realizado int    `json:"realizado"`
	Meta      int    `json:"meta"`
}

type DashboardMetrics struct {
	TotalCapacityKg        int                           `json:"total_capacity_kg"`
	TotalVehicles          int                           `json:"total_vehicles"`
	TotalLostTrips         int                           `json:"total_lost_trips"`
	CapacityByCompany      []CompanyCapacity             `json:"capacity_by_company"`
	CategoriesDistribution []CategoryCount               `json:"categories_distribution"`
	RecentSchedules        []scheduling.ScheduleResponse `json:"recent_schedules"`
	GoalFulfillment        []GoalFulfillment             `json:"goal_fulfillment"`
}

// Aggregate dobra o conjunto filtrado de agendamentos (já ordenado por
// data decrescente) nas métricas do dashboard. Conjunto vazio devolve
// zeros e coleções vazias, nunca erro.
//
// Capacidades spot ficam fora dos totais principais: são reportadas
// separadamente dentro de cada agendamento recente.
func Aggregate(schedules []models.Schedule, goals map[uint]int, kinds map[string]models.CategoryKind, filters Filters) DashboardMetrics {
	m := DashboardMetrics{
		CapacityByCompany:      []CompanyCapacity{},
		CategoriesDistribution: []CategoryCount{},
		RecentSchedules:        []scheduling.ScheduleResponse{},
		GoalFulfillment:        []GoalFulfillment{},
	}

	// Totais gerais
	for _, s := range schedules {
		for _, cap := range s.Capacities {
			if filters.ProfileName != "" && cap.ProfileName != filters.ProfileName {
				continue
			}
			m.TotalCapacityKg += cap.TotalWeightKg
			m.TotalVehicles += cap.VehicleCount
		}
		for _, cat := range s.Categories {
			if kinds[cat.CategoryName] == models.CategoryKindLost {
				m.TotalLostTrips += cat.Count
			}
		}
	}

	// Capacidade por empresa (empresas com soma zero ficam de fora)
	capByCompany := map[string]int{}
	for _, s := range schedules {
		for _, cap := range s.Capacities {
			if filters.ProfileName != "" && cap.ProfileName != filters.ProfileName {
				continue
			}
			capByCompany[s.Company.Name] += cap.TotalWeightKg
		}
	}
	for name, capacity := range capByCompany {
		if capacity > 0 {
			m.CapacityByCompany = append(m.CapacityByCompany, CompanyCapacity{Company: name, CapacityKg: capacity})
		}
	}
	sort.Slice(m.CapacityByCompany, func(i, j int) bool {
		return m.CapacityByCompany[i].Company < m.CapacityByCompany[j].Company
	})

	// Distribuição de categorias (independente do filtro de perfil)
	catDistribution := map[string]int{}
	for _, s := range schedules {
		for _, cat := range s.Categories {
			catDistribution[cat.CategoryName] += cat.Count
		}
	}
	for name, count := range catDistribution {
		m.CategoriesDistribution = append(m.CategoriesDistribution, CategoryCount{Category: name, Count: count})
	}
	sort.Slice(m.CategoriesDistribution, func(i, j int) bool {
		return m.CategoriesDistribution[i].Category < m.CategoriesDistribution[j].Category
	})

	// Últimos 5 agendamentos (o conjunto já vem em data decrescente)
	for i, s := range schedules {
		if i >= 5 {
			break
		}
		m.RecentSchedules = append(m.RecentSchedules, scheduling.NewScheduleResponse(s, filters.ProfileName))
	}

	// Atingimento de meta: realizado exclui a categoria spot/parado
	realizado := map[uint]int{}
	companyNames := map[uint]string{}
	for _, s := range schedules {
		if _, seen := realizado[s.CompanyID]; !seen {
			realizado[s.CompanyID] = 0
		}
		companyNames[s.CompanyID] = s.Company.Name
		for _, cat := range s.Categories {
			if kinds[cat.CategoryName] == models.CategoryKindSpot {
				continue
			}
			realizado[s.CompanyID] += cat.Count
		}
	}

	numDays := periodDays(schedules, filters)
	for companyID, done := range realizado {
		m.GoalFulfillment = append(m.GoalFulfillment, GoalFulfillment{
			Company:   companyNames[companyID],
			Realizado: done,
			Meta:      goals[companyID] * numDays,
		})
	}
	sort.Slice(m.GoalFulfillment, func(i, j int) bool {
		return m.GoalFulfillment[i].Company < m.GoalFulfillment[j].Company
	})

	return m
}

// periodDays resolve o número de dias da meta: recorte explícito de datas
// quando o chamador filtrou por período, senão o intervalo observado nos
// agendamentos presentes (mínimo de 1 dia).
func periodDays(schedules []models.Schedule, filters Filters) int {
	if len(schedules) == 0 {
		return 1
	}

	if filters.StartDate != nil && filters.EndDate != nil {
		days := int(filters.EndDate.Sub(*filters.StartDate).Hours()/24) + 1
		if days < 1 {
			return 1
		}
		return days
	}

	minDate := schedules[0].ScheduleDate
	maxDate := schedules[0].ScheduleDate
	for _, s := range schedules[1:] {
		if s.ScheduleDate.Before(minDate) {
			minDate = s.ScheduleDate
		}
		if s.ScheduleDate.After(maxDate) {
			maxDate = s.ScheduleDate
		}
	}

	days := int(maxDate.Sub(minDate).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}
