package scheduling

// AnnotatedCapacity é uma entrada de capacidade com o peso total resolvido
// contra o cadastro de perfis no momento da gravação.
type AnnotatedCapacity struct {
	ProfileName   string `json:"profile_name"`
	VehicleCount  int    `json:"vehicle_count"`
	TotalWeightKg int    `json:"total_weight_kg"`
}

type CapacityTotals struct {
	TotalVehicles   int `json:"total_vehicles"`
	TotalCapacityKg int `json:"total_capacity_kg"`
}

// Calculate anota cada entrada com veículos × peso do perfil e acumula os
// totais. Perfil desconhecido vale peso 0 (ver ProfileRegistry.WeightFor);
// quem precisa de comportamento estrito roda o Validate antes.
func Calculate(entries []CapacityInput, reg *ProfileRegistry) ([]AnnotatedCapacity, CapacityTotals) {
	annotated := make([]AnnotatedCapacity, 0, len(entries))
	var totals CapacityTotals

	for _, e := range entries {
		weight := reg.WeightFor(e.ProfileName)
		total := e.VehicleCount * weight

		annotated = append(annotated, AnnotatedCapacity{
			ProfileName:   e.ProfileName,
			VehicleCount:  e.VehicleCount,
			TotalWeightKg: total,
		})

		totals.TotalVehicles += e.VehicleCount
		totals.TotalCapacityKg += total
	}

	return annotated, totals
}
