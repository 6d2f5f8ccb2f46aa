package scheduling

import "logisched-backend/internal/models"

// ProfileRegistry é a visão em memória dos perfis de capacidade no momento
// da validação/cálculo. Montado a partir do banco a cada requisição.
type ProfileRegistry struct {
	byName map[string]models.CapacityProfile

	// empresas permitidas por perfil; entrada ausente = perfil global
	companies map[string]map[uint]bool
}

func NewProfileRegistry(profiles []models.CapacityProfile) *ProfileRegistry {
	r := &ProfileRegistry{
		byName:    make(map[string]models.CapacityProfile, len(profiles)),
		companies: make(map[string]map[uint]bool),
	}
	for _, p := range profiles {
		r.byName[p.Name] = p
		if len(p.Companies) > 0 {
			allowed := make(map[uint]bool, len(p.Companies))
			for _, c := range p.Companies {
				allowed[c.ID] = true
			}
			r.companies[p.Name] = allowed
		}
	}
	return r
}

func (r *ProfileRegistry) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// WeightFor devolve 0 para perfil desconhecido. Fallback deliberado para
// dados legados anteriores ao cadastro de perfis - submissões novas nunca
// chegam aqui com perfil desconhecido porque o Validator as rejeita antes.
func (r *ProfileRegistry) WeightFor(name string) int {
	return r.byName[name].WeightKg
}

func (r *ProfileRegistry) IsSpot(name string) bool {
	return r.byName[name].Spot
}

// AllowedFor diz se a empresa pode usar o perfil (perfil global libera todas).
func (r *ProfileRegistry) AllowedFor(name string, companyID uint) bool {
	allowed, restricted := r.companies[name]
	if !restricted {
		return r.Has(name)
	}
	return allowed[companyID]
}
