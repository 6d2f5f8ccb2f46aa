package models

import "time"

// CapacityProfile é um tipo de veículo com peso fixo por unidade.
// Sem empresas associadas = perfil global (dados legados da tabela fixa
// HR/3-4/Toco/Truck usam essa forma).
type CapacityProfile struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100;not null;unique" json:"name"`
	WeightKg int    `gorm:"not null;default:0" json:"weight_kg"`

	// Perfil exclusivo para capacidade spot
	Spot bool `gorm:"not null;default:false" json:"spot"`

	Companies []Company `gorm:"many2many:capacity_profile_companies" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
