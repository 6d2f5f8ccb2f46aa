package models

import "time"

// CategoryKind diz como o validador e o dashboard tratam uma categoria.
// Dispatch por kind, nunca por comparação do nome literal.
type CategoryKind string

const (
	// Contagem simples, sem regra extra (ex.: "Carros em rota")
	CategoryKindPlain CategoryKind = "plain"

	// Viagens perdidas: exige perfil informado; soma no total_lost_trips
	CategoryKindLost CategoryKind = "lost"

	// Viagens indisponíveis: exige placa + motivo por ocorrência
	CategoryKindUnavailable CategoryKind = "unavailable"

	// Veículos spot/parados: contagem precisa bater com as capacidades spot
	CategoryKindSpot CategoryKind = "spot"
)

// Category é o vocabulário de categorias administrável.
type Category struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"size:100;not null;unique" json:"name"`
	Kind      CategoryKind `gorm:"size:20;not null;default:plain" json:"kind"`
	CreatedAt time.Time    `json:"created_at"`
}

// Uf é o vocabulário de regiões (unidades federativas) administrável.
type Uf struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:2;not null;unique" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
