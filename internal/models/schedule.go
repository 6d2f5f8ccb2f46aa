package models

import "time"

// Schedule é a raiz do agregado: categorias, capacidades e capacidades spot
// nascem, são substituídas e morrem junto com o agendamento.
type Schedule struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	CompanyID uint    `gorm:"index;not null" json:"company_id"`
	Company   Company `json:"-"`

	Uf           string    `gorm:"size:2;not null;default:MG" json:"uf"`
	ScheduleDate time.Time `gorm:"type:date;index;not null" json:"schedule_date"`

	CreatedAt time.Time `json:"created_at"`

	// Nulo até a primeira edição; o handler de update grava o valor,
	// então o preenchimento automático do GORM fica desligado.
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`

	Categories     []ScheduleCategory     `gorm:"constraint:OnDelete:CASCADE" json:"categories"`
	Capacities     []ScheduleCapacity     `gorm:"constraint:OnDelete:CASCADE" json:"capacities"`
	CapacitiesSpot []ScheduleCapacitySpot `gorm:"constraint:OnDelete:CASCADE" json:"capacities_spot"`
}

type ScheduleCategory struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ScheduleID uint `gorm:"index;not null" json:"-"`

	CategoryName string `gorm:"size:100;not null" json:"category_name"`
	Count        int    `gorm:"not null;default:0" json:"count"`

	// Preenchido apenas para categorias que exigem perfil (viagens perdidas)
	ProfileName string `gorm:"size:100" json:"profile_name"`

	Plates []UnavailablePlate `gorm:"constraint:OnDelete:CASCADE" json:"plates"`
}

// UnavailablePlate registra o detalhe de uma viagem indisponível:
// placa do veículo e motivo obrigatório.
type UnavailablePlate struct {
	ID                 uint `gorm:"primaryKey" json:"id"`
	ScheduleCategoryID uint `gorm:"index;not null" json:"-"`

	PlateNumber string `gorm:"size:20;not null" json:"plate_number"`
	Reason      string `gorm:"size:255;not null" json:"reason"`
}

type ScheduleCapacity struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ScheduleID uint `gorm:"index;not null" json:"-"`

	ProfileName  string `gorm:"size:100;not null" json:"profile_name"`
	VehicleCount int    `gorm:"not null;default:0" json:"vehicle_count"`

	// Calculado uma única vez na gravação (count × peso do perfil);
	// não é recalculado em leituras.
	TotalWeightKg int `gorm:"not null;default:0" json:"total_weight_kg"`
}

// ScheduleCapacitySpot são os veículos avulsos (spot), contabilizados
// separadamente dos totais principais do dashboard.
type ScheduleCapacitySpot struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ScheduleID uint `gorm:"index;not null" json:"-"`

	ProfileName   string `gorm:"size:100;not null" json:"profile_name"`
	VehicleCount  int    `gorm:"not null;default:0" json:"vehicle_count"`
	TotalWeightKg int    `gorm:"not null;default:0" json:"total_weight_kg"`
}
