package models

import "time"

type Company struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null;unique" json:"name"`

	// Meta diária de veículos usada no cálculo de atingimento de meta
	VehicleGoal int `gorm:"not null;default:0" json:"vehicle_goal"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Schedules []Schedule `json:"-"`
}
