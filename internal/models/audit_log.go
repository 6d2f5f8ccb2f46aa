package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

// AuditLog registra quem mexeu em quê: criação/edição/exclusão de
// agendamentos, perfis e vocabulários.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Papel extraído do token (admin/collab); não há usuários nominais
	Role string `gorm:"size:20" json:"role"`

	// Qual entidade? (ex.: "schedule", "capacity_profile", "category")
	EntityType string `gorm:"size:50;index" json:"entity_type"`
	EntityID   uint   `gorm:"index" json:"entity_id"`

	Action AuditAction `gorm:"size:20" json:"action"`

	// Resumo curto para a listagem do admin
	Description string `gorm:"size:255" json:"description"`
}
