package audit

import (
	"log"

	"logisched-backend/internal/auth"
	"logisched-backend/internal/database"
	"logisched-backend/internal/models"
)

// Record grava uma entrada da trilha de auditoria. Falha de auditoria não
// derruba a operação principal, só vai para o log.
func Record(role auth.Role, entityType string, entityID uint, action models.AuditAction, description string) {
	entry := models.AuditLog{
		Role:        string(role),
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      action,
		Description: description,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		log.Printf("Erro ao gravar auditoria (%s %s %d): %v", action, entityType, entityID, err)
	}
}
