package database

import (
	"log"

	"logisched-backend/internal/config"
	"logisched-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	if cfg.DatabaseDSN != "" {
		DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	} else {
		// Desenvolvimento local sem Postgres
		DB, err = gorm.Open(sqlite.Open("local.db"), &gorm.Config{})
	}
	if err != nil {
		log.Fatalf("Não foi possível conectar ao banco de dados: %v", err)
	}

	err = DB.AutoMigrate(
		&models.Company{},
		&models.Uf{},
		&models.Category{},
		&models.CapacityProfile{},
		&models.Schedule{},
		&models.ScheduleCategory{},
		&models.UnavailablePlate{},
		&models.ScheduleCapacity{},
		&models.ScheduleCapacitySpot{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("Erro no AutoMigrate: %v", err)
	}

	seed()

	log.Println("Conexão com o banco estabelecida. Migration concluída.")
}

// seed popula os dados de referência na primeira subida: empresas,
// UFs, vocabulário de categorias e a tabela de perfis legada.
func seed() {
	var count int64

	DB.Model(&models.Company{}).Count(&count)
	if count == 0 {
		companies := []models.Company{
			{Name: "3 Corações"},
			{Name: "Itambé"},
			{Name: "DPA"},
		}
		if err := DB.Create(&companies).Error; err != nil {
			log.Printf("Erro ao semear empresas: %v", err)
		}
	}

	DB.Model(&models.Uf{}).Count(&count)
	if count == 0 {
		ufs := []models.Uf{{Name: "MG"}, {Name: "SP"}, {Name: "RJ"}, {Name: "ES"}}
		if err := DB.Create(&ufs).Error; err != nil {
			log.Printf("Erro ao semear UFs: %v", err)
		}
	}

	DB.Model(&models.Category{}).Count(&count)
	if count == 0 {
		categories := []models.Category{
			{Name: "Carros em rota", Kind: models.CategoryKindPlain},
			{Name: "Reentrega", Kind: models.CategoryKindPlain},
			{Name: "Em viagem", Kind: models.CategoryKindPlain},
			{Name: "Perdidas", Kind: models.CategoryKindLost},
			{Name: "Indisponíveis", Kind: models.CategoryKindUnavailable},
			{Name: "Diária", Kind: models.CategoryKindPlain},
			{Name: "Spot/Parado", Kind: models.CategoryKindSpot},
		}
		if err := DB.Create(&categories).Error; err != nil {
			log.Printf("Erro ao semear categorias: %v", err)
		}
	}

	DB.Model(&models.CapacityProfile{}).Count(&count)
	if count == 0 {
		// Tabela fixa original de perfis; globais (sem restrição de empresa)
		profiles := []models.CapacityProfile{
			{Name: "HR", WeightKg: 1500},
			{Name: "3/4", WeightKg: 3500},
			{Name: "Toco", WeightKg: 7000},
			{Name: "Truck", WeightKg: 14000},
		}
		if err := DB.Create(&profiles).Error; err != nil {
			log.Printf("Erro ao semear perfis: %v", err)
		}
	}
}
