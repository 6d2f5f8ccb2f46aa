package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string
	StaticDir   string // build do frontend (Vite) servido pelo backend

	// Senhas-mestras de acesso. As variantes *_HASH aceitam um hash bcrypt
	// e têm precedência sobre a senha em texto puro.
	AdminPassword      string
	AdminPasswordHash  string
	CollabPassword     string
	CollabPasswordHash string
}

func Load() *Config {
	// .env fica na raiz do projeto; em produção as variáveis vêm do ambiente
	if err := godotenv.Load(); err == nil {
		log.Println("Variáveis carregadas do arquivo .env")
	}

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		StaticDir:   getEnv("STATIC_DIR", "./static"),

		AdminPassword:      getEnv("ADMIN_PASSWORD", ""),
		AdminPasswordHash:  getEnv("ADMIN_PASSWORD_HASH", ""),
		CollabPassword:     getEnv("COLLAB_PASSWORD", ""),
		CollabPasswordHash: getEnv("COLLAB_PASSWORD_HASH", ""),
	}

	// Checagens de segurança para produção
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET não definido! Obrigatório para assinar os tokens.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET precisa ter pelo menos 32 caracteres.")
	}
	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		log.Fatal("[FATAL] ADMIN_PASSWORD (ou ADMIN_PASSWORD_HASH) não definido!")
	}
	if cfg.CollabPassword == "" && cfg.CollabPasswordHash == "" {
		log.Println("[WARN] COLLAB_PASSWORD não definido, login de colaborador ficará indisponível.")
	}
	if cfg.DatabaseDSN == "" {
		log.Println("[WARN] DATABASE_DSN não definido, usando sqlite local (apenas desenvolvimento).")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS usando valor padrão, defina o domínio real em produção.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
