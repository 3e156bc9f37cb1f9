package main

import (
	"betpool/internal/config" // Custom import path (Config)
	"betpool/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DSN())
}
