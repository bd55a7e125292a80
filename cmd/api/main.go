package main

import (
	"log"

	"invoice-backend/internal/config"
	"invoice-backend/internal/server"
)

func main() {
	cfg := config.Load()
	if err := cfg.EnsureDirs(); err != nil {
		log.Fatalf("prepare working directories: %v", err)
	}

	r := server.NewRouter(cfg)
	addr := server.Addr(cfg.Port)
	log.Printf("Invoice extractor listening on %s (uploads=%s exports=%s)", addr, cfg.UploadDir, cfg.ExportDir)

	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
