package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/geecynthia3-glitch/nfc-webhook/internal/config"
	"github.com/geecynthia3-glitch/nfc-webhook/internal/serverapp"
)

func main() {
	configPath := flag.String("config", "nfcrelay.yml", "optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config: cfg,
		Logger: log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	addr := ":" + cfg.Port
	log.Printf("nfc relay listening on %s (mode=%s)", addr, cfg.TapMode)
	log.Fatal(http.ListenAndServe(addr, handler))
}
