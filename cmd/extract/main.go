package main

import (
	"os"

	"github.com/drakos74/free-census/infra/config"
	"github.com/drakos74/free-census/internal/census"
	"github.com/drakos74/free-census/internal/storage"
	json_storage "github.com/drakos74/free-census/internal/storage/file/json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {
	cfg := census.DefaultConfig()
	config.MustLoad("census", &cfg)

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Err(err).Str("level", cfg.LogLevel).Msg("unknown log level")
	} else {
		zerolog.SetGlobalLevel(level)
	}

	report, err := census.NewPipeline(census.Extract, cfg, census.DefaultPaths()).
		WithStorage(json_storage.BlobShard(storage.ReportDir)).
		Run()
	if err != nil {
		log.Fatal().Err(err).Msg("could not convert census data")
	}
	report.Render(os.Stdout)
}
