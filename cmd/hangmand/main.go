package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hangman/internal/config"
	"hangman/internal/httpserver"
	"hangman/internal/storage"
	"hangman/internal/store"
	"hangman/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Load(cfg.WordsFile, cfg.PhrasesFile); err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	if cfg.WatchWordFiles {
		stop, err := words.Watch(cfg.WordsFile, cfg.PhrasesFile)
		if err != nil {
			log.Warn().Err(err).Msg("word list watcher disabled")
		} else {
			defer stop()
		}
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
	}
	defer db.Close()
	if err := storage.InitSchema(db); err != nil {
		log.Fatal().Err(err).Msg("failed to init schema")
	}

	mem := store.NewMemoryStore()
	srv := httpserver.New(cfg, mem, db)
	log.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("starting hangmand")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
