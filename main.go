package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"hardcoded-chess/config"
	"hardcoded-chess/engine"
	"hardcoded-chess/uci"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Standard output belongs to the protocol
	logger, err := config.NewLogger(cfg.GetString(config.KeyLogLevel), os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log.Logger = logger
	log.Debug().Interface("settings", cfg.AllSettings()).Msg("loaded-config")

	analyser := engine.NewAnalyser(engine.NewLineWriter(os.Stdout), cfg.Settings())
	manager := uci.NewManager(analyser, os.Stderr)
	manager.SetDefaultMoveTime(cfg.DefaultMoveTime())

	if err := manager.Run(os.Stdin); err != nil {
		log.Err(err).Msg("reading-commands")
		os.Exit(1)
	}
	log.Debug().Msg("bye")
}
