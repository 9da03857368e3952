package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"card-room/internal/app/table"
	"card-room/internal/config"
	"card-room/internal/game"
	"card-room/internal/logging"
	"card-room/internal/store"
	"card-room/internal/ws"
)

func main() {
	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(cfg.Log)

	var rec game.Recorder
	var st *store.Store
	if cfg.Server.PostgresDSN != "" {
		st, err = store.New(cfg.Server.PostgresDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("store init failed")
		}
		ctx := context.Background()
		if err := st.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("db ping failed")
		}
		if err := st.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("ensure schema failed")
		}
		rec = st
		log.Info().Msg("hand history recording enabled")
	} else {
		log.Warn().Msg("POSTGRES_DSN empty, hand history recording disabled")
	}

	svc := table.NewService(table.Config{
		SmallBlind:    cfg.Server.SmallBlind,
		BigBlind:      cfg.Server.BigBlind,
		DefaultBuyIn:  cfg.Server.DefaultBuyIn,
		ActionTimeout: time.Duration(cfg.Server.ActionTimeoutMS) * time.Millisecond,
	}, rec, log.Logger)
	wsServer := ws.NewServer(svc)

	r := newRouter(svc, st, wsServer)

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Info().Str("addr", cfg.Server.HTTPAddr).Msg("http listening")
	log.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
}
