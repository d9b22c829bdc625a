package main

import (
	"log/slog"

	"usersvc/store"
	"usersvc/token"
)

// app wires the session layer together: credential store, token codec,
// refresh token manager, denylist and metrics. Handlers hang off it so
// every dependency is injected rather than read from globals.
type app struct {
	cfg     *Config
	log     *slog.Logger
	store   store.Store
	codec   *token.Codec
	refresh *RefreshManager
	deny    *Denylist
	metrics *metrics
}

func newApp(cfg *Config, lgr *slog.Logger, st store.Store, codec *token.Codec) *app {
	return &app{
		cfg:     cfg,
		log:     lgr,
		store:   st,
		codec:   codec,
		refresh: NewRefreshManager(st, cfg.JWTRefreshExpiration),
		deny:    NewDenylist(),
		metrics: newMetrics(),
	}
}
