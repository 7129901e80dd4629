// Command animsim runs the widget-animation engine headless against a
// simulated note list and serves the frames over websockets so the
// motion can be watched from a browser.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/notekit/notekit/internal/anim"
	"github.com/notekit/notekit/internal/app"
	"github.com/notekit/notekit/internal/config"
	diag "github.com/notekit/notekit/internal/diagnostics"
	"github.com/notekit/notekit/internal/layout"
	"github.com/notekit/notekit/internal/surface"
	"github.com/notekit/notekit/internal/ws"
)

func main() {
	// ---- Flags (config.yaml can override most) ----
	var (
		addr       = flag.String("addr", ":8080", "HTTP listen address")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		items      = flag.Int("items", 6, "simulated note cards")
		itemHeight = flag.Int("item-height", 64, "card height in pixels")
		spacing    = flag.Int("spacing", 4, "pixels between cards")
		fps        = flag.Int("fps", 60, "target frames per second per animation")
		durationMS = flag.Int("duration-ms", 250, "animation duration")
		tickMS     = flag.Int("tick-ms", 8, "scheduler tick interval")
		cycleMS    = flag.Int("cycle-ms", 1500, "how often the list mutates")
		logLevel   = flag.String("log-level", "info", "zerolog level")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	if lvl, err := zerolog.ParseLevel(*logLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	// ---- Load config.yaml (optional) ----
	var cfg *config.Config
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
	} else {
		cfg = c
	}

	// ---- Effective params (config overrides flags where set) ----
	eAddr := *addr
	eItems, eHeight, eSpacing := *items, *itemHeight, *spacing
	eFPS, eDuration, eTick, eCycle := *fps, *durationMS, *tickMS, *cycleMS
	if cfg != nil {
		if cfg.Addr != "" {
			eAddr = cfg.Addr
		}
		if cfg.Sim.Items > 0 {
			eItems = cfg.Sim.Items
		}
		if cfg.Sim.ItemHeight > 0 {
			eHeight = cfg.Sim.ItemHeight
		}
		if cfg.Sim.Spacing > 0 {
			eSpacing = cfg.Sim.Spacing
		}
		if cfg.Anim.FPS > 0 {
			eFPS = cfg.Anim.FPS
		}
		if cfg.Anim.DurationMS > 0 {
			eDuration = cfg.Anim.DurationMS
		}
		if cfg.Anim.TickMS > 0 {
			eTick = cfg.Anim.TickMS
		}
		if cfg.Sim.CycleMS > 0 {
			eCycle = cfg.Sim.CycleMS
		}
		if cfg.LogLevel != "" {
			if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
				zerolog.SetGlobalLevel(lvl)
			}
		}
	}

	// ---- Surface + preview wrapper ----
	sim := surface.NewSim()
	state := ws.NewState(sim, eItems, eTick)

	// ---- Engine on its loop ----
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop := anim.NewLoop()
	loop.Post(func() {
		sched := anim.NewScheduler(loop, state, time.Duration(eTick)*time.Millisecond)
		sched.AddDrainCallback(func() {
			log.Info().Msg("all animations drained")
			state.PushDiag(diag.Diagnostic{
				Severity: diag.Info, Code: "ANIM.DRAIN", Summary: "animation queue drained",
			})
		})
		conductor := app.NewConductor(loop, sched, sim,
			layout.Column{Spacing: eSpacing}, eItems, eHeight, eFPS, eDuration)
		conductor.Diag = state.PushDiag
		go conductor.Run(ctx, time.Duration(eCycle)*time.Millisecond)
	})
	go loop.Run(ctx)

	// ---- HTTP routes ----
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", state.HandleFramesWS)
	mux.HandleFunc("/diag", state.HandleDiagWS)
	mux.HandleFunc("/health", state.HandleHealth)

	srv := &http.Server{
		Addr:         eAddr,
		Handler:      withCORS(mux),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", eAddr).Int("items", eItems).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server crashed")
		}
	}()

	// ---- Graceful shutdown ----
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	s := <-ch
	log.Info().Str("signal", s.String()).Msg("shutting down")

	cancel()
	_ = srv.Close()
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h.ServeHTTP(w, r)
	})
}
