// Command pokerserver runs the Room Registry/Message Router as a
// single HTTP+WebSocket process, grounded on the corpus's
// cmd/holdem-server/main.go entry point but trimmed to the flat flag
// surface this server's configuration actually needs (no HCL file;
// see DESIGN.md).
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	charmlog "github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/ThomasDillard1/realtime-poker/internal/handengine"
	"github.com/ThomasDillard1/realtime-poker/internal/registry"
	"github.com/ThomasDillard1/realtime-poker/internal/room"
	"github.com/ThomasDillard1/realtime-poker/internal/router"
	"github.com/ThomasDillard1/realtime-poker/internal/transport"
)

var cli struct {
	Addr             string `default:":8080" help:"Address to bind the HTTP+WebSocket listener to."`
	StartChips       int    `default:"1000" help:"Starting chip stack for a newly seated player."`
	SmallBlind       int    `default:"10" help:"Small blind amount."`
	BigBlind         int    `default:"20" help:"Big blind amount."`
	MaxSeats         int    `default:"6" help:"Maximum seats per room."`
	TurnSeconds      int    `default:"30" help:"Turn timer, in seconds, before auto-action fires."`
	InterHandSeconds int    `default:"6" help:"Pacing delay, in seconds, between hands."`
	LogLevel         string `default:"info" help:"Log level: debug, info, warn, error."`
}

// charmLevel maps the shared --log-level flag onto charmbracelet/log's
// level type, so the Hand Engine's tracer and the zerolog layer agree
// on verbosity.
func charmLevel(level string) charmlog.Level {
	switch level {
	case "debug":
		return charmlog.DebugLevel
	case "warn":
		return charmlog.WarnLevel
	case "error":
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

func main() {
	kong.Parse(&cli)

	level, err := zerolog.ParseLevel(cli.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()

	engineLog := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		Prefix:          "handengine",
	})
	engineLog.SetLevel(charmLevel(cli.LogLevel))
	handengine.SetLogger(engineLog)

	cfg := room.Config{
		MaxSeats:        cli.MaxSeats,
		StartChips:      cli.StartChips,
		SmallBlind:      cli.SmallBlind,
		BigBlind:        cli.BigBlind,
		TurnTimeout:     cli.TurnSeconds,
		InterHandPacing: cli.InterHandSeconds,
	}

	var rt *router.Router
	reg := registry.New(cfg, quartz.NewReal(), logger, func(e room.Event) {
		rt.HandleEvent(e)
	})
	rt = router.New(reg, logger)

	upgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     func(*http.Request) bool { return true },
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error().Err(err).Msg("websocket upgrade failed")
			return
		}
		conn := transport.New(uuid.New().String(), ws, logger)
		rt.Attach(conn)
		go conn.Run()
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/rooms", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(reg.List())
	})

	srv := &http.Server{
		Addr:    cli.Addr,
		Handler: mux,
	}

	go func() {
		logger.Info().Str("addr", cli.Addr).Msg("pokerserver listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
