package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"flip7-server/internal/config"
	"flip7-server/internal/linesrv"
	"flip7-server/internal/mux"
	"flip7-server/pkg/room"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":5000", "the HTTP listen address")
var tcpAddr = flag.String("tcp-addr", "", "the raw TCP listen address (defaults to the configured address)")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()
	if *tcpAddr == "" {
		*tcpAddr = cfg.TCPAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pitBoss := room.NewPitBoss(room.NewDealer(logrus.StandardLogger(), room.Options{
		GameName:       "flip7",
		StartGameDelay: cfg.StartGameDelay,
		MaxClients:     cfg.Game.MaxPlayers,
	}))
	pitBoss.StartShift()
	defer pitBoss.EndShift()

	go func() {
		lines := linesrv.NewServer(logrus.StandardLogger(), pitBoss)
		if err := lines.ListenAndServe(ctx, *tcpAddr); err != nil {
			logrus.WithError(err).Fatal("could not serve TCP")
		}
	}()

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet},
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, pitBoss))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logrus.WithField("addr", srv.Addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logrus.WithError(err).Fatal("could not serve HTTP")
	}
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
