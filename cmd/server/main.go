package main

import (
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"holdem-server/internal/config"
	"holdem-server/internal/jwt"
	"holdem-server/internal/mux"
	"holdem-server/pkg/account"
	"holdem-server/pkg/db"
	"holdem-server/pkg/holdem"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":5000", "the listen address")

func main() {
	flag.Parse()
	setupLogger()

	// fail fast
	jwt.LoadKeys()

	cfg := config.Instance()

	var accounts account.Store
	if cfg.PGDSN == "" {
		logrus.Warn("no database configured, bankrolls will not survive a restart")
		accounts = account.NewMemory(cfg.Bankroll)
	} else {
		db.Migrate()
		accounts = account.NewPostgres(cfg.Bankroll)
	}

	m := mux.NewMux(Version, accounts)
	m.PitBoss().SetDefaultOptions(roomDefaults(cfg))

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      loggingHandler(c.Handler(m)),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithField("addr", srv.Addr).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

func roomDefaults(cfg config.Config) holdem.Options {
	opts := holdem.DefaultOptions()
	if cfg.Room.SmallBlind > 0 {
		opts.SmallBlind = cfg.Room.SmallBlind
	}
	if cfg.Room.BigBlind > 0 {
		opts.BigBlind = cfg.Room.BigBlind
	}
	if cfg.Room.StartingStack > 0 {
		opts.StartingStack = cfg.Room.StartingStack
	}
	if cfg.Room.MaxSeats > 0 {
		opts.MaxSeats = cfg.Room.MaxSeats
	}
	if cfg.Room.StartDelay > 0 {
		opts.StartDelay = time.Second * time.Duration(cfg.Room.StartDelay)
	}
	if cfg.Room.NextHandDelay > 0 {
		opts.NextHandDelay = time.Second * time.Duration(cfg.Room.NextHandDelay)
	}

	return opts
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
