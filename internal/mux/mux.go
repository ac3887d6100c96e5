package mux

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	gmux "github.com/gorilla/mux"

	"holdem-server/internal/jwt"
	"holdem-server/pkg/account"
	"holdem-server/pkg/room"
)

type ctxKey int

const ctxPlayerIDKey ctxKey = iota

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version  string
	pitBoss  *room.PitBoss
	accounts account.Store
	config   config

	lastCreateMu sync.Mutex
	lastCreate   map[string]time.Time

	// store for testing purposes
	authRouter *gmux.Router
}

type config struct {
	// playerCreateDelay is the minimum duration between two player create events from a single remote address
	playerCreateDelay time.Duration
}

// NewMux returns a new HTTP mux
func NewMux(version string, accounts account.Store) *Mux {
	this := &Mux{
		Router:   gmux.NewRouter(),
		version:  version,
		pitBoss:  room.NewPitBoss(accounts),
		accounts: accounts,
		config: config{
			playerCreateDelay: time.Minute,
		},
		lastCreate: make(map[string]time.Time),
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodGet).Path("/rooms").Handler(this.getRooms())
		r.Methods(http.MethodPost).Path("/player").Handler(this.postPlayer())
	}

	// requires bearer authorization
	{
		r := this.authRouter
		r.Methods(http.MethodGet).Path("/player/balance").Handler(this.getPlayerBalance())
		r.Methods(http.MethodGet).Path("/rooms/{code:[0-9]{6}}/hands").Handler(this.getRoomHands())
		r.Methods(http.MethodGet).Path("/ws").Handler(this.getWS())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		id, err := jwt.ValidPlayerID(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxPlayerIDKey, id)
		w.Header().Set("HoldemServer-PlayerID", strconv.FormatInt(id, 10))
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// PitBoss returns the room dispatcher behind this mux
func (m *Mux) PitBoss() *room.PitBoss {
	return m.pitBoss
}

func playerIDFromContext(ctx context.Context) int64 {
	return ctx.Value(ctxPlayerIDKey).(int64)
}
