package mux

import (
	"errors"
	"net/http"
	"time"

	gmux "github.com/gorilla/mux"

	"holdem-server/internal/jwt"
	"holdem-server/internal/rng"
)

type postPlayerRequest struct {
	Name string `json:"name"`
}

type postPlayerResponse struct {
	PlayerID int64  `json:"playerId"`
	Name     string `json:"name"`
	Balance  int    `json:"balance"`
	JWT      string `json:"jwt"`
}

type playerBalanceResponse struct {
	PlayerID int64 `json:"playerId"`
	Balance  int   `json:"balance"`
}

// postPlayer registers a guest player and returns a signed token for them
func (m *Mux) postPlayer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req postPlayerRequest
		if !decodeRequest(w, r, &req) {
			return
		}

		if req.Name == "" {
			writeJSONError(w, http.StatusBadRequest, errors.New("name is required"))
			return
		}

		if !m.mayCreatePlayer(remoteAddr(r)) {
			writeJSONError(w, http.StatusBadRequest, errors.New("please wait before creating another player"))
			return
		}

		playerID := rng.Seed()

		// touching the account seeds the starting bankroll
		balance, err := m.accounts.Balance(playerID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		signedJWT, err := jwt.Sign(playerID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, postPlayerResponse{
			PlayerID: playerID,
			Name:     req.Name,
			Balance:  balance,
			JWT:      signedJWT,
		})
	}
}

// mayCreatePlayer enforces the per-address delay between player registrations
func (m *Mux) mayCreatePlayer(addr string) bool {
	m.lastCreateMu.Lock()
	defer m.lastCreateMu.Unlock()

	if at, ok := m.lastCreate[addr]; ok && time.Since(at) < m.config.playerCreateDelay {
		return false
	}

	m.lastCreate[addr] = time.Now()
	return true
}

func (m *Mux) getPlayerBalance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := playerIDFromContext(r.Context())

		balance, err := m.accounts.Balance(playerID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, playerBalanceResponse{
			PlayerID: playerID,
			Balance:  balance,
		})
	}
}

func (m *Mux) getRooms() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, m.pitBoss.ListRooms())
	}
}

func (m *Mux) getRoomHands() http.HandlerFunc {
	const maxHands = 25

	return func(w http.ResponseWriter, r *http.Request) {
		code := gmux.Vars(r)["code"]

		hands, err := m.accounts.RecentHands(code, maxHands)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, hands)
	}
}
