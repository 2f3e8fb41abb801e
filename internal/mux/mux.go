package mux

import (
	"net/http"

	"flip7-server/pkg/room"

	gmux "github.com/gorilla/mux"
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	pitBoss *room.PitBoss
}

// NewMux returns a new HTTP mux
// The pit boss must already be on shift.
func NewMux(version string, pitBoss *room.PitBoss) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		pitBoss: pitBoss,
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodGet).Path("/lobby").Handler(this.getLobby())
	r.Methods(http.MethodGet).Path("/ws").Handler(this.getWS())
	r.NotFoundHandler = notFound()
	r.MethodNotAllowedHandler = methodNotAllowed()

	return this
}

type lobbyPlayer struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	IsHost bool   `json:"isHost"`
}

func (m *Mux) getLobby() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clients := m.pitBoss.Dealer().Clients()
		players := make([]lobbyPlayer, len(clients))
		for i, c := range clients {
			players[i] = lobbyPlayer{
				ID:     c.ID,
				Name:   c.Name,
				IsHost: i == 0,
			}
		}

		writeJSON(w, http.StatusOK, players)
	}
}
