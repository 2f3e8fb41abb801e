package mux

import "net/http"

type healthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	LobbySize int    `json:"lobbySize"`
}

func (m *Mux) getHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			Status:    "OK",
			Version:   m.version,
			LobbySize: m.pitBoss.Dealer().LobbySize(),
		})
	}
}
