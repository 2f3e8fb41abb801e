package flipseven

import (
	"sort"

	"flip7-server/pkg/deck"
)

// Result is the log of a finished match
type Result struct {
	UUID      string         `json:"uuid"`
	Rounds    []*RoundResult `json:"rounds"`
	Standings []*Standing    `json:"standings"`
}

// RoundResult holds every player's score for one round
type RoundResult struct {
	Round  int           `json:"round"`
	Scores []*RoundScore `json:"scores"`
}

// RoundScore is one player's outcome for a round
type RoundScore struct {
	PlayerID   int64     `json:"playerId"`
	Name       string    `json:"name"`
	Hand       deck.Hand `json:"hand"`
	Points     int       `json:"points"`
	Total      int       `json:"total"`
	Eliminated bool      `json:"eliminated"`
	SpecialWin bool      `json:"specialWin"`
}

// Standing is a player's place in the match
type Standing struct {
	Rank         int    `json:"rank"`
	PlayerID     int64  `json:"playerId"`
	Name         string `json:"name"`
	Score        int    `json:"score"`
	Disconnected bool   `json:"disconnected"`
}

// Standings ranks every participant by cumulative score, highest first.
// Ties keep the join order and share the same rank.
func (g *Game) Standings() []*Standing {
	standings := make([]*Standing, len(g.participants))
	for i, p := range g.participants {
		standings[i] = &Standing{
			PlayerID:     p.PlayerID,
			Name:         p.Name,
			Score:        p.cumulativeScore,
			Disconnected: p.disconnected,
		}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Score > standings[j].Score
	})

	for i, s := range standings {
		if i > 0 && s.Score == standings[i-1].Score {
			s.Rank = standings[i-1].Rank
		} else {
			s.Rank = i + 1
		}
	}

	return standings
}
