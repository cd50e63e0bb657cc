// Package poll holds the poll document and the pure mutation and query
// functions over it. Every mutation takes a Document by value and returns a
// new one; committing the result (and persisting it) is the caller's job.
package poll

import (
	"slices"
	"time"
)

// Vote statuses. A vote starts pending and only moves via an explicit admin
// action; any status may be set from any other.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Meta holds the tournament-level settings, editable by the admin at any time.
type Meta struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	WaveNumber string `json:"waveNumber"`
	VotePrice  int    `json:"votePrice"`
	AdminCode  string `json:"adminCode"`
	CoverNote  string `json:"coverNote"`
}

// Player is a candidate in the poll. Photo, when set, is a self-contained
// data: URL so the document stays portable.
type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Team  string `json:"team,omitempty"`
	Photo string `json:"photo,omitempty"`
}

// Vote is a voter's claim of a Wave payment for a player. PlayerID may dangle
// after the player is deleted; readers must tolerate that.
type Vote struct {
	ID       string `json:"id"`
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Txid     string `json:"txid"`
	Amount   int    `json:"amount"`
	At       string `json:"at"`
	Status   string `json:"status"`
}

// Document is the whole poll state: the unit of persistence, export and
// import, always read and written as one atomic value.
type Document struct {
	Meta    Meta     `json:"meta"`
	Players []Player `json:"players"`
	Votes   []Vote   `json:"votes"`
}

// Seed returns the default document installed when the storage slot is empty.
func Seed() Document {
	return Document{
		Meta: Meta{
			Title:      "Tournoi La Légende – 3e Édition",
			Subtitle:   "Vote du Meilleur Joueur",
			WaveNumber: "+225 07 09 46 74 72",
			VotePrice:  200,
			AdminCode:  "LEG3",
			CoverNote:  "Payez par Wave puis entrez l'ID de la transaction pour valider votre vote.",
		},
		Players: []Player{},
		Votes:   []Vote{},
	}
}

// Clone returns a deep copy. Players and Votes contain only value fields, so
// cloning the slices is enough.
func (d Document) Clone() Document {
	d.Players = slices.Clone(d.Players)
	d.Votes = slices.Clone(d.Votes)
	return d
}

// timeFormat is ISO-8601 with millisecond precision, matching the format the
// document schema uses for vote timestamps.
const timeFormat = "2006-01-02T15:04:05.000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}
