package poll

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ValidationError reports malformed input to a mutation. Its message is
// written for the end user and is safe to surface directly.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// PlayerInput carries the fields for a new player. Team and Photo are
// optional.
type PlayerInput struct {
	Name  string `json:"name"`
	Team  string `json:"team"`
	Photo string `json:"photo"`
}

// PlayerPatch is a partial player update; nil fields are left untouched.
type PlayerPatch struct {
	Name  *string `json:"name"`
	Team  *string `json:"team"`
	Photo *string `json:"photo"`
}

// VoteInput carries the voter-supplied fields of a vote submission. All text
// fields are free text; txid is only ever verified by the admin in the Wave
// app.
type VoteInput struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Txid     string `json:"txid"`
	Amount   int    `json:"amount"`
}

// MetaPatch is a partial settings update; nil fields are left untouched.
type MetaPatch struct {
	Title      *string `json:"title"`
	Subtitle   *string `json:"subtitle"`
	WaveNumber *string `json:"waveNumber"`
	VotePrice  *int    `json:"votePrice"`
	AdminCode  *string `json:"adminCode"`
	CoverNote  *string `json:"coverNote"`
}

// AddPlayer appends a new player with a freshly generated id.
func AddPlayer(doc Document, in PlayerInput) (Document, Player, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Document{}, Player{}, validationf("player name is required")
	}

	p := Player{
		ID:    uuid.NewString(),
		Name:  name,
		Team:  strings.TrimSpace(in.Team),
		Photo: in.Photo,
	}
	doc.Players = append(slices.Clone(doc.Players), p)
	return doc, p, nil
}

// EditPlayer merges patch into the matching player. Unknown ids are a no-op.
func EditPlayer(doc Document, id string, patch PlayerPatch) (Document, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return Document{}, validationf("player name is required")
	}

	players := slices.Clone(doc.Players)
	for i, p := range players {
		if p.ID != id {
			continue
		}
		if patch.Name != nil {
			p.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Team != nil {
			p.Team = strings.TrimSpace(*patch.Team)
		}
		if patch.Photo != nil {
			p.Photo = *patch.Photo
		}
		players[i] = p
	}
	doc.Players = players
	return doc, nil
}

// DeletePlayer removes the player. Votes referencing the id are left in place
// and become orphaned; every reader tolerates dangling player ids.
func DeletePlayer(doc Document, id string) Document {
	doc.Players = slices.DeleteFunc(slices.Clone(doc.Players), func(p Player) bool {
		return p.ID == id
	})
	return doc
}

// SubmitVote appends a pending vote created at the given time.
func SubmitVote(doc Document, in VoteInput, at time.Time) (Document, Vote, error) {
	if !slices.ContainsFunc(doc.Players, func(p Player) bool { return p.ID == in.PlayerID }) {
		return Document{}, Vote{}, validationf("unknown player")
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Phone) == "" || strings.TrimSpace(in.Txid) == "" {
		return Document{}, Vote{}, validationf("name, phone and transaction id are required")
	}
	if in.Amount < doc.Meta.VotePrice {
		return Document{}, Vote{}, validationf("amount must be at least %d", doc.Meta.VotePrice)
	}

	v := Vote{
		ID:       uuid.NewString(),
		PlayerID: in.PlayerID,
		Name:     strings.TrimSpace(in.Name),
		Phone:    strings.TrimSpace(in.Phone),
		Txid:     strings.TrimSpace(in.Txid),
		Amount:   in.Amount,
		At:       formatTime(at),
		Status:   StatusPending,
	}
	doc.Votes = append(slices.Clone(doc.Votes), v)
	return doc, v, nil
}

// SetVoteStatus sets the vote's status unconditionally; any status may follow
// any other. Unknown vote ids are a no-op.
func SetVoteStatus(doc Document, voteID, status string) (Document, error) {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
	default:
		return Document{}, validationf("invalid status %q", status)
	}

	votes := slices.Clone(doc.Votes)
	for i, v := range votes {
		if v.ID == voteID {
			v.Status = status
			votes[i] = v
		}
	}
	doc.Votes = votes
	return doc, nil
}

// UpdateMeta merges patch into the settings.
func UpdateMeta(doc Document, patch MetaPatch) (Document, error) {
	if patch.VotePrice != nil && *patch.VotePrice < 0 {
		return Document{}, validationf("vote price must not be negative")
	}

	m := doc.Meta
	if patch.Title != nil {
		m.Title = *patch.Title
	}
	if patch.Subtitle != nil {
		m.Subtitle = *patch.Subtitle
	}
	if patch.WaveNumber != nil {
		m.WaveNumber = *patch.WaveNumber
	}
	if patch.VotePrice != nil {
		m.VotePrice = *patch.VotePrice
	}
	if patch.AdminCode != nil {
		m.AdminCode = *patch.AdminCode
	}
	if patch.CoverNote != nil {
		m.CoverNote = *patch.CoverNote
	}
	doc.Meta = m
	return doc, nil
}

// documentShape mirrors Document with pointer fields so a missing top-level
// key is distinguishable from an empty one.
type documentShape struct {
	Meta    *Meta     `json:"meta"`
	Players *[]Player `json:"players"`
	Votes   *[]Vote   `json:"votes"`
}

var errMalformed = &ValidationError{Msg: "malformed document"}

// ParseDocument parses and shape-checks an imported document. The candidate
// must carry all three top-level fields, and every player and vote must carry
// a unique id. Anything else fails with ValidationError and the caller keeps
// its current document; there is no partial merge.
func ParseDocument(data []byte) (Document, error) {
	var shape documentShape
	if err := json.Unmarshal(data, &shape); err != nil {
		return Document{}, validationf("not valid JSON")
	}
	if shape.Meta == nil || shape.Players == nil || shape.Votes == nil {
		return Document{}, errMalformed
	}

	seen := make(map[string]bool, len(*shape.Players)+len(*shape.Votes))
	for _, p := range *shape.Players {
		if p.ID == "" || seen[p.ID] {
			return Document{}, errMalformed
		}
		seen[p.ID] = true
	}
	seen = make(map[string]bool, len(*shape.Votes))
	for _, v := range *shape.Votes {
		if v.ID == "" || seen[v.ID] {
			return Document{}, errMalformed
		}
		seen[v.ID] = true
	}

	return Document{
		Meta:    *shape.Meta,
		Players: *shape.Players,
		Votes:   *shape.Votes,
	}, nil
}

// Authenticate is the admin gate: an exact comparison of the submitted code
// against the configured one. This is a convenience gate for a shared
// plaintext code, not an authentication boundary; an unset code never
// matches.
func Authenticate(submitted, configured string) bool {
	return configured != "" && submitted == configured
}
