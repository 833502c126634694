package store

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Dosada05/scrabble-director/models"
)

// DefaultOrder is used when a tournament has no explicit sort key.
const DefaultOrder = "pos"

const orderNameField = "name"

var numericFields = map[string]func(models.Participant) float64{
	"id":         func(p models.Participant) float64 { return float64(p.ID) },
	"seed":       func(p models.Participant) float64 { return float64(p.Seed) },
	"rating":     func(p models.Participant) float64 { return float64(p.Rating) },
	"pos":        func(p models.Participant) float64 { return float64(p.Pos) },
	"played":     func(p models.Participant) float64 { return float64(p.Played) },
	"round_wins": func(p models.Participant) float64 { return p.RoundWins },
	"game_wins":  func(p models.Participant) float64 { return p.GameWins },
	"spread":     func(p models.Participant) float64 { return float64(p.Spread) },
	"offed":      func(p models.Participant) float64 { return float64(p.Offed) },
}

// ParseOrder splits a sort key into its field and direction. An empty key
// means DefaultOrder ascending.
func ParseOrder(order string) (field string, desc bool) {
	if order == "" {
		return DefaultOrder, false
	}
	if strings.HasPrefix(order, "-") {
		return order[1:], true
	}
	return order, false
}

// IsSortable reports whether field (without direction) is a known sort key.
func IsSortable(field string) bool {
	if field == orderNameField {
		return true
	}
	_, ok := numericFields[field]
	return ok
}

// SortParticipants returns participants ordered by t.Order. When
// participants is nil the tournament roster is sorted. The input slice is
// never modified.
func SortParticipants(t *models.Tournament, participants []models.Participant) []models.Participant {
	order := ""
	if t != nil {
		order = t.Order
		if participants == nil {
			participants = t.Participants
		}
	}
	if participants == nil {
		return nil
	}

	field, desc := ParseOrder(order)
	out := slices.Clone(participants)

	var compare func(a, b models.Participant) int
	if field == orderNameField {
		// Collator keeps an internal buffer, one per call.
		c := collate.New(language.English)
		compare = func(a, b models.Participant) int {
			return c.CompareString(a.Name, b.Name)
		}
	} else if value, ok := numericFields[field]; ok {
		compare = func(a, b models.Participant) int {
			return cmp.Compare(value(a), value(b))
		}
	} else {
		return out
	}

	if desc {
		asc := compare
		compare = func(a, b models.Participant) int { return asc(b, a) }
	}
	slices.SortStableFunc(out, compare)
	return out
}
