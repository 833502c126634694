package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/scrabble-director/metrics"
	"github.com/Dosada05/scrabble-director/models"
	"github.com/Dosada05/scrabble-director/store"
)

// StandingRow is one line of the published standings.
type StandingRow struct {
	Pos       int     `json:"pos"`
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Rating    int     `json:"rating"`
	Played    int     `json:"played"`
	RoundWins float64 `json:"round_wins"`
	GameWins  float64 `json:"game_wins"`
	Spread    int     `json:"spread"`
	Offed     bool    `json:"offed"`
}

// Standings is the document spectators read while the event runs.
type Standings struct {
	TournamentID int           `json:"tournament_id"`
	Slug         string        `json:"slug"`
	Name         string        `json:"name"`
	RoundsPaired int           `json:"rounds_paired"`
	NumRounds    int           `json:"num_rounds"`
	Rows         []StandingRow `json:"rows"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// BuildStandings orders the roster by position regardless of the order the
// director is viewing it in.
func BuildStandings(t *models.Tournament) Standings {
	s := Standings{
		TournamentID: t.ID,
		Slug:         t.Slug,
		Name:         t.Name,
		NumRounds:    t.NumRounds,
		Rows:         []StandingRow{},
	}
	for _, r := range t.Rounds {
		if r.Paired {
			s.RoundsPaired++
		}
	}
	byPos := t.Clone()
	byPos.Order = store.DefaultOrder
	for _, p := range store.SortParticipants(byPos, t.Participants) {
		s.Rows = append(s.Rows, StandingRow{
			Pos:       p.Pos,
			ID:        p.ID,
			Name:      p.Name,
			Rating:    p.Rating,
			Played:    p.Played,
			RoundWins: p.RoundWins,
			GameWins:  p.GameWins,
			Spread:    p.Spread,
			Offed:     p.IsOffed(),
		})
	}
	return s
}

func StandingsKey(slug string) string {
	return fmt.Sprintf("tournaments/%s/standings.json", slug)
}

// StandingsPublisher uploads the standings of every snapshot it is given,
// skipping snapshots whose standings did not change since the last upload.
type StandingsPublisher struct {
	uploader FileUploader
	logger   *slog.Logger
	now      func() time.Time

	lastKey  string
	lastBody []byte
}

func NewStandingsPublisher(uploader FileUploader, logger *slog.Logger) *StandingsPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &StandingsPublisher{uploader: uploader, logger: logger, now: time.Now}
}

// Publish uploads the standings of t. It reports whether an upload happened.
func (p *StandingsPublisher) Publish(ctx context.Context, t *models.Tournament) (bool, error) {
	if t == nil || t.Slug == "" {
		return false, nil
	}
	standings := BuildStandings(t)
	key := StandingsKey(t.Slug)

	// Сравниваем без метки времени, иначе каждый снимок выглядел бы новым.
	body, err := json.Marshal(standings)
	if err != nil {
		return false, fmt.Errorf("failed to encode standings of %s: %w", t.Slug, err)
	}
	if key == p.lastKey && bytes.Equal(body, p.lastBody) {
		metrics.StandingsUploads.WithLabelValues("skipped").Inc()
		return false, nil
	}

	standings.UpdatedAt = p.now().UTC()
	doc, err := json.MarshalIndent(standings, "", "  ")
	if err != nil {
		return false, fmt.Errorf("failed to encode standings of %s: %w", t.Slug, err)
	}

	result, err := p.uploader.Upload(ctx, key, "application/json", bytes.NewReader(doc))
	if err != nil {
		metrics.StandingsUploads.WithLabelValues("failed").Inc()
		return false, err
	}
	p.lastKey, p.lastBody = key, body
	metrics.StandingsUploads.WithLabelValues("uploaded").Inc()
	p.logger.Info("standings published",
		slog.String("key", result.Key),
		slog.String("location", result.Location),
		slog.Int("rows", len(standings.Rows)),
	)
	return true, nil
}

// Run publishes every snapshot from snapshots until the channel closes or
// ctx is done. Upload failures are logged; the next snapshot retries.
func (p *StandingsPublisher) Run(ctx context.Context, snapshots <-chan *models.Tournament) {
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-snapshots:
			if !ok {
				return
			}
			if _, err := p.Publish(ctx, t); err != nil {
				p.logger.Warn("standings upload failed", slog.Any("error", err))
			}
		}
	}
}
