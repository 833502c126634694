package repositories

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dosada05/scrabble-director/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(ClientConfig{BaseURL: srv.URL, Token: "tok", Timeout: 5 * time.Second},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestNewClient_Validation(t *testing.T) {
	for _, base := range []string{"", "ftp://x", "://bad"} {
		if _, err := NewClient(ClientConfig{BaseURL: base}, nil); err == nil {
			t.Fatalf("NewClient(%q) returned nil error", base)
		}
	}
}

func TestClient_SetsHeaders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q, want Bearer tok", got)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Errorf("X-Request-ID is empty")
		}
		if r.URL.Path != "/api/tournament/3/" {
			t.Errorf("path = %q, want /api/tournament/3/", r.URL.Path)
		}
		json.NewEncoder(w).Encode(models.Tournament{ID: 3, Name: "Open"})
	})

	got, err := NewAPITournamentRepository(c).GetByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ID != 3 || got.Name != "Open" {
		t.Fatalf("GetByID = %+v, want tournament 3", got)
	}
}

func TestClient_DecodesGzip(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		json.NewEncoder(gz).Encode([]models.Participant{{ID: 1, Name: "Ann"}})
		gz.Close()
	})

	got, err := NewAPIParticipantRepository(c).List(context.Background(), 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Ann" {
		t.Fatalf("List = %+v, want Ann", got)
	}
}

func TestClient_APIError(t *testing.T) {
	tests := []struct {
		status int
		body   string
		want   error
		msg    string
	}{
		{http.StatusNotFound, `{"detail":"Not found."}`, ErrNotFound, "Not found."},
		{http.StatusForbidden, `{"detail":"nope"}`, ErrForbidden, "nope"},
		{http.StatusBadRequest, `{"message":"bad score"}`, ErrBadRequest, "bad score"},
		{http.StatusInternalServerError, `boom`, nil, "boom"},
	}
	for _, tc := range tests {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			io.WriteString(w, tc.body)
		})
		err := NewAPIParticipantRepository(c).Delete(context.Background(), 1, 2)
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("status %d: err = %v, want *APIError", tc.status, err)
		}
		if apiErr.Message != tc.msg {
			t.Fatalf("status %d: message = %q, want %q", tc.status, apiErr.Message, tc.msg)
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Fatalf("status %d: err = %v, want %v", tc.status, err, tc.want)
		}
	}
}

func TestTournamentRepository_GetBySlug(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tournament/":
			json.NewEncoder(w).Encode([]models.TournamentSummary{{ID: 1, Slug: "a"}, {ID: 2, Slug: "b"}})
		case "/api/tournament/2/":
			json.NewEncoder(w).Encode(models.Tournament{ID: 2, Slug: "b", IsEditable: true})
		default:
			http.NotFound(w, r)
		}
	})
	repo := NewAPITournamentRepository(c)

	got, err := repo.GetBySlug(context.Background(), "b")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if got.ID != 2 || !got.IsEditable {
		t.Fatalf("GetBySlug = %+v, want editable tournament 2", got)
	}
	if _, err := repo.GetBySlug(context.Background(), "zzz"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetBySlug(missing) err = %v, want ErrNotFound", err)
	}
}

func TestRoundRepository_ListSortsByRoundNo(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Round{{ID: 12, RoundNo: 2}, {ID: 11, RoundNo: 1}})
	})
	rounds, err := NewAPIRoundRepository(c).List(context.Background(), 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if rounds[0].RoundNo != 1 || rounds[1].RoundNo != 2 {
		t.Fatalf("rounds = %+v, want ordered by round_no", rounds)
	}
}

func TestResultRepository_Paths(t *testing.T) {
	var seen []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodPut {
			var in ScoreInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Result != 9 || in.Score1 != 400 {
				t.Errorf("score body = %+v, %v", in, err)
			}
		}
		if r.Method == http.MethodGet {
			io.WriteString(w, `[]`)
		}
	})
	repo := NewAPIResultRepository(c)
	ctx := context.Background()

	rows, err := repo.ListByRound(ctx, 1, 7)
	if err != nil || rows == nil || len(rows) != 0 {
		t.Fatalf("ListByRound = %v, %v, want empty non-nil slice", rows, err)
	}
	if err := repo.Score(ctx, 1, ScoreInput{Result: 9, Round: 7, Score1: 400, Score2: 350}); err != nil {
		t.Fatalf("Score: %v", err)
	}
	if err := repo.Delete(ctx, 1, 7, 9); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	want := []string{
		"GET /api/tournament/1/7/result/",
		"PUT /api/tournament/1/result/",
		"DELETE /api/tournament/1/result/7/9/",
	}
	if len(seen) != len(want) {
		t.Fatalf("requests = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("requests = %v, want %v", seen, want)
		}
	}
}

func TestPairingRepository_Run(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/tournament/4/round/2/pair/" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, `{"status":"error","message":"already paired"}`)
	})
	repo := NewAPIPairingRepository(c)

	status, err := repo.Run(context.Background(), 4, 2, OpPair)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !status.Failed() || status.Message != "already paired" {
		t.Fatalf("status = %+v, want error with message", status)
	}
	if _, err := repo.Run(context.Background(), 4, 2, PairingOp("shuffle")); err == nil {
		t.Fatalf("Run(unknown op) returned nil error")
	}
}

func TestParticipantRepository_GetWithMembers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tournament/4/participant/9/" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, `{"id":9,"name":"Hogwarts","members":[{"id":1,"name":"Dee","board":1,"wins":3.5,"spread":220}]}`)
	})
	repo := NewAPIParticipantRepository(c)

	p, err := repo.Get(context.Background(), 4, 9)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Name != "Hogwarts" || len(p.Members) != 1 || p.Members[0].Wins != 3.5 {
		t.Fatalf("participant = %+v, want Hogwarts with one member", p)
	}
	if _, err := repo.Get(context.Background(), 4, 10); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) err = %v, want ErrNotFound", err)
	}
}

func TestBoardRepository_List(t *testing.T) {
	var path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		io.WriteString(w, `[{"board":1,"team_id":1741,"name":"Hogwarts","games_won":4,"margin":1135}]`)
	})
	rows, err := NewAPIBoardRepository(c).List(context.Background(), 123)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if path != "/api/tournament/123/boards/" {
		t.Fatalf("path = %q, want /api/tournament/123/boards/", path)
	}
	if len(rows) != 1 || rows[0].TeamID != 1741 || rows[0].Margin != 1135 {
		t.Fatalf("rows = %+v", rows)
	}
}
