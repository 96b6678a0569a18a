package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"mcts/experiments/metrics"
	"mcts/game"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// FindMoveRequest lists the moves played so far, as text, from the start
// position.
type FindMoveRequest struct {
	Moves []string `json:"moves"`
}

type FindMoveResponse struct {
	Move   string               `json:"move"`
	Metric metrics.SearchMetric `json:"metric"`
}

// MaxRequestBytes bounds the size of a move history request.
const MaxRequestBytes = 1 << 20

type server[M game.Move, B game.Board[M, B]] struct {
	mu       sync.Mutex
	newState func() *game.State[M, B]
	agent    Agent[M, B]
}

// NewServer exposes agent over HTTP on POST /findmove. Requests are served one
// at a time since agents are not safe for concurrent use.
func NewServer[M game.Move, B game.Board[M, B]](newState func() *game.State[M, B], agent Agent[M, B]) http.Handler {
	s := &server[M, B]{newState: newState, agent: agent}

	// Create a local mux rather than using the global DefaultServeMux
	mux := http.NewServeMux()
	mux.HandleFunc("POST /findmove", s.handleFindMove)
	return mux
}

func (s *server[M, B]) handleFindMove(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBytes)

	var payload FindMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	state, err := replay(s.newState(), payload.Moves)
	if err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	move, metric, err := s.agent.FindMove(state)
	s.mu.Unlock()
	if err != nil {
		log.Error().Err(err).Int("history", len(payload.Moves)).Msg("find-move-failed")
		http.Error(w, "failed to find move: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	response := FindMoveResponse{Move: fmt.Sprint(move), Metric: metric}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "failed to encode move: "+err.Error(), http.StatusInternalServerError)
	}
}

// replay plays moves on state, rejecting any move that is not legal when it
// is played.
func replay[M game.Move, B game.Board[M, B]](state *game.State[M, B], moves []string) (*game.State[M, B], error) {
	for i, text := range moves {
		m, ok := findByText(state.PossibleMoves(), text)
		if !ok {
			return nil, fmt.Errorf("%w: move %d %q is not legal", ErrIllegalMove, i+1, text)
		}
		state.Play(m)
	}
	return state, nil
}

func findByText[M game.Move](moves []M, text string) (M, bool) {
	return lo.Find(moves, func(m M) bool {
		return fmt.Sprint(m) == text
	})
}
