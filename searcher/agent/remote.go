package agent

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"mcts/experiments/metrics"
	"mcts/game"

	"github.com/rs/zerolog/log"
)

var ErrIllegalMove = errors.New("illegal move")

// RemoteAgent asks an agent server for moves. It must observe the game from
// its start since requests carry the full move history.
type RemoteAgent[M game.Move, B game.Board[M, B]] struct {
	url     string
	client  *http.Client
	history []string
}

func NewRemoteAgent[M game.Move, B game.Board[M, B]](url string, client *http.Client) *RemoteAgent[M, B] {
	if client == nil {
		client = http.DefaultClient
	}
	return &RemoteAgent[M, B]{url: strings.TrimSuffix(url, "/"), client: client}
}

func (a *RemoteAgent[M, B]) Observe(_ game.Player, move M) {
	a.history = append(a.history, fmt.Sprint(move))
}

func (a *RemoteAgent[M, B]) FindMove(state *game.State[M, B]) (M, metrics.SearchMetric, error) {
	var none M

	body, err := json.Marshal(FindMoveRequest{Moves: a.history})
	if err != nil {
		return none, metrics.SearchMetric{}, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := a.client.Post(a.url+"/findmove", "application/json", bytes.NewReader(body))
	if err != nil {
		return none, metrics.SearchMetric{}, fmt.Errorf("failed to reach agent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return none, metrics.SearchMetric{}, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(out)))
	}

	var response FindMoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return none, metrics.SearchMetric{}, fmt.Errorf("failed to decode move: %w", err)
	}

	m, ok := findByText(state.PossibleMoves(), response.Move)
	if !ok {
		return none, response.Metric, fmt.Errorf("%w: agent returned %q", ErrIllegalMove, response.Move)
	}
	log.Debug().Str("move", response.Move).Int("iterations", response.Metric.Iterations).Msg("remote-move")
	return m, response.Metric, nil
}
