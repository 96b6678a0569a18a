package agent

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mcts/game"
	"mcts/game/tictactoe"
	"mcts/searcher"

	"github.com/stretchr/testify/require"
)

func tictactoeServer(t *testing.T) *httptest.Server {
	mcts := searcher.NewMCTS[tictactoe.Move, *tictactoe.Board](searcher.WithIterations(200), searcher.WithSeed(5), searcher.WithMetrics())
	srv := httptest.NewServer(NewServer(tictactoe.NewGame, NewEvaluationAgent(mcts)))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url string, moves ...string) *http.Response {
	body, err := json.Marshal(FindMoveRequest{Moves: moves})
	require.NoError(t, err)
	resp, err := http.Post(url+"/findmove", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServer(t *testing.T) {
	srv := tictactoeServer(t)

	t.Run("answers with a legal move", func(t *testing.T) {
		resp := post(t, srv.URL, "a1", "b2")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var response FindMoveResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
		require.NotContains(t, []string{"a1", "b2"}, response.Move)
		require.Equal(t, 200, response.Metric.Iterations)
	})

	t.Run("rejects illegal history", func(t *testing.T) {
		resp := post(t, srv.URL, "a1", "a1")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects finished games", func(t *testing.T) {
		resp := post(t, srv.URL, "a1", "a2", "b1", "b2", "c1")
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("rejects oversized requests", func(t *testing.T) {
		moves := make([]string, MaxRequestBytes/4)
		for i := range moves {
			moves[i] = "a1"
		}
		body, err := json.Marshal(FindMoveRequest{Moves: moves})
		require.NoError(t, err)
		require.Greater(t, len(body), MaxRequestBytes)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/findmove", bytes.NewReader(body))
		srv.Config.Handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("rejects other methods", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/findmove")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}

func TestRemoteAgent(t *testing.T) {
	t.Run("follows the game", func(t *testing.T) {
		srv := tictactoeServer(t)
		remote := NewRemoteAgent[tictactoe.Move, *tictactoe.Board](srv.URL+"/", nil)
		state := tictactoe.NewGame()

		for !state.IsOver() {
			m, _, err := remote.FindMove(state)
			require.NoError(t, err)
			require.Contains(t, state.PossibleMoves(), m)

			remote.Observe(state.CurrentPlayer(), m)
			state.Play(m)
		}
		require.GreaterOrEqual(t, len(remote.history), 5)
	})

	t.Run("rejects illegal answers", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(FindMoveResponse{Move: "z9"})
		}))
		defer srv.Close()

		remote := NewRemoteAgent[tictactoe.Move, *tictactoe.Board](srv.URL, nil)
		_, _, err := remote.FindMove(tictactoe.NewGame())
		require.ErrorIs(t, err, ErrIllegalMove)
	})

	t.Run("reports server errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		remote := NewRemoteAgent[tictactoe.Move, *tictactoe.Board](srv.URL, nil)
		_, _, err := remote.FindMove(tictactoe.NewGame())
		require.ErrorContains(t, err, "overloaded")
	})

	t.Run("is an observer", func(t *testing.T) {
		remote := NewRemoteAgent[tictactoe.Move, *tictactoe.Board]("http://localhost", nil)
		var a Agent[tictactoe.Move, *tictactoe.Board] = remote
		o, ok := a.(Observer[tictactoe.Move])
		require.True(t, ok)

		o.Observe(game.White, tictactoe.NewMove(0, 0))
		require.Equal(t, []string{"a1"}, remote.history)
	})
}
