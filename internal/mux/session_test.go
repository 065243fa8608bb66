package mux

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"ridethebus-server/internal/jwt"
	"ridethebus-server/pkg/playable/ridethebus"
	"ridethebus-server/pkg/room"
)

func Test_postSession(t *testing.T) {
	a := assert.New(t)
	ts, pitBoss := newTestServer(t)

	var resp postSessionResponse
	assertPost(t, ts, "/session", nil, &resp, http.StatusCreated)
	a.NotEqual("", resp.Token)
	a.NotEqual("", resp.Name)
	a.Equal(ridethebus.RoundStateAwaitingColor, resp.State.State)
	a.Equal(100, resp.State.Bet)
	a.Equal(100, resp.State.Bankroll)
	a.Equal(0, resp.State.PotentialWin)
	a.Equal(1, pitBoss.Len())

	id, err := jwt.ValidSessionID(resp.Token)
	a.NoError(err)

	var state ridethebus.GameState
	resp2 := assertGetWithResp(t, ts, "/session", &state, http.StatusOK, resp.Token)
	a.Equal(id, resp2.Header.Get("RideTheBus-SessionID"))
	a.Equal(resp.State.RoundID, state.RoundID)
}

// playFirstStage bets 30 on red and banks the first stage if it was right
// Either way the bankroll moves away from 100
func playFirstStage(t *testing.T, ts *httptest.Server, token string) *ridethebus.GameState {
	t.Helper()

	var state ridethebus.GameState
	assertPost(t, ts, "/session/wager", map[string]int{"amount": 30}, &state, http.StatusOK, token)
	assertPost(t, ts, "/session/color", choicePayload{Choice: "red"}, &state, http.StatusOK, token)
	if state.State.IsResolved() {
		return &state
	}

	var cashOut postSessionCashOutResponse
	assertPost(t, ts, "/session/cash-out", nil, &cashOut, http.StatusOK, token)
	return cashOut.State
}

func Test_deleteSession(t *testing.T) {
	a := assert.New(t)
	ts, pitBoss := newTestServer(t)

	var resp postSessionResponse
	assertPost(t, ts, "/session", nil, &resp, http.StatusCreated)
	a.NotEqual(100, playFirstStage(t, ts, resp.Token).Bankroll)

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/session", nil)
	assertDo(t, req, nil, http.StatusNoContent, resp.Token)
	a.Equal(0, pitBoss.Len())

	// the bankroll was discarded with the session
	var state ridethebus.GameState
	assertGet(t, ts, "/session", &state, http.StatusOK, resp.Token)
	a.Equal(100, state.Bankroll)
	a.Equal(1, pitBoss.Len())
}

func Test_sessionSurvivesRestart(t *testing.T) {
	a := assert.New(t)
	factory := room.NewMemoryStoreFactory()

	pitBoss := newTestPitBoss(t, factory)
	ts := httptest.NewServer(NewMux("v1.2.3", pitBoss))

	var resp postSessionResponse
	assertPost(t, ts, "/session", nil, &resp, http.StatusCreated)
	balance := playFirstStage(t, ts, resp.Token).Bankroll
	a.NotEqual(100, balance)

	ts.Close()
	pitBoss.Close()

	restarted := newTestPitBoss(t, factory)
	ts = httptest.NewServer(NewMux("v1.2.3", restarted))
	defer ts.Close()

	var state ridethebus.GameState
	r := assertGetWithResp(t, ts, "/session", &state, http.StatusOK, resp.Token)
	a.Equal(balance, state.Bankroll)
	a.Equal(ridethebus.RoundStateAwaitingColor, state.State)
	a.Equal(1, restarted.Len())

	session, err := restarted.Session(r.Header.Get("RideTheBus-SessionID"))
	a.NoError(err)
	a.Equal(balance, session.Game.State().Bankroll)
}

func Test_postSessionWager(t *testing.T) {
	a := assert.New(t)
	ts, _ := newTestServer(t)

	var resp postSessionResponse
	assertPost(t, ts, "/session", nil, &resp, http.StatusCreated)
	token := resp.Token

	var state ridethebus.GameState
	assertPost(t, ts, "/session/wager", map[string]int{"amount": 40}, &state, http.StatusOK, token)
	a.Equal(40, state.Bet)

	// clamped to the bankroll
	assertPost(t, ts, "/session/wager", map[string]int{"amount": 5000}, &state, http.StatusOK, token)
	a.Equal(100, state.Bet)

	// clamped to the minimum
	assertPost(t, ts, "/session/wager", map[string]int{"amount": -5}, &state, http.StatusOK, token)
	a.Equal(1, state.Bet)

	var errObj errorResponse
	assertPost(t, ts, "/session/wager", map[string]string{}, &errObj, http.StatusBadRequest, token)
	a.Equal("amount is required", errObj.Message)

	assertPost(t, ts, "/session/wager", `{"amount":`, &errObj, http.StatusBadRequest, token)

	// every game deals the same first card, so a second session can always guess it
	assertPost(t, ts, "/session/color", choicePayload{Choice: "red"}, &state, http.StatusOK, token)
	a.Equal(1, len(state.Cards))
	color := string(state.Cards[0].Color())

	var second postSessionResponse
	assertPost(t, ts, "/session", nil, &second, http.StatusCreated)
	assertPost(t, ts, "/session/color", choicePayload{Choice: color}, &state, http.StatusOK, second.Token)
	a.Equal(ridethebus.RoundStateAwaitingHighLow, state.State)
	a.True(state.WagerLocked)

	// locked once the round starts
	assertPost(t, ts, "/session/wager", map[string]int{"amount": 50}, &errObj, http.StatusConflict, second.Token)
	a.Equal(ridethebus.ErrWagerLocked.Error(), errObj.Message)

	assertGet(t, ts, "/session", &state, http.StatusOK, second.Token)
	a.Equal(second.State.Bet, state.Bet)
}

func Test_choices(t *testing.T) {
	a := assert.New(t)
	ts, _ := newTestServer(t)

	var resp postSessionResponse
	assertPost(t, ts, "/session", nil, &resp, http.StatusCreated)
	token := resp.Token

	// out of order calls are a conflict and do nothing
	var errObj errorResponse
	for _, path := range []string{"/session/high-low", "/session/in-out", "/session/suit"} {
		assertPost(t, ts, path, choicePayload{Choice: "higher"}, &errObj, http.StatusConflict, token)
	}

	var state ridethebus.GameState
	assertGet(t, ts, "/session", &state, http.StatusOK, token)
	a.Equal(resp.State.RoundID, state.RoundID)
	a.Equal(ridethebus.RoundStateAwaitingColor, state.State)
	a.Equal(0, len(state.Cards))

	// invalid choices are a bad request
	assertPost(t, ts, "/session/color", choicePayload{Choice: "green"}, &errObj, http.StatusBadRequest, token)
	a.Equal("unknown color: green", errObj.Message)

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/session/color", strings.NewReader(`{"choice":"red"}`))
	req.Header.Set("Content-Type", "text/plain")
	assertDo(t, req, nil, http.StatusUnsupportedMediaType, token)

	// play until the round is resolved
	steps := []struct {
		path   string
		choice string
	}{
		{"/session/color", "black"},
		{"/session/high-low", "higher"},
		{"/session/in-out", "out"},
		{"/session/suit", "spades"},
	}

	for i, step := range steps {
		assertPost(t, ts, step.path, choicePayload{Choice: step.choice}, &state, http.StatusOK, token)
		a.Equal(i+1, len(state.Cards))
		a.True(state.WagerLocked || state.State.IsResolved())

		if state.State.IsResolved() {
			break
		}
	}

	a.True(state.State.IsResolved())
	if state.State == ridethebus.RoundStateLost {
		// the whole bankroll was bet
		a.Equal(0, state.Bankroll)
	} else {
		a.Equal(100+20000, state.Bankroll)
	}
}

func Test_postSessionCashOut(t *testing.T) {
	a := assert.New(t)
	ts, _ := newTestServer(t)

	var resp postSessionResponse
	assertPost(t, ts, "/session", nil, &resp, http.StatusCreated)
	token := resp.Token

	// nothing to bank yet, but a new round starts
	var cashOut postSessionCashOutResponse
	assertPost(t, ts, "/session/cash-out", nil, &cashOut, http.StatusOK, token)
	a.Equal(0, cashOut.Banked)
	a.NotEqual(resp.State.RoundID, cashOut.State.RoundID)
	a.Equal(100, cashOut.State.Bankroll)

	var state ridethebus.GameState
	assertPost(t, ts, "/session/color", choicePayload{Choice: "red"}, &state, http.StatusOK, token)
	assertPost(t, ts, "/session/cash-out", nil, &cashOut, http.StatusOK, token)
	a.Equal(ridethebus.RoundStateAwaitingColor, cashOut.State.State)
	a.False(cashOut.State.WagerLocked)

	if state.State == ridethebus.RoundStateLost {
		a.Equal(0, cashOut.Banked)
		// an empty bankroll starts over
		a.Equal(100, cashOut.State.Bankroll)
	} else {
		a.Equal(150, cashOut.Banked)
		a.Equal(250, cashOut.State.Bankroll)
	}
}

func Test_postSessionReset(t *testing.T) {
	a := assert.New(t)
	ts, _ := newTestServer(t)

	var resp postSessionResponse
	assertPost(t, ts, "/session", nil, &resp, http.StatusCreated)
	token := resp.Token

	var state ridethebus.GameState
	assertPost(t, ts, "/session/color", choicePayload{Choice: "black"}, &state, http.StatusOK, token)
	a.Equal(1, len(state.Cards))

	assertPost(t, ts, "/session/reset", nil, &state, http.StatusOK, token)
	a.Equal(ridethebus.RoundStateAwaitingColor, state.State)
	a.Equal(0, len(state.Cards))
	a.Equal(0, state.PotentialWin)
	a.Equal("", state.Hint)
	a.NotEqual(resp.State.RoundID, state.RoundID)
}
