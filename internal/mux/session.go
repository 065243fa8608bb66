package mux

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"ridethebus-server/internal/jwt"
	"ridethebus-server/pkg/deck"
	"ridethebus-server/pkg/model"
	"ridethebus-server/pkg/playable/ridethebus"
)

type postSessionResponse struct {
	Token string                `json:"token"`
	Name  string                `json:"name"`
	State *ridethebus.GameState `json:"state"`
}

func (m *Mux) postSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := m.pitBoss.NewSession(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		token, err := jwt.Sign(session.ID)
		if err != nil {
			_ = m.pitBoss.EndSession(session.ID)
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		logrus.WithFields(logrus.Fields{
			"session":    session.ID,
			"remoteAddr": remoteAddr(r),
		}).Info("created session")

		writeJSON(w, http.StatusCreated, postSessionResponse{
			Token: token,
			Name:  session.Name,
			State: session.Game.State(),
		})
	}
}

func (m *Mux) getSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, sessionFromRequest(r).Game.State())
	}
}

func (m *Mux) deleteSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := m.pitBoss.DiscardSession(r.Context(), sessionFromRequest(r).ID); err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

type postSessionWagerPayload struct {
	Amount *int `json:"amount"`
}

func (m *Mux) postSessionWager() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postSessionWagerPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		if payload.Amount == nil {
			writeGameError(w, model.UserError("amount is required"))
			return
		}

		game := sessionFromRequest(r).Game
		if _, err := game.SetWager(*payload.Amount); err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, game.State())
	}
}

type choicePayload struct {
	Choice string `json:"choice"`
}

// choiceHandler decodes {choice}, parses it and plays it
// a parse error is a 400, playing out of order is a 409
func choiceHandler[T any](parse func(string) (T, error), play func(*ridethebus.Game, context.Context, T) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload choicePayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		choice, err := parse(payload.Choice)
		if err != nil {
			writeGameError(w, model.UserError(err.Error()))
			return
		}

		game := sessionFromRequest(r).Game
		if err := play(game, r.Context(), choice); err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, game.State())
	}
}

func (m *Mux) postSessionColor() http.HandlerFunc {
	return choiceHandler(deck.ParseColor, (*ridethebus.Game).ChooseColor)
}

func (m *Mux) postSessionHighLow() http.HandlerFunc {
	return choiceHandler(ridethebus.ParseHighLow, (*ridethebus.Game).ChooseHighLow)
}

func (m *Mux) postSessionInOut() http.HandlerFunc {
	return choiceHandler(ridethebus.ParseInOut, (*ridethebus.Game).ChooseInOut)
}

func (m *Mux) postSessionSuit() http.HandlerFunc {
	return choiceHandler(deck.ParseSuit, (*ridethebus.Game).ChooseSuit)
}

type postSessionCashOutResponse struct {
	Banked int                   `json:"banked"`
	State  *ridethebus.GameState `json:"state"`
}

func (m *Mux) postSessionCashOut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		game := sessionFromRequest(r).Game
		banked := game.CashOutOrReset(r.Context())

		writeJSON(w, http.StatusOK, postSessionCashOutResponse{
			Banked: banked,
			State:  game.State(),
		})
	}
}

func (m *Mux) postSessionReset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		game := sessionFromRequest(r).Game
		game.ResetRound(r.Context())

		writeJSON(w, http.StatusOK, game.State())
	}
}
