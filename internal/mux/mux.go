package mux

import (
	"context"
	"net/http"
	"strings"

	gmux "github.com/gorilla/mux"
	"ridethebus-server/internal/jwt"
	"ridethebus-server/pkg/room"
)

type ctxKey int

const (
	ctxSessionKey ctxKey = iota
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	pitBoss *room.PitBoss

	// store for testing purposes
	authRouter *gmux.Router
}

// NewMux returns a new HTTP mux
func NewMux(version string, pitBoss *room.PitBoss) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		pitBoss: pitBoss,
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodPost).Path("/session").Handler(this.postSession())
	}

	// requires bearer authorization
	{
		r := this.authRouter

		r.Methods(http.MethodGet).Path("/session").Handler(this.getSession())
		r.Methods(http.MethodDelete).Path("/session").Handler(this.deleteSession())
		r.Methods(http.MethodGet).Path("/session/ws").Handler(this.getSessionWS())
		r.Methods(http.MethodPost).Path("/session/wager").Handler(this.postSessionWager())
		r.Methods(http.MethodPost).Path("/session/color").Handler(this.postSessionColor())
		r.Methods(http.MethodPost).Path("/session/high-low").Handler(this.postSessionHighLow())
		r.Methods(http.MethodPost).Path("/session/in-out").Handler(this.postSessionInOut())
		r.Methods(http.MethodPost).Path("/session/suit").Handler(this.postSessionSuit())
		r.Methods(http.MethodPost).Path("/session/cash-out").Handler(this.postSessionCashOut())
		r.Methods(http.MethodPost).Path("/session/reset").Handler(this.postSessionReset())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		id, err := jwt.ValidSessionID(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		// a session that was reaped or lost to a restart picks up its stored bankroll
		session, err := m.pitBoss.ResumeSession(r.Context(), id)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxSessionKey, session)
		w.Header().Set("RideTheBus-SessionID", session.ID)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

func sessionFromRequest(r *http.Request) *room.Session {
	return r.Context().Value(ctxSessionKey).(*room.Session)
}
