package jwt

import (
	"errors"
	"fmt"
	"sync"
	"time"

	jwtgo "github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"ridethebus-server/internal/config"
	"ridethebus-server/pkg/token"
)

// Issuer issues the JWT
const Issuer = "bid.ridethebus"

// Audience is the intended JWT audience
const Audience = "ridethebus.bid"

// TTL is how long a session token is valid for
const TTL = time.Hour * 24

const secretLength = 48

// ErrNoSecret is returned when no signing secret is configured
var ErrNoSecret = errors.New("jwt secret is not configured")

var (
	secret     []byte
	secretLock sync.RWMutex
)

// LoadSecret will load the signing secret from the configuration
// A random secret is generated if none is configured, so tokens do not survive a restart
func LoadSecret() {
	s := config.Instance().JWT.Secret
	if s == "" {
		logrus.Warn("jwt.secret is not configured, using a random secret")

		generated, err := token.Generate(secretLength)
		if err != nil {
			logrus.WithError(err).Fatal("could not generate a jwt secret")
		}

		s = generated
	}

	SetSecret([]byte(s))
}

// SetSecret sets the signing secret
func SetSecret(s []byte) {
	secretLock.Lock()
	defer secretLock.Unlock()

	secret = s
}

func getSecret() ([]byte, error) {
	secretLock.RLock()
	defer secretLock.RUnlock()

	if len(secret) == 0 {
		return nil, ErrNoSecret
	}

	return secret, nil
}

// Sign will sign a JWT for the session ID
func Sign(sessionID string) (string, error) {
	key, err := getSecret()
	if err != nil {
		return "", err
	}

	now := time.Now()
	token := jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, jwtgo.StandardClaims{
		Audience:  Audience,
		ExpiresAt: now.Add(TTL).Unix(),
		Id:        uuid.New().String(),
		IssuedAt:  now.Unix(),
		Issuer:    Issuer,
		Subject:   sessionID,
	})

	return token.SignedString(key)
}

// ValidSessionID will validate a signed JWT and return the session ID
func ValidSessionID(signedString string) (string, error) {
	key, err := getSecret()
	if err != nil {
		return "", err
	}

	token, err := jwtgo.ParseWithClaims(signedString, &jwtgo.StandardClaims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodHMAC); !ok {
			return nil, errors.New("expected HS256 signing method")
		}

		return key, nil
	})

	if err != nil {
		return "", err
	}

	if token.Valid {
		if claims, ok := token.Claims.(*jwtgo.StandardClaims); ok {
			if !claims.VerifyAudience(Audience, true) {
				return "", errors.New("invalid audience")
			}

			if !claims.VerifyIssuer(Issuer, true) {
				return "", errors.New("invalid issuer")
			}

			if _, err := uuid.Parse(claims.Subject); err != nil {
				return "", errors.New("invalid subject")
			}

			return claims.Subject, nil
		}

		return "", fmt.Errorf("expected jwt.StandardClaims, got %T", token.Claims)
	}

	logrus.Warn("token claims were not valid. did not expect to reach this code")
	return "", errors.New("claims were not valid")
}
