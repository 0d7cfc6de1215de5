package gate

import (
	"crypto/subtle"
	"errors"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ayethu/autoparts-backend/pkg/auth"
)

// ErrWrongPassword is returned for any failed unlock attempt
var ErrWrongPassword = errors.New("wrong password")

// DefaultSessionTTL is how long an unlocked session stays valid
const DefaultSessionTTL = 12 * time.Hour

// Gate exchanges the shop password for a timed session token. The
// password comes from GATE_PASSWORD_HASH (bcrypt, preferred) or
// GATE_PASSWORD (plain, for development).
type Gate struct {
	passwordHash string
	password     string
	ttl          time.Duration
}

// New creates a gate from the environment
func New() *Gate {
	return &Gate{
		passwordHash: os.Getenv("GATE_PASSWORD_HASH"),
		password:     os.Getenv("GATE_PASSWORD"),
		ttl:          DefaultSessionTTL,
	}
}

// Unlock verifies the password and issues a session token
func (g *Gate) Unlock(password string) (string, error) {
	if !g.verify(password) {
		return "", ErrWrongPassword
	}
	return auth.GenerateSessionToken(g.ttl)
}

func (g *Gate) verify(password string) bool {
	if g.passwordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(g.passwordHash), []byte(password)) == nil
	}
	if g.password != "" {
		return subtle.ConstantTimeCompare([]byte(g.password), []byte(password)) == 1
	}
	// no password configured, gate stays locked
	return false
}

// Verify checks a previously issued session token
func (g *Gate) Verify(token string) error {
	_, err := auth.ValidateToken(token)
	return err
}
