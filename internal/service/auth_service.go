package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eyestyle/internal/repository"
	"eyestyle/internal/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const defaultSessionTTL = 2 * time.Hour

// Domain errors for auth flows.
var (
	// ErrMissingCredentials means the submission was empty or whitespace;
	// storage is never queried in that case.
	ErrMissingCredentials = errors.New("username and password are required")
	// ErrInvalidCredentials deliberately covers both unknown-user and
	// wrong-password so account existence can't be probed.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrWeakCredentials    = errors.New("username must be at least 3 and password at least 6 characters")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// AuthService handles registration, login and session verification.
type AuthService struct {
	users      repository.Users
	sessions   session.Store
	signingKey []byte
	sessionTTL time.Duration
	now        func() time.Time
}

func NewAuthService(users repository.Users, sessions session.Store, cfg AuthConfig) *AuthService {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &AuthService{
		users:      users,
		sessions:   sessions,
		signingKey: []byte(cfg.SigningKey),
		sessionTTL: ttl,
		now:        time.Now,
	}
}

var _ Authorization = (*AuthService)(nil)

// Register validates and creates a new account.
func (s *AuthService) Register(ctx context.Context, username, password string) (int, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(password) < 6 {
		return 0, ErrWeakCredentials
	}
	existing, err := s.users.GetByUsername(username)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrUsernameTaken
	}
	hash, err := hashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("invalid password: %w", err)
	}
	return s.users.Create(username, hash)
}

// Login verifies the credentials and, on success, creates a server-side
// session and returns its signed cookie token. Empty or whitespace-only
// input is rejected before storage is touched.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return "", ErrMissingCredentials
	}

	u, err := s.users.GetByUsername(username)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	sess := session.Session{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		Username:  u.Username,
		ExpiresAt: s.now().Add(s.sessionTTL),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return s.issueToken(sess.ID)
}

// Authenticate resolves a cookie token back to its server-side session.
// The token signature only proves the cookie wasn't tampered with; the
// session store stays the authority on whether the login is still valid.
func (s *AuthService) Authenticate(ctx context.Context, token string) (session.Session, error) {
	id, err := s.parseToken(token)
	if err != nil {
		return session.Session{}, ErrInvalidSession
	}
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return session.Session{}, ErrInvalidSession
		}
		return session.Session{}, err
	}
	return sess, nil
}

// Logout destroys the server-side session behind the token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	id, err := s.parseToken(token)
	if err != nil {
		return ErrInvalidSession
	}
	return s.sessions.Delete(ctx, id)
}

// sessionClaims carries the session id inside the signed cookie.
type sessionClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

func (s *AuthService) issueToken(sessionID string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		SessionID: sessionID,
	})
	return token.SignedString(s.signingKey)
}

func (s *AuthService) parseToken(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return "", ErrInvalidSession
	}
	return claims.SessionID, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
