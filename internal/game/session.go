package game

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"sync"
	"time"

	"wordlearena/internal/models"
)

// Outcome is a session's terminal state. The empty value means the
// session is still active.
type Outcome string

const (
	OutcomeWon  Outcome = "won"
	OutcomeLost Outcome = "lost"
	OutcomeQuit Outcome = "quit"
)

var (
	// ErrInvalidGuess means the guess has the wrong length or contains
	// non-alphabetic characters
	ErrInvalidGuess = errors.New("invalid guess")

	// ErrGameOver means the session has already reached a terminal state
	ErrGameOver = errors.New("game is over")

	// ErrHintExhausted means the hint limit has been reached
	ErrHintExhausted = errors.New("no hints remaining")

	// ErrHintUnavailable means every position is already confirmed correct
	ErrHintUnavailable = errors.New("no positions left to reveal")
)

// HintReveal is the result of a granted hint
type HintReveal struct {
	Position int
	Letter   string
}

// Session is one player's in-progress game. All mutation happens under
// the session's own lock; callers must not assume the platform serializes
// a single player's interactions.
type Session struct {
	mu sync.Mutex

	playerID string
	scopeID  string
	daily    bool

	secret      string
	maxAttempts int
	maxHints    int

	attempts   []models.GuessRecord
	hintsUsed  int
	hinted     map[int]bool
	confirmed  map[int]bool
	outcome    Outcome
	finalizing bool
	startedAt  time.Time
	finishedAt time.Time
}

// NewSession creates an active session around the given secret word
func NewSession(playerID, scopeID, secret string, daily bool, maxAttempts, maxHints int) *Session {
	return &Session{
		playerID:    playerID,
		scopeID:     scopeID,
		daily:       daily,
		secret:      strings.ToLower(secret),
		maxAttempts: maxAttempts,
		maxHints:    maxHints,
		hinted:      make(map[int]bool),
		confirmed:   make(map[int]bool),
		startedAt:   time.Now(),
	}
}

// SubmitGuess validates and scores a guess. It returns the per-letter
// feedback and the session outcome, which stays empty while the game
// continues.
func (s *Session) SubmitGuess(guess string) ([]models.FeedbackMark, Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.outcome != "" {
		return nil, s.outcome, ErrGameOver
	}

	guess = strings.ToLower(strings.TrimSpace(guess))
	if len(guess) != len(s.secret) || !isLowerAlpha(guess) {
		return nil, "", ErrInvalidGuess
	}

	feedback := Evaluate(s.secret, guess)
	s.attempts = append(s.attempts, models.GuessRecord{Word: guess, Feedback: feedback})

	for i, mark := range feedback {
		if mark == models.MarkCorrect {
			s.confirmed[i] = true
		}
	}

	if guess == s.secret {
		s.finish(OutcomeWon)
	} else if len(s.attempts) >= s.maxAttempts {
		s.finish(OutcomeLost)
	}

	return feedback, s.outcome, nil
}

// RequestHint reveals a uniformly random not-yet-confirmed position,
// bounded by the hint limit.
func (s *Session) RequestHint() (HintReveal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.outcome != "" {
		return HintReveal{}, ErrGameOver
	}
	if s.hintsUsed >= s.maxHints {
		return HintReveal{}, ErrHintExhausted
	}

	var available []int
	for i := 0; i < len(s.secret); i++ {
		if !s.confirmed[i] {
			available = append(available, i)
		}
	}
	if len(available) == 0 {
		return HintReveal{}, ErrHintUnavailable
	}

	pos, err := randomIndex(len(available))
	if err != nil {
		return HintReveal{}, err
	}

	chosen := available[pos]
	s.hinted[chosen] = true
	s.hintsUsed++

	return HintReveal{Position: chosen, Letter: string(s.secret[chosen])}, nil
}

// Quit transitions an active session to the quit terminal state.
// Duration is measured to the quit instant.
func (s *Session) Quit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.outcome != "" {
		return ErrGameOver
	}
	s.finish(OutcomeQuit)
	return nil
}

// finish sets the terminal state. Caller holds the lock.
func (s *Session) finish(outcome Outcome) {
	s.outcome = outcome
	s.finishedAt = time.Now()
}

// BeginFinalize claims the session for conversion into its history
// record. Only one caller can hold the claim: concurrent finalize
// attempts on the same terminal session lose here, so a finished game
// produces exactly one CompletedGame. Returns false if the session is
// still active or already claimed.
func (s *Session) BeginFinalize() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.outcome == "" || s.finalizing {
		return false
	}
	s.finalizing = true
	return true
}

// AbortFinalize releases the finalize claim after a failed persist so
// finalization can be retried
func (s *Session) AbortFinalize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finalizing = false
}

// PlayerID returns the owning player's identity
func (s *Session) PlayerID() string { return s.playerID }

// ScopeID returns the community the session was started in
func (s *Session) ScopeID() string { return s.scopeID }

// Daily reports whether the session plays today's challenge word
func (s *Session) Daily() bool { return s.daily }

// Secret returns the secret word
func (s *Session) Secret() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.secret
}

// Outcome returns the terminal state, or empty while active
func (s *Session) Outcome() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// Attempts returns a copy of the guesses made so far, in guess order
func (s *Session) Attempts() []models.GuessRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.GuessRecord, len(s.attempts))
	copy(out, s.attempts)
	return out
}

// AttemptsRemaining returns maxAttempts minus the guesses made
func (s *Session) AttemptsRemaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxAttempts - len(s.attempts)
}

// HintsUsed returns the number of hints granted
func (s *Session) HintsUsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hintsUsed
}

// HintedPositions returns the positions revealed by hints
func (s *Session) HintedPositions() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, 0, len(s.hinted))
	for pos := range s.hinted {
		out = append(out, pos)
	}
	return out
}

// Duration returns the wall-clock play time. For finished sessions the
// clock stops at the terminal transition.
func (s *Session) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.outcome != "" {
		return s.finishedAt.Sub(s.startedAt)
	}
	return time.Since(s.startedAt)
}

// randomIndex returns a uniform random int in [0, n)
func randomIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

func isLowerAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
