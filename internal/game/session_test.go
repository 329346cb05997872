package game

import (
	"errors"
	"testing"

	"wordlearena/internal/models"
)

func newTestSession(secret string) *Session {
	return NewSession("player-1", "scope-1", secret, false, 6, 3)
}

func TestSubmitGuessValidation(t *testing.T) {
	tests := []struct {
		name    string
		guess   string
		wantErr error
	}{
		{name: "too short", guess: "cat", wantErr: ErrInvalidGuess},
		{name: "too long", guess: "cranes", wantErr: ErrInvalidGuess},
		{name: "non alphabetic", guess: "cr4ne", wantErr: ErrInvalidGuess},
		{name: "empty", guess: "", wantErr: ErrInvalidGuess},
		{name: "upper case accepted", guess: "CRANE"},
		{name: "surrounding whitespace trimmed", guess: "  crane  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession("crane")
			_, _, err := s.SubmitGuess(tt.guess)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("SubmitGuess(%q) error = %v, want %v", tt.guess, err, tt.wantErr)
			}
		})
	}
}

func TestSubmitGuessInvalidDoesNotConsumeAttempt(t *testing.T) {
	s := newTestSession("crane")

	if _, _, err := s.SubmitGuess("xyz"); !errors.Is(err, ErrInvalidGuess) {
		t.Fatalf("expected ErrInvalidGuess, got %v", err)
	}
	if remaining := s.AttemptsRemaining(); remaining != 6 {
		t.Errorf("AttemptsRemaining() = %d, want 6", remaining)
	}
}

func TestWinTransition(t *testing.T) {
	s := newTestSession("crane")

	_, outcome, err := s.SubmitGuess("slate")
	if err != nil {
		t.Fatalf("SubmitGuess() error = %v", err)
	}
	if outcome != "" {
		t.Errorf("outcome after wrong guess = %v, want active", outcome)
	}

	feedback, outcome, err := s.SubmitGuess("CRANE")
	if err != nil {
		t.Fatalf("SubmitGuess() error = %v", err)
	}
	if outcome != OutcomeWon {
		t.Errorf("outcome = %v, want %v", outcome, OutcomeWon)
	}
	for i, mark := range feedback {
		if mark != models.MarkCorrect {
			t.Errorf("position %d: got %v, want correct", i, mark)
		}
	}

	if _, _, err := s.SubmitGuess("slate"); !errors.Is(err, ErrGameOver) {
		t.Errorf("guess after win error = %v, want ErrGameOver", err)
	}
}

func TestLossAfterMaxAttempts(t *testing.T) {
	s := newTestSession("crane")

	var outcome Outcome
	var err error
	for i := 0; i < 6; i++ {
		_, outcome, err = s.SubmitGuess("slate")
		if err != nil {
			t.Fatalf("guess %d error = %v", i+1, err)
		}
	}

	if outcome != OutcomeLost {
		t.Errorf("outcome after 6 wrong guesses = %v, want %v", outcome, OutcomeLost)
	}
	if remaining := s.AttemptsRemaining(); remaining != 0 {
		t.Errorf("AttemptsRemaining() = %d, want 0", remaining)
	}
	if _, _, err := s.SubmitGuess("crane"); !errors.Is(err, ErrGameOver) {
		t.Errorf("guess after loss error = %v, want ErrGameOver", err)
	}
}

func TestWinOnLastAttempt(t *testing.T) {
	s := newTestSession("crane")

	for i := 0; i < 5; i++ {
		if _, _, err := s.SubmitGuess("slate"); err != nil {
			t.Fatalf("guess %d error = %v", i+1, err)
		}
	}

	_, outcome, err := s.SubmitGuess("crane")
	if err != nil {
		t.Fatalf("final guess error = %v", err)
	}
	if outcome != OutcomeWon {
		t.Errorf("outcome = %v, want %v", outcome, OutcomeWon)
	}
}

func TestHintLimit(t *testing.T) {
	s := newTestSession("crane")

	for i := 0; i < 3; i++ {
		reveal, err := s.RequestHint()
		if err != nil {
			t.Fatalf("hint %d error = %v", i+1, err)
		}
		if reveal.Position < 0 || reveal.Position >= 5 {
			t.Errorf("hint position %d out of range", reveal.Position)
		}
		if reveal.Letter != string("crane"[reveal.Position]) {
			t.Errorf("hint letter %q does not match secret position %d", reveal.Letter, reveal.Position)
		}
	}

	if _, err := s.RequestHint(); !errors.Is(err, ErrHintExhausted) {
		t.Errorf("fourth hint error = %v, want ErrHintExhausted", err)
	}
	if used := s.HintsUsed(); used != 3 {
		t.Errorf("HintsUsed() = %d, want 3", used)
	}
}

func TestHintSkipsConfirmedPositions(t *testing.T) {
	s := NewSession("player-1", "scope-1", "crane", false, 6, 10)

	// Confirms c, r, a and e; only position 3 (n) stays unconfirmed.
	if _, _, err := s.SubmitGuess("crate"); err != nil {
		t.Fatalf("SubmitGuess() error = %v", err)
	}

	for i := 0; i < 5; i++ {
		reveal, err := s.RequestHint()
		if err != nil {
			t.Fatalf("hint %d error = %v", i+1, err)
		}
		if reveal.Position != 3 || reveal.Letter != "n" {
			t.Errorf("hint = position %d letter %q, want position 3 letter \"n\"", reveal.Position, reveal.Letter)
		}
	}
}

func TestHintUnavailableWhenAllPositionsConfirmed(t *testing.T) {
	s := newTestSession("crane")

	// Two non-winning guesses that together confirm every position:
	// "crate" confirms c, r, a and e; "brand" confirms r, a and n.
	if _, _, err := s.SubmitGuess("crate"); err != nil {
		t.Fatalf("SubmitGuess() error = %v", err)
	}
	if _, _, err := s.SubmitGuess("brand"); err != nil {
		t.Fatalf("SubmitGuess() error = %v", err)
	}

	if outcome := s.Outcome(); outcome != "" {
		t.Fatalf("outcome = %v, want still active", outcome)
	}
	if _, err := s.RequestHint(); !errors.Is(err, ErrHintUnavailable) {
		t.Errorf("RequestHint() error = %v, want ErrHintUnavailable", err)
	}
}

func TestHintAfterGameOver(t *testing.T) {
	s := newTestSession("crane")
	if _, _, err := s.SubmitGuess("crane"); err != nil {
		t.Fatalf("SubmitGuess() error = %v", err)
	}
	if _, err := s.RequestHint(); !errors.Is(err, ErrGameOver) {
		t.Errorf("hint after win error = %v, want ErrGameOver", err)
	}
}

func TestQuit(t *testing.T) {
	s := newTestSession("crane")

	if err := s.Quit(); err != nil {
		t.Fatalf("Quit() error = %v", err)
	}
	if outcome := s.Outcome(); outcome != OutcomeQuit {
		t.Errorf("Outcome() = %v, want %v", outcome, OutcomeQuit)
	}
	if err := s.Quit(); !errors.Is(err, ErrGameOver) {
		t.Errorf("second Quit() error = %v, want ErrGameOver", err)
	}
	if _, _, err := s.SubmitGuess("crane"); !errors.Is(err, ErrGameOver) {
		t.Errorf("guess after quit error = %v, want ErrGameOver", err)
	}
}

func TestAttemptsAreCopied(t *testing.T) {
	s := newTestSession("crane")
	if _, _, err := s.SubmitGuess("slate"); err != nil {
		t.Fatalf("SubmitGuess() error = %v", err)
	}

	attempts := s.Attempts()
	if len(attempts) != 1 {
		t.Fatalf("Attempts() length = %d, want 1", len(attempts))
	}
	attempts[0].Word = "mutated"

	if again := s.Attempts(); again[0].Word != "slate" {
		t.Errorf("session attempts mutated through the returned slice")
	}
}

func TestBeginFinalizeSingleWinner(t *testing.T) {
	s := newTestSession("crane")

	if s.BeginFinalize() {
		t.Error("BeginFinalize() = true on an active session")
	}

	if err := s.Quit(); err != nil {
		t.Fatalf("Quit() error = %v", err)
	}

	if !s.BeginFinalize() {
		t.Fatal("BeginFinalize() = false on an unclaimed terminal session")
	}
	if s.BeginFinalize() {
		t.Error("BeginFinalize() = true while already claimed")
	}

	// A released claim can be retaken, so a failed persist stays retryable
	s.AbortFinalize()
	if !s.BeginFinalize() {
		t.Error("BeginFinalize() = false after AbortFinalize()")
	}
}

func TestDurationStopsAtTerminal(t *testing.T) {
	s := newTestSession("crane")
	if err := s.Quit(); err != nil {
		t.Fatalf("Quit() error = %v", err)
	}

	first := s.Duration()
	second := s.Duration()
	if first != second {
		t.Errorf("Duration() changed after terminal state: %v then %v", first, second)
	}
}
