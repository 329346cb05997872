package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"wordlearena/internal/achievements"
	"wordlearena/internal/config"
	"wordlearena/internal/credentials"
	"wordlearena/internal/daily"
	"wordlearena/internal/game"
	"wordlearena/internal/models"
	"wordlearena/internal/repository"
	"wordlearena/internal/words"
)

// Engine is the game session and ranking facade consumed by the
// dispatch layer. It owns the session registry and coordinates the
// word source, repositories and daily challenge manager.
type Engine struct {
	cfg      *config.Config
	words    *words.Source
	registry *game.Registry

	history         *repository.HistoryRepository
	settings        *repository.SettingsRepository
	achievementRepo *repository.AchievementRepository
	daily           *daily.Manager

	now func() time.Time
}

// NewEngine creates the engine around its collaborators
func NewEngine(
	cfg *config.Config,
	source *words.Source,
	history *repository.HistoryRepository,
	settings *repository.SettingsRepository,
	achievementRepo *repository.AchievementRepository,
	dailyManager *daily.Manager,
) *Engine {
	return &Engine{
		cfg:             cfg,
		words:           source,
		registry:        game.NewRegistry(),
		history:         history,
		settings:        settings,
		achievementRepo: achievementRepo,
		daily:           dailyManager,
		now:             time.Now,
	}
}

// StartGame creates a session for the player. In daily mode the secret
// is pinned to today's challenge word and players who already submitted
// a daily result are rejected. Returns game.ErrAlreadyActive when the
// player has an unfinished session.
func (e *Engine) StartGame(playerID, scopeID string, dailyMode bool) (*game.Session, error) {
	var secret string
	var err error

	if dailyMode {
		played, err := e.daily.HasPlayed(playerID, e.now())
		if err != nil {
			return nil, fmt.Errorf("failed to check daily participation: %w", err)
		}
		if played {
			return nil, ErrDailyAlreadyPlayed
		}
		secret, err = e.daily.TodaysWord(e.now())
		if err != nil {
			return nil, err
		}
	} else {
		secret, err = e.words.Random()
		if err != nil {
			return nil, err
		}
	}

	return e.registry.Create(playerID, func() (*game.Session, error) {
		return game.NewSession(playerID, scopeID, secret, dailyMode, e.cfg.MaxAttempts, e.cfg.MaxHints), nil
	})
}

// SubmitGuess scores a guess against the player's active session
func (e *Engine) SubmitGuess(playerID, guess string) ([]models.FeedbackMark, game.Outcome, error) {
	session, ok := e.registry.Get(playerID)
	if !ok {
		return nil, "", ErrNoActiveGame
	}

	if e.cfg.StrictWordList {
		normalized := strings.ToLower(strings.TrimSpace(guess))
		if len(normalized) == e.words.Length() && !e.words.Contains(normalized) {
			return nil, "", ErrNotInWordList
		}
	}

	return session.SubmitGuess(guess)
}

// RequestHint reveals a letter position in the player's active session
func (e *Engine) RequestHint(playerID string) (game.HintReveal, error) {
	session, ok := e.registry.Get(playerID)
	if !ok {
		return game.HintReveal{}, ErrNoActiveGame
	}
	return session.RequestHint()
}

// QuitGame ends the player's active session as a quit and finalizes it.
// A quit counts as a loss in history and achievements; duration runs to
// the quit instant.
func (e *Engine) QuitGame(playerID string) (*models.CompletedGame, []achievements.Rule, error) {
	session, ok := e.registry.Get(playerID)
	if !ok {
		return nil, nil, ErrNoActiveGame
	}
	if err := session.Quit(); err != nil && !errors.Is(err, game.ErrGameOver) {
		return nil, nil, err
	}
	return e.FinalizeAndPersist(playerID)
}

// FinalizeAndPersist converts the player's terminal session into a
// CompletedGame, binds it to the real or pseudonymous identity per the
// player's current settings, and persists it. The conversion is a
// single-winner transition: concurrent finalize calls for the same
// session fail with ErrNoActiveGame instead of recording the game
// twice. On a storage failure the claim is released and the session
// stays in the registry so finalization can be retried; the outcome is
// never silently dropped.
//
// Daily participation is always recorded under the real player
// identity, even when the game row itself lands in the anonymous
// partition: the daily board is a public surface.
func (e *Engine) FinalizeAndPersist(playerID string) (*models.CompletedGame, []achievements.Rule, error) {
	session, ok := e.registry.Get(playerID)
	if !ok {
		return nil, nil, ErrNoActiveGame
	}

	outcome := session.Outcome()
	if outcome == "" {
		return nil, nil, ErrGameNotOver
	}
	if !session.BeginFinalize() {
		// Another caller is already converting this session
		return nil, nil, ErrNoActiveGame
	}

	settings, err := e.GetSettings(playerID)
	if err != nil {
		session.AbortFinalize()
		return nil, nil, fmt.Errorf("failed to load player settings: %w", err)
	}

	now := e.now()
	completed := &models.CompletedGame{
		ID:              newGameID(),
		Word:            session.Secret(),
		Guesses:         session.Attempts(),
		HintsUsed:       session.HintsUsed(),
		Won:             outcome == game.OutcomeWon,
		Quit:            outcome == game.OutcomeQuit,
		DurationSeconds: session.Duration().Seconds(),
		PlayedAt:        now,
	}

	if settings.AnonymousMode {
		completed.AnonToken = settings.AnonToken
		err = e.history.RecordAnonymousGame(completed)
	} else {
		completed.ScopeID = session.ScopeID()
		completed.PlayerID = playerID
		err = e.history.RecordGame(completed)
	}
	if err != nil {
		session.AbortFinalize()
		return nil, nil, fmt.Errorf("failed to persist game: %w", err)
	}

	e.registry.Remove(playerID)

	if session.Daily() && outcome != game.OutcomeQuit {
		if err := e.daily.RecordParticipation(playerID, completed.Attempts(), now); err != nil {
			return completed, nil, fmt.Errorf("game saved but daily participation failed: %w", err)
		}
	}

	newRules, err := e.evaluateAchievements(playerID, settings.AnonToken, completed, now)
	if err != nil {
		return completed, newRules, fmt.Errorf("game saved but achievement evaluation failed: %w", err)
	}

	return completed, newRules, nil
}

// evaluateAchievements runs the rule set against the finalized game and
// persists any new unlocks. The cumulative count spans both identity
// partitions so pseudonymous play still advances the veteran rule.
func (e *Engine) evaluateAchievements(playerID, anonToken string, completed *models.CompletedGame, now time.Time) ([]achievements.Rule, error) {
	publicCount, err := e.history.CountGamesForPlayer(playerID)
	if err != nil {
		return nil, err
	}
	anonCount, err := e.history.CountAnonymousGames(anonToken)
	if err != nil {
		return nil, err
	}

	unlocked, err := e.achievementRepo.UnlockedForPlayer(playerID)
	if err != nil {
		return nil, err
	}

	newRules := achievements.Evaluate(completed, publicCount+anonCount, unlocked)
	for _, rule := range newRules {
		if err := e.achievementRepo.Unlock(playerID, rule.ID, now); err != nil {
			return nil, err
		}
	}
	return newRules, nil
}

// GetPlayerHistory returns the target player's public games, newest
// first. Other players are refused when the target keeps their history
// private.
func (e *Engine) GetPlayerHistory(requesterID, playerID, scopeID string) ([]models.CompletedGame, error) {
	if requesterID != playerID {
		settings, err := e.GetSettings(playerID)
		if err != nil {
			return nil, err
		}
		if !settings.HistoryPublic {
			return nil, ErrPrivate
		}
	}
	return e.history.GamesForPlayer(playerID, scopeID)
}

// GetAnonymousHistory returns the games recorded under the player's own
// pseudonym. When an unlock secret is set it must be supplied and match.
func (e *Engine) GetAnonymousHistory(playerID, secret string) ([]models.CompletedGame, error) {
	settings, err := e.GetSettings(playerID)
	if err != nil {
		return nil, err
	}

	if settings.HasUnlockSecret() {
		if secret == "" {
			return nil, ErrUnlockRequired
		}
		if !credentials.VerifyUnlockSecret(settings.AnonSecretHash, secret) {
			return nil, ErrWrongSecret
		}
	}

	return e.history.AnonymousGames(settings.AnonToken)
}

// GetDailyRank returns the player's position on today's daily challenge
// leaderboard. The second return is false if the player has not
// participated today.
func (e *Engine) GetDailyRank(playerID string) (int, bool, error) {
	return e.daily.Rank(playerID, e.now())
}

// GetDailyLeaderboard returns today's participants in rank order
func (e *Engine) GetDailyLeaderboard() ([]models.DailyEntry, error) {
	return e.daily.Leaderboard(e.now(), e.cfg.DailyLeaderboardSize)
}

// GetAchievements returns the player's unlocks in unlock order
func (e *Engine) GetAchievements(playerID string) ([]models.Achievement, error) {
	return e.achievementRepo.ListForPlayer(playerID)
}

// GetSettings returns the player's settings, creating the default row
// (with a freshly generated pseudonym token) on first access. Concurrent
// first accesses converge on a single token: the insert ignores
// conflicts and the row is re-read.
func (e *Engine) GetSettings(playerID string) (*models.PlayerSettings, error) {
	settings, err := e.settings.Get(playerID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	token, err := credentials.GeneratePseudonym()
	if err != nil {
		return nil, fmt.Errorf("failed to generate pseudonym: %w", err)
	}

	defaults := &models.PlayerSettings{
		PlayerID:      playerID,
		StatsPublic:   true,
		HistoryPublic: true,
		AnonymousMode: false,
		AnonToken:     token,
	}
	if err := e.settings.CreateDefault(defaults); err != nil {
		return nil, err
	}

	settings, err = e.settings.Get(playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings changes the player's privacy flags. The pseudonym token
// and unlock secret hash are preserved unchanged.
func (e *Engine) UpdateSettings(playerID string, statsPublic, historyPublic, anonymousMode bool) (*models.PlayerSettings, error) {
	settings, err := e.GetSettings(playerID)
	if err != nil {
		return nil, err
	}

	settings.StatsPublic = statsPublic
	settings.HistoryPublic = historyPublic
	settings.AnonymousMode = anonymousMode

	if err := e.settings.Save(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// SetUnlockSecret hashes and stores the pseudonymous-history unlock
// secret. Only the hash is persisted.
func (e *Engine) SetUnlockSecret(playerID, secret string) error {
	settings, err := e.GetSettings(playerID)
	if err != nil {
		return err
	}

	hash, err := credentials.HashUnlockSecret(secret)
	if err != nil {
		return fmt.Errorf("failed to hash unlock secret: %w", err)
	}

	settings.AnonSecretHash = hash
	return e.settings.Save(settings)
}

// ActiveSessions returns the number of live sessions in the registry
func (e *Engine) ActiveSessions() int {
	return e.registry.Len()
}

// newGameID returns a short random game identifier, matching the
// familiar eight-character uppercase format.
func newGameID() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
