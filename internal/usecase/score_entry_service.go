package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/pick-grader/internal/domain/pick"
	"github.com/riskibarqy/pick-grader/internal/domain/scoreentry"
	"github.com/riskibarqy/pick-grader/internal/domain/user"
	"github.com/riskibarqy/pick-grader/internal/platform/cache"
	"github.com/riskibarqy/pick-grader/internal/platform/logging"
)

const (
	submissionOutcomeGraded   = "graded"
	submissionOutcomeFailed   = "failed"
	submissionOutcomeRejected = "rejected"
	submissionOutcomeConflict = "conflict"

	picksGradedEventType = "picks.graded"
)

type ScoreEntryConfig struct {
	LockTTL      time.Duration
	PointWorkers int
	BatchWorkers int
}

type ScoreEntryService struct {
	pickRepo  pick.Repository
	userRepo  user.Repository
	locker    SubmissionLocker
	publisher EventPublisher
	metrics   GradingMetrics
	cfg       ScoreEntryConfig
	logger    *logging.Logger
	now       func() time.Time
}

func NewScoreEntryService(
	pickRepo pick.Repository,
	userRepo user.Repository,
	locker SubmissionLocker,
	publisher EventPublisher,
	metrics GradingMetrics,
	cfg ScoreEntryConfig,
	logger *logging.Logger,
) *ScoreEntryService {
	if locker == nil {
		locker = noopLocker{}
	}
	if publisher == nil {
		publisher = NewNoopEventPublisher()
	}
	if metrics == nil {
		metrics = NewNoopGradingMetrics()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 30 * time.Second
	}
	if cfg.PointWorkers <= 0 {
		cfg.PointWorkers = 4
	}
	if cfg.BatchWorkers <= 0 {
		cfg.BatchWorkers = 4
	}

	return &ScoreEntryService{
		pickRepo:  pickRepo,
		userRepo:  userRepo,
		locker:    locker,
		publisher: publisher,
		metrics:   metrics,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

type SubmitScoresInput struct {
	Date       time.Time
	Team       string
	TeamScore  string
	OtherScore string
}

type SubmitScoresResult struct {
	Team    string
	State   scoreentry.GameState
	Message string
	Results []scoreentry.Result
	// PointsAwarded is keyed by user id.
	PointsAwarded map[string]int
	Board         scoreentry.Board
}

type GameScoresInput struct {
	Team       string
	TeamScore  string
	OtherScore string
}

type SubmitScoresBatchInput struct {
	Date  time.Time
	Games []GameScoresInput
}

type SubmitScoresBatchItem struct {
	SubmitScoresResult
	Err error
}

type SubmitScoresBatchResult struct {
	Items       []SubmitScoresBatchItem
	GradedCount int
	FailedCount int
	Board       scoreentry.Board
}

type PicksGradedEvent struct {
	Type       string             `json:"type"`
	Date       string             `json:"date"`
	Team       string             `json:"team"`
	TeamScore  int                `json:"team_score"`
	OtherScore int                `json:"other_score"`
	Picks      []GradedPickRecord `json:"picks"`
	GradedAt   time.Time          `json:"graded_at"`
}

type GradedPickRecord struct {
	PickID  string `json:"pick_id"`
	UserID  string `json:"user_id"`
	BetType string `json:"bet_type"`
	Won     bool   `json:"won"`
}

// ListGames loads the pending picks of the window around date and groups them per team.
// On a read failure the empty board is returned together with the error.
func (s *ScoreEntryService) ListGames(ctx context.Context, date time.Time) (scoreentry.Board, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreEntryService.ListGames",
		attribute.String("score_entry.date", pick.FormatDate(date)),
	)
	defer span.End()

	picks, err := s.pickRepo.ListPending(ctx, scoreentry.Window(date))
	if err != nil {
		recordSpanError(span, err, "list pending picks failed")
		s.logger.ErrorContext(ctx, "list pending picks failed", "date", pick.FormatDate(date), "error", err)
		return scoreentry.Aggregate(date, nil), fmt.Errorf("%w: list pending picks: %w", ErrDependencyUnavailable, err)
	}

	return scoreentry.Aggregate(date, picks), nil
}

// SubmitScores grades one game. Submission failures after grading started return the result
// with state failed and a message, plus an error wrapping ErrSubmissionFailed.
func (s *ScoreEntryService) SubmitScores(ctx context.Context, input SubmitScoresInput) (SubmitScoresResult, error) {
	team := strings.TrimSpace(input.Team)
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreEntryService.SubmitScores",
		attribute.String("score_entry.date", pick.FormatDate(input.Date)),
		attribute.String("score_entry.team", team),
	)
	defer span.End()

	start := s.now()
	result := SubmitScoresResult{Team: team, State: scoreentry.StateDisplayed}

	if team == "" {
		s.metrics.ObserveSubmission(submissionOutcomeRejected, s.now().Sub(start))
		return result, fmt.Errorf("%w: team is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.TeamScore) == "" || strings.TrimSpace(input.OtherScore) == "" {
		s.metrics.ObserveSubmission(submissionOutcomeRejected, s.now().Sub(start))
		return result, fmt.Errorf("%w: both scores are required", ErrInvalidInput)
	}
	scores, err := scoreentry.ParseScores(input.TeamScore, input.OtherScore)
	if err != nil {
		s.metrics.ObserveSubmission(submissionOutcomeRejected, s.now().Sub(start))
		return result, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	release, acquired, err := s.locker.TryLock(ctx, submissionLockKey(input.Date, team), s.cfg.LockTTL)
	if err != nil {
		return result, fmt.Errorf("%w: acquire submission lock: %w", ErrDependencyUnavailable, err)
	}
	if !acquired {
		s.metrics.ObserveSubmission(submissionOutcomeConflict, s.now().Sub(start))
		return result, fmt.Errorf("%w: scores for team=%s are already being submitted", ErrConflict, team)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.logger.WarnContext(ctx, "release submission lock failed", "team", team, "error", err)
		}
	}()

	// Picks are read under the lock and past any cache, so a game graded by an earlier
	// holder is no longer pending here.
	board, err := s.ListGames(cache.WithoutCache(ctx), input.Date)
	if err != nil {
		return result, err
	}
	result.Board = board

	game, ok := board.Game(team)
	if !ok {
		s.metrics.ObserveSubmission(submissionOutcomeRejected, s.now().Sub(start))
		return result, fmt.Errorf("%w: no pending picks for team=%s date=%s", ErrNotFound, team, pick.FormatDate(input.Date))
	}
	game.EnterScores(input.TeamScore, input.OtherScore)
	result.State = game.State

	game.State = scoreentry.StateSubmitting
	results := scoreentry.Grade(*game, scores)
	result.Results = results

	awarded, err := s.awardPoints(ctx, results)
	result.PointsAwarded = awarded
	if err != nil {
		return s.failSubmission(ctx, span, game, result, start, err)
	}
	if err := s.pickRepo.UpsertPicks(ctx, scoreentry.Completed(results)); err != nil {
		return s.failSubmission(ctx, span, game, result, start, fmt.Errorf("upsert picks: %w", err))
	}

	game.State = scoreentry.StateGraded
	result.State = scoreentry.StateGraded
	result.Message = fmt.Sprintf("Scores updated successfully for %s!", team)
	board.Remove(team)

	refreshed, err := s.ListGames(ctx, input.Date)
	if err != nil {
		s.logger.WarnContext(ctx, "refresh games after grading failed", "team", team, "error", err)
		result.Board = board
	} else {
		result.Board = refreshed
	}

	for _, r := range results {
		s.metrics.ObserveGradedPick(r.Pick.BetType(), r.Won)
	}
	s.metrics.ObserveSubmission(submissionOutcomeGraded, s.now().Sub(start))
	s.publishGraded(ctx, input.Date, team, scores, results)

	s.logger.InfoContext(ctx, "scores submitted",
		"team", team,
		"date", pick.FormatDate(input.Date),
		"picks", len(results),
		"winning_users", len(awarded),
	)

	return result, nil
}

// SubmitScoresBatch grades several games concurrently. A failing game never affects the others.
func (s *ScoreEntryService) SubmitScoresBatch(ctx context.Context, input SubmitScoresBatchInput) (SubmitScoresBatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreEntryService.SubmitScoresBatch",
		attribute.String("score_entry.date", pick.FormatDate(input.Date)),
		attribute.Int("score_entry.games", len(input.Games)),
	)
	defer span.End()

	if len(input.Games) == 0 {
		return SubmitScoresBatchResult{}, fmt.Errorf("%w: at least one game is required", ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(input.Games))
	for _, game := range input.Games {
		team := strings.TrimSpace(game.Team)
		if team == "" {
			return SubmitScoresBatchResult{}, fmt.Errorf("%w: team is required", ErrInvalidInput)
		}
		if _, dup := seen[team]; dup {
			return SubmitScoresBatchResult{}, fmt.Errorf("%w: duplicate team=%s", ErrInvalidInput, team)
		}
		seen[team] = struct{}{}
	}

	workerCount := s.cfg.BatchWorkers
	if workerCount > len(input.Games) {
		workerCount = len(input.Games)
	}
	workers, err := ants.NewPool(workerCount)
	if err != nil {
		return SubmitScoresBatchResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workers.Release()

	items := make([]SubmitScoresBatchItem, len(input.Games))
	var wg sync.WaitGroup
	for i, game := range input.Games {
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()

			res, err := s.SubmitScores(ctx, SubmitScoresInput{
				Date:       input.Date,
				Team:       game.Team,
				TeamScore:  game.TeamScore,
				OtherScore: game.OtherScore,
			})
			res.Board = scoreentry.Board{}
			items[i] = SubmitScoresBatchItem{SubmitScoresResult: res, Err: err}
		}); err != nil {
			wg.Done()
			items[i] = SubmitScoresBatchItem{
				SubmitScoresResult: SubmitScoresResult{Team: strings.TrimSpace(game.Team), State: scoreentry.StateFailed},
				Err:                fmt.Errorf("submit game to worker pool: %w", err),
			}
		}
	}
	wg.Wait()

	out := SubmitScoresBatchResult{Items: items}
	for _, item := range items {
		if item.Err == nil && item.State == scoreentry.StateGraded {
			out.GradedCount++
			continue
		}
		out.FailedCount++
	}

	board, err := s.ListGames(ctx, input.Date)
	if err != nil {
		s.logger.WarnContext(ctx, "refresh games after batch failed", "error", err)
	}
	out.Board = board

	return out, nil
}

func (s *ScoreEntryService) GetUserPoints(ctx context.Context, userID string) (int, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	points, exists, err := s.userRepo.GetPoints(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("get user points: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("%w: user=%s", ErrNotFound, userID)
	}

	return points, nil
}

// awardPoints increments each winning user by their number of winning picks. Every increment
// is attempted even when another one fails.
func (s *ScoreEntryService) awardPoints(ctx context.Context, results []scoreentry.Result) (map[string]int, error) {
	winners := scoreentry.Winners(results)
	if len(winners) == 0 {
		return winners, nil
	}

	awarded := make(map[string]int, len(winners))
	var mu sync.Mutex

	p := pool.New().WithContext(ctx).WithMaxGoroutines(s.cfg.PointWorkers)
	for userID, delta := range winners {
		p.Go(func(ctx context.Context) error {
			if _, err := s.userRepo.IncrementPoints(ctx, userID, delta); err != nil {
				return fmt.Errorf("increment points user=%s: %w", userID, err)
			}
			mu.Lock()
			awarded[userID] = delta
			mu.Unlock()
			s.metrics.AddPointsAwarded(delta)
			return nil
		})
	}

	return awarded, p.Wait()
}

func (s *ScoreEntryService) failSubmission(
	ctx context.Context,
	span trace.Span,
	game *scoreentry.Game,
	result SubmitScoresResult,
	start time.Time,
	err error,
) (SubmitScoresResult, error) {
	game.State = scoreentry.StateFailed
	result.State = scoreentry.StateFailed
	result.Message = "Error updating scores: " + err.Error()

	recordSpanError(span, err, "submission failed")
	s.metrics.ObserveSubmission(submissionOutcomeFailed, s.now().Sub(start))
	s.logger.ErrorContext(ctx, "submit scores failed", "team", game.Team, "error", err)

	return result, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
}

func (s *ScoreEntryService) publishGraded(ctx context.Context, date time.Time, team string, scores scoreentry.Scores, results []scoreentry.Result) {
	event := PicksGradedEvent{
		Type:       picksGradedEventType,
		Date:       pick.FormatDate(date),
		Team:       team,
		TeamScore:  scores.Team,
		OtherScore: scores.Other,
		Picks:      make([]GradedPickRecord, 0, len(results)),
		GradedAt:   s.now().UTC(),
	}
	for _, r := range results {
		event.Picks = append(event.Picks, GradedPickRecord{
			PickID:  r.Pick.ID,
			UserID:  r.Pick.UserID,
			BetType: string(r.Pick.BetType()),
			Won:     r.Won,
		})
	}

	if err := s.publisher.Publish(ctx, submissionLockKey(date, team), event); err != nil {
		s.logger.WarnContext(ctx, "publish picks graded event failed", "team", team, "error", err)
	}
}

func submissionLockKey(date time.Time, team string) string {
	return "score-entry:" + pick.FormatDate(date) + ":" + strings.ToLower(strings.TrimSpace(team))
}
