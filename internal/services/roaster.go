package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-mocker/internal/metrics"
	"alfredoptarigan/resume-mocker/internal/models"
	"alfredoptarigan/resume-mocker/internal/repositories"
)

type RoastService interface {
	RequestRoast(ctx context.Context, file UploadedFile, intensity int) (*RoastOutcome, error)
}

// RoastOutcome is returned for every attempt, failed ones included, so the
// caller can always report the attempt id.
type RoastOutcome struct {
	AttemptID uuid.UUID
	Intensity int
	State     models.AttemptState
	Result    *models.RoastResult
}

type roastService struct {
	attemptRepo    repositories.AttemptRepository
	encoder        FileEncoder
	requestBuilder *RequestBuilder
	model          RoastModel
	modelName      string
	timeout        time.Duration
}

func NewRoastService(
	attemptRepo repositories.AttemptRepository,
	encoder FileEncoder,
	requestBuilder *RequestBuilder,
	model RoastModel,
	modelName string,
	timeout time.Duration,
) RoastService {
	return &roastService{
		attemptRepo:    attemptRepo,
		encoder:        encoder,
		requestBuilder: requestBuilder,
		model:          model,
		modelName:      modelName,
		timeout:        timeout,
	}
}

// attemptRun tracks one attempt through the state machine and mirrors each
// step into the ledger.
type attemptRun struct {
	repo    repositories.AttemptRepository
	id      uuid.UUID
	state   models.AttemptState
	started time.Time
}

func (a *attemptRun) advance(to models.AttemptState) {
	next, err := Transition(a.state, to)
	if err != nil {
		log.Printf("⚠️  Attempt %s: %v", a.id, err)
		return
	}
	a.state = next

	// Terminal states are written together with the outcome, and the return
	// to idle is not persisted.
	if next.IsTerminal() || next == models.StateIdle {
		return
	}
	if err := a.repo.UpdateState(a.id, next); err != nil {
		log.Printf("⚠️  Failed to record state %s for attempt %s: %v", next, a.id, err)
	}
}

func (r *roastService) RequestRoast(ctx context.Context, file UploadedFile, intensity int) (*RoastOutcome, error) {
	run := &attemptRun{
		repo:    r.attemptRepo,
		id:      uuid.New(),
		state:   models.StateIdle,
		started: time.Now(),
	}

	mimeType := NormalizeMimeType(file.MimeType)
	attempt := &models.RoastAttempt{
		ID:             run.id,
		State:          models.StateIdle,
		FileName:       file.Name,
		MimeType:       mimeType,
		FileSize:       int64(len(file.Data)),
		Intensity:      intensity,
		IntensityLabel: models.IntensityLabel(intensity),
		Provider:       r.model.Provider(),
		Model:          r.modelName,
		StartedAt:      run.started,
	}
	if err := r.attemptRepo.Create(attempt); err != nil {
		log.Printf("⚠️  Failed to record attempt %s: %v", run.id, err)
	}

	metrics.RoastStarted()
	defer metrics.RoastFinished()

	log.Printf("🔥 Roast attempt %s started (%s, %d bytes, intensity %d)", run.id, mimeType, len(file.Data), intensity)

	result, err := r.roast(ctx, run, file, intensity)
	r.finish(run, mimeType, result, err)

	outcome := &RoastOutcome{
		AttemptID: run.id,
		Intensity: intensity,
		State:     run.state,
		Result:    result,
	}
	run.advance(models.StateIdle)

	return outcome, err
}

func (r *roastService) roast(ctx context.Context, run *attemptRun, file UploadedFile, intensity int) (*models.RoastResult, error) {
	run.advance(models.StateEncoding)

	if err := ValidateIntensity(intensity); err != nil {
		return nil, err
	}

	encoded, err := r.encoder.Encode(file)
	if err != nil {
		return nil, err
	}

	payload, err := r.requestBuilder.Build(encoded, intensity)
	if err != nil {
		return nil, err
	}

	run.advance(models.StateRequesting)
	log.Printf("🤖 Requesting roast from %s (%s)...", r.model.Provider(), r.modelName)

	callCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	raw, err := r.model.GenerateRoast(callCtx, payload)
	if err != nil {
		return nil, err
	}

	run.advance(models.StateValidating)

	return ParseRoastResult(raw)
}

func (r *roastService) finish(run *attemptRun, mimeType string, result *models.RoastResult, err error) {
	finishedAt := time.Now()
	duration := finishedAt.Sub(run.started)

	update := &repositories.AttemptOutcome{
		FinishedAt: finishedAt,
		DurationMs: duration.Milliseconds(),
	}

	errorCode := "none"
	if err != nil {
		run.advance(models.StateFailed)
		code := string(KindOf(err))
		errorCode = code
		update.ErrorCode = &code
		log.Printf("❌ Roast attempt %s failed after %s: %v", run.id, duration.Round(time.Millisecond), err)
	} else {
		run.advance(models.StateSucceeded)
		score := result.MockScore
		label := result.MockLabel
		update.MockScore = &score
		update.MockLabel = &label
		update.SectionCount = len(result.Sections)
		log.Printf("✅ Roast attempt %s succeeded in %s: %d/100 %q", run.id, duration.Round(time.Millisecond), score, label)
	}
	update.Outcome = run.state

	if ledgerErr := r.attemptRepo.UpdateOutcome(run.id, update); ledgerErr != nil {
		log.Printf("⚠️  Failed to record outcome for attempt %s: %v", run.id, ledgerErr)
	}

	fileFormat := mimeType
	if !IsAllowedMimeType(fileFormat) {
		fileFormat = "other"
	}
	metrics.RoastAttemptsTotal(string(run.state), fileFormat, errorCode)
	metrics.RoastDuration(string(run.state), r.model.Provider(), duration)
}
