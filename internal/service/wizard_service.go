package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/enroll-flow-api/internal/dto"
	"github.com/noah-isme/enroll-flow-api/internal/models"
	"github.com/noah-isme/enroll-flow-api/pkg/config"
	appErrors "github.com/noah-isme/enroll-flow-api/pkg/errors"
	"github.com/noah-isme/enroll-flow-api/pkg/jobs"
)

type submitPayload struct {
	sessionID string
	epoch     uint64
}

// WizardService drives the two-step flow. Forward navigation is gated by
// contact validation; submission is gated by payment validation and finalized
// asynchronously on a worker queue after the processing delay.
type WizardService struct {
	sessions *SessionService
	contacts *ContactValidator
	payments *PaymentSelectionValidator
	metrics  *MetricsService
	logger   *zap.Logger

	stepDelay   time.Duration
	submitDelay time.Duration
	queue       *jobs.Queue
}

// NewWizardService wires the wizard on top of the session registry.
func NewWizardService(
	sessions *SessionService,
	contacts *ContactValidator,
	payments *PaymentSelectionValidator,
	metrics *MetricsService,
	cfg config.WizardConfig,
	logger *zap.Logger,
) *WizardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &WizardService{
		sessions:    sessions,
		contacts:    contacts,
		payments:    payments,
		metrics:     metrics,
		logger:      logger,
		stepDelay:   cfg.StepDelay,
		submitDelay: cfg.SubmitDelay,
	}
	w.queue = jobs.NewQueue("enrollment-submit", w.finalizeSubmission, jobs.QueueConfig{
		Workers: 4,
		Logger:  logger,
	})
	return w
}

// Start launches the submission workers.
func (w *WizardService) Start(ctx context.Context) {
	w.queue.Start(ctx)
}

// Stop drains the submission workers.
func (w *WizardService) Stop() {
	w.queue.Stop()
}

// Next advances from the contact step to the payment step. The transition
// is blocked, without advancing, when the contact form fails validation
// (the result carries the field errors), when no payment type is chosen, or
// when the terms are not accepted.
func (w *WizardService) Next(ctx context.Context, sessionID string) (*dto.StepResult, error) {
	sess, err := w.sessions.mutable(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.step >= models.StepPayment {
		result := &dto.StepResult{Step: sess.step, Loading: sess.loading}
		sess.mu.Unlock()
		return result, nil
	}
	form := sess.state.Contact
	paymentChosen := sess.state.PaymentType != nil
	termsAccepted := sess.state.TermsAccepted
	sess.mu.Unlock()

	validation := w.contacts.Validate(ctx, form)
	if !validation.Valid {
		return &dto.StepResult{Step: models.StepContact, Contact: &validation}, nil
	}
	if !paymentChosen {
		return &dto.StepResult{Step: models.StepContact, Message: "Please select a payment type"}, nil
	}
	if !termsAccepted {
		return &dto.StepResult{Step: models.StepContact, Message: "You must accept the terms to continue"}, nil
	}

	sess.mu.Lock()
	sess.loading = true
	epoch := sess.epoch
	sess.mu.Unlock()

	time.Sleep(w.stepDelay)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.epoch != epoch {
		return nil, appErrors.Clone(appErrors.ErrSessionExpired, "session was reset during the step transition")
	}
	sess.loading = false
	sess.step = models.StepPayment
	return &dto.StepResult{Step: sess.step, Contact: &validation}, nil
}

// Prev returns to the contact step. Never gated and never delayed.
func (w *WizardService) Prev(ctx context.Context, sessionID string) (*dto.StepResult, error) {
	sess, err := w.sessions.mutable(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.step > models.StepContact {
		sess.step--
	}
	return &dto.StepResult{Step: sess.step, Loading: sess.loading}, nil
}

// GoTo jumps to a step. Backward jumps are direct; a forward jump passes
// through the same contact gate as Next. Targets are clamped to the known
// step range.
func (w *WizardService) GoTo(ctx context.Context, sessionID string, req dto.GoToStepRequest) (*dto.StepResult, error) {
	target := req.Step
	if target < models.StepContact {
		target = models.StepContact
	}
	if target > models.StepPayment {
		target = models.StepPayment
	}

	sess, err := w.sessions.mutable(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	current := sess.step
	sess.mu.Unlock()

	if target > current {
		return w.Next(ctx, sessionID)
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.step = target
	return &dto.StepResult{Step: sess.step, Loading: sess.loading}, nil
}

// Submit starts the terminal submission flow. Invalid payment selections are
// reported without changing the session. A submission already pending or
// complete is a no-op; submitting twice never double-finalizes.
func (w *WizardService) Submit(ctx context.Context, sessionID string) (*dto.SubmitResult, error) {
	sess, err := w.sessions.mutable(ctx, sessionID)
	if err != nil {
		// Submitting an already-submitted enrollment is an idempotent no-op,
		// not a conflict.
		if errors.Is(err, appErrors.ErrSessionComplete) {
			return &dto.SubmitResult{Status: models.SubmissionComplete, Message: "enrollment already submitted"}, nil
		}
		return nil, err
	}

	sess.mu.Lock()
	if sess.submission == models.SubmissionPending {
		sess.mu.Unlock()
		return &dto.SubmitResult{Status: models.SubmissionPending, Message: "submission already in progress"}, nil
	}
	st := sess.state
	sess.mu.Unlock()

	validation, err := w.payments.Validate(ctx, st)
	if err != nil {
		return nil, err
	}
	if !validation.Valid {
		w.metrics.RecordSubmission("invalid")
		return &dto.SubmitResult{Status: models.SubmissionNone, Message: validation.Message, Payment: &validation}, nil
	}

	sess.mu.Lock()
	sess.submission = models.SubmissionPending
	sess.loading = true
	epoch := sess.epoch
	sess.mu.Unlock()

	job := jobs.Job{
		ID:      fmt.Sprintf("%s-%d", sessionID, epoch),
		Type:    "finalize",
		Payload: submitPayload{sessionID: sessionID, epoch: epoch},
	}
	if err := w.queue.Enqueue(job); err != nil {
		sess.mu.Lock()
		if sess.epoch == epoch {
			sess.submission = models.SubmissionNone
			sess.loading = false
		}
		sess.mu.Unlock()
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue the submission")
	}

	return &dto.SubmitResult{Status: models.SubmissionPending}, nil
}

// finalizeSubmission completes a pending submission after the processing
// delay. A session reset while the job was queued invalidates the epoch and
// the job finishes without touching the session.
func (w *WizardService) finalizeSubmission(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(submitPayload)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", job.Payload)
	}

	time.Sleep(w.submitDelay)

	sess, err := w.sessions.session(payload.sessionID)
	if err != nil {
		w.metrics.RecordSubmission("aborted")
		return nil
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.epoch != payload.epoch || sess.submission != models.SubmissionPending {
		w.metrics.RecordSubmission("aborted")
		return nil
	}
	sess.submission = models.SubmissionComplete
	sess.loading = false
	w.metrics.RecordSubmission("complete")
	w.logger.Info("enrollment submitted", zap.String("session_id", payload.sessionID))
	return nil
}
