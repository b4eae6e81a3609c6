package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/enroll-flow-api/internal/dto"
	"github.com/noah-isme/enroll-flow-api/internal/models"
	"github.com/noah-isme/enroll-flow-api/pkg/config"
	appErrors "github.com/noah-isme/enroll-flow-api/pkg/errors"
	"github.com/noah-isme/enroll-flow-api/pkg/money"
)

type sessionCatalog interface {
	PackageByID(ctx context.Context, id string) (*models.Package, error)
	PaymentMethods(ctx context.Context, category models.PaymentCategory) ([]models.PaymentMethod, error)
	InstallmentProviders(ctx context.Context) ([]models.InstallmentProvider, error)
	CountryByCode(ctx context.Context, code string) (*models.Country, error)
	ExchangeRate(ctx context.Context, currency string) (decimal.Decimal, error)
}

// session is one live enrollment. All fields behind mu; epoch increments on
// every reset so delayed work can detect it raced a reset and discard itself.
type session struct {
	id        string
	packageID string
	clock     *SessionClock

	mu         sync.Mutex
	state      models.EnrollmentState
	step       int
	loading    bool
	submission models.SubmissionStatus
	promoBusy  bool
	epoch      uint64
	createdAt  time.Time
}

func (s *session) resetLocked() {
	s.state = models.DefaultEnrollmentState()
	s.step = models.StepContact
	s.loading = false
	s.submission = models.SubmissionNone
	s.promoBusy = false
	s.epoch++
}

// SessionService owns the in-memory session registry. Enrollment state never
// touches a store; only each session's clock anchor is persisted.
type SessionService struct {
	catalog  sessionCatalog
	pricing  *PricingService
	contacts *ContactValidator
	anchors  anchorStore
	metrics  *MetricsService
	validate *validator.Validate
	logger   *zap.Logger

	sessionCfg config.SessionConfig
	promoCfg   config.PromoConfig

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewSessionService wires the session registry.
func NewSessionService(
	catalog sessionCatalog,
	pricing *PricingService,
	contacts *ContactValidator,
	anchors anchorStore,
	metrics *MetricsService,
	sessionCfg config.SessionConfig,
	promoCfg config.PromoConfig,
	logger *zap.Logger,
) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		catalog:    catalog,
		pricing:    pricing,
		contacts:   contacts,
		anchors:    anchors,
		metrics:    metrics,
		validate:   validator.New(),
		logger:     logger,
		sessionCfg: sessionCfg,
		promoCfg:   promoCfg,
		sessions:   make(map[string]*session),
	}
}

// StartReaper launches the background sweep that fires the expiry sequence
// for sessions whose countdown has run out. Returns a stop function.
func (s *SessionService) StartReaper(ctx context.Context) func() {
	interval := s.sessionCfg.ReapInterval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-ticker.C:
				s.mu.RLock()
				expired := make([]*session, 0)
				for _, sess := range s.sessions {
					if sess.clock.Expired() {
						expired = append(expired, sess)
					}
				}
				s.mu.RUnlock()
				for _, sess := range expired {
					go sess.clock.TriggerExpiry(ctx)
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

// Create opens a fresh session against a package. An empty package ID falls
// back to the configured default.
func (s *SessionService) Create(ctx context.Context, req dto.CreateSessionRequest, defaultPackageID string) (*dto.SessionResponse, error) {
	packageID := strings.TrimSpace(req.PackageID)
	if packageID == "" {
		packageID = defaultPackageID
	}
	if _, err := s.catalog.PackageByID(ctx, packageID); err != nil {
		return nil, err
	}

	sess := &session{
		id:         uuid.NewString(),
		packageID:  packageID,
		state:      models.DefaultEnrollmentState(),
		step:       models.StepContact,
		submission: models.SubmissionNone,
		createdAt:  time.Now(),
	}
	sess.clock = NewSessionClock(
		sess.id,
		s.sessionCfg,
		s.anchors,
		func(loading bool) {
			sess.mu.Lock()
			sess.loading = loading
			sess.mu.Unlock()
		},
		func() {
			sess.mu.Lock()
			sess.resetLocked()
			sess.mu.Unlock()
			s.metrics.SessionExpired()
			s.logger.Info("session expired and reset", zap.String("session_id", sess.id))
		},
		s.logger,
	)
	sess.clock.Start(ctx)

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.metrics.SessionCreated()
	s.logger.Info("session created", zap.String("session_id", sess.id), zap.String("package_id", packageID))

	return s.snapshot(sess), nil
}

// Get returns the observable snapshot of a session.
func (s *SessionService) Get(ctx context.Context, id string) (*dto.SessionResponse, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	return s.snapshot(sess), nil
}

// Reset restores the session to its initial state and restarts the clock.
func (s *SessionService) Reset(ctx context.Context, id string) (*dto.SessionResponse, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	sess.resetLocked()
	sess.mu.Unlock()
	sess.clock.Reset(ctx)
	return s.snapshot(sess), nil
}

// Delete tears a session down.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	if !ok {
		return appErrors.ErrSessionNotFound
	}
	sess.clock.Stop(ctx)
	s.metrics.SessionRemoved()
	return nil
}

// Clock reports the session countdown.
func (s *SessionService) Clock(ctx context.Context, id string) (*dto.ClockResponse, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	return &dto.ClockResponse{
		RemainingSeconds: int(sess.clock.Remaining() / time.Second),
		Display:          sess.clock.Display(),
		ExpiresAt:        sess.clock.ExpiresAt(),
	}, nil
}

// UpdateContact patches contact fields. Validation is not run here; typing
// into the form must never be blocked by incomplete fields.
func (s *SessionService) UpdateContact(ctx context.Context, id string, req dto.UpdateContactRequest) (*dto.SessionResponse, error) {
	sess, err := s.mutable(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	applyContactUpdate(&sess.state, req)
	sess.mu.Unlock()
	return s.snapshot(sess), nil
}

// ValidateContact runs the contact rules against the current form.
func (s *SessionService) ValidateContact(ctx context.Context, id string) (*dto.ContactValidationResult, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	form := sess.state.Contact
	sess.mu.Unlock()
	result := s.contacts.Validate(ctx, form)
	return &result, nil
}

// SetPaymentType switches the settlement mode, clearing whichever dependent
// selections belong to the abandoned branch.
func (s *SessionService) SetPaymentType(ctx context.Context, id string, req dto.SetPaymentTypeRequest) (*dto.SessionResponse, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	sess, err := s.mutable(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	applyPaymentType(&sess.state, req.PaymentType)
	sess.mu.Unlock()
	return s.snapshot(sess), nil
}

// SetInstallmentType records whether the chosen bank supports installments.
func (s *SessionService) SetInstallmentType(ctx context.Context, id string, req dto.SetInstallmentTypeRequest) (*dto.SessionResponse, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	sess, err := s.mutable(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	applyInstallmentType(&sess.state, req.InstallmentType)
	sess.mu.Unlock()
	return s.snapshot(sess), nil
}

// SetPaymentOption picks the card/fpx branch and auto-selects the first
// method of the branch when the current one does not belong to it.
func (s *SessionService) SetPaymentOption(ctx context.Context, id string, req dto.SetPaymentOptionRequest) (*dto.SessionResponse, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	sess, err := s.mutable(ctx, id)
	if err != nil {
		return nil, err
	}
	methods, err := s.catalog.PaymentMethods(ctx, req.PaymentOption)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.state.PaymentType != nil && *sess.state.PaymentType == models.PaymentTypeInstallment {
		return nil, appErrors.Clone(appErrors.ErrValidation, "payment option is not selectable for installment")
	}
	applyPaymentOption(&sess.state, req.PaymentOption)
	autoRepairPaymentMethod(&sess.state, methods)
	return s.snapshotLocked(sess), nil
}

// SetPaymentMethod selects a concrete method inside the active option.
func (s *SessionService) SetPaymentMethod(ctx context.Context, id string, req dto.SetPaymentMethodRequest) (*dto.SessionResponse, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	sess, err := s.mutable(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	option := sess.state.PaymentOption
	installment := sess.state.PaymentType != nil && *sess.state.PaymentType == models.PaymentTypeInstallment
	sess.mu.Unlock()
	if installment {
		return nil, appErrors.Clone(appErrors.ErrValidation, "payment method is not selectable for installment")
	}
	if option == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "select a payment option first")
	}
	methods, err := s.catalog.PaymentMethods(ctx, *option)
	if err != nil {
		return nil, err
	}
	found := false
	for _, m := range methods {
		if m.ID == req.PaymentMethodID {
			found = true
			break
		}
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown payment method for the selected option")
	}
	sess.mu.Lock()
	applyPaymentMethod(&sess.state, req.PaymentMethodID)
	sess.mu.Unlock()
	return s.snapshot(sess), nil
}

// SetInstallmentProvider selects a bank; the plan resets with it.
func (s *SessionService) SetInstallmentProvider(ctx context.Context, id string, req dto.SetInstallmentProviderRequest) (*dto.SessionResponse, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	sess, err := s.mutable(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.provider(ctx, req.ProviderID); err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.state.PaymentType == nil || *sess.state.PaymentType != models.PaymentTypeInstallment {
		return nil, appErrors.Clone(appErrors.ErrValidation, "installment provider requires the installment payment type")
	}
	applyInstallmentProvider(&sess.state, req.ProviderID)
	return s.snapshotLocked(sess), nil
}

// SetInstallmentPlan writes provider and tenure together after checking the
// tenure belongs to the provider's menu.
func (s *SessionService) SetInstallmentPlan(ctx context.Context, id string, req dto.SetInstallmentPlanRequest) (*dto.SessionResponse, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	sess, err := s.mutable(ctx, id)
	if err != nil {
		return nil, err
	}
	provider, err := s.provider(ctx, req.ProviderID)
	if err != nil {
		return nil, err
	}
	if !provider.HasPlan(req.Months) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "the selected tenure is not offered by this provider")
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.state.PaymentType == nil || *sess.state.PaymentType != models.PaymentTypeInstallment {
		return nil, appErrors.Clone(appErrors.ErrValidation, "installment plan requires the installment payment type")
	}
	applyInstallmentPlan(&sess.state, req.ProviderID, req.Months)
	return s.snapshotLocked(sess), nil
}

// SetTerms toggles terms acceptance.
func (s *SessionService) SetTerms(ctx context.Context, id string, req dto.SetTermsRequest) (*dto.SessionResponse, error) {
	sess, err := s.mutable(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	sess.state.TermsAccepted = req.Accepted
	sess.mu.Unlock()
	return s.snapshot(sess), nil
}

// ApplyPromocode runs the simulated promo lookup. Codes shorter than the
// minimum are rejected immediately without the lookup delay. Only one
// application may be in flight per session; a reset racing the delay wins
// and the stale completion is discarded.
func (s *SessionService) ApplyPromocode(ctx context.Context, id string, req dto.ApplyPromoRequest) (*dto.ApplyPromoResult, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	sess, err := s.mutable(ctx, id)
	if err != nil {
		return nil, err
	}
	code := strings.TrimSpace(req.Code)

	sess.mu.Lock()
	if len(code) < s.promoCfg.MinLength {
		sess.state.Promocode = code
		clearPromo(&sess.state)
		sess.mu.Unlock()
		s.metrics.RecordPromoApply(false)
		return &dto.ApplyPromoResult{Success: false, Message: appErrors.ErrPromoTooShort.Message, Discount: decimal.Zero}, nil
	}
	if sess.promoBusy {
		sess.mu.Unlock()
		return nil, appErrors.ErrApplyInFlight
	}
	sess.promoBusy = true
	sess.loading = true
	epoch := sess.epoch
	sess.mu.Unlock()

	time.Sleep(s.promoCfg.ApplyDelay)

	pkg, pkgErr := s.catalog.PackageByID(ctx, sess.packageID)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.epoch != epoch {
		// The session was reset while the lookup was in flight; its state
		// belongs to the new epoch now, including any newer application's
		// busy flag, and must stay untouched.
		return nil, appErrors.Clone(appErrors.ErrSessionExpired, "session was reset during promocode application")
	}
	sess.promoBusy = false
	sess.loading = false
	if pkgErr != nil {
		return nil, pkgErr
	}

	if strings.EqualFold(code, s.promoCfg.Code) {
		discount := pkg.PromotionPriceTaxed.Mul(money.Percent(decimal.NewFromInt(int64(s.promoCfg.DiscountPercent))))
		applyPromo(&sess.state, code, discount, s.promoCfg.Label)
		s.metrics.RecordPromoApply(true)
		return &dto.ApplyPromoResult{Success: true, Message: s.promoCfg.Label, Discount: discount, Label: s.promoCfg.Label}, nil
	}

	sess.state.Promocode = code
	clearPromo(&sess.state)
	s.metrics.RecordPromoApply(false)
	return &dto.ApplyPromoResult{Success: false, Message: appErrors.ErrPromoInvalid.Message, Discount: decimal.Zero}, nil
}

// Summary assembles the pricing summary for the session's current state.
func (s *SessionService) Summary(ctx context.Context, id string) (*dto.PricingSummary, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	st := sess.state
	packageID := sess.packageID
	sess.mu.Unlock()

	pkg, err := s.catalog.PackageByID(ctx, packageID)
	if err != nil {
		return nil, err
	}

	var foreign *models.Country
	rate := decimal.Zero
	if st.Contact.BillingCountry != "" {
		country, err := s.catalog.CountryByCode(ctx, st.Contact.BillingCountry)
		if err == nil && country.Currency != pkg.Currency {
			foreign = country
			if r, err := s.catalog.ExchangeRate(ctx, country.Currency); err == nil {
				rate = r
			}
		}
	}

	return s.pricing.Quote(pkg, st, foreign, rate)
}

func (s *SessionService) session(id string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, appErrors.ErrSessionNotFound
	}
	return sess, nil
}

// mutable resolves a session for a state mutation. An expired session fires
// its reset sequence and the mutation is refused: it was aimed at state that
// no longer exists. A submitted session is terminal; only Reset and Delete
// may touch it.
func (s *SessionService) mutable(ctx context.Context, id string) (*session, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	if sess.clock.Expired() {
		go sess.clock.TriggerExpiry(context.WithoutCancel(ctx))
		return nil, appErrors.ErrSessionExpired
	}
	sess.mu.Lock()
	complete := sess.submission == models.SubmissionComplete
	sess.mu.Unlock()
	if complete {
		return nil, appErrors.ErrSessionComplete
	}
	return sess, nil
}

func (s *SessionService) provider(ctx context.Context, providerID string) (*models.InstallmentProvider, error) {
	providers, err := s.catalog.InstallmentProviders(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range providers {
		if p.ID == providerID {
			provider := p
			return &provider, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrValidation, "unknown installment provider")
}

func (s *SessionService) snapshot(sess *session) *dto.SessionResponse {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.snapshotLocked(sess)
}

func (s *SessionService) snapshotLocked(sess *session) *dto.SessionResponse {
	return &dto.SessionResponse{
		ID:               sess.id,
		PackageID:        sess.packageID,
		Step:             sess.step,
		Loading:          sess.loading,
		Submission:       sess.submission,
		State:            sess.state,
		CreatedAt:        sess.createdAt,
		RemainingSeconds: int(sess.clock.Remaining() / time.Second),
		ClockDisplay:     sess.clock.Display(),
	}
}

func (s *SessionService) validateRequest(req interface{}) error {
	if err := s.validate.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	return nil
}
