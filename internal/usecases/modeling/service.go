package modeling

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/business-model-api/infrastructure/repository"
	"github.com/vfg2006/business-model-api/internal/config"
	"github.com/vfg2006/business-model-api/internal/domain"
	"github.com/vfg2006/business-model-api/pkg/apiErrors"
	"github.com/vfg2006/business-model-api/pkg/metrics"
	"github.com/vfg2006/business-model-api/pkg/utils"
)

type Modeler interface {
	GetModel(ctx context.Context, ownerID int) (*domain.ModelResponse, error)
	GetSummary(ctx context.Context, ownerID int) (*domain.Summary, error)
	ListRecords(ctx context.Context, ownerID int, kind domain.EntityKind) ([]domain.Record, error)
	Apply(ctx context.Context, ownerID int, edit Edit) (*domain.ModelResponse, error)
	Seed(ctx context.Context, ownerID int) error
	Reconcile(ctx context.Context, ownerID int) (int, error)
	ReconcileAll(ctx context.Context) (int, error)
	Flush(ctx context.Context) error
	EvictIdle(ctx context.Context, ttl time.Duration) int
	PlatformAggregate(ctx context.Context) (*domain.PlatformAggregate, error)
}

// DefaultsProvider monta o modelo inicial de um usuário
type DefaultsProvider interface {
	DefaultModel(ownerID int) (*domain.Model, error)
}

// session é o estado em memória do modelo de um usuário.
// mu protege o snapshot; writeMu mantém a ordem das gravações síncronas.
type session struct {
	mu       sync.Mutex
	writeMu  sync.Mutex
	model    *domain.Model
	lastUsed time.Time
}

type Service struct {
	repo     repository.ModelRepository
	defaults DefaultsProvider
	reducer  *Reducer
	metrics  *metrics.Registry
	cfg      config.Modeling
	writer   *debouncer
	now      func() time.Time

	mu         sync.Mutex
	sessions   map[int]*session
	lastErrors map[int]string
}

func NewService(
	repo repository.ModelRepository,
	defaults DefaultsProvider,
	registry *metrics.Registry,
	cfg config.Modeling,
) *Service {
	s := &Service{
		repo:       repo,
		defaults:   defaults,
		reducer:    NewReducer(),
		metrics:    registry,
		cfg:        cfg,
		now:        time.Now,
		sessions:   make(map[int]*session),
		lastErrors: make(map[int]string),
	}

	if cfg.DebounceInterval > 0 {
		s.writer = newDebouncer(cfg.DebounceInterval, s.persist, s.handlePersistError)
	}

	logrus.WithFields(logrus.Fields{
		"debounce_interval":  cfg.DebounceInterval,
		"seed_on_first_load": cfg.SeedOnFirstLoad,
	}).Info("Serviço de modelagem configurado")

	return s
}

// withSession executa fn com o snapshot do usuário carregado e travado
func (s *Service) withSession(ctx context.Context, ownerID int, fn func(*session) error) error {
	s.mu.Lock()
	sess, ok := s.sessions[ownerID]
	if !ok {
		sess = &session{}
		s.sessions[ownerID] = sess
		s.metrics.Sessions.Set(float64(len(s.sessions)))
	}
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.model == nil {
		model, err := s.load(ctx, ownerID)
		if err != nil {
			s.dropSession(ownerID, sess)
			return err
		}
		sess.model = model
	}

	sess.lastUsed = s.now()
	return fn(sess)
}

func (s *Service) load(ctx context.Context, ownerID int) (*domain.Model, error) {
	// Pendências gravadas antes da leitura evitam carregar um estado anterior às edições
	if s.writer != nil {
		if err := s.writer.FlushOwner(ctx, ownerID); err != nil {
			s.handlePersistError(ownerID, err)
		}
	}

	if s.cfg.SeedOnFirstLoad {
		if _, err := s.seed(ctx, ownerID); err != nil {
			logrus.WithError(err).WithField("user_id", ownerID).Error("Erro ao semear modelo inicial")
		}
	}

	model, err := s.repo.LoadModel(ctx, ownerID)
	if err != nil {
		return nil, NewModelError(ErrLoadModel, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return model, nil
}

func (s *Service) dropSession(ownerID int, sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.sessions[ownerID]; ok && (sess == nil || current == sess) {
		delete(s.sessions, ownerID)
	}
	s.metrics.Sessions.Set(float64(len(s.sessions)))
}

func (s *Service) lastError(ownerID int) *string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg, ok := s.lastErrors[ownerID]; ok {
		return &msg
	}
	return nil
}

func (s *Service) response(ownerID int, model *domain.Model) *domain.ModelResponse {
	summary := Summarize(model)
	return &domain.ModelResponse{
		Model:   model,
		Summary: &summary,
		Error:   s.lastError(ownerID),
	}
}

func (s *Service) GetModel(ctx context.Context, ownerID int) (*domain.ModelResponse, error) {
	var model *domain.Model
	err := s.withSession(ctx, ownerID, func(sess *session) error {
		model = sess.model
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.response(ownerID, model), nil
}

func (s *Service) GetSummary(ctx context.Context, ownerID int) (*domain.Summary, error) {
	response, err := s.GetModel(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return response.Summary, nil
}

func (s *Service) ListRecords(ctx context.Context, ownerID int, kind domain.EntityKind) ([]domain.Record, error) {
	if !kind.IsValid() {
		return nil, NewRecordError(ErrUnknownKind, kind, "", string(kind))
	}

	var records []domain.Record
	err := s.withSession(ctx, ownerID, func(sess *session) error {
		records = sess.model.Records(kind)
		return nil
	})
	return records, err
}

// Apply reduz a edição sobre o snapshot e agenda a gravação das alterações resultantes.
// Falhas de gravação não desfazem a edição: ficam registradas como erro do usuário
// e o snapshot é descartado para ser recarregado do banco na próxima leitura.
func (s *Service) Apply(ctx context.Context, ownerID int, edit Edit) (*domain.ModelResponse, error) {
	kind := editKind(edit)

	var model *domain.Model
	var changes []domain.Change
	var current *session

	err := s.withSession(ctx, ownerID, func(sess *session) error {
		next, reduced, err := s.reducer.Reduce(sess.model, edit)
		if err != nil {
			return err
		}

		sess.model = next
		model = next
		changes = reduced
		current = sess

		// Travado antes de liberar o snapshot: gravações seguem a ordem das edições
		sess.writeMu.Lock()
		return nil
	})
	if err != nil {
		s.metrics.Edits.WithLabelValues(kind, "rejected").Inc()
		return nil, err
	}
	s.metrics.Edits.WithLabelValues(kind, "applied").Inc()

	defer current.writeMu.Unlock()

	if s.writer != nil {
		s.writer.Enqueue(ownerID, changes)
		s.metrics.PendingWrites.Set(float64(s.writer.Pending()))
		return s.response(ownerID, model), nil
	}

	if err := s.persist(ctx, ownerID, changes); err != nil {
		s.handlePersistError(ownerID, err)

		reloaded, loadErr := s.GetModel(ctx, ownerID)
		if loadErr != nil {
			return nil, loadErr
		}
		return reloaded, nil
	}

	return s.response(ownerID, model), nil
}

func editKind(edit Edit) string {
	switch e := edit.(type) {
	case EditField:
		return string(e.Kind)
	case AddRow:
		return string(e.Kind)
	case DeleteRow:
		return string(e.Kind)
	case SyncFunnel:
		return string(domain.KindActiveSubscribers)
	default:
		return "unknown"
	}
}

func (s *Service) persist(ctx context.Context, ownerID int, changes []domain.Change) error {
	if len(changes) == 0 {
		return nil
	}

	start := s.now()
	err := s.repo.ApplyChanges(ctx, ownerID, changes)
	s.metrics.PersistDuration.Observe(time.Since(start).Seconds())

	if s.writer != nil {
		s.metrics.PendingWrites.Set(float64(s.writer.Pending()))
	}

	if err != nil {
		s.metrics.Persists.WithLabelValues("error").Inc()
		return NewModelError(ErrPersistenceFailed, apiErrors.ErrPersistenceLost, err.Error())
	}

	s.metrics.Persists.WithLabelValues("ok").Inc()

	s.mu.Lock()
	delete(s.lastErrors, ownerID)
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"user_id": ownerID,
		"changes": len(changes),
	}).Debug("Alterações gravadas")

	return nil
}

// handlePersistError guarda a mensagem exibida ao usuário e força a releitura do banco
func (s *Service) handlePersistError(ownerID int, err error) {
	logrus.WithError(err).WithField("user_id", ownerID).Error("Erro ao gravar alterações do modelo")

	s.mu.Lock()
	s.lastErrors[ownerID] = err.Error()
	s.mu.Unlock()

	s.dropSession(ownerID, nil)
}

func (s *Service) seed(ctx context.Context, ownerID int) (bool, error) {
	model, err := s.defaults.DefaultModel(ownerID)
	if err != nil {
		return false, err
	}

	seeded, err := s.repo.SeedDefaults(ctx, ownerID, model)
	if err != nil {
		s.metrics.Seeds.WithLabelValues("error").Inc()
		return false, err
	}

	if seeded {
		s.metrics.Seeds.WithLabelValues("seeded").Inc()
		logrus.WithField("user_id", ownerID).Info("Modelo inicial criado para o usuário")
	} else {
		s.metrics.Seeds.WithLabelValues("skipped").Inc()
	}

	return seeded, nil
}

// Seed cria o modelo inicial quando o usuário ainda não possui nenhum dado
func (s *Service) Seed(ctx context.Context, ownerID int) error {
	if s.writer != nil {
		if err := s.writer.FlushOwner(ctx, ownerID); err != nil {
			s.handlePersistError(ownerID, err)
			return err
		}
	}

	seeded, err := s.seed(ctx, ownerID)
	if err != nil {
		return NewModelError(ErrPersistenceFailed, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if !seeded {
		return NewModelError(ErrAlreadySeeded, apiErrors.ErrAlreadySeeded, "")
	}

	s.dropSession(ownerID, nil)
	return nil
}

// Reconcile recalcula os derivados gravados do usuário e regrava apenas o que estava defasado
func (s *Service) Reconcile(ctx context.Context, ownerID int) (int, error) {
	if s.writer != nil {
		if err := s.writer.FlushOwner(ctx, ownerID); err != nil {
			s.handlePersistError(ownerID, err)
			return 0, err
		}
	}

	stored, err := s.repo.LoadModel(ctx, ownerID)
	if err != nil {
		return 0, NewModelError(ErrLoadModel, apiErrors.ErrDatabaseOperation, err.Error())
	}

	_, changes := Normalize(stored)
	if len(changes) == 0 {
		return 0, nil
	}

	if err := s.persist(ctx, ownerID, changes); err != nil {
		s.handlePersistError(ownerID, err)
		return 0, err
	}

	s.metrics.Reconciled.Add(float64(len(changes)))
	s.dropSession(ownerID, nil)

	logrus.WithFields(logrus.Fields{
		"user_id": ownerID,
		"records": len(changes),
	}).Info("Campos derivados reconciliados")

	return len(changes), nil
}

// ReconcileAll reconcilia todos os usuários com dados, seguindo mesmo quando um deles falha
func (s *Service) ReconcileAll(ctx context.Context) (int, error) {
	owners, err := s.repo.ListOwners(ctx)
	if err != nil {
		return 0, NewModelError(ErrLoadModel, apiErrors.ErrDatabaseOperation, err.Error())
	}

	total := 0
	var errs []error
	for _, ownerID := range owners {
		if ctx.Err() != nil {
			return total, ctx.Err()
		}

		count, err := s.Reconcile(ctx, ownerID)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		total += count
	}

	return total, errors.Join(errs...)
}

// Flush grava imediatamente todas as alterações pendentes
func (s *Service) Flush(ctx context.Context) error {
	if s.writer == nil {
		return nil
	}

	err := s.writer.FlushAll(ctx)
	s.metrics.PendingWrites.Set(float64(s.writer.Pending()))
	return err
}

// EvictIdle descarta da memória os modelos sem uso há mais de ttl e sem gravações pendentes
func (s *Service) EvictIdle(ctx context.Context, ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	candidates := make(map[int]*session, len(s.sessions))
	for ownerID, sess := range s.sessions {
		candidates[ownerID] = sess
	}
	s.mu.Unlock()

	evicted := 0
	for ownerID, sess := range candidates {
		sess.mu.Lock()
		idle := sess.lastUsed.Before(cutoff)
		sess.mu.Unlock()

		if !idle || (s.writer != nil && s.writer.HasPending(ownerID)) {
			continue
		}

		s.dropSession(ownerID, sess)
		evicted++
	}

	if evicted > 0 {
		logrus.WithField("sessions", evicted).Debug("Modelos ociosos descartados da memória")
	}

	return evicted
}

// PlatformAggregate consolida receita, assinantes e churn de todos os usuários
func (s *Service) PlatformAggregate(ctx context.Context) (*domain.PlatformAggregate, error) {
	if err := s.Flush(ctx); err != nil {
		logrus.WithError(err).Warn("Agregado calculado com gravações pendentes que falharam")
	}

	totals, err := s.repo.PlatformTotals(ctx)
	if err != nil {
		return nil, NewModelError(ErrLoadModel, apiErrors.ErrDatabaseOperation, err.Error())
	}

	aggregate := &domain.PlatformAggregate{
		TotalUsers:       totals.TotalUsers,
		TotalSubscribers: totals.TotalSubscribers,
		AverageChurnRate: utils.RoundWithTwoDecimalPlace(totals.AverageChurnRate),
	}

	if totals.TotalUsers > 0 {
		aggregate.AverageRevenue = money(dec(totals.TotalRevenue).Div(decimal.NewFromInt(int64(totals.TotalUsers))))
	}

	return aggregate, nil
}
