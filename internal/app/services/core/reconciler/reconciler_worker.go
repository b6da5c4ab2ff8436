package reconciler

import (
	"clinic-ledger-service/internal/app/config"
	"clinic-ledger-service/internal/app/contracts"
	"clinic-ledger-service/internal/pkg/constvars"
	"clinic-ledger-service/internal/pkg/exceptions"
	"clinic-ledger-service/internal/pkg/utils"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	defaultCronSpec = "@daily"
	defaultLockTTL  = 2 * time.Minute
	defaultTimeout  = 30 * time.Minute
)

// Worker periodically re-derives every patient's status from their
// packages. A Redis leader lock keeps it to one instance at a time.
type Worker struct {
	log       *zap.Logger
	locker    contracts.LockerService
	store     contracts.Store
	txManager contracts.TxManager
	projector contracts.StatusProjector

	spec    string
	lockTTL time.Duration
	timeout time.Duration

	mu     sync.Mutex
	cron   *cron.Cron
	runCtx context.Context
	cancel context.CancelFunc
}

func NewWorker(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, store contracts.Store, txManager contracts.TxManager, projector contracts.StatusProjector) *Worker {
	w := &Worker{
		log:       log,
		locker:    lockerSvc,
		store:     store,
		txManager: txManager,
		projector: projector,
		spec:      defaultCronSpec,
		lockTTL:   defaultLockTTL,
		timeout:   defaultTimeout,
	}
	if cfg != nil {
		if cfg.Ledger.ReconcilerCronSpec != "" {
			w.spec = cfg.Ledger.ReconcilerCronSpec
		}
		if cfg.Ledger.ReconcilerLockTTLInSeconds > 0 {
			w.lockTTL = time.Duration(cfg.Ledger.ReconcilerLockTTLInSeconds) * time.Second
		}
		if cfg.Ledger.ReconcilerTimeoutInMinutes > 0 {
			w.timeout = time.Duration(cfg.Ledger.ReconcilerTimeoutInMinutes) * time.Minute
		}
	}
	return w
}

var _ contracts.ReconcilerWorker = (*Worker)(nil)

func (w *Worker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cron != nil {
		return
	}

	w.runCtx, w.cancel = context.WithCancel(context.Background())
	c := cron.New()
	_, err := c.AddFunc(w.spec, w.tick)
	if err != nil {
		w.log.Warn("reconciler.worker: invalid cron spec, falling back to @daily",
			zap.String("cron_spec", w.spec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(defaultCronSpec, w.tick)
	}
	c.Start()
	w.cron = c
}

// Stop cancels an in-flight run and waits for it to return.
func (w *Worker) Stop() {
	w.mu.Lock()
	c, cancel := w.cron, w.cancel
	w.cron, w.cancel = nil, nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if c != nil {
		<-c.Stop().Done()
	}
}

func (w *Worker) tick() {
	ctx, cancel := context.WithTimeout(w.runCtx, w.timeout)
	defer cancel()
	ctx = context.WithValue(ctx, constvars.CONTEXT_REQUEST_ID_KEY, utils.GenerateRequestID())

	corrected, err := w.RunOnce(ctx)
	if err != nil {
		w.log.Warn("reconciler.worker: run finished with errors",
			zap.Int("corrected", corrected),
			zap.Error(err),
		)
		return
	}
	w.log.Info("reconciler.worker: run finished", zap.Int("corrected", corrected))
}

// RunOnce re-projects every patient and returns how many statuses changed.
// It does nothing when another instance holds the leader lock.
func (w *Worker) RunOnce(ctx context.Context) (int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	acquired, token, err := w.locker.TryLock(ctx, constvars.ReconcilerLeaderLockKey, w.lockTTL)
	if err != nil {
		return 0, err
	}
	if !acquired {
		w.log.Info("reconciler.worker: leader lock held by another instance",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return 0, nil
	}
	defer func() {
		if err := w.locker.Unlock(context.WithoutCancel(ctx), constvars.ReconcilerLeaderLockKey, token); err != nil {
			w.log.Warn("reconciler.worker: failed to release leader lock", zap.Error(err))
		}
	}()

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go w.refreshLock(refreshCtx, token)

	patientIDs, err := w.store.Patients().ListIDs(ctx)
	if err != nil {
		return 0, err
	}

	var (
		corrected int
		errs      []error
	)
	for _, patientID := range patientIDs {
		if ctx.Err() != nil {
			errs = append(errs, exceptions.ErrServerDeadlineExceeded(ctx.Err()))
			break
		}

		changed, err := w.reconcilePatient(ctx, patientID)
		if err != nil {
			w.log.Warn("reconciler.worker: failed to reconcile patient",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingPatientIDKey, patientID),
				zap.Error(err),
			)
			errs = append(errs, err)
			continue
		}
		if changed {
			corrected++
		}
	}

	return corrected, errors.Join(errs...)
}

func (w *Worker) reconcilePatient(ctx context.Context, patientID string) (bool, error) {
	var changed bool
	err := w.txManager.WithinTransaction(ctx, func(ctx context.Context, store contracts.Store) error {
		changed = false

		patient, err := store.Patients().FindByIDForUpdate(ctx, patientID)
		if err != nil {
			return err
		}
		if patient == nil {
			// Removed since the id list was read.
			return nil
		}

		status, err := w.projector.ProjectStatus(ctx, store, patientID)
		if err != nil {
			return err
		}
		changed = status != patient.Status
		return nil
	})
	return changed, err
}

func (w *Worker) refreshLock(ctx context.Context, token string) {
	tick := time.NewTicker(w.lockTTL / 2)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			if err := w.locker.Refresh(ctx, constvars.ReconcilerLeaderLockKey, token, w.lockTTL); err != nil {
				w.log.Warn("reconciler.worker: failed to refresh leader lock", zap.Error(err))
			}
		}
	}
}
