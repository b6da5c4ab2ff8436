package packages

import (
	"clinic-ledger-service/internal/app/contracts"
	"clinic-ledger-service/internal/app/models"
	"clinic-ledger-service/internal/app/services/core/ledger"
	"clinic-ledger-service/internal/pkg/constvars"
	"clinic-ledger-service/internal/pkg/dto/requests"
	"clinic-ledger-service/internal/pkg/exceptions"
	"clinic-ledger-service/internal/pkg/utils"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type packageUsecase struct {
	Store           contracts.Store
	TxManager       contracts.TxManager
	StatusProjector contracts.StatusProjector
	Activity        contracts.ActivityRecorder
	Log             *zap.Logger
	now             func() time.Time
}

var (
	packageUsecaseInstance contracts.PackageUsecase
	oncePackageUsecase     sync.Once
)

func NewPackageUsecase(
	store contracts.Store,
	txManager contracts.TxManager,
	statusProjector contracts.StatusProjector,
	activity contracts.ActivityRecorder,
	logger *zap.Logger,
) contracts.PackageUsecase {
	oncePackageUsecase.Do(func() {
		packageUsecaseInstance = newPackageUsecase(store, txManager, statusProjector, activity, logger)
	})
	return packageUsecaseInstance
}

func newPackageUsecase(
	store contracts.Store,
	txManager contracts.TxManager,
	statusProjector contracts.StatusProjector,
	activity contracts.ActivityRecorder,
	logger *zap.Logger,
) *packageUsecase {
	return &packageUsecase{
		Store:           store,
		TxManager:       txManager,
		StatusProjector: statusProjector,
		Activity:        activity,
		Log:             logger,
		now:             time.Now,
	}
}

func (uc *packageUsecase) CreatePackage(ctx context.Context, request *requests.CreatePackage) (*models.Package, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("packageUsecase.CreatePackage called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
	)

	discount := utils.DecimalOrZero(request.DiscountAmount)
	totals, err := ledger.ComputeTotals(request.OriginalAmount, discount, request.TotalSessions)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	pkg := &models.Package{
		ID:               utils.GenerateID(),
		PatientID:        request.PatientID,
		AssignedDoctorID: request.AssignedDoctorID,
		VisitType:        request.VisitType,
		OriginalAmount:   request.OriginalAmount,
		DiscountAmount:   discount,
		TotalAmount:      totals.TotalAmount,
		TotalSessions:    request.TotalSessions,
		PerSessionAmount: totals.PerSessionAmount,
		CarryAmount:      decimal.Zero,
		ExcessAmount:     decimal.Zero,
		Status:           constvars.PackageStatusActive,
		StartDate:        now,
	}
	pkg.SetCreatedAtUpdatedAt(now)
	ledger.ApplyAllocation(pkg, ledger.Rebalance(ledger.StateOf(pkg)), now)

	err = uc.TxManager.WithinTransaction(ctx, func(ctx context.Context, store contracts.Store) error {
		patient, err := store.Patients().FindByIDForUpdate(ctx, request.PatientID)
		if err != nil {
			return err
		}
		if patient == nil {
			return exceptions.ErrNotFound(nil, constvars.ResourcePatient, request.PatientID)
		}

		if request.AssignedDoctorID != nil {
			if err := ensureDoctorExists(ctx, store, *request.AssignedDoctorID); err != nil {
				return err
			}
		}

		active, err := store.Packages().FindActiveByPatientForUpdate(ctx, request.PatientID)
		if err != nil {
			return err
		}
		if active != nil {
			return exceptions.ErrInvalidState(
				fmt.Errorf("patient %s already has active package %s", request.PatientID, active.ID),
				constvars.ErrClientActivePackageExists,
			)
		}

		if err := store.Packages().Create(ctx, pkg); err != nil {
			return err
		}

		_, err = uc.StatusProjector.ProjectStatus(ctx, store, request.PatientID)
		return err
	})
	if err != nil {
		uc.Log.Error("packageUsecase.CreatePackage error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, request.PatientID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.emit(ctx, constvars.EventPackageCreated, pkg, map[string]interface{}{
		"total_amount":   pkg.TotalAmount.String(),
		"total_sessions": pkg.TotalSessions,
	})
	uc.Log.Info("packageUsecase.CreatePackage succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPackageIDKey, pkg.ID),
	)
	return pkg, nil
}

func (uc *packageUsecase) GetPackage(ctx context.Context, packageID string) (*models.Package, error) {
	pkg, err := uc.Store.Packages().FindByID(ctx, packageID)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, exceptions.ErrNotFound(nil, constvars.ResourcePackage, packageID)
	}
	return pkg, nil
}

func (uc *packageUsecase) ListPackagesByPatient(ctx context.Context, patientID string) ([]models.Package, error) {
	patient, err := uc.Store.Patients().FindByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrNotFound(nil, constvars.ResourcePatient, patientID)
	}
	return uc.Store.Packages().FindAllByPatient(ctx, patientID)
}

// UpdatePackage applies a partial edit. Price or session changes recompute
// the totals from the merged values and settle the carry against the new
// per-session amount. Terminal packages accept no such changes, and status
// may only leave active.
func (uc *packageUsecase) UpdatePackage(ctx context.Context, packageID string, request *requests.UpdatePackage) (*models.Package, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("packageUsecase.UpdatePackage called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPackageIDKey, packageID),
	)

	var (
		updated       models.Package
		statusChanged bool
	)
	err := uc.TxManager.WithinTransaction(ctx, func(ctx context.Context, store contracts.Store) error {
		pkg, err := store.Packages().FindByIDForUpdate(ctx, packageID)
		if err != nil {
			return err
		}
		if pkg == nil {
			return exceptions.ErrNotFound(nil, constvars.ResourcePackage, packageID)
		}
		previous := pkg.Status
		now := uc.now()

		if request.AssignedDoctorID != nil {
			if err := ensureDoctorExists(ctx, store, *request.AssignedDoctorID); err != nil {
				return err
			}
			pkg.AssignedDoctorID = request.AssignedDoctorID
		}
		if request.VisitType != nil {
			pkg.VisitType = request.VisitType
		}

		if request.HasFinancialChange() {
			if err := applyFinancialChange(pkg, request, now); err != nil {
				return err
			}
		}

		if err := applyStatusChange(pkg, request, now); err != nil {
			return err
		}
		statusChanged = pkg.Status != previous

		pkg.SetUpdatedAt(now)
		if err := store.Packages().Update(ctx, pkg); err != nil {
			return err
		}

		if _, err := uc.StatusProjector.ProjectStatus(ctx, store, pkg.PatientID); err != nil {
			return err
		}
		updated = *pkg
		return nil
	})
	if err != nil {
		uc.Log.Error("packageUsecase.UpdatePackage error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPackageIDKey, packageID),
			zap.Error(err),
		)
		return nil, err
	}

	if statusChanged {
		uc.emit(ctx, terminalEvent(updated.Status), &updated, map[string]interface{}{"reason": request.Reason})
	}
	return &updated, nil
}

func applyFinancialChange(pkg *models.Package, request *requests.UpdatePackage, now time.Time) error {
	if pkg.IsTerminal() {
		return exceptions.ErrInvalidState(
			fmt.Errorf(constvars.ErrDevPackageStateViolation, pkg.ID, pkg.Status),
			constvars.ErrClientTerminalPackageEdit,
		)
	}

	original, discount, sessions := pkg.OriginalAmount, pkg.DiscountAmount, pkg.TotalSessions
	if request.OriginalAmount != nil {
		original = *request.OriginalAmount
	}
	if request.DiscountAmount != nil {
		discount = *request.DiscountAmount
	}
	if request.TotalSessions != nil {
		sessions = *request.TotalSessions
	}

	if sessions < pkg.ReleasedSessions {
		return exceptions.ErrInvalidArgument(
			fmt.Errorf("total_sessions %d below released_sessions %d", sessions, pkg.ReleasedSessions),
			constvars.ErrClientSessionsBelowRelease,
		)
	}

	totals, err := ledger.ComputeTotals(original, discount, sessions)
	if err != nil {
		return err
	}

	pkg.OriginalAmount = original
	pkg.DiscountAmount = discount
	pkg.TotalSessions = sessions
	pkg.TotalAmount = totals.TotalAmount
	pkg.PerSessionAmount = totals.PerSessionAmount
	ledger.ApplyAllocation(pkg, ledger.Rebalance(ledger.StateOf(pkg)), now)

	if pkg.UsedSessions >= pkg.TotalSessions {
		pkg.MarkTerminal(constvars.PackageStatusCompleted, now, nil, nil)
	}
	return nil
}

func applyStatusChange(pkg *models.Package, request *requests.UpdatePackage, now time.Time) error {
	if request.Status == nil || *request.Status == pkg.Status {
		return nil
	}
	if !pkg.IsActive() || *request.Status == constvars.PackageStatusActive {
		return exceptions.ErrInvalidState(
			fmt.Errorf("package %s cannot move from %s to %s", pkg.ID, pkg.Status, *request.Status),
			constvars.ErrClientInvalidStatusChange,
		)
	}

	var closedBy *string
	if request.UpdatedBy != "" {
		closedBy = &request.UpdatedBy
	}
	pkg.MarkTerminal(*request.Status, now, closedBy, request.Reason)
	return nil
}

func (uc *packageUsecase) ClosePackage(ctx context.Context, packageID string, request *requests.ClosePackage) (*models.Package, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("packageUsecase.ClosePackage called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPackageIDKey, packageID),
		zap.String(constvars.LoggingPackageStatusKey, request.Status),
	)

	var closed models.Package
	err := uc.TxManager.WithinTransaction(ctx, func(ctx context.Context, store contracts.Store) error {
		pkg, err := store.Packages().FindByIDForUpdate(ctx, packageID)
		if err != nil {
			return err
		}
		if pkg == nil {
			return exceptions.ErrNotFound(nil, constvars.ResourcePackage, packageID)
		}

		if err := ledger.ValidateClose(pkg, request.Status); err != nil {
			return err
		}

		var closedBy *string
		if request.ClosedBy != "" {
			closedBy = &request.ClosedBy
		}
		pkg.MarkTerminal(request.Status, uc.now(), closedBy, request.Reason)

		if err := store.Packages().Update(ctx, pkg); err != nil {
			return err
		}
		if _, err := uc.StatusProjector.ProjectStatus(ctx, store, pkg.PatientID); err != nil {
			return err
		}
		closed = *pkg
		return nil
	})
	if err != nil {
		uc.Log.Error("packageUsecase.ClosePackage error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPackageIDKey, packageID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.emit(ctx, terminalEvent(closed.Status), &closed, map[string]interface{}{"reason": request.Reason})
	return &closed, nil
}

func (uc *packageUsecase) DeletePackage(ctx context.Context, packageID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("packageUsecase.DeletePackage called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPackageIDKey, packageID),
	)

	var deleted models.Package
	err := uc.TxManager.WithinTransaction(ctx, func(ctx context.Context, store contracts.Store) error {
		pkg, err := store.Packages().FindByIDForUpdate(ctx, packageID)
		if err != nil {
			return err
		}
		if pkg == nil {
			return exceptions.ErrNotFound(nil, constvars.ResourcePackage, packageID)
		}

		if err := store.Packages().Delete(ctx, packageID); err != nil {
			return err
		}
		if _, err := uc.StatusProjector.ProjectStatus(ctx, store, pkg.PatientID); err != nil {
			return err
		}
		deleted = *pkg
		return nil
	})
	if err != nil {
		uc.Log.Error("packageUsecase.DeletePackage error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPackageIDKey, packageID),
			zap.Error(err),
		)
		return err
	}

	uc.emit(ctx, constvars.EventPackageDeleted, &deleted, nil)
	return nil
}

func (uc *packageUsecase) emit(ctx context.Context, action string, pkg *models.Package, details map[string]interface{}) {
	identity, _ := utils.GetIdentity(ctx)
	uc.Activity.Emit(ctx, models.Activity{
		Action:     action,
		EntityType: constvars.ResourcePackage,
		EntityID:   pkg.ID,
		PatientID:  pkg.PatientID,
		PackageID:  pkg.ID,
		ActorID:    identity.UserID,
		Details:    details,
	})
}

func terminalEvent(status string) string {
	if status == constvars.PackageStatusCompleted {
		return constvars.EventPackageCompleted
	}
	return constvars.EventPackageClosed
}

func ensureDoctorExists(ctx context.Context, store contracts.Store, doctorID string) error {
	doctor, err := store.Doctors().FindByID(ctx, doctorID)
	if err != nil {
		return err
	}
	if doctor == nil {
		return exceptions.ErrNotFound(nil, constvars.ResourceDoctor, doctorID)
	}
	return nil
}
