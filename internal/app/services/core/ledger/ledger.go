// Package ledger holds the package arithmetic: totals, payment allocation,
// session consumption and the patient status rule. It has no I/O.
package ledger

import (
	"clinic-ledger-service/internal/app/models"
	"clinic-ledger-service/internal/pkg/constvars"
	"clinic-ledger-service/internal/pkg/exceptions"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Totals struct {
	TotalAmount      decimal.Decimal
	PerSessionAmount decimal.Decimal
}

// ComputeTotals derives total_amount and per_session_amount. The per-session
// amount is rounded to constvars.PerSessionScale places.
func ComputeTotals(original, discount decimal.Decimal, totalSessions int) (Totals, error) {
	if original.IsNegative() || discount.IsNegative() {
		return Totals{}, exceptions.ErrInvalidArgument(
			fmt.Errorf("original=%s discount=%s", original, discount),
			constvars.ErrClientNegativeAmount,
		)
	}
	if discount.GreaterThan(original) {
		return Totals{}, exceptions.ErrInvalidArgument(
			fmt.Errorf("discount %s exceeds original %s", discount, original),
			constvars.ErrClientDiscountExceeds,
		)
	}
	if totalSessions < 1 {
		return Totals{}, exceptions.ErrInvalidArgument(
			fmt.Errorf("total_sessions=%d", totalSessions),
			constvars.ErrClientInvalidSessionCount,
		)
	}

	total := original.Sub(discount)
	return Totals{
		TotalAmount:      total,
		PerSessionAmount: total.DivRound(decimal.NewFromInt(int64(totalSessions)), constvars.PerSessionScale),
	}, nil
}

// AllocationState is the part of a package that a payment can move.
type AllocationState struct {
	PerSessionAmount decimal.Decimal
	CarryAmount      decimal.Decimal
	ExcessAmount     decimal.Decimal
	ReleasedSessions int
	TotalSessions    int
}

type Allocation struct {
	SessionsReleased int
	ReleasedSessions int
	CarryAmount      decimal.Decimal
	// ExcessAmount is the money left over once every session is released.
	ExcessAmount decimal.Decimal
}

// Allocate converts amount into released sessions. The pool is carry, excess
// and amount; whole per-session units are released up to total_sessions and
// the remainder is carried. Once the package is fully released nothing is
// carried and the remainder is reported as excess.
func Allocate(state AllocationState, amount decimal.Decimal) (Allocation, error) {
	if !amount.IsPositive() {
		return Allocation{}, exceptions.ErrInvalidArgument(
			fmt.Errorf("amount_paid=%s", amount),
			constvars.ErrClientAmountNotPositive,
		)
	}

	return settle(state, state.CarryAmount.Add(state.ExcessAmount).Add(amount)), nil
}

// Rebalance settles the money already held by a package, carry and excess,
// against its current per-session amount, e.g. after the price or session
// count was edited.
func Rebalance(state AllocationState) Allocation {
	return settle(state, state.CarryAmount.Add(state.ExcessAmount))
}

func settle(state AllocationState, pool decimal.Decimal) Allocation {
	capacity := state.TotalSessions - state.ReleasedSessions
	if capacity < 0 {
		capacity = 0
	}

	release := capacity
	if state.PerSessionAmount.IsPositive() {
		units := pool.Div(state.PerSessionAmount).Floor()
		if units.LessThan(decimal.NewFromInt(int64(capacity))) {
			release = int(units.IntPart())
		}
	}

	remainder := pool.Sub(state.PerSessionAmount.Mul(decimal.NewFromInt(int64(release))))
	for remainder.IsNegative() && release > 0 {
		release--
		remainder = remainder.Add(state.PerSessionAmount)
	}

	allocation := Allocation{
		SessionsReleased: release,
		ReleasedSessions: state.ReleasedSessions + release,
		CarryAmount:      remainder,
		ExcessAmount:     decimal.Zero,
	}
	if allocation.ReleasedSessions >= state.TotalSessions {
		allocation.CarryAmount = decimal.Zero
		allocation.ExcessAmount = remainder
	}

	return allocation
}

// ApplyAllocation writes an allocation onto pkg.
func ApplyAllocation(pkg *models.Package, allocation Allocation, now time.Time) {
	pkg.ReleasedSessions = allocation.ReleasedSessions
	pkg.CarryAmount = allocation.CarryAmount
	pkg.ExcessAmount = allocation.ExcessAmount
	pkg.UpdatedAt = now
}

func StateOf(pkg *models.Package) AllocationState {
	return AllocationState{
		PerSessionAmount: pkg.PerSessionAmount,
		CarryAmount:      pkg.CarryAmount,
		ExcessAmount:     pkg.ExcessAmount,
		ReleasedSessions: pkg.ReleasedSessions,
		TotalSessions:    pkg.TotalSessions,
	}
}

// ConsumeSession debits one released session from pkg. It reports whether
// the package became completed as a result.
func ConsumeSession(pkg *models.Package, now time.Time) (bool, error) {
	if !pkg.IsActive() {
		return false, exceptions.ErrInvalidState(
			fmt.Errorf(constvars.ErrDevPackageStateViolation, pkg.ID, pkg.Status),
			constvars.ErrClientPackageNotActive,
		)
	}
	if pkg.UsedSessions >= pkg.ReleasedSessions {
		return false, exceptions.ErrInvalidState(
			fmt.Errorf("package %s used=%d released=%d", pkg.ID, pkg.UsedSessions, pkg.ReleasedSessions),
			constvars.ErrClientNoReleasedSessions,
		)
	}

	pkg.UsedSessions++
	pkg.UpdatedAt = now
	if pkg.UsedSessions >= pkg.TotalSessions {
		pkg.MarkTerminal(constvars.PackageStatusCompleted, now, nil, nil)
		return true, nil
	}
	return false, nil
}

// ValidateClose checks that pkg may move to status.
func ValidateClose(pkg *models.Package, status string) error {
	if status != constvars.PackageStatusCompleted && status != constvars.PackageStatusClosed {
		return exceptions.ErrInvalidArgument(
			fmt.Errorf("close status %q", status),
			constvars.ErrClientInvalidCloseStatus,
		)
	}
	if pkg.IsTerminal() {
		return exceptions.ErrInvalidState(
			fmt.Errorf(constvars.ErrDevPackageStateViolation, pkg.ID, pkg.Status),
			constvars.ErrClientPackageAlreadyClosed,
		)
	}
	return nil
}

// ProjectStatus is the patient status rule: no packages is no_package, any
// active package is active, anything else is discharged.
func ProjectStatus(packages []models.Package) string {
	if len(packages) == 0 {
		return constvars.PatientStatusNoPackage
	}
	for i := range packages {
		if packages[i].IsActive() {
			return constvars.PatientStatusActive
		}
	}
	return constvars.PatientStatusDischarged
}

// RemainingAmount is what the patient still owes, never below zero.
func RemainingAmount(totalDue, totalPaid decimal.Decimal) decimal.Decimal {
	remaining := totalDue.Sub(totalPaid)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// CheckInvariants reports the first counter or money relation pkg breaks.
func CheckInvariants(pkg *models.Package) error {
	switch {
	case pkg.UsedSessions < 0:
		return fmt.Errorf("used_sessions %d is negative", pkg.UsedSessions)
	case pkg.UsedSessions > pkg.ReleasedSessions:
		return fmt.Errorf("used_sessions %d exceeds released_sessions %d", pkg.UsedSessions, pkg.ReleasedSessions)
	case pkg.ReleasedSessions > pkg.TotalSessions:
		return fmt.Errorf("released_sessions %d exceeds total_sessions %d", pkg.ReleasedSessions, pkg.TotalSessions)
	case pkg.CarryAmount.IsNegative():
		return fmt.Errorf("carry_amount %s is negative", pkg.CarryAmount)
	case pkg.PerSessionAmount.IsPositive() && !pkg.CarryAmount.LessThan(pkg.PerSessionAmount):
		return fmt.Errorf("carry_amount %s reaches per_session_amount %s", pkg.CarryAmount, pkg.PerSessionAmount)
	}
	return nil
}
