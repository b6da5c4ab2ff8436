// Package ledgertest provides an in-memory Store and TxManager for usecase
// tests. Transactions are serialized and rolled back on error. Amounts are
// rounded on write to the scale of their Postgres columns.
package ledgertest

import (
	"clinic-ledger-service/internal/app/contracts"
	"clinic-ledger-service/internal/app/models"
	"clinic-ledger-service/internal/pkg/constvars"
	"clinic-ledger-service/internal/pkg/dto/requests"
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

type MemStore struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	patients map[string]models.Patient
	doctors  map[string]models.Doctor
	packages map[string]models.Package
	sessions map[string]models.Session
	payments map[string]models.Payment

	failures     map[string]error
	Transactions int
	Rollbacks    int
}

var (
	_ contracts.Store     = (*MemStore)(nil)
	_ contracts.TxManager = (*MemStore)(nil)
)

func NewMemStore() *MemStore {
	return &MemStore{
		patients: map[string]models.Patient{},
		doctors:  map[string]models.Doctor{},
		packages: map[string]models.Package{},
		sessions: map[string]models.Session{},
		payments: map[string]models.Payment{},
		failures: map[string]error{},
	}
}

// FailOn makes the named repository operation, e.g. "packages.Update",
// return err until cleared with a nil err.
func (s *MemStore) FailOn(operation string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, operation)
		return
	}
	s.failures[operation] = err
}

func (s *MemStore) failure(operation string) error {
	return s.failures[operation]
}

func (s *MemStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context, store contracts.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	s.Transactions++
	snapshot := s.snapshot()
	s.mu.Unlock()

	if err := fn(ctx, s); err != nil {
		s.mu.Lock()
		s.restore(snapshot)
		s.Rollbacks++
		s.mu.Unlock()
		return err
	}
	return nil
}

type memSnapshot struct {
	patients map[string]models.Patient
	doctors  map[string]models.Doctor
	packages map[string]models.Package
	sessions map[string]models.Session
	payments map[string]models.Payment
}

func (s *MemStore) snapshot() memSnapshot {
	return memSnapshot{
		patients: copyMap(s.patients),
		doctors:  copyMap(s.doctors),
		packages: copyMap(s.packages),
		sessions: copyMap(s.sessions),
		payments: copyMap(s.payments),
	}
}

func (s *MemStore) restore(snapshot memSnapshot) {
	s.patients = snapshot.patients
	s.doctors = snapshot.doctors
	s.packages = snapshot.packages
	s.sessions = snapshot.sessions
	s.payments = snapshot.payments
}

func copyMap[T any](in map[string]T) map[string]T {
	out := make(map[string]T, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (s *MemStore) Patients() contracts.PatientRepository { return patientRepo{s} }
func (s *MemStore) Doctors() contracts.DoctorRepository   { return doctorRepo{s} }
func (s *MemStore) Packages() contracts.PackageRepository { return packageRepo{s} }
func (s *MemStore) Sessions() contracts.SessionRepository { return sessionRepo{s} }
func (s *MemStore) Payments() contracts.PaymentRepository { return paymentRepo{s} }

// Seed and inspection helpers.

func (s *MemStore) AddPatient(patient models.Patient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if patient.Status == "" {
		patient.Status = constvars.PatientStatusNoPackage
	}
	s.patients[patient.ID] = patient
}

func (s *MemStore) AddDoctor(doctor models.Doctor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doctors[doctor.ID] = doctor
}

func (s *MemStore) AddPackage(pkg models.Package) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.packages[pkg.ID] = pkg
}

func (s *MemStore) AddSession(session models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
}

func (s *MemStore) AddPayment(payment models.Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments[payment.ID] = payment
}

func (s *MemStore) Patient(id string) (models.Patient, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	patient, ok := s.patients[id]
	return patient, ok
}

func (s *MemStore) Package(id string) (models.Package, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pkg, ok := s.packages[id]
	return pkg, ok
}

func (s *MemStore) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *MemStore) PaymentCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.payments)
}

func atMoneyScale(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(constvars.MoneyScale)
}

func atLedgerScale(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(constvars.PerSessionScale)
}

func storedPackage(pkg models.Package) models.Package {
	pkg.OriginalAmount = atMoneyScale(pkg.OriginalAmount)
	pkg.DiscountAmount = atMoneyScale(pkg.DiscountAmount)
	pkg.TotalAmount = atMoneyScale(pkg.TotalAmount)
	pkg.PerSessionAmount = atLedgerScale(pkg.PerSessionAmount)
	pkg.CarryAmount = atLedgerScale(pkg.CarryAmount)
	pkg.ExcessAmount = atLedgerScale(pkg.ExcessAmount)
	return pkg
}

func storedPayment(payment models.Payment) models.Payment {
	payment.AmountPaid = atMoneyScale(payment.AmountPaid)
	payment.RemainingAmount = atMoneyScale(payment.RemainingAmount)
	return payment
}

func paginate[T any](items []T, pagination requests.Pagination) []T {
	if pagination.PageSize <= 0 {
		return items
	}
	start := pagination.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + pagination.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

type patientRepo struct{ s *MemStore }

func (r patientRepo) Create(ctx context.Context, patient *models.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("patients.Create"); err != nil {
		return err
	}
	if _, exists := r.s.patients[patient.ID]; exists {
		return fmt.Errorf("patient %s already exists", patient.ID)
	}
	r.s.patients[patient.ID] = *patient
	return nil
}

func (r patientRepo) FindByID(ctx context.Context, patientID string) (*models.Patient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.failure("patients.FindByID"); err != nil {
		return nil, err
	}
	patient, ok := r.s.patients[patientID]
	if !ok {
		return nil, nil
	}
	return &patient, nil
}

func (r patientRepo) FindByIDForUpdate(ctx context.Context, patientID string) (*models.Patient, error) {
	return r.FindByID(ctx, patientID)
}

func (r patientRepo) Update(ctx context.Context, patient *models.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("patients.Update"); err != nil {
		return err
	}
	existing, ok := r.s.patients[patient.ID]
	if !ok {
		return nil
	}
	existing.Name = patient.Name
	existing.Phone = patient.Phone
	existing.Gender = patient.Gender
	existing.Age = patient.Age
	existing.Address = patient.Address
	existing.UpdatedAt = patient.UpdatedAt
	r.s.patients[patient.ID] = existing
	return nil
}

func (r patientRepo) UpdateStatus(ctx context.Context, patientID, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("patients.UpdateStatus"); err != nil {
		return err
	}
	if patient, ok := r.s.patients[patientID]; ok {
		patient.Status = status
		r.s.patients[patientID] = patient
	}
	return nil
}

func (r patientRepo) UpdateLedgerFields(ctx context.Context, patientID string, releasedSessions int, carryAmount decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("patients.UpdateLedgerFields"); err != nil {
		return err
	}
	if patient, ok := r.s.patients[patientID]; ok {
		patient.ReleasedSessions = releasedSessions
		patient.CarryAmount = atLedgerScale(carryAmount)
		r.s.patients[patientID] = patient
	}
	return nil
}

func (r patientRepo) List(ctx context.Context, filter requests.PatientFilter) ([]models.Patient, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.failure("patients.List"); err != nil {
		return nil, 0, err
	}
	var patients []models.Patient
	for _, patient := range r.s.patients {
		if filter.Status == "" || patient.Status == filter.Status {
			patients = append(patients, patient)
		}
	}
	sort.Slice(patients, func(i, j int) bool { return patients[i].ID < patients[j].ID })
	return paginate(patients, filter.Pagination), len(patients), nil
}

func (r patientRepo) ListIDs(ctx context.Context) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.failure("patients.ListIDs"); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(r.s.patients))
	for id := range r.s.patients {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

type doctorRepo struct{ s *MemStore }

func (r doctorRepo) Create(ctx context.Context, doctor *models.Doctor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("doctors.Create"); err != nil {
		return err
	}
	r.s.doctors[doctor.ID] = *doctor
	return nil
}

func (r doctorRepo) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.failure("doctors.FindByID"); err != nil {
		return nil, err
	}
	doctor, ok := r.s.doctors[doctorID]
	if !ok {
		return nil, nil
	}
	return &doctor, nil
}

func (r doctorRepo) Update(ctx context.Context, doctor *models.Doctor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("doctors.Update"); err != nil {
		return err
	}
	r.s.doctors[doctor.ID] = *doctor
	return nil
}

func (r doctorRepo) List(ctx context.Context, activeOnly bool) ([]models.Doctor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.failure("doctors.List"); err != nil {
		return nil, err
	}
	doctors := []models.Doctor{}
	for _, doctor := range r.s.doctors {
		if !activeOnly || doctor.IsActive {
			doctors = append(doctors, doctor)
		}
	}
	sort.Slice(doctors, func(i, j int) bool { return doctors[i].Name < doctors[j].Name })
	return doctors, nil
}

type packageRepo struct{ s *MemStore }

func (r packageRepo) Create(ctx context.Context, pkg *models.Package) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("packages.Create"); err != nil {
		return err
	}
	if pkg.IsActive() {
		for _, existing := range r.s.packages {
			if existing.PatientID == pkg.PatientID && existing.IsActive() {
				return fmt.Errorf("patient %s already has active package %s", pkg.PatientID, existing.ID)
			}
		}
	}
	r.s.packages[pkg.ID] = storedPackage(*pkg)
	return nil
}

func (r packageRepo) FindByID(ctx context.Context, packageID string) (*models.Package, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.failure("packages.FindByID"); err != nil {
		return nil, err
	}
	pkg, ok := r.s.packages[packageID]
	if !ok {
		return nil, nil
	}
	return &pkg, nil
}

func (r packageRepo) FindByIDForUpdate(ctx context.Context, packageID string) (*models.Package, error) {
	return r.FindByID(ctx, packageID)
}

func (r packageRepo) FindActiveByPatient(ctx context.Context, patientID string) (*models.Package, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.failure("packages.FindActiveByPatient"); err != nil {
		return nil, err
	}
	for _, pkg := range r.s.packages {
		if pkg.PatientID == patientID && pkg.IsActive() {
			return &pkg, nil
		}
	}
	return nil, nil
}

func (r packageRepo) FindActiveByPatientForUpdate(ctx context.Context, patientID string) (*models.Package, error) {
	return r.FindActiveByPatient(ctx, patientID)
}

func (r packageRepo) FindAllByPatient(ctx context.Context, patientID string) ([]models.Package, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.failure("packages.FindAllByPatient"); err != nil {
		return nil, err
	}
	packages := []models.Package{}
	for _, pkg := range r.s.packages {
		if pkg.PatientID == patientID {
			packages = append(packages, pkg)
		}
	}
	sort.Slice(packages, func(i, j int) bool {
		if packages[i].StartDate.Equal(packages[j].StartDate) {
			return packages[i].ID < packages[j].ID
		}
		return packages[i].StartDate.After(packages[j].StartDate)
	})
	return packages, nil
}

func (r packageRepo) SumTotalAmountByPatient(ctx context.Context, patientID string) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.failure("packages.SumTotalAmountByPatient"); err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, pkg := range r.s.packages {
		if pkg.PatientID == patientID {
			total = total.Add(pkg.TotalAmount)
		}
	}
	return total, nil
}

func (r packageRepo) Update(ctx context.Context, pkg *models.Package) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("packages.Update"); err != nil {
		return err
	}
	r.s.packages[pkg.ID] = storedPackage(*pkg)
	return nil
}

func (r packageRepo) Delete(ctx context.Context, packageID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("packages.Delete"); err != nil {
		return err
	}
	delete(r.s.packages, packageID)
	for id, session := range r.s.sessions {
		if session.PackageID != nil && *session.PackageID == packageID {
			session.PackageID = nil
			r.s.sessions[id] = session
		}
	}
	for id, payment := range r.s.payments {
		if payment.PackageID != nil && *payment.PackageID == packageID {
			payment.PackageID = nil
			r.s.payments[id] = payment
		}
	}
	return nil
}

type sessionRepo struct{ s *MemStore }

func (r sessionRepo) Create(ctx context.Context, session *models.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("sessions.Create"); err != nil {
		return err
	}
	r.s.sessions[session.ID] = *session
	return nil
}

func (r sessionRepo) FindByID(ctx context.Context, sessionID string) (*models.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.failure("sessions.FindByID"); err != nil {
		return nil, err
	}
	session, ok := r.s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (r sessionRepo) CountByPackage(ctx context.Context, packageID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.failure("sessions.CountByPackage"); err != nil {
		return 0, err
	}
	count := 0
	for _, session := range r.s.sessions {
		if session.PackageID != nil && *session.PackageID == packageID {
			count++
		}
	}
	return count, nil
}

func (r sessionRepo) FindByPatient(ctx context.Context, patientID string, pagination requests.Pagination) ([]models.Session, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.failure("sessions.FindByPatient"); err != nil {
		return nil, 0, err
	}
	sessions := []models.Session{}
	for _, session := range r.s.sessions {
		if session.PatientID == patientID {
			sessions = append(sessions, session)
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].SessionDate.Equal(sessions[j].SessionDate) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].SessionDate.After(sessions[j].SessionDate)
	})
	return paginate(sessions, pagination), len(sessions), nil
}

type paymentRepo struct{ s *MemStore }

func (r paymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("payments.Create"); err != nil {
		return err
	}
	r.s.payments[payment.ID] = storedPayment(*payment)
	return nil
}

func (r paymentRepo) Update(ctx context.Context, payment *models.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("payments.Update"); err != nil {
		return err
	}
	r.s.payments[payment.ID] = storedPayment(*payment)
	return nil
}

func (r paymentRepo) FindByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.failure("payments.FindByID"); err != nil {
		return nil, err
	}
	payment, ok := r.s.payments[paymentID]
	if !ok {
		return nil, nil
	}
	return &payment, nil
}

func (r paymentRepo) SumPaidByPatient(ctx context.Context, patientID string) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.failure("payments.SumPaidByPatient"); err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, payment := range r.s.payments {
		if payment.PatientID == patientID {
			total = total.Add(payment.AmountPaid)
		}
	}
	return total, nil
}

func (r paymentRepo) FindByPatient(ctx context.Context, patientID string, pagination requests.Pagination) ([]models.Payment, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.failure("payments.FindByPatient"); err != nil {
		return nil, 0, err
	}
	payments := []models.Payment{}
	for _, payment := range r.s.payments {
		if payment.PatientID == patientID {
			payments = append(payments, payment)
		}
	}
	sort.Slice(payments, func(i, j int) bool {
		if payments[i].PaymentDate.Equal(payments[j].PaymentDate) {
			return payments[i].ID < payments[j].ID
		}
		return payments[i].PaymentDate.After(payments[j].PaymentDate)
	})
	return paginate(payments, pagination), len(payments), nil
}
