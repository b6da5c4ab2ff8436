package contracts

import (
	"clinic-ledger-service/internal/app/models"
	"clinic-ledger-service/internal/pkg/dto/requests"
	"context"
)

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, sessionID string) (*models.Session, error)
	CountByPackage(ctx context.Context, packageID string) (int, error)
	FindByPatient(ctx context.Context, patientID string, pagination requests.Pagination) ([]models.Session, int, error)
}

type SessionUsecase interface {
	RecordSession(ctx context.Context, request *requests.RecordSession) (*models.Session, error)
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	ListSessionsByPatient(ctx context.Context, patientID string, pagination requests.Pagination) ([]models.Session, int, error)
}
