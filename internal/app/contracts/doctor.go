package contracts

import (
	"clinic-ledger-service/internal/app/models"
	"clinic-ledger-service/internal/pkg/dto/requests"
	"context"
)

type DoctorRepository interface {
	Create(ctx context.Context, doctor *models.Doctor) error
	FindByID(ctx context.Context, doctorID string) (*models.Doctor, error)
	Update(ctx context.Context, doctor *models.Doctor) error
	List(ctx context.Context, activeOnly bool) ([]models.Doctor, error)
}

type DoctorUsecase interface {
	RegisterDoctor(ctx context.Context, request *requests.RegisterDoctor) (*models.Doctor, error)
	GetDoctor(ctx context.Context, doctorID string) (*models.Doctor, error)
	ListDoctors(ctx context.Context, activeOnly bool) ([]models.Doctor, error)
	UpdateDoctor(ctx context.Context, doctorID string, request *requests.UpdateDoctor) (*models.Doctor, error)
}
