package routers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"clinic-ledger-service/internal/app/config"
	"clinic-ledger-service/internal/app/contracts"
	"clinic-ledger-service/internal/app/delivery/http/controllers"
	"clinic-ledger-service/internal/app/delivery/http/middlewares"
	"clinic-ledger-service/internal/app/models"
	"clinic-ledger-service/internal/app/services/core/roles"
	"clinic-ledger-service/internal/app/services/shared/jwtmanager"
	"clinic-ledger-service/internal/pkg/constvars"
	"clinic-ledger-service/internal/pkg/dto/requests"
	"clinic-ledger-service/internal/pkg/dto/responses"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockReportUsecase struct {
	contracts.ReportUsecase
	mock.Mock
}

func (m *MockReportUsecase) Dashboard(ctx context.Context) (*responses.Dashboard, error) {
	args := m.Called(ctx)
	dashboard, _ := args.Get(0).(*responses.Dashboard)
	return dashboard, args.Error(1)
}

type MockDoctorUsecase struct {
	contracts.DoctorUsecase
	mock.Mock
}

func (m *MockDoctorUsecase) RegisterDoctor(ctx context.Context, request *requests.RegisterDoctor) (*models.Doctor, error) {
	args := m.Called(ctx, request)
	doctor, _ := args.Get(0).(*models.Doctor)
	return doctor, args.Error(1)
}

func TestSetupRoutes(t *testing.T) {
	internalConfig := &config.InternalConfig{
		App: config.App{
			EndpointPrefix:          "api",
			Version:                 "v1",
			MaxRequests:             100,
			RequestTimeoutInSeconds: 5,
		},
		JWT: config.AppJWT{Secret: "router-secret"},
	}
	jwtManager, err := jwtmanager.NewJWTManager(internalConfig, zap.NewNop())
	require.NoError(t, err)
	enforcer, err := roles.NewEnforcer()
	require.NoError(t, err)
	mw := middlewares.NewMiddlewares(zap.NewNop(), internalConfig, jwtManager, enforcer)

	mockReportUsecase := new(MockReportUsecase)
	mockReportUsecase.On("Dashboard", mock.Anything).Return(&responses.Dashboard{}, nil).Once()
	mockDoctorUsecase := new(MockDoctorUsecase)
	mockDoctorUsecase.On("RegisterDoctor", mock.Anything, mock.AnythingOfType("*requests.RegisterDoctor")).
		Return(&models.Doctor{ID: "doctor-1", Name: "Dr. Mehta", IsActive: true}, nil).Once()

	router := chi.NewRouter()
	SetupRoutes(router, internalConfig, mw, &Controllers{
		Patient: controllers.NewPatientController(zap.NewNop(), internalConfig, nil, nil, nil, nil),
		Doctor:  controllers.NewDoctorController(zap.NewNop(), mockDoctorUsecase),
		Package: controllers.NewPackageController(zap.NewNop(), nil),
		Session: controllers.NewSessionController(zap.NewNop(), nil),
		Payment: controllers.NewPaymentController(zap.NewNop(), nil),
		Report:  controllers.NewReportController(zap.NewNop(), mockReportUsecase),
	})

	token := func(role string) string {
		signed, err := jwtManager.CreateToken(models.Identity{UserID: "user-1", Role: role}, time.Hour)
		require.NoError(t, err)
		return constvars.BearerPrefix + signed
	}

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		auth   string
		want   int
	}{
		{"missing token", http.MethodGet, "/api/v1/patients", "", "", http.StatusUnauthorized},
		{"receptionist denied reports", http.MethodGet, "/api/v1/reports/dashboard", "", token(constvars.RoleReceptionist), http.StatusForbidden},
		{"owner reads dashboard", http.MethodGet, "/api/v1/reports/dashboard", "", token(constvars.RoleOwner), http.StatusOK},
		{"receptionist reaches patient handler", http.MethodGet, "/api/v1/patients/not-a-uuid", "", token(constvars.RoleReceptionist), http.StatusBadRequest},
		{"receptionist cannot delete packages", http.MethodDelete, "/api/v1/packages/0b8f7c3e-2a41-4d8e-9a57-5c1f4e2b7d90", "", token(constvars.RoleReceptionist), http.StatusForbidden},
		{"receptionist cannot register doctors", http.MethodPost, "/api/v1/doctors", `{"name":"Dr. Mehta"}`, token(constvars.RoleReceptionist), http.StatusForbidden},
		{"owner registers doctor", http.MethodPost, "/api/v1/doctors", `{"name":"Dr. Mehta"}`, token(constvars.RoleOwner), http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.auth != "" {
				req.Header.Set(constvars.HeaderAuthorization, tt.auth)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.want, rr.Code)
			assert.NotEmpty(t, rr.Header().Get(constvars.HeaderXRequestID))
		})
	}

	mockReportUsecase.AssertExpectations(t)
	mockDoctorUsecase.AssertExpectations(t)
}
