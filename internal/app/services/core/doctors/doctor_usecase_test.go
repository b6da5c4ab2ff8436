package doctors

import (
	"clinic-ledger-service/internal/app/services/core/ledgertest"
	"clinic-ledger-service/internal/pkg/dto/requests"
	"clinic-ledger-service/internal/pkg/exceptions"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDoctorUsecase(t *testing.T) {
	ctx := context.Background()
	store := ledgertest.NewMemStore()
	uc := newDoctorUsecase(store, zap.NewNop())

	specialization := "Physiotherapy"
	doctor, err := uc.RegisterDoctor(ctx, &requests.RegisterDoctor{Name: "Dr. Mehta", Specialization: &specialization})
	require.NoError(t, err)
	assert.True(t, doctor.IsActive)

	other, err := uc.RegisterDoctor(ctx, &requests.RegisterDoctor{Name: "Dr. Iyer"})
	require.NoError(t, err)

	t.Run("deactivate", func(t *testing.T) {
		inactive := false
		updated, err := uc.UpdateDoctor(ctx, other.ID, &requests.UpdateDoctor{IsActive: &inactive})
		require.NoError(t, err)
		assert.False(t, updated.IsActive)
		assert.Equal(t, "Dr. Iyer", updated.Name)
	})

	t.Run("list active only", func(t *testing.T) {
		active, err := uc.ListDoctors(ctx, true)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, doctor.ID, active[0].ID)

		all, err := uc.ListDoctors(ctx, false)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("unknown doctor", func(t *testing.T) {
		_, err := uc.GetDoctor(ctx, "missing")
		assert.True(t, exceptions.IsNotFound(err))

		name := "x"
		_, err = uc.UpdateDoctor(ctx, "missing", &requests.UpdateDoctor{Name: &name})
		assert.True(t, exceptions.IsNotFound(err))
	})
}
