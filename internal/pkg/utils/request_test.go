package utils

import (
	"net/http/httptest"
	"testing"
	"time"

	"clinic-ledger-service/internal/pkg/constvars"
	"clinic-ledger-service/internal/pkg/dto/requests"
	"clinic-ledger-service/internal/pkg/exceptions"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPaginationRequest(t *testing.T) {
	tests := []struct {
		query    string
		page     int
		pageSize int
	}{
		{"", constvars.AppDefaultPage, constvars.AppDefaultPageSize},
		{"?page=3&page_size=5", 3, 5},
		{"?page=-1&page_size=abc", constvars.AppDefaultPage, constvars.AppDefaultPageSize},
		{"?page_size=5000", constvars.AppDefaultPage, constvars.AppMaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := BuildPaginationRequest(httptest.NewRequest("GET", "/patients"+tt.query, nil))
			assert.Equal(t, tt.page, got.Page)
			assert.Equal(t, tt.pageSize, got.PageSize)
		})
	}
}

func TestBuildDateRangeRequest(t *testing.T) {
	now := time.Date(2026, 5, 20, 15, 30, 0, 0, time.Local)

	t.Run("defaults to month to date", func(t *testing.T) {
		got, err := BuildDateRangeRequest(httptest.NewRequest("GET", "/reports/doctors", nil), now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.Local), got.From)
		assert.Equal(t, time.Date(2026, 5, 20, 0, 0, 0, 0, time.Local), got.To)
	})

	t.Run("explicit bounds", func(t *testing.T) {
		got, err := BuildDateRangeRequest(httptest.NewRequest("GET", "/reports/doctors?from=2026-01-10&to=2026-01-12", nil), now)
		require.NoError(t, err)
		assert.Equal(t, 10, got.From.Day())
		assert.Equal(t, 12, got.To.Day())
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := BuildDateRangeRequest(httptest.NewRequest("GET", "/reports/doctors?from=10-01-2026", nil), now)
		assert.True(t, exceptions.IsInvalidArgument(err))
	})

	t.Run("inverted range", func(t *testing.T) {
		_, err := BuildDateRangeRequest(httptest.NewRequest("GET", "/reports/doctors?from=2026-02-01&to=2026-01-01", nil), now)
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrClientInvalidDateRange, customErr.ClientMessage)
	})
}

func TestValidateStructMoney(t *testing.T) {
	discount := decimal.RequireFromString("100.50")
	valid := requests.CreatePackage{
		PatientID:      "6f1c2a52-7d1e-4c59-8f8e-0d6b1d3c2a10",
		OriginalAmount: decimal.RequireFromString("5000"),
		DiscountAmount: &discount,
		TotalSessions:  10,
	}
	assert.NoError(t, ValidateStruct(valid))

	fractional := valid
	fractional.OriginalAmount = decimal.RequireFromString("10.123")
	assert.Error(t, ValidateStruct(fractional))

	negative := valid
	negative.OriginalAmount = decimal.RequireFromString("-1")
	assert.Error(t, ValidateStruct(negative))

	zeroAmount := decimal.Zero
	update := requests.UpdatePayment{AmountPaid: &zeroAmount}
	assert.Error(t, ValidateStruct(update))
}

func TestValidateStructAmountPaid(t *testing.T) {
	cases := []struct {
		amount string
		valid  bool
	}{
		{"1500", true},
		{"99.90", true},
		{"1.500", true},
		{"0.004", false},
		{"100.005", false},
		{"0", false},
		{"-10", false},
	}
	for _, tc := range cases {
		t.Run(tc.amount, func(t *testing.T) {
			request := requests.RecordPayment{
				PatientID:   "6f1c2a52-7d1e-4c59-8f8e-0d6b1d3c2a10",
				AmountPaid:  decimal.RequireFromString(tc.amount),
				PaymentMode: "cash",
			}
			err := ValidateStruct(request)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestHasMoneyScale(t *testing.T) {
	assert.True(t, HasMoneyScale(decimal.RequireFromString("333.33")))
	assert.True(t, HasMoneyScale(decimal.RequireFromString("12.300")))
	assert.False(t, HasMoneyScale(decimal.RequireFromString("333.333333")))
}

func TestValidateStructPhoneNumber(t *testing.T) {
	request := requests.RegisterPatient{Name: "Ravi", Phone: "+919812345678"}
	assert.NoError(t, ValidateStruct(request))

	request.Phone = "98-12"
	assert.Error(t, ValidateStruct(request))
}
