package export

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/nulltracker-premium/internal/donor"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Export() (*donor.Export, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*donor.Export), args.Error(1)
}

func TestExportHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	t.Run("file", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Export").Return(&donor.Export{
			ExportDate:  time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC),
			TotalDonors: 1,
			TotalAmount: decimal.RequireFromString("10"),
			Donors:      []donor.ExportedDonor{{ID: "PAY-1", Amount: decimal.RequireFromString("10")}},
		}, nil)

		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/donors/export", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `attachment; filename="nulltracker_donors_2025-03-07.json"`, w.Header().Get("Content-Disposition"))

		var got donor.Export
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, 1, got.TotalDonors)
		assert.True(t, got.TotalAmount.Equal(decimal.RequireFromString("10")))
	})

	t.Run("empty", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Export").Return(nil, donor.ErrNoDonors)

		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/donors/export", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), donor.NoDonorsMessage)
	})

	t.Run("failure", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Export").Return(nil, errors.New("boom"))

		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/donors/export", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
