package save

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/nulltracker-premium/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) SavePayment(ctx context.Context, req models.SavePaymentRequest) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}

func TestSaveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	valid := models.SavePaymentRequest{
		UserID:   "42",
		GuildID:  "7",
		Services: []string{"antinuke", "logging"},
		OrderID:  "ORDER-1",
	}

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "saved",
			body: `{"userId":"42","guildId":"7","services":["antinuke","logging"],"orderId":"ORDER-1"}`,
			setupMock: func(m *MockService) {
				m.On("SavePayment", mock.Anything, valid).Return(int64(5), nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"id":5`,
		},
		{
			name:           "missing guild",
			body:           `{"userId":"42","services":["antinuke"],"orderId":"ORDER-1"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field GuildID is a required field`,
		},
		{
			name:           "no services",
			body:           `{"userId":"42","guildId":"7","services":[],"orderId":"ORDER-1"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Services must contain at least 1 item(s)`,
		},
		{
			name:           "invalid JSON",
			body:           `[]`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name: "storage error",
			body: `{"userId":"42","guildId":"7","services":["antinuke","logging"],"orderId":"ORDER-1"}`,
			setupMock: func(m *MockService) {
				m.On("SavePayment", mock.Anything, valid).Return(int64(0), errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not save payment"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
