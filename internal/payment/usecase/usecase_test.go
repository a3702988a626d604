package usecase

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/robertarktes/ticket-booking-and-payments/internal/adapters/memory"
	"github.com/robertarktes/ticket-booking-and-payments/internal/domain"
	"github.com/robertarktes/ticket-booking-and-payments/internal/observability"
	"github.com/robertarktes/ticket-booking-and-payments/internal/payment"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id string) (payment.Payment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, p payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindByTicketID(ctx context.Context, ticketID string) ([]payment.Payment, error) {
	args := m.Called(ctx, ticketID)
	return args.Get(0).([]payment.Payment), args.Error(1)
}

var now = time.Date(2023, 1, 1, 9, 0, 0, 0, time.UTC)

// sequentialIDs hands out pay-1, pay-2, ...
func sequentialIDs() domain.IDGenerator {
	n := 0
	return func() string {
		n++
		return "pay-" + strconv.Itoa(n)
	}
}

func newService() *payment.PaymentService {
	return payment.NewPaymentService(sequentialIDs(), func() time.Time { return now })
}

func validRequest() ProcessPaymentRequest {
	return ProcessPaymentRequest{
		TicketID:      "T1",
		Amount:        decimal.RequireFromString("100.50"),
		Currency:      "usd",
		PaymentMethod: string(payment.MethodCreditCard),
	}
}

func TestProcessPayment_Success(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewPaymentRepository()
	pub := memory.NewPublisher()

	uc := NewProcessPayment(repo, pub, newService(), observability.NopLogger())
	resp, err := uc.Execute(ctx, validRequest())
	require.NoError(t, err)

	assert.Equal(t, "pay-1", resp.PaymentID)
	assert.Equal(t, "USD", resp.Currency)
	assert.Equal(t, "COMPLETED", resp.Status)
	assert.True(t, resp.Amount.Equal(decimal.RequireFromString("100.5")))
	require.NotNil(t, resp.PaymentDate)
	assert.True(t, now.Equal(*resp.PaymentDate))
	assert.Nil(t, resp.RefundDate)

	events := pub.Events()
	require.Len(t, events, 1)
	assert.Equal(t, payment.EventPaymentProcessed, events[0].EventName())
	assert.Equal(t, 1, pub.Batches())

	stored, err := repo.GetByID(ctx, "pay-1")
	require.NoError(t, err)
	assert.Equal(t, "USD", stored.Amount().Currency())
	assert.Equal(t, payment.PaymentStatusCompleted, stored.Status())
}

func TestProcessPayment_ResponseJSON(t *testing.T) {
	uc := NewProcessPayment(memory.NewPaymentRepository(), memory.NewPublisher(), newService(), observability.NopLogger())
	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "CREDIT_CARD", m["paymentMethod"])
	assert.NotContains(t, m, "refundDate")
	assert.NotContains(t, m, "failureReason")
}

func TestProcessPayment_PublishFailureRecordsFailedPayment(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewPaymentRepository()
	pub := memory.NewPublisher()
	pub.Err = errors.New("broker down")

	uc := NewProcessPayment(repo, pub, newService(), observability.NopLogger())
	_, err := uc.Execute(ctx, validRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPublish))

	completed, err := repo.GetByID(ctx, "pay-1")
	require.NoError(t, err)
	assert.Equal(t, payment.PaymentStatusCompleted, completed.Status())

	failed, err := repo.GetByID(ctx, "pay-2")
	require.NoError(t, err)
	assert.Equal(t, payment.PaymentStatusFailed, failed.Status())
	assert.Contains(t, failed.FailureReason(), "broker down")
	assert.Equal(t, "USD", failed.Amount().Currency())
	assert.Empty(t, pub.Events())
}

func TestProcessPayment_SaveFailure(t *testing.T) {
	repo := &MockPaymentRepository{}
	pub := &MockPublisher{}
	saveErr := domain.PersistenceError(errors.New("disk full"), "save")
	repo.On("Save", mock.Anything, mock.Anything).Return(saveErr).Twice()

	uc := NewProcessPayment(repo, pub, newService(), observability.NopLogger())
	_, err := uc.Execute(context.Background(), validRequest())
	assert.Equal(t, saveErr, err, "the original error is returned")
	pub.AssertNotCalled(t, "PublishAll", mock.Anything, mock.Anything)

	require.Len(t, repo.Calls, 2)
	second := repo.Calls[1].Arguments.Get(1).(payment.Payment)
	assert.Equal(t, payment.PaymentStatusFailed, second.Status())
}

func TestProcessPayment_InvalidRequestIsNotRecorded(t *testing.T) {
	repo := memory.NewPaymentRepository()
	pub := memory.NewPublisher()

	uc := NewProcessPayment(repo, pub, newService(), observability.NopLogger())

	req := validRequest()
	req.Currency = "dollars"
	_, err := uc.Execute(context.Background(), req)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	req = validRequest()
	req.PaymentMethod = "CASH"
	_, err = uc.Execute(context.Background(), req)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	assert.Equal(t, 0, repo.Len(), "a failed record cannot be built from an invalid request")
	assert.Empty(t, pub.Events())
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, e domain.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockPublisher) PublishAll(ctx context.Context, events []domain.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func completedPayment(t *testing.T) payment.Payment {
	t.Helper()
	svc := newService()
	p, err := svc.CreatePayment("T1", decimal.RequireFromString("42"), "EUR", payment.MethodPayPal)
	require.NoError(t, err)
	p, err = svc.ProcessPayment(p)
	require.NoError(t, err)
	return p.ClearEvents()
}

func TestIssueRefund(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewPaymentRepository()
	pub := memory.NewPublisher()
	p := completedPayment(t)
	require.NoError(t, repo.Save(ctx, p))

	uc := NewIssueRefund(repo, pub, newService(), observability.NopLogger())
	resp, err := uc.Execute(ctx, IssueRefundRequest{PaymentID: p.ID(), Reason: "flight cancelled"})
	require.NoError(t, err)
	assert.Equal(t, "REFUNDED", resp.Status)
	require.NotNil(t, resp.RefundDate)
	require.NotNil(t, resp.PaymentDate)

	events := pub.Events()
	require.Len(t, events, 1)
	refund, ok := events[0].(payment.RefundIssued)
	require.True(t, ok)
	assert.Equal(t, "flight cancelled", refund.Reason)

	_, err = uc.Execute(ctx, IssueRefundRequest{PaymentID: p.ID(), Reason: "again"})
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
	assert.Len(t, pub.Events(), 1)
}

func TestIssueRefund_NotFound(t *testing.T) {
	uc := NewIssueRefund(memory.NewPaymentRepository(), memory.NewPublisher(), newService(), observability.NopLogger())
	_, err := uc.Execute(context.Background(), IssueRefundRequest{PaymentID: "missing", Reason: "x"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestIssueRefund_PendingIsRejected(t *testing.T) {
	ctx := context.Background()
	repo := &MockPaymentRepository{}
	pub := &MockPublisher{}
	p, err := newService().CreatePayment("T1", decimal.RequireFromString("1"), "USD", payment.MethodDebitCard)
	require.NoError(t, err)
	repo.On("GetByID", mock.Anything, p.ID()).Return(p, nil)

	uc := NewIssueRefund(repo, pub, newService(), observability.NopLogger())
	_, err = uc.Execute(ctx, IssueRefundRequest{PaymentID: p.ID(), Reason: "x"})
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	pub.AssertNotCalled(t, "PublishAll", mock.Anything, mock.Anything)
}

func TestPaymentQueries(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewPaymentRepository()
	p := completedPayment(t)
	require.NoError(t, repo.Save(ctx, p))

	q := NewPaymentQueries(repo)
	got, err := q.GetPayment(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, "EUR", got.Currency)

	list, err := q.ListPaymentsByTicket(ctx, "T1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	none, err := q.ListPaymentsByTicket(ctx, "T2")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = q.GetPayment(ctx, "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
