package rabbit_test

import (
	"context"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robertarktes/ticket-booking-and-payments/internal/adapters/rabbit"
	"github.com/robertarktes/ticket-booking-and-payments/internal/booking"
	"github.com/robertarktes/ticket-booking-and-payments/internal/eventbus"
	"github.com/robertarktes/ticket-booking-and-payments/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestPublishAllThenConsume(t *testing.T) {
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	rabbitContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "rabbitmq:3.13-management",
			ExposedPorts: []string{"5672/tcp", "15672/tcp"},
			WaitingFor:   wait.ForHTTP("/api/health/checks/alarms").WithPort("15672").WithBasicAuth("guest", "guest"),
		},
		Started: true,
	})
	require.NoError(t, err)
	defer rabbitContainer.Terminate(ctx)

	host, err := rabbitContainer.Host(ctx)
	require.NoError(t, err)
	port, err := rabbitContainer.MappedPort(ctx, "5672")
	require.NoError(t, err)

	conn, err := amqp.Dial("amqp://guest:guest@" + host + ":" + port.Port() + "/")
	require.NoError(t, err)
	defer conn.Close()

	logger := observability.NopLogger()
	consumer, err := rabbit.NewConsumer(conn, "test.events", "test.audit", "#", logger)
	require.NoError(t, err)
	defer consumer.Close()

	pub, err := rabbit.NewPublisher(conn, "test.events", eventbus.SourceBooking)
	require.NoError(t, err)
	defer pub.Close()

	svc := booking.NewTicketService(nil, nil)
	tk, err := svc.CreateTicket("FL1", "P1", "12A", "2023-01-01T10:00:00Z", "2023-01-01T12:00:00Z")
	require.NoError(t, err)
	tk, err = svc.CheckInTicket(tk)
	require.NoError(t, err)
	require.NoError(t, pub.PublishAll(ctx, tk.Events()))

	consumeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var got []eventbus.Envelope
	_ = consumer.Consume(consumeCtx, func(_ context.Context, env eventbus.Envelope) error {
		got = append(got, env)
		if len(got) == 2 {
			cancel()
		}
		return nil
	})

	require.Len(t, got, 2)
	assert.Equal(t, booking.EventTicketReserved, got[0].DetailType)
	assert.Equal(t, booking.EventTicketCheckedIn, got[1].DetailType)
	assert.Equal(t, eventbus.SourceBooking, got[0].Source)
	assert.Equal(t, tk.ID(), got[1].AggregateID)
}
