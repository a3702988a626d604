package mongo_test

import (
	"context"
	"testing"
	"time"

	"github.com/robertarktes/ticket-booking-and-payments/internal/adapters/mongo"
	"github.com/robertarktes/ticket-booking-and-payments/internal/booking"
	"github.com/robertarktes/ticket-booking-and-payments/internal/eventbus"
	"github.com/robertarktes/ticket-booking-and-payments/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestAuditLogger(t *testing.T) {
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	mongoContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp"),
		},
		Started: true,
	})
	require.NoError(t, err)
	defer mongoContainer.Terminate(ctx)

	host, err := mongoContainer.Host(ctx)
	require.NoError(t, err)
	port, err := mongoContainer.MappedPort(ctx, "27017")
	require.NoError(t, err)

	client, err := mongodriver.Connect(ctx, options.Client().ApplyURI("mongodb://"+host+":"+port.Port()))
	require.NoError(t, err)
	defer client.Disconnect(ctx)

	audit := mongo.NewAuditLogger(client.Database("travier_test"), observability.NopLogger())
	require.NoError(t, audit.EnsureIndexes(ctx))

	base := time.Date(2023, 1, 1, 8, 0, 0, 0, time.UTC)
	tick := 0
	svc := booking.NewTicketService(nil, func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	})
	tk, err := svc.CreateTicket("FL1", "P1", "12A", "2023-01-01T10:00:00Z", "2023-01-01T12:00:00Z")
	require.NoError(t, err)
	tk, err = svc.CancelTicket(tk)
	require.NoError(t, err)

	for _, e := range tk.Events() {
		env, err := eventbus.Wrap(eventbus.SourceBooking, e)
		require.NoError(t, err)
		require.NoError(t, audit.LogEvent(ctx, env))
	}

	history, err := audit.History(ctx, tk.ID())
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, booking.EventTicketReserved, history[0].DetailType)
	assert.Equal(t, booking.EventTicketCancelled, history[1].DetailType)
	assert.Equal(t, "FL1", history[0].Detail["flightId"])
}
