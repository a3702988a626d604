package eventbus

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/robertarktes/ticket-booking-and-payments/internal/booking"
	"github.com/robertarktes/ticket-booking-and-payments/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	at := time.Date(2023, 1, 1, 9, 0, 0, 0, time.UTC)
	ev := booking.TicketCheckedIn{
		EventHeader: domain.NewEventHeader(booking.EventTicketCheckedIn, "t-1", at),
		TicketID:    "t-1",
	}

	b, err := Encode(SourceBooking, ev)
	require.NoError(t, err)

	env, err := Decode(b)
	require.NoError(t, err)
	assert.Equal(t, SourceBooking, env.Source)
	assert.Equal(t, "TicketCheckedIn", env.DetailType)
	assert.Equal(t, "t-1", env.AggregateID)
	assert.True(t, at.Equal(env.Time))
	assert.Equal(t, "com.travier.booking.TicketCheckedIn", env.RoutingKey())

	var detail map[string]any
	require.NoError(t, json.Unmarshal(env.Detail, &detail))
	assert.Equal(t, "TicketCheckedIn", detail["eventName"])
	assert.Equal(t, "t-1", detail["ticketId"])
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("not json"))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"source":"x"}`))
	assert.Error(t, err)
}

func TestWrapNilEvent(t *testing.T) {
	_, err := Wrap(SourcePayment, nil)
	assert.Error(t, err)
}
