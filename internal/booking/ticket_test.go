package booking

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/robertarktes/ticket-booking-and-payments/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	fixedNow = time.Date(2023, 1, 1, 8, 0, 0, 0, time.UTC)
	fixedIDs = func() string { return "ticket-1" }
	clock    = func() time.Time { return fixedNow }
)

func flightTime(t *testing.T) FlightTime {
	t.Helper()
	ft, err := NewFlightTime("2023-01-01T10:00:00Z", "2023-01-01T12:00:00Z")
	require.NoError(t, err)
	return ft
}

func TestNewFlightTime(t *testing.T) {
	ft, err := NewFlightTime("2023-01-01T10:00:00Z", "2023-01-01T12:30:59Z")
	require.NoError(t, err)
	assert.Equal(t, int64(150), ft.DurationInMinutes())
	assert.InDelta(t, 2.5, ft.DurationInHours(), 1e-9)

	same, err := NewFlightTime("2023-01-01T11:00:00+01:00", "2023-01-01T12:30:59Z")
	require.NoError(t, err)
	assert.True(t, ft.Equals(same))

	local, err := NewFlightTime("2023-01-01T10:00", "2023-01-02")
	require.NoError(t, err)
	assert.Equal(t, int64(840), local.DurationInMinutes())
}

func TestNewFlightTime_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"empty departure":   {"", "2023-01-01T12:00:00Z"},
		"blank arrival":     {"2023-01-01T10:00:00Z", "  "},
		"unparsable":        {"tomorrow", "2023-01-01T12:00:00Z"},
		"arrival before":    {"2023-01-01T12:00:00Z", "2023-01-01T10:00:00Z"},
		"same instant":      {"2023-01-01T10:00:00Z", "2023-01-01T10:00:00Z"},
		"unparsable arrive": {"2023-01-01T10:00:00Z", "13/01/2023"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewFlightTime(c[0], c[1])
			assert.True(t, errors.Is(err, domain.ErrValidation), "got %v", err)
		})
	}
}

func TestNewTicket_Fresh(t *testing.T) {
	tk, err := NewTicket(TicketProps{
		FlightID:    "FL1",
		PassengerID: "P1",
		SeatNumber:  "12A",
		BookingDate: fixedNow,
		FlightTime:  flightTime(t),
	}, fixedIDs, clock)
	require.NoError(t, err)

	assert.Equal(t, "ticket-1", tk.ID())
	assert.Equal(t, TicketStatusReserved, tk.Status())

	events := tk.Events()
	require.Len(t, events, 1)
	reserved, ok := events[0].(TicketReserved)
	require.True(t, ok)
	assert.Equal(t, EventTicketReserved, reserved.EventName())
	assert.Equal(t, "ticket-1", reserved.AggregateID())
	assert.Equal(t, "FL1", reserved.FlightID)
	assert.Equal(t, "12A", reserved.SeatNumber)
	assert.True(t, fixedNow.Equal(reserved.OccurredAt()))
}

func TestNewTicket_Rehydrated(t *testing.T) {
	for _, status := range []TicketStatus{TicketStatusReserved, TicketStatusCheckedIn, TicketStatusCancelled} {
		tk, err := NewTicket(TicketProps{TicketID: "existing", Status: status, FlightTime: flightTime(t)}, fixedIDs, clock)
		require.NoError(t, err)
		assert.Equal(t, "existing", tk.ID())
		assert.Equal(t, status, tk.Status())
		assert.Empty(t, tk.Events())
	}
}

func TestNewTicket_Invalid(t *testing.T) {
	_, err := NewTicket(TicketProps{FlightID: "FL1"}, fixedIDs, clock)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = NewTicket(TicketProps{FlightTime: flightTime(t), Status: "BOARDED"}, fixedIDs, clock)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestTicket_CheckIn(t *testing.T) {
	tk, err := NewTicket(TicketProps{FlightID: "FL1", FlightTime: flightTime(t)}, fixedIDs, clock)
	require.NoError(t, err)
	tk = tk.ClearEvents()

	checked, err := tk.CheckIn(fixedNow)
	require.NoError(t, err)
	assert.Equal(t, TicketStatusCheckedIn, checked.Status())
	require.Len(t, checked.Events(), 1)
	assert.Equal(t, EventTicketCheckedIn, checked.Events()[0].EventName())

	assert.Equal(t, TicketStatusReserved, tk.Status(), "receiver is not modified")
	assert.Empty(t, tk.Events())

	again, err := checked.CheckIn(fixedNow)
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
	assert.Equal(t, TicketStatusCheckedIn, again.Status())
	assert.Len(t, again.Events(), 1, "failed transition records nothing")
}

func TestTicket_CheckInCancelled(t *testing.T) {
	tk, err := NewTicket(TicketProps{TicketID: "t", Status: TicketStatusCancelled, FlightTime: flightTime(t)}, fixedIDs, clock)
	require.NoError(t, err)
	_, err = tk.CheckIn(fixedNow)
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
}

func TestTicket_Cancel(t *testing.T) {
	tk, err := NewTicket(TicketProps{TicketID: "t", Status: TicketStatusReserved, FlightTime: flightTime(t)}, fixedIDs, clock)
	require.NoError(t, err)

	cancelled, err := tk.Cancel(fixedNow)
	require.NoError(t, err)
	assert.Equal(t, TicketStatusCancelled, cancelled.Status())
	require.Len(t, cancelled.Events(), 1)
	assert.Equal(t, EventTicketCancelled, cancelled.Events()[0].EventName())

	twice, err := cancelled.Cancel(fixedNow)
	require.NoError(t, err, "cancelling twice is allowed")
	assert.Len(t, twice.Events(), 2)
}

func TestTicket_CancelCheckedIn(t *testing.T) {
	tk, err := NewTicket(TicketProps{TicketID: "t", Status: TicketStatusCheckedIn, FlightTime: flightTime(t)}, fixedIDs, clock)
	require.NoError(t, err)

	got, err := tk.Cancel(fixedNow)
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
	assert.Equal(t, TicketStatusCheckedIn, got.Status())
	assert.Empty(t, got.Events())
}

func TestTicket_EventsAreCopies(t *testing.T) {
	tk, err := NewTicket(TicketProps{FlightTime: flightTime(t)}, fixedIDs, clock)
	require.NoError(t, err)

	events := tk.Events()
	events[0] = nil
	assert.NotNil(t, tk.Events()[0])

	cleared := tk.ClearEvents()
	assert.Empty(t, cleared.Events())
	assert.Empty(t, cleared.ClearEvents().Events())
	assert.Len(t, tk.Events(), 1)
}

func TestTicketService(t *testing.T) {
	svc := NewTicketService(fixedIDs, clock)

	tk, err := svc.CreateTicket("FL1", "P1", "12A", "2023-01-01T10:00:00Z", "2023-01-01T12:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "ticket-1", tk.ID())
	assert.True(t, fixedNow.Equal(tk.BookingDate()))
	assert.Equal(t, int64(120), tk.FlightTime().DurationInMinutes())

	_, err = svc.CreateTicket("FL1", "P1", "12A", "2023-01-01T12:00:00Z", "2023-01-01T10:00:00Z")
	assert.True(t, errors.Is(err, domain.ErrValidation))

	tk, err = svc.CheckInTicket(tk)
	require.NoError(t, err)
	_, err = svc.CancelTicket(tk)
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
}
