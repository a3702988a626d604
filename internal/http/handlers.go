package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	bookinguc "github.com/robertarktes/ticket-booking-and-payments/internal/booking/usecase"
	"github.com/robertarktes/ticket-booking-and-payments/internal/domain"
	paymentuc "github.com/robertarktes/ticket-booking-and-payments/internal/payment/usecase"
	"github.com/shopspring/decimal"
)

// Handlers is the HTTP boundary for both bounded contexts.
type Handlers struct {
	reserve  *bookinguc.ReserveTicket
	checkIn  *bookinguc.CheckInTicket
	cancel   *bookinguc.CancelTicket
	tickets  *bookinguc.TicketQueries
	process  *paymentuc.ProcessPayment
	refund   *paymentuc.IssueRefund
	payments *paymentuc.PaymentQueries
	ready    func(r *http.Request) error
}

type UseCases struct {
	ReserveTicket  *bookinguc.ReserveTicket
	CheckInTicket  *bookinguc.CheckInTicket
	CancelTicket   *bookinguc.CancelTicket
	TicketQueries  *bookinguc.TicketQueries
	ProcessPayment *paymentuc.ProcessPayment
	IssueRefund    *paymentuc.IssueRefund
	PaymentQueries *paymentuc.PaymentQueries
}

// NewHandlers wires the use cases. ready backs /v1/readyz; nil means always ready.
func NewHandlers(uc UseCases, ready func(r *http.Request) error) *Handlers {
	if ready == nil {
		ready = func(*http.Request) error { return nil }
	}
	return &Handlers{
		reserve:  uc.ReserveTicket,
		checkIn:  uc.CheckInTicket,
		cancel:   uc.CancelTicket,
		tickets:  uc.TicketQueries,
		process:  uc.ProcessPayment,
		refund:   uc.IssueRefund,
		payments: uc.PaymentQueries,
		ready:    ready,
	}
}

// failure holds the client-facing messages of one route.
type failure struct {
	notFound     string
	invalidState string
	internal     string
}

func (h *Handlers) ReserveTicket(w http.ResponseWriter, r *http.Request) {
	var req bookinguc.ReserveTicketRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if blank(req.FlightID, req.PassengerID, req.SeatNumber, req.DepartureTime, req.ArrivalTime) {
		writeMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	resp, err := h.reserve.Execute(r.Context(), req)
	if err != nil {
		writeError(w, r, err, failure{internal: "Error reserving ticket"})
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handlers) CheckInTicket(w http.ResponseWriter, r *http.Request) {
	resp, err := h.checkIn.Execute(r.Context(), bookinguc.CheckInTicketRequest{TicketID: chi.URLParam(r, "id")})
	if err != nil {
		writeError(w, r, err, failure{
			notFound:     "Ticket not found",
			invalidState: "Ticket is not in a valid state for check-in",
			internal:     "Error checking in ticket",
		})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) CancelTicket(w http.ResponseWriter, r *http.Request) {
	resp, err := h.cancel.Execute(r.Context(), bookinguc.CancelTicketRequest{TicketID: chi.URLParam(r, "id")})
	if err != nil {
		writeError(w, r, err, failure{
			notFound:     "Ticket not found",
			invalidState: "Cannot cancel checked-in ticket",
			internal:     "Error cancelling ticket",
		})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) GetTicket(w http.ResponseWriter, r *http.Request) {
	resp, err := h.tickets.GetTicket(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, failure{notFound: "Ticket not found", internal: "Error loading ticket"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) ListTicketsByFlight(w http.ResponseWriter, r *http.Request) {
	resp, err := h.tickets.ListTicketsByFlight(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, failure{internal: "Error listing tickets"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) ListTicketsByPassenger(w http.ResponseWriter, r *http.Request) {
	resp, err := h.tickets.ListTicketsByPassenger(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, failure{internal: "Error listing tickets"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type processPaymentBody struct {
	TicketID      string           `json:"ticketId"`
	Amount        *decimal.Decimal `json:"amount"`
	Currency      string           `json:"currency"`
	PaymentMethod string           `json:"paymentMethod"`
}

func (h *Handlers) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var body processPaymentBody
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Amount == nil || body.Amount.IsZero() || blank(body.TicketID, body.Currency, body.PaymentMethod) {
		writeMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	resp, err := h.process.Execute(r.Context(), paymentuc.ProcessPaymentRequest{
		TicketID:      body.TicketID,
		Amount:        *body.Amount,
		Currency:      body.Currency,
		PaymentMethod: body.PaymentMethod,
	})
	if err != nil {
		writeError(w, r, err, failure{internal: "Error processing payment"})
		return
	}
	writeJSON(w, http.StatusCreated, newPaymentJSON(resp))
}

func (h *Handlers) IssueRefund(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Reason string `json:"reason"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	id := chi.URLParam(r, "id")
	if blank(id, body.Reason) {
		writeMessage(w, http.StatusBadRequest, "Payment ID and reason are required")
		return
	}
	resp, err := h.refund.Execute(r.Context(), paymentuc.IssueRefundRequest{PaymentID: id, Reason: body.Reason})
	if err != nil {
		writeError(w, r, err, failure{
			notFound:     "Payment not found",
			invalidState: "Invalid payment state for refund",
			internal:     "Error issuing refund",
		})
		return
	}
	writeJSON(w, http.StatusOK, newPaymentJSON(resp))
}

func (h *Handlers) GetPayment(w http.ResponseWriter, r *http.Request) {
	resp, err := h.payments.GetPayment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, failure{notFound: "Payment not found", internal: "Error loading payment"})
		return
	}
	writeJSON(w, http.StatusOK, newPaymentJSON(resp))
}

func (h *Handlers) ListPaymentsByTicket(w http.ResponseWriter, r *http.Request) {
	resp, err := h.payments.ListPaymentsByTicket(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, failure{internal: "Error listing payments"})
		return
	}
	out := make([]paymentJSON, 0, len(resp))
	for _, p := range resp {
		out = append(out, newPaymentJSON(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handlers) Readyz(w http.ResponseWriter, r *http.Request) {
	if err := h.ready(r); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Message: "Not ready", Error: err.Error()})
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}

// paymentJSON renders the amount as a JSON number instead of decimal's
// default quoted string.
type paymentJSON struct {
	paymentuc.PaymentResponse
	Amount json.Number `json:"amount"`
}

func newPaymentJSON(p paymentuc.PaymentResponse) paymentJSON {
	return paymentJSON{PaymentResponse: p, Amount: json.Number(p.Amount.String())}
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Message: msg})
}

func writeError(w http.ResponseWriter, r *http.Request, err error, f failure) {
	status, msg := http.StatusInternalServerError, f.internal
	switch {
	case errors.Is(err, domain.ErrValidation):
		status, msg = http.StatusBadRequest, "Invalid request"
	case errors.Is(err, domain.ErrNotFound):
		status, msg = http.StatusNotFound, orDefault(f.notFound, "Not found")
	case errors.Is(err, domain.ErrInvalidState):
		status, msg = http.StatusBadRequest, orDefault(f.invalidState, "Invalid state")
	}
	if status == http.StatusInternalServerError {
		LoggerFrom(r.Context()).WithError(err).Error(msg)
	}
	writeJSON(w, status, errorBody{Message: msg, Error: err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if r.Body == nil || r.ContentLength == 0 {
		writeMessage(w, http.StatusBadRequest, "Request body is required")
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: "Invalid request body", Error: err.Error()})
		return false
	}
	return true
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
