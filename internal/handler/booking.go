package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/yourorg/rentalhub/internal/domain"
	"github.com/yourorg/rentalhub/internal/observability/metrics"
	"github.com/yourorg/rentalhub/internal/security/audit"
	"github.com/yourorg/rentalhub/internal/service"
)

// BookingHandler handles amenity booking endpoints. All of them require an
// authenticated caller; lifecycle rules live in the booking service.
type BookingHandler struct {
	bookingService *service.BookingService
	users          domain.UserRepository
	audit          *audit.Logger
	logger         *slog.Logger
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(bookingService *service.BookingService, users domain.UserRepository, auditLog *audit.Logger, logger *slog.Logger) *BookingHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &BookingHandler{
		bookingService: bookingService,
		users:          users,
		audit:          auditLog,
		logger:         logger,
	}
}

// BookingCreateRequest represents a new booking.
type BookingCreateRequest struct {
	AmenityID   int64            `json:"amenity_id"`
	BookingDate domain.DateOnly  `json:"booking_date"`
	StartTime   domain.TimeOfDay `json:"start_time"`
	EndTime     domain.TimeOfDay `json:"end_time"`
	Notes       string           `json:"notes"`
}

// BookingUpdateRequest carries the mutable booking fields; nil fields are
// left unchanged.
type BookingUpdateRequest struct {
	Status      *string           `json:"status"`
	AdminNotes  *string           `json:"admin_notes"`
	Notes       *string           `json:"notes"`
	BookingDate *domain.DateOnly  `json:"booking_date"`
	StartTime   *domain.TimeOfDay `json:"start_time"`
	EndTime     *domain.TimeOfDay `json:"end_time"`
}

// List handles GET /bookings. Admins see every booking, residents their own.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	bookings, err := h.bookingService.List(r.Context(), caller)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

// Get handles GET /bookings/{id}.
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	booking, err := h.bookingService.Get(r.Context(), caller, id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// Create handles POST /bookings.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req BookingCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	booking := &domain.Booking{
		AmenityID:   req.AmenityID,
		BookingDate: req.BookingDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Notes:       req.Notes,
	}

	if err := h.bookingService.Create(r.Context(), caller, booking); err != nil {
		writeError(w, h.logger, err)
		return
	}

	// Re-read so the response carries the denormalized user/amenity fields.
	created, err := h.bookingService.Get(r.Context(), caller, booking.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	metrics.ObserveBookingOperation("create", "ok")
	h.audit.LogAction(r.Context(), caller.ID, "create", "booking", strconv.FormatInt(booking.ID, 10), "ok")
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /bookings/{id}.
func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req BookingUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	booking, err := h.bookingService.Update(r.Context(), caller, id, service.BookingUpdate{
		Status:      req.Status,
		AdminNotes:  req.AdminNotes,
		Notes:       req.Notes,
		BookingDate: req.BookingDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	metrics.ObserveBookingOperation("update", "ok")
	h.audit.LogAction(r.Context(), caller.ID, "update", "booking", strconv.FormatInt(id, 10), "ok")
	writeJSON(w, http.StatusOK, booking)
}

// Delete handles DELETE /bookings/{id}.
func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.bookingService.Delete(r.Context(), caller, id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	metrics.ObserveBookingOperation("delete", "ok")
	h.audit.LogAction(r.Context(), caller.ID, "delete", "booking", strconv.FormatInt(id, 10), "ok")
	writeJSON(w, http.StatusOK, map[string]string{"message": "Booking deleted successfully"})
}
