package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/wanderlust/internal/domain"
	"github.com/Domenick1991/wanderlust/internal/service/booking"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	ListingID int64  `json:"listingId" binding:"required"`
	CheckIn   string `json:"checkIn" binding:"required"`
	CheckOut  string `json:"checkOut" binding:"required"`
	Guests    int    `json:"guests"`
}

type bookingResponse struct {
	ID           int64  `json:"id"`
	ListingID    int64  `json:"listingId"`
	ListingTitle string `json:"listingTitle,omitempty"`
	CustomerID   int64  `json:"customerId"`
	OwnerID      int64  `json:"ownerId"`
	CheckIn      string `json:"checkIn"`
	CheckOut     string `json:"checkOut"`
	Guests       int    `json:"guests"`
	TotalPrice   int64  `json:"totalPrice"`
	Status       string `json:"status"`
	CreatedAt    string `json:"createdAt,omitempty"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("/mine", h.mine)
	router.GET("/manage", h.manage)
	router.GET("/admin", h.all)
	router.GET("/:id", h.get)
	router.POST("/:id/confirm", h.confirm)
	router.POST("/:id/reject", h.reject)
	router.DELETE("/:id", h.cancel)
	router.DELETE("/:id/admin", h.delete)
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	resp := bookingResponse{
		ID:           b.ID,
		ListingID:    b.ListingID,
		ListingTitle: b.ListingTitle,
		CustomerID:   b.CustomerID,
		OwnerID:      b.ListingOwnerID,
		CheckIn:      b.CheckIn.Format(dateLayout),
		CheckOut:     b.CheckOut.Format(dateLayout),
		Guests:       b.Guests,
		TotalPrice:   b.TotalPrice,
		Status:       string(b.Status),
	}
	if !b.CreatedAt.IsZero() {
		resp.CreatedAt = b.CreatedAt.Format(time.RFC3339)
	}
	return resp
}

func toBookingResponses(bookings []domain.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	return out
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// create godoc
// @Summary  Request a booking
// @Tags     bookings
// @Accept   json
// @Produce  json
// @Param    request body createBookingRequest true "booking"
// @Success  201 {object} bookingResponse
// @Security BearerAuth
// @Router   /api/bookings [post]
func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "listingId, checkIn and checkOut are required")
		return
	}
	checkIn, ok1 := parseDate(req.CheckIn)
	checkOut, ok2 := parseDate(req.CheckOut)
	if !ok1 || !ok2 {
		badRequest(c, "dates must be formatted as YYYY-MM-DD")
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), identity(c), booking.CreateBookingInput{
		ListingID: req.ListingID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Guests:    req.Guests,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(b))
}

func (h *BookingHandler) get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	b, err := h.service.GetBooking(c.Request.Context(), identity(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) mine(c *gin.Context) {
	bookings, err := h.service.MyBookings(c.Request.Context(), identity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(bookings))
}

func (h *BookingHandler) manage(c *gin.Context) {
	bookings, err := h.service.OwnerBookings(c.Request.Context(), identity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(bookings))
}

func (h *BookingHandler) all(c *gin.Context) {
	bookings, err := h.service.AllBookings(c.Request.Context(), identity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(bookings))
}

func (h *BookingHandler) confirm(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	b, err := h.service.ConfirmBooking(c.Request.Context(), identity(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) reject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	b, err := h.service.RejectBooking(c.Request.Context(), identity(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.CancelBooking(c.Request.Context(), identity(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking cancelled"})
}

func (h *BookingHandler) delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteBooking(c.Request.Context(), identity(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking deleted"})
}
