package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/keshster98/cashfly-backend/internal/service/booking"
	"github.com/keshster98/cashfly-backend/internal/ticket"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Flight string   `json:"flight"`
	Seats  []string `json:"seats"`
}

type paymentRequest struct {
	BillID string `json:"billplzId"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup, admin ...gin.HandlerFunc) {
	router.POST("", h.create)
	router.GET("", guarded(admin, h.list)...)
	router.GET("/:id", h.get)
	router.GET("/:id/qr", h.qr)
	router.PUT("/:id/payment", guarded(admin, h.pay)...)
	router.DELETE("/:id", h.cancel)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	var input booking.CreateBookingInput
	if err := copier.Copy(&input, &req); err != nil {
		writeError(c, err)
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *BookingHandler) list(c *gin.Context) {
	list, err := h.service.ListBookings(c.Request.Context(), c.Query("flight"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *BookingHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) pay(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req paymentRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.service.RecordPayment(c.Request.Context(), id, booking.PaymentInput{BillID: req.BillID})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := h.service.CancelBooking(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// qr renders the boarding pass as a PNG; ?size= sets the edge in pixels.
func (h *BookingHandler) qr(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	size, _ := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(ticket.DefaultSize)))
	if size > 1024 {
		size = 1024
	}
	png, err := ticket.PNG(b, size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
