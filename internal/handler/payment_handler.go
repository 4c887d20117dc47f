package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/commercekit/payments-stripe/internal/domain"
	"github.com/commercekit/payments-stripe/internal/dto"
	"github.com/commercekit/payments-stripe/internal/service"
	"github.com/commercekit/payments-stripe/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaymentHandler handles the checkout charge and refund endpoints.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Charge handles POST /checkout/charge. The checkout submits an HTML form:
// order_guid, customer_id, order_total and the stripeToken field written by
// the client-side widget.
func (h *PaymentHandler) Charge(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		response.BadRequest(c, "invalid form submission")
		return
	}
	form := c.Request.PostForm

	if messages := h.paymentService.ValidatePaymentForm(form); len(messages) > 0 {
		response.ValidationErrors(c, messages)
		return
	}

	orderGUID, err := uuid.Parse(form.Get("order_guid"))
	if err != nil {
		response.BadRequest(c, "order_guid must be a valid UUID")
		return
	}

	orderTotal, err := strconv.ParseFloat(form.Get("order_total"), 64)
	if err != nil || orderTotal <= 0 {
		response.BadRequest(c, "order_total must be a positive decimal amount")
		return
	}

	customerID := form.Get("customer_id")
	if customerID == "" {
		response.BadRequest(c, "customer_id is required")
		return
	}

	result, err := h.paymentService.ProcessPayment(c.Request.Context(), &service.ProcessPaymentRequest{
		OrderGUID:    orderGUID,
		CustomerID:   customerID,
		OrderTotal:   orderTotal,
		CustomValues: h.paymentService.GetPaymentInfo(form),
	})
	if err != nil {
		h.writeChargeError(c, err)
		return
	}

	response.Success(c, dto.FromProcessPaymentResult(result))
}

func notConfigured(c *gin.Context) {
	response.Error(c, http.StatusConflict, "NOT_CONFIGURED", "stripe integration is not installed or configured")
}

func (h *PaymentHandler) writeChargeError(c *gin.Context, err error) {
	var declined *domain.ChargeDeclinedError
	switch {
	case errors.Is(err, domain.ErrTokenMissing), errors.Is(err, domain.ErrTokenInvalid):
		response.ValidationErrors(c, []string{"Token was not supplied or invalid"})
	case errors.Is(err, domain.ErrCustomerNotFound):
		response.NotFound(c, "customer cannot be loaded")
	case errors.Is(err, domain.ErrIncompleteAddress):
		response.BadRequest(c, "shipping address is missing state or country")
	case errors.Is(err, domain.ErrSettingsNotFound):
		notConfigured(c)
	case errors.As(err, &declined):
		response.PaymentRequired(c, declined.Error())
	default:
		response.BadGateway(c, err.Error())
	}
}

// Refund handles POST /payments/refund.
func (h *PaymentHandler) Refund(c *gin.Context) {
	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.paymentService.RefundPayment(c.Request.Context(), &service.RefundPaymentRequest{
		ChargeID:       req.ChargeID,
		OrderTotal:     req.OrderTotal,
		AmountToRefund: req.AmountToRefund,
	})
	if err != nil {
		h.writeRefundError(c, err)
		return
	}

	response.Success(c, dto.FromRefundPaymentResult(result))
}

func (h *PaymentHandler) writeRefundError(c *gin.Context, err error) {
	var failed *domain.RefundFailedError
	switch {
	case errors.Is(err, domain.ErrNotAChargeID):
		response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrSettingsNotFound):
		notConfigured(c)
	case errors.As(err, &failed):
		response.BadGateway(c, failed.Error())
	default:
		response.BadGateway(c, err.Error())
	}
}

// AdditionalFee handles POST /checkout/fee: quotes the merchant surcharge for
// a cart so the storefront can fold it into the order total before charging.
func (h *PaymentHandler) AdditionalFee(c *gin.Context) {
	var req dto.FeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	fee, err := h.paymentService.AdditionalHandlingFee(c.Request.Context(), req.Items)
	if err != nil {
		if errors.Is(err, domain.ErrSettingsNotFound) {
			notConfigured(c)
			return
		}
		response.InternalError(c, err)
		return
	}

	response.Success(c, dto.FeeResponse{AdditionalFee: fee})
}

// Capture handles POST /payments/:chargeId/capture. Always unsupported.
func (h *PaymentHandler) Capture(c *gin.Context) {
	if err := h.paymentService.Capture(c.Request.Context(), c.Param("chargeId")); err != nil {
		response.NotImplemented(c, err.Error())
		return
	}
	response.Success(c, nil)
}

// Void handles POST /payments/:chargeId/void. Always unsupported.
func (h *PaymentHandler) Void(c *gin.Context) {
	if err := h.paymentService.Void(c.Request.Context(), c.Param("chargeId")); err != nil {
		response.NotImplemented(c, err.Error())
		return
	}
	response.Success(c, nil)
}

// Capabilities handles GET /capabilities.
func (h *PaymentHandler) Capabilities(c *gin.Context) {
	response.Success(c, h.paymentService.Capabilities())
}
