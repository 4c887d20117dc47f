package dto

import (
	"github.com/commercekit/payments-stripe/internal/domain"
	"github.com/commercekit/payments-stripe/internal/fees"
	"github.com/commercekit/payments-stripe/internal/service"
)

// ChargeResponse reports the outcome of a checkout charge.
type ChargeResponse struct {
	PaymentStatus     domain.PaymentStatus `json:"payment_status"`
	TransactionID     string               `json:"transaction_id"`
	TransactionResult string               `json:"transaction_result"`
}

// FromProcessPaymentResult converts a service result to a ChargeResponse.
func FromProcessPaymentResult(r *service.ProcessPaymentResult) *ChargeResponse {
	return &ChargeResponse{
		PaymentStatus:     r.NewPaymentStatus,
		TransactionID:     r.TransactionID,
		TransactionResult: r.TransactionResult,
	}
}

// RefundRequest asks for a full or partial refund of a prior charge.
type RefundRequest struct {
	ChargeID       string  `json:"charge_id" binding:"required"`
	OrderTotal     float64 `json:"order_total" binding:"required,gt=0"`
	AmountToRefund float64 `json:"amount_to_refund" binding:"required,gt=0"`
}

// RefundResponse reports the outcome of a refund the gateway accepted.
type RefundResponse struct {
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
	IsPartial     bool                 `json:"is_partial"`
	Warnings      []string             `json:"warnings,omitempty"`
}

// FromRefundPaymentResult converts a service result to a RefundResponse.
func FromRefundPaymentResult(r *service.RefundPaymentResult) *RefundResponse {
	return &RefundResponse{
		PaymentStatus: r.NewPaymentStatus,
		IsPartial:     r.IsPartial,
		Warnings:      r.Warnings,
	}
}

// FeeRequest carries the cart for a surcharge quote.
type FeeRequest struct {
	Items []fees.CartItem `json:"items" binding:"required"`
}

// FeeResponse is the quoted surcharge.
type FeeResponse struct {
	AdditionalFee float64 `json:"additional_fee"`
}

// SettingsModel is the admin configure page round-trip model.
type SettingsModel struct {
	SecretKey                 string  `json:"secret_key"`
	PublishableKey            string  `json:"publishable_key"`
	AdditionalFee             float64 `json:"additional_fee" binding:"gte=0"`
	AdditionalFeeIsPercentage bool    `json:"additional_fee_is_percentage"`
}
