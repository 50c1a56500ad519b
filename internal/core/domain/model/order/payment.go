package order

import (
	"fmt"
	"strings"

	"pos/internal/pkg/errs"
)

// PaymentMethod identifies how an order is paid.
type PaymentMethod int

const (
	// UnknownPaymentMethod represents an invalid or undefined method.
	UnknownPaymentMethod PaymentMethod = iota

	// Cash payment at the counter.
	Cash

	// Card payment through the terminal.
	Card

	// QR payment through the external QR provider.
	QR
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		UnknownPaymentMethod: "Unknown",
		Cash:                 "Cash",
		Card:                 "Card",
		QR:                   "QR",
	}
}

// Validate checks if the PaymentMethod value is valid.
func (m PaymentMethod) Validate() error {
	if m != Cash && m != Card && m != QR {
		return errs.NewValueIsInvalidErrorWithCause("payment method is invalid",
			fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// String returns the human-readable name of the payment method.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "Unknown"
}

// PaymentMethodFromString parses a payment method name, case-insensitively.
func PaymentMethodFromString(name string) (PaymentMethod, error) {
	switch strings.ToLower(name) {
	case "cash":
		return Cash, nil
	case "card":
		return Card, nil
	case "qr":
		return QR, nil
	default:
		return UnknownPaymentMethod, errs.NewValueIsInvalidErrorWithCause("payment method is invalid",
			fmt.Errorf("%q is not a valid payment method name", name))
	}
}

// RefundChannel maps a payment method to the refund channel money flows
// back through when a paid order is cancelled or returned.
func (m PaymentMethod) RefundChannel() RefundMethod {
	switch m {
	case Card:
		return RefundCard
	case QR:
		return RefundQR
	default:
		return RefundCash
	}
}

// PaymentStatus tracks whether an order has been paid. It is a historical
// record: cancellation never rewrites it, refunds are separate ledger
// facts.
type PaymentStatus int

const (
	// UnknownPaymentStatus represents an invalid or undefined status.
	UnknownPaymentStatus PaymentStatus = iota

	// PaymentPending means no successful charge has happened yet.
	PaymentPending

	// PaymentSuccess means the charge went through.
	PaymentSuccess

	// PaymentFailed means the charge was attempted and declined.
	PaymentFailed
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		UnknownPaymentStatus: "Unknown",
		PaymentPending:       "Pending",
		PaymentSuccess:       "Success",
		PaymentFailed:        "Failed",
	}
}

// Validate checks if the PaymentStatus value is valid.
func (s PaymentStatus) Validate() error {
	if s != PaymentPending && s != PaymentSuccess && s != PaymentFailed {
		return errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// String returns the human-readable name of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// PaymentStatusFromString parses a payment status name, case-insensitively.
func PaymentStatusFromString(name string) (PaymentStatus, error) {
	switch strings.ToLower(name) {
	case "pending":
		return PaymentPending, nil
	case "success":
		return PaymentSuccess, nil
	case "failed":
		return PaymentFailed, nil
	default:
		return UnknownPaymentStatus, errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
			fmt.Errorf("%q is not a valid payment status name", name))
	}
}

// RefundMethod identifies the channel a refund obligation is settled
// through.
type RefundMethod int

const (
	// UnknownRefundMethod represents an invalid or undefined method.
	UnknownRefundMethod RefundMethod = iota

	// RefundCash hands cash back at the counter.
	RefundCash

	// RefundCard reverses the card charge.
	RefundCard

	// RefundQR reverses the QR provider charge.
	RefundQR
)

func getRefundMethodStrings() map[RefundMethod]string {
	return map[RefundMethod]string{
		UnknownRefundMethod: "Unknown",
		RefundCash:          "Cash",
		RefundCard:          "Card",
		RefundQR:            "QR",
	}
}

// Validate checks if the RefundMethod value is valid.
func (m RefundMethod) Validate() error {
	if m != RefundCash && m != RefundCard && m != RefundQR {
		return errs.NewValueIsInvalidErrorWithCause("refund method is invalid",
			fmt.Errorf("%d is not a valid refund method", m))
	}
	return nil
}

// String returns the human-readable name of the refund method.
func (m RefundMethod) String() string {
	if str, ok := getRefundMethodStrings()[m]; ok {
		return str
	}
	return "Unknown"
}

// RefundMethodFromString parses a refund method name, case-insensitively.
func RefundMethodFromString(name string) (RefundMethod, error) {
	switch strings.ToLower(name) {
	case "cash":
		return RefundCash, nil
	case "card":
		return RefundCard, nil
	case "qr":
		return RefundQR, nil
	default:
		return UnknownRefundMethod, errs.NewValueIsInvalidErrorWithCause("refund method is invalid",
			fmt.Errorf("%q is not a valid refund method name", name))
	}
}
