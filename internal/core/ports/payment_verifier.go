package ports

import (
	"context"

	"pos/internal/core/domain/model/kernel"
)

// PaymentVerifier checks with the external payment provider whether a
// charge referenced by the terminal actually went through. Used by the
// payment confirmation flow for card and QR payments; cash is trusted to
// the operating staff and confirmed without verification.
type PaymentVerifier interface {
	Verify(ctx context.Context, orderID kernel.UUID, reference string) (bool, error)
}
