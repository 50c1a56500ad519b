package order

import (
	"fmt"
	"strings"
	"time"

	"pos/internal/core/domain/model/kernel"
)

// NewOrderNumber generates a human-readable order number of the form
// ORD-YYYYMMDD-XXXXXX, where the suffix is random. The number is assigned
// once at creation and stays stable for the order's life; uniqueness is
// additionally enforced by the persistence layer.
func NewOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(kernel.NewUUID().String()[:6])
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}
