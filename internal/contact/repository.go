package contact

import (
	"context"

	"storefront/internal/domain"
)

// Repository stores contact-form messages and checkout billing details.
type Repository interface {
	SaveMessage(ctx context.Context, msg *domain.ContactMessage) error
	SaveDetails(ctx context.Context, details *domain.BillingDetails) error
}
