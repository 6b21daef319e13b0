package donation

import (
	"github.com/essentials/backend/internal/domain/shared"
)

// DonationRepository manages Donation persistence including line items
type DonationRepository interface {
	shared.OrgRepository[Donation]
}
