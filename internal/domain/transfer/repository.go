package transfer

import (
	"github.com/essentials/backend/internal/domain/shared"
)

// TransferRepository manages Transfer persistence including line items
type TransferRepository interface {
	shared.OrgRepository[Transfer]
}
