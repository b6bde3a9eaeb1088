package services

import "eventhub/internal/domain"

// authorizeOwner permits an operation on an event only for the user who created it.
func authorizeOwner(ownerID, requesterID string) error {
	if ownerID == "" || ownerID != requesterID {
		return domain.ErrForbidden
	}
	return nil
}
