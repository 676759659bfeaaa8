package auth

import (
	"github.com/google/uuid"
	"github.com/rpupo63/blog-auth-backend/errs"
	"github.com/rpupo63/blog-auth-backend/models"
)

// AssertOwner allows the call only when identity is the recorded author of
// resource. Existence of the resource must be checked before calling it.
func AssertOwner(identity uuid.UUID, resource models.Owned) error {
	if identity == uuid.Nil || resource.OwnerID().String() != identity.String() {
		return errs.ErrNotOwner
	}
	return nil
}
