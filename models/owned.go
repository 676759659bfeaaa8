package models

import "github.com/google/uuid"

// Owned is implemented by every resource that records the user who created it.
type Owned interface {
	OwnerID() uuid.UUID
}

var (
	_ Owned = (*BlogPost)(nil)
	_ Owned = (*Comment)(nil)
)
