package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// The actor is always passed explicitly into mutating operations; there is no
// ambient user context.
type AuditFields struct {
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
	LastModifiedAt time.Time `json:"lastModifiedAt"`
	LastModifiedBy string    `json:"lastModifiedBy"`
}
