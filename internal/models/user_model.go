package models

import "time"

// User represents a user in the system. The document ID is the Firebase Auth UID;
// profile data is mirrored into Firestore so queries do not need the Auth API.
type User struct {
	ID        string    `json:"id" firestore:"-"` // Firebase Auth UID, will be the document ID
	Email     string    `json:"email" firestore:"email"`
	FirstName string    `json:"firstName,omitempty" firestore:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty" firestore:"lastName,omitempty"`
	Role      string    `json:"role,omitempty" firestore:"role,omitempty"` // e.g., "admin", "agent"
	TenantIDs []string  `json:"tenantIds,omitempty" firestore:"tenantIds,omitempty"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// PrimaryTenantID returns the first tenant the user belongs to, or "" if none.
// Tier writes are scoped to this tenant.
func (u *User) PrimaryTenantID() string {
	if len(u.TenantIDs) == 0 {
		return ""
	}
	return u.TenantIDs[0]
}
