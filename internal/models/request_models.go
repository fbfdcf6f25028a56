package models

// CreateUserRequest represents the request body for provisioning a new user.
type CreateUserRequest struct {
	Email     string   `json:"email" binding:"required,email"`
	Password  string   `json:"password" binding:"required,min=8"`
	FirstName string   `json:"firstName" binding:"required"`
	LastName  string   `json:"lastName,omitempty"`
	Role      string   `json:"role,omitempty"`
	TenantIDs []string `json:"tenantIds,omitempty"`
}

// CreateTenantRequest represents the request body for provisioning a new tenant.
type CreateTenantRequest struct {
	AdminEmail  string `json:"adminEmail" binding:"required,email"`
	CompanyName string `json:"companyName" binding:"required"`
}

// CreateCheckoutSessionRequest represents the request body for starting a checkout.
// The metadata fields travel to the processor and come back on the payment record.
type CreateCheckoutSessionRequest struct {
	Amount      int64  `json:"amount" binding:"required,gt=0"` // smallest currency unit
	Currency    string `json:"currency,omitempty"`
	Description string `json:"description,omitempty"`
	AdminEmail  string `json:"adminEmail" binding:"required,email"`
	TenantID    string `json:"tenantId,omitempty"`
	Tier        string `json:"tier,omitempty"`
	ExtraAgents int64  `json:"extraAgents,omitempty"`
	ExtraLines  int64  `json:"extraLines,omitempty"`
}

// ReconcileRequest carries the batch of payment records to reconcile. When the list is
// empty the server pulls recent payments from the processor instead.
type ReconcileRequest struct {
	Payments []PaymentRecord `json:"payments"`
	Limit    int64           `json:"limit,omitempty"` // page size when pulling from the processor
}

// VerifyPaymentsRequest carries payment records for classification only (no writes).
type VerifyPaymentsRequest struct {
	Payments []PaymentRecord `json:"payments" binding:"required"`
}
