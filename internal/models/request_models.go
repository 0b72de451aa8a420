package models

// CreateCustomerRequest represents the request body for registering a customer.
type CreateCustomerRequest struct {
	Name         string `json:"name" binding:"required"`
	CNIC         string `json:"cnic,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	ConnectionNo string `json:"connectionNo" binding:"required"`
}

// UpdateCustomerRequest represents the request body for editing a customer
// profile. Pointers distinguish "clear this field" from "not provided".
// Assignment is deliberately absent: only the assignment toggle mutates it.
type UpdateCustomerRequest struct {
	Name         *string `json:"name,omitempty"`
	CNIC         *string `json:"cnic,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	ConnectionNo *string `json:"connectionNo,omitempty"`
	Status       *string `json:"status,omitempty"`
}

// CreateStaffRequest represents the request body for registering a staff
// member. UID comes from the identity provider account created for them.
type CreateStaffRequest struct {
	UID     string `json:"uid" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone,omitempty"`
	CNIC    string `json:"cnic,omitempty"`
	Address string `json:"address,omitempty"`
}

// UpdateStaffRequest represents the request body for editing a staff profile.
type UpdateStaffRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	CNIC    *string `json:"cnic,omitempty"`
	Address *string `json:"address,omitempty"`
	Status  *string `json:"status,omitempty"`
}

// ToggleAssignmentRequest represents the request body for the per-customer
// assignment toggle.
type ToggleAssignmentRequest struct {
	StaffUID    string   `json:"staffUid" binding:"required"`
	CustomerIDs []string `json:"customerIds" binding:"required"`
}

// UpdateFixedPriceRequest represents the request body for changing the flat
// monthly charge.
type UpdateFixedPriceRequest struct {
	FixedPrice float64 `json:"fixedPrice" binding:"required"`
}
