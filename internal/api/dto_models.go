package api

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`             // A high-level error message or code
	Details string `json:"details,omitempty"` // More specific details about the error, if available
}

// SuccessResponse is a generic structure for simple success messages.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// GenerationResponse reports the outcome of a bill generation run.
type GenerationResponse struct {
	Message string `json:"message"`
	Created int    `json:"created"`
}

// MonthDeleteResponse reports the outcome of a month-scoped bill deletion.
type MonthDeleteResponse struct {
	Message string `json:"message"`
	Month   string `json:"month"`
	Deleted int    `json:"deleted"`
}
