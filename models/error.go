package models

// ErrorResponse is the body written for every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// SuccessResponse is the body written for successful writes and lookups
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// HealthCheckResponse returns the health check response
type HealthCheckResponse struct {
	Alive    bool `json:"alive"`
	Database bool `json:"database"`
}

// PageResponse is the body of paginated list endpoints
type PageResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	Limit   int         `json:"limit"`
}
