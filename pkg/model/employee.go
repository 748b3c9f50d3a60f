// Package model defines the JSON envelopes exchanged over the registry API.
package model

// Response is the envelope every endpoint returns.
type Response struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// ListResponse is returned by GET /api/employee.
type ListResponse struct {
	Response
	Employees []map[string]any `json:"employees"`
}

// CreateResponse is returned by POST /api/employee. RegID is empty on failure.
type CreateResponse struct {
	Response
	RegID string `json:"regId,omitempty"`
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status    string `json:"status"`
	Employees int    `json:"employees"`
	LastRegID string `json:"lastRegId"`
}
