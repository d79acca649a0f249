// Package envelope builds the uniform {success, response, code} body returned
// by every endpoint.
package envelope

import "net/http"

// StatusUnset selects the default status (200).
const StatusUnset = 0

// Envelope is the response body shape. Code is also the HTTP status.
type Envelope struct {
	Success  bool `json:"success"`
	Response any  `json:"response"`
	Code     int  `json:"code"`
}

// Build wraps message with status. An unset status becomes 200 and any status
// outside [100, 600) becomes 400. Success holds only for exactly 200.
func Build(message any, status int) Envelope {
	switch {
	case status == StatusUnset:
		status = http.StatusOK
	case !ValidStatus(status):
		status = http.StatusBadRequest
	}
	return Envelope{
		Success:  status == http.StatusOK,
		Response: message,
		Code:     status,
	}
}

// OK wraps message with status 200.
func OK(message any) Envelope {
	return Build(message, StatusUnset)
}

// ValidStatus reports whether code lies in [100, 600).
func ValidStatus(code int) bool {
	return code >= 100 && code < 600
}
