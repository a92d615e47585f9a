// services/errors.go
package services

import "errors"

// Service-level errors mapped to HTTP statuses by the controllers.
// Upstream (Finance/Transport/MDM) failures are returned unwrapped and
// abort the remainder of the calling pipeline.
var (
	ErrEnquiryNotFound   = errors.New("enquiry not found")
	ErrAdmissionNotFound = errors.New("admission record not found")
	ErrBadRequest        = errors.New("bad request")
)
