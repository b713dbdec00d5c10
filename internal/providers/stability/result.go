package stability

import (
	"errors"
	"fmt"
)

// Kind classifies why a generation attempt failed.
type Kind string

const (
	KindMisconfigured         Kind = "misconfigured"
	KindProviderRejected      Kind = "provider_rejected"
	KindNoResponse            Kind = "no_response"
	KindProviderProtocolError Kind = "provider_protocol_error"
	KindRequestError          Kind = "request_error"
)

// ErrMissingAPIKey indicates that the client was configured without credentials.
var ErrMissingAPIKey = errors.New("stability: api key is required")

// GenerationError is the failure half of a generation result. Status and Body
// are only set for KindProviderRejected and hold the provider's reply verbatim.
type GenerationError struct {
	Kind   Kind
	Status int
	Body   []byte
	Detail string
	Err    error
}

func (e *GenerationError) Error() string {
	switch e.Kind {
	case KindProviderRejected:
		return fmt.Sprintf("stability: provider rejected request with status %d", e.Status)
	case KindMisconfigured:
		return ErrMissingAPIKey.Error()
	}
	if e.Detail != "" {
		return fmt.Sprintf("stability: %s: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("stability: %s", e.Kind)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// KindOf extracts the failure kind from err, or "" when err is not a GenerationError.
func KindOf(err error) Kind {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Kind
	}
	return ""
}

func failure(kind Kind, err error) *GenerationError {
	ge := &GenerationError{Kind: kind, Err: err}
	if err != nil {
		ge.Detail = err.Error()
	}
	return ge
}

// Image is the success half of a generation result.
type Image struct {
	Base64       string
	MIME         string
	Seed         int64
	FinishReason string
}

// DataURI renders the image as a self-describing inline payload.
func (i *Image) DataURI() string {
	mime := i.MIME
	if mime == "" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + i.Base64
}
