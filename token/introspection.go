package token

import "context"

// Introspection is the backend's verdict on an access token
type Introspection struct {
	Valid bool `json:"valid"`
}

// Validator asks the backend whether an access token is still acceptable.
// Transport failures are returned as errors; rejections as Valid == false.
type Validator interface {
	Validate(ctx context.Context, accessToken string) (Introspection, error)
}
