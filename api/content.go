package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	perrors "github.com/jrsteele09/rental-portal/internal/errors"
	"github.com/jrsteele09/rental-portal/sessions"
)

// ContentService calls the separate content generation service
type ContentService struct {
	c *Client
}

func NewContentService(baseURL string, timeout time.Duration) *ContentService {
	return &ContentService{c: New(baseURL, timeout)}
}

// WithTokens forwards the user's bearer token to the content service
func (s *ContentService) WithTokens(ctx context.Context, tokens sessions.Tokens) *ContentService {
	return &ContentService{c: s.c.WithTokens(ctx, tokens)}
}

// GenerateDescription returns a marketing description for a listing
func (s *ContentService) GenerateDescription(ctx context.Context, req DescriptionRequest) (string, error) {
	result, err := s.c.raw(ctx, http.MethodPost, "/v1/generate/description", req)
	if err != nil {
		return "", err
	}
	for _, p := range []string{"description", "text", "content"} {
		if v := strings.TrimSpace(result.Get(p).String()); v != "" {
			return v, nil
		}
	}
	return "", perrors.Wrapf(perrors.ErrBackend, "content service returned no description")
}
