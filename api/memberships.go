package api

import (
	"context"
	"net/http"
	"net/url"
)

// MembershipService exposes the VIP tiers and assigns them to users
type MembershipService struct {
	c *Client
}

func (s *MembershipService) Tiers(ctx context.Context) ([]MembershipTier, error) {
	var tiers []MembershipTier
	err := s.c.do(ctx, http.MethodGet, "/v1/memberships/tiers", nil, nil, &tiers)
	return tiers, err
}

type assignRequest struct {
	UserID string `json:"userId"`
	TierID string `json:"tierId"`
}

func (s *MembershipService) Assign(ctx context.Context, userID, tierID string) (Membership, error) {
	var m Membership
	err := s.c.do(ctx, http.MethodPost, "/v1/memberships", nil, assignRequest{UserID: userID, TierID: tierID}, &m)
	return m, err
}

// ReportService handles listing abuse reports
type ReportService struct {
	c *Client
}

func (s *ReportService) List(ctx context.Context, status string) ([]Report, error) {
	var q url.Values
	if status != "" {
		q = url.Values{"status": {status}}
	}
	var reports []Report
	err := s.c.do(ctx, http.MethodGet, "/v1/reports", q, nil, &reports)
	return reports, err
}

type resolveRequest struct {
	Note string `json:"note,omitempty"`
}

func (s *ReportService) Resolve(ctx context.Context, id, note string) (Report, error) {
	var r Report
	err := s.c.do(ctx, http.MethodPost, "/v1/reports/"+url.PathEscape(id)+"/resolve", nil, resolveRequest{Note: note}, &r)
	return r, err
}
