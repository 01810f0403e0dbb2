package api

import (
	"context"
	"net/url"
)

// ListingService manages property listings
type ListingService struct {
	res resource[Listing, ListingInput]
}

func (s *ListingService) List(ctx context.Context, q ListingQuery) (Page[Listing], error) {
	return s.res.list(ctx, q.values())
}

func (s *ListingService) Get(ctx context.Context, id string) (Listing, error) {
	return s.res.get(ctx, id)
}

func (s *ListingService) Create(ctx context.Context, in ListingInput) (Listing, error) {
	return s.res.create(ctx, in)
}

func (s *ListingService) Update(ctx context.Context, id string, in ListingInput) (Listing, error) {
	return s.res.update(ctx, id, in)
}

func (s *ListingService) Delete(ctx context.Context, id string) error {
	return s.res.delete(ctx, id)
}

func (q ListingQuery) values() url.Values {
	v := pagingQuery(q.Page, q.PageSize)
	if q.City != "" {
		v.Set("city", q.City)
	}
	if q.ListingType != "" {
		v.Set("listingType", q.ListingType)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.MinPrice > 0 {
		v.Set("minPrice", ftoa(q.MinPrice))
	}
	if q.MaxPrice > 0 {
		v.Set("maxPrice", ftoa(q.MaxPrice))
	}
	return v
}

// AdminUserService manages platform accounts
type AdminUserService struct {
	res resource[AdminUser, AdminUserInput]
}

func (s *AdminUserService) List(ctx context.Context, page, pageSize int, search string) (Page[AdminUser], error) {
	q := pagingQuery(page, pageSize)
	if search != "" {
		q.Set("search", search)
	}
	return s.res.list(ctx, q)
}

func (s *AdminUserService) Get(ctx context.Context, id string) (AdminUser, error) {
	return s.res.get(ctx, id)
}

func (s *AdminUserService) Create(ctx context.Context, in AdminUserInput) (AdminUser, error) {
	return s.res.create(ctx, in)
}

func (s *AdminUserService) Update(ctx context.Context, id string, in AdminUserInput) (AdminUser, error) {
	return s.res.update(ctx, id, in)
}

func (s *AdminUserService) Delete(ctx context.Context, id string) error {
	return s.res.delete(ctx, id)
}

// NewsService manages news articles shown on the public site
type NewsService struct {
	res resource[NewsArticle, NewsInput]
}

func (s *NewsService) List(ctx context.Context, page, pageSize int) (Page[NewsArticle], error) {
	return s.res.list(ctx, pagingQuery(page, pageSize))
}

func (s *NewsService) Get(ctx context.Context, id string) (NewsArticle, error) {
	return s.res.get(ctx, id)
}

func (s *NewsService) Create(ctx context.Context, in NewsInput) (NewsArticle, error) {
	return s.res.create(ctx, in)
}

func (s *NewsService) Update(ctx context.Context, id string, in NewsInput) (NewsArticle, error) {
	return s.res.update(ctx, id, in)
}

func (s *NewsService) Delete(ctx context.Context, id string) error {
	return s.res.delete(ctx, id)
}
