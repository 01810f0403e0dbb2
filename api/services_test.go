package api_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/jrsteele09/rental-portal/api"
	"github.com/jrsteele09/rental-portal/internal/utils"
	"github.com/jrsteele09/rental-portal/users"
	"github.com/stretchr/testify/require"
)

func TestProfileUpdate(t *testing.T) {
	b := newFakeBackend(t, http.StatusOK, `{"id":"u1","firstName":"Z","lastName":"B","email":"a@b.com"}`)
	u, ok := b.client().Profile().Update(context.Background(), users.Patch{FirstName: utils.Ptr("Z")})
	require.True(t, ok)
	require.Equal(t, "Z", u.FirstName)

	req := b.last(t)
	require.Equal(t, http.MethodPatch, req.Method)
	require.Equal(t, "/v1/users/me", req.Path)
	require.Equal(t, "Z", req.Body["firstName"])
}

func TestProfileUpdateFailureIsFalse(t *testing.T) {
	b := newFakeBackend(t, http.StatusInternalServerError, `{}`)
	_, ok := b.client().Profile().Update(context.Background(), users.Patch{FirstName: utils.Ptr("Z")})
	require.False(t, ok)
}

func TestChangePassword(t *testing.T) {
	b := newFakeBackend(t, http.StatusOK, `{}`)
	require.True(t, b.client().Profile().ChangePassword(context.Background(), "old", "new"))
	require.Equal(t, "old", b.last(t).Body["currentPassword"])
	require.Equal(t, "new", b.last(t).Body["newPassword"])

	b.respond(http.StatusBadRequest, `{}`)
	require.False(t, b.client().Profile().ChangePassword(context.Background(), "old", "new"))
}

func TestListingListQueryAndPage(t *testing.T) {
	b := newFakeBackend(t, http.StatusOK, `{"data":{"items":[{"id":"l1"},{"id":"l2"}],"page":2,"pageSize":10,"total":12}}`)
	page, err := b.client().Listings().List(context.Background(), api.ListingQuery{
		Page: 2, PageSize: 10, City: "Tbilisi", ListingType: "rent", MinPrice: 100.5,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.Equal(t, 12, page.Total)

	q, err := url.ParseQuery(b.last(t).Query)
	require.NoError(t, err)
	require.Equal(t, "2", q.Get("page"))
	require.Equal(t, "10", q.Get("pageSize"))
	require.Equal(t, "Tbilisi", q.Get("city"))
	require.Equal(t, "rent", q.Get("listingType"))
	require.Equal(t, "100.5", q.Get("minPrice"))
	require.False(t, q.Has("maxPrice"))
}

func TestListAcceptsBareArray(t *testing.T) {
	b := newFakeBackend(t, http.StatusOK, `[{"id":"n1","title":"Hello"}]`)
	page, err := b.client().News().List(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, 1, page.Total)
	require.Equal(t, "Hello", page.Items[0].Title)
	require.Empty(t, b.last(t).Query)
}

func TestAdminUserCRUDPaths(t *testing.T) {
	b := newFakeBackend(t, http.StatusOK, `{"id":"u9"}`)
	ctx := context.Background()
	svc := b.client().AdminUsers()

	_, err := svc.Update(ctx, "u9", api.AdminUserInput{Blocked: utils.Ptr(true)})
	require.NoError(t, err)
	require.Equal(t, http.MethodPatch, b.last(t).Method)
	require.Equal(t, "/v1/admin/users/u9", b.last(t).Path)
	require.Equal(t, true, b.last(t).Body["blocked"])

	require.NoError(t, svc.Delete(ctx, "u9"))
	require.Equal(t, http.MethodDelete, b.last(t).Method)

	_, err = svc.List(ctx, 1, 20, "ann")
	require.NoError(t, err)
	require.Equal(t, "page=1&pageSize=20&search=ann", b.last(t).Query)
}

func TestMembershipsAndReports(t *testing.T) {
	ctx := context.Background()

	b := newFakeBackend(t, http.StatusOK, `{"data":[{"id":"gold","name":"Gold","price":20,"currency":"USD","durationDays":30}]}`)
	tiers, err := b.client().Memberships().Tiers(ctx)
	require.NoError(t, err)
	require.Len(t, tiers, 1)
	require.Equal(t, "/v1/memberships/tiers", b.last(t).Path)

	b.respond(http.StatusOK, `{"id":"m1","userId":"u1","tierId":"gold","expiresAt":"2026-01-01T00:00:00Z"}`)
	m, err := b.client().Memberships().Assign(ctx, "u1", "gold")
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), m.ExpiresAt.UTC())
	require.Equal(t, "gold", b.last(t).Body["tierId"])

	b.respond(http.StatusOK, `[]`)
	_, err = b.client().Reports().List(ctx, "open")
	require.NoError(t, err)
	require.Equal(t, "status=open", b.last(t).Query)

	b.respond(http.StatusOK, `{"id":"r1","status":"resolved"}`)
	r, err := b.client().Reports().Resolve(ctx, "r1", "removed")
	require.NoError(t, err)
	require.Equal(t, "resolved", r.Status)
	require.Equal(t, "/v1/reports/r1/resolve", b.last(t).Path)
}

func TestGenerateDescription(t *testing.T) {
	b := newFakeBackend(t, http.StatusOK, `{"description":"  A bright flat.  "}`)
	svc := api.NewContentService(b.server.URL, time.Second)

	text, err := svc.GenerateDescription(context.Background(), api.DescriptionRequest{Title: "Flat", PropertyType: "apartment"})
	require.NoError(t, err)
	require.Equal(t, "A bright flat.", text)
	require.Equal(t, "/v1/generate/description", b.last(t).Path)
	require.Equal(t, "apartment", b.last(t).Body["propertyType"])
}
