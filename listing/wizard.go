package listing

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/rental-portal/api"
	perrors "github.com/jrsteele09/rental-portal/internal/errors"
	"github.com/rs/zerolog/log"
)

// Creator publishes a finished listing
type Creator interface {
	Create(ctx context.Context, in api.ListingInput) (api.Listing, error)
}

// Wizard runs the multi-step create-listing flow over a DraftStore
type Wizard struct {
	store DraftStore
}

func NewWizard(store DraftStore) *Wizard {
	return &Wizard{store: store}
}

// Start opens an empty draft for ownerID
func (w *Wizard) Start(ctx context.Context, ownerID string) (*Draft, error) {
	d := &Draft{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Step:      StepBasics,
		UpdatedAt: time.Now().UTC(),
	}
	if err := w.store.Save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Load returns ownerID's draft. Drafts of other owners read as not found.
func (w *Wizard) Load(ctx context.Context, ownerID, id string) (*Draft, error) {
	d, err := w.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.OwnerID != ownerID {
		return nil, perrors.Wrapf(perrors.ErrDraftNotFound, "draft %s", id)
	}
	return d, nil
}

func (w *Wizard) Drafts(ctx context.Context, ownerID string) ([]*Draft, error) {
	return w.store.ListByOwner(ctx, ownerID)
}

// Submit applies one step's form to the draft. Field errors are returned with the
// unchanged draft and nothing is saved.
func (w *Wizard) Submit(ctx context.Context, ownerID, id string, step Step, form url.Values) (*Draft, FieldErrors, error) {
	d, err := w.Load(ctx, ownerID, id)
	if err != nil {
		return nil, nil, err
	}
	if fe := d.SetSection(step, form); len(fe) > 0 {
		return d, fe, nil
	}
	if err := w.store.Save(ctx, d); err != nil {
		return nil, nil, err
	}
	return d, nil, nil
}

// Publish creates the listing and discards the draft. The draft is kept if the
// backend rejects the listing so the user can fix it.
func (w *Wizard) Publish(ctx context.Context, ownerID, id string, creator Creator) (api.Listing, error) {
	d, err := w.Load(ctx, ownerID, id)
	if err != nil {
		return api.Listing{}, err
	}
	if err := d.Complete(); err != nil {
		return api.Listing{}, err
	}
	created, err := creator.Create(ctx, d.ToListing())
	if err != nil {
		return api.Listing{}, perrors.Wrapf(err, "publish draft %s", id)
	}
	if err := w.store.Delete(ctx, id); err != nil {
		log.Warn().Err(err).Str("draft_id", id).Msg("Listing published but draft was not removed")
	}
	return created, nil
}

func (w *Wizard) Discard(ctx context.Context, ownerID, id string) error {
	if _, err := w.Load(ctx, ownerID, id); err != nil {
		return err
	}
	return w.store.Delete(ctx, id)
}
