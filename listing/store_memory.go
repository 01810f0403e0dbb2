package listing

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	perrors "github.com/jrsteele09/rental-portal/internal/errors"
)

var _ DraftStore = (*MemoryDraftStore)(nil)

// MemoryDraftStore keeps drafts in process. Drafts are stored as copies so
// callers cannot mutate stored state.
type MemoryDraftStore struct {
	drafts map[string][]byte
	lock   sync.RWMutex
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{drafts: make(map[string][]byte)}
}

func (s *MemoryDraftStore) Get(_ context.Context, id string) (*Draft, error) {
	s.lock.RLock()
	data, ok := s.drafts[id]
	s.lock.RUnlock()
	if !ok {
		return nil, perrors.Wrapf(perrors.ErrDraftNotFound, "draft %s", id)
	}
	return decodeDraft(data)
}

func (s *MemoryDraftStore) Save(_ context.Context, draft *Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return perrors.Wrapf(err, "encode draft %s", draft.ID)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.drafts[draft.ID] = data
	return nil
}

func (s *MemoryDraftStore) Delete(_ context.Context, id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.drafts, id)
	return nil
}

func (s *MemoryDraftStore) ListByOwner(_ context.Context, ownerID string) ([]*Draft, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	drafts := make([]*Draft, 0)
	for _, data := range s.drafts {
		d, err := decodeDraft(data)
		if err != nil {
			return nil, err
		}
		if d.OwnerID == ownerID {
			drafts = append(drafts, d)
		}
	}
	sortDrafts(drafts)
	return drafts, nil
}

func decodeDraft(data []byte) (*Draft, error) {
	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, perrors.Wrapf(err, "decode draft")
	}
	return &d, nil
}

// sortDrafts orders drafts most recently updated first
func sortDrafts(drafts []*Draft) {
	sort.Slice(drafts, func(i, j int) bool {
		if drafts[i].UpdatedAt.Equal(drafts[j].UpdatedAt) {
			return drafts[i].ID < drafts[j].ID
		}
		return drafts[i].UpdatedAt.After(drafts[j].UpdatedAt)
	})
}
