package getlisted

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/getlisted/getlisted-go/internal/apierr"
)

// Directory is the startup collection state. Startups mirrors the server's
// last page response exactly (server order, no cross-page merging); Startup
// is the currently focused single record for detail/edit views.
type Directory struct {
	Startups   []Startup
	Startup    *Startup
	Loading    bool
	Error      string
	Pagination *Pagination
	Count      int
}

// StartupStore owns the directory state and its CRUD operations. Mutating
// operations reconcile the local collection against the mutation response
// (append on create, replace-by-ID on update, filter-out on delete) so
// consumers see the change without another round trip. This is a cache
// convenience, not a consistency guarantee: the store accepts whatever the
// mutation response contains.
//
// List fetches are not sequenced. When two fetches overlap, the last
// response to resolve wins and overwrites the collection regardless of
// issue order.
type StartupStore struct {
	client *Client

	mu    sync.Mutex
	state Directory
}

// NewStartupStore builds a store over c. When session is non-nil the store
// fetches an unfiltered first page each time the session becomes
// authenticated: a startup-time convenience keyed to the boolean's
// transition, not a subscription to every session write.
func NewStartupStore(c *Client, session *SessionStore) *StartupStore {
	st := &StartupStore{client: c}
	if session != nil {
		session.OnAuthChange(func(authenticated bool) {
			if !authenticated {
				return
			}
			go func() {
				if err := st.ListStartups(context.Background(), nil, 0, 0); err != nil {
					log.Debug().Err(err).Msg("initial directory fetch failed")
				}
			}()
		})
	}
	return st
}

// Snapshot returns a copy of the current directory state.
func (st *StartupStore) Snapshot() Directory {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := st.state
	out.Startups = append([]Startup(nil), st.state.Startups...)
	if st.state.Startup != nil {
		s := *st.state.Startup
		out.Startup = &s
	}
	if st.state.Pagination != nil {
		p := *st.state.Pagination
		out.Pagination = &p
	}
	return out
}

// ListStartups fetches one page of the directory and replaces Startups,
// Pagination, and Count wholesale. Filtering is entirely server-side.
func (st *StartupStore) ListStartups(ctx context.Context, filter *StartupFilter, page, limit int) error {
	st.setLoading()
	lr, err := st.client.ListStartups(ctx, filter, page, limit)
	if err != nil {
		return st.fail(err, "Failed to fetch startups")
	}
	st.mu.Lock()
	st.state.Startups = lr.Data
	st.state.Pagination = lr.Pagination
	st.state.Count = lr.Count
	st.state.Loading = false
	st.state.Error = ""
	st.mu.Unlock()
	return nil
}

// GetStartup fetches a single record into the focused slot.
func (st *StartupStore) GetStartup(ctx context.Context, id string) error {
	st.setLoading()
	s, err := st.client.GetStartup(ctx, id)
	if err != nil {
		return st.fail(err, "Failed to fetch startup")
	}
	st.mu.Lock()
	st.state.Startup = s
	st.state.Loading = false
	st.state.Error = ""
	st.mu.Unlock()
	return nil
}

// CreateStartup submits a new listing. On success the returned record is
// appended to the collection and becomes the focused record.
func (st *StartupStore) CreateStartup(ctx context.Context, req CreateStartupRequest) error {
	st.setLoading()
	s, err := st.client.CreateStartup(ctx, req)
	if err != nil {
		return st.fail(err, "Failed to create startup")
	}
	st.mu.Lock()
	st.state.Startups = append(st.state.Startups, *s)
	st.state.Startup = s
	st.state.Loading = false
	st.state.Error = ""
	st.mu.Unlock()
	return nil
}

// UpdateStartup applies a partial update. On success the matching element
// of the collection is replaced in place (order-preserving; a record absent
// from the current page adds nothing) and the response becomes the focused
// record.
func (st *StartupStore) UpdateStartup(ctx context.Context, id string, req UpdateStartupRequest) error {
	st.setLoading()
	s, err := st.client.UpdateStartup(ctx, id, req)
	if err != nil {
		return st.fail(err, "Failed to update startup")
	}
	st.mu.Lock()
	for i := range st.state.Startups {
		if st.state.Startups[i].ID == id {
			st.state.Startups[i] = *s
		}
	}
	st.state.Startup = s
	st.state.Loading = false
	st.state.Error = ""
	st.mu.Unlock()
	return nil
}

// DeleteStartup removes a listing. On success the matching element leaves
// the collection, and the focused record is cleared when it held that ID.
func (st *StartupStore) DeleteStartup(ctx context.Context, id string) error {
	st.setLoading()
	if err := st.client.DeleteStartup(ctx, id); err != nil {
		return st.fail(err, "Failed to delete startup")
	}
	st.mu.Lock()
	kept := st.state.Startups[:0]
	for _, s := range st.state.Startups {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	st.state.Startups = kept
	if st.state.Startup != nil && st.state.Startup.ID == id {
		st.state.Startup = nil
	}
	st.state.Loading = false
	st.state.Error = ""
	st.mu.Unlock()
	return nil
}

// ClearError clears the error message. Idempotent.
func (st *StartupStore) ClearError() {
	st.mu.Lock()
	st.state.Error = ""
	st.mu.Unlock()
}

// ClearStartup clears the focused record. A no-op when none is focused.
func (st *StartupStore) ClearStartup() {
	st.mu.Lock()
	st.state.Startup = nil
	st.mu.Unlock()
}

// ------------------------- internals -------------------------

func (st *StartupStore) setLoading() {
	st.mu.Lock()
	st.state.Loading = true
	st.mu.Unlock()
}

func (st *StartupStore) fail(err error, fallback string) error {
	st.mu.Lock()
	st.state.Loading = false
	st.state.Error = apierr.DisplayMessage(err, fallback)
	st.mu.Unlock()
	return err
}
