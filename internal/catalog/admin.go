package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/spiceshop/storefront-go/internal/listview"
	"github.com/spiceshop/storefront-go/internal/notify"
	"github.com/spiceshop/storefront-go/internal/optimistic"
	pkgerrors "github.com/spiceshop/storefront-go/pkg/errors"
	"github.com/spiceshop/storefront-go/pkg/logger"
	"github.com/spiceshop/storefront-go/pkg/types"
	"github.com/spiceshop/storefront-go/pkg/validate"
)

type adminBackend interface {
	ListSpices(ctx context.Context) ([]types.Spice, error)
	CreateSpice(ctx context.Context, req types.SpiceRequest) (types.Spice, error)
	UpdateSpice(ctx context.Context, id int64, req types.SpiceRequest) (types.Spice, error)
	DeleteSpice(ctx context.Context, id int64) error
	SetSpiceAvailability(ctx context.Context, id int64, available bool) error
}

// Filters is the admin spice table's filter row. Zero values mean "not
// supplied".
type Filters struct {
	Search    string
	Available *bool
	MinStock  *int
	MaxStock  *int
}

// Manager is the admin spice table: the full catalog fetched once, filtered
// and paged locally, with an optimistic availability toggle.
type Manager struct {
	api       adminBackend
	spices    *optimistic.Store[[]types.Spice]
	view      *listview.View[types.Spice]
	filters   Filters
	pageSize  int
	banners   *notify.Center
	bannerTTL time.Duration
	logger    *logger.Logger
}

// NewManager builds the admin catalog manager.
func NewManager(api adminBackend, pageSize int, banners *notify.Center, bannerTTL time.Duration, logg *logger.Logger) (*Manager, error) {
	if api == nil {
		return nil, fmt.Errorf("catalog backend required")
	}
	if banners == nil {
		return nil, fmt.Errorf("banner center required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Manager{
		api:       api,
		spices:    optimistic.NewStore(nil, cloneSpices),
		view:      listview.New[types.Spice](nil, pageSize),
		pageSize:  pageSize,
		banners:   banners,
		bannerTTL: bannerTTL,
		logger:    logg,
	}, nil
}

func cloneSpices(spices []types.Spice) []types.Spice {
	out := make([]types.Spice, len(spices))
	copy(out, spices)
	return out
}

// Refresh fetches the full catalog and re-applies the current filters from
// page 1.
func (m *Manager) Refresh(ctx context.Context) error {
	spices, err := m.api.ListSpices(ctx)
	if err != nil {
		return err
	}
	m.spices.Set(spices)
	m.rebuildView(false)
	return nil
}

// SetFilters installs the filter row and resets to page 1.
func (m *Manager) SetFilters(f Filters) {
	m.filters = f
	m.rebuildView(false)
}

// rebuildView recomputes the filtered subset from the current catalog.
// preservePage keeps the reader's place after a mutation that isn't a
// filter change.
func (m *Manager) rebuildView(preservePage bool) {
	page := m.view.PageIndex()
	m.view.Reload(m.spices.Get())
	m.view.SetFilters(
		listview.TextSearch(m.filters.Search, func(s types.Spice) []string {
			return []string{s.Name, s.Origin}
		}),
		listview.Equals(m.filters.Available, func(s types.Spice) bool {
			return s.IsAvailable
		}),
		listview.IntRange(m.filters.MinStock, m.filters.MaxStock, func(s types.Spice) int {
			return s.TotalStock()
		}),
	)
	if preservePage {
		m.view.GoTo(page)
	}
}

// Page returns the current window of the filtered table.
func (m *Manager) Page() []types.Spice { return m.view.Page() }

// PageIndex returns the 1-based current page.
func (m *Manager) PageIndex() int { return m.view.PageIndex() }

// TotalPages returns the page count over the filtered subset.
func (m *Manager) TotalPages() int { return m.view.TotalPages() }

// Verdict classifies an empty table for messaging.
func (m *Manager) Verdict() listview.Emptiness { return m.view.Verdict() }

// Next advances one page.
func (m *Manager) Next() { m.view.Next() }

// Prev steps back one page.
func (m *Manager) Prev() { m.view.Prev() }

// GoTo jumps to a page, clamped.
func (m *Manager) GoTo(page int) { m.view.GoTo(page) }

// ToggleAvailability flips a spice's storefront visibility optimistically:
// the row updates at once and snaps back if the backend refuses.
func (m *Manager) ToggleAvailability(ctx context.Context, id int64) error {
	spice, ok := m.findSpice(id)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "no such spice")
	}
	next := !spice.IsAvailable

	err := m.spices.Mutate(ctx,
		func(spices []types.Spice) []types.Spice {
			for i := range spices {
				if spices[i].ID == id {
					spices[i].IsAvailable = next
				}
			}
			return spices
		},
		func(ctx context.Context) error {
			return m.api.SetSpiceAvailability(ctx, id, next)
		},
		nil,
	)
	m.rebuildView(true)
	if err != nil {
		m.bannerError(err, "failed to update availability")
		return err
	}
	return nil
}

// Create validates and submits a new spice, then re-fetches the table.
func (m *Manager) Create(ctx context.Context, req types.SpiceRequest) error {
	if err := validate.Struct(req); err != nil {
		m.bannerError(err, "invalid spice")
		return err
	}
	if _, err := m.api.CreateSpice(ctx, req); err != nil {
		m.bannerError(err, "failed to create spice")
		return err
	}
	m.banners.Post(notify.KindSuccess, "Spice created", m.bannerTTL)
	return m.Refresh(ctx)
}

// Update validates and submits a full replacement for a spice.
func (m *Manager) Update(ctx context.Context, id int64, req types.SpiceRequest) error {
	if err := validate.Struct(req); err != nil {
		m.bannerError(err, "invalid spice")
		return err
	}
	if _, err := m.api.UpdateSpice(ctx, id, req); err != nil {
		m.bannerError(err, "failed to update spice")
		return err
	}
	m.banners.Post(notify.KindSuccess, "Spice updated", m.bannerTTL)
	return m.Refresh(ctx)
}

// Delete removes a spice and re-fetches the table.
func (m *Manager) Delete(ctx context.Context, id int64) error {
	if err := m.api.DeleteSpice(ctx, id); err != nil {
		m.bannerError(err, "failed to delete spice")
		return err
	}
	m.banners.Post(notify.KindSuccess, "Spice deleted", m.bannerTTL)
	return m.Refresh(ctx)
}

func (m *Manager) findSpice(id int64) (types.Spice, bool) {
	for _, spice := range m.spices.Get() {
		if spice.ID == id {
			return spice, true
		}
	}
	return types.Spice{}, false
}

func (m *Manager) bannerError(err error, fallback string) {
	message := fallback
	if typed := pkgerrors.As(err); typed != nil && typed.Message() != "" {
		message = typed.Message()
	}
	m.banners.Post(notify.KindError, message, m.bannerTTL)
}
