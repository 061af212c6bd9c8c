package wizard

import (
	"context"

	pkgerrors "github.com/spiceshop/storefront-go/pkg/errors"
	"github.com/spiceshop/storefront-go/pkg/types"
)

// AddressMode is the checkout address sub-flow. Selecting is the resting
// state; the editor serves both "new" and "edit existing" and always
// returns to selecting.
type AddressMode string

const (
	ModeSelectingSaved  AddressMode = "selecting-saved-address"
	ModeEditingExisting AddressMode = "editing-existing"
	ModeCreatingNew     AddressMode = "creating-new"
)

type addressBackend interface {
	ListAddresses(ctx context.Context) ([]types.Address, error)
	CreateAddress(ctx context.Context, addr types.Address) (types.Address, error)
	UpdateAddress(ctx context.Context, addr types.Address) (types.Address, error)
	DeleteAddress(ctx context.Context, id int64) error
}

// AddressFlow is the checkout address picker: a saved list, one client-local
// selection, and an editor that re-fetches the list after every save.
type AddressFlow struct {
	api         addressBackend
	mode        AddressMode
	addresses   []types.Address
	selectedID  int64
	editing     types.Address
	inlineError string
}

// NewAddressFlow starts in the selection state with an empty list; call
// Load before rendering.
func NewAddressFlow(api addressBackend) *AddressFlow {
	return &AddressFlow{api: api, mode: ModeSelectingSaved}
}

// Mode reports the current sub-state.
func (f *AddressFlow) Mode() AddressMode {
	return f.mode
}

// Addresses returns the saved list as of the last fetch.
func (f *AddressFlow) Addresses() []types.Address {
	return f.addresses
}

// InlineError returns the last failed action's message.
func (f *AddressFlow) InlineError() string {
	return f.inlineError
}

// Load fetches the saved addresses. If the current selection vanished
// server-side, the selection falls back to the first address.
func (f *AddressFlow) Load(ctx context.Context) error {
	addresses, err := f.api.ListAddresses(ctx)
	if err != nil {
		f.fail(err)
		return err
	}
	f.addresses = addresses
	if _, ok := f.addressByID(f.selectedID); !ok {
		f.selectedID = 0
		if len(addresses) > 0 {
			f.selectedID = addresses[0].ID
		}
	}
	f.inlineError = ""
	return nil
}

// Select marks a saved address as the checkout target. Selection is
// client-local; nothing is persisted.
func (f *AddressFlow) Select(id int64) error {
	if f.mode != ModeSelectingSaved {
		return invalidTransition("address", string(f.mode), "select")
	}
	if _, ok := f.addressByID(id); !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "no such saved address")
	}
	f.selectedID = id
	return nil
}

// Selected returns the chosen address, if any.
func (f *AddressFlow) Selected() (types.Address, bool) {
	return f.addressByID(f.selectedID)
}

// StartNew opens the editor blank.
func (f *AddressFlow) StartNew() error {
	if f.mode != ModeSelectingSaved {
		return invalidTransition("address", string(f.mode), "create new")
	}
	f.editing = types.Address{BillingSameAsShipping: true}
	f.mode = ModeCreatingNew
	return nil
}

// StartEdit opens the editor seeded with a saved address.
func (f *AddressFlow) StartEdit(id int64) error {
	if f.mode != ModeSelectingSaved {
		return invalidTransition("address", string(f.mode), "edit")
	}
	addr, ok := f.addressByID(id)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "no such saved address")
	}
	f.editing = addr
	f.mode = ModeEditingExisting
	return nil
}

// Draft returns the editor's working copy.
func (f *AddressFlow) Draft() types.Address {
	return f.editing
}

// Cancel abandons the editor and returns to selection without mutation.
func (f *AddressFlow) Cancel() error {
	if f.mode != ModeCreatingNew && f.mode != ModeEditingExisting {
		return invalidTransition("address", string(f.mode), "cancel")
	}
	f.editing = types.Address{}
	f.mode = ModeSelectingSaved
	f.inlineError = ""
	return nil
}

// Save persists the editor's draft, re-fetches the list, selects the saved
// address, and returns to selection. A failed save stays in the editor with
// an inline error.
func (f *AddressFlow) Save(ctx context.Context, draft types.Address) error {
	var saved types.Address
	var err error
	switch f.mode {
	case ModeCreatingNew:
		saved, err = f.api.CreateAddress(ctx, draft)
	case ModeEditingExisting:
		draft.ID = f.editing.ID
		saved, err = f.api.UpdateAddress(ctx, draft)
	default:
		return invalidTransition("address", string(f.mode), "save")
	}
	if err != nil {
		f.fail(err)
		return err
	}

	f.mode = ModeSelectingSaved
	f.editing = types.Address{}
	f.selectedID = saved.ID
	if err := f.Load(ctx); err != nil {
		return err
	}
	f.selectedID = saved.ID
	return nil
}

// Delete removes a saved address and re-fetches.
func (f *AddressFlow) Delete(ctx context.Context, id int64) error {
	if f.mode != ModeSelectingSaved {
		return invalidTransition("address", string(f.mode), "delete")
	}
	if err := f.api.DeleteAddress(ctx, id); err != nil {
		f.fail(err)
		return err
	}
	if f.selectedID == id {
		f.selectedID = 0
	}
	return f.Load(ctx)
}

func (f *AddressFlow) addressByID(id int64) (types.Address, bool) {
	for _, addr := range f.addresses {
		if addr.ID == id && id != 0 {
			return addr, true
		}
	}
	return types.Address{}, false
}

func (f *AddressFlow) fail(err error) {
	if typed := pkgerrors.As(err); typed != nil {
		f.inlineError = typed.Message()
		return
	}
	f.inlineError = err.Error()
}
