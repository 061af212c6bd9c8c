package types

// Address is a saved delivery address, owned per logged-in user. The
// "currently selected" address during checkout is client-local state and is
// never persisted.
type Address struct {
	ID                    int64  `json:"id,omitempty"`
	FirstName             string `json:"firstName" validate:"required"`
	LastName              string `json:"lastName" validate:"required"`
	AddressLine1          string `json:"addressLine1" validate:"required"`
	AddressLine2          string `json:"addressLine2"`
	City                  string `json:"city" validate:"required"`
	State                 string `json:"state" validate:"required"`
	PinCode               string `json:"pinCode" validate:"required,len=6,numeric"`
	Phone                 string `json:"phone" validate:"required,min=10,max=13"`
	Note                  string `json:"note"`
	BillingSameAsShipping bool   `json:"billingSameAsShipping"`
}

// DisplayName joins the recipient's first and last name.
func (a Address) DisplayName() string {
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}
