package domain

// StateProvince is the denormalized state/province reference attached to an
// address by the order system.
type StateProvince struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// Country is the denormalized country reference attached to an address by the
// order system.
type Country struct {
	Name               string `json:"name"`
	ThreeLetterISOCode string `json:"three_letter_iso_code"`
}

// Address is a postal address as the order system stores it. StateProvince
// and Country must already be resolved before the address is handed to
// MapAddress.
type Address struct {
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	Line1         string         `json:"line1"`
	City          string         `json:"city"`
	ZipPostalCode string         `json:"zip_postal_code"`
	PhoneNumber   string         `json:"phone_number"`
	StateProvince *StateProvince `json:"state_province"`
	Country       *Country       `json:"country"`
}

// FullName returns the recipient name sent with a shipped charge.
func (a *Address) FullName() string {
	return a.FirstName + " " + a.LastName
}

// MappedAddress is an address projected into the gateway's schema. Derived,
// never independently mutated; its lifetime is bounded to one request
// construction.
type MappedAddress struct {
	Line1      string
	City       string
	State      string
	PostalCode string
	Country    string
}

// MapAddress projects an order-system address into the gateway's address
// schema. The country is identified by its three-letter ISO code.
func MapAddress(addr *Address) (*MappedAddress, error) {
	if addr == nil || addr.StateProvince == nil || addr.Country == nil {
		return nil, ErrIncompleteAddress
	}
	return &MappedAddress{
		Line1:      addr.Line1,
		City:       addr.City,
		State:      addr.StateProvince.Abbreviation,
		PostalCode: addr.ZipPostalCode,
		Country:    addr.Country.ThreeLetterISOCode,
	}, nil
}
