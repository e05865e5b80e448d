package domain

// Property status values
const (
	StatusRented = "Rented"
	StatusVacant = "Vacant"
)

// HouseTypes lists the accepted house type values
var HouseTypes = []string{"Detached", "Semi-Detached", "Terraced", "Apartment", "Bungalow", "Cottage"}

// Property represents a rental property in a user's portfolio.
// The ID is user-assigned (P001, P002, ...) and is reassigned sequentially
// whenever another property is deleted, so it is not stable across deletes.
type Property struct {
	ID              string
	OwnerName       string
	Address         string
	MonthlyRent     float64
	MonthlyMortgage float64
	Status          string // Rented or Vacant
	Bedrooms        int
	LivingRooms     int
	Kitchens        int
	HouseType       string
	Bathrooms       int
	Description     string
}

// MonthlyProfit returns rent minus mortgage, or zero while the property is vacant
func (p *Property) MonthlyProfit() float64 {
	if p.Status == StatusVacant {
		return 0
	}
	return p.MonthlyRent - p.MonthlyMortgage
}

// PropertyPhoto is a stored photo reference for a property
type PropertyPhoto struct {
	ID          int64
	PropertyID  string
	Path        string
	Description string
	UploadDate  string // yyyy-mm-dd
}

// PropertyRepository defines data access for properties in a user's database
type PropertyRepository interface {
	Save(p *Property) error
	Get(id string) (*Property, error)
	List() ([]*Property, error)
	Delete(id string) error
	AddPhoto(propertyID, path, description string) error
	ListPhotos(propertyID string) ([]*PropertyPhoto, error)
}
