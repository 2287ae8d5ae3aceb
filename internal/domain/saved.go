package domain

// SavedItemType is the kind of catalog entry a favorite points at.
type SavedItemType string

const (
	SavedDestination SavedItemType = "destination"
	SavedHotel       SavedItemType = "hotel"
	SavedAttraction  SavedItemType = "attraction"
)

// SavedItem is a favorited catalog entry. ID mirrors the catalog item's id,
// so an entry can be saved at most once.
type SavedItem struct {
	ID       string        `json:"id" validate:"notblank"`
	Type     SavedItemType `json:"type" validate:"oneof=destination hotel attraction"`
	Title    string        `json:"title" validate:"notblank"`
	Location string        `json:"location"`
	Image    string        `json:"image"`
	Rating   float64       `json:"rating" validate:"gte=0,lte=5"`
	Price    float64       `json:"price" validate:"gte=0"`
}

// Validate checks the field rules of a saved item.
func (s SavedItem) Validate() error {
	return validateStruct(s)
}
