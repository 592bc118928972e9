package models

type Product struct {
	BaseModel
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`

	// AverageRating is a denormalized aggregate over the product's feedback
	// rows. The feedback set is authoritative; this field is rewritten by the
	// rating aggregator after every feedback write and is 0 with no feedback.
	AverageRating float64 `gorm:"not null;default:0" json:"averageRating"`
}
