package models

type Feedback struct {
	BaseModel
	UserID    string `gorm:"type:uuid;not null;index" json:"userId"`
	ProductID string `gorm:"type:uuid;not null;index" json:"productId"`
	Rating    int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string `json:"comment"`

	User    *User    `gorm:"foreignKey:UserID" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID" json:"-"`
}
