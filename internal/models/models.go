package models

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"not null"                 json:"username"`
	Email        string `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
}

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	ImagePath   string  `gorm:"not null"                 json:"imagePath"`
	ImageName   string  `json:"imageName,omitempty"`
	ProductName string  `gorm:"not null"                 json:"productName"`
	Description string  `gorm:"not null"                 json:"description"`
	Category    string  `gorm:"not null"                 json:"category"`
	Price       float64 `gorm:"not null"                 json:"price"`
}
