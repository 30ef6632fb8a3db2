package catalog

import "github.com/shopspring/decimal"

type Product struct {
	ID              int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	Title           string          `json:"title" gorm:"not null"`
	Platform        string          `json:"platform"`
	Region          string          `json:"region"`
	Price           decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	OriginalPrice   decimal.Decimal `json:"original_price" gorm:"type:decimal(10,2)"`
	DiscountPercent int             `json:"discount_percent"`
	Cashback        decimal.Decimal `json:"cashback" gorm:"type:decimal(10,2)"`
	Likes           int64           `json:"likes"`
	ImageURL        string          `json:"image_url"`
}

func (Product) TableName() string { return "games" }

// ListResponse is the body of GET /list.
type ListResponse struct {
	Count int       `json:"count"`
	Items []Product `json:"items"`
	Error string    `json:"error,omitempty"`

	RequestID string `json:"request_id,omitempty"`
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// DefaultSeed is the catalog installed on every start.
func DefaultSeed() []Product {
	return []Product{
		{
			Title:           "FIFA 23",
			Platform:        "Xbox Series X",
			Region:          "GLOBAL",
			Price:           money("40.93"),
			OriginalPrice:   money("49.99"),
			DiscountPercent: 18,
			Cashback:        money("4.50"),
			Likes:           626,
			ImageURL:        "https://m.media-amazon.com/images/I/810tn2wWrkL.jpg",
		},
		{
			Title:           "Red Dead Redemption 2",
			Platform:        "PC / Steam",
			Region:          "GLOBAL",
			Price:           money("29.99"),
			OriginalPrice:   money("59.99"),
			DiscountPercent: 50,
			Cashback:        money("3.87"),
			Likes:           1039,
			ImageURL:        "https://upload.wikimedia.org/wikipedia/en/4/44/Red_Dead_Redemption_II.jpg",
		},
		{
			Title:           "Split Fiction",
			Platform:        "PC / Steam",
			Region:          "EUROPE",
			Price:           money("34.14"),
			OriginalPrice:   money("49.99"),
			DiscountPercent: 32,
			Cashback:        money("3.76"),
			Likes:           500,
			ImageURL:        "https://m.media-amazon.com/images/I/81fquTm9oML._AC_UF1000,1000_QL80_.jpg",
		},
		{
			Title:           "Elden Ring",
			Platform:        "PC / Steam",
			Region:          "GLOBAL",
			Price:           money("39.99"),
			OriginalPrice:   money("59.99"),
			DiscountPercent: 33,
			Cashback:        money("2.50"),
			Likes:           2500,
			ImageURL:        "https://m.media-amazon.com/images/M/MV5BMWNlMDBiYzYtMWMyMC00Zjc5LTlhMjItMjRlMzBmYmVkOGM0XkEyXkFqcGc@._V1_QL75_UY281_CR4,0,190,281_.jpg",
		},
	}
}
