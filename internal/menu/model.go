package menu

type ItemType string

const (
	TypeDish  ItemType = "dish"
	TypeDrink ItemType = "drink"
	TypeOther ItemType = "other"
)

// Item is one entry of the menu catalog.
type Item struct {
	ID    uint     `json:"id"`
	Name  string   `json:"name"`
	Price float64  `json:"price"`
	Type  ItemType `json:"type"`
}

func ValidType(t ItemType) bool {
	switch t {
	case TypeDish, TypeDrink, TypeOther:
		return true
	}
	return false
}
