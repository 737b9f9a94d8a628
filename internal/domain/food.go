package domain

// Food is a single dish: a catalog definition in the menu, or an ordered
// instance once it has been recorded against a table's bill. Ingredient
// duplicates are meaningful, one occurrence reserves one unit.
type Food struct {
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Ingredients []string `json:"ingredients"`
	Ready       bool     `json:"ready"`
	Discounted  bool     `json:"discounted"`
}

func NewFood(name string, price float64, category string, ingredients []string) *Food {
	return &Food{
		Name:        name,
		Price:       price,
		Category:    category,
		Ingredients: append([]string(nil), ingredients...),
	}
}

// Clone returns a fresh unprepared instance for ordering. The ingredient
// list is copied so customizations never touch the catalog definition.
func (f *Food) Clone() *Food {
	c := NewFood(f.Name, f.Price, f.Category, f.Ingredients)
	c.Discounted = f.Discounted
	return c
}

// Equal reports whether two dishes are the same: names match and the
// ingredient multisets match, regardless of ingredient order. Neither
// operand is mutated.
func (f *Food) Equal(other *Food) bool {
	if other == nil || f.Name != other.Name {
		return false
	}
	if len(f.Ingredients) != len(other.Ingredients) {
		return false
	}
	counts := make(map[string]int, len(f.Ingredients))
	for _, ing := range f.Ingredients {
		counts[ing]++
	}
	for _, ing := range other.Ingredients {
		counts[ing]--
		if counts[ing] < 0 {
			return false
		}
	}
	return true
}

// DiscountedPrice is the specials price, 10% off.
func (f *Food) DiscountedPrice() float64 { return f.Price * 0.9 }

func (f *Food) AddIngredient(name string) { f.Ingredients = append(f.Ingredients, name) }

// RemoveIngredient removes one occurrence of the named ingredient.
func (f *Food) RemoveIngredient(name string) bool {
	for i, ing := range f.Ingredients {
		if ing == name {
			f.Ingredients = append(f.Ingredients[:i], f.Ingredients[i+1:]...)
			return true
		}
	}
	return false
}

// RequiredQuantities folds the ingredient list into per-name unit counts.
func (f *Food) RequiredQuantities() map[string]int {
	req := make(map[string]int, len(f.Ingredients))
	for _, ing := range f.Ingredients {
		req[ing]++
	}
	return req
}

func (f *Food) String() string { return f.Name }
