package menu

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"restaurant-ops/internal/domain"
)

// Catalog maps food names to their canonical definitions and ingredients
// to unit prices. Read-mostly: after load only the manager mutates it,
// by discounting a dish and promoting it to the specials list.
type Catalog struct {
	foods           map[string]*domain.Food
	regular         []*domain.Food
	specials        []*domain.Food
	ingredientPrice map[string]float64
}

func NewCatalog() *Catalog {
	return &Catalog{
		foods:           make(map[string]*domain.Food),
		ingredientPrice: make(map[string]float64),
	}
}

// Load reads the food catalog and the ingredient price list, both
// pipe-delimited text tables, into a fresh catalog.
func Load(foodPath, pricePath string) (*Catalog, error) {
	c := NewCatalog()
	if err := c.loadFoods(foodPath); err != nil {
		return nil, fmt.Errorf("load food catalog: %w", err)
	}
	if err := c.loadIngredientPrices(pricePath); err != nil {
		return nil, fmt.Errorf("load ingredient prices: %w", err)
	}
	return c, nil
}

// loadFoods parses lines of the form
// "name | price | category | ingredient, ingredient, ... |".
func (c *Catalog) loadFoods(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) < 4 {
			return fmt.Errorf("malformed catalog line %q", line)
		}
		name := strings.TrimSpace(parts[0])
		price, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return fmt.Errorf("bad price on line %q: %w", line, err)
		}
		category := strings.TrimSpace(parts[2])
		var ingredients []string
		for _, ing := range strings.Split(parts[3], ",") {
			if ing = strings.TrimSpace(ing); ing != "" {
				ingredients = append(ingredients, ing)
			}
		}
		c.Add(domain.NewFood(name, price, category, ingredients))
	}
	return scanner.Err()
}

// loadIngredientPrices parses lines of the form "name | price".
func (c *Catalog) loadIngredientPrices(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 2)
		if len(parts) != 2 {
			return fmt.Errorf("malformed price line %q", line)
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return fmt.Errorf("bad price on line %q: %w", line, err)
		}
		c.ingredientPrice[strings.TrimSpace(parts[0])] = price
	}
	return scanner.Err()
}

func (c *Catalog) Add(food *domain.Food) {
	c.foods[food.Name] = food
	c.regular = append(c.regular, food)
}

func (c *Catalog) HasFood(name string) bool {
	_, ok := c.foods[name]
	return ok
}

func (c *Catalog) Food(name string) (*domain.Food, bool) {
	f, ok := c.foods[name]
	return f, ok
}

// NewItem returns a fresh orderable instance of the named dish.
func (c *Catalog) NewItem(name string) (*domain.Food, bool) {
	def, ok := c.foods[name]
	if !ok {
		return nil, false
	}
	return def.Clone(), true
}

// SetIngredientPrice registers the unit price of an ingredient.
func (c *Catalog) SetIngredientPrice(name string, price float64) {
	c.ingredientPrice[name] = price
}

func (c *Catalog) HasIngredient(name string) bool {
	_, ok := c.ingredientPrice[name]
	return ok
}

// IngredientPrice returns the unit price of an ingredient, zero when the
// ingredient is not priced.
func (c *Catalog) IngredientPrice(name string) float64 {
	return c.ingredientPrice[name]
}

func (c *Catalog) IngredientNames() []string {
	names := make([]string, 0, len(c.ingredientPrice))
	for name := range c.ingredientPrice {
		names = append(names, name)
	}
	return names
}

func (c *Catalog) IsSpecial(food *domain.Food) bool {
	for _, s := range c.specials {
		if s.Equal(food) {
			return true
		}
	}
	return false
}

// PromoteSpecial moves a dish from the regular list to the specials list.
func (c *Catalog) PromoteSpecial(food *domain.Food) {
	for i, f := range c.regular {
		if f.Equal(food) {
			c.regular = append(c.regular[:i], c.regular[i+1:]...)
			break
		}
	}
	c.specials = append(c.specials, food)
}

func (c *Catalog) Regular() []*domain.Food  { return c.regular }
func (c *Catalog) Specials() []*domain.Food { return c.specials }

// Render produces the printable menu, regular dishes then specials.
func (c *Catalog) Render() string {
	var b strings.Builder
	b.WriteString("---------------- Menu ----------------\n")
	for _, f := range c.regular {
		fmt.Fprintf(&b, "%s ---- %.2f\n", f.Name, f.Price)
	}
	b.WriteString("------------- Specials ---------------\n")
	for _, f := range c.specials {
		fmt.Fprintf(&b, "%s ---- %.2f\n", f.Name, f.Price)
	}
	b.WriteString("------------ End of Menu -------------")
	return b.String()
}
