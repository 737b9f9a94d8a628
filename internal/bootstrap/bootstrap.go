package bootstrap

import (
	"os"
	"path/filepath"
)

// File names the restaurant reads at startup.
const (
	FoodFile    = "FoodItems.txt"
	PriceFile   = "IngredientsToPrice.txt"
	RequestFile = "Request.txt"
)

var defaultFoods = "" +
	"Classic Burger | 6.00 | Main | beef patty, lettuce, tomato, cheese, bun |\n" +
	"Monster Burger | 10.00 | Main | beef patty, beef patty, lettuce, tomato, cheese, cheese, bun |\n" +
	"Poutine | 4.00 | Appetizer | fries, cheese, gravy, ground beef |\n" +
	"Green Tea Ice Cream | 3.00 | Dessert | gt scoop, gt scoop |\n"

var defaultPrices = "" +
	"cheese | 1.00\n" +
	"beef patty | 2.00\n" +
	"lettuce | 0.20\n" +
	"tomato | 0.30\n" +
	"bun | 0.70\n" +
	"fries | 2.00\n" +
	"gravy | 1.00\n" +
	"gt scoop | 2.00\n" +
	"ground beef | 1.50\n"

// CreateConfiguration writes the default catalog and ingredient price
// files under dir. Files that already exist are left untouched, so a
// re-run never clobbers an edited catalog.
func CreateConfiguration(dir string) error {
	if err := writeIfMissing(filepath.Join(dir, FoodFile), defaultFoods); err != nil {
		return err
	}
	return writeIfMissing(filepath.Join(dir, PriceFile), defaultPrices)
}

// FoodPath and PricePath resolve the bootstrap files under dir.
func FoodPath(dir string) string  { return filepath.Join(dir, FoodFile) }
func PricePath(dir string) string { return filepath.Join(dir, PriceFile) }

// RequestLogPath resolves the restock request log under dir.
func RequestLogPath(dir string) string { return filepath.Join(dir, RequestFile) }

func writeIfMissing(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
