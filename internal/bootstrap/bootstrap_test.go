package bootstrap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateConfigurationWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := CreateConfiguration(dir); err != nil {
		t.Fatalf("CreateConfiguration: %v", err)
	}

	foods, err := os.ReadFile(FoodPath(dir))
	if err != nil {
		t.Fatalf("read food file: %v", err)
	}
	if !strings.Contains(string(foods), "Classic Burger | 6.00 | Main") {
		t.Fatalf("food file missing default entry:\n%s", foods)
	}

	prices, err := os.ReadFile(PricePath(dir))
	if err != nil {
		t.Fatalf("read price file: %v", err)
	}
	if !strings.Contains(string(prices), "cheese | 1.00") {
		t.Fatalf("price file missing default entry:\n%s", prices)
	}
}

func TestCreateConfigurationKeepsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	custom := "Seared Salmon | 14.00 | Main | salmon, lemon |\n"
	if err := os.WriteFile(filepath.Join(dir, FoodFile), []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CreateConfiguration(dir); err != nil {
		t.Fatalf("CreateConfiguration: %v", err)
	}

	got, err := os.ReadFile(FoodPath(dir))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != custom {
		t.Fatalf("existing catalog was overwritten:\n%s", got)
	}
}
