package menuseed

import (
	"sort"

	"github.com/Lixing-Zhang/tableside-pos/internal/models"
	"github.com/shopspring/decimal"
)

// HouseMenu returns the catalog a fresh installation starts with.
func HouseMenu() []models.MenuItem {
	item := func(id int, name, price, category, description string) models.MenuItem {
		return models.MenuItem{
			ID:          id,
			Name:        name,
			Price:       decimal.RequireFromString(price),
			Category:    category,
			Description: description,
		}
	}

	return []models.MenuItem{
		item(1, "Bruschetta", "8.50", "Appetizer", "Grilled bread with tomatoes, garlic, basil."),
		item(2, "Calamari Fritti", "12.00", "Appetizer", "Crispy fried squid with marinara sauce."),
		item(3, "Caprese Salad", "9.75", "Appetizer", "Fresh mozzarella, tomatoes, and basil."),
		item(4, "Spaghetti Carbonara", "16.00", "Main Course", "Pasta with eggs, cheese, pancetta."),
		item(5, "Margherita Pizza", "14.50", "Main Course", "Classic pizza with tomatoes, mozzarella, basil."),
		item(6, "Chicken Parmesan", "18.00", "Main Course", "Breaded chicken with marinara and cheese."),
		item(7, "Grilled Salmon", "22.50", "Main Course", "Salmon with a lemon-dill sauce."),
		item(8, "Vegetable Lasagna", "15.50", "Main Course", "Layered pasta with fresh vegetables and cheese."),
		item(9, "Tiramisu", "7.50", "Dessert", "Coffee-flavored Italian dessert."),
		item(10, "Cannoli", "6.00", "Dessert", "Pastry shell with sweet, creamy filling."),
		item(11, "Panna Cotta", "7.00", "Dessert", "Italian custard with a berry coulis."),
		item(12, "House Red Wine", "8.00", "Drink", "A glass of our finest red."),
		item(13, "Sparkling Water", "3.50", "Drink", "500ml bottle."),
		item(14, "Espresso", "3.00", "Drink", "Strong Italian coffee."),
	}
}

// CategoriesOf returns the sorted distinct categories used by items.
func CategoriesOf(items []models.MenuItem) []string {
	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, item := range items {
		if item.Category == "" || seen[item.Category] {
			continue
		}
		seen[item.Category] = true
		categories = append(categories, item.Category)
	}
	sort.Strings(categories)
	return categories
}
