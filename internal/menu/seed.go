package menu

// DefaultMenu is the counter's opening menu, inserted when storage is empty.
func DefaultMenu() []Spec {
	return []Spec{
		FoodSpec("Nasi Goreng", 25000, 50, 2),
		FoodSpec("Rendang", 35000, 30, 3),
		FoodSpec("Ayam Geprek", 20000, 40, 5),
		FoodSpec("Soto Ayam", 18000, 35, 1),
		FoodSpec("Mie Goreng", 22000, 45, 2),

		BeverageSpec("Es Teh Manis", 5000, 100, false),
		BeverageSpec("Kopi Hitam", 8000, 80, true),
		BeverageSpec("Jus Alpukat", 15000, 40, false),
		BeverageSpec("Teh Hangat", 5000, 100, true),

		DessertSpec("Es Krim", 12000, 50, true),
		DessertSpec("Pudding", 10000, 40, false),
		DessertSpec("Pisang Goreng", 8000, 60, false),
	}
}
