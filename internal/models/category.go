package models

// Recipe categories, grouped the way the browse page presents them.
var (
	MealTypeCategories = []string{"baking", "breakfast", "lunch", "dinner", "dessert", "snacks"}
	DietaryCategories  = []string{"low_calorie", "vegetarian", "vegan", "gluten_free", "keto"}
	CuisineCategories  = []string{
		"indian", "chinese", "italian", "japanese", "mexican", "thai",
		"mediterranean", "american", "french", "korean", "middle_eastern",
	}
)

// AllCategories returns the full category taxonomy, including "other".
func AllCategories() []string {
	all := make([]string, 0, len(MealTypeCategories)+len(DietaryCategories)+len(CuisineCategories)+1)
	all = append(all, MealTypeCategories...)
	all = append(all, DietaryCategories...)
	all = append(all, CuisineCategories...)
	all = append(all, "other")
	return all
}

// IsValidCategory reports whether value belongs to the category taxonomy.
func IsValidCategory(value string) bool {
	for _, c := range AllCategories() {
		if c == value {
			return true
		}
	}
	return false
}

// Recipe difficulty levels.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// IsValidDifficulty reports whether value is a known difficulty level.
func IsValidDifficulty(value string) bool {
	return value == DifficultyEasy || value == DifficultyMedium || value == DifficultyHard
}
