package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/dishly/backend/config"
	"github.com/dishly/backend/internal/database"
	"github.com/dishly/backend/internal/models"
	"github.com/dishly/backend/internal/service"
)

type seedRecipe struct {
	Title        string
	Description  string
	Ingredients  []string
	Instructions string
	CookingTime  int
	Difficulty   string
	Category     string
}

var seedRecipes = []seedRecipe{
	{
		Title:        "Classic Tomato Soup",
		Description:  "A smooth, comforting soup made from slow-roasted tomatoes and basil.",
		Ingredients:  []string{"2 lbs ripe tomatoes", "1 onion", "2 cloves garlic", "2 cups vegetable stock", "fresh basil", "olive oil", "salt", "pepper"},
		Instructions: "Roast the tomatoes, onion, and garlic at 400F for 30 minutes. Blend with stock until smooth, simmer 10 minutes, and finish with torn basil.",
		CookingTime:  45,
		Difficulty:   models.DifficultyEasy,
		Category:     "dinner",
	},
	{
		Title:        "Sourdough Sandwich Loaf",
		Description:  "An everyday sourdough loaf with a soft crumb, built over a slow overnight ferment.",
		Ingredients:  []string{"500g bread flour", "100g active starter", "350g water", "10g salt"},
		Instructions: "Mix and autolyse 30 minutes. Fold every 30 minutes for 3 hours, shape, proof overnight in the fridge, and bake at 450F in a covered pot for 40 minutes.",
		CookingTime:  90,
		Difficulty:   models.DifficultyHard,
		Category:     "baking",
	},
	{
		Title:        "Chickpea Coconut Curry",
		Description:  "A weeknight vegan curry with chickpeas simmered in spiced coconut milk.",
		Ingredients:  []string{"2 cans chickpeas", "1 can coconut milk", "1 onion", "2 tbsp curry powder", "1 can diced tomatoes", "rice for serving"},
		Instructions: "Soften the onion, bloom the curry powder, then add chickpeas, tomatoes, and coconut milk. Simmer 20 minutes and serve over rice.",
		CookingTime:  30,
		Difficulty:   models.DifficultyEasy,
		Category:     "vegan",
	},
	{
		Title:        "Shakshuka",
		Description:  "Eggs poached in a spiced pepper and tomato sauce, straight from the skillet.",
		Ingredients:  []string{"6 eggs", "2 bell peppers", "1 can crushed tomatoes", "1 onion", "2 tsp cumin", "1 tsp paprika", "feta", "bread for serving"},
		Instructions: "Cook peppers and onion until soft, add spices and tomatoes, simmer 10 minutes. Make wells, crack in the eggs, cover, and cook until just set.",
		CookingTime:  35,
		Difficulty:   models.DifficultyMedium,
		Category:     "breakfast",
	},
	{
		Title:        "Tom Kha Gai",
		Description:  "Thai coconut chicken soup balancing galangal, lime, and chili.",
		Ingredients:  []string{"1 lb chicken thighs", "2 cans coconut milk", "galangal", "lemongrass", "lime leaves", "fish sauce", "mushrooms", "lime juice", "chilies"},
		Instructions: "Simmer the aromatics in coconut milk for 10 minutes, add chicken and mushrooms, and cook gently until done. Season with fish sauce and lime off the heat.",
		CookingTime:  40,
		Difficulty:   models.DifficultyMedium,
		Category:     "thai",
	},
	{
		Title:        "Flourless Chocolate Cake",
		Description:  "A dense, gluten-free chocolate cake with a crackly top.",
		Ingredients:  []string{"8 oz dark chocolate", "1 cup butter", "1 cup sugar", "5 eggs", "1/2 cup cocoa powder"},
		Instructions: "Melt chocolate and butter, whisk in sugar and eggs, fold in cocoa. Bake at 350F for 30 minutes and cool before slicing.",
		CookingTime:  50,
		Difficulty:   models.DifficultyMedium,
		Category:     "gluten_free",
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	user, err := ensureSeedUser(db)
	if err != nil {
		log.Fatalf("Failed to create seed user: %v", err)
	}

	recipes := service.NewRecipeService(db)
	ctx := context.Background()

	created := 0
	for _, r := range seedRecipes {
		var count int64
		if err := db.Model(&models.Recipe{}).Where("title = ?", r.Title).Count(&count).Error; err != nil {
			log.Fatalf("Failed to check for existing recipe: %v", err)
		}
		if count > 0 {
			continue
		}

		recipe := &models.Recipe{
			Title:        r.Title,
			Description:  r.Description,
			Ingredients:  models.JSONBStringArray(r.Ingredients),
			Instructions: r.Instructions,
			CookingTime:  r.CookingTime,
			Difficulty:   r.Difficulty,
			Category:     r.Category,
		}
		if _, err := recipes.CreateRecipe(ctx, user.ID, recipe); err != nil {
			log.Fatalf("Failed to create recipe %q: %v", r.Title, err)
		}
		created++
	}

	log.Printf("Seeded %d recipes (user %s)", created, user.Email)
}

// ensureSeedUser creates the demo account that owns the seeded recipes.
func ensureSeedUser(db *gorm.DB) (*models.User, error) {
	const email = "kitchen@dishly.dev"

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err == nil {
		return &user, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("Seed#2024recipes"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user = models.User{
		Name:         "Dishly Kitchen",
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}

	profile := models.Profile{
		UserID:   user.ID,
		Username: "dishly-kitchen",
		FullName: "Dishly Kitchen",
	}
	if err := db.Create(&profile).Error; err != nil {
		return nil, err
	}

	return &user, nil
}
