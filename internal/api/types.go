package api

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the password sign-in payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// MagicLinkRequest asks for a one-time sign-in link.
type MagicLinkRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// TokenResponse carries a session token back to the client.
type TokenResponse struct {
	Token string `json:"token"`
}

// RecipeRequest is the create/update payload for a recipe.
type RecipeRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	Ingredients  []string `json:"ingredients" binding:"required"`
	Instructions string   `json:"instructions" binding:"required"`
	CookingTime  int      `json:"cooking_time" binding:"required"`
	Difficulty   string   `json:"difficulty" binding:"required"`
	Category     string   `json:"category" binding:"required"`
	ImageURL     string   `json:"image_url"`
}

// CommentRequest is the payload for posting a comment.
type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}
