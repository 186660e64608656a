package user

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"souqora_back_end/internal/apierror"
	"souqora_back_end/internal/config"
	"souqora_back_end/internal/database"
	"souqora_back_end/internal/models"
	"souqora_back_end/internal/store"
	"souqora_back_end/internal/utils"
	"souqora_back_end/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/facebook"
	"github.com/markbates/goth/providers/google"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/oauth2"
)

// ================== AUTH LOCALE ==================

func Signup(c *gin.Context) {
	var input struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		PasswordConfirm string `json:"passwordConfirm"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validation.Validate(
		validation.Field{Name: "name", Rules: []validation.Rule{
			validation.NotEmpty(input.Name, "nom requis"),
			validation.MinLen(input.Name, 3, "nom trop court"),
		}},
		validation.Field{Name: "email", Rules: []validation.Rule{
			validation.NotEmpty(input.Email, "email requis"),
			validation.Custom(func() bool { return strings.Contains(input.Email, "@") }, "email invalide"),
		}},
		validation.Field{Name: "password", Rules: []validation.Rule{
			validation.MinLen(input.Password, 6, "mot de passe trop court (6 caractères minimum)"),
			validation.Custom(func() bool { return input.Password == input.PasswordConfirm },
				"la confirmation ne correspond pas au mot de passe"),
		}},
	); err != nil {
		apierror.Abort(c, err)
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	now := time.Now()
	user := models.User{
		Name:      input.Name,
		Slug:      slug.Make(input.Name),
		Email:     strings.ToLower(input.Email),
		Password:  hashed,
		Role:      models.RoleUser,
		Provider:  "local",
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := store.Users().Create(c.Request.Context(), &user)
	if err != nil {
		if apierror.StatusOf(err) == http.StatusConflict {
			c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
			return
		}
		apierror.Abort(c, err)
		return
	}

	token, err := utils.GenerateJWT(*created)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": created, "token": token})
}

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := store.FindUserByEmail(c.Request.Context(), strings.ToLower(input.Email))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	ok, err := utils.VerifyPassword(input.Password, user.Password)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	if !user.Active {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Ce compte est désactivé"})
		return
	}

	token, err := utils.GenerateJWT(*user)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user, "token": token})
}

// ================== AUTH SOCIALE ==================

func BeginAuth(c *gin.Context) {
	provider := c.Param("provider")

	switch provider {
	case "google":
		cfg := config.GoogleOAuthConfig()
		goth.UseProviders(google.New(cfg.ClientID, cfg.ClientSecret, cfg.RedirectURL))
	case "facebook":
		cfg := config.FacebookOAuthConfig()
		goth.UseProviders(facebook.New(cfg.ClientID, cfg.ClientSecret, cfg.RedirectURL))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provider non supporté"})
		return
	}

	ctx := context.Background()
	state := generateRandomState()
	if redirectURL := c.Query("redirect_url"); redirectURL != "" {
		_ = database.Redis.Set(ctx, "oauth_redirect:"+state, redirectURL, 10*time.Minute).Err()
	}

	q := c.Request.URL.Query()
	q.Set("provider", provider)
	q.Set("state", state)
	c.Request.URL.RawQuery = q.Encode()
	gothic.BeginAuthHandler(c.Writer, c.Request)
}

func generateRandomState() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}

func CallbackAuth(c *gin.Context) {
	provider := c.Param("provider")
	state := c.Query("state")
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètres OAuth invalides"})
		return
	}

	var cfg *oauth2.Config
	var userinfoURL string

	switch provider {
	case "google":
		cfg = config.GoogleOAuthConfig()
		userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	case "facebook":
		cfg = config.FacebookOAuthConfig()
		userinfoURL = "https://graph.facebook.com/me?fields=id,name,email"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provider non supporté"})
		return
	}

	token, err := cfg.Exchange(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Échange OAuth refusé"})
		return
	}

	resp, err := cfg.Client(c.Request.Context(), token).Get(userinfoURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur provider OAuth"})
		return
	}
	defer resp.Body.Close()

	var profile struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil || profile.Email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Profil OAuth illisible"})
		return
	}

	handleOAuthUser(c, provider, profile.Email, profile.Name, state)
}

func findOrCreateOAuthUser(ctx context.Context, provider, email, name string) (*models.User, error) {
	user, err := store.FindUserByEmail(ctx, strings.ToLower(email))
	if err == nil {
		// Compte existant : on rattache le provider
		_, err = store.Users().Raw().UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
			"$set": bson.M{"provider": provider, "updatedAt": time.Now()},
		})
		if err == nil {
			log.Printf("🔄 Compte existant fusionné avec provider %s : %s", provider, email)
			user.Provider = provider
		}
		return user, nil
	}
	if !apierror.IsNotFound(err) {
		return nil, err
	}

	now := time.Now()
	newUser := models.User{
		Name:      name,
		Slug:      slug.Make(name),
		Email:     strings.ToLower(email),
		Role:      models.RoleUser,
		Provider:  provider,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := store.Users().Create(ctx, &newUser)
	if err != nil {
		return nil, err
	}
	log.Printf("🆕 Utilisateur OAuth créé (%s) : %s", provider, email)
	return created, nil
}

func handleOAuthUser(c *gin.Context, provider, email, name, state string) {
	ctx := c.Request.Context()

	user, err := findOrCreateOAuthUser(ctx, provider, email, name)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	token, err := utils.GenerateJWT(*user)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	redirectURI, _ := database.Redis.Get(ctx, "oauth_redirect:"+state).Result()
	database.Redis.Del(ctx, "oauth_redirect:"+state)

	if redirectURI == "" {
		redirectURI = os.Getenv("FRONTEND_URL")
		if redirectURI == "" {
			redirectURI = "http://localhost:5173"
		}
	}

	c.Redirect(http.StatusTemporaryRedirect, redirectURI+"?token="+token)
}
