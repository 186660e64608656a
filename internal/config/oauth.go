package config

import (
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"
)

// GoogleOAuthConfig sert à l'échange code → token dans le callback Google
func GoogleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		RedirectURL:  BaseURL() + "/api/v1/auth/google/callback",
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// FacebookOAuthConfig sert à l'échange code → token dans le callback Facebook
func FacebookOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		RedirectURL:  BaseURL() + "/api/v1/auth/facebook/callback",
		ClientID:     os.Getenv("FACEBOOK_CLIENT_ID"),
		ClientSecret: os.Getenv("FACEBOOK_CLIENT_SECRET"),
		Scopes:       []string{"email", "public_profile"},
		Endpoint:     facebook.Endpoint,
	}
}
