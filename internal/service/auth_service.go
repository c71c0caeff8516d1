package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	config "github.com/mentetech/blog-api/configs"
	"github.com/mentetech/blog-api/internal/models"
	"github.com/mentetech/blog-api/internal/repository"
)

type AuthService interface {
	LoginCallback(ctx context.Context, code string) (string, error)
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

type authService struct {
	cfg config.Config
	ur  repository.UserRepository
}

func NewAuthService(cfg config.Config, ur repository.UserRepository) AuthService {
	return &authService{cfg: cfg, ur: ur}
}

type googleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// LoginCallback exchanges the OAuth code, resolves the Google identity and
// returns the local user id, creating the user on first login. Role
// assignment is a separate administrative step; logging in grants nothing.
func (s *authService) LoginCallback(ctx context.Context, code string) (string, error) {
	if code == "" {
		err := errors.New("authorization code is empty")
		slog.Info(err.Error())
		return "", err
	}

	oauth2Config := &oauth2.Config{
		ClientID:     s.cfg.GoogleClientID,
		ClientSecret: s.cfg.GoogleClientSecret,
		RedirectURL:  s.cfg.GoogleRedirectURI,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
		Endpoint:     google.Endpoint,
	}

	if oauth2Config.ClientID == "" || oauth2Config.ClientSecret == "" {
		err := errors.New("OAuth2 configuration is incomplete")
		slog.Info(err.Error())
		return "", err
	}

	token, err := oauth2Config.Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	userInfo, err := fetchUserInfo(ctx, oauth2Config.Client(ctx, token))
	if err != nil {
		return "", err
	}

	user, exists, err := s.ur.GetByEmail(ctx, userInfo.Email)
	if err != nil {
		return "", err
	}
	if exists {
		return user.ID, nil
	}

	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("failed to generate user id: %w", err)
	}
	err = s.ur.Create(ctx, &models.User{
		ID:             id,
		GoogleID:       userInfo.ID,
		Email:          userInfo.Email,
		Name:           userInfo.Name,
		ProfilePicture: userInfo.Picture,
	})
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}
	return id, nil
}

func (s *authService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	return s.ur.HasRole(ctx, userID, models.RoleAdmin)
}

func fetchUserInfo(ctx context.Context, client *http.Client) (*googleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://www.googleapis.com/oauth2/v2/userinfo", nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed with status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, errors.New("userinfo response missing email")
	}
	return &info, nil
}
