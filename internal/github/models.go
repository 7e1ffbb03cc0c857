package github

import (
	"time"

	"github.com/Kamar-Folarin/git-search/internal/models"
)

// user is the subset of GET /users/{username} the profile card uses.
type user struct {
	Login     string  `json:"login"`
	AvatarURL string  `json:"avatar_url"`
	Name      *string `json:"name"`
	Location  *string `json:"location"`
	Bio       *string `json:"bio"`
	Followers int     `json:"followers"`
	Following int     `json:"following"`
	HTMLURL   string  `json:"html_url"`
}

// repo is one element of GET /users/{username}/repos.
type repo struct {
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	HTMLURL         string    `json:"html_url"`
	Language        *string   `json:"language"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	Size            int       `json:"size"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (u user) toProfile(requested string) models.Profile {
	username := u.Login
	if username == "" {
		username = requested
	}
	return models.Profile{
		AvatarURL:  u.AvatarURL,
		Name:       u.Name,
		Username:   username,
		Location:   u.Location,
		Bio:        u.Bio,
		Followers:  u.Followers,
		Following:  u.Following,
		ProfileURL: u.HTMLURL,
	}
}

func (r repo) toRepository() models.Repository {
	return models.Repository{
		Name:        r.Name,
		Description: r.Description,
		URL:         r.HTMLURL,
		Language:    r.Language,
		StarsCount:  r.StargazersCount,
		ForksCount:  r.ForksCount,
		Size:        r.Size,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
