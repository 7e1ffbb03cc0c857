package models

import "time"

type Repository struct {
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	URL         string    `json:"html_url"`
	Language    *string   `json:"language"`
	StarsCount  int       `json:"stargazers_count"`
	ForksCount  int       `json:"forks_count"`
	Size        int       `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
