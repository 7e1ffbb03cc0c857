package models

// Profile is the resident profile card for the last successful lookup.
// Field names match the records written by earlier releases.
type Profile struct {
	AvatarURL  string  `json:"avatar"`
	Name       *string `json:"name"`
	Username   string  `json:"username"`
	Location   *string `json:"location"`
	Bio        *string `json:"bio"`
	Followers  int     `json:"followers_counts"`
	Following  int     `json:"following_counts"`
	ProfileURL string  `json:"link"`
}
