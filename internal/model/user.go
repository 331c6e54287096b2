package model

// User is a forum member, keyed by username. Articles and comments
// reference users through their Author field.
type User struct {
	Username  string `json:"username"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}
