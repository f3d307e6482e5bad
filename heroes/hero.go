// Package heroes holds the DragonBall domain: the Hero model, the login and
// heroes requests, and the use cases built on them.
package heroes

// Hero is a character returned by the heroes endpoint.
type Hero struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Photo       string `json:"photo"`
	Favorite    bool   `json:"favorite"`
}

// Credentials are sent once, on login, and never stored.
type Credentials struct {
	Username string
	Password string
}
