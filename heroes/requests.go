package heroes

import (
	"encoding/base64"

	"github.com/ambiyansyah-risyal/dragonball"
)

const (
	LoginPath  = "/api/auth/login"
	HeroesPath = "/api/heros/all"
)

// LoginRequest authenticates with Basic credentials. The response body is the
// raw session token.
func LoginRequest(credentials Credentials) dragonball.Request[[]byte] {
	login := credentials.Username + ":" + credentials.Password
	return dragonball.Request[[]byte]{
		Endpoint: dragonball.Endpoint{
			Method: dragonball.MethodPost,
			Path:   LoginPath,
			Headers: map[string]string{
				"Authorization": "Basic " + base64.StdEncoding.EncodeToString([]byte(login)),
			},
		},
		Decode: dragonball.RawBytes,
	}
}

type heroesFilter struct {
	Name string `json:"name"`
}

// GetHeroesRequest lists heroes whose name matches name. An empty name lists all of them.
func GetHeroesRequest(name string) dragonball.Request[[]Hero] {
	return dragonball.Request[[]Hero]{
		Endpoint: dragonball.Endpoint{
			Method: dragonball.MethodPost,
			Path:   HeroesPath,
			Body:   heroesFilter{Name: name},
		},
	}
}
