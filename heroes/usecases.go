package heroes

import (
	"context"
	"strings"

	"github.com/ambiyansyah-risyal/dragonball"
)

// GetAllHeroesUseCase lists every hero.
type GetAllHeroesUseCase interface {
	Execute(ctx context.Context) ([]Hero, error)
}

// GetHeroDetailUseCase looks a hero up by name.
type GetHeroDetailUseCase interface {
	Execute(ctx context.Context, name string) (*Hero, error)
}

// LoginUseCase authenticates and keeps the resulting session.
type LoginUseCase interface {
	Execute(ctx context.Context, credentials Credentials) error
}

// GetAllHeroes implements GetAllHeroesUseCase.
type GetAllHeroes struct {
	Client *dragonball.Client
}

// NewGetAllHeroes returns a GetAllHeroes bound to client.
func NewGetAllHeroes(client *dragonball.Client) *GetAllHeroes {
	return &GetAllHeroes{Client: client}
}

// Execute requests the unfiltered list.
func (u *GetAllHeroes) Execute(ctx context.Context) ([]Hero, error) {
	return dragonball.Perform(ctx, u.Client, GetHeroesRequest(""))
}

// GetHeroDetail implements GetHeroDetailUseCase.
type GetHeroDetail struct {
	Client *dragonball.Client
}

// NewGetHeroDetail returns a GetHeroDetail bound to client.
func NewGetHeroDetail(client *dragonball.Client) *GetHeroDetail {
	return &GetHeroDetail{Client: client}
}

// Execute returns the first hero whose name equals name ignoring case. A miss
// is not an error: it returns nil, nil.
func (u *GetHeroDetail) Execute(ctx context.Context, name string) (*Hero, error) {
	list, err := dragonball.Perform(ctx, u.Client, GetHeroesRequest(name))
	if err != nil {
		return nil, err
	}
	return FindByName(list, name), nil
}

// FindByName returns the first hero in list named name, ignoring case.
func FindByName(list []Hero, name string) *Hero {
	want := strings.ToLower(name)
	for i := range list {
		if strings.ToLower(list[i].Name) == want {
			hero := list[i]
			return &hero
		}
	}
	return nil
}

// LoginError is a login failure with a reason meant for the user.
type LoginError struct {
	Reason string
}

func (e *LoginError) Error() string {
	return "login: " + e.Reason
}

// Login implements LoginUseCase. The token is stored only on success. The
// request skips the client's interceptors so it always carries Basic
// credentials.
type Login struct {
	Client *dragonball.Client
	Store  dragonball.SessionStore
}

// NewLogin returns a Login that stores the token in the client's session store.
func NewLogin(client *dragonball.Client) *Login {
	return &Login{Client: client, Store: client.SessionStore()}
}

// Execute validates credentials, performs the login request and stores the token.
func (u *Login) Execute(ctx context.Context, credentials Credentials) error {
	if strings.TrimSpace(credentials.Username) == "" {
		return &LoginError{Reason: "Invalid username"}
	}
	if credentials.Password == "" {
		return &LoginError{Reason: "Invalid password"}
	}

	token, err := dragonball.Perform(ctx, u.Client.Unauthenticated(), LoginRequest(credentials))
	if err != nil {
		return err
	}
	u.Store.StoreSession(token)
	return nil
}

var (
	_ GetAllHeroesUseCase  = (*GetAllHeroes)(nil)
	_ GetHeroDetailUseCase = (*GetHeroDetail)(nil)
	_ LoginUseCase         = (*Login)(nil)
)
