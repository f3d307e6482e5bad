package viewmodel

import (
	"context"
	"errors"

	"github.com/ambiyansyah-risyal/dragonball/heroes"
)

// LoginStatus enumerates login screen states.
type LoginStatus int

const (
	LoginLoading LoginStatus = iota
	LoginSuccess
	LoginFailed
)

// LoginState is emitted by LoginViewModel. Reason is set for LoginFailed.
type LoginState struct {
	Status LoginStatus
	Reason string
}

// LoginViewModel drives the login screen.
type LoginViewModel struct {
	OnStateChanged Binding[LoginState]

	useCase heroes.LoginUseCase
}

// NewLoginViewModel returns a view model over useCase.
func NewLoginViewModel(useCase heroes.LoginUseCase) *LoginViewModel {
	return &LoginViewModel{useCase: useCase}
}

// SignIn emits LoginLoading, then runs the login on a new goroutine and emits
// its outcome.
func (vm *LoginViewModel) SignIn(ctx context.Context, username, password string) {
	vm.OnStateChanged.Update(LoginState{Status: LoginLoading})

	credentials := heroes.Credentials{Username: username, Password: password}
	go func() {
		err := vm.useCase.Execute(ctx, credentials)
		if err == nil {
			vm.OnStateChanged.Update(LoginState{Status: LoginSuccess})
			return
		}

		var loginErr *heroes.LoginError
		if errors.As(err, &loginErr) {
			vm.OnStateChanged.Update(LoginState{Status: LoginFailed, Reason: loginErr.Reason})
			return
		}
		vm.OnStateChanged.Update(LoginState{Status: LoginFailed, Reason: "Unknown error"})
	}()
}
