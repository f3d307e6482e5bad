package viewmodel

import "time"

// SplashState enumerates splash screen states.
type SplashState int

const (
	SplashLoading SplashState = iota
	SplashError
	SplashReady
)

// DefaultSplashDelay is how long the splash screen stays in SplashLoading.
const DefaultSplashDelay = 5 * time.Second

// SplashViewModel drives the splash screen.
type SplashViewModel struct {
	OnStateChanged Binding[SplashState]

	Delay time.Duration
}

// NewSplashViewModel returns a view model using DefaultSplashDelay.
func NewSplashViewModel() *SplashViewModel {
	return &SplashViewModel{Delay: DefaultSplashDelay}
}

// Load emits SplashLoading and, after Delay, SplashReady from a timer goroutine.
func (vm *SplashViewModel) Load() {
	vm.OnStateChanged.Update(SplashLoading)
	time.AfterFunc(vm.Delay, func() {
		vm.OnStateChanged.Update(SplashReady)
	})
}
