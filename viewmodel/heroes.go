package viewmodel

import (
	"context"
	"sync"

	"github.com/ambiyansyah-risyal/dragonball/heroes"
)

// ListStatus enumerates list and detail screen states.
type ListStatus int

const (
	StatusLoading ListStatus = iota
	StatusSuccess
	StatusError
)

// HeroesListState is emitted by HeroesListViewModel. Reason is set for StatusError.
type HeroesListState struct {
	Status ListStatus
	Reason string
}

// HeroesListViewModel drives the heroes list screen.
type HeroesListViewModel struct {
	OnStateChange Binding[HeroesListState]

	mu      sync.RWMutex
	heroes  []heroes.Hero
	useCase heroes.GetAllHeroesUseCase
}

// NewHeroesListViewModel returns a view model over useCase.
func NewHeroesListViewModel(useCase heroes.GetAllHeroesUseCase) *HeroesListViewModel {
	return &HeroesListViewModel{useCase: useCase}
}

// Heroes returns the last successfully loaded list.
func (vm *HeroesListViewModel) Heroes() []heroes.Hero {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.heroes
}

// Load emits StatusLoading, then fetches the list on a new goroutine.
func (vm *HeroesListViewModel) Load(ctx context.Context) {
	vm.OnStateChange.Update(HeroesListState{Status: StatusLoading})

	go func() {
		list, err := vm.useCase.Execute(ctx)
		if err != nil {
			vm.OnStateChange.Update(HeroesListState{Status: StatusError, Reason: err.Error()})
			return
		}

		vm.mu.Lock()
		vm.heroes = list
		vm.mu.Unlock()
		vm.OnStateChange.Update(HeroesListState{Status: StatusSuccess})
	}()
}

// HeroDetailViewModel drives the hero detail screen.
type HeroDetailViewModel struct {
	OnStateChanged Binding[ListStatus]

	mu       sync.RWMutex
	hero     *heroes.Hero
	heroName string
	useCase  heroes.GetHeroDetailUseCase
}

// NewHeroDetailViewModel returns a view model loading heroName through useCase.
func NewHeroDetailViewModel(heroName string, useCase heroes.GetHeroDetailUseCase) *HeroDetailViewModel {
	return &HeroDetailViewModel{heroName: heroName, useCase: useCase}
}

// Hero returns the loaded hero. It is nil before loading or when no hero matched.
func (vm *HeroDetailViewModel) Hero() *heroes.Hero {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.hero
}

// Load emits StatusLoading, then fetches the hero on a new goroutine.
func (vm *HeroDetailViewModel) Load(ctx context.Context) {
	vm.OnStateChanged.Update(StatusLoading)

	go func() {
		hero, err := vm.useCase.Execute(ctx, vm.heroName)
		if err != nil {
			vm.OnStateChanged.Update(StatusError)
			return
		}

		vm.mu.Lock()
		vm.hero = hero
		vm.mu.Unlock()
		vm.OnStateChanged.Update(StatusSuccess)
	}()
}
