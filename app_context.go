package main

import (
	"time"
)

// AppContext holds the application dependencies and state.
// Everything is injected so tests can build isolated instances.
type AppContext struct {
	Config    *Config
	Store     UserStore
	Perms     *PermissionGate
	Joins     *MembershipGate
	Commands  *CommandRegistry
	Callbacks *CallbackRegistry
	Games     *GameStore
	StartTime time.Time
}

// InitApp initializes the application context
func InitApp(cfg *Config, store UserStore) *AppContext {
	app := &AppContext{
		Config:    cfg,
		Store:     store,
		Perms:     NewPermissionGate(store),
		Joins:     NewMembershipGate(cfg, store),
		Games:     NewGameStore(),
		StartTime: time.Now(),
	}

	app.Commands = SetupCommandRegistry()
	app.Callbacks = SetupCallbackRegistry()

	return app
}
