package main

import (
	"log/slog"
	"sync"

	"komibot/internal/model"
)

// PermissionGate answers admin/ban/pro predicates backed by the user store,
// with an in-memory admin-id cache to skip a storage round-trip per command.
// The cache is updated synchronously by AddAdmin/RemoveAdmin; out-of-band
// store edits are not reflected until restart.
type PermissionGate struct {
	store UserStore

	mu     sync.RWMutex
	admins map[int64]struct{}
}

func NewPermissionGate(store UserStore) *PermissionGate {
	return &PermissionGate{
		store:  store,
		admins: make(map[int64]struct{}),
	}
}

// LoadAdmins fills the admin cache from the store. Called once at startup.
func (g *PermissionGate) LoadAdmins() error {
	users, err := g.store.ListUsers()
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.admins = make(map[int64]struct{})
	for _, u := range users {
		if u.IsAdmin {
			g.admins[u.ID] = struct{}{}
		}
	}
	slog.Info("Admin cache loaded", "count", len(g.admins))
	return nil
}

// SeedAdmins grants admin to the configured ids and warms the cache.
func (g *PermissionGate) SeedAdmins(ids []int64) {
	for _, id := range ids {
		if err := g.AddAdmin(id); err != nil {
			slog.Error("Failed to seed admin", "user", id, "err", err)
		}
	}
}

func (g *PermissionGate) IsAdmin(userID int64) bool {
	if userID == 0 {
		return false
	}

	g.mu.RLock()
	_, cached := g.admins[userID]
	g.mu.RUnlock()
	if cached {
		return true
	}

	u, ok, err := g.store.GetUser(userID)
	if err != nil {
		slog.Error("Admin lookup failed", "user", userID, "err", err)
		return false
	}
	if ok && u.IsAdmin {
		g.mu.Lock()
		g.admins[userID] = struct{}{}
		g.mu.Unlock()
		return true
	}
	return false
}

func (g *PermissionGate) AddAdmin(userID int64) error {
	if err := g.store.SetAdmin(userID, true); err != nil {
		return err
	}
	g.mu.Lock()
	g.admins[userID] = struct{}{}
	g.mu.Unlock()
	return nil
}

func (g *PermissionGate) RemoveAdmin(userID int64) error {
	if err := g.store.SetAdmin(userID, false); err != nil {
		return err
	}
	g.mu.Lock()
	delete(g.admins, userID)
	g.mu.Unlock()
	return nil
}

func (g *PermissionGate) IsBanned(userID int64) bool {
	if userID == 0 {
		return false
	}
	u, ok, err := g.store.GetUser(userID)
	if err != nil {
		slog.Error("Ban lookup failed", "user", userID, "err", err)
		return false
	}
	return ok && u.IsBanned
}

func (g *PermissionGate) Ban(userID int64) error {
	return g.store.SetBan(userID, true)
}

func (g *PermissionGate) Unban(userID int64) error {
	return g.store.SetBan(userID, false)
}

func (g *PermissionGate) IsPro(userID int64) bool {
	if userID == 0 {
		return false
	}
	u, ok, err := g.store.GetUser(userID)
	if err != nil {
		slog.Error("Pro lookup failed", "user", userID, "err", err)
		return false
	}
	return ok && u.IsPro
}

func (g *PermissionGate) SetPro(userID int64, isPro bool) error {
	return g.store.SetPro(userID, isPro)
}

// AdminList returns all users flagged as admin.
func (g *PermissionGate) AdminList() []model.User {
	return g.filterUsers(func(u model.User) bool { return u.IsAdmin })
}

// BannedList returns all users flagged as banned.
func (g *PermissionGate) BannedList() []model.User {
	return g.filterUsers(func(u model.User) bool { return u.IsBanned })
}

func (g *PermissionGate) filterUsers(keep func(model.User) bool) []model.User {
	users, err := g.store.ListUsers()
	if err != nil {
		slog.Error("User listing failed", "err", err)
		return nil
	}
	var out []model.User
	for _, u := range users {
		if keep(u) {
			out = append(out, u)
		}
	}
	return out
}
