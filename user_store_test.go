package main

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *SQLiteUserStore {
	t.Helper()
	store, err := NewSQLiteUserStore(filepath.Join(t.TempDir(), "users.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestUpsertAndGetUser(t *testing.T) {
	store := openTestStore(t)

	if err := store.UpsertUser(7, "seven", "Seven", "Tester"); err != nil {
		t.Fatal(err)
	}

	u, ok, err := store.GetUser(7)
	if err != nil || !ok {
		t.Fatalf("GetUser: ok=%v err=%v", ok, err)
	}
	if u.Username != "seven" || u.FirstName != "Seven" || u.LastName != "Tester" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.IsAdmin || u.IsBanned || u.IsPro {
		t.Fatal("fresh users must carry no flags")
	}
}

func TestUpsertRefreshesNamesButKeepsFlags(t *testing.T) {
	store := openTestStore(t)

	store.UpsertUser(7, "old", "Old", "Name")
	store.SetBan(7, true)
	store.SetPro(7, true)

	if err := store.UpsertUser(7, "new", "New", "Name"); err != nil {
		t.Fatal(err)
	}

	u, _, _ := store.GetUser(7)
	if u.Username != "new" {
		t.Fatalf("username not refreshed: %q", u.Username)
	}
	if !u.IsBanned || !u.IsPro {
		t.Fatal("upsert must not clear moderation flags")
	}
}

func TestSetFlagOnUnseenUserCreatesRow(t *testing.T) {
	store := openTestStore(t)

	if err := store.SetAdmin(99, true); err != nil {
		t.Fatal(err)
	}
	u, ok, err := store.GetUser(99)
	if err != nil || !ok {
		t.Fatalf("flag on unseen user should create the row: ok=%v err=%v", ok, err)
	}
	if !u.IsAdmin {
		t.Fatal("admin flag not set")
	}
	if u.Username != "" || u.FirstName != "" || u.LastName != "" {
		t.Fatalf("identity columns should read as empty strings: %+v", u)
	}

	// Listing must cope with rows that never saw identity fields.
	if _, err := store.ListUsers(); err != nil {
		t.Fatalf("ListUsers over a flag-only row: %v", err)
	}
}

func TestSeedAdminsThenLoadOnFreshDatabase(t *testing.T) {
	store := openTestStore(t)
	gate := NewPermissionGate(store)

	// Startup order on a fresh deployment with configured admin ids.
	gate.SeedAdmins([]int64{42})
	if err := gate.LoadAdmins(); err != nil {
		t.Fatalf("admin cache load after seeding: %v", err)
	}
	if !gate.IsAdmin(42) {
		t.Fatal("seeded admin lost across cache reload")
	}
}

func TestJoinPassedRoundTrip(t *testing.T) {
	store := openTestStore(t)

	if err := store.SetJoinPassed(7, true); err != nil {
		t.Fatal(err)
	}
	if u, ok, _ := store.GetUser(7); !ok || !u.JoinPassed {
		t.Fatal("join flag not persisted")
	}
	store.SetJoinPassed(7, false)
	if u, _, _ := store.GetUser(7); u.JoinPassed {
		t.Fatal("join flag not cleared")
	}
}

func TestGetUserUnknown(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.GetUser(12345)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("unknown user must report not found, not an error")
	}
}

func TestListUsersOrderedByCreation(t *testing.T) {
	store := openTestStore(t)

	store.UpsertUser(3, "c", "C", "")
	store.UpsertUser(1, "a", "A", "")
	store.UpsertUser(2, "b", "B", "")

	// Pin distinct creation times; sub-second inserts would otherwise tie.
	for i, id := range []int64{3, 1, 2} {
		ts := time.Date(2024, 1, 1, 0, 0, i, 0, time.UTC)
		if _, err := store.db.Exec(`UPDATE users SET created_at = ? WHERE id = ?`, ts, id); err != nil {
			t.Fatal(err)
		}
	}

	users, err := store.ListUsers()
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{3, 1, 2}
	if len(users) != len(want) {
		t.Fatalf("expected %d users, got %d", len(want), len(users))
	}
	for i, id := range want {
		if users[i].ID != id {
			t.Fatalf("users[%d].ID = %d, want %d (creation order)", i, users[i].ID, id)
		}
	}
}

func TestFlagRoundTrips(t *testing.T) {
	store := openTestStore(t)
	store.UpsertUser(7, "seven", "Seven", "")

	store.SetBan(7, true)
	if u, _, _ := store.GetUser(7); !u.IsBanned {
		t.Fatal("ban not persisted")
	}
	store.SetBan(7, false)
	if u, _, _ := store.GetUser(7); u.IsBanned {
		t.Fatal("unban not persisted")
	}
}
