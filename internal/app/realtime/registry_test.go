package realtime

import (
	"reflect"
	"testing"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	alice := &Client{userID: "alice"}

	r.Register("alice", alice)

	got, ok := r.Lookup("alice")
	if !ok {
		t.Fatal("expected alice to be online")
	}
	if got != alice {
		t.Error("Lookup returned a different client")
	}
	if got.UserID() != "alice" {
		t.Errorf("UserID() = %q, want alice", got.UserID())
	}
}

func TestRegistryLookupAbsent(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.Lookup("ghost"); ok {
		t.Error("expected absent user to be offline")
	}
}

func TestRegistryLastConnectWins(t *testing.T) {
	r := NewRegistry()
	first := &Client{userID: "bob"}
	second := &Client{userID: "bob"}

	r.Register("bob", first)
	r.Register("bob", second)

	got, ok := r.Lookup("bob")
	if !ok {
		t.Fatal("expected bob to be online")
	}
	if got != second {
		t.Error("expected the newer connection to win")
	}

	if online := r.ListOnline(); len(online) != 1 {
		t.Errorf("expected one online entry, got %v", online)
	}
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	alice := &Client{userID: "alice"}
	r.Register("alice", alice)

	if removed := r.Unregister("alice", alice); !removed {
		t.Error("expected Unregister to report removal")
	}

	if _, ok := r.Lookup("alice"); ok {
		t.Error("expected alice to be offline after unregister")
	}
}

func TestRegistryUnregisterStaleConnection(t *testing.T) {
	r := NewRegistry()
	stale := &Client{userID: "bob"}
	current := &Client{userID: "bob"}

	r.Register("bob", stale)
	r.Register("bob", current)

	// A stale connection closing must not knock the newer one offline.
	if removed := r.Unregister("bob", stale); removed {
		t.Error("expected stale unregister to be ignored")
	}

	got, ok := r.Lookup("bob")
	if !ok {
		t.Fatal("expected bob to remain online")
	}
	if got != current {
		t.Error("expected the current connection to survive")
	}
}

func TestRegistryListOnlineSorted(t *testing.T) {
	r := NewRegistry()
	r.Register("carol", &Client{userID: "carol"})
	r.Register("alice", &Client{userID: "alice"})
	r.Register("bob", &Client{userID: "bob"})

	want := []string{"alice", "bob", "carol"}
	if got := r.ListOnline(); !reflect.DeepEqual(got, want) {
		t.Errorf("ListOnline() = %v, want %v", got, want)
	}
}

func TestRegistryListOnlineEmpty(t *testing.T) {
	r := NewRegistry()

	if got := r.ListOnline(); len(got) != 0 {
		t.Errorf("expected empty roster, got %v", got)
	}
}
