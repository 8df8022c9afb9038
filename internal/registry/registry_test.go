package registry

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tilequest/internal/world"
)

func TestRegisterCreateList(t *testing.T) {
	Register("zz-test-ok", "Test World", func() (*world.Definition, *world.Catalog, error) {
		return &world.Definition{ID: "zz-test-ok"}, world.NewCatalog(), nil
	})

	if !Exists("zz-test-ok") {
		t.Fatal("registered world missing")
	}
	def, cat, err := Create("zz-test-ok")
	if err != nil || def.ID != "zz-test-ok" || cat == nil {
		t.Fatalf("Create = %v, %v, %v", def, cat, err)
	}

	var found bool
	list := List()
	for i, info := range list {
		if i > 0 && list[i-1].ID > info.ID {
			t.Errorf("list not sorted: %v", list)
		}
		if info.ID == "zz-test-ok" && info.Title == "Test World" {
			found = true
		}
	}
	if !found {
		t.Errorf("List() = %v", list)
	}
}

func TestCreateErrors(t *testing.T) {
	if _, _, err := Create("zz-missing"); err == nil || !strings.Contains(err.Error(), "unknown world") {
		t.Errorf("unknown world err = %v", err)
	}

	boom := errors.New("boom")
	Register("zz-test-broken", "Broken", func() (*world.Definition, *world.Catalog, error) {
		return nil, nil, boom
	})
	if _, _, err := Create("zz-test-broken"); !errors.Is(err, boom) {
		t.Errorf("broken world err = %v", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	f := func() (*world.Definition, *world.Catalog, error) { return &world.Definition{}, world.NewCatalog(), nil }
	Register("zz-test-dup", "Dup", f)

	defer func() {
		if recover() == nil {
			t.Error("duplicate registration did not panic")
		}
	}()
	Register("zz-test-dup", "Dup", f)
}
