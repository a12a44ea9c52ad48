package registry

import (
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

type stubGame struct {
	id   string
	desc string
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

type describedGame struct{ stubGame }

func (g *describedGame) Description() string { return g.desc }

func TestRegisterAndCreate(t *testing.T) {
	Register("test_b", func() Game { return &stubGame{id: "test_b"} })
	Register("test_a", func() Game { return &describedGame{stubGame{id: "test_a", desc: "first"}} })

	if !Exists("test_a") || !Exists("test_b") {
		t.Fatal("registered games should exist")
	}
	if Exists("test_missing") {
		t.Error("unregistered game should not exist")
	}

	info, ok := Info("test_a")
	if !ok {
		t.Fatal("Info(test_a) not found")
	}
	if info.Title != "Stub test_a" || info.Description != "first" {
		t.Errorf("unexpected info: %+v", info)
	}
	if info, _ := Info("test_b"); info.Description != "" {
		t.Errorf("game without Describer should have empty description, got %q", info.Description)
	}

	g, err := Create("test_b")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "test_b" {
		t.Errorf("Create() returned game %q", g.ID())
	}

	if _, err := Create("test_missing"); err == nil {
		t.Error("Create() of unknown game should fail")
	}
}

func TestListSorted(t *testing.T) {
	Register("test_z", func() Game { return &stubGame{id: "test_z"} })
	Register("test_y", func() Game { return &stubGame{id: "test_y"} })

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Fatalf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}

func TestRegisterPanics(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"duplicate", "test_dup"},
		{"empty", ""},
	}

	Register("test_dup", func() Game { return &stubGame{id: "test_dup"} })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Register(%q) should panic", tt.id)
				}
			}()
			Register(tt.id, func() Game { return &stubGame{id: tt.id} })
		})
	}
}
