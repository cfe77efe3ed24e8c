package theme

import (
	"testing"

	"github.com/dori/daybook/internal/model"
)

func TestByName(t *testing.T) {
	for _, name := range []string{"nord", "Dracula", " gruvbox ", "CATPPUCCIN"} {
		if _, ok := ByName(name); !ok {
			t.Errorf("ByName(%q) not found", name)
		}
	}
	if _, ok := ByName("solarized"); ok {
		t.Error("unknown theme should not resolve")
	}
}

func TestEveryThemeIsComplete(t *testing.T) {
	for _, th := range Available() {
		for _, s := range model.Statuses() {
			if th.StatusColor(s) == "" {
				t.Errorf("%s: no color for status %s", th.Name, s)
			}
		}
		for _, p := range model.Priorities() {
			if th.PriorityColor(p) == "" {
				t.Errorf("%s: no color for priority %s", th.Name, p)
			}
		}
		for i, g := range th.Banner {
			if g.From == "" || g.To == "" {
				t.Errorf("%s: banner gradient %d is empty", th.Name, i)
			}
		}
	}
}

func TestBannerGradientWraps(t *testing.T) {
	if Nord.BannerGradient(5) != Nord.Banner[1] {
		t.Error("index 5 should wrap to gradient 1")
	}
	if Nord.BannerGradient(-1) != Nord.Banner[3] {
		t.Error("index -1 should wrap to gradient 3")
	}
}
