package styles

import (
	"slices"
	"testing"

	"charm.land/lipgloss/v2"

	"github.com/raphi011/ghv/internal/config"
)

func TestInit_DefaultTheme(t *testing.T) {
	Init(config.ThemeConfig{Mode: "dark"})

	theme := Current()
	if theme.Primary != lipgloss.Color("62") {
		t.Errorf("expected default primary color 62, got %v", theme.Primary)
	}
	if theme.Accent != lipgloss.Color("212") {
		t.Errorf("expected default accent color 212, got %v", theme.Accent)
	}
}

func TestInit_PresetTheme(t *testing.T) {
	tests := []struct {
		preset string
		mode   string
		want   string
	}{
		{"dracula", "dark", "#bd93f9"},
		{"nord", "dark", "#88c0d0"},
		{"nord", "light", "#5e81ac"},
		{"gruvbox", "dark", "#83a598"},
		{"catppuccin", "dark", "#89b4fa"},
		{"catppuccin", "light", "#1e66f5"},
		// dark-only family falls back to its dark variant
		{"dracula", "light", "#bd93f9"},
	}

	for _, tt := range tests {
		t.Run(tt.preset+"/"+tt.mode, func(t *testing.T) {
			Init(config.ThemeConfig{Name: tt.preset, Mode: tt.mode})

			if got := Current().Primary; got != lipgloss.Color(tt.want) {
				t.Errorf("expected primary color %v for %s/%s, got %v", tt.want, tt.preset, tt.mode, got)
			}
		})
	}

	Init(config.ThemeConfig{Mode: "dark"})
}

func TestInit_CustomColors(t *testing.T) {
	Init(config.ThemeConfig{
		Mode:    "dark",
		Primary: "#ff0000",
		Warning: "#00ff00",
	})

	theme := Current()
	if theme.Primary != lipgloss.Color("#ff0000") {
		t.Errorf("expected custom primary color #ff0000, got %v", theme.Primary)
	}
	if theme.Warning != lipgloss.Color("#00ff00") {
		t.Errorf("expected custom warning color #00ff00, got %v", theme.Warning)
	}

	Init(config.ThemeConfig{Mode: "dark"})
}

func TestInit_NoneTheme(t *testing.T) {
	Init(config.ThemeConfig{Name: "none"})
	defer Init(config.ThemeConfig{Mode: "dark"})

	if _, ok := Current().Primary.(lipgloss.NoColor); !ok {
		t.Errorf("expected NoColor primary, got %T", Current().Primary)
	}
	if got := LanguageStyle("Go").Render("Go"); got != "Go" {
		t.Errorf("LanguageStyle under none theme = %q, want uncolored", got)
	}
}

func TestInit_Nerdfont(t *testing.T) {
	Init(config.ThemeConfig{Mode: "dark", Nerdfont: true})
	if !NerdfontEnabled() {
		t.Error("expected nerdfont to be enabled by theme config")
	}
	Init(config.ThemeConfig{Mode: "dark"})
	if NerdfontEnabled() {
		t.Error("expected nerdfont to be disabled again")
	}
}

func TestGetPreset(t *testing.T) {
	if GetPreset("dracula") == nil {
		t.Error("expected dracula preset to exist")
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetNames_MatchFamilies(t *testing.T) {
	for _, name := range PresetNames() {
		if _, ok := themeFamilies[name]; !ok {
			t.Errorf("config lists theme %q with no family", name)
		}
	}
	for name := range themeFamilies {
		if !slices.Contains(PresetNames(), name) {
			t.Errorf("family %q missing from config.ValidThemeNames", name)
		}
	}
}

func TestApplyTheme_UpdatesGlobalStyles(t *testing.T) {
	Init(config.ThemeConfig{Name: "dracula"})

	if Primary != lipgloss.Color("#bd93f9") {
		t.Errorf("expected Primary to be updated to dracula color, got %v", Primary)
	}
	if PrimaryStyle.GetForeground() != lipgloss.Color("#bd93f9") {
		t.Errorf("expected PrimaryStyle foreground to be updated, got %v", PrimaryStyle.GetForeground())
	}
	if SelectedCardBorder.GetBorderTopForeground() != lipgloss.Color("#ff79c6") {
		t.Errorf("expected selected card border in accent color, got %v", SelectedCardBorder.GetBorderTopForeground())
	}

	Init(config.ThemeConfig{Mode: "dark"})
}
