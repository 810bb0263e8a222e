package main

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/drake/armory/config"
	"github.com/drake/armory/defs"
	"github.com/drake/armory/editor"
	"github.com/drake/armory/filter"
	"github.com/drake/armory/loadout"
	"github.com/drake/armory/notify"
	"github.com/drake/armory/resolve"
	"github.com/drake/armory/ui"
)

func main() {
	shareArg := flag.String("share", "", "Shared loadout link or query string to open")
	classArg := flag.String("class", "", "Character class (titan, hunter, warlock)")
	exoticArg := flag.String("exotic", "", "Exotic to lock, by name (typo-tolerant)")
	manifestArg := flag.String("manifest", "", "Path to an item manifest JSON file (overrides settings)")
	flag.Parse()

	if err := run(*shareArg, *classArg, *exoticArg, *manifestArg); err != nil {
		fmt.Fprintln(os.Stderr, "armory:", err)
		os.Exit(1)
	}
}

func run(shareArg, classArg, exoticArg, manifestArg string) error {
	settings, err := config.LoadSettings(config.SettingsFile())
	if err != nil {
		// A corrupt settings file shouldn't block the session; start fresh.
		fmt.Fprintln(os.Stderr, "armory: ignoring settings:", err)
		settings = &config.Settings{}
	}

	lib, err := loadLibrary(manifestArg, settings)
	if err != nil {
		return err
	}

	query, err := parseShareArg(shareArg)
	if err != nil {
		return err
	}
	if classArg != "" {
		class, err := classByName(classArg)
		if err != nil {
			return err
		}
		query.Set(resolve.KeyClass, fmt.Sprintf("%d", int(class)))
	}

	characters := make([]resolve.Character, len(settings.Characters))
	for i, c := range settings.Characters {
		characters[i] = resolve.Character{ID: c.ID, Class: c.Class}
	}

	collector := &notify.Collector{}
	resolver := &resolve.Resolver{Defs: lib, Notify: collector}
	result := resolver.Resolve(resolve.Sources{
		Query:      query,
		Settings:   settings,
		Characters: characters,
	})
	if result.ClassMismatch {
		collector.Notify(notify.Notice{
			Severity: notify.Warning,
			Title:    "No matching character",
			Body:     "No saved character matches the loadout's class.",
		})
	}

	engine := filter.NewEngine()
	defer engine.Close()
	if path := config.FiltersFile(); fileExists(path) {
		if err := engine.LoadScript(path); err != nil {
			collector.Notify(notify.Notice{
				Severity: notify.Warning,
				Title:    "Filter script failed",
				Body:     err.Error(),
			})
		}
	}

	state := editor.Init(result.Loadout, result.CharacterID, settings.StatOrderFor(result.Loadout.Class))
	reducer := &editor.Reducer{Defs: lib, Notify: collector}
	if exoticArg != "" {
		d, ok := lib.FindByName(exoticArg)
		if !ok || !d.Exotic || !d.Slot.Lockable() {
			return fmt.Errorf("no lockable exotic matches %q", exoticArg)
		}
		state = reducer.Apply(state, editor.LockExotic{ExoticHash: d.Hash})
	}
	model := ui.New(state, reducer, lib, engine, collector, characters)

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}

	return saveDefaults(settings, final.(ui.Model).State())
}

// loadLibrary picks the item manifest: an explicit flag wins, then the path
// saved in settings, then the built-in starter set.
func loadLibrary(manifestArg string, settings *config.Settings) (*defs.Library, error) {
	path := manifestArg
	if path == "" {
		path = settings.ManifestPath
	}
	if path == "" {
		return defs.Builtin(), nil
	}
	lib, err := defs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return lib, nil
}

// parseShareArg accepts a full link, a bare query string, or a bare share
// payload and normalizes it to query values.
func parseShareArg(arg string) (url.Values, error) {
	if arg == "" {
		return url.Values{}, nil
	}
	if u, err := url.Parse(arg); err == nil && u.RawQuery != "" {
		return url.ParseQuery(u.RawQuery)
	}
	if strings.Contains(arg, "=") {
		return url.ParseQuery(arg)
	}
	return url.Values{resolve.KeyLoadout: {arg}}, nil
}

// saveDefaults persists the session's parameters and stat order as the
// class's saved preferences.
func saveDefaults(settings *config.Settings, state editor.State) error {
	settings.SetClassDefaults(state.Loadout.Class, config.ClassDefaults{
		Parameters: *state.Loadout.Parameters,
		StatOrder:  state.StatOrder,
	})
	return config.SaveSettings(config.SettingsFile(), settings)
}

func classByName(name string) (loadout.Class, error) {
	for _, c := range []loadout.Class{loadout.ClassTitan, loadout.ClassHunter, loadout.ClassWarlock} {
		if c.String() == strings.ToLower(name) {
			return c, nil
		}
	}
	return loadout.ClassUnknown, fmt.Errorf("unknown class %q", name)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
