// Package ui hosts the loadout editor in a Bubble Tea program. The model
// owns the editor state and is its only writer: every keystroke that means
// something becomes exactly one editor action, applied before the next
// message is handled, which gives the reducer the serialized access it
// expects.
package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/drake/armory/defs"
	"github.com/drake/armory/editor"
	"github.com/drake/armory/filter"
	"github.com/drake/armory/loadout"
	"github.com/drake/armory/notify"
	"github.com/drake/armory/resolve"
	"github.com/drake/armory/share"
)

// pickerPurpose says what the open picker's selection will do.
type pickerPurpose int

const (
	pickNone pickerPurpose = iota
	pickPin
	pickExclude
	pickUnexclude
	pickMod
	pickRemoveMod
	pickExotic
)

// maxVisibleNotices bounds the notice area so warnings don't crowd out the
// slot table.
const maxVisibleNotices = 3

// Model is the Bubble Tea model for the editor view.
type Model struct {
	styles  Styles
	reducer *editor.Reducer
	state   editor.State
	lib     *defs.Library
	engine  *filter.Engine
	notices *notify.Collector

	characters []resolve.Character

	slots   []loadout.Slot
	slotIdx int

	picker  *picker
	purpose pickerPurpose

	search    textinput.Model
	searching bool

	// Transient status line content (share payload, query errors).
	status  string
	visible []notify.Notice

	width    int
	height   int
	quitting bool
}

// New builds the editor model around an already-resolved session.
func New(state editor.State, reducer *editor.Reducer, lib *defs.Library, engine *filter.Engine, notices *notify.Collector, characters []resolve.Character) Model {
	search := textinput.New()
	search.Placeholder = "is:exotic slot:helmet ..."
	search.CharLimit = loadout.MaxQueryLength
	search.SetValue(state.Loadout.Parameters.Query)

	return Model{
		styles:     DefaultStyles(),
		reducer:    reducer,
		state:      state,
		lib:        lib,
		engine:     engine,
		notices:    notices,
		characters: characters,
		slots:      loadout.ArmorSlots(),
		search:     search,
		visible:    notices.Drain(), // anything resolution reported
	}
}

// State exposes the current editor state so the caller can persist it on
// exit.
func (m Model) State() editor.State {
	return m.state
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// dispatch runs one action through the reducer and drains any notices it
// produced.
func (m *Model) dispatch(a editor.Action) {
	m.state = m.reducer.Apply(m.state, a)
	m.visible = append(m.visible, m.notices.Drain()...)
	if n := len(m.visible); n > maxVisibleNotices {
		m.visible = m.visible[n-maxVisibleNotices:]
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.picker != nil {
			return m.updatePicker(msg)
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateSlots(msg)
	}
	return m, nil
}

// updateSlots handles keys in the main slot-table view.
func (m Model) updateSlots(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.slotIdx > 0 {
			m.slotIdx--
		}
	case "down", "j":
		if m.slotIdx < len(m.slots)-1 {
			m.slotIdx++
		}

	case "p":
		m.openArmorPicker(pickPin, "pin item:")
	case "x":
		m.openArmorPicker(pickExclude, "exclude item:")
	case "u":
		if it, ok := m.state.Pinned[m.selectedSlot()]; ok {
			m.dispatch(editor.UnpinItem{Item: it})
		}
	case "X":
		m.openUnexcludePicker()

	case "m":
		m.dispatch(editor.OpenModPicker{})
		m.openModPicker()
	case "g":
		m.dispatch(editor.OpenModPicker{CategoryWhitelist: []defs.ModCategory{defs.ModGeneral}})
		m.openModPicker()
	case "r":
		m.openRemoveModPicker()

	case "e":
		m.openExoticPicker()
	case "E":
		m.dispatch(editor.UnlockExotic{})

	case "a":
		m.dispatch(editor.SetAssumeMasterwork{
			Value: cycle(m.state.Loadout.Parameters.AssumeMasterwork, "", "legendary", "exotic"),
		})
	case "y":
		m.dispatch(editor.SetLockEnergyType{
			Value: cycle(m.state.Loadout.Parameters.LockEnergyType, "", "arc", "solar", "void"),
		})

	case "tab":
		m.cycleCharacter()

	case "c":
		if m.state.Compare != nil {
			m.dispatch(editor.CloseCompare{})
		} else {
			m.dispatch(editor.OpenCompare{Set: editor.CompareSet{
				Name:  "current equipment",
				Items: m.state.Loadout.Items,
			}})
		}

	case "/":
		m.searching = true
		m.search.SetValue(m.state.Loadout.Parameters.Query)
		m.search.Focus()
		return m, textinput.Blink

	case "s":
		payload, err := share.Encode(m.state.Loadout)
		if err != nil {
			m.status = m.styles.NoticeError.Render("share: " + err.Error())
		} else {
			m.status = "share: " + payload
		}
	}
	return m, nil
}

// updateSearch handles keys while the query input is focused. The query only
// lands in the loadout once it compiles; a bad term stays in the input with
// the error on the status line.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "enter":
		query := m.search.Value()
		if _, err := m.engine.Compile(query); err != nil {
			m.status = m.styles.NoticeError.Render(err.Error())
			return m, nil
		}
		m.dispatch(editor.SetQuery{Query: query})
		m.searching = false
		m.search.Blur()
		m.status = ""
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// updatePicker handles keys while an overlay picker is open.
func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePicker()
		return m, nil
	case "up":
		m.picker.SelectUp()
		return m, nil
	case "down":
		m.picker.SelectDown()
		return m, nil
	case "backspace":
		m.picker.Backspace()
		return m, nil
	case "enter":
		row, ok := m.picker.Selected()
		purpose := m.purpose
		m.closePicker()
		if ok {
			m.applyPick(purpose, row)
		}
		return m, nil
	}
	if len(msg.Runes) == 1 {
		m.picker.Type(msg.Runes[0])
	}
	return m, nil
}

// applyPick turns a picker selection into the action its purpose implies.
func (m *Model) applyPick(purpose pickerPurpose, row pickerRow) {
	switch purpose {
	case pickPin:
		m.dispatch(editor.PinItem{Item: editor.Item{ID: row.ID, Hash: row.Hash, Slot: m.selectedSlot()}})
	case pickExclude:
		m.dispatch(editor.ExcludeItem{Item: editor.Item{ID: row.ID, Hash: row.Hash, Slot: m.selectedSlot()}})
	case pickUnexclude:
		m.dispatch(editor.UnexcludeItem{Item: editor.Item{ID: row.ID, Hash: row.Hash, Slot: m.selectedSlot()}})
	case pickMod:
		m.dispatch(editor.AddGeneralMods{ModHashes: []loadout.Hash{row.Hash}})
	case pickRemoveMod:
		m.dispatch(editor.RemoveLockedMod{ModHash: row.Hash})
	case pickExotic:
		m.dispatch(editor.LockExotic{ExoticHash: row.Hash})
	}
}

func (m *Model) closePicker() {
	if m.purpose == pickMod {
		m.dispatch(editor.CloseModPicker{})
	}
	m.picker = nil
	m.purpose = pickNone
}

func (m *Model) selectedSlot() loadout.Slot {
	return m.slots[m.slotIdx]
}

// activeQuery compiles the loadout's stored search query. Queries typed at
// the search prompt already compiled once, but share- and URL-sourced ones
// arrive unchecked; one that fails to compile filters nothing.
func (m *Model) activeQuery() *filter.Query {
	raw := m.state.Loadout.Parameters.Query
	if raw == "" {
		return nil
	}
	q, err := m.engine.Compile(raw)
	if err != nil {
		return nil
	}
	return q
}

// openArmorPicker lists armor for the selected slot and class, narrowed by
// the active search query.
func (m *Model) openArmorPicker(purpose pickerPurpose, header string) {
	slot := m.selectedSlot()
	query := m.activeQuery()
	var rows []pickerRow
	for _, d := range m.lib.Armor(m.state.Loadout.Class) {
		if d.Slot != slot {
			continue
		}
		if query != nil && !query.Match(d) {
			continue
		}
		desc := ""
		if d.Exotic {
			desc = "exotic"
		}
		rows = append(rows, pickerRow{Label: d.Name, Desc: desc, Hash: d.Hash})
	}
	m.picker = newPicker(header, rows, m.styles)
	m.purpose = purpose
}

// openUnexcludePicker lists the selected slot's exclusions.
func (m *Model) openUnexcludePicker() {
	excluded := m.state.ExcludedIn(m.selectedSlot())
	if len(excluded) == 0 {
		return
	}
	rows := make([]pickerRow, len(excluded))
	for i, it := range excluded {
		rows[i] = pickerRow{Label: defs.DisplayName(m.lib, it.Hash), Hash: it.Hash, ID: it.ID}
	}
	m.picker = newPicker("unexclude item:", rows, m.styles)
	m.purpose = pickUnexclude
}

// openModPicker lists mods allowed by the editor's picker state, narrowed
// by the active search query.
func (m *Model) openModPicker() {
	query := m.activeQuery()
	var rows []pickerRow
	for _, d := range m.lib.Mods(m.state.ModPicker.CategoryWhitelist...) {
		if query != nil && !query.Match(d) {
			continue
		}
		rows = append(rows, pickerRow{Label: d.Name, Desc: string(d.ModCategory), Hash: d.Hash})
	}
	m.picker = newPicker("lock mod:", rows, m.styles)
	m.purpose = pickMod
}

// openRemoveModPicker lists the currently locked mods.
func (m *Model) openRemoveModPicker() {
	mods := m.state.Loadout.Parameters.Mods
	if len(mods) == 0 {
		return
	}
	rows := make([]pickerRow, len(mods))
	for i, h := range mods {
		rows[i] = pickerRow{Label: defs.DisplayName(m.lib, h), Hash: h}
	}
	m.picker = newPicker("remove mod:", rows, m.styles)
	m.purpose = pickRemoveMod
}

// openExoticPicker lists lockable exotics for the class.
func (m *Model) openExoticPicker() {
	var rows []pickerRow
	for _, d := range m.lib.Armor(m.state.Loadout.Class) {
		if !d.Exotic || !d.Slot.Lockable() {
			continue
		}
		rows = append(rows, pickerRow{Label: d.Name, Desc: string(d.Slot), Hash: d.Hash})
	}
	m.picker = newPicker("lock exotic:", rows, m.styles)
	m.purpose = pickExotic
}

// cycleCharacter moves to the next character; the reducer clears the
// per-character slot choices on the way through.
func (m *Model) cycleCharacter() {
	if len(m.characters) < 2 {
		return
	}
	cur := 0
	for i, c := range m.characters {
		if c.ID == m.state.CharacterID {
			cur = i
			break
		}
	}
	next := m.characters[(cur+1)%len(m.characters)]
	m.dispatch(editor.ChangeCharacter{CharacterID: next.ID})
}

// cycle returns the value after current in values, wrapping around.
func cycle(current string, values ...string) string {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

// characterLabel formats the active character for the header.
func (m Model) characterLabel() string {
	for _, c := range m.characters {
		if c.ID == m.state.CharacterID {
			return fmt.Sprintf("%s (%s)", c.ID, c.Class)
		}
	}
	if m.state.CharacterID == "" {
		return "no character"
	}
	return m.state.CharacterID
}
