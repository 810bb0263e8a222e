package ui

import (
	"fmt"
	"strings"

	"github.com/drake/armory/defs"
	"github.com/drake/armory/loadout"
	"github.com/drake/armory/notify"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render("armory") + "  " + m.styles.Muted.Render(m.characterLabel()) + "\n\n")

	for i, slot := range m.slots {
		b.WriteString(m.renderSlot(i, slot) + "\n")
	}

	b.WriteString("\n" + m.renderParameters() + "\n")
	b.WriteString(m.renderStats() + "\n")

	if m.state.Compare != nil {
		b.WriteString("\n" + m.renderCompare() + "\n")
	}

	for _, n := range m.visible {
		b.WriteString("\n" + m.renderNotice(n))
	}

	if m.searching {
		b.WriteString("\n\n" + m.styles.Muted.Render("query:") + " " + m.search.View())
	}
	if m.status != "" {
		b.WriteString("\n\n" + m.styles.StatusBar.Render(m.status))
	}

	b.WriteString("\n\n" + m.styles.Muted.Render(helpLine))

	if m.picker != nil {
		b.WriteString("\n\n" + m.picker.View())
	}
	return b.String()
}

const helpLine = "j/k move  p pin  u unpin  x exclude  X unexclude  m/g mods  r remove mod  e/E exotic  a masterwork  y energy  / search  c compare  tab character  s share  q quit"

// renderSlot draws one slot row: cursor, slot name, pinned item or the
// exotic locked into the slot, and the exclusion count.
func (m Model) renderSlot(i int, slot loadout.Slot) string {
	nameStyle := m.styles.SlotName
	cursor := "  "
	if i == m.slotIdx {
		nameStyle = m.styles.SlotSelected
		cursor = "> "
	}

	line := cursor + nameStyle.Render(fmt.Sprintf("%-10s", string(slot)))

	if it, ok := m.state.Pinned[slot]; ok {
		line += " " + m.styles.Pinned.Render("⦿ "+defs.DisplayName(m.lib, it.Hash))
	} else if h := m.state.Loadout.Parameters.ExoticHash; h != 0 {
		if d, ok := m.lib.Def(h); ok && d.Slot == slot {
			line += " " + m.styles.Exotic.Render("★ "+d.Name)
		}
	}

	if n := len(m.state.ExcludedIn(slot)); n > 0 {
		line += " " + m.styles.Excluded.Render(fmt.Sprintf("%d excluded", n))
	}
	return line
}

// renderParameters draws the locked mods and assumption toggles.
func (m Model) renderParameters() string {
	p := m.state.Loadout.Parameters

	mods := "none"
	if len(p.Mods) > 0 {
		names := make([]string, len(p.Mods))
		for i, h := range p.Mods {
			names[i] = defs.DisplayName(m.lib, h)
		}
		mods = strings.Join(names, ", ")
	}

	var parts []string
	parts = append(parts, m.styles.Muted.Render("mods:")+" "+m.styles.ItemName.Render(mods))
	if p.AssumeMasterwork != "" {
		parts = append(parts, m.styles.Muted.Render("masterwork:")+" "+p.AssumeMasterwork)
	}
	if p.LockEnergyType != "" {
		parts = append(parts, m.styles.Muted.Render("energy:")+" "+p.LockEnergyType)
	}
	if p.Query != "" {
		parts = append(parts, m.styles.Muted.Render("query:")+" "+p.Query)
	}
	return strings.Join(parts, "  ")
}

// renderStats draws the stat order with any active tier bounds.
func (m Model) renderStats() string {
	var parts []string
	for _, h := range m.state.StatOrder {
		name := defs.DisplayName(m.lib, h)
		f, ok := m.state.StatFilters[h]
		if !ok || !f.Enabled {
			parts = append(parts, m.styles.Muted.Render(name))
			continue
		}
		parts = append(parts, m.styles.ItemName.Render(fmt.Sprintf("%s %d-%d", name, f.Min, f.Max)))
	}
	return m.styles.Muted.Render("stats: ") + strings.Join(parts, "  ")
}

// renderCompare draws the open comparison set.
func (m Model) renderCompare() string {
	cs := m.state.Compare
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("compare: " + cs.Name))
	for _, it := range cs.Items {
		b.WriteString("\n  " + m.styles.ItemName.Render(defs.DisplayName(m.lib, it.Hash)))
	}
	return b.String()
}

func (m Model) renderNotice(n notify.Notice) string {
	var style = m.styles.NoticeInfo
	switch n.Severity {
	case notify.Error:
		style = m.styles.NoticeError
	case notify.Warning:
		style = m.styles.NoticeWarning
	}
	text := n.Title
	if n.Body != "" {
		text += ": " + n.Body
	}
	return style.Render(text)
}
