package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/vitrine/internal/layout"
	"github.com/zjrosen/vitrine/internal/platform"
	"github.com/zjrosen/vitrine/internal/ui/overlay"
	"github.com/zjrosen/vitrine/internal/ui/styles"
	"github.com/zjrosen/vitrine/internal/ui/swatch"
)

const (
	defaultWidth = 80
	menuWidth    = 20
	sidebarWidth = 34
	swatchWidth  = 22
)

var menuItems = []string{"Catalog", "Orders", "Customers", "Storefront", "Settings"}

// View implements tea.Model.
func (m Model) View() string {
	st := styles.Current()
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	lay := m.services.Layout.Snapshot()
	desktop := m.services.Layout.IsDesktop()

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		st.Panel("Theme", m.statusView(st, lay, desktop), max(width-swatchWidth-3, 30), 0, true),
		" ",
		st.Panel("Palette", m.paletteView(), swatchWidth+2, 0, false),
	)
	if lay.MenuMode != layout.MenuOverlay && desktop && !lay.StaticMenuDesktopInactive {
		body = lipgloss.JoinHorizontal(lipgloss.Top, menuView(st, 0), " ", body)
	}

	sections := []string{m.header(st), body}
	if m.debugMode && len(m.logLines) > 0 {
		sections = append(sections, st.Panel("Log", strings.TrimRight(strings.Join(m.logLines, ""), "\n"), width, 0, false))
	}
	if !m.showHelp {
		sections = append(sections, m.help.View(m.keys))
	}
	view := strings.Join(sections, "\n")

	height := max(m.height, lipgloss.Height(view))
	if lay.OverlayMenuActive || lay.StaticMenuMobileActive {
		view = overlay.Place(overlay.Left, menuView(st, height-1), view, width, height)
	}
	if lay.ConfigSidebarVisible {
		view = overlay.Place(overlay.Right, m.sidebarView(st, lay, height-1), view, width, height)
	}
	if m.showHelp {
		view = overlay.Place(overlay.Center, st.Panel("Keys", m.help.View(m.keys), min(width, 72), 0, true), view, width, height)
	}
	return m.toaster.Overlay(st, view, width, height)
}

func (m Model) header(st styles.Styles) string {
	mode := m.services.Themes.Mode()
	parts := []string{st.Title.Render("vitrine"), st.Badge.Render(mode.String())}
	if m.transitioning {
		parts = append(parts, st.Muted.Render("transitioning…"))
	}
	return strings.Join(parts, " ")
}

func (m Model) statusView(st styles.Styles, lay layout.Layout, desktop bool) string {
	s := m.services
	preference := "follows OS"
	if s.Themes.HasPreference() {
		preference = "explicit"
	}
	osScheme := "-"
	if s.Scheme != nil {
		osScheme = "light"
		if s.Scheme.Matches() {
			osScheme = "dark"
		}
	}
	viewport := "mobile"
	if desktop {
		viewport = "desktop"
	}
	cfg := s.Themes.Snapshot()

	rows := [][2]string{
		{"mode", cfg.Mode.String()},
		{"preference", preference},
		{"os scheme", osScheme},
		{"preset", cfg.Preset},
		{"primary", cfg.Primary},
		{"menu mode", lay.MenuMode},
		{"viewport", fmt.Sprintf("%d (%s)", m.width, viewport)},
		{"base color", s.Palette.BaseColor()},
	}
	if s.Document != nil {
		rows = append(rows,
			[2]string{"html class", classes(s.Document, platform.TargetRoot)},
			[2]string{"body class", classes(s.Document, platform.TargetBody)},
		)
		if prev, ok := s.Document.Previous(platform.TargetRoot); ok && m.transitioning {
			if prev == "" {
				prev = "-"
			}
			rows = append(rows, [2]string{"was", prev})
		}
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, st.Label.Render(r[0])+st.Value.Render(r[1]))
	}
	return strings.Join(lines, "\n")
}

func (m Model) paletteView() string {
	p := m.services.Palette.Snapshot()
	return swatch.Render(p, swatchWidth) + "\n" + swatch.Gradient(p, swatchWidth)
}

// sidebarView lists the layout config and flags.
func (m Model) sidebarView(st styles.Styles, lay layout.Layout, height int) string {
	flag := func(on bool) string {
		if on {
			return "on"
		}
		return "off"
	}
	rows := [][2]string{
		{"preset", lay.Preset},
		{"primary", lay.Primary},
		{"surface", lay.Surface},
		{"dark theme", flag(lay.DarkTheme)},
		{"menu mode", lay.MenuMode},
		{"overlay menu", flag(lay.OverlayMenuActive)},
		{"desktop off", flag(lay.StaticMenuDesktopInactive)},
		{"mobile menu", flag(lay.StaticMenuMobileActive)},
		{"menu hover", flag(lay.MenuHoverActive)},
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, st.Label.Render(r[0])+r[1])
	}
	return st.Panel("Configurator", strings.Join(lines, "\n"), sidebarWidth, max(height-2, len(lines)), true)
}

func menuView(st styles.Styles, height int) string {
	lines := make([]string, len(menuItems))
	for i, item := range menuItems {
		lines[i] = " " + item
	}
	return st.Panel("Menu", strings.Join(lines, "\n"), menuWidth, max(height-2, len(lines)), false)
}

func classes(d *platform.Document, target platform.Target) string {
	if attr := d.ClassAttr(target); attr != "" {
		return attr
	}
	return "-"
}
