package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eagerlink/eagerlink/binding"
	"github.com/eagerlink/eagerlink/gen"
	"github.com/eagerlink/eagerlink/manifest"
	"github.com/eagerlink/eagerlink/section"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	bindingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectBinding modelState = iota
	stateShowDetail
	stateShowSource
)

type interactiveModel struct {
	err          error
	manifestFile string
	family       section.Family
	descriptors  []binding.Descriptor
	output       *gen.Output
	filter       textinput.Model
	filtering    bool
	selected     int
	state        modelState
}

func newInteractiveModel(manifestFile string, family section.Family) *interactiveModel {
	filter := textinput.New()
	filter.Placeholder = "filter bindings"
	filter.Prompt = "/ "
	filter.Width = 40
	return &interactiveModel{
		manifestFile: manifestFile,
		family:       family,
		filter:       filter,
		state:        stateSelectBinding,
	}
}

type loadedMsg struct {
	err         error
	descriptors []binding.Descriptor
	output      *gen.Output
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadManifest
}

func (m *interactiveModel) loadManifest() tea.Msg {
	ds, err := manifest.Load(m.manifestFile)
	if err != nil {
		return loadedMsg{err: err}
	}
	out, err := gen.Generate(ds, gen.Target{Family: m.family})
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{descriptors: ds, output: out}
}

func (m *interactiveModel) regenerate() tea.Msg {
	out, err := gen.Generate(m.descriptors, gen.Target{Family: m.family})
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{descriptors: m.descriptors, output: out}
}

func (m *interactiveModel) visible() []*gen.Module {
	if m.output == nil {
		return nil
	}
	needle := strings.ToLower(m.filter.Value())
	if needle == "" {
		return m.output.Modules
	}
	var out []*gen.Module
	for _, mod := range m.output.Modules {
		if strings.Contains(strings.ToLower(mod.Binding.Name), needle) {
			out = append(out, mod)
		}
	}
	return out
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.filtering {
			switch msg.String() {
			case "enter", "esc":
				m.filtering = false
				m.filter.Blur()
				if msg.String() == "esc" {
					m.filter.SetValue("")
				}
				m.selected = 0
				return m, nil
			default:
				var cmd tea.Cmd
				m.filter, cmd = m.filter.Update(msg)
				m.selected = 0
				return m, cmd
			}
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectBinding && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectBinding && m.selected < len(m.visible())-1 {
				m.selected++
			}

		case "/":
			if m.state == stateSelectBinding {
				m.filtering = true
				m.filter.Focus()
				return m, textinput.Blink
			}

		case "t":
			if m.output != nil {
				m.family = nextFamily(m.family)
				return m, m.regenerate
			}

		case "enter":
			if m.state == stateSelectBinding && len(m.visible()) > 0 {
				m.state = stateShowDetail
			}

		case "s":
			if m.output != nil {
				m.state = stateShowSource
			}

		case "esc":
			m.state = stateSelectBinding
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.descriptors = msg.descriptors
		m.output = msg.output
		if m.selected >= len(m.output.Modules) {
			m.selected = 0
		}
	}

	return m, nil
}

func nextFamily(f section.Family) section.Family {
	switch f {
	case section.FamilyUnix:
		return section.FamilyApple
	case section.FamilyApple:
		return section.FamilyWindows
	default:
		return section.FamilyUnix
	}
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.output == nil {
		return "Loading manifest..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("eagerlink"))
	b.WriteString(" ")
	b.WriteString(m.manifestFile)
	b.WriteString("  [")
	b.WriteString(m.family.String())
	b.WriteString("]\n\n")

	switch m.state {
	case stateSelectBinding:
		if m.filtering || m.filter.Value() != "" {
			b.WriteString(m.filter.View())
			b.WriteString("\n\n")
		}
		mods := m.visible()
		if len(mods) == 0 {
			b.WriteString(helpStyle.Render("no bindings match"))
			b.WriteString("\n")
		}
		for i, mod := range mods {
			line := m.formatBinding(mod)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter detail • s source • t target • / filter • q quit"))

	case stateShowDetail:
		mods := m.visible()
		if m.selected >= len(mods) {
			m.state = stateSelectBinding
			return m.View()
		}
		mod := mods[m.selected]
		d := mod.Binding
		b.WriteString(fmt.Sprintf("Binding %s\n\n", bindingStyle.Render(d.Name)))
		b.WriteString(fmt.Sprintf("  type      %s\n", typeStyle.Render(d.Type.String())))
		b.WriteString(fmt.Sprintf("  size      %d bytes (align %d)\n", mod.Size, mod.Align))
		b.WriteString(fmt.Sprintf("  priority  %d\n", d.Priority))
		b.WriteString(fmt.Sprintf("  cell      %s\n", mod.CellSym))
		b.WriteString(fmt.Sprintf("  ctor      %s @ %s\n", mod.Ctor.Proc, sectionStyle.Render(mod.Ctor.Section)))
		b.WriteString(fmt.Sprintf("  dtor      %s @ %s\n", mod.Dtor.Proc, sectionStyle.Render(mod.Dtor.Section)))
		if !m.family.Ordered() {
			b.WriteString("\n")
			b.WriteString(helpStyle.Render("note: " + m.family.String() + " ignores priority ordering"))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("esc back • q quit"))

	case stateShowSource:
		b.WriteString(string(m.output.Source))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("esc back • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatBinding(mod *gen.Module) string {
	d := mod.Binding
	vis := ""
	if d.Visibility == binding.Public {
		vis = " public"
	}
	return bindingStyle.Render(d.Name) + ": " + typeStyle.Render(d.Type.String()) +
		fmt.Sprintf("  priority %d%s", d.Priority, vis)
}

func runInteractive(manifestFile string, family section.Family) error {
	p := tea.NewProgram(newInteractiveModel(manifestFile, family), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
