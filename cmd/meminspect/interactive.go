package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/wasm-memory/memory"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	addrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	asciiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const bytesPerRow = 16

type inspectModel struct {
	mem    *memory.Memory
	input  textinput.Model
	err    error
	result string
	offset uint64 // address of the top visible row
	height int
	state  modelState
}

type modelState int

const (
	stateViewing modelState = iota
	stateCommand
)

func newInspectModel(mem *memory.Memory) *inspectModel {
	ti := textinput.New()
	ti.Prompt = ": "
	ti.Placeholder = "goto <addr> | peek <addr> <kind> | poke <addr> <kind> <value> | grow <pages>"
	ti.Width = 70
	return &inspectModel{
		mem:    mem,
		input:  ti,
		height: 24,
		state:  stateViewing,
	}
}

func (m *inspectModel) Init() tea.Cmd {
	return nil
}

// visibleRows is the number of hex rows the viewport can show.
func (m *inspectModel) visibleRows() int {
	rows := m.height - 6 // title, status, command, help lines
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *inspectModel) maxOffset() uint64 {
	size := m.mem.Size()
	visible := uint64(m.visibleRows()) * bytesPerRow
	if size <= visible {
		return 0
	}
	last := (size - visible + bytesPerRow - 1) / bytesPerRow * bytesPerRow
	return last
}

func (m *inspectModel) scroll(deltaRows int64) {
	delta := deltaRows * bytesPerRow
	if delta < 0 {
		down := uint64(-delta)
		if down > m.offset {
			m.offset = 0
		} else {
			m.offset -= down
		}
		return
	}
	m.offset += uint64(delta)
	if max := m.maxOffset(); m.offset > max {
		m.offset = max
	}
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height

	case tea.KeyMsg:
		if m.state == stateCommand {
			switch msg.String() {
			case "enter":
				m.runCommand(m.input.Value())
				m.input.SetValue("")
				m.input.Blur()
				m.state = stateViewing
				return m, nil
			case "esc", "ctrl+c":
				m.input.SetValue("")
				m.input.Blur()
				m.state = stateViewing
				return m, nil
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			m.scroll(-1)

		case "down", "j":
			m.scroll(1)

		case "pgup":
			m.scroll(-int64(m.visibleRows()))

		case "pgdown", " ":
			m.scroll(int64(m.visibleRows()))

		case "g":
			m.offset = 0

		case "G":
			m.offset = m.maxOffset()

		case ":":
			m.state = stateCommand
			m.input.Focus()
			return m, textinput.Blink
		}
	}

	return m, nil
}

func (m *inspectModel) runCommand(line string) {
	m.result = ""
	m.err = nil

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "goto":
		if len(fields) != 2 {
			m.err = fmt.Errorf("usage: goto <addr>")
			return
		}
		addr, err := parseNum(fields[1])
		if err != nil {
			m.err = err
			return
		}
		m.offset = addr / bytesPerRow * bytesPerRow
		if max := m.maxOffset(); m.offset > max {
			m.offset = max
		}

	case "peek":
		if len(fields) != 3 {
			m.err = fmt.Errorf("usage: peek <addr> <kind>")
			return
		}
		addr, err := parseNum(fields[1])
		if err != nil {
			m.err = err
			return
		}
		kind, err := parseKind(fields[2])
		if err != nil {
			m.err = err
			return
		}
		v, err := m.mem.Load(addr, kind)
		if err != nil {
			m.err = err
			return
		}
		m.result = fmt.Sprintf("%#x: %s", addr, v)

	case "poke":
		if len(fields) != 4 {
			m.err = fmt.Errorf("usage: poke <addr> <kind> <value>")
			return
		}
		addr, err := parseNum(fields[1])
		if err != nil {
			m.err = err
			return
		}
		kind, err := parseKind(fields[2])
		if err != nil {
			m.err = err
			return
		}
		v, err := parseValue(kind, fields[3])
		if err != nil {
			m.err = err
			return
		}
		if err := m.mem.Store(addr, v); err != nil {
			m.err = err
			return
		}
		m.result = fmt.Sprintf("stored %s at %#x", v, addr)

	case "grow":
		if len(fields) != 2 {
			m.err = fmt.Errorf("usage: grow <pages>")
			return
		}
		delta, err := parseNum(fields[1])
		if err != nil {
			m.err = err
			return
		}
		prev, err := m.mem.GrowPages(delta)
		if err != nil {
			m.err = err
			return
		}
		m.result = fmt.Sprintf("grew from %d to %d pages", prev, m.mem.Pages())

	default:
		m.err = fmt.Errorf("unknown command %q", fields[0])
	}
}

func (m *inspectModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("meminspect — %d bytes (%d pages)", m.mem.Size(), m.mem.Pages())
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	rows := m.visibleRows()
	for i := 0; i < rows; i++ {
		addr := m.offset + uint64(i*bytesPerRow)
		if addr >= m.mem.Size() {
			break
		}
		length := uint64(bytesPerRow)
		if addr+length > m.mem.Size() {
			length = m.mem.Size() - addr
		}
		data, err := m.mem.Read(addr, length)
		if err != nil {
			b.WriteString(errorStyle.Render(err.Error()))
			b.WriteByte('\n')
			break
		}
		b.WriteString(renderRow(addr, data))
		b.WriteByte('\n')
	}

	if m.result != "" {
		b.WriteString(resultStyle.Render(m.result))
		b.WriteByte('\n')
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteByte('\n')
	}

	if m.state == stateCommand {
		b.WriteString(m.input.View())
		b.WriteByte('\n')
	}

	b.WriteString(helpStyle.Render("j/k scroll · g/G top/end · : command · q quit"))
	return b.String()
}

func renderRow(addr uint64, data []byte) string {
	var hex strings.Builder
	for i := 0; i < bytesPerRow; i++ {
		if i < len(data) {
			fmt.Fprintf(&hex, "%02x ", data[i])
		} else {
			hex.WriteString("   ")
		}
		if i == 7 {
			hex.WriteByte(' ')
		}
	}
	ascii := make([]byte, len(data))
	for i, c := range data {
		if c < 0x20 || c > 0x7E {
			c = '.'
		}
		ascii[i] = c
	}
	return addrStyle.Render(fmt.Sprintf("%08x", addr)) + "  " +
		hex.String() + " " +
		asciiStyle.Render("|"+string(ascii)+"|")
}

func runInteractive(mem *memory.Memory) error {
	p := tea.NewProgram(newInspectModel(mem), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
