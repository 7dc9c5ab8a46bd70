// Package tui provides an interactive terminal board UI using Bubble Tea.
// Items are laid out in one column per status; every mutation goes through
// the Board interface and the whole board is reloaded afterwards, so the
// view always reflects store state.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskboard/pkg/types"
)

// InputMode represents what kind of text input is active.
type InputMode int

const (
	InputNone        InputMode = iota
	InputNewItem               // Entering a new item title
	InputAssign                // Entering a member id to assign (empty clears)
	InputMemberName            // Entering a new member name
	InputMemberEmail           // Entering a new member email
	InputDropMember            // Entering a member id to delete
)

// Layout constants
const (
	colGap      = 2
	minColWidth = 18
	maxRows     = 30
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	columnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Underline(true)

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	statusColors = map[types.Status]lipgloss.Color{
		types.StatusNew:       lipgloss.Color("252"),
		types.StatusActive:    lipgloss.Color("214"),
		types.StatusBlocked:   lipgloss.Color("196"),
		types.StatusCompleted: lipgloss.Color("42"),
	}

	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	inputStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	memberStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("147"))
	eventStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

// Model is the main Bubble Tea model for the board.
type Model struct {
	board types.Board

	columns map[types.Status][]*types.WorkItem
	members []*types.Member
	events  []*types.Event

	// Cursor: column index into types.Statuses, row within the column.
	col int
	row int

	// Input state
	inputMode   InputMode
	inputText   string
	inputLabel  string
	pendingName string // member name held while the email is being typed

	// UI state
	width       int
	height      int
	err         error
	message     string
	showMembers bool
}

// New creates a board model over the given Board.
func New(board types.Board) Model {
	return Model{
		board:   board,
		columns: make(map[types.Status][]*types.WorkItem),
	}
}

// Messages
type boardMsg struct {
	columns map[types.Status][]*types.WorkItem
	members []*types.Member
	events  []*types.Event
	err     error
}

type actionMsg struct {
	message string
	err     error
}

// loadBoard reloads every column, the member list, and the recent events.
func (m Model) loadBoard() tea.Cmd {
	return func() tea.Msg {
		columns := make(map[types.Status][]*types.WorkItem, len(types.Statuses))
		for _, status := range types.Statuses {
			items, err := m.board.ItemsByStatus(status)
			if err != nil {
				return boardMsg{err: err}
			}
			columns[status] = items
		}
		members, err := m.board.Members()
		if err != nil {
			return boardMsg{err: err}
		}
		events, err := m.board.RecentEvents(5)
		if err != nil {
			return boardMsg{err: err}
		}
		return boardMsg{columns: columns, members: members, events: events}
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.loadBoard()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.message = ""
		m.err = nil
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case boardMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.columns = msg.columns
		m.members = msg.members
		m.events = msg.events
		m.clampCursor()
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.message = msg.message
		}
		return m, m.loadBoard()
	}

	return m, nil
}

func (m *Model) clampCursor() {
	if m.col < 0 {
		m.col = 0
	}
	if m.col >= len(types.Statuses) {
		m.col = len(types.Statuses) - 1
	}
	n := len(m.columns[types.Statuses[m.col]])
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

// current returns the item under the cursor, or nil.
func (m Model) current() *types.WorkItem {
	items := m.columns[types.Statuses[m.col]]
	if len(items) == 0 || m.row >= len(items) {
		return nil
	}
	return items[m.row]
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inputMode != InputNone {
		return m.handleInputKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "left", "h":
		m.col--
		m.clampCursor()
	case "right", "l":
		m.col++
		m.clampCursor()
	case "up", "k":
		m.row--
		m.clampCursor()
	case "down", "j":
		m.row++
		m.clampCursor()

	case "H", "[":
		return m.moveStatus(-1)
	case "L", "]":
		return m.moveStatus(+1)
	case "1", "2", "3", "4":
		idx := int(msg.String()[0] - '1')
		return m.setStatus(types.Statuses[idx])

	case "n":
		return m.startInput(InputNewItem, "New item title: ")
	case "d":
		return m.doDeleteItem()
	case "a":
		return m.startInput(InputAssign, "Assign to member id (empty clears): ")

	case "m":
		return m.startInput(InputMemberName, "New member name: ")
	case "X":
		return m.startInput(InputDropMember, "Delete member id: ")
	case "M":
		m.showMembers = !m.showMembers

	case "r":
		return m, m.loadBoard()
	}

	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.inputMode = InputNone
		m.inputText = ""
		m.pendingName = ""
		return m, nil

	case "enter":
		return m.submitInput()

	case "backspace":
		if len(m.inputText) > 0 {
			m.inputText = m.inputText[:len(m.inputText)-1]
		}

	default:
		if len(msg.String()) == 1 {
			m.inputText += msg.String()
		}
	}
	return m, nil
}

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.inputText)
	mode := m.inputMode
	m.inputMode = InputNone
	m.inputText = ""

	switch mode {
	case InputNewItem:
		if text == "" {
			return m, nil
		}
		return m, func() tea.Msg {
			item, err := m.board.CreateItem(text, "", nil)
			if err != nil {
				return actionMsg{err: err}
			}
			return actionMsg{message: fmt.Sprintf("Created item #%d", item.ID)}
		}

	case InputAssign:
		item := m.current()
		if item == nil {
			return m, nil
		}
		var memberID *int64
		if text != "" {
			id, err := strconv.ParseInt(text, 10, 64)
			if err != nil {
				m.err = fmt.Errorf("not a member id: %q", text)
				return m, nil
			}
			memberID = &id
		}
		return m, func() tea.Msg {
			ok, err := m.board.Assign(item.ID, memberID)
			if err != nil {
				return actionMsg{err: err}
			}
			if !ok {
				return actionMsg{message: "Item vanished"}
			}
			if memberID == nil {
				return actionMsg{message: fmt.Sprintf("Unassigned item #%d", item.ID)}
			}
			return actionMsg{message: fmt.Sprintf("Assigned item #%d to member %d", item.ID, *memberID)}
		}

	case InputMemberName:
		if text == "" {
			return m, nil
		}
		m.pendingName = text
		return m.startInput(InputMemberEmail, "New member email: ")

	case InputMemberEmail:
		name := m.pendingName
		m.pendingName = ""
		if text == "" {
			return m, nil
		}
		return m, func() tea.Msg {
			member, err := m.board.CreateMember(name, text)
			if err != nil {
				return actionMsg{err: err}
			}
			return actionMsg{message: fmt.Sprintf("Added member %s (#%d)", member.Name, member.ID)}
		}

	case InputDropMember:
		if text == "" {
			return m, nil
		}
		id, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			m.err = fmt.Errorf("not a member id: %q", text)
			return m, nil
		}
		return m, func() tea.Msg {
			existed, err := m.board.DeleteMember(id)
			if err != nil {
				return actionMsg{err: err}
			}
			if !existed {
				return actionMsg{message: fmt.Sprintf("No member with id %d", id)}
			}
			return actionMsg{message: fmt.Sprintf("Deleted member %d and unassigned their items", id)}
		}
	}

	return m, nil
}

func (m Model) startInput(mode InputMode, label string) (Model, tea.Cmd) {
	m.inputMode = mode
	m.inputLabel = label
	m.inputText = ""
	return m, nil
}

// moveStatus shifts the current item delta columns along the status order.
func (m Model) moveStatus(delta int) (Model, tea.Cmd) {
	target := m.col + delta
	if target < 0 || target >= len(types.Statuses) {
		return m, nil
	}
	return m.setStatus(types.Statuses[target])
}

func (m Model) setStatus(status types.Status) (Model, tea.Cmd) {
	item := m.current()
	if item == nil {
		return m, nil
	}
	return m, func() tea.Msg {
		ok, err := m.board.SetStatus(item.ID, status)
		if err != nil {
			return actionMsg{err: err}
		}
		if !ok {
			return actionMsg{message: "Item vanished"}
		}
		return actionMsg{message: fmt.Sprintf("Item #%d -> %s", item.ID, status)}
	}
}

func (m Model) doDeleteItem() (Model, tea.Cmd) {
	item := m.current()
	if item == nil {
		return m, nil
	}
	return m, func() tea.Msg {
		existed, err := m.board.DeleteItem(item.ID)
		if err != nil {
			return actionMsg{err: err}
		}
		if !existed {
			return actionMsg{message: "Item already gone"}
		}
		return actionMsg{message: fmt.Sprintf("Deleted item #%d", item.ID)}
	}
}

// memberName resolves an assignee id to a display name from the loaded
// member list.
func (m Model) memberName(id *int64) string {
	if id == nil {
		return ""
	}
	for _, member := range m.members {
		if member.ID == *id {
			return member.Name
		}
	}
	return fmt.Sprintf("#%d", *id)
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	total := 0
	for _, items := range m.columns {
		total += len(items)
	}
	b.WriteString(titleStyle.Render("taskboard"))
	b.WriteString(fmt.Sprintf("  %d items, %d members\n\n", total, len(m.members)))

	b.WriteString(m.renderColumns())
	b.WriteString("\n")

	if m.showMembers {
		b.WriteString("\n")
		b.WriteString(m.renderMembers())
	}

	if len(m.events) > 0 {
		b.WriteString("\n")
		e := m.events[0]
		b.WriteString(eventStyle.Render("last: " + e.Kind + " " + e.Detail))
		b.WriteString("\n")
	}

	if m.inputMode != InputNone {
		b.WriteString("\n")
		b.WriteString(inputStyle.Render(m.inputLabel + m.inputText + "█"))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.message != "" {
		b.WriteString("\n")
		b.WriteString(messageStyle.Render(m.message))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("h/l:column j/k:row  [/]:move status 1-4:set status  n:new d:delete a:assign"))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("m:add member X:delete member M:members  r:refresh q:quit"))

	pad := lipgloss.NewStyle().PaddingLeft(2).PaddingTop(1)
	return pad.Render(b.String())
}

// renderColumns lays the four status columns out side by side.
func (m Model) renderColumns() string {
	colWidth := minColWidth
	if m.width > 0 {
		w := (m.width - 4 - colGap*(len(types.Statuses)-1)) / len(types.Statuses)
		if w > colWidth {
			colWidth = w
		}
	}

	rendered := make([]string, 0, len(types.Statuses))
	for ci, status := range types.Statuses {
		rendered = append(rendered, m.renderColumn(ci, status, colWidth))
	}
	gap := strings.Repeat(" ", colGap)
	return lipgloss.JoinHorizontal(lipgloss.Top, interleave(rendered, gap)...)
}

// renderColumn renders one status column.
func (m Model) renderColumn(ci int, status types.Status, width int) string {
	var b strings.Builder

	header := fmt.Sprintf("%s (%d)", strings.ToUpper(string(status)), len(m.columns[status]))
	b.WriteString(columnHeaderStyle.Foreground(statusColors[status]).Render(header))
	b.WriteString("\n")

	items := m.columns[status]
	if len(items) == 0 {
		b.WriteString(helpStyle.Render("-"))
		b.WriteString("\n")
	}
	for ri, item := range items {
		if ri >= maxRows {
			b.WriteString(helpStyle.Render(fmt.Sprintf("… %d more", len(items)-maxRows)))
			b.WriteString("\n")
			break
		}
		// Keep the line plain until after truncation; a cut ANSI
		// sequence garbles the row.
		line := fmt.Sprintf("#%d %s", item.ID, item.Title)
		if name := m.memberName(item.AssignedTo); name != "" {
			line += " @" + name
		}
		line = truncate(line, width)
		if ci == m.col && ri == m.row {
			line = selectedRowStyle.Width(width).Render(line)
		} else if item.AssignedTo != nil {
			line = memberStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(width).Render(b.String())
}

// renderMembers renders the member roster with live workload counts taken
// from the loaded columns.
func (m Model) renderMembers() string {
	var b strings.Builder
	b.WriteString(columnHeaderStyle.Render("MEMBERS"))
	b.WriteString("\n")
	if len(m.members) == 0 {
		b.WriteString(helpStyle.Render("nobody yet; press m to add a member"))
		b.WriteString("\n")
		return b.String()
	}

	load := make(map[int64]int)
	for _, items := range m.columns {
		for _, item := range items {
			if item.AssignedTo != nil {
				load[*item.AssignedTo]++
			}
		}
	}
	for _, member := range m.members {
		b.WriteString(fmt.Sprintf("#%d %s <%s>  %d item(s)\n",
			member.ID, member.Name, member.Email, load[member.ID]))
	}
	return b.String()
}

// interleave joins parts with sep for JoinHorizontal.
func interleave(parts []string, sep string) []string {
	out := make([]string, 0, len(parts)*2-1)
	for i, p := range parts {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, p)
	}
	return out
}

// truncate cuts s to at most width runes.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
