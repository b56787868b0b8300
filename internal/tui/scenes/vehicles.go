package scenes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/rgehrsitz/evtco/internal/refdata"
	"github.com/rgehrsitz/evtco/internal/tui/components"
	"github.com/rgehrsitz/evtco/internal/tui/tuimsg"
	"github.com/rgehrsitz/evtco/internal/tui/tuistyles"
)

var (
	keyTab    = key.NewBinding(key.WithKeys("tab", "shift+tab"))
	keySelect = key.NewBinding(key.WithKeys("enter", " "))
	keyTop    = key.NewBinding(key.WithKeys("g"))
	keyBottom = key.NewBinding(key.WithKeys("G"))
)

// vehicleList is one selectable column
type vehicleList struct {
	title    string
	cards    []*components.VehicleCard
	selected int
}

func (l *vehicleList) current() *components.VehicleCard {
	if l.selected < 0 || l.selected >= len(l.cards) {
		return nil
	}
	return l.cards[l.selected]
}

// VehiclesModel lets the user pick the subscription EV and the leased
// combustion car from the catalogue
type VehiclesModel struct {
	evs    vehicleList
	ices   vehicleList
	onICE  bool
	evID   string
	iceID  string
	width  int
	height int
}

// NewVehiclesModel creates a new vehicles scene model
func NewVehiclesModel() *VehiclesModel {
	return &VehiclesModel{
		evs:  vehicleList{title: "Subscription (EV)"},
		ices: vehicleList{title: "Lease (combustion)"},
	}
}

// SetCatalog fills both lists with the vehicles that carry an offer
func (m *VehiclesModel) SetCatalog(c *refdata.Catalog) {
	m.evs.cards = cardsFor(c.Subscribable())
	m.ices.cards = cardsFor(c.Leasable())
	m.evs.selected = min(m.evs.selected, max(len(m.evs.cards)-1, 0))
	m.ices.selected = min(m.ices.selected, max(len(m.ices.cards)-1, 0))
	m.markActive()
}

// SetPair marks the compared pair and moves the cursors onto it
func (m *VehiclesModel) SetPair(evID, iceID string) {
	m.evID, m.iceID = evID, iceID
	for i, c := range m.evs.cards {
		if c.Vehicle.ID == evID {
			m.evs.selected = i
		}
	}
	for i, c := range m.ices.cards {
		if c.Vehicle.ID == iceID {
			m.ices.selected = i
		}
	}
	m.markActive()
}

// SetSize updates the scene dimensions
func (m *VehiclesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the vehicles scene
func (m *VehiclesModel) Update(msg tea.Msg) (*VehiclesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m *VehiclesModel) handleKeyPress(msg tea.KeyMsg) (*VehiclesModel, tea.Cmd) {
	list := m.activeList()
	switch {
	case key.Matches(msg, keyTab):
		m.onICE = !m.onICE
	case key.Matches(msg, keyUp):
		if list.selected > 0 {
			list.selected--
		}
	case key.Matches(msg, keyDown):
		if list.selected < len(list.cards)-1 {
			list.selected++
		}
	case key.Matches(msg, keyTop):
		list.selected = 0
	case key.Matches(msg, keyBottom):
		list.selected = max(len(list.cards)-1, 0)
	case key.Matches(msg, keySelect):
		return m, m.selectPair()
	}
	return m, nil
}

// selectPair emits the pair under the cursors
func (m *VehiclesModel) selectPair() tea.Cmd {
	ev, ice := m.evs.current(), m.ices.current()
	if ev == nil || ice == nil {
		return nil
	}
	evID, iceID := ev.Vehicle.ID, ice.Vehicle.ID
	return func() tea.Msg {
		return tuimsg.VehiclesSelectedMsg{EVID: evID, ICEID: iceID}
	}
}

func (m *VehiclesModel) activeList() *vehicleList {
	if m.onICE {
		return &m.ices
	}
	return &m.evs
}

func (m *VehiclesModel) markActive() {
	for _, c := range m.evs.cards {
		c.SetActive(c.Vehicle.ID == m.evID)
	}
	for _, c := range m.ices.cards {
		c.SetActive(c.Vehicle.ID == m.iceID)
	}
}

// View renders the vehicles scene
func (m *VehiclesModel) View() string {
	if len(m.evs.cards) == 0 && len(m.ices.cards) == 0 {
		return tuistyles.BorderStyle.Render("No vehicles in the catalogue.\n\nPress ESC to return.")
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		renderVehicleList(&m.evs, !m.onICE),
		renderVehicleList(&m.ices, m.onICE))

	var detail string
	if c := m.activeList().current(); c != nil {
		detail = c.SetSelected(true).Render()
	}

	help := tuistyles.HelpDescStyle.Render("↑/↓ move • tab switch list • enter compare pair • ESC back")
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", detail) + "\n\n" + help
}

func renderVehicleList(l *vehicleList, active bool) string {
	style := tuistyles.BorderStyle.Width(48)
	if active {
		style = tuistyles.ActiveBorderStyle.Width(48)
	}
	selected := -1
	if active {
		selected = l.selected
	}
	title := tuistyles.TitleStyle.Render(l.title)
	return style.Render(title + "\n" + components.VehicleListCompact(l.cards, selected))
}

func cardsFor(vs []domain.Vehicle) []*components.VehicleCard {
	cards := make([]*components.VehicleCard, len(vs))
	for i, v := range vs {
		cards[i] = components.NewVehicleCard(v)
	}
	return cards
}
