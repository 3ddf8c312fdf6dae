package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"petdex/pkg/client"
	"petdex/pkg/domain"
)

// Mutating actions a card can run. One action per pet may be in flight at a
// time; completions for different pets may interleave freely because each
// response only overwrites its own pet's record.
const (
	actionFeed  = "feed"
	actionTrain = "train"
)

// -- messages --

type petsLoadedMsg struct {
	pets []domain.Pet
	err  error
}

type petMutatedMsg struct {
	id     int64
	action string
	pet    *domain.Pet
	err    error
}

type petDeletedMsg struct {
	id  int64
	err error
}

// -- model --

type dashboardModel struct {
	client     *client.Client
	pets       []domain.Pet
	loading    bool
	errMsg     string
	statusMsg  string
	cursor     int
	inFlight   map[int64]bool
	confirming bool

	width  int
	height int
}

func newDashboardModel(c *client.Client) dashboardModel {
	return dashboardModel{client: c, inFlight: make(map[int64]bool)}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.load()
}

func (m dashboardModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		pets, err := c.MyPets(context.Background())
		return petsLoadedMsg{pets: pets, err: err}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case petsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = "could not load your pets: " + msg.err.Error()
		} else {
			m.pets = msg.pets
			m.errMsg = ""
			if m.cursor >= len(m.pets) {
				m.cursor = 0
			}
		}
		return m, nil

	case petMutatedMsg:
		delete(m.inFlight, msg.id)
		if msg.err != nil {
			// The confirmed record was never replaced, so nothing to roll back.
			m.errMsg = fmt.Sprintf("could not %s pet: %v", msg.action, msg.err)
			return m, nil
		}
		m.replacePet(*msg.pet)
		m.errMsg = ""
		m.statusMsg = fmt.Sprintf("%s done: %s", msg.action, msg.pet.Name)
		return m, nil

	case petDeletedMsg:
		delete(m.inFlight, msg.id)
		if msg.err != nil {
			m.errMsg = "could not delete pet: " + msg.err.Error()
			return m, nil
		}
		m.removePet(msg.id)
		m.errMsg = ""
		m.statusMsg = "pet deleted"
		return m, nil

	case petCreatedMsg:
		if msg.err == nil && msg.pet != nil {
			m.pets = append(m.pets, *msg.pet)
			m.statusMsg = "welcome, " + msg.pet.Name
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m dashboardModel) updateKeys(msg tea.KeyMsg) (dashboardModel, tea.Cmd) {
	if m.confirming {
		switch msg.String() {
		case "y":
			m.confirming = false
			return m.deleteSelected()
		case "n", "esc":
			m.confirming = false
		}
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.pets)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "f":
		return m.mutateSelected(actionFeed)
	case "t":
		return m.mutateSelected(actionTrain)
	case "d":
		if len(m.pets) > 0 && !m.inFlight[m.pets[m.cursor].ID] {
			m.confirming = true
		}
	case "r":
		m.loading = true
		m.statusMsg = ""
		return m, m.load()
	}
	return m, nil
}

// mutateSelected computes the optimistic next state for the selected pet and
// sends only the changed fields. The local list keeps the confirmed record
// until the server answers; the response replaces it wholesale.
func (m dashboardModel) mutateSelected(action string) (dashboardModel, tea.Cmd) {
	if len(m.pets) == 0 {
		return m, nil
	}
	pet := m.pets[m.cursor]
	if m.inFlight[pet.ID] {
		// One mutation per pet at a time.
		return m, nil
	}

	var next domain.Pet
	switch action {
	case actionFeed:
		next = pet.Fed()
	case actionTrain:
		next = pet.Trained()
	default:
		return m, nil
	}

	energy, hunger := next.EnergyLevel, next.HungerLevel
	req := client.UpdatePetRequest{
		EnergyLevel: &energy,
		HungerLevel: &hunger,
	}
	if next.Mood != pet.Mood {
		req.Mood = next.Mood
	}

	m.inFlight[pet.ID] = true
	m.errMsg = ""
	m.statusMsg = ""

	c := m.client
	id := pet.ID
	return m, func() tea.Msg {
		updated, err := c.UpdatePet(context.Background(), id, req)
		return petMutatedMsg{id: id, action: action, pet: updated, err: err}
	}
}

func (m dashboardModel) deleteSelected() (dashboardModel, tea.Cmd) {
	if len(m.pets) == 0 {
		return m, nil
	}
	pet := m.pets[m.cursor]
	if m.inFlight[pet.ID] {
		return m, nil
	}
	m.inFlight[pet.ID] = true
	m.errMsg = ""
	m.statusMsg = ""

	c := m.client
	id := pet.ID
	return m, func() tea.Msg {
		return petDeletedMsg{id: id, err: c.DeletePet(context.Background(), id)}
	}
}

func (m *dashboardModel) replacePet(updated domain.Pet) {
	for i := range m.pets {
		if m.pets[i].ID == updated.ID {
			m.pets[i] = updated
			return
		}
	}
}

func (m *dashboardModel) removePet(id int64) {
	for i := range m.pets {
		if m.pets[i].ID == id {
			m.pets = append(m.pets[:i], m.pets[i+1:]...)
			break
		}
	}
	if m.cursor >= len(m.pets) && m.cursor > 0 {
		m.cursor--
	}
}

func (m dashboardModel) View() string {
	if m.loading && len(m.pets) == 0 {
		return " " + dimStyle.Render("loading your pets...")
	}
	if len(m.pets) == 0 {
		if m.errMsg != "" {
			return " " + errorStyle.Render(m.errMsg)
		}
		return " " + dimStyle.Render("no pets yet — press n to create one")
	}

	var list strings.Builder
	for i, pet := range m.pets {
		cursor := " "
		nameStyle := normalStyle
		if i == m.cursor {
			cursor = ">"
			nameStyle = selectedStyle
		}

		line := fmt.Sprintf(" %s %s  %s  %s",
			cursor,
			nameStyle.Render(truncStr(pet.Name, 20)),
			metaStyle.Render(string(pet.Type)),
			MoodStyle(pet.Mood).Render(pet.Mood))
		if m.inFlight[pet.ID] {
			line += "  " + dimStyle.Render("updating...")
		}
		list.WriteString(line + "\n")

		list.WriteString("     " + metaStyle.Render("energy") + " " + renderLevelBar(pet.EnergyLevel, false) +
			"   " + metaStyle.Render("hunger") + " " + renderLevelBar(pet.HungerLevel, true) + "\n")
	}

	selected := m.pets[m.cursor]
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		list.String(),
		accentStyle.Render(sprite(selected.Type, selected.EnergyLevel)))

	var footer string
	switch {
	case m.confirming:
		footer = "\n " + errorStyle.Render(fmt.Sprintf("delete %s? y/n", selected.Name))
	case m.errMsg != "":
		footer = "\n " + errorStyle.Render(m.errMsg)
	case m.statusMsg != "":
		footer = "\n " + okStyle.Render(m.statusMsg)
	}

	return body + footer
}
