package tui

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"petdex/pkg/client"
	"petdex/pkg/domain"
)

// maxPetNameLen matches the backend's name column limit.
const maxPetNameLen = 50

type createField int

const (
	createFieldName createField = iota
	createFieldType
	numCreateFields
)

// petCreatedMsg carries the result of a create-pet request. The dashboard
// consumes the created record; this form consumes the error.
type petCreatedMsg struct {
	pet *domain.Pet
	err error
}

type createModel struct {
	client     *client.Client
	name       string
	typeIdx    int // index into domain.ValidTypes; -1 means unselected
	focus      createField
	statusMsg  string
	submitting bool

	width  int
	height int
}

func newCreateModel(c *client.Client) createModel {
	return createModel{client: c, typeIdx: -1}
}

func (m createModel) Init() tea.Cmd {
	return nil
}

func (m createModel) Update(msg tea.Msg) (createModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case petCreatedMsg:
		m.submitting = false
		if msg.err != nil {
			m.statusMsg = "could not create pet: " + msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m createModel) updateKeys(msg tea.KeyMsg) (createModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		return m.submit()
	case "tab", "down", "enter":
		m.focus = (m.focus + 1) % numCreateFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numCreateFields) % numCreateFields
	case "backspace":
		if m.focus == createFieldName {
			m.name = editRune(m.name, "backspace")
			m.statusMsg = ""
		}
	default:
		key := msg.String()
		if m.focus == createFieldType {
			// Cycle through pet types with h/l.
			if key == "h" || key == "l" {
				n := len(domain.ValidTypes)
				switch {
				case m.typeIdx < 0:
					m.typeIdx = 0
				case key == "l":
					m.typeIdx = (m.typeIdx + 1) % n
				default:
					m.typeIdx = (m.typeIdx - 1 + n) % n
				}
				m.statusMsg = ""
			}
			return m, nil
		}
		before := m.name
		m.name = editRune(before, key)
		if m.name != before {
			m.statusMsg = ""
		}
	}
	return m, nil
}

func (m createModel) submit() (createModel, tea.Cmd) {
	name := strings.TrimSpace(m.name)

	if name == "" {
		m.statusMsg = "name is required"
		return m, nil
	}
	if utf8.RuneCountInString(name) > maxPetNameLen {
		m.statusMsg = fmt.Sprintf("name cannot exceed %d characters", maxPetNameLen)
		return m, nil
	}
	if m.typeIdx < 0 {
		m.statusMsg = "pick a type (use h/l)"
		return m, nil
	}
	petType := domain.ValidTypes[m.typeIdx]
	if !domain.ValidType(petType) {
		m.statusMsg = "invalid pet type"
		return m, nil
	}

	m.submitting = true
	req := client.CreatePetRequest{Name: name, PetType: petType}

	c := m.client
	return m, func() tea.Msg {
		pet, err := c.CreatePet(context.Background(), req)
		return petCreatedMsg{pet: pet, err: err}
	}
}

func (m createModel) View() string {
	var b strings.Builder

	b.WriteString(" " + selectedStyle.Render("new pet") + "\n\n")

	nameCursor, typeCursor := " ", " "
	nameStyle, typeStyle := metaStyle, metaStyle
	if m.focus == createFieldName {
		nameCursor, nameStyle = ">", selectedStyle
	} else {
		typeCursor, typeStyle = ">", selectedStyle
	}

	nameValue := m.name
	if m.focus == createFieldName {
		nameValue += "█"
	}
	fmt.Fprintf(&b, " %s %s: %s\n", nameCursor, nameStyle.Render("name"), nameValue)

	typeValue := dimStyle.Render("(h/l to pick)")
	if m.typeIdx >= 0 {
		t := domain.ValidTypes[m.typeIdx]
		typeValue = accentStyle.Render(string(t)) + "  " + dimStyle.Render("(h/l to cycle)")
	}
	fmt.Fprintf(&b, " %s %s: %s\n", typeCursor, typeStyle.Render("type"), typeValue)

	if m.typeIdx >= 0 {
		b.WriteString("\n" + accentStyle.Render(sprite(domain.ValidTypes[m.typeIdx], 100)) + "\n")
	}

	b.WriteString("\n")
	if m.submitting {
		b.WriteString(" " + dimStyle.Render("creating..."))
	} else if m.statusMsg != "" {
		b.WriteString(" " + errorStyle.Render(m.statusMsg))
	} else {
		b.WriteString(" " + metaStyle.Render("ctrl+s to create, esc to cancel"))
	}

	return b.String()
}
