package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const DEFAULT_SERVER_URL = "http://localhost:3536"

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true).
			PaddingLeft(2)

	normalStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

type step int

const (
	stepEnteringUsername step = iota
	stepEnteringPassword
	stepLoggingIn
	stepLoadingFeedback
	stepViewingFeedback
	stepEnteringTitle
	stepEnteringContent
	stepSubmitting
)

type feedbackItem struct {
	ID      uint   `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type model struct {
	client       *http.Client
	serverURL    string
	step         step
	feedback     []feedbackItem
	cursor       int
	username     string
	password     string
	newTitle     string
	newContent   string
	currentInput string
	message      string
	quitting     bool
}

type loginSuccessMsg struct{}
type feedbackListMsg []feedbackItem
type addSuccessMsg struct{}
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func serverURL() string {
	if url := os.Getenv("FEEDBACK_SERVER_URL"); url != "" {
		return strings.TrimRight(url, "/")
	}
	return DEFAULT_SERVER_URL
}

func initialModel() model {
	// The cookie jar carries the session cookie set by /login
	jar, _ := cookiejar.New(nil)
	return model{
		client:    &http.Client{Timeout: 10 * time.Second, Jar: jar},
		serverURL: serverURL(),
		step:      stepEnteringUsername,
		feedback:  []feedbackItem{},
		cursor:    0,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func loginUser(client *http.Client, serverURL, username, password string) tea.Cmd {
	return func() tea.Msg {
		payload := map[string]string{
			"username": username,
			"password": password,
		}
		jsonData, _ := json.Marshal(payload)

		req, _ := http.NewRequest("POST", serverURL+"/login", bytes.NewBuffer(jsonData))
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return errMsg{fmt.Errorf("server not reachable: %w", err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return errMsg{fmt.Errorf("invalid username or password")}
		}

		return loginSuccessMsg{}
	}
}

func loadFeedback(client *http.Client, serverURL, username string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Get(serverURL + "/users/" + username)
		if err != nil {
			return errMsg{fmt.Errorf("failed to load feedback: %w", err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return errMsg{fmt.Errorf("failed to load feedback (status %d)", resp.StatusCode)}
		}

		var result struct {
			Data struct {
				Feedback []feedbackItem `json:"feedback"`
			} `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return errMsg{fmt.Errorf("failed to decode feedback: %w", err)}
		}

		return feedbackListMsg(result.Data.Feedback)
	}
}

func addFeedback(client *http.Client, serverURL, username, title, content string) tea.Cmd {
	return func() tea.Msg {
		payload := map[string]string{
			"title":   title,
			"content": content,
		}
		jsonData, _ := json.Marshal(payload)

		req, _ := http.NewRequest("POST", serverURL+"/users/"+username+"/feedback/add", bytes.NewBuffer(jsonData))
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return errMsg{fmt.Errorf("failed to send: %w", err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			return errMsg{fmt.Errorf("server returned %d", resp.StatusCode)}
		}

		return addSuccessMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "q":
			if m.step == stepViewingFeedback {
				m.quitting = true
				return m, tea.Quit
			}
			if isTypingStep(m.step) {
				m.currentInput += "q"
			}

		case "up", "k":
			if m.step == stepViewingFeedback && m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.step == stepViewingFeedback && m.cursor < len(m.feedback)-1 {
				m.cursor++
			}

		case "a":
			if m.step == stepViewingFeedback {
				m.step = stepEnteringTitle
				m.currentInput = ""
				return m, nil
			}
			if isTypingStep(m.step) {
				m.currentInput += "a"
			}

		case "r":
			if m.step == stepViewingFeedback {
				m.step = stepLoadingFeedback
				m.message = "Refreshing..."
				return m, loadFeedback(m.client, m.serverURL, m.username)
			}
			if isTypingStep(m.step) {
				m.currentInput += "r"
			}

		case "backspace":
			if len(m.currentInput) > 0 {
				m.currentInput = m.currentInput[:len(m.currentInput)-1]
			}

		default:
			if isTypingStep(m.step) {
				m.currentInput += msg.String()
			}

		case "enter":
			switch m.step {
			case stepEnteringUsername:
				if m.currentInput != "" {
					m.username = m.currentInput
					m.currentInput = ""
					m.step = stepEnteringPassword
				}

			case stepEnteringPassword:
				if m.currentInput != "" {
					m.password = m.currentInput
					m.currentInput = ""
					m.step = stepLoggingIn
					m.message = "Logging in..."
					return m, loginUser(m.client, m.serverURL, m.username, m.password)
				}

			case stepEnteringTitle:
				if m.currentInput != "" {
					m.newTitle = m.currentInput
					m.currentInput = ""
					m.step = stepEnteringContent
				}

			case stepEnteringContent:
				if m.currentInput != "" {
					m.newContent = m.currentInput
					m.currentInput = ""
					m.step = stepSubmitting
					m.message = "Posting feedback..."
					return m, addFeedback(m.client, m.serverURL, m.username, m.newTitle, m.newContent)
				}
			}
		}

	case loginSuccessMsg:
		m.step = stepLoadingFeedback
		m.message = successStyle.Render("Logged in as " + m.username)
		return m, loadFeedback(m.client, m.serverURL, m.username)

	case feedbackListMsg:
		m.feedback = []feedbackItem(msg)
		if m.cursor >= len(m.feedback) {
			m.cursor = 0
		}
		m.step = stepViewingFeedback

	case addSuccessMsg:
		m.message = successStyle.Render("Feedback added!")
		m.step = stepLoadingFeedback
		return m, loadFeedback(m.client, m.serverURL, m.username)

	case errMsg:
		m.message = errorStyle.Render("Error: " + msg.err.Error())
		if m.step == stepLoggingIn {
			m.step = stepEnteringUsername
			m.currentInput = ""
		} else {
			m.step = stepViewingFeedback
		}
	}

	return m, nil
}

func isTypingStep(s step) bool {
	return s == stepEnteringUsername || s == stepEnteringPassword || s == stepEnteringTitle || s == stepEnteringContent
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("Feedback Board\n\n"))

	switch m.step {
	case stepEnteringUsername:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		s.WriteString(promptStyle.Render("Enter your username:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringPassword:
		s.WriteString(promptStyle.Render("Enter your password:\n"))
		s.WriteString(inputStyle.Render("> " + strings.Repeat("*", len(m.currentInput))))
		s.WriteString("\n\nPress Enter\n")

	case stepLoggingIn, stepLoadingFeedback, stepSubmitting:
		s.WriteString(m.message + "\n")

	case stepViewingFeedback:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		if len(m.feedback) == 0 {
			s.WriteString("No feedback yet.\n")
		} else {
			for i, entry := range m.feedback {
				cursor := " "
				style := normalStyle
				if m.cursor == i {
					cursor = ">"
					style = selectedStyle
				}
				s.WriteString(fmt.Sprintf("%s %s\n", cursor, style.Render(entry.Title)))
				if m.cursor == i {
					s.WriteString(normalStyle.Render(entry.Content) + "\n")
				}
			}
		}
		s.WriteString("\nUse up/down, a to add, r to refresh, q to quit\n")

	case stepEnteringTitle:
		s.WriteString(promptStyle.Render("Feedback title:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringContent:
		s.WriteString(promptStyle.Render("Feedback content:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")
	}

	return s.String()
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
