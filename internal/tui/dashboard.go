// ABOUTME: Dashboard TUI model: feed, compose, and search panes over the API client.
// ABOUTME: Owns the fetch/mutate/reconcile cycle and the session-expiry exit path.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/2389-research/homefeed/internal/api"
	"github.com/2389-research/homefeed/internal/feed"
	"github.com/2389-research/homefeed/internal/models"
	"github.com/2389-research/homefeed/internal/search"
)

// Pane identifies which dashboard surface has focus.
type Pane int

const (
	PaneFeed Pane = iota
	PaneCompose
	PaneSearch
)

// Compose field indices.
const (
	fieldCaption = iota
	fieldBody
	fieldImage
	fieldVideo
	composeFields
)

// Messages produced by async API commands. Search and friend-request results
// carry the generation of the pane that started them; results from a
// dismissed pane are dropped instead of mutating discarded state.
type (
	userDetailMsg struct {
		detail *models.UserDetail
		err    error
	}
	uploadDoneMsg struct {
		err error
	}
	deleteDoneMsg struct {
		postID string
		err    error
	}
	searchDoneMsg struct {
		gen     int
		results []models.SearchResult
		err     error
	}
	friendDoneMsg struct {
		gen      int
		username string
		ok       bool
		err      error
	}
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	failStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// DashboardModel renders the user's feed and dispatches user intents into
// the state managers. All state mutation happens in Update, in response to
// completed commands, so no slice is ever mutated concurrently.
type DashboardModel struct {
	client  *api.Client
	feed    *feed.Manager
	results *search.Results

	pane       Pane
	searchGen  int
	loading    bool
	spinner    spinner.Model
	username   string
	twoFactor  bool
	notice     string
	noticeFail bool

	// feed pane
	cursor        int
	confirmDelete string

	// compose pane
	draft        models.DraftPost
	composeFocus int
	caption      textinput.Model
	body         textarea.Model
	imagePath    textinput.Model
	videoPath    textinput.Model

	// search pane
	searchInput  textinput.Model
	searchCursor int

	expired  bool
	quitting bool
}

// NewDashboardModel creates the dashboard over the given API client.
func NewDashboardModel(client *api.Client) DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	caption := textinput.New()
	caption.Placeholder = "caption"
	caption.Width = 50

	body := textarea.New()
	body.Placeholder = "what's on your mind?"
	body.SetWidth(50)
	body.SetHeight(4)

	imagePath := textinput.New()
	imagePath.Placeholder = "path/to/image (optional)"
	imagePath.Width = 50

	videoPath := textinput.New()
	videoPath.Placeholder = "path/to/video (optional)"
	videoPath.Width = 50

	searchInput := textinput.New()
	searchInput.Placeholder = "search users..."
	searchInput.Width = 40

	return DashboardModel{
		client:      client,
		feed:        feed.NewManager(),
		results:     search.NewResults(),
		spinner:     s,
		loading:     true,
		caption:     caption,
		body:        body,
		imagePath:   imagePath,
		videoPath:   videoPath,
		searchInput: searchInput,
	}
}

// Init implements tea.Model: the dashboard starts with a full fetch.
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.fetchUserDetail(), m.spinner.Tick)
}

func (m DashboardModel) fetchUserDetail() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		detail, err := client.FetchUserDetail(context.Background())
		return userDetailMsg{detail: detail, err: err}
	}
}

func (m DashboardModel) uploadPost(draft models.DraftPost) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return uploadDoneMsg{err: client.UploadPost(context.Background(), draft)}
	}
}

func (m DashboardModel) deletePost(postID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return deleteDoneMsg{postID: postID, err: client.DeletePost(context.Background(), postID)}
	}
}

func (m DashboardModel) searchUsers(query string) tea.Cmd {
	client := m.client
	gen := m.searchGen
	return func() tea.Msg {
		results, err := client.SearchUsers(context.Background(), query)
		return searchDoneMsg{gen: gen, results: results, err: err}
	}
}

func (m DashboardModel) sendFriendRequest(username string) tea.Cmd {
	client := m.client
	gen := m.searchGen
	return func() tea.Msg {
		ok, err := client.SendFriendRequest(context.Background(), username)
		return friendDoneMsg{gen: gen, username: username, ok: ok, err: err}
	}
}

// Update implements tea.Model.
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)

	case userDetailMsg:
		m.loading = false
		if msg.err != nil {
			// The client has already cleared the session; leave the TUI so
			// the user lands back at login.
			m.expired = true
			return m, tea.Quit
		}
		// Gate on the flag from the response itself, never on a previously
		// held copy: a 2FA-enabled account must verify before the dashboard
		// renders anything.
		if msg.detail.TwoFactorEnabled {
			m.twoFactor = true
			return m, tea.Quit
		}
		m.username = msg.detail.Username
		m.feed.Initialize(msg.detail.Posts)
		if m.cursor >= m.feed.Len() {
			m.cursor = max(0, m.feed.Len()-1)
		}
		return m, nil

	case uploadDoneMsg:
		m.loading = false
		if msg.err != nil {
			return m.fail(msg.err), nil
		}
		// Upload success invalidates the whole feed: postId, createdAt, and
		// media URLs are server-generated, so re-fetch instead of appending.
		m.feed.MarkStale()
		m.draft.Reset()
		m.resetComposeInputs()
		// Don't yank the user out of another pane if they navigated away
		// while the upload was in flight.
		if m.pane == PaneCompose {
			m.pane = PaneFeed
		}
		m.loading = true
		m.notice = "Posted. Refreshing feed..."
		m.noticeFail = false
		return m, tea.Batch(m.fetchUserDetail(), m.spinner.Tick)

	case deleteDoneMsg:
		m.loading = false
		if msg.err != nil {
			// Leave the list unchanged so the UI stays consistent with
			// backend truth.
			return m.fail(msg.err), nil
		}
		m.feed.ApplyDelete(msg.postID)
		if m.cursor >= m.feed.Len() {
			m.cursor = max(0, m.feed.Len()-1)
		}
		m.notice = "Post deleted."
		m.noticeFail = false
		return m, nil

	case searchDoneMsg:
		// The spinner stops even for a dismissed pane: the operation that
		// started it has finished either way.
		m.loading = false
		if msg.gen != m.searchGen {
			return m, nil // pane was dismissed; drop the result
		}
		if msg.err != nil {
			return m.fail(msg.err), nil
		}
		m.results.Replace(msg.results)
		m.searchCursor = 0
		return m, nil

	case friendDoneMsg:
		m.loading = false
		if msg.gen != m.searchGen {
			return m, nil
		}
		if msg.err != nil {
			return m.fail(msg.err), nil
		}
		if !msg.ok {
			m.notice = "Failed to send friend request."
			m.noticeFail = true
			return m, nil
		}
		m.results.MarkPending(msg.username)
		m.notice = fmt.Sprintf("Friend request sent to @%s.", msg.username)
		m.noticeFail = false
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m DashboardModel) fail(err error) DashboardModel {
	if api.IsUnauthenticated(err) {
		m.expired = true
		m.quitting = true
	}
	m.notice = err.Error()
	m.noticeFail = true
	return m
}

func (m DashboardModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}
	if m.expired {
		return m, tea.Quit
	}

	switch m.pane {
	case PaneFeed:
		return m.updateFeedKey(msg)
	case PaneCompose:
		return m.updateComposeKey(msg)
	case PaneSearch:
		return m.updateSearchKey(msg)
	}
	return m, nil
}

func (m DashboardModel) updateFeedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Pending delete confirmation swallows everything except y/n.
	if m.confirmDelete != "" {
		if msg.Type == tea.KeyRunes {
			switch msg.Runes[0] {
			case 'y':
				postID := m.confirmDelete
				m.confirmDelete = ""
				m.loading = true
				return m, tea.Batch(m.deletePost(postID), m.spinner.Tick)
			case 'n':
				m.confirmDelete = ""
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.feed.Len()-1 {
			m.cursor++
		}
	case "d":
		if post, ok := m.selectedPost(); ok {
			m.confirmDelete = post.PostID
		}
	case "r":
		m.loading = true
		m.notice = ""
		return m, tea.Batch(m.fetchUserDetail(), m.spinner.Tick)
	case "n":
		m.pane = PaneCompose
		m.notice = ""
		m.composeFocus = fieldCaption
		cmd := m.focusComposeField()
		return m, cmd
	case "/":
		m.pane = PaneSearch
		m.notice = ""
		m.searchInput.Focus()
		return m, textinput.Blink
	case "L":
		m.quitting = true
		m.expired = true // reuse the exit path: session is cleared by the caller
		return m, tea.Quit
	}
	return m, nil
}

func (m DashboardModel) selectedPost() (models.Post, bool) {
	posts := m.feed.Posts()
	if m.cursor < 0 || m.cursor >= len(posts) {
		return models.Post{}, false
	}
	return posts[m.cursor], true
}

func (m *DashboardModel) resetComposeInputs() {
	m.caption.SetValue("")
	m.body.SetValue("")
	m.imagePath.SetValue("")
	m.videoPath.SetValue("")
}

func (m *DashboardModel) blurComposeFields() {
	m.caption.Blur()
	m.body.Blur()
	m.imagePath.Blur()
	m.videoPath.Blur()
}

func (m *DashboardModel) focusComposeField() tea.Cmd {
	m.blurComposeFields()
	switch m.composeFocus {
	case fieldCaption:
		return m.caption.Focus()
	case fieldBody:
		return m.body.Focus()
	case fieldImage:
		return m.imagePath.Focus()
	case fieldVideo:
		return m.videoPath.Focus()
	}
	return nil
}

func (m DashboardModel) updateComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		// Navigation away discards the draft.
		m.draft.Reset()
		m.resetComposeInputs()
		m.blurComposeFields()
		m.pane = PaneFeed
		return m, nil

	case tea.KeyTab, tea.KeyShiftTab:
		if msg.Type == tea.KeyTab {
			m.composeFocus = (m.composeFocus + 1) % composeFields
		} else {
			m.composeFocus = (m.composeFocus + composeFields - 1) % composeFields
		}
		cmd := m.focusComposeField()
		return m, cmd

	case tea.KeyCtrlS:
		// No client-side mandatory-field validation: an empty draft still
		// uploads and the backend decides.
		m.draft = models.DraftPost{
			Caption: m.caption.Value(),
			Body:    m.body.Value(),
			Image:   strings.TrimSpace(m.imagePath.Value()),
			Video:   strings.TrimSpace(m.videoPath.Value()),
		}
		m.loading = true
		m.blurComposeFields()
		return m, tea.Batch(m.uploadPost(m.draft), m.spinner.Tick)
	}

	var cmd tea.Cmd
	switch m.composeFocus {
	case fieldCaption:
		m.caption, cmd = m.caption.Update(msg)
	case fieldBody:
		m.body, cmd = m.body.Update(msg)
	case fieldImage:
		m.imagePath, cmd = m.imagePath.Update(msg)
	case fieldVideo:
		m.videoPath, cmd = m.videoPath.Update(msg)
	}
	return m, cmd
}

func (m DashboardModel) updateSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		// Dismissing the pane invalidates in-flight search results.
		m.searchGen++
		m.searchInput.Blur()
		m.pane = PaneFeed
		return m, nil

	case tea.KeyEnter:
		m.loading = true
		m.notice = ""
		return m, tea.Batch(m.searchUsers(m.searchInput.Value()), m.spinner.Tick)

	case tea.KeyUp:
		if m.searchCursor > 0 {
			m.searchCursor--
		}
		return m, nil

	case tea.KeyDown:
		if m.searchCursor < m.results.Len()-1 {
			m.searchCursor++
		}
		return m, nil

	case tea.KeyCtrlA:
		entries := m.results.Entries()
		if m.searchCursor < 0 || m.searchCursor >= len(entries) {
			return m, nil
		}
		target := entries[m.searchCursor]
		// No-op unless the lifecycle allows a request (NONE or REJECTED).
		if !m.results.CanRequest(target.Username) {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.sendFriendRequest(target.Username), m.spinner.Tick)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m DashboardModel) View() string {
	if m.quitting || m.expired || m.twoFactor {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(headerStyle.Render("  HOMEFEED"))
	if m.username != "" {
		b.WriteString(dimStyle.Render("  @" + m.username))
	}
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" Working...\n\n")
	}

	if m.notice != "" {
		if m.noticeFail {
			b.WriteString(failStyle.Render("  " + m.notice))
		} else {
			b.WriteString(noticeStyle.Render("  " + m.notice))
		}
		b.WriteString("\n\n")
	}

	switch m.pane {
	case PaneFeed:
		m.viewFeed(&b)
	case PaneCompose:
		m.viewCompose(&b)
	case PaneSearch:
		m.viewSearch(&b)
	}

	return b.String()
}

func (m DashboardModel) viewFeed(b *strings.Builder) {
	if m.confirmDelete != "" {
		b.WriteString(failStyle.Render("  Delete this post? [y/n]"))
		b.WriteString("\n\n")
	}

	posts := m.feed.Posts()
	if len(posts) == 0 && !m.loading {
		b.WriteString(dimStyle.Render("  No posts yet. Press n to write one.\n"))
	}
	for i, post := range posts {
		var card strings.Builder
		title := post.Caption
		if title == "" {
			title = "(no caption)"
		}
		if i == m.cursor {
			card.WriteString(selectedStyle.Render(title))
		} else {
			card.WriteString(title)
		}
		card.WriteString("\n")
		card.WriteString(post.Body)
		if post.ImageURL != "" {
			card.WriteString("\n")
			card.WriteString(dimStyle.Render("image: " + post.ImageURL))
		}
		if post.VideoURL != "" {
			card.WriteString("\n")
			card.WriteString(dimStyle.Render("video: " + post.VideoURL))
		}
		if !post.CreatedAt.IsZero() {
			card.WriteString("\n")
			card.WriteString(dimStyle.Render("posted " + post.CreatedAt.Format("2006-01-02 15:04")))
		}
		b.WriteString(cardStyle.Render(card.String()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  j/k move  n new post  d delete  / search  r reload  L logout  q quit"))
	b.WriteString("\n")
}

func (m DashboardModel) viewCompose(b *strings.Builder) {
	b.WriteString(headerStyle.Render("  New Post"))
	b.WriteString("\n\n")
	b.WriteString("  Caption:\n  " + m.caption.View() + "\n\n")
	b.WriteString("  Text:\n" + m.body.View() + "\n\n")
	b.WriteString("  Image:\n  " + m.imagePath.View() + "\n\n")
	b.WriteString("  Video:\n  " + m.videoPath.View() + "\n\n")
	b.WriteString(dimStyle.Render("  tab next field  ctrl+s upload  esc cancel"))
	b.WriteString("\n")
}

func (m DashboardModel) viewSearch(b *strings.Builder) {
	b.WriteString(headerStyle.Render("  Find Friends"))
	b.WriteString("\n\n  ")
	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	for i, entry := range m.results.Entries() {
		line := "  " + entry.DisplayName()
		switch entry.RequestStatus {
		case models.StatusPending:
			line += dimStyle.Render("  [pending]")
		case models.StatusAccepted:
			line += noticeStyle.Render("  [friends]")
		case models.StatusRejected:
			line += failStyle.Render("  [rejected - retry with ctrl+a]")
		}
		if i == m.searchCursor {
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  enter search  up/down select  ctrl+a add friend  esc back"))
	b.WriteString("\n")
}

// SessionExpired reports whether the dashboard exited because the session
// was cleared (or the user chose logout).
func (m DashboardModel) SessionExpired() bool {
	return m.expired
}

// TwoFactorPending reports whether the dashboard refused to render because
// the account requires two-factor verification first.
func (m DashboardModel) TwoFactorPending() bool {
	return m.twoFactor
}
