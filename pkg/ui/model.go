// Package ui implements the interactive course presentation: a topic
// sidebar, a tabbed content pane, terminal charts, and keyboard-driven
// calculators.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iotsyslab/coursedeck/pkg/calc"
	"github.com/iotsyslab/coursedeck/pkg/content"
	"github.com/iotsyslab/coursedeck/pkg/model"
)

// Tab indices for the right pane. Labs is only reachable when the
// selected topic carries lab activities.
const (
	tabContent = iota
	tabCharts
	tabCode
	tabKeyTopics
	tabLabs
)

var tabNames = []string{"Content", "Charts", "Code", "Key Topics", "Labs"}

// ReloadMsg carries a freshly merged content store after an overlay
// change on disk.
type ReloadMsg struct {
	Store *content.Store
}

// ProgressSaver persists completion flags. Implementations are
// best-effort; errors surface as a status line, never as a crash.
type ProgressSaver interface {
	SetCompleted(topicID string, completed bool) error
}

// topicItem adapts a course topic for the sidebar list.
type topicItem struct {
	topic model.Topic
	done  bool
}

func (i topicItem) FilterValue() string { return i.topic.Title }

// topicDelegate renders one sidebar row: checkmark plus title.
type topicDelegate struct {
	theme Theme
}

func (d topicDelegate) Height() int                             { return 1 }
func (d topicDelegate) Spacing() int                            { return 0 }
func (d topicDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d topicDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(topicItem)
	if !ok {
		return
	}

	mark := d.theme.TodoMark.Render("○")
	if ti.done {
		mark = d.theme.DoneMark.Render("✓")
	}

	title := padLabel(ti.topic.Title, m.Width()-6)
	row := fmt.Sprintf("%s %s", mark, title)
	if index == m.Index() {
		row = d.theme.Selected.Render(row)
	} else {
		row = " " + d.theme.Base.Render(row)
	}
	fmt.Fprint(w, row)
}

// Model is the top-level Bubble Tea model for the presentation.
type Model struct {
	theme    Theme
	store    *content.Store
	progress model.Progress
	saver    ProgressSaver

	list     list.Model
	viewport viewport.Model
	md       *Markdown

	activeTab int
	seed      uint64

	energy SliderGroup
	cloud  SliderGroup

	width  int
	height int
	ready  bool

	showHelp    bool
	confirmQuit bool
	status      string

	sidebarWidth int
}

// NewModel builds the presentation model over a content store.
func NewModel(store *content.Store, progress model.Progress, theme Theme) Model {
	if progress == nil {
		progress = make(model.Progress)
	}

	m := Model{
		theme:        theme,
		store:        store,
		progress:     progress,
		md:           NewMarkdown(80),
		seed:         1,
		sidebarWidth: 34,
		energy: SliderGroup{Sliders: []*Slider{
			{Label: "Hours ON per day (before)", Min: 0, Max: 24, Step: 1, Value: 16, Format: "%.0f h"},
			{Label: "Hours ON per day (after)", Min: 0, Max: 24, Step: 1, Value: 8, Format: "%.0f h"},
			{Label: "Device power", Min: 1, Max: 3000, Step: 50, Value: 500, Format: "%.0f W"},
			{Label: "Electricity price", Min: 0, Max: 1, Step: 0.05, Value: 0.25, Format: "%.2f /kWh"},
		}},
		cloud: SliderGroup{Sliders: []*Slider{
			{Label: "Number of devices", Min: 10, Max: 10000, Step: 100, Value: 100, Format: "%.0f"},
			{Label: "Messages per device/day", Min: 10, Max: 1000, Step: 10, Value: 100, Format: "%.0f"},
		}},
	}

	l := list.New(m.buildItems(), topicDelegate{theme: theme}, m.sidebarWidth, 20)
	l.Title = "IoT Systems Course"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = theme.Header
	m.list = l

	m.viewport = viewport.New(40, 20)
	return m
}

// WithSaver attaches best-effort progress persistence.
func (m Model) WithSaver(s ProgressSaver) Model {
	m.saver = s
	return m
}

// WithSeed fixes the chart noise seed, mainly for reproducible tests.
func (m Model) WithSeed(seed uint64) Model {
	m.seed = seed
	return m
}

// WithSidebarWidth overrides the sidebar width from config.
func (m Model) WithSidebarWidth(w int) Model {
	if w >= 20 && w <= 60 {
		m.sidebarWidth = w
	}
	return m
}

// WithStartTopic selects the given topic if it exists.
func (m Model) WithStartTopic(id string) Model {
	if idx := m.store.Index(id); idx >= 0 {
		m.list.Select(idx)
	}
	return m
}

func (m Model) buildItems() []list.Item {
	topics := m.store.Topics()
	items := make([]list.Item, len(topics))
	for i, t := range topics {
		items[i] = topicItem{topic: t, done: m.progress[t.ID]}
	}
	return items
}

// Selected returns the currently selected topic.
func (m Model) Selected() model.Topic {
	if item, ok := m.list.SelectedItem().(topicItem); ok {
		return item.topic
	}
	topics := m.store.Topics()
	if len(topics) > 0 {
		return topics[0]
	}
	return model.Topic{}
}

// Progress exposes the live progress map, e.g. for outline export on
// quit.
func (m Model) Progress() model.Progress {
	return m.progress
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		m.refreshContent()
		return m, nil

	case ReloadMsg:
		if msg.Store != nil {
			selected := m.Selected().ID
			m.store = msg.Store
			m.list.SetItems(m.buildItems())
			if idx := m.store.Index(selected); idx >= 0 {
				m.list.Select(idx)
			}
			m.status = "content reloaded"
			m.clampTab()
			m.refreshContent()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) layout() {
	sidebar := m.sidebarWidth
	if m.width < sidebar+40 {
		sidebar = m.width / 3
	}
	m.list.SetSize(sidebar, m.height-2)

	paneW := m.width - sidebar - 4
	paneH := m.height - 5
	if paneW < 20 {
		paneW = 20
	}
	if paneH < 5 {
		paneH = 5
	}
	m.viewport.Width = paneW
	m.viewport.Height = paneH
	m.md.SetWidth(paneW - 2)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.confirmQuit {
		switch key {
		case "y", "enter":
			return m, tea.Quit
		default:
			m.confirmQuit = false
		}
		return m, nil
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	m.status = ""

	switch key {
	case "q", "esc":
		m.confirmQuit = true
		return m, nil

	case "?":
		m.showHelp = true
		return m, nil

	case "up", "k", "down", "j":
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		m.clampTab()
		m.viewport.GotoTop()
		m.refreshContent()
		return m, cmd

	case "right", "]":
		m.nextTab()
		return m, nil

	case "left", "[":
		m.prevTab()
		return m, nil

	case "1", "2", "3", "4", "5":
		idx := int(key[0] - '1')
		if visible := m.visibleTabs(); idx < len(visible) {
			m.activeTab = visible[idx]
			m.viewport.GotoTop()
			m.refreshContent()
		}
		return m, nil

	case "tab":
		if g := m.activeSliders(); g != nil {
			g.Next()
			m.refreshContent()
		} else {
			m.nextTab()
		}
		return m, nil

	case "l":
		if g := m.activeSliders(); g != nil {
			if s := g.Focused(); s != nil {
				s.Inc()
				m.refreshContent()
			}
		} else {
			m.nextTab()
		}
		return m, nil

	case "h":
		if g := m.activeSliders(); g != nil {
			if s := g.Focused(); s != nil {
				s.Dec()
				m.refreshContent()
			}
		} else {
			m.prevTab()
		}
		return m, nil

	case " ":
		return m.toggleProgress()

	case "c":
		if m.activeTab == tabCode {
			topic := m.Selected()
			if topic.HasCode() {
				if err := clipboard.WriteAll(topic.Code); err != nil {
					m.status = "clipboard unavailable"
				} else {
					m.status = "code copied to clipboard"
				}
			}
		}
		return m, nil

	case "g", "home":
		m.viewport.GotoTop()
		return m, nil

	case "G", "end":
		m.viewport.GotoBottom()
		return m, nil
	}

	// Everything else scrolls the content pane.
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// toggleProgress flips completion for the selected topic only.
func (m Model) toggleProgress() (tea.Model, tea.Cmd) {
	topic := m.Selected()
	if topic.ID == "" {
		return m, nil
	}
	done := m.progress.Toggle(topic.ID)

	idx := m.list.Index()
	m.list.SetItem(idx, topicItem{topic: topic, done: done})

	if done {
		m.status = fmt.Sprintf("marked %q complete (%d/%d)", topic.ID, m.progress.Completed(), m.store.Len())
	} else {
		m.status = fmt.Sprintf("marked %q incomplete", topic.ID)
	}

	if m.saver != nil {
		if err := m.saver.SetCompleted(topic.ID, done); err != nil {
			m.status = "progress not saved: " + err.Error()
		}
	}
	return m, nil
}

// visibleTabs returns the tab indices available for the selected topic.
func (m Model) visibleTabs() []int {
	tabs := []int{tabContent, tabCharts, tabCode, tabKeyTopics}
	if m.Selected().HasLabs() {
		tabs = append(tabs, tabLabs)
	}
	return tabs
}

// clampTab falls back to the Content tab when the active tab is not
// available for the newly selected topic.
func (m *Model) clampTab() {
	for _, t := range m.visibleTabs() {
		if t == m.activeTab {
			return
		}
	}
	m.activeTab = tabContent
}

func (m *Model) nextTab() {
	visible := m.visibleTabs()
	for i, t := range visible {
		if t == m.activeTab {
			m.activeTab = visible[(i+1)%len(visible)]
			break
		}
	}
	m.viewport.GotoTop()
	m.refreshContent()
}

func (m *Model) prevTab() {
	visible := m.visibleTabs()
	for i, t := range visible {
		if t == m.activeTab {
			m.activeTab = visible[(i-1+len(visible))%len(visible)]
			break
		}
	}
	m.viewport.GotoTop()
	m.refreshContent()
}

// activeSliders returns the slider group driving the Charts tab of the
// selected topic, or nil when the topic has no calculator.
func (m *Model) activeSliders() *SliderGroup {
	if m.activeTab != tabCharts {
		return nil
	}
	switch m.Selected().ID {
	case "energy":
		return &m.energy
	case "cloud":
		return &m.cloud
	default:
		return nil
	}
}

// refreshContent rebuilds the viewport for the selected topic and tab.
func (m *Model) refreshContent() {
	topic := m.Selected()

	var body string
	switch m.activeTab {
	case tabContent:
		body = m.md.Render("## " + topic.Title + "\n\n" + topic.Overview + "\n\n---\n\n" + topic.Body)
	case tabCharts:
		body = m.chartsView(topic)
	case tabCode:
		body = m.codeView(topic)
	case tabKeyTopics:
		body = m.keyTopicsView(topic)
	case tabLabs:
		body = m.labsView(topic)
	}

	m.viewport.SetContent(body)
}

func (m *Model) chartsView(topic model.Topic) string {
	switch topic.ID {
	case "intro":
		return RenderArchitectureChart(m.theme, m.viewport.Width)
	case "hardware":
		return RenderPlatformChart(m.theme)
	case "sensors":
		return RenderSensorChart(m.theme, m.seed)
	case "automation":
		return RenderHysteresisChart(m.theme, m.seed)
	case "edge-cloud":
		return RenderComparisonChart(m.theme) + "\n" + RenderLatencyChart(m.theme)
	case "energy":
		return RenderEnergyChart(m.theme, m.seed) + "\n" + m.energyCalcView()
	case "cloud":
		return m.cloudCalcView()
	default:
		return m.theme.ChartLabel.Render("No charts for this topic.")
	}
}

func (m *Model) energyCalcView() string {
	s := m.energy.Sliders
	result := calc.EnergySavings{
		HoursBefore: s[0].Value,
		HoursAfter:  s[1].Value,
		PowerW:      s[2].Value,
		PricePerKWh: s[3].Value,
	}.Compute()

	var b strings.Builder
	b.WriteString(m.theme.ChartValue.Render("Energy Savings Calculator") + "\n")
	b.WriteString(m.theme.ChartLabel.Render("tab: next input   h/l: adjust") + "\n\n")
	b.WriteString(m.energy.View(m.theme))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Daily savings:  %s (%.0f%% reduction)\n",
		m.theme.ChartValue.Render(fmt.Sprintf("%.2f kWh", result.DailySavedKWh)), result.PercentReduction))
	b.WriteString(fmt.Sprintf("Monthly cost:   %s\n",
		m.theme.ChartValue.Render(fmt.Sprintf("%.2f", result.MonthlyCostSaved))))
	b.WriteString(fmt.Sprintf("CO₂ reduced:    %s\n",
		m.theme.ChartValue.Render(fmt.Sprintf("%.2f kg/month", result.CO2SavedKg))))
	return b.String()
}

func (m *Model) cloudCalcView() string {
	s := m.cloud.Sliders
	result := calc.CloudCost{
		Devices:        int(s[0].Value),
		MessagesPerDay: int(s[1].Value),
	}.Compute()

	var b strings.Builder
	b.WriteString(m.theme.ChartValue.Render("Monthly Cloud Cost Estimation") + "\n")
	b.WriteString(m.theme.ChartLabel.Render("tab: next input   h/l: adjust") + "\n\n")
	b.WriteString(m.cloud.View(m.theme))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Message volume: %s\n",
		m.theme.ChartValue.Render(fmt.Sprintf("%.2fM messages/month", result.MessagesPerMonthM))))
	b.WriteString(fmt.Sprintf("AWS IoT Core:   %s\n",
		m.theme.ChartValue.Render(fmt.Sprintf("$%.2f/month", result.AWSMonthlyUSD))))
	b.WriteString(fmt.Sprintf("Azure IoT Hub:  %s\n",
		m.theme.ChartValue.Render(fmt.Sprintf("$%.2f/month", result.AzureMonthlyUSD))))
	return b.String()
}

func (m *Model) codeView(topic model.Topic) string {
	if !topic.HasCode() {
		return m.theme.ChartLabel.Render("No code sample for this topic.")
	}
	lang := topic.CodeLang
	if lang == "" {
		lang = "text"
	}
	rendered := m.md.Render("```" + lang + "\n" + topic.Code + "\n```")
	hint := m.theme.ChartLabel.Render("press c to copy to clipboard")
	return rendered + "\n\n" + hint
}

func (m *Model) keyTopicsView(topic model.Topic) string {
	var b strings.Builder
	b.WriteString(m.theme.ChartValue.Render("Goal") + "\n")
	b.WriteString(m.theme.Base.Render(topic.Goal) + "\n\n")
	b.WriteString(m.theme.ChartValue.Render("Key Topics") + "\n")
	for _, sub := range topic.Subtopics {
		b.WriteString("  • " + sub + "\n")
	}
	return b.String()
}

func (m *Model) labsView(topic model.Topic) string {
	if !topic.HasLabs() {
		return m.theme.ChartLabel.Render("Lab activities for this topic are part of the course project.")
	}
	var b strings.Builder
	b.WriteString(m.theme.ChartValue.Render("Laboratory Exercises") + "\n\n")
	for i, lab := range topic.Labs {
		b.WriteString(fmt.Sprintf("%2d. %s\n", i+1, lab))
	}
	return b.String()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	if m.confirmQuit {
		return m.centeredOverlay("Quit the presentation? (y/n)")
	}
	if m.showHelp {
		return m.centeredOverlay(m.helpText())
	}

	sidebar := m.list.View()
	pane := lipgloss.JoinVertical(lipgloss.Left, m.tabBar(), m.viewport.View())

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		sidebar,
		m.theme.Renderer.NewStyle().
			Border(lipgloss.RoundedBorder(), false, false, false, true).
			BorderForeground(m.theme.Border).
			PaddingLeft(1).
			Render(pane),
	)

	return lipgloss.JoinVertical(lipgloss.Left, main, m.footer())
}

func (m Model) tabBar() string {
	var rendered []string
	for i, t := range m.visibleTabs() {
		label := fmt.Sprintf("%d %s", i+1, tabNames[t])
		if t == m.activeTab {
			rendered = append(rendered, m.theme.TabActive.Render(label))
		} else {
			rendered = append(rendered, m.theme.TabDormant.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) footer() string {
	left := fmt.Sprintf("%d/%d complete", m.progress.Completed(), m.store.Len())
	help := m.theme.HelpText.Render("space: toggle done   ←/→: tabs   ?: help   q: quit")
	if m.status != "" {
		help = m.theme.HelpKey.Render(m.status)
	}
	return m.theme.HelpText.Render(" "+left+"  ") + help
}

func (m Model) helpText() string {
	rows := []struct{ key, desc string }{
		{"j/k, ↑/↓", "select topic"},
		{"←/→, [/]", "switch tab"},
		{"1-5", "jump to tab"},
		{"space", "toggle topic complete"},
		{"h/l", "adjust calculator input (Charts tab)"},
		{"tab", "next calculator input"},
		{"c", "copy code sample (Code tab)"},
		{"g/G", "top / bottom of pane"},
		{"?", "toggle this help"},
		{"q, esc", "quit"},
	}
	var b strings.Builder
	b.WriteString(m.theme.Header.Render(" Keyboard Reference ") + "\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%s  %s\n",
			m.theme.HelpKey.Render(padLabel(r.key, 12)),
			m.theme.HelpText.Render(r.desc)))
	}
	b.WriteString("\n" + m.theme.HelpText.Render("press any key to close"))
	return b.String()
}

func (m Model) centeredOverlay(content string) string {
	box := m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Primary).
		Padding(1, 2).
		Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
