package cli

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/wbsview/pkg/interact"
	"github.com/matzehuels/wbsview/pkg/layout"
	"github.com/matzehuels/wbsview/pkg/view"
	"github.com/matzehuels/wbsview/pkg/wbs"
)

// Screen geometry of the explorer. Layout units are scaled down to
// terminal cells.
const (
	unitsPerCol    = 10.0
	unitsPerRow    = 40.0
	maxLabelWidth  = 20
	headerLines    = 2
	edgePanelLines = 5
	panCols        = 4
	panRows        = 2
	defaultWidth   = 100
	defaultHeight  = 30
)

// =============================================================================
// Screen Buffer
// =============================================================================

type cellKind int

const (
	kindPlain cellKind = iota
	kindTitle
	kindDim
	kindTask
	kindDoc
	kindFocus
	kindCursor
	kindMenu
	kindMenuSelected
	kindNotice
)

var exploreStyles = map[cellKind]lipgloss.Style{
	kindPlain:        lipgloss.NewStyle(),
	kindTitle:        StyleTitle,
	kindDim:          StyleDim,
	kindTask:         StyleValue,
	kindDoc:          lipgloss.NewStyle().Foreground(colorDoc),
	kindFocus:        lipgloss.NewStyle().Bold(true).Foreground(colorOK),
	kindCursor:       lipgloss.NewStyle().Reverse(true),
	kindMenu:         lipgloss.NewStyle().Foreground(colorText).Background(lipgloss.Color("236")),
	kindMenuSelected: lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Background(lipgloss.Color("238")),
	kindNotice:       StyleWarning,
}

// cell is one terminal column. A wide rune fills its own cell and marks
// the next one as a continuation (r == 0).
type cell struct {
	r    rune
	kind cellKind
}

// screen is a fixed-size grid of styled runes.
type screen struct {
	rows  [][]cell
	width int
}

func newScreen(width, height int) *screen {
	rows := make([][]cell, height)
	for i := range rows {
		rows[i] = make([]cell, width)
		for j := range rows[i] {
			rows[i][j] = cell{r: ' '}
		}
	}
	return &screen{rows: rows, width: width}
}

// put writes text starting at row/col. Cells outside the grid are dropped,
// as is a wide rune that would straddle the right edge.
func (s *screen) put(row, col int, text string, kind cellKind) {
	if row < 0 || row >= len(s.rows) {
		return
	}
	c := col
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if c >= 0 && c+w <= s.width {
			s.rows[row][c] = cell{r: r, kind: kind}
			if w == 2 {
				s.rows[row][c+1] = cell{kind: kind}
			}
		}
		c += w
	}
}

func (s *screen) String() string {
	var b strings.Builder
	for i, row := range s.rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && row[j].kind == row[start].kind {
				continue
			}
			run := make([]rune, 0, j-start)
			for _, c := range row[start:j] {
				if c.r != 0 {
					run = append(run, c.r)
				}
			}
			b.WriteString(exploreStyles[row[start].kind].Render(string(run)))
			start = j
		}
	}
	return b.String()
}

// =============================================================================
// Node Placement
// =============================================================================

// placedNode is a node drawn at a canvas cell. row and col are canvas
// coordinates before panning.
type placedNode struct {
	id   string
	row  int
	col  int
	text string
	kind cellKind
}

func (p placedNode) width() int { return runewidth.StringWidth(p.text) }

func (p placedNode) covers(row, col int) bool {
	return p.row == row && col >= p.col && col < p.col+p.width()
}

// placeNodes scales view coordinates to canvas cells, keeping view order.
// Nodes that land on the same row are pushed right until they no longer
// overlap.
func placeNodes(v view.View) []placedNode {
	if len(v.Nodes) == 0 {
		return nil
	}
	minX, minY := v.Nodes[0].X, v.Nodes[0].Y
	for _, n := range v.Nodes[1:] {
		minX = math.Min(minX, n.X)
		minY = math.Min(minY, n.Y)
	}

	placed := make([]placedNode, len(v.Nodes))
	for i, n := range v.Nodes {
		kind := kindTask
		if n.Type == wbs.NodeTypeDoc {
			kind = kindDoc
		}
		if v.Mode == view.Local && n.ID == v.Focus {
			kind = kindFocus
		}
		placed[i] = placedNode{
			id:   n.ID,
			row:  int(math.Round((n.Y - minY) / unitsPerRow)),
			col:  int(math.Round((n.X-minX)/unitsPerCol)) + 1,
			text: nodeText(n),
			kind: kind,
		}
	}

	order := make([]int, len(placed))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		if placed[a].row != placed[b].row {
			return placed[a].row - placed[b].row
		}
		return placed[a].col - placed[b].col
	})
	next := make(map[int]int)
	for _, i := range order {
		p := &placed[i]
		if free, ok := next[p.row]; ok && p.col < free {
			p.col = free
		}
		next[p.row] = p.col + p.width() + 1
	}
	return placed
}

func nodeText(n layout.PositionedNode) string {
	label := truncate(nodeLabel(n), maxLabelWidth)
	if n.Type == wbs.NodeTypeDoc {
		return "(" + label + ")"
	}
	return "[" + label + "]"
}

// truncate shortens s to at most n terminal cells.
func truncate(s string, n int) string {
	return runewidth.Truncate(s, n, "…")
}

// =============================================================================
// Context Menu Geometry
// =============================================================================

// menuBox is the on-screen rectangle of the open context menu.
type menuBox struct {
	top, left int
	width     int
	items     []interact.Item
}

func (b menuBox) itemAt(x, y int) (interact.Item, bool) {
	i := y - b.top - 1
	if i < 0 || i >= len(b.items) || x < b.left || x >= b.left+b.width {
		return "", false
	}
	return b.items[i], true
}

func (b menuBox) draw(s *screen, selected int) {
	inner := b.width - 2
	s.put(b.top, b.left, "┌"+strings.Repeat("─", inner)+"┐", kindMenu)
	for i, item := range b.items {
		row := b.top + 1 + i
		kind := kindMenu
		if i == selected {
			kind = kindMenuSelected
		}
		label := runewidth.FillRight(" "+item.Label(), inner)
		s.put(row, b.left, "│", kindMenu)
		s.put(row, b.left+1, label, kind)
		s.put(row, b.left+1+inner, "│", kindMenu)
	}
	s.put(b.top+1+len(b.items), b.left, "└"+strings.Repeat("─", inner)+"┘", kindMenu)
}

// =============================================================================
// exploreModel - Interactive WBS explorer
// =============================================================================

// exploreModel hosts an interaction controller in the terminal. Mouse
// clicks and keys become controller gestures; every view the controller
// derives is placed on a character canvas.
type exploreModel struct {
	ctx      context.Context
	ctrl     *interact.Controller
	source   string
	viewOpts []view.Option
	keys     exploreKeys

	// copy puts text on the system clipboard.
	copy func(string) error
	// reload recomputes the base layout from source. Nil disables reloads.
	reload func(context.Context) (*layout.Base, error)
	// watch blocks until the source changes. Nil disables watching.
	watch func(context.Context) tea.Msg

	current view.View
	placed  []placedNode
	cursor  string
	menuIdx int
	notice  string

	width, height  int
	panCol, panRow int
}

func newExploreModel(ctx context.Context, source string, base *layout.Base, viewOpts ...view.Option) *exploreModel {
	m := &exploreModel{
		ctx:      ctx,
		source:   source,
		viewOpts: viewOpts,
		keys:     defaultExploreKeys(),
		copy:     clipboard.WriteAll,
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.start(base)
	return m
}

// start builds a fresh controller on base, which resets the view to the
// whole tree.
func (m *exploreModel) start(base *layout.Base) {
	m.ctrl = interact.NewWithBase(base,
		interact.WithNotifier(interact.NotifierFunc(m.notify)),
		interact.WithRenderer(interact.RendererFunc(m.show)),
		interact.WithViewOptions(m.viewOpts...),
	)
}

func (m *exploreModel) notify(message string) { m.notice = message }

// show receives every view the controller derives.
func (m *exploreModel) show(v view.View) {
	m.current = v
	m.placed = placeNodes(v)
	m.panCol, m.panRow = 0, 0
	switch {
	case v.Mode == view.Local:
		m.cursor = v.Focus
	case len(v.Nodes) == 0:
		m.cursor = ""
	default:
		if _, ok := v.Node(m.cursor); !ok {
			m.cursor = v.Nodes[0].ID
		}
	}
	m.reveal()
}

// focus switches to the neighborhood of id the same way the node menu does.
func (m *exploreModel) focus(id string) error {
	row, col, ok := m.screenPos(id)
	if !ok {
		return fmt.Errorf("node %q not found", id)
	}
	m.ctrl.Handle(m.ctx, interact.Event{
		Button: interact.ButtonRight,
		Target: interact.TargetNode,
		ID:     id,
		X:      float64(col),
		Y:      float64(row),
	})
	return m.ctrl.Select(m.ctx, interact.ItemShowConnected)
}

// reloadedMsg carries the result of recomputing the layout.
type reloadedMsg struct {
	base *layout.Base
	err  error
}

func (m *exploreModel) Init() tea.Cmd {
	return m.waitForChange()
}

func (m *exploreModel) waitForChange() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	return func() tea.Msg { return m.watch(m.ctx) }
}

func (m *exploreModel) reloadCmd() tea.Cmd {
	if m.reload == nil {
		return nil
	}
	return func() tea.Msg {
		base, err := m.reload(m.ctx)
		return reloadedMsg{base: base, err: err}
	}
}

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.reveal()
	case tea.MouseMsg:
		m.mouse(msg)
	case tea.KeyMsg:
		return m, m.key(msg)
	case fileChangedMsg:
		return m, m.reloadCmd()
	case watchErrMsg:
		m.notice = "Watch error: " + msg.err.Error()
		return m, m.waitForChange()
	case reloadedMsg:
		m.reloaded(msg)
		return m, m.waitForChange()
	}
	return m, nil
}

// reloaded swaps in a recomputed layout. A neighborhood view is restored
// when its focus node still exists.
func (m *exploreModel) reloaded(msg reloadedMsg) {
	if msg.err != nil {
		loggerFromContext(m.ctx).Warn("reload failed", "source", m.source, "err", msg.err)
		m.notice = "Reload failed: " + msg.err.Error()
		return
	}
	state := m.ctrl.State()
	m.start(msg.base)
	if state.Mode == view.Local {
		if err := m.focus(state.Focus); err != nil {
			loggerFromContext(m.ctx).Debug("focus dropped after reload", "focus", state.Focus, "err", err)
		}
	}
	m.notice = fmt.Sprintf("Reloaded %d nodes", len(msg.base.Nodes))
}

// copyCursor puts the id of the selected node on the clipboard.
func (m *exploreModel) copyCursor() {
	if m.cursor == "" {
		return
	}
	if err := m.copy(m.cursor); err != nil {
		m.notice = "Copy failed: " + err.Error()
		return
	}
	m.notice = "Copied " + m.cursor
}

func (m *exploreModel) mouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress {
		return
	}
	var button interact.Button
	switch msg.Button {
	case tea.MouseButtonLeft:
		button = interact.ButtonLeft
	case tea.MouseButtonRight:
		button = interact.ButtonRight
	case tea.MouseButtonWheelUp:
		m.panRow -= panRows
		return
	case tea.MouseButtonWheelDown:
		m.panRow += panRows
		return
	default:
		return
	}

	m.notice = ""
	if box, ok := m.menuBox(); ok && button == interact.ButtonLeft {
		if item, ok := box.itemAt(msg.X, msg.Y); ok {
			m.choose(item)
			return
		}
	}

	target, id := m.hit(msg.X, msg.Y)
	if target == interact.TargetNode {
		m.cursor = id
	}
	m.ctrl.Handle(m.ctx, interact.Event{
		Button: button,
		Target: target,
		ID:     id,
		X:      float64(msg.X),
		Y:      float64(msg.Y),
	})
	m.menuIdx = 0
}

func (m *exploreModel) key(msg tea.KeyMsg) tea.Cmd {
	k := m.keys
	if key.Matches(msg, k.Quit) {
		return tea.Quit
	}
	m.notice = ""

	if box, ok := m.menuBox(); ok {
		n := len(box.items)
		switch {
		case key.Matches(msg, k.MenuUp):
			m.menuIdx = (m.menuIdx + n - 1) % n
		case key.Matches(msg, k.MenuDown):
			m.menuIdx = (m.menuIdx + 1) % n
		case key.Matches(msg, k.Choose):
			m.choose(box.items[m.menuIdx])
		case key.Matches(msg, k.Close):
			m.dismiss()
		}
		return nil
	}

	switch {
	case key.Matches(msg, k.Next):
		m.moveCursor(1)
	case key.Matches(msg, k.Prev):
		m.moveCursor(-1)
	case key.Matches(msg, k.Menu):
		m.openNodeMenu()
	case key.Matches(msg, k.TreeMenu):
		m.openCanvasMenu()
	case key.Matches(msg, k.Copy):
		m.copyCursor()
	case key.Matches(msg, k.Close):
		m.dismiss()
	case key.Matches(msg, k.PanLeft):
		m.panCol -= panCols
	case key.Matches(msg, k.PanRight):
		m.panCol += panCols
	case key.Matches(msg, k.PanUp):
		m.panRow -= panRows
	case key.Matches(msg, k.PanDown):
		m.panRow += panRows
	}
	return nil
}

// dismiss closes the menu the way a left click on the canvas does.
func (m *exploreModel) dismiss() {
	m.ctrl.Handle(m.ctx, interact.Event{Button: interact.ButtonLeft, Target: interact.TargetCanvas})
}

func (m *exploreModel) openNodeMenu() {
	row, col, ok := m.screenPos(m.cursor)
	if !ok {
		return
	}
	m.ctrl.Handle(m.ctx, interact.Event{
		Button: interact.ButtonRight,
		Target: interact.TargetNode,
		ID:     m.cursor,
		X:      float64(col),
		Y:      float64(row + 1),
	})
	m.menuIdx = 0
}

func (m *exploreModel) openCanvasMenu() {
	m.ctrl.Handle(m.ctx, interact.Event{
		Button: interact.ButtonRight,
		Target: interact.TargetCanvas,
		X:      1,
		Y:      headerLines,
	})
	m.menuIdx = 0
}

func (m *exploreModel) choose(item interact.Item) {
	if err := m.ctrl.Select(m.ctx, item); err != nil {
		loggerFromContext(m.ctx).Debug("menu item ignored", "item", item, "err", err)
	}
	m.menuIdx = 0
}

func (m *exploreModel) moveCursor(delta int) {
	n := len(m.current.Nodes)
	if n == 0 {
		return
	}
	idx := slices.IndexFunc(m.current.Nodes, func(p layout.PositionedNode) bool { return p.ID == m.cursor })
	if idx < 0 {
		idx = 0
	} else {
		idx = (idx + delta + n) % n
	}
	m.cursor = m.current.Nodes[idx].ID
	m.reveal()
}

// reveal pans the canvas so the cursor node is fully on screen.
func (m *exploreModel) reveal() {
	p, ok := m.placedNode(m.cursor)
	if !ok {
		return
	}
	h := m.canvasHeight()
	if p.row-m.panRow < 0 {
		m.panRow = p.row
	} else if p.row-m.panRow >= h {
		m.panRow = p.row - h + 1
	}
	if p.col-m.panCol < 0 {
		m.panCol = p.col
	} else if end := p.col + p.width() - m.panCol; end > m.width {
		m.panCol += end - m.width
	}
}

// =============================================================================
// Hit Testing
// =============================================================================

func (m *exploreModel) canvasHeight() int {
	return max(m.height-headerLines-1-edgePanelLines-1, 3)
}

func (m *exploreModel) panelTop() int {
	return headerLines + m.canvasHeight() + 1
}

func (m *exploreModel) placedNode(id string) (placedNode, bool) {
	for _, p := range m.placed {
		if p.id == id {
			return p, true
		}
	}
	return placedNode{}, false
}

// screenPos returns the screen cell of a node's first character.
func (m *exploreModel) screenPos(id string) (row, col int, ok bool) {
	p, ok := m.placedNode(id)
	if !ok {
		return 0, 0, false
	}
	return headerLines + p.row - m.panRow, p.col - m.panCol, true
}

// hit resolves a screen cell to the gesture target under it. Edge rows of
// the panel below the canvas count as edges.
func (m *exploreModel) hit(x, y int) (interact.Target, string) {
	h := m.canvasHeight()
	if y >= headerLines && y < headerLines+h {
		row, col := y-headerLines+m.panRow, x+m.panCol
		for i := len(m.placed) - 1; i >= 0; i-- {
			if m.placed[i].covers(row, col) {
				return interact.TargetNode, m.placed[i].id
			}
		}
		return interact.TargetCanvas, ""
	}
	edges, _ := m.panelEdges()
	if i := y - m.panelTop(); i >= 0 && i < len(edges) {
		return interact.TargetEdge, edges[i].ID
	}
	return interact.TargetCanvas, ""
}

func (m *exploreModel) menuBox() (menuBox, bool) {
	menu := m.ctrl.Menu()
	items := m.ctrl.Items()
	if !menu.Visible || len(items) == 0 {
		return menuBox{}, false
	}
	width := 0
	for _, item := range items {
		width = max(width, runewidth.StringWidth(item.Label()))
	}
	width += 4
	height := len(items) + 2

	left := max(min(int(menu.X), m.width-width), 0)
	top := max(min(int(menu.Y), m.height-height), 0)
	return menuBox{top: top, left: left, width: width, items: items}, true
}

// panelEdges lists the drawn edges touching the cursor node, or all drawn
// edges when there is no cursor. The second result counts edges that did
// not fit.
func (m *exploreModel) panelEdges() ([]wbs.EdgeRecord, int) {
	var edges []wbs.EdgeRecord
	for _, e := range m.current.Edges {
		if !m.current.Visible(e) {
			continue
		}
		if m.cursor != "" && !e.Touches(m.cursor) {
			continue
		}
		edges = append(edges, e)
	}
	if len(edges) > edgePanelLines {
		return edges[:edgePanelLines-1], len(edges) - edgePanelLines + 1
	}
	return edges, 0
}

// =============================================================================
// Drawing
// =============================================================================

func (m *exploreModel) View() string {
	s := newScreen(m.width, m.height)
	m.drawHeader(s)
	m.drawCanvas(s)
	m.drawPanel(s)
	if box, ok := m.menuBox(); ok {
		box.draw(s, m.menuIdx)
	}
	return s.String()
}

func (m *exploreModel) drawHeader(s *screen) {
	title := appName + " · " + m.source
	s.put(0, 0, title, kindTitle)
	mode := "whole tree"
	if m.current.Mode == view.Local {
		mode = "neighborhood of " + m.labelOf(m.current.Focus)
	}
	s.put(0, runewidth.StringWidth(title)+2, mode, kindPlain)

	help := m.keys.canvasHelp()
	if m.ctrl.Menu().Visible {
		help = m.keys.menuHelp()
	}
	s.put(1, 0, help, kindDim)
}

func (m *exploreModel) drawCanvas(s *screen) {
	h := m.canvasHeight()
	for _, p := range m.placed {
		row := p.row - m.panRow
		if row < 0 || row >= h {
			continue
		}
		kind := p.kind
		if p.id == m.cursor {
			kind = kindCursor
		}
		s.put(headerLines+row, p.col-m.panCol, p.text, kind)
	}
}

func (m *exploreModel) drawPanel(s *screen) {
	top := m.panelTop()
	s.put(top-1, 0, strings.Repeat("─", m.width), kindDim)

	edges, more := m.panelEdges()
	for i, e := range edges {
		kind := kindPlain
		if !e.IsHierarchy() {
			kind = kindDim
		}
		line := fmt.Sprintf("%s %s %s  %s", m.labelOf(e.Source), iconArrow, m.labelOf(e.Target), e.Type)
		s.put(top+i, 2, line, kind)
	}
	if more > 0 {
		s.put(top+len(edges), 2, fmt.Sprintf("+%d more", more), kindDim)
	}

	status := top + edgePanelLines
	if m.notice != "" {
		s.put(status, 0, iconWarning+" "+m.notice, kindNotice)
		return
	}
	s.put(status, 0, fmt.Sprintf("%d nodes · %d edges", len(m.current.Nodes), len(m.current.Edges)), kindDim)
}

func (m *exploreModel) labelOf(id string) string {
	if n, ok := m.current.Node(id); ok {
		return truncate(nodeLabel(n), maxLabelWidth)
	}
	return id
}
