package cli

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/sgazz/acai-mindmap/pkg/config"
	"github.com/sgazz/acai-mindmap/pkg/drag"
	"github.com/sgazz/acai-mindmap/pkg/errors"
	"github.com/sgazz/acai-mindmap/pkg/idgen"
	mmio "github.com/sgazz/acai-mindmap/pkg/io"
	"github.com/sgazz/acai-mindmap/pkg/mindmap"
	"github.com/sgazz/acai-mindmap/pkg/route"
	"github.com/sgazz/acai-mindmap/pkg/store"
	"github.com/sgazz/acai-mindmap/pkg/viewport"
)

// Screen units covered by one terminal cell. Terminal cells are about twice
// as tall as wide, so this keeps circles round.
const (
	cellW = 8.0
	cellH = 16.0
)

// Canvas styles
var (
	canvasEdgeStyle     = lipgloss.NewStyle().Foreground(colorGray)
	canvasLabelStyle    = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	canvasSelectedStyle = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	statusBarStyle      = lipgloss.NewStyle().Foreground(colorWhite).Background(lipgloss.Color("236"))
	helpStyle           = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// editorModel - Interactive mind-map editor
// =============================================================================

type editorMode int

const (
	modeNormal editorMode = iota
	modeEdit              // typing a node label
	modeConnect           // picking a connection target
)

// editorModel is the bubbletea model for the terminal editor. It keeps no
// graph state of its own: every committed change goes through the store,
// and the only transient state is the drag session and the text being typed.
type editorModel struct {
	st     *store.Store
	drag   *drag.Controller
	view   viewport.Transform
	router route.Router
	cfg    config.Config
	ids    *idgen.Generator
	logger *log.Logger

	path  string
	dirty bool

	width, height int
	cursorCol     int
	cursorRow     int

	mode        editorMode
	input       []rune
	editID      string
	connectFrom string
	connType    mindmap.ConnectionType

	status string
}

// newEditorModel creates an editor over st. The store's change events mark
// the document dirty.
func newEditorModel(st *store.Store, cfg config.Config, path string, logger *log.Logger) *editorModel {
	m := &editorModel{
		st:       st,
		view:     cfg.Transform(),
		router:   cfg.RouterSettings(),
		cfg:      cfg,
		ids:      idgen.New(),
		logger:   logger,
		path:     path,
		width:    80,
		height:   24,
		connType: mindmap.ConnectionSolid,
	}
	m.drag = drag.New(st, &m.view)
	st.Subscribe(func(ev store.Event) {
		if ev.Op != store.OpSelect {
			m.dirty = true
		}
	})
	return m
}

func (m *editorModel) Init() tea.Cmd {
	return nil
}

func (m *editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.clampCursor()
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.KeyMsg:
		switch m.mode {
		case modeEdit:
			m.handleEditKey(msg)
		default:
			return m.handleKey(msg)
		}
	}
	return m, nil
}

// =============================================================================
// Input handling
// =============================================================================

func (m *editorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(0, -1)
	case "down", "j":
		m.moveCursor(0, 1)
	case "left", "h":
		m.moveCursor(-1, 0)
	case "right", "l":
		m.moveCursor(1, 0)
	case "shift+up", "K":
		m.pan(0, m.cfg.Editor.PanStep)
	case "shift+down", "J":
		m.pan(0, -m.cfg.Editor.PanStep)
	case "shift+left", "H":
		m.pan(m.cfg.Editor.PanStep, 0)
	case "shift+right", "L":
		m.pan(-m.cfg.Editor.PanStep, 0)
	case "+", "=":
		m.zoom(m.cfg.Viewport.ZoomStep)
	case "-", "_":
		m.zoom(1 / m.cfg.Viewport.ZoomStep)
	case "0":
		m.fit()
	case "enter", " ":
		m.confirm()
	case "esc":
		m.escape()
	case "a":
		m.addNode()
	case "e":
		m.startEdit()
	case "c":
		m.startConnect()
	case "t":
		m.cycleConnType()
	case "]":
		m.cycleSize()
	case "m":
		m.toggleMove()
	case "d", "delete":
		m.deleteNode()
	case "x":
		m.deleteConnection()
	case "u", "ctrl+z":
		if !m.st.Undo() {
			m.status = "nothing to undo"
		}
	case "r", "ctrl+y":
		if !m.st.Redo() {
			m.status = "nothing to redo"
		}
	case "s", "ctrl+s":
		m.save()
	}
	return m, nil
}

func (m *editorModel) handleEditKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEnter:
		content := string(m.input)
		if err := m.st.UpdateNode(m.editID, mindmap.NodePatch{Content: &content}); err != nil {
			m.fail(err)
		}
		m.mode = modeNormal
	case tea.KeyEscape:
		m.mode = modeNormal
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	}
}

func (m *editorModel) handleMouse(msg tea.MouseMsg) {
	if m.mode == modeEdit {
		return
	}
	m.cursorCol, m.cursorRow = msg.X, msg.Y
	m.clampCursor()
	pointer := m.cursorScreen()

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.zoom(m.cfg.Viewport.ZoomStep)
	case msg.Button == tea.MouseButtonWheelDown:
		m.zoom(1 / m.cfg.Viewport.ZoomStep)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if m.mode == modeConnect {
			m.confirm()
			return
		}
		n, ok := m.nodeAtCursor()
		if !ok {
			m.st.SelectNode("")
			return
		}
		m.st.SelectNode(n.ID)
		if err := m.drag.Start(n.ID, pointer, m.view.ToScreen(n.Position)); err != nil {
			m.fail(err)
		}
	case msg.Action == tea.MouseActionMotion:
		m.drag.Update(pointer)
	case msg.Action == tea.MouseActionRelease:
		m.endDrag()
	}
}

// =============================================================================
// Actions
// =============================================================================

func (m *editorModel) moveCursor(dc, dr int) {
	m.cursorCol += dc
	m.cursorRow += dr
	m.clampCursor()
	m.drag.Update(m.cursorScreen())
}

func (m *editorModel) pan(dx, dy float64) {
	m.view = m.view.Pan(mindmap.Pt(dx, dy))
	m.drag.Update(m.cursorScreen())
}

func (m *editorModel) zoom(factor float64) {
	if m.cfg.CursorAnchored() {
		m.view = m.view.ZoomAt(factor, m.cursorScreen())
	} else {
		m.view = m.view.Zoom(factor)
	}
	m.drag.Update(m.cursorScreen())
}

func (m *editorModel) fit() {
	min, max, ok := mindmap.Bounds(m.st.Nodes())
	if !ok {
		m.view = m.view.Reset()
		return
	}
	cols, rows := m.canvasSize()
	m.view = m.view.Fit(min, max, float64(cols)*cellW, float64(rows)*cellH, cellH)
}

// confirm selects the node under the cursor, or finishes the pending
// connect or move.
func (m *editorModel) confirm() {
	switch {
	case m.mode == modeConnect:
		m.finishConnect()
	case m.drag.Active():
		m.endDrag()
	default:
		n, ok := m.nodeAtCursor()
		if !ok {
			m.st.SelectNode("")
			return
		}
		m.st.SelectNode(n.ID)
	}
}

func (m *editorModel) escape() {
	switch {
	case m.drag.Active():
		m.drag.Cancel()
		m.status = "move cancelled"
	case m.mode == modeConnect:
		m.mode = modeNormal
		m.status = "connect cancelled"
	default:
		m.st.SelectNode("")
	}
}

// addNode creates a node under the cursor. With a node selected, the new
// node becomes its child and is joined to it.
func (m *editorModel) addNode() {
	n := mindmap.Node{
		ID:       m.ids.NodeID(),
		Position: m.view.ToModel(m.cursorScreen()),
		Color:    m.cfg.Editor.DefaultColor,
		Size:     m.cfg.NodeSize(),
	}
	parent, hasParent := m.st.SelectedNode()
	if hasParent {
		pid := parent.ID
		n.ParentID = &pid
	}
	if err := m.st.AddNode(n); err != nil {
		m.fail(err)
		return
	}
	if hasParent {
		if err := m.st.AddConnection(mindmap.Connection{
			ID:   m.ids.ConnectionID(),
			From: parent.ID,
			To:   n.ID,
			Type: m.connType,
		}); err != nil {
			m.fail(err)
		}
	}
	m.st.SelectNode(n.ID)
	m.startEdit()
}

func (m *editorModel) startEdit() {
	n, ok := m.st.SelectedNode()
	if !ok {
		m.status = "select a node first"
		return
	}
	m.mode = modeEdit
	m.editID = n.ID
	m.input = []rune(n.Content)
}

func (m *editorModel) startConnect() {
	n, ok := m.st.SelectedNode()
	if !ok {
		m.status = "select a node first"
		return
	}
	m.mode = modeConnect
	m.connectFrom = n.ID
	m.status = "move to the target node and press enter"
}

func (m *editorModel) finishConnect() {
	m.mode = modeNormal
	target, ok := m.nodeAtCursor()
	if !ok {
		m.status = "no node under cursor"
		return
	}
	err := m.st.AddConnection(mindmap.Connection{
		ID:   m.ids.ConnectionID(),
		From: m.connectFrom,
		To:   target.ID,
		Type: m.connType,
	})
	if err != nil {
		m.fail(err)
	}
}

func (m *editorModel) cycleConnType() {
	switch m.connType {
	case mindmap.ConnectionSolid:
		m.connType = mindmap.ConnectionDashed
	case mindmap.ConnectionDashed:
		m.connType = mindmap.ConnectionDotted
	default:
		m.connType = mindmap.ConnectionSolid
	}
}

func (m *editorModel) cycleSize() {
	n, ok := m.st.SelectedNode()
	if !ok {
		m.status = "select a node first"
		return
	}
	var next mindmap.Size
	switch n.Size {
	case mindmap.SizeSmall:
		next = mindmap.SizeMedium
	case mindmap.SizeMedium:
		next = mindmap.SizeLarge
	default:
		next = mindmap.SizeSmall
	}
	if err := m.st.UpdateNode(n.ID, mindmap.NodePatch{Size: &next}); err != nil {
		m.fail(err)
	}
}

// toggleMove starts a keyboard drag of the node under the cursor (or the
// selected node), or commits the one in progress.
func (m *editorModel) toggleMove() {
	if m.drag.Active() {
		m.endDrag()
		return
	}
	n, ok := m.nodeAtCursor()
	if !ok {
		n, ok = m.st.SelectedNode()
	}
	if !ok {
		m.status = "no node to move"
		return
	}
	m.st.SelectNode(n.ID)
	if err := m.drag.Start(n.ID, m.cursorScreen(), m.view.ToScreen(n.Position)); err != nil {
		m.fail(err)
	}
}

func (m *editorModel) endDrag() {
	if _, err := m.drag.End(); err != nil {
		m.fail(err)
	}
}

func (m *editorModel) deleteNode() {
	id := m.st.SelectedNodeID()
	if n, ok := m.nodeAtCursor(); ok {
		id = n.ID
	}
	if id == "" {
		m.status = "no node to delete"
		return
	}
	if m.drag.NodeID() == id {
		m.drag.Cancel()
	}
	m.st.DeleteNode(id)
}

func (m *editorModel) deleteConnection() {
	routes := m.router.RouteAll(m.st.Nodes(), m.st.Connections())
	id, ok := m.router.HitTest(routes, m.view.ToModel(m.cursorScreen()))
	if !ok {
		m.status = "no connection under cursor"
		return
	}
	m.st.DeleteConnection(id)
}

func (m *editorModel) save() {
	if err := mmio.ExportFile(m.path, m.st.Snapshot(), time.Now()); err != nil {
		m.fail(err)
		return
	}
	m.dirty = false
	m.status = "saved " + filepath.Base(m.path)
	m.logger.Debugf("Saved %s", m.path)
}

func (m *editorModel) fail(err error) {
	m.status = errors.UserMessage(err)
	m.logger.Debug("edit failed", "err", err)
}

// =============================================================================
// Geometry helpers
// =============================================================================

func (m *editorModel) canvasSize() (cols, rows int) {
	return max(m.width, 1), max(m.height-2, 1)
}

func (m *editorModel) clampCursor() {
	cols, rows := m.canvasSize()
	m.cursorCol = min(max(m.cursorCol, 0), cols-1)
	m.cursorRow = min(max(m.cursorRow, 0), rows-1)
}

// cellCenter returns the screen position of the middle of a cell.
func cellCenter(col, row int) mindmap.Point {
	return mindmap.Pt((float64(col)+0.5)*cellW, (float64(row)+0.5)*cellH)
}

// cellOf returns the cell containing a screen position.
func cellOf(p mindmap.Point) (col, row int) {
	return int(math.Floor(p.X / cellW)), int(math.Floor(p.Y / cellH))
}

func (m *editorModel) cursorScreen() mindmap.Point {
	return cellCenter(m.cursorCol, m.cursorRow)
}

// nodeAtCursor returns the topmost node whose circle covers the cursor.
func (m *editorModel) nodeAtCursor() (mindmap.Node, bool) {
	p := m.view.ToModel(m.cursorScreen())
	nodes := m.st.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		if nodes[i].Contains(p) {
			return nodes[i], true
		}
	}
	return mindmap.Node{}, false
}

// =============================================================================
// View
// =============================================================================

type cellKind int

const (
	cellEmpty cellKind = iota
	cellEdge
	cellNode
	cellSelected
	cellLabel
)

type cell struct {
	r     rune
	kind  cellKind
	color string
}

type canvas struct {
	cols, rows int
	cells      [][]cell
}

func newCanvas(cols, rows int) *canvas {
	c := &canvas{cols: cols, rows: rows, cells: make([][]cell, rows)}
	for i := range c.cells {
		c.cells[i] = make([]cell, cols)
		for j := range c.cells[i] {
			c.cells[i][j] = cell{r: ' '}
		}
	}
	return c
}

func (c *canvas) set(col, row int, v cell) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return
	}
	c.cells[row][col] = v
}

func (c *canvas) text(col, row int, s string, kind cellKind) {
	for i, r := range []rune(s) {
		c.set(col+i, row, cell{r: r, kind: kind})
	}
}

func (m *editorModel) View() string {
	cols, rows := m.canvasSize()
	cv := newCanvas(cols, rows)

	nodes := m.drag.Overlay(m.st.Nodes())
	for _, r := range m.router.RouteAll(nodes, m.st.Connections()) {
		m.drawRoute(cv, r)
	}
	selected := m.st.SelectedNodeID()
	for _, n := range nodes {
		m.drawNode(cv, n, n.ID == selected || n.ID == m.connectFrom && m.mode == modeConnect)
	}

	var b strings.Builder
	for row := range cv.rows {
		b.WriteString(m.renderRow(cv, row))
		b.WriteString("\n")
	}
	b.WriteString(statusBarStyle.Width(cols).Render(m.statusLine()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.helpLine()))
	return b.String()
}

func (m *editorModel) drawRoute(cv *canvas, r route.Route) {
	if r.Degenerate {
		return
	}
	length := m.view.ToScreen(r.Start).Dist(m.view.ToScreen(r.End))
	if r.Loop {
		length = 4 * m.view.ToScreen(r.Start).Dist(m.view.ToScreen(r.C1))
	}
	n := max(8, int(length/(cellW/2)))

	glyph, every, gap := '•', 1, 0
	switch r.Dash {
	case route.DashDashed:
		every, gap = 4, 1
	case route.DashDotted:
		glyph, every, gap = '·', 3, 2
	}
	for i, p := range r.Sample(n) {
		if gap > 0 && i%every >= every-gap {
			continue
		}
		col, row := cellOf(m.view.ToScreen(p))
		cv.set(col, row, cell{r: glyph, kind: cellEdge, color: r.Color})
	}

	col, row := cellOf(m.view.ToScreen(r.Arrow.Tip))
	cv.set(col, row, cell{r: arrowGlyph(r.TangentAt(1)), kind: cellEdge, color: r.Color})

	if r.Label != "" {
		col, row := cellOf(m.view.ToScreen(r.Midpoint()))
		cv.text(col-len([]rune(r.Label))/2, row-1, r.Label, cellEdge)
	}
}

// arrowGlyph picks the arrowhead closest to the direction of travel.
func arrowGlyph(dir mindmap.Point) rune {
	// Screen y grows downward; cells are twice as tall as wide.
	if math.Abs(dir.X) >= 2*math.Abs(dir.Y) {
		if dir.X >= 0 {
			return '▶'
		}
		return '◀'
	}
	if dir.Y >= 0 {
		return '▼'
	}
	return '▲'
}

func (m *editorModel) drawNode(cv *canvas, n mindmap.Node, selected bool) {
	center := m.view.ToScreen(n.Position)
	radius := n.Radius() * m.view.Scale

	kind, glyph := cellNode, '░'
	if selected {
		kind, glyph = cellSelected, '▓'
	}

	minCol, minRow := cellOf(center.Sub(mindmap.Pt(radius, radius)))
	maxCol, maxRow := cellOf(center.Add(mindmap.Pt(radius, radius)))
	for row := max(minRow, 0); row <= min(maxRow, cv.rows-1); row++ {
		for col := max(minCol, 0); col <= min(maxCol, cv.cols-1); col++ {
			if cellCenter(col, row).Dist(center) <= radius {
				cv.set(col, row, cell{r: glyph, kind: kind, color: n.Color})
			}
		}
	}
	col, row := cellOf(center)
	cv.set(col, row, cell{r: glyph, kind: kind, color: n.Color})

	label := n.Content
	if m.mode == modeEdit && n.ID == m.editID {
		label = string(m.input) + "_"
	}
	if label == "" {
		return
	}
	width := max(int(2*radius/cellW)-1, 1)
	if r := []rune(label); len(r) > width {
		label = string(r[:max(width-1, 1)]) + "…"
	}
	cv.text(col-len([]rune(label))/2, row, label, cellLabel)
}

// renderRow styles runs of equal cells in one go.
func (m *editorModel) renderRow(cv *canvas, row int) string {
	var b strings.Builder
	cells := cv.cells[row]
	for start := 0; start < len(cells); {
		end := start + 1
		for end < len(cells) && sameStyle(cells[start], cells[end]) && !m.isCursor(end, row) && !m.isCursor(start, row) {
			end++
		}
		var run strings.Builder
		for _, c := range cells[start:end] {
			run.WriteRune(c.r)
		}
		b.WriteString(m.styleFor(cells[start], m.isCursor(start, row)).Render(run.String()))
		start = end
	}
	return b.String()
}

func sameStyle(a, b cell) bool { return a.kind == b.kind && a.color == b.color }

func (m *editorModel) isCursor(col, row int) bool {
	return col == m.cursorCol && row == m.cursorRow
}

func (m *editorModel) styleFor(c cell, cursor bool) lipgloss.Style {
	var s lipgloss.Style
	switch c.kind {
	case cellEdge:
		s = canvasEdgeStyle
		if c.color != "" {
			s = s.Foreground(lipgloss.Color(c.color))
		}
	case cellNode:
		s = lipgloss.NewStyle().Foreground(lipgloss.Color(nodeColor(c.color, m.cfg)))
	case cellSelected:
		s = canvasSelectedStyle
	case cellLabel:
		s = canvasLabelStyle
	default:
		s = lipgloss.NewStyle()
	}
	if cursor {
		s = s.Reverse(true)
	}
	return s
}

func nodeColor(color string, cfg config.Config) string {
	if color == "" {
		return cfg.Editor.DefaultColor
	}
	return color
}

func (m *editorModel) statusLine() string {
	name := filepath.Base(m.path)
	if m.dirty {
		name += " *"
	}
	parts := []string{
		name,
		fmt.Sprintf("%d nodes", m.st.NodeCount()),
		fmt.Sprintf("%d conns", m.st.ConnectionCount()),
		fmt.Sprintf("history %d/%d", m.st.HistoryIndex()+1, m.st.HistoryLen()),
		fmt.Sprintf("zoom %.0f%%", m.view.Scale*100),
		"link " + string(m.connType),
	}
	if m.drag.Active() {
		parts = append(parts, "moving")
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return " " + strings.Join(parts, " · ")
}

func (m *editorModel) helpLine() string {
	switch {
	case m.mode == modeEdit:
		return "type label  ⏎ save  esc cancel"
	case m.mode == modeConnect:
		return "move to target  ⏎ connect  esc cancel"
	case m.drag.Active():
		return "arrows move  ⏎/m drop  esc cancel"
	}
	return "arrows cursor  HJKL pan  +/- zoom  0 fit  ⏎ select  a add  e edit  c connect  t link style  ] size  m move  d del  x del link  u/r undo/redo  s save  q quit"
}
