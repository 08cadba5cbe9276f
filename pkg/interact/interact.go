package interact

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/matzehuels/wbsview/pkg/layout"
	"github.com/matzehuels/wbsview/pkg/observability"
	"github.com/matzehuels/wbsview/pkg/view"
	"github.com/matzehuels/wbsview/pkg/wbs"
)

// NoticeCreateUnavailable is shown when "create connected node" is chosen.
const NoticeCreateUnavailable = "Creating connected nodes is not available yet."

var (
	// ErrMenuClosed is returned by Select when no menu is open.
	ErrMenuClosed = errors.New("interact: no context menu open")
	// ErrItemUnavailable is returned by Select for an item the open menu
	// does not offer.
	ErrItemUnavailable = errors.New("interact: item not offered by this menu")
)

// Target is what a gesture landed on.
type Target string

const (
	TargetCanvas Target = "canvas"
	TargetNode   Target = "node"
	TargetEdge   Target = "edge"
)

// Button identifies the pointer button of a gesture.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
)

func (b Button) String() string {
	if b == ButtonRight {
		return "right"
	}
	return "left"
}

// Event is a pointer gesture reported by the rendering collaborator.
type Event struct {
	Button Button
	Target Target
	// ID is the node or edge id; empty for the canvas.
	ID string
	// X and Y are the pointer position in screen coordinates.
	X, Y float64
}

// Response tells the host how to finish handling a gesture.
type Response struct {
	// SuppressNativeMenu asks the host to prevent its own context menu.
	SuppressNativeMenu bool
}

// Item is a context menu entry.
type Item string

const (
	ItemReturnToWBS     Item = "return-to-wbs"
	ItemShowConnected   Item = "show-connected"
	ItemCreateConnected Item = "create-connected"
)

// Label returns the text shown for the item.
func (i Item) Label() string {
	switch i {
	case ItemReturnToWBS:
		return "Return to WBS"
	case ItemShowConnected:
		return "Show connected nodes"
	case ItemCreateConnected:
		return "Create connected node"
	}
	return string(i)
}

// Menu is the context menu state. NodeID is set only when Target is
// TargetNode. A hidden menu is the zero value.
type Menu struct {
	Visible bool
	X, Y    float64
	Target  Target
	NodeID  string
}

// Notifier shows a user-visible notice.
type Notifier interface {
	Notify(message string)
}

// Renderer receives every freshly derived view.
type Renderer interface {
	Render(v view.View)
}

// NotifierFunc adapts a function to [Notifier].
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// RendererFunc adapts a function to [Renderer].
type RendererFunc func(v view.View)

func (f RendererFunc) Render(v view.View) { f(v) }

// Option configures a [Controller].
type Option func(*Controller)

// WithNotifier sets the notification collaborator.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithRenderer sets the rendering collaborator.
func WithRenderer(r Renderer) Option {
	return func(c *Controller) { c.renderer = r }
}

// WithViewOptions sets the options passed to [view.Derive].
func WithViewOptions(opts ...view.Option) Option {
	return func(c *Controller) { c.viewOpts = opts }
}

// Controller is the view and context menu state machine of one session.
type Controller struct {
	base     *layout.Base
	state    view.State
	menu     Menu
	current  view.View
	notifier Notifier
	renderer Renderer
	viewOpts []view.Option
}

// New computes the base layout of g once and starts a session on it.
func New(g *wbs.Graph, layoutOpts []layout.Option, opts ...Option) *Controller {
	return NewWithBase(layout.Compute(g, layoutOpts...), opts...)
}

// NewWithBase starts a session on a precomputed base layout. The initial
// state is GLOBAL with no focus and the menu hidden; the initial view is
// pushed to the renderer.
func NewWithBase(base *layout.Base, opts ...Option) *Controller {
	c := &Controller{base: base, state: view.Initial()}
	for _, opt := range opts {
		opt(c)
	}
	c.refresh()
	return c
}

// State returns the current view state.
func (c *Controller) State() view.State { return c.state }

// Menu returns the current context menu state.
func (c *Controller) Menu() Menu { return c.menu }

// View returns the view derived for the current state.
func (c *Controller) View() view.View { return c.current }

// Base returns the base layout the session was started on.
func (c *Controller) Base() *layout.Base { return c.base }

// Handle applies a pointer gesture.
func (c *Controller) Handle(ctx context.Context, ev Event) Response {
	observability.Interaction().OnGesture(ctx, ev.Button.String(), string(ev.Target), ev.ID)

	if ev.Button == ButtonLeft {
		c.menu = Menu{}
		return Response{}
	}

	switch ev.Target {
	case TargetCanvas:
		c.menu = Menu{Visible: true, X: ev.X, Y: ev.Y, Target: TargetCanvas}
	case TargetNode:
		c.menu = Menu{Visible: true, X: ev.X, Y: ev.Y, Target: TargetNode, NodeID: ev.ID}
	default:
		c.menu = Menu{}
	}
	return Response{SuppressNativeMenu: true}
}

// Items lists the entries of the open menu, or nil when it is hidden.
func (c *Controller) Items() []Item {
	if !c.menu.Visible {
		return nil
	}
	switch c.menu.Target {
	case TargetCanvas:
		return []Item{ItemReturnToWBS}
	case TargetNode:
		return []Item{ItemShowConnected, ItemCreateConnected}
	}
	return nil
}

// Select activates a menu item and closes the menu. Choosing an item while
// no menu is open, or one the menu does not offer, changes nothing.
func (c *Controller) Select(ctx context.Context, item Item) error {
	if !c.menu.Visible {
		return ErrMenuClosed
	}
	if !slices.Contains(c.Items(), item) {
		return fmt.Errorf("%w: %s", ErrItemUnavailable, item)
	}

	target := c.menu.NodeID
	c.menu = Menu{}

	switch item {
	case ItemReturnToWBS:
		c.transition(ctx, item, view.Initial())
	case ItemShowConnected:
		c.transition(ctx, item, view.Focused(target))
	case ItemCreateConnected:
		observability.Interaction().OnNotice(ctx, NoticeCreateUnavailable)
		if c.notifier != nil {
			c.notifier.Notify(NoticeCreateUnavailable)
		}
	}
	return nil
}

func (c *Controller) transition(ctx context.Context, item Item, next view.State) {
	observability.Interaction().OnTransition(ctx, observability.Transition{
		Item:      string(item),
		FromMode:  string(c.state.Mode),
		FromFocus: c.state.Focus,
		ToMode:    string(next.Mode),
		ToFocus:   next.Focus,
	})
	c.state = next
	c.refresh()
}

func (c *Controller) refresh() {
	c.current = view.Derive(c.state, c.base, c.viewOpts...)
	if c.renderer != nil {
		c.renderer.Render(c.current)
	}
}
