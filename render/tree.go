package render

import (
	"fmt"
	"strconv"
	"strings"

	"pagecraft/models"
)

// Tree is everything a painter needs: the surface look and the nodes in paint order
type Tree struct {
	Surface Surface `json:"surface"`
	Nodes   []Node  `json:"nodes"`
}

// Surface is the container the nodes are painted into
type Surface struct {
	FontFamily string `json:"fontFamily"`
	Background string `json:"background"`
	Overlay    string `json:"overlay"`
}

// Node is one painted element. Later nodes are painted above earlier ones.
type Node struct {
	ID         string             `json:"id"`
	Kind       models.ElementType `json:"kind"`
	Left       float64            `json:"left"`
	Top        float64            `json:"top"`
	Width      float64            `json:"width"`
	Height     float64            `json:"height"`
	Radius     float64            `json:"radius"`
	Color      string             `json:"color"`
	Background string             `json:"background"`
	FontSize   float64            `json:"fontSize"`
	Align      string             `json:"align"`
	Shadow     string             `json:"shadow,omitempty"`
	Text       string             `json:"text"`
	Href       string             `json:"href,omitempty"`
	Selected   bool               `json:"selected,omitempty"`
}

// Build rebuilds the whole tree from doc. It is pure: the same document and
// selection always give the same tree.
func Build(doc models.SiteDocument, selectedID string) Tree {
	settings := ResolveSettings(doc.Settings)
	overlay := fmt.Sprintf("radial-gradient(circle at 0%% 0%%, %s40, transparent 55%%), radial-gradient(circle at 100%% 0%%, %s40, transparent 55%%)",
		settings.GradientFrom, settings.GradientTo)

	tree := Tree{
		Surface: Surface{
			FontFamily: settings.FontFamily,
			Background: fmt.Sprintf("radial-gradient(circle at top left, %s, #000 75%%)", settings.BackgroundColor),
			Overlay:    overlay,
		},
		Nodes: make([]Node, 0, len(doc.Elements)),
	}

	for _, el := range doc.Elements {
		node := NewNode(Resolve(el))
		node.Selected = selectedID != "" && el.ID == selectedID
		tree.Nodes = append(tree.Nodes, node)
	}
	return tree
}

// NewNode maps a resolved element onto a node
func NewNode(r Resolved) Node {
	return Node{
		ID:         r.ID,
		Kind:       r.Type,
		Left:       r.X,
		Top:        r.Y,
		Width:      r.Width,
		Height:     r.Height,
		Radius:     r.Radius,
		Color:      r.Color,
		Background: r.BgColor,
		FontSize:   r.FontSize,
		Align:      r.Align,
		Shadow:     r.Shadow,
		Text:       r.Content,
		Href:       r.URL,
	}
}

// Find returns the node with the given id
func (t Tree) Find(id string) (Node, bool) {
	for _, n := range t.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Style is the inline CSS for the node box
func (n Node) Style() string {
	props := []string{
		"left:" + px(n.Left),
		"top:" + px(n.Top),
		"width:" + num(n.Width) + "%",
		"height:" + px(n.Height),
		"border-radius:" + px(n.Radius),
		"color:" + n.Color,
		"background:" + n.Background,
		"font-size:" + px(n.FontSize),
		"text-align:" + n.Align,
	}
	return strings.Join(props, ";")
}

// Classes is the class list for the node box; prefix is "public" or "preview"
func (n Node) Classes(prefix string) string {
	classes := []string{prefix + "-element"}
	if n.Shadow != "" {
		classes = append(classes, "shadow-"+n.Shadow)
	}
	if n.Selected {
		classes = append(classes, "selected")
	}
	return strings.Join(classes, " ")
}

// Style is the inline CSS for the surface
func (s Surface) Style() string {
	return "font-family:" + s.FontFamily + ";background:" + s.Background
}

func px(v float64) string {
	return num(v) + "px"
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
