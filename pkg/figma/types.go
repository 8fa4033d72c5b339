package figma

import "encoding/json"

// FileResponse represents the complete response from the Figma file API endpoint.
// It contains the file metadata, the document tree, and the shared component,
// component-set, and style tables published in the file.
type FileResponse struct {
	Name          string                  `json:"name"`
	LastModified  string                  `json:"lastModified"`
	ThumbnailURL  string                  `json:"thumbnailUrl"`
	Version       string                  `json:"version"`
	Document      Node                    `json:"document"`
	Components    map[string]Component    `json:"components,omitempty"`
	ComponentSets map[string]ComponentSet `json:"componentSets,omitempty"`
	Styles        map[string]Style        `json:"styles,omitempty"`
	SchemaVersion int                     `json:"schemaVersion"`
}

// NodesResponse represents the response from the Figma nodes API endpoint when
// fetching specific subtrees. Each requested node id maps to its own document
// root with per-subtree component and style tables.
type NodesResponse struct {
	Name         string              `json:"name"`
	LastModified string              `json:"lastModified"`
	Version      string              `json:"version"`
	Nodes        map[string]NodeData `json:"nodes"`
}

// NodeData wraps a requested node's document subtree together with the
// component, component-set, and style tables scoped to that subtree.
type NodeData struct {
	Document      Node                    `json:"document"`
	Components    map[string]Component    `json:"components,omitempty"`
	ComponentSets map[string]ComponentSet `json:"componentSets,omitempty"`
	Styles        map[string]Style        `json:"styles,omitempty"`
}

// Component represents a Figma component definition with its metadata.
// Components are reusable design elements instantiated throughout the file.
type Component struct {
	Key            string `json:"key"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	ComponentSetID string `json:"componentSetId,omitempty"`
}

// ComponentSet groups component variants under a shared name.
type ComponentSet struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Style is an entry in a file's published style table. Node.Styles references
// these by id; Name is the designer-facing, human-readable style name.
type Style struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StyleType   string `json:"styleType"`
}

// ImagesResponse represents the response from the render API endpoint.
// Images maps node id to a temporary download URL; an empty URL means the
// node could not be rendered.
type ImagesResponse struct {
	Err    string            `json:"err,omitempty"`
	Images map[string]string `json:"images"`
}

// ImageFillsResponse represents the response from the file images endpoint,
// mapping imageRef values to temporary download URLs.
type ImageFillsResponse struct {
	Meta struct {
		Images map[string]string `json:"images"`
	} `json:"meta"`
}

// ComponentProperty is a single property applied to a component instance.
// Value is kept raw because the API returns strings, booleans, or numbers
// depending on the property type.
type ComponentProperty struct {
	Value json.RawMessage `json:"value"`
	Type  string          `json:"type"`
}

// Node represents a single element in the Figma document tree hierarchy.
// Nodes can be frames, groups, text, shapes, or component instances, each
// carrying its own visual, layout, and text properties plus children.
type Node struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Visible  *bool    `json:"visible,omitempty"` // nil means visible
	Children []Node   `json:"children,omitempty"`
	Opacity  *float64 `json:"opacity,omitempty"`

	// Visual properties.
	Fills                   []Paint        `json:"fills,omitempty"`
	Strokes                 []Paint        `json:"strokes,omitempty"`
	StrokeWeight            *float64       `json:"strokeWeight,omitempty"`
	StrokeDashes            []float64      `json:"strokeDashes,omitempty"`
	IndividualStrokeWeights *StrokeWeights `json:"individualStrokeWeights,omitempty"`
	Effects                 []Effect       `json:"effects,omitempty"`
	CornerRadius            *float64       `json:"cornerRadius,omitempty"`
	RectangleCornerRadii    []float64      `json:"rectangleCornerRadii,omitempty"`

	// Text properties.
	Characters string     `json:"characters,omitempty"`
	Style      *TypeStyle `json:"style,omitempty"`

	// Styles maps a style slot ("fill", "text", "effect", "stroke") to the id
	// of a published style in the file's style table.
	Styles map[string]string `json:"styles,omitempty"`

	// Component instance properties.
	ComponentID         string                       `json:"componentId,omitempty"`
	ComponentProperties map[string]ComponentProperty `json:"componentProperties,omitempty"`

	// Layout properties.
	AbsoluteBoundingBox    *Rectangle `json:"absoluteBoundingBox,omitempty"`
	LayoutMode             string     `json:"layoutMode,omitempty"`
	LayoutWrap             string     `json:"layoutWrap,omitempty"`
	LayoutPositioning      string     `json:"layoutPositioning,omitempty"`
	LayoutSizingHorizontal string     `json:"layoutSizingHorizontal,omitempty"`
	LayoutSizingVertical   string     `json:"layoutSizingVertical,omitempty"`
	PrimaryAxisAlignItems  string     `json:"primaryAxisAlignItems,omitempty"`
	CounterAxisAlignItems  string     `json:"counterAxisAlignItems,omitempty"`
	PaddingLeft            float64    `json:"paddingLeft,omitempty"`
	PaddingRight           float64    `json:"paddingRight,omitempty"`
	PaddingTop             float64    `json:"paddingTop,omitempty"`
	PaddingBottom          float64    `json:"paddingBottom,omitempty"`
	ItemSpacing            float64    `json:"itemSpacing,omitempty"`
}

// IsVisible reports whether the node is visible. The API omits the flag for
// visible nodes, so absence defaults to true.
func (n *Node) IsVisible() bool {
	return n.Visible == nil || *n.Visible
}

// StrokeWeights holds per-side stroke weights for nodes with non-uniform
// borders.
type StrokeWeights struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Color represents an RGBA color with float values ranging from 0 to 1.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Paint represents a fill or stroke applied to a Figma node. SOLID paints
// carry a Color, IMAGE paints carry an ImageRef into the file images table,
// and gradient paints carry stops.
type Paint struct {
	Type          string         `json:"type"`
	Visible       *bool          `json:"visible,omitempty"` // nil means visible
	Opacity       *float64       `json:"opacity,omitempty"`
	Color         *Color         `json:"color,omitempty"`
	ImageRef      string         `json:"imageRef,omitempty"`
	ScaleMode     string         `json:"scaleMode,omitempty"`
	GradientStops []GradientStop `json:"gradientStops,omitempty"`
	// ImageTransform is the normalized 2x3 affine matrix applied to
	// STRETCH-mode image fills. Its presence means the source image must be
	// cropped to match the design.
	ImageTransform [][]float64 `json:"imageTransform,omitempty"`
}

// IsVisible reports whether the paint is visible, defaulting to true when the
// flag is absent.
func (p *Paint) IsVisible() bool {
	return p.Visible == nil || *p.Visible
}

// GradientStop is a single color stop along a gradient paint.
type GradientStop struct {
	Position float64 `json:"position"`
	Color    Color   `json:"color"`
}

// Effect represents a visual effect applied to a node such as drop shadows,
// inner shadows, or blur effects.
type Effect struct {
	Type      string  `json:"type"`
	Visible   *bool   `json:"visible,omitempty"`
	Radius    float64 `json:"radius,omitempty"`
	Color     *Color  `json:"color,omitempty"`
	Offset    *Vector `json:"offset,omitempty"`
	Spread    float64 `json:"spread,omitempty"`
	BlendMode string  `json:"blendMode,omitempty"`
}

// IsVisible reports whether the effect is visible, defaulting to true.
func (e *Effect) IsVisible() bool {
	return e.Visible == nil || *e.Visible
}

// Vector represents a 2D coordinate or offset with X and Y values.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TypeStyle represents text styling properties from Figma: font family,
// weight, size, line height, letter spacing, casing, and alignment.
type TypeStyle struct {
	FontFamily          string  `json:"fontFamily"`
	FontPostScriptName  string  `json:"fontPostScriptName,omitempty"`
	FontWeight          float64 `json:"fontWeight"`
	FontSize            float64 `json:"fontSize"`
	LineHeightPx        float64 `json:"lineHeightPx,omitempty"`
	LineHeightPercent   float64 `json:"lineHeightPercent,omitempty"`
	LetterSpacing       float64 `json:"letterSpacing,omitempty"`
	TextCase            string  `json:"textCase,omitempty"`
	TextAlignHorizontal string  `json:"textAlignHorizontal,omitempty"`
	TextAlignVertical   string  `json:"textAlignVertical,omitempty"`
}

// Rectangle represents a bounding box with position (X, Y) and dimensions.
type Rectangle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
