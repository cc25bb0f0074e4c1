package shape

// Kind tags a shape variant. The string values double as the tool tokens
// emitted by the UI and as the kind tag stored in serialized records.
type Kind string

const (
	KindArrow     Kind = "arrow"
	KindLine      Kind = "line"
	KindSpline    Kind = "spline"
	KindRectangle Kind = "rectangle"
	KindCircle    Kind = "circle"
	KindFreeLine  Kind = "freeLine"
	KindPolygon   Kind = "polygon"
)

// Kinds lists every shape kind in render order.
var Kinds = []Kind{
	KindArrow,
	KindLine,
	KindSpline,
	KindRectangle,
	KindCircle,
	KindFreeLine,
	KindPolygon,
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Meta holds the attributes every shape carries.
type Meta struct {
	ID          string `json:"id"`
	Color       string `json:"color"`
	StrokeWidth int    `json:"strokeWidth"`
	CreatedAt   int64  `json:"createdAt"`
}

// Info returns the shared attributes of a shape.
func (m Meta) Info() Meta { return m }

// Shape is the closed set of drawable records. Only the types in this
// package implement it, so a type switch over the seven variants is
// exhaustive.
type Shape interface {
	Kind() Kind
	Info() Meta
	Clone() Shape
	sealed()
}

// Arrow is a straight segment rendered with a head at (x2, y2).
type Arrow struct {
	Meta
	Points [4]float64 `json:"points"`
}

// Line is a straight segment.
type Line struct {
	Meta
	Points [4]float64 `json:"points"`
}

// Spline is a quadratic curve laid out as [p0, control, p2]. Until the
// first pointer-move it only holds p0.
type Spline struct {
	Meta
	Points []float64 `json:"points"`
}

// Rectangle is anchored at its origin. Width and Height are negative
// when the drag went left or up.
type Rectangle struct {
	Meta
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Circle is a center and a non-negative radius.
type Circle struct {
	Meta
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// FreeLine is a flat list of x, y pairs that only grows while drawing.
type FreeLine struct {
	Meta
	Points []float64 `json:"points"`
}

// Polygon is a flat list of x, y pairs. Once Closed it is never mutated.
type Polygon struct {
	Meta
	Points []float64 `json:"points"`
	Closed bool      `json:"closed"`
}

func (*Arrow) Kind() Kind     { return KindArrow }
func (*Line) Kind() Kind      { return KindLine }
func (*Spline) Kind() Kind    { return KindSpline }
func (*Rectangle) Kind() Kind { return KindRectangle }
func (*Circle) Kind() Kind    { return KindCircle }
func (*FreeLine) Kind() Kind  { return KindFreeLine }
func (*Polygon) Kind() Kind   { return KindPolygon }

func (*Arrow) sealed()     {}
func (*Line) sealed()      {}
func (*Spline) sealed()    {}
func (*Rectangle) sealed() {}
func (*Circle) sealed()    {}
func (*FreeLine) sealed()  {}
func (*Polygon) sealed()   {}

func (a *Arrow) Clone() Shape {
	c := *a
	return &c
}

func (l *Line) Clone() Shape {
	c := *l
	return &c
}

func (s *Spline) Clone() Shape {
	c := *s
	c.Points = append([]float64(nil), s.Points...)
	return &c
}

func (r *Rectangle) Clone() Shape {
	c := *r
	return &c
}

func (c *Circle) Clone() Shape {
	cc := *c
	return &cc
}

func (f *FreeLine) Clone() Shape {
	c := *f
	c.Points = append([]float64(nil), f.Points...)
	return &c
}

func (p *Polygon) Clone() Shape {
	c := *p
	c.Points = append([]float64(nil), p.Points...)
	return &c
}

// New allocates an empty shape of the given kind carrying meta. It returns
// nil for an unknown kind.
func New(kind Kind, meta Meta) Shape {
	switch kind {
	case KindArrow:
		return &Arrow{Meta: meta}
	case KindLine:
		return &Line{Meta: meta}
	case KindSpline:
		return &Spline{Meta: meta}
	case KindRectangle:
		return &Rectangle{Meta: meta}
	case KindCircle:
		return &Circle{Meta: meta}
	case KindFreeLine:
		return &FreeLine{Meta: meta}
	case KindPolygon:
		return &Polygon{Meta: meta}
	}
	return nil
}
