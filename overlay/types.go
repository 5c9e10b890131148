package overlay

// 该文件定义叠加层的几何图元，供生成器、渲染后端与调试 JSON 共用。

// Viewport 表示宿主画面的尺寸（抽象像素单位），每次变化时由宿主重新提供。
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Orientation 表示网格线的方向。
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// GridLine 表示一条贯穿视口的网格线，Position 为其 x（垂直线）或 y（水平线）坐标。
type GridLine struct {
	Orientation Orientation `json:"orientation"`
	Position    float64     `json:"position"`
}

// Point 表示一个像素坐标。
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MarkerCircle 表示一个标记圆。
type MarkerCircle struct {
	Center      Point   `json:"center"`
	Radius      float64 `json:"radius"`
	StrokeColor Color   `json:"strokeColor"`
	FillColor   *Color  `json:"fillColor,omitempty"` // 为空表示不填充
}

// BoundingBox 表示居中的检测框。
type BoundingBox struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	StrokeColor Color   `json:"strokeColor"`
	FillColor   *Color  `json:"fillColor,omitempty"`
}

// CornerTick 表示检测框角部的一段短线。
type CornerTick struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// Primitive 是图元的标签化变体：四个指针字段恰有一个非空。
// 图元为纯值，每次参数变化都会整体重新生成，不做增量修改。
type Primitive struct {
	Line   *GridLine     `json:"line,omitempty"`
	Marker *MarkerCircle `json:"marker,omitempty"`
	Box    *BoundingBox  `json:"box,omitempty"`
	Tick   *CornerTick   `json:"tick,omitempty"`
}

// Kind 返回图元类型的可读名称。
func (p Primitive) Kind() string {
	switch {
	case p.Line != nil:
		return "line"
	case p.Marker != nil:
		return "marker"
	case p.Box != nil:
		return "box"
	case p.Tick != nil:
		return "tick"
	default:
		return "unknown"
	}
}

// Frame 保存一次生成的完整图元序列及其视口，便于调试输出。
type Frame struct {
	Viewport   Viewport    `json:"viewport"`
	SpacingCm  float64     `json:"spacingCm"`
	Visible    bool        `json:"visible"`
	Primitives []Primitive `json:"primitives"`
}
