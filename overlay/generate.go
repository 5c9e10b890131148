package overlay

// 几何生成器：由 (Viewport, spacingCm, visible) 纯函数式地产出图元序列。
// 相同入参总是得到相同顺序、相同数值的结果；所有退化输入（零尺寸视口、
// 非正间距）内部消化为空集或最小集，绝不返回错误或陷入死循环。

const (
	markerRadius   = 15.0
	boxSizeRatio   = 0.3 // 检测框占视口宽高的比例
	cornerTickSize = 20.0
)

// 图元的固定配色。网格线与角标不携带颜色，由渲染后端统一着色。
var (
	markerStroke = Color{R: 255, G: 214, B: 0}
	markerFill   = Color{R: 255, G: 214, B: 0}
	boxStroke    = Color{R: 255, G: 255, B: 255}
)

// Generate 生成一帧叠加层图元。
// 顺序固定：垂直网格线（x 升序）、水平网格线（y 升序）、中心标记、
// (+p,+p) 标记、(-p,-p) 标记、检测框、角标（自左上角起顺时针）。
func Generate(vp Viewport, spacingCm float64, visible bool) []Primitive {
	if !visible {
		return nil
	}
	if vp.Width <= 0 || vp.Height <= 0 {
		return nil
	}

	p := SpacingPx(spacingCm)
	var prims []Primitive

	// 网格线：半开区间，坐标严格小于视口边界；p<=0 时直接跳过，防止死循环。
	if p > 0 {
		for x := p; x < vp.Width; x += p {
			prims = append(prims, Primitive{Line: &GridLine{Orientation: Vertical, Position: x}})
		}
		for y := p; y < vp.Height; y += p {
			prims = append(prims, Primitive{Line: &GridLine{Orientation: Horizontal, Position: y}})
		}
	}

	cx := vp.Width / 2
	cy := vp.Height / 2

	// 中心标记恒定存在；两个偏移标记各自独立判定。
	fill := markerFill
	prims = append(prims, Primitive{Marker: &MarkerCircle{
		Center:      Point{X: cx, Y: cy},
		Radius:      markerRadius,
		StrokeColor: markerStroke,
		FillColor:   &fill,
	}})
	if p > 0 {
		if cx+p < vp.Width && cy+p < vp.Height {
			fill2 := markerFill
			prims = append(prims, Primitive{Marker: &MarkerCircle{
				Center:      Point{X: cx + p, Y: cy + p},
				Radius:      markerRadius,
				StrokeColor: markerStroke,
				FillColor:   &fill2,
			}})
		}
		if cx-p > 0 && cy-p > 0 {
			fill3 := markerFill
			prims = append(prims, Primitive{Marker: &MarkerCircle{
				Center:      Point{X: cx - p, Y: cy - p},
				Radius:      markerRadius,
				StrokeColor: markerStroke,
				FillColor:   &fill3,
			}})
		}
	}

	// 居中检测框与四角角标。
	bw := vp.Width * boxSizeRatio
	bh := vp.Height * boxSizeRatio
	bx := cx - bw/2
	by := cy - bh/2
	prims = append(prims, Primitive{Box: &BoundingBox{
		X:           bx,
		Y:           by,
		Width:       bw,
		Height:      bh,
		StrokeColor: boxStroke,
	}})
	prims = append(prims, cornerTicks(bx, by, bw, bh)...)

	return prims
}

// cornerTicks 生成四角角标，每角两段短线，沿边缘指向框内。
// 顺序：左上、右上、右下、左下（顺时针），每角先水平段后垂直段。
func cornerTicks(x, y, w, h float64) []Primitive {
	t := cornerTickSize
	segs := []CornerTick{
		// 左上
		{From: Point{X: x, Y: y}, To: Point{X: x + t, Y: y}},
		{From: Point{X: x, Y: y}, To: Point{X: x, Y: y + t}},
		// 右上
		{From: Point{X: x + w, Y: y}, To: Point{X: x + w - t, Y: y}},
		{From: Point{X: x + w, Y: y}, To: Point{X: x + w, Y: y + t}},
		// 右下
		{From: Point{X: x + w, Y: y + h}, To: Point{X: x + w - t, Y: y + h}},
		{From: Point{X: x + w, Y: y + h}, To: Point{X: x + w, Y: y + h - t}},
		// 左下
		{From: Point{X: x, Y: y + h}, To: Point{X: x + t, Y: y + h}},
		{From: Point{X: x, Y: y + h}, To: Point{X: x, Y: y + h - t}},
	}
	prims := make([]Primitive, 0, len(segs))
	for i := range segs {
		prims = append(prims, Primitive{Tick: &segs[i]})
	}
	return prims
}

// NewFrame 打包一次生成结果，便于调试 JSON 输出与渲染后端消费。
func NewFrame(vp Viewport, spacingCm float64, visible bool) *Frame {
	return &Frame{
		Viewport:   vp,
		SpacingCm:  spacingCm,
		Visible:    visible,
		Primitives: Generate(vp, spacingCm, visible),
	}
}
