package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/tonkatsuu/agriconnect-beta/overlay"
	"github.com/tonkatsuu/agriconnect-beta/render"
)

// 后端统一持有的描边风格；网格线与角标的颜色不由生成器携带。
const (
	gridLineWidth = 1.0
	tickLineWidth = 3.0
	boxLineWidth  = 2.0
)

var (
	backgroundColor = canvas.RGBA(0.08, 0.10, 0.08, 1.0)
	gridColor       = canvas.RGBA(0.30, 0.85, 0.40, 0.55)
	tickColor       = canvas.RGBA(1.0, 1.0, 1.0, 0.9)
)

// Renderer 通过 github.com/tdewolff/canvas 将图元栅格化为 PNG。
type Renderer struct {
	// Resolution 为每个抽象像素对应的输出像素数，<=0 时取 1。
	Resolution float64
}

var _ render.Renderer = (*Renderer)(nil)

// NewRenderer 创建 1:1 分辨率的栅格化后端。
func NewRenderer() *Renderer { return &Renderer{Resolution: 1.0} }

// Render 将图元序列绘制到视口大小的画布上并编码为 PNG。
func (r *Renderer) Render(vp overlay.Viewport, prims []overlay.Primitive) ([]byte, error) {
	if vp.Width <= 0 || vp.Height <= 0 {
		return nil, fmt.Errorf("视口尺寸无效: %gx%g", vp.Width, vp.Height)
	}

	c := canvas.New(vp.Width, vp.Height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与生成器保持左上角为原点

	ctx.SetFillColor(backgroundColor)
	ctx.DrawPath(0, 0, canvas.Rectangle(vp.Width, vp.Height))

	for _, p := range prims {
		switch {
		case p.Line != nil:
			r.drawGridLine(ctx, vp, *p.Line)
		case p.Marker != nil:
			r.drawMarker(ctx, *p.Marker)
		case p.Box != nil:
			r.drawBox(ctx, *p.Box)
		case p.Tick != nil:
			r.drawTick(ctx, *p.Tick)
		}
	}

	res := r.Resolution
	if res <= 0 {
		res = 1.0
	}
	img := rasterizer.Draw(c, canvas.DPMM(res), canvas.DefaultColorSpace)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// drawGridLine 将逻辑网格线展开为贯穿视口的线段。
func (r *Renderer) drawGridLine(ctx *canvas.Context, vp overlay.Viewport, ln overlay.GridLine) {
	ctx.SetStrokeColor(gridColor)
	ctx.SetStrokeWidth(gridLineWidth)
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	if ln.Orientation == overlay.Vertical {
		p.LineTo(0, vp.Height)
		ctx.DrawPath(ln.Position, 0, p)
	} else {
		p.LineTo(vp.Width, 0)
		ctx.DrawPath(0, ln.Position, p)
	}
}

func (r *Renderer) drawMarker(ctx *canvas.Context, m overlay.MarkerCircle) {
	if m.FillColor != nil {
		// 标记内部保持半透明，避免遮挡相机画面
		ctx.SetFillColor(colorWithAlpha(*m.FillColor, 0.33))
	} else {
		ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	}
	ctx.SetStrokeColor(colorFromOverlay(m.StrokeColor))
	ctx.SetStrokeWidth(boxLineWidth)
	ctx.DrawPath(m.Center.X-m.Radius, m.Center.Y-m.Radius, canvas.Circle(m.Radius))
}

func (r *Renderer) drawBox(ctx *canvas.Context, b overlay.BoundingBox) {
	if b.FillColor != nil {
		ctx.SetFillColor(colorFromOverlay(*b.FillColor))
	} else {
		ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	}
	ctx.SetStrokeColor(colorFromOverlay(b.StrokeColor))
	ctx.SetStrokeWidth(boxLineWidth)
	ctx.DrawPath(b.X, b.Y, canvas.Rectangle(b.Width, b.Height))
}

func (r *Renderer) drawTick(ctx *canvas.Context, t overlay.CornerTick) {
	ctx.SetStrokeColor(tickColor)
	ctx.SetStrokeWidth(tickLineWidth)
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(t.To.X-t.From.X, t.To.Y-t.From.Y)
	ctx.DrawPath(t.From.X, t.From.Y, p)
}

func colorFromOverlay(c overlay.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}

func colorWithAlpha(c overlay.Color, a float64) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, a)
}
