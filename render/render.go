package render

import "github.com/tonkatsuu/agriconnect-beta/overlay"

// Renderer 将一帧图元输出为最终图像数据（例如 PNG 字节切片）。
// 几何全部来自 overlay 生成器，后端只负责着色与绘制，不自行计算坐标。
type Renderer interface {
	Render(vp overlay.Viewport, prims []overlay.Primitive) ([]byte, error)
}
