package nooprenderer

import (
	"sync"

	"github.com/tonkatsuu/agriconnect-beta/overlay"
	"github.com/tonkatsuu/agriconnect-beta/render"
)

// Renderer 是原生渲染通道的占位后端：不产出图像，只记录每次调用，
// 供测试与尚未接入真实原生层的宿主使用。几何仍完全来自 overlay 生成器，
// 与栅格化后端消费同一份图元序列。
type Renderer struct {
	mu    sync.Mutex
	calls []Call
}

// Call 记录一次 Render 请求的入参摘要。
type Call struct {
	Viewport   overlay.Viewport
	Primitives int
}

var _ render.Renderer = (*Renderer)(nil)

func NewRenderer() *Renderer { return &Renderer{} }

// Render 记录调用并返回空数据，永不失败。
func (r *Renderer) Render(vp overlay.Viewport, prims []overlay.Primitive) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Viewport: vp, Primitives: len(prims)})
	return nil, nil
}

// Calls 返回已记录的调用副本。
func (r *Renderer) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}
