package overlay

import (
	"math"
	"reflect"
	"testing"
)

func countKind(prims []Primitive, kind string) int {
	n := 0
	for _, p := range prims {
		if p.Kind() == kind {
			n++
		}
	}
	return n
}

func gridLines(prims []Primitive, o Orientation) []float64 {
	var out []float64
	for _, p := range prims {
		if p.Line != nil && p.Line.Orientation == o {
			out = append(out, p.Line.Position)
		}
	}
	return out
}

func TestGenerateInvisibleReturnsNothing(t *testing.T) {
	vps := []Viewport{{400, 800}, {0, 0}, {-10, 50}, {1920, 1080}}
	for _, vp := range vps {
		if got := Generate(vp, 30, false); len(got) != 0 {
			t.Fatalf("visible=false 时应返回空序列，实际 %d 个图元 (vp=%v)", len(got), vp)
		}
	}
}

func TestGenerateDegenerateViewport(t *testing.T) {
	for _, vp := range []Viewport{{0, 800}, {400, 0}, {-1, -1}} {
		if got := Generate(vp, 30, true); len(got) != 0 {
			t.Fatalf("退化视口 %v 应返回空序列，实际 %d 个图元", vp, len(got))
		}
	}
}

// TestGenerateNonPositiveSpacing 验证非正间距不会死循环，且只产出最小集
// （中心标记 + 检测框 + 角标，无网格线、无偏移标记）。
func TestGenerateNonPositiveSpacing(t *testing.T) {
	for _, cm := range []float64{0, -5} {
		prims := Generate(Viewport{400, 800}, cm, true)
		if n := countKind(prims, "line"); n != 0 {
			t.Fatalf("间距 %gcm 不应产出网格线，实际 %d 条", cm, n)
		}
		if n := countKind(prims, "marker"); n != 1 {
			t.Fatalf("间距 %gcm 应只有中心标记，实际 %d 个", cm, n)
		}
		if n := countKind(prims, "box"); n != 1 {
			t.Fatalf("检测框缺失，实际 %d 个", n)
		}
		if n := countKind(prims, "tick"); n != 8 {
			t.Fatalf("角标应为 8 段，实际 %d 段", n)
		}
	}
}

// TestGridLineHalfOpenBoundary 验证网格线数量与半开边界规则：
// 所有坐标严格小于视口尺寸，数量等于 floor 规则给出的值。
func TestGridLineHalfOpenBoundary(t *testing.T) {
	cases := []struct {
		vp Viewport
		cm float64
	}{
		{Viewport{400, 800}, 30},
		{Viewport{400, 800}, 10},
		{Viewport{1080, 1920}, 55},
		{Viewport{100, 100}, 100}, // p=377 > 视口：0 条
	}
	for _, c := range cases {
		p := SpacingPx(c.cm)
		prims := Generate(c.vp, c.cm, true)
		vert := gridLines(prims, Vertical)
		horz := gridLines(prims, Horizontal)
		for _, x := range vert {
			if x >= c.vp.Width {
				t.Fatalf("垂直线坐标 %g 超出视口宽度 %g", x, c.vp.Width)
			}
		}
		for _, y := range horz {
			if y >= c.vp.Height {
				t.Fatalf("水平线坐标 %g 超出视口高度 %g", y, c.vp.Height)
			}
		}
		// 期望数量：严格小于边界的 p 的整数倍个数
		wantV := 0
		for x := p; x < c.vp.Width; x += p {
			wantV++
		}
		wantH := 0
		for y := p; y < c.vp.Height; y += p {
			wantH++
		}
		if len(vert) != wantV || len(horz) != wantH {
			t.Fatalf("vp=%v cm=%g 线数不符: 垂直 %d/%d 水平 %d/%d",
				c.vp, c.cm, len(vert), wantV, len(horz), wantH)
		}
	}
}

// TestGenerateDeterministic 断言相同入参两次调用产出完全一致的序列。
func TestGenerateDeterministic(t *testing.T) {
	a := Generate(Viewport{400, 800}, 30, true)
	b := Generate(Viewport{400, 800}, 30, true)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("相同入参两次生成结果不一致")
	}
}

// TestMarkerConditions 验证偏移标记的独立条件：
// (+p,+p) 仅当两个偏移坐标都严格在视口内；(-p,-p) 仅当都严格为正。
func TestMarkerConditions(t *testing.T) {
	cases := []struct {
		vp   Viewport
		cm   float64
		want int
	}{
		{Viewport{400, 800}, 30, 3}, // p≈113.1：两个偏移标记都在
		{Viewport{400, 800}, 60, 1}, // p≈226.2 > cx=200：都不在
		{Viewport{200, 200}, 30, 1}, // p>cx 且 p>cy
		{Viewport{2000, 2000}, 100, 3},
	}
	for _, c := range cases {
		prims := Generate(c.vp, c.cm, true)
		if n := countKind(prims, "marker"); n != c.want {
			t.Fatalf("vp=%v cm=%g 期望 %d 个标记，实际 %d", c.vp, c.cm, c.want, n)
		}
		// 中心标记必须是第一个 marker
		for _, p := range prims {
			if p.Marker != nil {
				if p.Marker.Center.X != c.vp.Width/2 || p.Marker.Center.Y != c.vp.Height/2 {
					t.Fatalf("首个标记应位于视口中心，实际 %v", p.Marker.Center)
				}
				break
			}
		}
	}
}

// TestGenerateWorkedExample 按既定样例校验端到端几何：
// 视口 (400,800)、间距 30cm → p≈113.1，垂直 3 条、水平 7 条、3 个标记。
func TestGenerateWorkedExample(t *testing.T) {
	vp := Viewport{400, 800}
	prims := Generate(vp, 30, true)

	vert := gridLines(prims, Vertical)
	horz := gridLines(prims, Horizontal)
	if len(vert) != 3 {
		t.Fatalf("期望 3 条垂直线，实际 %d", len(vert))
	}
	if len(horz) != 7 {
		t.Fatalf("期望 7 条水平线，实际 %d", len(horz))
	}
	p := 30 * CmToPx
	for i, x := range vert {
		want := p * float64(i+1)
		if math.Abs(x-want) > 1e-6 {
			t.Fatalf("第 %d 条垂直线坐标 %g，期望 %g", i+1, x, want)
		}
	}
	if n := countKind(prims, "marker"); n != 3 {
		t.Fatalf("期望 3 个标记，实际 %d", n)
	}

	// 检测框：30% 宽高并居中
	var box *BoundingBox
	for _, pr := range prims {
		if pr.Box != nil {
			box = pr.Box
			break
		}
	}
	if box == nil {
		t.Fatalf("缺少检测框")
	}
	if math.Abs(box.Width-120) > 1e-9 || math.Abs(box.Height-240) > 1e-9 {
		t.Fatalf("检测框尺寸期望 120x240，实际 %gx%g", box.Width, box.Height)
	}
	if math.Abs(box.X-140) > 1e-9 || math.Abs(box.Y-280) > 1e-9 {
		t.Fatalf("检测框位置期望 (140,280)，实际 (%g,%g)", box.X, box.Y)
	}
}

// TestPrimitiveOrder 验证序列的固定顺序：线、标记、框、角标。
func TestPrimitiveOrder(t *testing.T) {
	prims := Generate(Viewport{400, 800}, 30, true)
	order := map[string]int{"line": 0, "marker": 1, "box": 2, "tick": 3}
	last := -1
	for i, p := range prims {
		rank, ok := order[p.Kind()]
		if !ok {
			t.Fatalf("第 %d 个图元类型未知", i)
		}
		if rank < last {
			t.Fatalf("第 %d 个图元 %q 破坏了固定顺序", i, p.Kind())
		}
		last = rank
	}
}
