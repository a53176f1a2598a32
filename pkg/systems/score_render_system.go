package systems

import (
	"fmt"
	"image/color"
	"math"

	"github.com/decker502/asteroids/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// scoreColor 分数文本和边框颜色
var scoreColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// FormatScore 返回分数文本，分数 = 会话开始以来的整秒数（向下取整）
func FormatScore(ticks int64) string {
	if ticks < 0 {
		ticks = 0
	}
	return fmt.Sprintf("Score: %d", ticks/1000)
}

// Rect 浮点矩形（左上角 + 尺寸）
type Rect struct {
	X, Y, W, H float64
}

// ScoreLayout 分数文本和边框的屏幕位置
type ScoreLayout struct {
	TextX, TextY float64 // 文本左上角
	Box          Rect    // 边框矩形（文本包围盒向四周扩展 BoxInflate/2）
}

// LayoutScore 计算分数布局：文本底边中点位于 (screenWidth/2, screenHeight-BottomOffset)
func LayoutScore(textWidth, textHeight float64, screenWidth, screenHeight int, cfg config.ScoreConfig) ScoreLayout {
	textX := float64(screenWidth)/2 - textWidth/2
	textY := float64(screenHeight) - cfg.BottomOffset - textHeight
	half := cfg.BoxInflate / 2
	return ScoreLayout{
		TextX: textX,
		TextY: textY,
		Box: Rect{
			X: textX - half,
			Y: textY - half,
			W: textWidth + cfg.BoxInflate,
			H: textHeight + cfg.BoxInflate,
		},
	}
}

// ScoreRenderSystem 绘制分数
type ScoreRenderSystem struct {
	face         *text.GoTextFace
	config       config.ScoreConfig
	screenWidth  int
	screenHeight int
}

// NewScoreRenderSystem 创建分数渲染系统
func NewScoreRenderSystem(face *text.GoTextFace, cfg config.ScoreConfig, screenWidth, screenHeight int) *ScoreRenderSystem {
	return &ScoreRenderSystem{
		face:         face,
		config:       cfg,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
	}
}

// Draw 绘制分数文本及其圆角边框
func (s *ScoreRenderSystem) Draw(screen *ebiten.Image, ticks int64) {
	if s.face == nil {
		return
	}

	scoreText := FormatScore(ticks)
	w, h := text.Measure(scoreText, s.face, 0)
	layout := LayoutScore(w, h, s.screenWidth, s.screenHeight, s.config)

	op := &text.DrawOptions{}
	op.GeoM.Translate(layout.TextX, layout.TextY)
	op.ColorScale.ScaleWithColor(scoreColor)
	text.Draw(screen, scoreText, s.face, op)

	strokeRoundedRect(screen, layout.Box, s.config.BoxCornerRadius, s.config.BoxStrokeWidth, scoreColor)
}

// RoundedRectPath 构建圆角矩形边框路径（顺时针，起点为上边左端圆角之后）
// 矩形先向内收缩 strokeWidth/2，使描边完全落在 r 之内
// 半径被限制在收缩后短边的一半以内；半径为 0 时为直角矩形
func RoundedRectPath(r Rect, radius, strokeWidth float64) *vector.Path {
	half := strokeWidth / 2
	x0 := float32(r.X + half)
	y0 := float32(r.Y + half)
	x1 := float32(r.X + r.W - half)
	y1 := float32(r.Y + r.H - half)
	rad := float32(math.Max(0, math.Min(radius, math.Min(r.W, r.H)/2-half)))

	var path vector.Path
	if rad == 0 {
		path.MoveTo(x0, y0)
		path.LineTo(x1, y0)
		path.LineTo(x1, y1)
		path.LineTo(x0, y1)
		path.Close()
		return &path
	}

	path.MoveTo(x0+rad, y0)
	path.ArcTo(x1, y0, x1, y1, rad)
	path.ArcTo(x1, y1, x0, y1, rad)
	path.ArcTo(x0, y1, x0, y0, rad)
	path.ArcTo(x0, y0, x1, y0, rad)
	path.Close()
	return &path
}

// strokeRoundedRect 绘制圆角矩形边框
func strokeRoundedRect(screen *ebiten.Image, r Rect, radius, strokeWidth float64, clr color.Color) {
	path := RoundedRectPath(r, radius, strokeWidth)

	strokeOp := &vector.StrokeOptions{
		Width:    float32(strokeWidth),
		LineJoin: vector.LineJoinRound,
	}
	drawOp := &vector.DrawPathOptions{AntiAlias: true}
	drawOp.ColorScale.ScaleWithColor(clr)
	vector.StrokePath(screen, path, strokeOp, drawOp)
}
