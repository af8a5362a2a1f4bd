package scenes

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/gonewx/coffeeshop/pkg/config"
	"github.com/gonewx/coffeeshop/pkg/game"
	"github.com/gonewx/coffeeshop/pkg/utils"
)

// TargetTitle 场景标题（只由场景自身使用）
const TargetTitle game.TextTarget = "title"

// basicfont.Face7x13 的字符宽度
const glyphWidth = 7.0

var (
	backgroundColor = color.RGBA{R: 0x2b, G: 0x1d, B: 0x14, A: 0xff}
	textColor       = color.RGBA{R: 0xf3, G: 0xe9, B: 0xdc, A: 0xff}
	highlightColor  = color.RGBA{R: 0xff, G: 0xc8, B: 0x57, A: 0xff}
	errorColor      = color.RGBA{R: 0xff, G: 0x5c, B: 0x5c, A: 0xff}
)

// TextBoard 纯文本表现层（实现 game.Presenter）
//
// 每个文本目标对应屏幕上的一个固定位置，Draw 时用 basicfont 绘制。
// 核心逻辑只通过 DisplayText / SetHighlight 与它交互。
type TextBoard struct {
	texts     map[game.TextTarget]string
	highlight int
	face      text.Face
}

// NewTextBoard 创建空白的文本面板
func NewTextBoard() *TextBoard {
	return &TextBoard{
		texts:     make(map[game.TextTarget]string),
		highlight: -1,
	}
}

// DisplayText 设置目标上显示的文本，空字符串清除该目标
func (b *TextBoard) DisplayText(target game.TextTarget, content string) {
	if content == "" {
		delete(b.texts, target)
		return
	}
	b.texts[target] = content
}

// SetHighlight 高亮第 optionIndex 个选项槽，-1 取消高亮
func (b *TextBoard) SetHighlight(optionIndex int) {
	b.highlight = optionIndex
}

// Text 返回目标上当前显示的文本
func (b *TextBoard) Text(target game.TextTarget) string {
	return b.texts[target]
}

// Highlight 返回当前高亮的选项槽
func (b *TextBoard) Highlight() int {
	return b.highlight
}

// Draw 绘制所有文本
func (b *TextBoard) Draw(screen *ebiten.Image) {
	if b.face == nil {
		b.face = text.NewGoXFace(basicfont.Face7x13)
	}
	screen.Fill(backgroundColor)

	for target, content := range b.texts {
		x, y, ok := targetPosition(target)
		if !ok {
			continue
		}

		clr := color.Color(textColor)
		if target == game.TargetError {
			clr = errorColor
		}
		if slot, isOption := optionSlot(target); isOption {
			if slot == b.highlight {
				content = "> " + content
				clr = highlightColor
			} else {
				content = "  " + content
			}
		}

		maxWidth := float64(config.WrapColumns) * glyphWidth
		for i, line := range utils.WrapTextFace(content, b.face, maxWidth) {
			op := &text.DrawOptions{}
			op.GeoM.Translate(x, y+float64(i)*config.LineHeight)
			op.ColorScale.ScaleWithColor(clr)
			text.Draw(screen, line, b.face, op)
		}
	}
}

// targetPosition 返回文本目标的左上角坐标
func targetPosition(target game.TextTarget) (x, y float64, ok bool) {
	switch target {
	case TargetTitle:
		return config.TextMarginX, config.TitleTextY, true
	case game.TargetNPC:
		return config.TextMarginX, config.NPCTextY, true
	case game.TargetPlayer:
		return config.TextMarginX, config.PlayerTextY, true
	case game.TargetOrder:
		return config.TextMarginX, config.OrderTextY, true
	case game.TargetProgress:
		return config.TextMarginX, config.ProgressTextY, true
	case game.TargetTimer:
		return config.TimerTextX, config.OrderTextY, true
	case game.TargetFeedback:
		return config.TextMarginX, config.FeedbackTextY, true
	case game.TargetPrompt:
		return config.TextMarginX, config.PromptTextY, true
	case game.TargetError:
		return config.TextMarginX, config.ErrorTextY, true
	}

	if slot, isOption := optionSlot(target); isOption {
		return config.TextMarginX, config.OptionSlotY(slot), true
	}
	if channel, isChannel := indexedTarget(target, "channel."); isChannel {
		x, y := config.ChannelPosition(channel)
		return x, y, true
	}
	return 0, 0, false
}

func optionSlot(target game.TextTarget) (int, bool) {
	return indexedTarget(target, "option.")
}

// indexedTarget 解析 "prefix.N" 形式的目标
func indexedTarget(target game.TextTarget, prefix string) (int, bool) {
	rest, found := strings.CutPrefix(string(target), prefix)
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
