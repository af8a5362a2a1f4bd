package scenes

import (
	"testing"

	"github.com/gonewx/coffeeshop/pkg/config"
	"github.com/gonewx/coffeeshop/pkg/game"
)

var _ game.Presenter = (*TextBoard)(nil)

// TestTextBoardDisplayText 测试文本设置与清除
func TestTextBoardDisplayText(t *testing.T) {
	board := NewTextBoard()

	board.DisplayText(game.TargetNPC, "Hey, I'm Gita!")
	if got := board.Text(game.TargetNPC); got != "Hey, I'm Gita!" {
		t.Errorf("Text(npc) = %q", got)
	}

	board.DisplayText(game.TargetNPC, "")
	if got := board.Text(game.TargetNPC); got != "" {
		t.Errorf("Text(npc) after clear = %q, want empty", got)
	}

	if board.Highlight() != -1 {
		t.Errorf("initial Highlight() = %d, want -1", board.Highlight())
	}
	board.SetHighlight(2)
	if board.Highlight() != 2 {
		t.Errorf("Highlight() = %d, want 2", board.Highlight())
	}
}

// TestTargetPosition 测试文本目标的布局位置
func TestTargetPosition(t *testing.T) {
	channelX, channelY := config.ChannelPosition(1)

	tests := []struct {
		name   string
		target game.TextTarget
		wantX  float64
		wantY  float64
		wantOK bool
	}{
		{"NPC台词", game.TargetNPC, config.TextMarginX, config.NPCTextY, true},
		{"玩家台词", game.TargetPlayer, config.TextMarginX, config.PlayerTextY, true},
		{"第三个选项槽", game.OptionTarget(2), config.TextMarginX, config.OptionSlotY(2), true},
		{"右侧通道", game.ChannelTarget(1), channelX, channelY, true},
		{"倒计时", game.TargetTimer, config.TimerTextX, config.OrderTextY, true},
		{"未知目标", game.TextTarget("nowhere"), 0, 0, false},
		{"非法槽位", game.TextTarget("option.x"), 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := targetPosition(tt.target)
			if ok != tt.wantOK || x != tt.wantX || y != tt.wantY {
				t.Errorf("targetPosition(%s) = (%v, %v, %v), want (%v, %v, %v)",
					tt.target, x, y, ok, tt.wantX, tt.wantY, tt.wantOK)
			}
		})
	}
}
