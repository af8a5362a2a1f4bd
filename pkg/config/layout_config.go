package config

// 布局配置常量
// 所有坐标为逻辑屏幕坐标（像素），由 App.Layout 固定

const (
	// ScreenWidth 逻辑屏幕宽度
	ScreenWidth = 800
	// ScreenHeight 逻辑屏幕高度
	ScreenHeight = 600

	// TextMarginX 文本左边距
	TextMarginX = 40.0
	// LineHeight 单行文本高度（basicfont 7x13 放大后）
	LineHeight = 18.0
	// WrapColumns 台词自动换行的列数
	WrapColumns = 90
)

// 对话场景布局
const (
	// NPCTextY Gita 台词的起始Y坐标
	NPCTextY = 120.0
	// PlayerTextY Finn 台词的起始Y坐标
	PlayerTextY = 240.0
	// OptionStartY 第一个选项槽的Y坐标
	OptionStartY = 360.0
	// OptionSpacing 选项槽之间的间距
	OptionSpacing = 40.0
	// OptionSlotCount 选项槽数量
	OptionSlotCount = 3
)

// 制作饮品场景布局
const (
	// ChannelCenterX 通道十字布局的中心X坐标
	ChannelCenterX = 400.0
	// ChannelCenterY 通道十字布局的中心Y坐标
	ChannelCenterY = 330.0
	// ChannelRadius 通道到中心的距离
	ChannelRadius = 110.0
)

// 状态栏与提示文本
const (
	// TitleTextY 场景标题
	TitleTextY = 60.0
	// OrderTextY 订单名称
	OrderTextY = 40.0
	// ProgressTextY 已完成数量
	ProgressTextY = 64.0
	// TimerTextX 倒计时（右上角）
	TimerTextX = 680.0
	// FeedbackTextY 提交反馈
	FeedbackTextY = 500.0
	// PromptTextY 交互提示
	PromptTextY = 560.0
	// ErrorTextY 配置错误信息
	ErrorTextY = 300.0
)

// OptionSlots 返回 n 个选项使用的显示槽位
// 两个选项占用第 0 和第 2 槽（上下留空），三个选项依次占满
func OptionSlots(n int) []int {
	switch {
	case n <= 0:
		return nil
	case n == 2:
		return []int{0, 2}
	case n > OptionSlotCount:
		n = OptionSlotCount
	}
	slots := make([]int, n)
	for i := range slots {
		slots[i] = i
	}
	return slots
}

// OptionSlotY 返回选项槽的Y坐标
func OptionSlotY(slot int) float64 {
	return OptionStartY + float64(slot)*OptionSpacing
}

// ChannelPosition 返回通道的显示坐标
// 通道 0~3 依次对应 上、右、下、左 方向键
func ChannelPosition(channel int) (x, y float64) {
	switch channel {
	case 0:
		return ChannelCenterX, ChannelCenterY - ChannelRadius
	case 1:
		return ChannelCenterX + ChannelRadius, ChannelCenterY
	case 2:
		return ChannelCenterX, ChannelCenterY + ChannelRadius
	case 3:
		return ChannelCenterX - ChannelRadius, ChannelCenterY
	default:
		return ChannelCenterX, ChannelCenterY
	}
}
