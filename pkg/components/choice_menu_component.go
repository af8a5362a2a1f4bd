package components

// ChoiceMenuComponent 玩家选项菜单组件
//
// 选项可以逐个出现（RevealInterval > 0），全部出现后才接受输入。
// 导航循环：第一个向上回到最后一个，最后一个向下回到第一个。
type ChoiceMenuComponent struct {
	Options []string // 选项文本
	Slots   []int    // 选项 -> 显示槽位

	Visible        int     // 已显示的选项数量
	RevealInterval float64 // 选项逐个出现的间隔（秒）
	RevealElapsed  float64 // 距离上一个选项出现经过的时间（秒）

	Selected int  // 当前高亮的选项下标
	Active   bool // 是否接受导航和确认输入
}
