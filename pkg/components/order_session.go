package components

// OrderSessionComponent 订单会话组件（纯数据，无方法）
//
// 每张订单创建一个实体，订单完成或超时失败后销毁。
// 由 OrderSystem 创建和修改，OrderTimerSystem 负责倒计时。
type OrderSessionComponent struct {
	// ==========================================================================
	// 目标饮品 (Target Drink)
	// ==========================================================================

	// DrinkName 饮品名称（显示为 "Order: <name>"）
	DrinkName string

	// DrinkImage 饮品图片资源ID
	DrinkImage string

	// RequiredIngredients 有序原料列表（允许重复）
	RequiredIngredients []string

	// RemainingCounts 每种原料还需要加入的次数
	// 由 RequiredIngredients 按出现次数统计得到，只会递减
	RemainingCounts map[string]int

	// ==========================================================================
	// 输入通道 (Channels)
	// ==========================================================================

	// Channels 通道 -> 原料名，长度固定为通道数量
	// 包含全部去重后的必需原料，其余位置由干扰原料补齐，已随机打乱
	Channels []string

	// ChannelIcons 通道 -> 图标ID，与 Channels 一一对应（干扰原料为空）
	ChannelIcons []string

	// Collected 已正确加入的原料（按加入顺序）
	Collected []string

	// ==========================================================================
	// 计时 (Timer)
	// ==========================================================================

	// TimeRemaining 剩余时间（秒）
	TimeRemaining float64

	// LowTimeWarned 本单是否已经播放过低时间警告
	LowTimeWarned bool

	// ==========================================================================
	// 状态 (State)
	// ==========================================================================

	// Completed 所有原料都已加入
	Completed bool

	// Failed 倒计时归零时仍未完成
	Failed bool
}
