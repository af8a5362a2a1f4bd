package game

import "fmt"

// DrinkScenario 制作饮品的剧情阶段
type DrinkScenario int

const (
	// ScenarioFirst 第一轮订单（Finn 独自制作）
	ScenarioFirst DrinkScenario = iota
	// ScenarioSecond 第二轮订单（与 Gita 对话之后）
	ScenarioSecond
)

// String 返回 DrinkScenario 的字符串表示
func (s DrinkScenario) String() string {
	switch s {
	case ScenarioFirst:
		return "First"
	case ScenarioSecond:
		return "Second"
	default:
		return "Unknown"
	}
}

// GameState 跨场景的持久游戏状态
//
// 进程启动时创建一次，由 App 显式传入每个场景的构造函数（不使用全局单例）。
// 同一时刻只有当前活动场景会修改它，没有并发写入者。
// 字段全部私有，通过方法读写，以保证 drinksServedCorrectly <= drinksRequired。
//
// 读写约定：
//   - familyMentioned: Intro 对话写入（只能从 false 变为 true），AIDialogue 读取
//   - mistakeCount: MakingOrder 写入（只增不减），AIDialogue 读取
//   - drinkScenario: MakingOrder / AIDialogue 写入，MakingOrder 读取
//   - drinksRequired / drinksServedCorrectly: MakingOrder 读写
type GameState struct {
	familyMentioned       bool
	mistakeCount          int
	drinkScenario         DrinkScenario
	drinksRequired        int
	drinksServedCorrectly int
}

// Snapshot 是 GameState 的只读快照
// 用于日志、调试工具以及纯函数式的剧情分支选择
type Snapshot struct {
	FamilyMentioned       bool
	MistakeCount          int
	DrinkScenario         DrinkScenario
	DrinksRequired        int
	DrinksServedCorrectly int
}

// NewGameState 创建初始游戏状态（第一轮、无失误、未提及家人）
func NewGameState() *GameState {
	return &GameState{drinkScenario: ScenarioFirst}
}

// NewGameStateFrom 从快照恢复游戏状态
// 主要用于命令行调试参数（如 -mistakes、-family）和测试
func NewGameStateFrom(s Snapshot) *GameState {
	gs := &GameState{
		familyMentioned: s.FamilyMentioned,
		mistakeCount:    s.MistakeCount,
		drinkScenario:   s.DrinkScenario,
		drinksRequired:  s.DrinksRequired,
	}
	if gs.mistakeCount < 0 {
		gs.mistakeCount = 0
	}
	if gs.drinksRequired < 0 {
		gs.drinksRequired = 0
	}
	gs.drinksServedCorrectly = clampServed(s.DrinksServedCorrectly, gs.drinksRequired)
	return gs
}

// Snapshot 返回当前状态的快照
func (gs *GameState) Snapshot() Snapshot {
	return Snapshot{
		FamilyMentioned:       gs.familyMentioned,
		MistakeCount:          gs.mistakeCount,
		DrinkScenario:         gs.drinkScenario,
		DrinksRequired:        gs.drinksRequired,
		DrinksServedCorrectly: gs.drinksServedCorrectly,
	}
}

// String 实现 fmt.Stringer，便于日志输出
func (gs *GameState) String() string {
	return fmt.Sprintf("scenario=%s served=%d/%d mistakes=%d family=%v",
		gs.drinkScenario, gs.drinksServedCorrectly, gs.drinksRequired, gs.mistakeCount, gs.familyMentioned)
}

// FamilyMentioned 返回玩家是否提到过家人
func (gs *GameState) FamilyMentioned() bool {
	return gs.familyMentioned
}

// MarkFamilyMentioned 记录玩家提到了家人（永久生效，不可撤销）
func (gs *GameState) MarkFamilyMentioned() {
	gs.familyMentioned = true
}

// MistakeCount 返回累计失误次数
func (gs *GameState) MistakeCount() int {
	return gs.mistakeCount
}

// RecordMistake 记录一次失误并返回新的失误总数
func (gs *GameState) RecordMistake() int {
	gs.mistakeCount++
	return gs.mistakeCount
}

// DrinkScenario 返回当前剧情阶段
func (gs *GameState) DrinkScenario() DrinkScenario {
	return gs.drinkScenario
}

// SetDrinkScenario 设置剧情阶段
func (gs *GameState) SetDrinkScenario(s DrinkScenario) {
	gs.drinkScenario = s
}

// DrinksRequired 返回本轮需要完成的饮品数量
func (gs *GameState) DrinksRequired() int {
	return gs.drinksRequired
}

// DrinksServedCorrectly 返回本轮已正确完成的饮品数量
func (gs *GameState) DrinksServedCorrectly() int {
	return gs.drinksServedCorrectly
}

// BeginOrderRound 在进入制作场景时设置本轮目标数量
// 已完成数量会被限制在新目标之内
func (gs *GameState) BeginOrderRound(required int) {
	if required < 0 {
		required = 0
	}
	gs.drinksRequired = required
	gs.drinksServedCorrectly = clampServed(gs.drinksServedCorrectly, required)
}

// RecordServedDrink 记录一杯正确完成的饮品
//
// 返回：
//   - int: 记录后的已完成数量
//   - bool: 本轮是否已达到目标数量（SessionComplete）
func (gs *GameState) RecordServedDrink() (int, bool) {
	if gs.drinksServedCorrectly < gs.drinksRequired {
		gs.drinksServedCorrectly++
	}
	return gs.drinksServedCorrectly, gs.drinksServedCorrectly >= gs.drinksRequired
}

// AdvanceToSecondScenario 第一轮完成后进入第二轮
// 写入 drinkScenario = Second，并为下一轮重置已完成数量
func (gs *GameState) AdvanceToSecondScenario(required int) {
	gs.drinkScenario = ScenarioSecond
	gs.drinksServedCorrectly = 0
	gs.BeginOrderRound(required)
}

// ResetServed 清零已完成数量（订单超时失败后重新开始本轮）
// 失误次数和剧情阶段保持不变
func (gs *GameState) ResetServed() {
	gs.drinksServedCorrectly = 0
}

func clampServed(served, required int) int {
	if served < 0 {
		return 0
	}
	if served > required {
		return required
	}
	return served
}
