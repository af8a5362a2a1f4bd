package game

import "strconv"

// 场景名称
// 与原版场景一一对应，由 SceneManager 的场景工厂解析
const (
	SceneMainMenu    = "MainMenu"
	SceneIntro       = "Intro"
	SceneHelp        = "Help"
	SceneCoffeeShop  = "CoffeeShop"
	SceneMakingOrder = "MakingOrder"
	SceneAIDialogue  = "AIDialogue"
	SceneFail        = "Fail"
	SceneWin         = "Win"
)

// TextTarget 文本显示目标（由表现层决定实际位置和样式）
type TextTarget string

const (
	TargetNPC      TextTarget = "npc"      // Gita 的台词
	TargetPlayer   TextTarget = "player"   // Finn 的台词
	TargetOrder    TextTarget = "order"    // 当前订单名称
	TargetFeedback TextTarget = "feedback" // 提交结果反馈
	TargetTimer    TextTarget = "timer"    // 倒计时
	TargetProgress TextTarget = "progress" // 已完成饮品数量
	TargetPrompt   TextTarget = "prompt"   // 交互提示
	TargetError    TextTarget = "error"    // 配置错误信息
)

// OptionTarget 返回第 slot 个选项槽位的文本目标
func OptionTarget(slot int) TextTarget {
	return TextTarget("option." + strconv.Itoa(slot))
}

// ChannelTarget 返回第 channel 个输入通道（原料槽位）的文本目标
func ChannelTarget(channel int) TextTarget {
	return TextTarget("channel." + strconv.Itoa(channel))
}

// CueID 音效提示标识
type CueID string

const (
	CueTalk          CueID = "talk"           // 打字机逐字音效
	CueNavigate      CueID = "navigate"       // 选项切换
	CueOptionAppear  CueID = "option_appear"  // 选项出现
	CueConfirm       CueID = "confirm"        // 确认选择
	CueCorrect       CueID = "correct"        // 原料正确
	CueWrong         CueID = "wrong"          // 原料错误
	CueOrderComplete CueID = "order_complete" // 订单完成
	CueLowTime       CueID = "low_time"       // 剩余时间不足警告
	CueFail          CueID = "fail"           // 订单超时失败
)

// InputEvent 离散输入事件
// 每个 tick 只采样一个事件（边沿触发），同一 tick 内的多次按键合并为一次
type InputEvent int

const (
	InputNone InputEvent = iota
	InputNavigateUp
	InputNavigateDown
	InputNavigateLeft
	InputNavigateRight
	InputConfirm
)

// String 返回 InputEvent 的字符串表示
func (e InputEvent) String() string {
	switch e {
	case InputNone:
		return "None"
	case InputNavigateUp:
		return "NavigateUp"
	case InputNavigateDown:
		return "NavigateDown"
	case InputNavigateLeft:
		return "NavigateLeft"
	case InputNavigateRight:
		return "NavigateRight"
	case InputConfirm:
		return "Confirm"
	default:
		return "Unknown"
	}
}

// Presenter 表现层（文本显示、高亮）
// 核心逻辑只发送单向通知，不从表现层读取任何状态
type Presenter interface {
	DisplayText(target TextTarget, content string)
	SetHighlight(optionIndex int)
}

// CuePlayer 音效提示播放器
type CuePlayer interface {
	PlayCue(id CueID)
}

// SceneLoader 场景加载器（发出即忘，无返回值）
type SceneLoader interface {
	LoadScene(name string)
}

// InputSource 每个 tick 采样一个离散输入事件
type InputSource interface {
	Poll() InputEvent
}

// NopCuePlayer 不播放任何音效（无音频设备或测试时使用）
type NopCuePlayer struct{}

// PlayCue 实现 CuePlayer
func (NopCuePlayer) PlayCue(CueID) {}
