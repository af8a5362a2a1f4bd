package components

// TypewriterComponent 打字机文本组件
// 文本按固定间隔逐字显示，显示完毕后恰好触发一次 OnComplete
type TypewriterComponent struct {
	Target   string  // 显示目标（game.TextTarget）
	Runes    []rune  // 完整文本
	Revealed int     // 已显示的字数
	Interval float64 // 每个字的间隔（秒）
	Elapsed  float64 // 距离上一次显示经过的时间（秒）

	// CueEvery 每显示多少个字播放一次说话音效，0 表示不播放
	CueEvery int

	// IsRevealing 是否仍在逐字显示（显示期间屏蔽玩家输入）
	IsRevealing bool

	// Completed 完成信号是否已经发出
	Completed bool

	// OnComplete 显示完毕回调
	OnComplete func()
}
