package components

// SceneTransitionComponent 延迟场景切换组件
// 到期后请求加载 TargetScene 一次；手动重新加载场景时可被取消
type SceneTransitionComponent struct {
	TargetScene string  // 目标场景名
	Delay       float64 // 延迟（秒）
	Elapsed     float64 // 已过时间（秒）
	Fired       bool    // 是否已经请求过切换
}
