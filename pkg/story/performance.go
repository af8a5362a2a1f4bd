// Package story 定义对话脚本的运行时模型
//
// 脚本来自 data/dialogue.yaml，进入场景时根据玩家表现和 familyMentioned
// 解析成固定的 Branch；之后只通过 Cursor 单向推进，不会回到已经走过的步骤。
package story

import "github.com/gonewx/coffeeshop/pkg/config"

// Performance 玩家表现分档
type Performance int

const (
	// PerformancePerfect 没有失误
	PerformancePerfect Performance = iota
	// PerformanceNearPerfect 1~2 次失误
	PerformanceNearPerfect
	// PerformanceManyMistakes 3 次及以上失误
	PerformanceManyMistakes
)

// ClassifyPerformance 根据失误次数分档
func ClassifyPerformance(mistakes int) Performance {
	switch {
	case mistakes <= 0:
		return PerformancePerfect
	case mistakes <= 2:
		return PerformanceNearPerfect
	default:
		return PerformanceManyMistakes
	}
}

// ScriptKey 返回该分档在 dialogue.yaml 中的脚本键
func (p Performance) ScriptKey() string {
	switch p {
	case PerformancePerfect:
		return config.PerformancePerfect
	case PerformanceNearPerfect:
		return config.PerformanceNearPerfect
	default:
		return config.PerformanceManyMistakes
	}
}

func (p Performance) String() string {
	switch p {
	case PerformancePerfect:
		return "Perfect"
	case PerformanceNearPerfect:
		return "NearPerfect"
	case PerformanceManyMistakes:
		return "ManyMistakes"
	default:
		return "Unknown"
	}
}
