package systems

import (
	"github.com/gonewx/coffeeshop/pkg/game"
)

// textEvent 一次 DisplayText 调用
type textEvent struct {
	target  game.TextTarget
	content string
}

// recordingPresenter 记录所有显示调用的测试表现层
type recordingPresenter struct {
	texts      map[game.TextTarget]string
	history    []textEvent
	highlights []int
}

func newRecordingPresenter() *recordingPresenter {
	return &recordingPresenter{texts: make(map[game.TextTarget]string)}
}

func (p *recordingPresenter) DisplayText(target game.TextTarget, content string) {
	p.texts[target] = content
	p.history = append(p.history, textEvent{target: target, content: content})
}

func (p *recordingPresenter) SetHighlight(optionIndex int) {
	p.highlights = append(p.highlights, optionIndex)
}

// historyFor 返回某个目标上显示过的所有文本
func (p *recordingPresenter) historyFor(target game.TextTarget) []string {
	var result []string
	for _, e := range p.history {
		if e.target == target {
			result = append(result, e.content)
		}
	}
	return result
}

func (p *recordingPresenter) lastHighlight() int {
	if len(p.highlights) == 0 {
		return -1
	}
	return p.highlights[len(p.highlights)-1]
}

// recordingCues 记录播放过的音效
type recordingCues struct {
	played []game.CueID
}

func (c *recordingCues) PlayCue(id game.CueID) {
	c.played = append(c.played, id)
}

func (c *recordingCues) count(id game.CueID) int {
	n := 0
	for _, played := range c.played {
		if played == id {
			n++
		}
	}
	return n
}

// recordingLoader 记录场景切换请求
type recordingLoader struct {
	loaded []string
}

func (l *recordingLoader) LoadScene(name string) {
	l.loaded = append(l.loaded, name)
}
