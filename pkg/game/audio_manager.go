package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	sfx "github.com/gonewx/coffeeshop/internal/audio"
)

// cueTones 每个音效提示对应的合成音符序列
var cueTones = map[CueID][]sfx.Tone{
	CueTalk:         {{Frequency: 660, Duration: 0.03, Volume: 0.25, Wave: sfx.WaveSquare}},
	CueNavigate:     {{Frequency: 520, Duration: 0.05, Volume: 0.4, Wave: sfx.WaveTriangle}},
	CueOptionAppear: {{Frequency: 780, Duration: 0.06, Volume: 0.4, Wave: sfx.WaveSine}},
	CueConfirm: {
		{Frequency: 660, Duration: 0.05, Volume: 0.5, Wave: sfx.WaveSine},
		{Frequency: 880, Duration: 0.08, Volume: 0.5, Wave: sfx.WaveSine},
	},
	CueCorrect: {
		{Frequency: 880, Duration: 0.06, Volume: 0.5, Wave: sfx.WaveTriangle},
		{Frequency: 1320, Duration: 0.1, Volume: 0.5, Wave: sfx.WaveTriangle},
	},
	CueWrong: {{Frequency: 160, Duration: 0.2, Volume: 0.5, Wave: sfx.WaveSquare}},
	CueOrderComplete: {
		{Frequency: 523, Duration: 0.08, Volume: 0.5, Wave: sfx.WaveSine},
		{Frequency: 659, Duration: 0.08, Volume: 0.5, Wave: sfx.WaveSine},
		{Frequency: 784, Duration: 0.16, Volume: 0.5, Wave: sfx.WaveSine},
	},
	CueLowTime: {
		{Frequency: 990, Duration: 0.05, Volume: 0.4, Wave: sfx.WaveSquare},
		{Duration: 0.05},
		{Frequency: 990, Duration: 0.05, Volume: 0.4, Wave: sfx.WaveSquare},
	},
	CueFail: {
		{Frequency: 392, Duration: 0.15, Volume: 0.5, Wave: sfx.WaveTriangle},
		{Frequency: 262, Duration: 0.3, Volume: 0.5, Wave: sfx.WaveTriangle},
	},
}

// AudioManager 音频管理器
// 职责：
//   - 把 CueID 映射到合成音效并播放
//   - 从 SettingsManager 读取音效开关和音量
//
// audio.Context 为 nil 时所有播放都是空操作（无头模式和测试使用）
type AudioManager struct {
	context         *audio.Context
	settingsManager *SettingsManager
	soundPlayers    map[CueID]*audio.Player // 音效播放器缓存（CueID -> 播放器）
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: Ebitengine 音频上下文，可为 nil
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		context:         ctx,
		settingsManager: sm,
		soundPlayers:    make(map[CueID]*audio.Player),
	}
}

// PlayCue 播放音效提示，实现 CuePlayer 接口
func (am *AudioManager) PlayCue(id CueID) {
	am.PlaySound(id)
}

// PlaySound 播放音效
// 音效使用 SoundVolume 设置控制音量，单次播放后停止
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(id CueID) bool {
	if !am.SoundEnabled() {
		return false
	}

	player := am.getSoundPlayer(id)
	if player == nil {
		return false
	}

	player.SetVolume(am.GetSoundVolume())

	// 重置并播放
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", id, err)
	}
	player.Play()

	return true
}

// SoundEnabled 音效是否启用
func (am *AudioManager) SoundEnabled() bool {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundEnabled
	}
	return true
}

// SetSoundVolume 设置音效音量
// 此方法会影响后续播放的所有音效
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}

	for _, player := range am.soundPlayers {
		player.SetVolume(am.GetSoundVolume())
	}
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8 // 默认值
}

// getSoundPlayer 获取或合成音效播放器
func (am *AudioManager) getSoundPlayer(id CueID) *audio.Player {
	if am.context == nil {
		return nil
	}

	if player, exists := am.soundPlayers[id]; exists {
		return player
	}

	tones, ok := cueTones[id]
	if !ok {
		log.Printf("[AudioManager] Warning: Sound not found: %s", id)
		return nil
	}

	pcm, err := sfx.Synthesize(am.context.SampleRate(), tones...)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to synthesize sound %s: %v", id, err)
		return nil
	}

	player, err := am.context.NewPlayer(sfx.NewStream(pcm))
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to create player for %s: %v", id, err)
		return nil
	}

	am.soundPlayers[id] = player
	return player
}

// PreloadSounds 预合成所有音效
// 在启动时调用，避免首次播放时的延迟
func (am *AudioManager) PreloadSounds() {
	if am.context == nil {
		return
	}
	for id := range cueTones {
		am.getSoundPlayer(id)
	}
	log.Printf("[AudioManager] Preloaded %d sounds", len(am.soundPlayers))
}
