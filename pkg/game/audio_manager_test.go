package game

import (
	"testing"

	sfx "github.com/gonewx/coffeeshop/internal/audio"
)

// TestCueTonesCoverAllCues 每个 CueID 都有可合成的音符序列
func TestCueTonesCoverAllCues(t *testing.T) {
	cues := []CueID{
		CueTalk, CueNavigate, CueOptionAppear, CueConfirm, CueCorrect,
		CueWrong, CueOrderComplete, CueLowTime, CueFail,
	}

	for _, id := range cues {
		tones, ok := cueTones[id]
		if !ok || len(tones) == 0 {
			t.Errorf("cue %s has no tones", id)
			continue
		}
		if _, err := sfx.Synthesize(44100, tones...); err != nil {
			t.Errorf("cue %s: Synthesize() error: %v", id, err)
		}
	}
}

// TestAudioManagerWithoutContext 无音频上下文时播放是空操作
func TestAudioManagerWithoutContext(t *testing.T) {
	am := NewAudioManager(nil, nil)

	if am.PlaySound(CueCorrect) {
		t.Error("PlaySound() without context should return false")
	}
	am.PlayCue(CueWrong) // 不应 panic
	am.PreloadSounds()

	if am.GetSoundVolume() != 0.8 {
		t.Errorf("default volume = %v, want 0.8", am.GetSoundVolume())
	}
}

// TestAudioManagerRespectsSettings 音效开关和音量来自 SettingsManager
func TestAudioManagerRespectsSettings(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	am := NewAudioManager(nil, sm)

	if !am.SoundEnabled() {
		t.Error("sound should be enabled by default")
	}

	sm.SetSoundEnabled(false)
	if am.SoundEnabled() {
		t.Error("SoundEnabled() should follow settings")
	}
	if am.PlaySound(CueTalk) {
		t.Error("PlaySound() should return false when sound is disabled")
	}

	am.SetSoundVolume(1.7)
	if sm.GetSettings().SoundVolume != 1.0 {
		t.Errorf("SetSoundVolume should clamp through settings, got %v", sm.GetSettings().SoundVolume)
	}
}

// TestAudioManagerImplementsCuePlayer 编译期接口检查
func TestAudioManagerImplementsCuePlayer(t *testing.T) {
	var _ CuePlayer = NewAudioManager(nil, nil)
}
