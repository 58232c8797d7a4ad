package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/gem-drift/engine"
	"github.com/lixenwraith/gem-drift/event"
	"github.com/lixenwraith/gem-drift/parameter"
)

// SoundManager owns the speaker, the effect mixer and the music loop
// All methods are safe to call when no audio device is available; they become no-ops
type SoundManager struct {
	mu        sync.Mutex
	rate      beep.SampleRate
	mixer     *beep.Mixer
	music     *Music
	musicCtrl *beep.Ctrl
	settings  engine.AudioSettings
	log       *zap.Logger

	active     bool // Voices are accepted
	speakerOn  bool // speaker.Init succeeded and the mixer is playing
	effectsOut int  // Effects queued since creation
}

// NewSoundManager creates an idle manager, Initialize starts output
func NewSoundManager(sampleRate int, logger *zap.Logger) *SoundManager {
	if sampleRate <= 0 {
		sampleRate = parameter.AudioSampleRate
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	rate := beep.SampleRate(sampleRate)
	music := NewMusic(rate)
	sm := &SoundManager{
		rate:      rate,
		mixer:     &beep.Mixer{},
		music:     music,
		musicCtrl: &beep.Ctrl{Streamer: music, Paused: true},
		settings:  engine.DefaultAudioSettings(),
		log:       logger,
	}
	sm.mixer.Add(sm.musicCtrl)
	return sm
}

// Initialize opens the audio device and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.speakerOn {
		return nil
	}

	err := speaker.Init(sm.rate, sm.rate.N(parameter.AudioBufferDuration))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.speakerOn = true
	sm.active = true
	sm.log.Debug("audio initialized", zap.Int("sample_rate", int(sm.rate)))
	return nil
}

// activate accepts voices without a device, mixer output is pulled by the caller
func (sm *SoundManager) activate() {
	sm.mu.Lock()
	sm.active = true
	sm.mu.Unlock()
}

// Cleanup stops all sounds and detaches from the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.active {
		return
	}

	sm.lockSpeaker()
	sm.musicCtrl.Paused = true
	sm.mixer.Clear()
	sm.unlockSpeaker()

	if sm.speakerOn {
		speaker.Clear()
	}
	// beep has no speaker close; clearing the mixer leaves the device silent
	sm.active = false
	sm.speakerOn = false
}

// lockSpeaker guards streamer mutation against the speaker goroutine
func (sm *SoundManager) lockSpeaker() {
	if sm.speakerOn {
		speaker.Lock()
	}
}

func (sm *SoundManager) unlockSpeaker() {
	if sm.speakerOn {
		speaker.Unlock()
	}
}

// Apply takes the engine's audio settings and updates music gain and state
func (sm *SoundManager) Apply(settings engine.AudioSettings) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	changed := settings != sm.settings
	sm.settings = settings

	vol := settings.BGMVolume
	if !settings.BGMEnabled {
		vol = 0
	}
	sm.music.SetVolume(vol)

	sm.lockSpeaker()
	sm.musicCtrl.Paused = !sm.musicAudible()
	sm.unlockSpeaker()

	if changed {
		sm.log.Debug("audio settings applied",
			zap.Bool("started", settings.Started),
			zap.Bool("sfx", settings.SFXEnabled),
			zap.Float64("sfx_volume", settings.SFXVolume),
			zap.Bool("bgm", settings.BGMEnabled),
			zap.Float64("bgm_volume", settings.BGMVolume),
		)
	}
}

// musicAudible requires the lock
func (sm *SoundManager) musicAudible() bool {
	return sm.active && sm.settings.Started && sm.settings.BGMEnabled && sm.settings.BGMVolume > 0
}

// MusicPlaying reports whether the music loop is currently unpaused
func (sm *SoundManager) MusicPlaying() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.lockSpeaker()
	defer sm.unlockSpeaker()
	return !sm.musicCtrl.Paused
}

// Play queues the effect for an event
// Returns false when the event is silent, audio has not started, or effects are muted
func (sm *SoundManager) Play(t event.EventType) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.active {
		return false
	}
	s := sm.settings
	if !s.Started || !s.SFXEnabled || s.SFXVolume <= 0 {
		return false
	}

	fx := NewEffect(t, sm.rate, s.SFXVolume)
	if fx == nil {
		return false
	}

	sm.lockSpeaker()
	sm.mixer.Add(fx)
	sm.unlockSpeaker()
	sm.effectsOut++
	return true
}

// HandleEvents plays every sound cue in a drained event batch, returns the count played
func (sm *SoundManager) HandleEvents(events []event.GameEvent) int {
	played := 0
	for _, ev := range events {
		if !ev.Type.IsSound() {
			continue
		}
		if sm.Play(ev.Type) {
			played++
		}
	}
	return played
}

// EffectsPlayed returns the number of effects queued since creation
func (sm *SoundManager) EffectsPlayed() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.effectsOut
}
