package game

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const (
	// DefaultMusicVolume 背景音乐默认音量
	DefaultMusicVolume = 0.7
	// DefaultSoundVolume 音效默认音量
	DefaultSoundVolume = 0.8
)

// AudioManager 音频管理器
// 职责：
//   - 统一管理游戏中所有音效和背景音乐的播放
//   - 通过资源ID播放，无需关心路径
//
// 音频查找失败只记录日志并返回 false，不会中断游戏循环。
type AudioManager struct {
	resourceManager *ResourceManager         // 资源管理器（用于加载音频）
	activeSounds    []*audio.Player          // 仍在播放的音效播放器（每次播放一个新播放器）
	musicPlayers    map[string]*audio.Player // 背景音乐播放器缓存（资源ID -> 播放器）
	currentMusic    *audio.Player            // 当前播放的背景音乐
	currentMusicID  string                   // 当前播放的背景音乐ID
	musicVolume     float64
	soundVolume     float64
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - rm: ResourceManager 实例（用于加载音频文件，可为 nil）
func NewAudioManager(rm *ResourceManager) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		musicPlayers:    make(map[string]*audio.Player),
		musicVolume:     DefaultMusicVolume,
		soundVolume:     DefaultSoundVolume,
	}
}

// PlaySound 播放音效
// 每次播放都创建新的播放器，同一音效重叠播放时互相混音，不会打断前一次
//
// 参数：
//   - soundID: 音效资源ID（如 "SOUND_LASER", "SOUND_EXPLOSION"）
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(soundID string) bool {
	return am.playSound(soundID) != nil
}

// playSound 播放音效并返回本次播放使用的播放器，失败时返回 nil
func (am *AudioManager) playSound(soundID string) *audio.Player {
	am.pruneSounds()

	player := am.newSoundPlayer(soundID)
	if player == nil {
		return nil
	}

	player.SetVolume(am.soundVolume)
	player.Play()
	am.activeSounds = append(am.activeSounds, player)

	return player
}

// pruneSounds 释放已播放完毕的音效播放器
func (am *AudioManager) pruneSounds() {
	active := am.activeSounds[:0]
	for _, p := range am.activeSounds {
		if p.IsPlaying() {
			active = append(active, p)
			continue
		}
		if err := p.Close(); err != nil {
			log.Printf("[AudioManager] Warning: Failed to close sound player: %v", err)
		}
	}
	clear(am.activeSounds[len(active):])
	am.activeSounds = active
}

// PlayMusic 播放背景音乐（循环）
// 同一时间只能播放一首背景音乐
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlayMusic(musicID string) bool {
	// 如果已经在播放同一首音乐，不重复播放
	if am.currentMusicID == musicID && am.currentMusic != nil && am.currentMusic.IsPlaying() {
		return true
	}

	am.StopMusic()

	player := am.getMusicPlayer(musicID)
	if player == nil {
		return false
	}

	player.SetVolume(am.musicVolume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind music %s: %v", musicID, err)
	}
	player.Play()

	am.currentMusic = player
	am.currentMusicID = musicID

	log.Printf("[AudioManager] Playing music: %s (volume: %.2f)", musicID, am.musicVolume)

	return true
}

// StopMusic 停止当前背景音乐
func (am *AudioManager) StopMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Pause()
		am.currentMusic = nil
		am.currentMusicID = ""
	}
}

// CurrentMusicID 返回当前背景音乐ID，未播放时为空
func (am *AudioManager) CurrentMusicID() string {
	return am.currentMusicID
}

// SetMusicVolume 设置音乐音量 (0.0 ~ 1.0)，立即应用到当前音乐
func (am *AudioManager) SetMusicVolume(volume float64) {
	am.musicVolume = clampVolume(volume)
	if am.currentMusic != nil {
		am.currentMusic.SetVolume(am.musicVolume)
	}
}

// SetSoundVolume 设置音效音量 (0.0 ~ 1.0)，同时应用到正在播放的音效
func (am *AudioManager) SetSoundVolume(volume float64) {
	am.soundVolume = clampVolume(volume)
	for _, p := range am.activeSounds {
		p.SetVolume(am.soundVolume)
	}
}

// GetMusicVolume 获取当前音乐音量
func (am *AudioManager) GetMusicVolume() float64 {
	return am.musicVolume
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	return am.soundVolume
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// getMusicPlayer 获取或加载音乐播放器
func (am *AudioManager) getMusicPlayer(musicID string) *audio.Player {
	if player, exists := am.musicPlayers[musicID]; exists {
		return player
	}
	filePath, ok := am.resolve(musicID)
	if !ok {
		return nil
	}
	player, err := am.resourceManager.LoadAudio(filePath)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to load %s: %v", musicID, err)
		return nil
	}
	am.musicPlayers[musicID] = player
	return player
}

// newSoundPlayer 为一次音效播放创建独立的播放器
func (am *AudioManager) newSoundPlayer(soundID string) *audio.Player {
	filePath, ok := am.resolve(soundID)
	if !ok {
		return nil
	}
	player, err := am.resourceManager.NewSoundPlayer(filePath)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to load %s: %v", soundID, err)
		return nil
	}
	return player
}

func (am *AudioManager) resolve(id string) (string, bool) {
	if am.resourceManager == nil {
		log.Printf("[AudioManager] Warning: No resource manager, cannot play %s", id)
		return "", false
	}
	filePath, exists := am.resourceManager.ResolvePath(id)
	if !exists {
		log.Printf("[AudioManager] Warning: Sound not found: %s", id)
		return "", false
	}
	return filePath, true
}

// PreloadSounds 预加载音效和背景音乐，避免首次播放时的解码延迟
// 任一音频缺失或无法解码即返回错误
func (am *AudioManager) PreloadSounds(soundIDs []string) error {
	if am.resourceManager == nil {
		return fmt.Errorf("no resource manager to preload sounds")
	}
	for _, soundID := range soundIDs {
		if err := am.resourceManager.LoadAudioByID(soundID); err != nil {
			return err
		}
	}
	log.Printf("[AudioManager] Preloaded %d sounds", len(soundIDs))
	return nil
}
