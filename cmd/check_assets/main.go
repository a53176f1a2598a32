// check_assets 校验资源清单中的每个资源都能被加载
//
// 不需要图形设备：图片只解码并生成碰撞掩码，不上传 GPU。
//
// 用法：
//
//	go run ./cmd/check_assets
//	go run ./cmd/check_assets -audio -verbose
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/embedded"
	"github.com/decker502/asteroids/pkg/game"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	checkAudio = flag.Bool("audio", false, "同时解码音频（需要音频设备）")
	dataDir    = flag.String("data", ".", "包含 data/ 目录的项目根目录")
)

func main() {
	flag.Parse()
	if !*verbose {
		log.SetFlags(0)
	}

	// 资源路径相对于项目根目录
	if err := os.Chdir(*dataDir); err != nil {
		log.Fatalf("无法进入目录 %s: %v", *dataDir, err)
	}
	embedded.Init(os.DirFS("."))

	rm := game.NewHeadlessResourceManager()
	if *checkAudio {
		rm = game.NewResourceManager(audio.NewContext(48000))
	}
	if err := rm.LoadResourceConfig(config.ResourceConfigPath); err != nil {
		log.Fatalf("资源清单加载失败: %v", err)
	}

	cfg, err := config.LoadGameplayConfig(config.GameplayConfigPath)
	if err != nil {
		log.Fatalf("玩法参数加载失败: %v", err)
	}

	manifest := rm.GetConfig()
	groups := make([]string, 0, len(manifest.Groups))
	for name := range manifest.Groups {
		groups = append(groups, name)
	}
	sort.Strings(groups)

	failed := 0
	for _, name := range groups {
		group := manifest.Groups[name]
		fmt.Printf("== group %s ==\n", name)

		for _, img := range group.Images {
			sprite, err := rm.LoadSpriteByID(img.ID)
			if err != nil {
				fmt.Printf("  FAIL %-20s %v\n", img.ID, err)
				failed++
				continue
			}
			fmt.Printf("  ok   %-20s %4dx%-4d mask=%d px\n", img.ID, sprite.Width, sprite.Height, sprite.Mask.Count())
		}

		for _, font := range group.Fonts {
			if _, err := rm.LoadFontByID(font.ID, cfg.Score.FontSize); err != nil {
				fmt.Printf("  FAIL %-20s %v\n", font.ID, err)
				failed++
				continue
			}
			fmt.Printf("  ok   %-20s size=%.0f\n", font.ID, cfg.Score.FontSize)
		}

		for _, sound := range group.Sounds {
			path, _ := rm.ResolvePath(sound.ID)
			if !*checkAudio {
				if _, err := os.Stat(path); err != nil {
					fmt.Printf("  FAIL %-20s %v\n", sound.ID, err)
					failed++
					continue
				}
				fmt.Printf("  ok   %-20s %s (not decoded)\n", sound.ID, path)
				continue
			}
			if err := rm.LoadAudioByID(sound.ID); err != nil {
				fmt.Printf("  FAIL %-20s %v\n", sound.ID, err)
				failed++
				continue
			}
			fmt.Printf("  ok   %-20s loop=%v\n", sound.ID, sound.Loop)
		}
	}

	if failed > 0 {
		fmt.Printf("%d resource(s) failed\n", failed)
		os.Exit(1)
	}
	fmt.Println("all resources loaded")
}
