package main

import (
	"log"

	"github.com/decker502/asteroids/pkg/app"
	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

// verboseLogging 是否输出调试日志，发布构建关闭
const verboseLogging = false

func main() {
	// 数据文件（资源清单、玩法参数）嵌入在二进制中，见 embed.go
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{Verbose: verboseLogging})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(config.GameWindowTitle)
	// 关闭窗口由 App.Update 处理，会话以 ebiten.Termination 正常结束
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatalf("游戏异常退出: %v", err)
	}
}
