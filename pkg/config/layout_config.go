package config

// 窗口配置常量
const (
	// GameWindowWidth 是游戏逻辑屏幕宽度（像素）
	GameWindowWidth = 1280

	// GameWindowHeight 是游戏逻辑屏幕高度（像素）
	GameWindowHeight = 720

	// GameWindowTitle 是窗口标题
	GameWindowTitle = "Asteroid shooter"
)

// 资源配置路径
const (
	// ResourceConfigPath 资源清单（嵌入在二进制中）
	ResourceConfigPath = "data/resources.yaml"

	// GameplayConfigPath 玩法参数表（嵌入在二进制中）
	GameplayConfigPath = "data/gameplay.yaml"
)
