package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/steplines/data"
	"github.com/gonewx/steplines/pkg/app"
	"github.com/gonewx/steplines/pkg/config"
	"github.com/gonewx/steplines/pkg/embedded"
)

var (
	verbose = flag.Bool("verbose", false, "详细日志")
	debug   = flag.Bool("debug", false, "显示调试信息")
	width   = flag.Int("width", 0, "窗口宽度（0 使用配置值）")
	height  = flag.Int("height", 0, "窗口高度（0 使用配置值）")
)

func main() {
	flag.Parse()

	if *verbose {
		log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	}

	embedded.Init(data.FS)

	stage, err := config.LoadStageConfig(config.StageConfigPath)
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	a, err := app.NewApp(app.Config{
		Verbose: *verbose,
		Debug:   *debug,
		Stage:   stage,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer a.Close()

	w, h := stage.Window.Width, stage.Window.Height
	if *width > 0 {
		w = *width
	}
	if *height > 0 {
		h = *height
	}
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(stage.Window.Title)

	if err := ebiten.RunGame(a); err != nil {
		log.Fatal(err)
	}
}
