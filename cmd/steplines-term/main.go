// steplines-term 在终端中运行阶梯线动画
//
// 每个字符单元对应 1x2 个逻辑像素，鼠标左键或空格键触发下一步，
// Esc / Ctrl-C / q 退出。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/steplines/data"
	"github.com/gonewx/steplines/pkg/config"
	"github.com/gonewx/steplines/pkg/embedded"
	"github.com/gonewx/steplines/pkg/graphics"
	"github.com/gonewx/steplines/pkg/scenes"
	"github.com/gonewx/steplines/pkg/utils"
)

const frameInterval = 16 * time.Millisecond // ~60 FPS

var logPath = flag.String("log", "", "日志文件路径（为空时不输出日志）")

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to run: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 终端被 tcell 接管，日志只能写入文件
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	embedded.Init(data.FS)
	stage, err := config.LoadStageConfig(config.StageConfigPath)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	surface := graphics.NewTerminalSurface(screen)
	pointer := utils.NewTerminalPointer()

	// 尺寸只在启动时读取一次
	w, h := surface.LogicalSize()
	scene, err := scenes.NewStepLineScene(stage, scenes.StepLineSceneOptions{
		Width:   w,
		Height:  h,
		Surface: surface,
		Pointer: pointer,
	})
	if err != nil {
		return err
	}
	defer scene.Dispose()
	surface.Show()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if pointer.HandleEvent(ev) {
				return nil
			}

		case now := <-ticker.C:
			scene.Update(now.Sub(last).Seconds())
			last = now
			surface.Show()
		}
	}
}
