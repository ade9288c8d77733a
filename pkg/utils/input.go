// Package utils 提供通用工具函数
package utils

import (
	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerSource 指针按下事件来源
//
// 动画只关心"是否刚刚按下"，不读取坐标、修饰键或多点触摸。
// 每帧调用一次 JustPressed。
type PointerSource interface {
	JustPressed() bool
}

// EbitenPointer 基于 ebiten 的鼠标/触摸输入
type EbitenPointer struct{}

// JustPressed 检查本帧是否刚刚按下鼠标左键或开始触摸
func (EbitenPointer) JustPressed() bool {
	pressed, _, _ := IsPointerJustPressed()
	return pressed
}

// IsPointerJustPressed 检查是否刚刚按下指针（触摸或鼠标）
// 返回是否按下以及按下位置
func IsPointerJustPressed() (bool, int, int) {
	// 检查触摸按下
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	// 检查鼠标按下
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// TerminalPointer 基于 tcell 事件的指针输入
//
// 事件由帧循环通过 HandleEvent 送入，JustPressed 每次消费一个待处理的按下。
// 鼠标左键按下（从未按下到按下的边沿）或空格键都算一次按下。
type TerminalPointer struct {
	pending     int
	button1Down bool
}

// NewTerminalPointer 创建终端指针输入
func NewTerminalPointer() *TerminalPointer {
	return &TerminalPointer{}
}

// HandleEvent 处理一个 tcell 事件
// 返回 true 表示用户请求退出（Esc、Ctrl-C 或 q）
func (p *TerminalPointer) HandleEvent(ev tcell.Event) (quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			p.pending++
		}
	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !p.button1Down {
			p.pending++
		}
		p.button1Down = down
	}
	return false
}

// JustPressed 消费一个待处理的按下
func (p *TerminalPointer) JustPressed() bool {
	if p.pending == 0 {
		return false
	}
	p.pending--
	return true
}
