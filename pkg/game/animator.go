package game

import (
	"log"
	"time"
)

// timerHandle 一次运行期间的计时器资源
// Start 时分配，Stop 时释放；animator.handle != nil 当且仅当 running
type timerHandle struct {
	tick    func()
	elapsed float64 // 距离上次触发累积的时间（秒）
}

// Animator 以固定周期驱动回调的计时器
//
// 不创建 goroutine：宿主帧循环每帧调用 Update(deltaTime)，
// Animator 按累积时间在同一个 goroutine 中串行触发 tick，
// 因此 tick 之间不会重叠，也不需要加锁。
//
// 调用方负责在每个逻辑步进完成后调用一次 Stop，计时器不会永久运行。
type Animator struct {
	period   time.Duration
	interval float64 // 触发周期（秒）
	running  bool
	handle   *timerHandle
	cycles   int // 已完成的 Start/Stop 周期数
}

// NewAnimator 创建指定周期的动画器
func NewAnimator(interval time.Duration) *Animator {
	return &Animator{period: interval, interval: interval.Seconds()}
}

// Start 开始以固定周期调用 tick
// 已在运行时为空操作
func (a *Animator) Start(tick func()) {
	if a.running {
		return
	}
	a.running = true
	a.handle = &timerHandle{tick: tick}
	log.Printf("[Animator] started (interval=%v)", a.period)
}

// Stop 取消周期调用
// 未运行时为空操作，可以安全地重复调用
func (a *Animator) Stop() {
	if !a.running {
		return
	}
	a.running = false
	a.handle = nil
	a.cycles++
	log.Printf("[Animator] stopped (cycles=%d)", a.cycles)
}

// Update 推进计时器
//
// 每累积满一个周期触发一次 tick；一帧内积压多个周期时按顺序补发。
// tick 内部调用 Stop 后立即结束补发。
// tick 发生 panic 时先释放计时器再继续向上传播。
func (a *Animator) Update(deltaTime float64) {
	if !a.running {
		return
	}

	h := a.handle
	h.elapsed += deltaTime
	for a.running && a.handle == h && h.elapsed >= a.interval {
		h.elapsed -= a.interval
		a.fire(h)
	}
}

// fire 调用一次 tick，保证异常路径下计时器也被释放
func (a *Animator) fire(h *timerHandle) {
	defer func() {
		if r := recover(); r != nil {
			a.Stop()
			panic(r)
		}
	}()
	h.tick()
}

// IsRunning 返回计时器是否在运行
func (a *Animator) IsRunning() bool {
	return a.running
}

// Cycles 返回已完成的 Start/Stop 周期数
func (a *Animator) Cycles() int {
	return a.cycles
}

// Interval 返回触发周期
func (a *Animator) Interval() time.Duration {
	return a.period
}
