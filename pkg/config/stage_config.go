package config

import (
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/steplines/pkg/embedded"
)

// StageConfigPath 舞台配置文件在嵌入资源中的路径
const StageConfigPath = "data/stage.yaml"

// StageConfig 阶梯线动画舞台配置
//
// 所有字段在构建时确定（嵌入 data/stage.yaml），启动时加载一次后只读。
// 组件通过指针共享同一份配置，不允许运行时修改。
//
// 配置文件位置: data/stage.yaml
type StageConfig struct {
	// StepLine 节点链与动画步进参数
	StepLine StepLineConfig `yaml:"stepLine"`

	// Colors 前景/背景颜色（十六进制字符串，如 "#4CAF50"）
	Colors ColorConfig `yaml:"colors"`

	// Window 桌面窗口默认尺寸
	Window WindowConfig `yaml:"window"`

	// 解析后的颜色，由 Validate 填充
	foreColor colorful.Color
	backColor colorful.Color
}

// StepLineConfig 节点链参数
type StepLineConfig struct {
	// Nodes 链上的节点数量 N，索引范围 [0, N-1]
	Nodes int `yaml:"nodes"`

	// Lines 保留字段，绘制逻辑未使用
	Lines int `yaml:"lines"`

	// ScaleGap 每个 tick 的进度增量系数
	ScaleGap float64 `yaml:"scaleGap"`

	// ScaleDivisor 相位除数，floor(scale / ScaleDivisor) 选择镜像子相位
	ScaleDivisor float64 `yaml:"scaleDivisor"`

	// StrokeFactor 线宽除数：lineWidth = min(w, h) / StrokeFactor
	StrokeFactor float64 `yaml:"strokeFactor"`

	// SizeFactor 保留字段，绘制逻辑未使用
	SizeFactor float64 `yaml:"sizeFactor"`

	// TickIntervalMs 动画器触发间隔（毫秒）
	TickIntervalMs int `yaml:"tickIntervalMs"`
}

// ColorConfig 颜色配置
type ColorConfig struct {
	Foreground string `yaml:"foreground"`
	Background string `yaml:"background"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// DefaultStageConfig 返回与 data/stage.yaml 一致的默认配置
// 仅供测试使用，运行时配置一律从嵌入的 data/stage.yaml 加载
func DefaultStageConfig() *StageConfig {
	cfg := &StageConfig{
		StepLine: StepLineConfig{
			Nodes:          5,
			Lines:          4,
			ScaleGap:       0.05,
			ScaleDivisor:   0.51,
			StrokeFactor:   90,
			SizeFactor:     2.9,
			TickIntervalMs: 50,
		},
		Colors: ColorConfig{
			Foreground: "#4CAF50",
			Background: "#BDBDBD",
		},
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "Linked Step Line",
		},
	}
	if err := cfg.Validate(); err != nil {
		// 默认值是常量，校验失败说明代码本身有误
		panic(fmt.Sprintf("default stage config invalid: %v", err))
	}
	return cfg
}

// LoadStageConfig 从嵌入资源加载舞台配置
//
// 参数:
//   - path: 配置文件路径（如 "data/stage.yaml"），必须以 "data/" 开头
//
// 返回:
//   - *StageConfig: 校验通过的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadStageConfig(path string) (*StageConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage config: %w", err)
	}
	return ParseStageConfig(data)
}

// ParseStageConfig 解析 YAML 数据并校验
func ParseStageConfig(data []byte) (*StageConfig, error) {
	var cfg StageConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse stage config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid stage config: %w", err)
	}

	return &cfg, nil
}

// Validate 验证配置有效性并解析颜色
//
// 零长度的节点链、零除数等属于构建期错误，必须在启动时失败，
// 而不是拖到绘制时才暴露。
func (c *StageConfig) Validate() error {
	sl := c.StepLine
	if sl.Nodes < 1 {
		return fmt.Errorf("nodes must be >= 1, got %d", sl.Nodes)
	}
	if sl.ScaleGap <= 0 {
		return fmt.Errorf("scaleGap must be > 0, got %g", sl.ScaleGap)
	}
	if sl.ScaleDivisor <= 0 {
		return fmt.Errorf("scaleDivisor must be > 0, got %g", sl.ScaleDivisor)
	}
	if sl.StrokeFactor <= 0 {
		return fmt.Errorf("strokeFactor must be > 0, got %g", sl.StrokeFactor)
	}
	if sl.TickIntervalMs <= 0 {
		return fmt.Errorf("tickIntervalMs must be > 0, got %d", sl.TickIntervalMs)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	fg, err := colorful.Hex(c.Colors.Foreground)
	if err != nil {
		return fmt.Errorf("foreground color %q: %w", c.Colors.Foreground, err)
	}
	bg, err := colorful.Hex(c.Colors.Background)
	if err != nil {
		return fmt.Errorf("background color %q: %w", c.Colors.Background, err)
	}
	c.foreColor = fg
	c.backColor = bg

	return nil
}

// ForeColor 返回前景色（线段颜色）
func (c *StageConfig) ForeColor() colorful.Color {
	return c.foreColor
}

// BackColor 返回背景色
func (c *StageConfig) BackColor() colorful.Color {
	return c.backColor
}

// TickInterval 返回动画器触发间隔
func (c *StageConfig) TickInterval() time.Duration {
	return time.Duration(c.StepLine.TickIntervalMs) * time.Millisecond
}
