package scenes

import (
	"github.com/gonewx/steplines/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

var (
	_ Scene           = (*StepLineScene)(nil)
	_ game.Disposable = (*StepLineScene)(nil)
)
