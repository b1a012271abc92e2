package presence

import "go.uber.org/fx"

// Module provides the presence registry to the fx container.
var Module = fx.Provide(NewRegistry)
