package loom

import "github.com/rs/zerolog"

// Config holds global defaults applied to every new World created via
// Factory.NewWorld without an explicit Option. Mirrors the teacher's
// config.go (package-level var Config config) pattern, generalized from
// table-event callbacks to World construction defaults.
var Config config = config{
	initialEntityCapacity: 64,
	logger:                zerolog.Nop(),
}

type config struct {
	initialEntityCapacity int
	logger                zerolog.Logger
}

// SetInitialEntityCapacity changes the default capacity new Worlds
// reserve for their entity table up front.
func (c *config) SetInitialEntityCapacity(n int) {
	c.initialEntityCapacity = n
}

// SetLogger changes the default diagnostic logger new Worlds are built
// with. Defaults to a disabled (zerolog.Nop) logger so logging never
// costs anything unless a caller opts in.
func (c *config) SetLogger(logger zerolog.Logger) {
	c.logger = logger
}
