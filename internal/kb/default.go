package kb

import (
	"context"
	"sync"
)

var (
	defaultOnce sync.Once
	defaultKB   *Compiled
	defaultErr  error
)

// Default returns the knowledge base compiled from DefaultAxioms over
// DefaultKeys. The first call compiles; later calls share the result.
func Default() (*Compiled, error) {
	defaultOnce.Do(func() {
		defaultKB, defaultErr = Compile(context.Background(), DefaultAxioms(), DefaultKeys())
	})
	return defaultKB, defaultErr
}
