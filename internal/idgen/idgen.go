// Package idgen produces entity identifiers of the form
// <prefix>_<unixMillis>_<random suffix>. Uniqueness is probabilistic: the
// store does not enforce it, and the ids are not used for security purposes.
package idgen

import (
	"fmt"
	"strings"

	"github.com/fintrack/fintrack/internal/utils"
	"github.com/google/uuid"
)

const suffixLength = 9

type Generator struct {
	clock utils.Clock
}

func NewGenerator(clock utils.Clock) *Generator {
	return &Generator{clock: clock}
}

// NewID returns a new identifier for the given entity prefix, e.g.
// "txn_1717236000123_4f9b1c2d0". Ids sort roughly by creation time.
func (g *Generator) NewID(prefix string) string {
	millis := g.clock.Now().UnixMilli()
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:suffixLength]
	return fmt.Sprintf("%s_%d_%s", prefix, millis, suffix)
}
