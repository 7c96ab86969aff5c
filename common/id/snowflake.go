// Package id issues the time-ordered identifiers stamped on alerts and
// analysis runs.
package id

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	mu   sync.Mutex
	node *snowflake.Node
)

// Init configures the process-wide snowflake node. Subsequent calls are
// no-ops, so test suites and main can both initialize safely.
func Init(nodeID int64) error {
	mu.Lock()
	defer mu.Unlock()
	if node != nil {
		return nil
	}
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return fmt.Errorf("creating snowflake node: %w", err)
	}
	node = n
	return nil
}

// New returns the next time-ordered id. Init must have been called.
func New() int64 {
	return node.Generate().Int64()
}
