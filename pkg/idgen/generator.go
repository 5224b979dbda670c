package idgen

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// Generator hands out unique ids for searches and bookings.
type Generator interface {
	GenerateID() int64
	GenerateRef() string
}

// SnowflakeGenerator implements Generator using Twitter Snowflake.
type SnowflakeGenerator struct {
	node *snowflake.Node
	mu   sync.Mutex
}

// NewSnowflakeGenerator initializes a new ID generator.
// nodeID must be unique per server instance (0-1023) to prevent collisions.
func NewSnowflakeGenerator(nodeID int64) (*SnowflakeGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}

	return &SnowflakeGenerator{node: node}, nil
}

func (g *SnowflakeGenerator) GenerateID() int64 {
	return g.next().Int64()
}

// GenerateRef returns a short base32 reference, used for search ids and
// booking references shown to customers.
func (g *SnowflakeGenerator) GenerateRef() string {
	return g.next().Base32()
}

func (g *SnowflakeGenerator) next() snowflake.ID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.node.Generate()
}
