// Package engine implements the SearchEngine facade (spec §4.11): named
// indexes, each owning one bundle of the core components (analyzer,
// mappings, inverted index, document store, facet index, scorer, query
// executor, ranking pipeline), plus the engine-wide lifecycle and
// snapshot contract (spec §6). Grounded on the teacher's internal/store
// package split (public interface + concrete implementation + explicit
// Close/Shutdown) — that package's Note/Entity/Edge persistence content
// is not reused, only its shape: a facade holding a map of named
// resources with CRUD-by-id and an explicit lifecycle.
package engine

import (
	"log"

	"github.com/Inquir-search/search-engine-sub000/pkg/engineerr"
	"github.com/Inquir-search/search-engine-sub000/pkg/index"
	"github.com/Inquir-search/search-engine-sub000/pkg/scoring"
)

// ScorerConfig mirrors spec §6's `scorer` config option.
type ScorerConfig struct {
	K1          float64
	B           float64
	FieldBoosts map[string]float64
}

// StopwordConfig mirrors spec §6's `stopwords` config option.
type StopwordConfig struct {
	Threshold float64
	AutoSave  bool
}

// Config is the per-index configuration surface of spec §6.
type Config struct {
	IndexName string

	EnableShardedStorage bool
	NumShards            int

	FacetFields        []string
	AggregationFields  []string

	Scorer ScorerConfig

	AutoMap    bool
	AutoExtend bool

	Stopwords StopwordConfig

	// Logger is carried with the configuration but is not read by the
	// engine: lifecycle events (index created/deleted) go to the logger
	// passed to New, which writes to the standard logger's output when
	// nil.
	Logger *log.Logger
}

// DefaultConfig returns spec.md's defaults: index name "default", 8
// shards, BM25 k1=1.2/b=0.75, autoMap on.
func DefaultConfig() Config {
	return Config{
		IndexName:            "default",
		EnableShardedStorage: true,
		NumShards:            index.DefaultConfig().NumShards,
		Scorer:               ScorerConfig{K1: scoring.DefaultK1, B: scoring.DefaultB},
		AutoMap:              true,
	}
}

// validate reports a ConfigError for a shard count below 1 when sharding
// is enabled (spec §7) — EnableShardedStorage=false ignores NumShards
// entirely and always runs single-shard, so an unset NumShards is only
// invalid input when the caller actually asked for sharded storage.
func (c Config) validate() error {
	if c.EnableShardedStorage && c.NumShards < 1 {
		return engineerr.NewConfigError("numShards", "must be >= 1 when EnableShardedStorage is true")
	}
	return nil
}

func (c Config) indexConfig() index.Config {
	n := c.NumShards
	if !c.EnableShardedStorage {
		n = 1
	}
	return index.Config{NumShards: n}
}

func (c Config) facetFieldUnion() []string {
	seen := make(map[string]bool, len(c.FacetFields)+len(c.AggregationFields))
	var out []string
	for _, f := range c.FacetFields {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	for _, f := range c.AggregationFields {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}
