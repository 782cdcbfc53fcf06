package dynamics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Ashar-LUMS/boolnet/pkg/state"
)

// DefaultExhaustiveNodeLimit bounds exhaustive enumeration at 2^24 states.
const DefaultExhaustiveNodeLimit = 24

// DefaultSampleLimit is how many initial states the bounded strategy seeds
// when the full space is out of reach.
const DefaultSampleLimit = 1 << 20

// cancelCheckInterval is how many update steps a trajectory walk takes
// between context checks. Trajectories in large sampled spaces can be very
// long, so checking only between trajectories is not enough.
const cancelCheckInterval = 4096

// SearchOptions configures an attractor search
type SearchOptions struct {
	// ExhaustiveNodeLimit is the largest node count searched exhaustively.
	ExhaustiveNodeLimit int
	// SampleLimit caps the number of seeded initial states in bounded mode.
	SampleLimit uint64
	// Workers shards initial states across goroutines when > 1.
	Workers int
	// Labels is carried into the result for downstream display.
	Labels map[string]string
	// Strategy overrides the automatic exhaustive/bounded selection.
	Strategy ExplorationStrategy
}

// DefaultSearchOptions returns the standard search configuration
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		ExhaustiveNodeLimit: DefaultExhaustiveNodeLimit,
		SampleLimit:         DefaultSampleLimit,
		Workers:             1,
	}
}

// ExplorationStrategy enumerates the initial states a search seeds
// trajectories from. The exhaustive and bounded strategies share all of the
// trajectory and memoization machinery; only the seed set differs.
type ExplorationStrategy interface {
	// SeedCount is the number of initial states to process.
	SeedCount() uint64
	// Seed returns the i-th initial state, i < SeedCount().
	Seed(i uint64) state.State
	// Truncated reports whether the seed set covers less than the full space.
	Truncated() bool
}

// ExhaustiveStrategy seeds every state of an n-node space.
type ExhaustiveStrategy struct {
	NodeCount int
}

func (s ExhaustiveStrategy) SeedCount() uint64 {
	// 2^64 does not fit a uint64; saturate instead of overflowing to zero.
	if s.NodeCount >= 64 {
		return math.MaxUint64
	}
	return uint64(1) << uint(s.NodeCount)
}

func (s ExhaustiveStrategy) Seed(i uint64) state.State {
	return state.State(i)
}

func (s ExhaustiveStrategy) Truncated() bool {
	return false
}

// BoundedStrategy seeds a fixed prefix of the state space. Enumeration stays
// deterministic, so repeated truncated runs agree with each other.
type BoundedStrategy struct {
	Limit uint64
}

func (s BoundedStrategy) SeedCount() uint64 {
	return s.Limit
}

func (s BoundedStrategy) Seed(i uint64) state.State {
	return state.State(i)
}

func (s BoundedStrategy) Truncated() bool {
	return true
}

// FindAttractors classifies the long-run behavior reachable from the
// strategy's seed states into fixed points and cycles with basin accounting.
//
// A shared memo map from state to attractor id guarantees every state is
// walked and classified exactly once, so the total work is
// O(exploredStateCount) update evaluations. On context cancellation the
// partial result is returned with Truncated set rather than an error.
func FindAttractors(ctx context.Context, updater Updater, codec *state.Codec, opts SearchOptions) (*AnalysisResult, error) {
	if updater == nil {
		return nil, fmt.Errorf("updater cannot be nil")
	}
	if codec == nil {
		return nil, fmt.Errorf("codec cannot be nil")
	}

	if opts.ExhaustiveNodeLimit <= 0 {
		opts.ExhaustiveNodeLimit = DefaultExhaustiveNodeLimit
	}
	// The exhaustive seed count for 64 nodes does not fit a uint64, so the
	// largest exhaustively enumerable space is 63 nodes.
	if opts.ExhaustiveNodeLimit > 63 {
		opts.ExhaustiveNodeLimit = 63
	}
	if opts.SampleLimit == 0 {
		opts.SampleLimit = DefaultSampleLimit
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}

	n := codec.Len()
	totalSpace := totalStateSpace(n)

	var warnings []string
	strategy := opts.Strategy
	if strategy == nil {
		if n <= opts.ExhaustiveNodeLimit {
			strategy = ExhaustiveStrategy{NodeCount: n}
		} else {
			limit := opts.SampleLimit
			if limit > totalSpace {
				limit = totalSpace
			}
			strategy = BoundedStrategy{Limit: limit}
			warnings = append(warnings, fmt.Sprintf(
				"state space of %d nodes exceeds the exhaustive limit of %d; seeding %d of %d initial states (%.6f%% of the space)",
				n, opts.ExhaustiveNodeLimit, limit, totalSpace,
				100*float64(limit)/float64(totalSpace)))
		}
	}

	s := &searcher{
		updater:    updater,
		classified: make(map[state.State]int),
	}

	cancelled := s.run(ctx, strategy, opts.Workers)
	if cancelled {
		warnings = append(warnings, fmt.Sprintf(
			"search cancelled after classifying %d states; result covers the explored subset only", len(s.classified)))
	}

	return s.buildResult(codec, opts.Labels, totalSpace, strategy.Truncated() || cancelled, warnings), nil
}

// searcher owns the shared memo map for one search. The map is scoped to the
// search, not the package, so separate analyses never share state.
type searcher struct {
	updater Updater

	mu         sync.Mutex
	classified map[state.State]int // state -> attractor index
	attractors []Attractor
}

// run processes every seed, sharding across workers when requested.
// Returns true if the context was cancelled before the seeds were exhausted.
func (s *searcher) run(ctx context.Context, strategy ExplorationStrategy, workers int) bool {
	seeds := strategy.SeedCount()

	if workers == 1 {
		for i := uint64(0); i < seeds; i++ {
			if ctx.Err() != nil {
				return true
			}
			if s.walk(ctx, strategy.Seed(i)) != nil {
				return true
			}
		}
		return false
	}

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start := uint64(w)
		g.Go(func() error {
			for i := start; i < seeds; i += uint64(workers) {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				if err := s.walk(gctx, strategy.Seed(i)); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait() != nil
}

// walk follows the trajectory from s0 until it repeats a state of its own or
// reaches an already classified state, then commits the whole trajectory to
// the memo map. Update evaluation happens outside the lock; only the commit
// is serialized.
func (s *searcher) walk(ctx context.Context, s0 state.State) error {
	if _, done := s.lookup(s0); done {
		return nil
	}

	trajectory := make([]state.State, 0, 64)
	position := make(map[state.State]int)

	cur := s0
	cycleStart := -1
	steps := 0

	for {
		if _, done := s.lookup(cur); done {
			break
		}
		if p, seen := position[cur]; seen {
			cycleStart = p
			break
		}

		position[cur] = len(trajectory)
		trajectory = append(trajectory, cur)
		cur = s.updater.Next(cur)

		steps++
		if steps%cancelCheckInterval == 0 && ctx.Err() != nil {
			return ctx.Err()
		}
	}

	s.commit(trajectory, cur, cycleStart)
	return nil
}

// commit classifies a trajectory under the lock. A concurrent worker may have
// classified a suffix of the trajectory in the meantime; the memo map is
// closed under the update function, so classifying the remaining prefix is
// enough and no state is ever counted twice.
func (s *searcher) commit(trajectory []state.State, terminal state.State, cycleStart int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := -1
	cut := len(trajectory)
	for i, st := range trajectory {
		if existing, ok := s.classified[st]; ok {
			id = existing
			cut = i
			break
		}
	}

	if id == -1 {
		if cycleStart >= 0 {
			// The repeated suffix is a newly discovered attractor.
			members := normalizeCycle(append([]state.State(nil), trajectory[cycleStart:]...))
			kind := Cycle
			if len(members) == 1 {
				kind = FixedPoint
			}
			id = len(s.attractors)
			s.attractors = append(s.attractors, Attractor{
				ID:     id,
				Kind:   kind,
				Period: len(members),
				States: members,
			})
		} else {
			// Trajectory merged into a previously classified state.
			id = s.classified[terminal]
		}
	}

	for _, st := range trajectory[:cut] {
		s.classified[st] = id
		s.attractors[id].BasinSize++
	}
}

// lookup reads the memo map.
func (s *searcher) lookup(st state.State) (int, bool) {
	s.mu.Lock()
	id, ok := s.classified[st]
	s.mu.Unlock()
	return id, ok
}

// buildResult orders attractors canonically by their smallest member state,
// renumbers them, and fills in basin shares. The ordering makes results
// identical across runs regardless of worker count or discovery order.
func (s *searcher) buildResult(codec *state.Codec, labels map[string]string, totalSpace uint64, truncated bool, warnings []string) *AnalysisResult {
	explored := uint64(len(s.classified))

	attractors := make([]Attractor, len(s.attractors))
	copy(attractors, s.attractors)
	sort.Slice(attractors, func(i, j int) bool {
		return attractors[i].States[0] < attractors[j].States[0]
	})

	for i := range attractors {
		attractors[i].ID = i
		if explored > 0 {
			attractors[i].BasinShare = float64(attractors[i].BasinSize) / float64(explored)
		}
	}

	return &AnalysisResult{
		AnalysisID:         uuid.NewString(),
		Order:              codec.Order(),
		Labels:             labels,
		Attractors:         attractors,
		ExploredStateCount: explored,
		TotalStateSpace:    totalSpace,
		Truncated:          truncated,
		Warnings:           warnings,
	}
}

// totalStateSpace computes 2^n, saturating at the 64-node cap.
func totalStateSpace(n int) uint64 {
	if n >= 64 {
		return math.MaxUint64
	}
	return uint64(1) << uint(n)
}
