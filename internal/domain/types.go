package domain

import "fmt"

// Placement puts a block with its leftmost cell at a position.
type Placement struct {
	At    Position
	Block *Block
}

// FillBatch is the set of placements installed in the bottom row after the
// board has been pushed up one row.
type FillBatch []Placement

// PlacementSpec is the wire and file form of a placement.
type PlacementSpec struct {
	At    Position  `json:"at" yaml:"at"`
	Block BlockSpec `json:"block" yaml:"block"`
}

func (s PlacementSpec) Placement() Placement {
	return Placement{At: s.At, Block: s.Block.Block()}
}

// Spec drops the block identity.
func (p Placement) Spec() PlacementSpec {
	return PlacementSpec{At: p.At, Block: p.Block.Spec()}
}

// BatchSpec is the wire and file form of a fill batch.
type BatchSpec []PlacementSpec

// Batch creates fresh blocks for every placement.
func (s BatchSpec) Batch() FillBatch {
	out := make(FillBatch, len(s))
	for i, p := range s {
		out[i] = p.Placement()
	}
	return out
}

func (b FillBatch) Spec() BatchSpec {
	out := make(BatchSpec, len(b))
	for i, p := range b {
		out[i] = p.Spec()
	}
	return out
}

// Batches converts a list of batch specs, preserving order.
func Batches(specs []BatchSpec) []FillBatch {
	out := make([]FillBatch, len(specs))
	for i, s := range specs {
		out[i] = s.Batch()
	}
	return out
}

// Move slides a block horizontally. From is the block's leftmost position at
// the time of the move; negative steps go left.
type Move struct {
	Block *Block   `json:"block"`
	From  Position `json:"from"`
	Steps int      `json:"steps"`
}

// Compare orders moves by starting position, then by steps.
func (m Move) Compare(o Move) int {
	if c := m.From.Compare(o.From); c != 0 {
		return c
	}
	switch {
	case m.Steps < o.Steps:
		return -1
	case m.Steps > o.Steps:
		return 1
	}
	return 0
}

func (m Move) String() string {
	return fmt.Sprintf("%s%+d", m.From, m.Steps)
}

// CompareMoves compares two move sequences pairwise; a proper prefix sorts first.
func CompareMoves(a, b []Move) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := a[i].Compare(b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// Progress is the level and score of a game.
type Progress struct {
	Level int `json:"level" yaml:"level"`
	Score int `json:"score" yaml:"score"`
}

// StartProgress is level 1 with no score.
func StartProgress() Progress {
	return Progress{Level: 1}
}

// Hint describes a suggested move for the UI.
type Hint struct {
	Message string     `json:"message,omitempty"`
	Cells   []Position `json:"cells,omitempty"`
	Move    Move       `json:"move"`
	Result  Progress   `json:"result"`
}

// Scenario is a stored search problem: a starting board, the batches that
// will fill the bottom row, and the target.
type Scenario struct {
	ID        string          `json:"id,omitempty" yaml:"id,omitempty"`
	Name      string          `json:"name,omitempty" yaml:"name,omitempty"`
	Dimension Dimension       `json:"dimension" yaml:"dimension"`
	Board     []PlacementSpec `json:"board,omitempty" yaml:"board,omitempty"`
	Batches   []BatchSpec     `json:"batches" yaml:"batches"`
	Target    Target          `json:"target" yaml:"target"`
	Start     Progress        `json:"start" yaml:"start"`
	CreatedAt int64           `json:"createdAt,omitempty" yaml:"created_at,omitempty"`
	Notes     string          `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Normalize fills in block defaults and starts at level 1 when no level is
// given.
func (s *Scenario) Normalize() {
	for i := range s.Board {
		s.Board[i].Block = s.Board[i].Block.Normalized()
	}
	for _, batch := range s.Batches {
		for i := range batch {
			batch[i].Block = batch[i].Block.Normalized()
		}
	}
	if s.Start.Level == 0 {
		s.Start.Level = 1
	}
}

// ScenarioMeta is a lightweight listing entry.
type ScenarioMeta struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Dimension Dimension `json:"dimension"`
	CreatedAt int64     `json:"createdAt"`
}

// Target is what a search must reach: at least MinScore in no more than
// MaxMoves moves.
type Target struct {
	MinScore int `json:"minScore" yaml:"min_score"`
	MaxMoves int `json:"maxMoves" yaml:"max_moves"`
}

// Plan is a sequence of moves together with the progress reached after
// playing them.
type Plan struct {
	Moves  []Move   `json:"moves"`
	Result Progress `json:"result"`
}
