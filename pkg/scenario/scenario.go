package scenario

import (
	"errors"
	"fmt"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

// ErrUnknownScenario is returned by [ByName] for names not in the catalog.
var ErrUnknownScenario = errors.New("unknown scenario")

// Info describes a scenario for listings and UI pickers.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Difficulty  string `json:"difficulty"`
	Icon        string `json:"icon"`
}

type entry struct {
	name  string
	info  Info
	build func() *snapshot.Snapshot
}

// Presentation order is part of the API: listings always show easy circular
// waits before the Banker's states.
var catalog = []entry{
	{
		name: "dining_philosophers",
		info: Info{
			Name:        "Dining Philosophers",
			Description: "Classic circular wait with 5 philosophers and forks",
			Type:        "Circular Wait",
			Difficulty:  "Easy",
			Icon:        "🍴",
		},
		build: func() *snapshot.Snapshot { return DiningPhilosophers(5) },
	},
	{
		name: "reader_writer",
		info: Info{
			Name:        "Reader-Writer Deadlock",
			Description: "Reader and writer processes competing for database locks",
			Type:        "Hold and Wait",
			Difficulty:  "Medium",
			Icon:        "📖",
		},
		build: ReaderWriter,
	},
	{
		name: "circular_wait",
		info: Info{
			Name:        "Circular Wait (4 Processes)",
			Description: "Simple circular dependency: P0→R0→P1→R1→P2→R2→P3→R3→P0",
			Type:        "Circular Wait",
			Difficulty:  "Easy",
			Icon:        "🔄",
		},
		build: func() *snapshot.Snapshot { return CircularWait(4) },
	},
	{
		name: "banker_unsafe",
		info: Info{
			Name:        "Banker's Unsafe State",
			Description: "System in unsafe state - no safe sequence exists",
			Type:        "Unsafe State",
			Difficulty:  "Hard",
			Icon:        "⚠️",
		},
		build: BankerUnsafe,
	},
	{
		name: "no_deadlock",
		info: Info{
			Name:        "Safe State (No Deadlock)",
			Description: "Safe system with available safe sequence",
			Type:        "Safe",
			Difficulty:  "Easy",
			Icon:        "✅",
		},
		build: NoDeadlock,
	},
	{
		name: "producer_consumer",
		info: Info{
			Name:        "Producer-Consumer Deadlock",
			Description: "Producer and consumer with conflicting lock order",
			Type:        "Hold and Wait",
			Difficulty:  "Medium",
			Icon:        "🏭",
		},
		build: ProducerConsumer,
	},
}

// Catalog returns all scenario names in presentation order.
func Catalog() []string {
	names := make([]string, len(catalog))
	for i, e := range catalog {
		names[i] = e.name
	}
	return names
}

// Describe returns the Info for every scenario, keyed by catalog name.
func Describe() map[string]Info {
	infos := make(map[string]Info, len(catalog))
	for _, e := range catalog {
		infos[e.name] = e.info
	}
	return infos
}

// ByName builds the named scenario. Each call returns a fresh snapshot that
// the caller may freely modify.
func ByName(name string) (*snapshot.Snapshot, error) {
	for _, e := range catalog {
		if e.name == name {
			return e.build(), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
}

// All builds every scenario, keyed by catalog name.
func All() map[string]*snapshot.Snapshot {
	snaps := make(map[string]*snapshot.Snapshot, len(catalog))
	for _, e := range catalog {
		snaps[e.name] = e.build()
	}
	return snaps
}

// DiningPhilosophers builds the classic round-table deadlock: n philosophers,
// n forks, each holding their left fork and requesting the right one. Values
// below one fall back to five philosophers.
func DiningPhilosophers(n int) *snapshot.Snapshot {
	if n < 1 {
		n = 5
	}
	snap := &snapshot.Snapshot{
		Resources:  make(map[string]snapshot.Resource, n),
		Allocation: make(map[snapshot.Key]int, n),
		Request:    make(map[snapshot.Key]int, n),
	}
	for i := 0; i < n; i++ {
		snap.Processes = append(snap.Processes, snapshot.Process{
			PID:  i,
			Name: fmt.Sprintf("Philosopher_%d", i),
		})
		snap.Resources[fmt.Sprintf("F%d", i)] = snapshot.Resource{Total: 1}
	}
	for i := 0; i < n; i++ {
		snap.Allocation[snapshot.Key{PID: i, RID: fmt.Sprintf("F%d", i)}] = 1
		snap.Request[snapshot.Key{PID: i, RID: fmt.Sprintf("F%d", (i+1)%n)}] = 1
	}
	return snap
}

// ReaderWriter builds a two-database lock inversion: the reader holds a read
// lock on DB1 and wants an exclusive lock on DB2, while the writer holds DB2
// exclusively and wants to read DB1.
func ReaderWriter() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Processes: []snapshot.Process{
			{PID: 1, Name: "Reader"},
			{PID: 2, Name: "Writer"},
		},
		Resources: map[string]snapshot.Resource{
			"DB1": {Total: 2},
			"DB2": {Total: 2},
		},
		Allocation: map[snapshot.Key]int{
			{PID: 1, RID: "DB1"}: 1,
			{PID: 2, RID: "DB2"}: 2,
		},
		Request: map[snapshot.Key]int{
			{PID: 1, RID: "DB2"}: 2,
			{PID: 2, RID: "DB1"}: 1,
		},
	}
}

// CircularWait builds a ring of n single-unit resources where process i
// holds R(i) and requests R(i+1). Values below one fall back to four.
func CircularWait(n int) *snapshot.Snapshot {
	if n < 1 {
		n = 4
	}
	snap := &snapshot.Snapshot{
		Resources:  make(map[string]snapshot.Resource, n),
		Allocation: make(map[snapshot.Key]int, n),
		Request:    make(map[snapshot.Key]int, n),
	}
	for i := 0; i < n; i++ {
		snap.Processes = append(snap.Processes, snapshot.Process{
			PID:  i,
			Name: fmt.Sprintf("P%d", i),
		})
		snap.Resources[fmt.Sprintf("R%d", i)] = snapshot.Resource{Total: 1}
	}
	for i := 0; i < n; i++ {
		snap.Allocation[snapshot.Key{PID: i, RID: fmt.Sprintf("R%d", i)}] = 1
		snap.Request[snapshot.Key{PID: i, RID: fmt.Sprintf("R%d", (i+1)%n)}] = 1
	}
	return snap
}

// BankerUnsafe builds a state with no safe sequence: every process's
// outstanding need exceeds what release order can ever free up.
func BankerUnsafe() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Processes: []snapshot.Process{
			{PID: 0, Name: "P0"},
			{PID: 1, Name: "P1"},
			{PID: 2, Name: "P2"},
		},
		Resources: map[string]snapshot.Resource{
			"R1": {Total: 3},
			"R2": {Total: 2},
		},
		Allocation: map[snapshot.Key]int{
			{PID: 0, RID: "R1"}: 2,
			{PID: 0, RID: "R2"}: 0,
			{PID: 1, RID: "R1"}: 1,
			{PID: 1, RID: "R2"}: 1,
			{PID: 2, RID: "R1"}: 0,
			{PID: 2, RID: "R2"}: 1,
		},
		Request: map[snapshot.Key]int{
			{PID: 0, RID: "R1"}: 1,
			{PID: 0, RID: "R2"}: 2,
			{PID: 1, RID: "R1"}: 2,
			{PID: 1, RID: "R2"}: 1,
			{PID: 2, RID: "R1"}: 3,
			{PID: 2, RID: "R2"}: 1,
		},
	}
}

// NoDeadlock builds a comfortably safe state: spare units on both resources
// and modest requests, so any completion order works.
func NoDeadlock() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Processes: []snapshot.Process{
			{PID: 0, Name: "P0"},
			{PID: 1, Name: "P1"},
			{PID: 2, Name: "P2"},
		},
		Resources: map[string]snapshot.Resource{
			"R1": {Total: 5},
			"R2": {Total: 3},
		},
		Allocation: map[snapshot.Key]int{
			{PID: 0, RID: "R1"}: 1,
			{PID: 0, RID: "R2"}: 0,
			{PID: 1, RID: "R1"}: 1,
			{PID: 1, RID: "R2"}: 1,
			{PID: 2, RID: "R1"}: 1,
			{PID: 2, RID: "R2"}: 1,
		},
		Request: map[snapshot.Key]int{
			{PID: 0, RID: "R1"}: 1,
			{PID: 0, RID: "R2"}: 1,
			{PID: 1, RID: "R1"}: 1,
			{PID: 1, RID: "R2"}: 0,
			{PID: 2, RID: "R1"}: 0,
			{PID: 2, RID: "R2"}: 1,
		},
	}
}

// ProducerConsumer builds the two-lock handoff deadlock: the producer holds
// the buffer and needs the semaphore, the consumer holds the semaphore and
// needs the buffer.
func ProducerConsumer() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Processes: []snapshot.Process{
			{PID: 1, Name: "Producer"},
			{PID: 2, Name: "Consumer"},
		},
		Resources: map[string]snapshot.Resource{
			"Buffer": {Total: 1},
			"Sem":    {Total: 1},
		},
		Allocation: map[snapshot.Key]int{
			{PID: 1, RID: "Buffer"}: 1,
			{PID: 2, RID: "Sem"}:    1,
		},
		Request: map[snapshot.Key]int{
			{PID: 1, RID: "Sem"}:    1,
			{PID: 2, RID: "Buffer"}: 1,
		},
	}
}

// Demo builds the three-process walkthrough state used by the landing page:
// wait-for cycles are present, yet a spare unit of R1 keeps it safe.
func Demo() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Processes: []snapshot.Process{
			{PID: 1, Name: "P0"},
			{PID: 2, Name: "P1"},
			{PID: 3, Name: "P2"},
		},
		Resources: map[string]snapshot.Resource{
			"R1": {Total: 3},
			"R2": {Total: 2},
		},
		Allocation: map[snapshot.Key]int{
			{PID: 1, RID: "R1"}: 1,
			{PID: 2, RID: "R1"}: 1,
			{PID: 2, RID: "R2"}: 1,
			{PID: 3, RID: "R2"}: 1,
		},
		Request: map[snapshot.Key]int{
			{PID: 1, RID: "R2"}: 1,
			{PID: 2, RID: "R1"}: 1,
			{PID: 3, RID: "R1"}: 1,
		},
	}
}
