package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/dynmesh/internal/config"
	"github.com/Faultbox/dynmesh/pkg/dmesh"
)

// Edit kinds picked by the random session.
const (
	opSplit    = "split"
	opFlip     = "flip"
	opCollapse = "collapse"
	opPoke     = "poke"
)

var editOps = []string{opSplit, opFlip, opCollapse, opPoke}

// editReport counts results per edit kind.
type editReport struct {
	Seed        int64                     `yaml:"seed"`
	Attempts    int                       `yaml:"attempts"`
	Results     map[string]map[string]int `yaml:"results"`
	BowtieSplit int                       `yaml:"bowtie_elements_split"`
}

func (r *editReport) record(op string, res dmesh.EditResult) {
	if r.Results[op] == nil {
		r.Results[op] = make(map[string]int)
	}
	r.Results[op][res.String()]++
}

// applied returns the number of edits that changed the mesh.
func (r *editReport) applied() int {
	n := 0
	for _, byResult := range r.Results {
		n += byResult[dmesh.EditOK.String()]
	}
	return n
}

// randomEdits runs cfg.Count random topology edits driven by a PCG seeded with cfg.Seed,
// so a session is reproducible from its seed.
func randomEdits(m *dmesh.Mesh, cfg config.EditsConfig, log *zap.Logger) editReport {
	rng := rand.New(rand.NewPCG(uint64(cfg.Seed), 0))
	report := editReport{Seed: cfg.Seed, Results: make(map[string]map[string]int)}

	for i := 0; i < cfg.Count; i++ {
		op := editOps[rng.IntN(len(editOps))]
		var res dmesh.EditResult
		switch op {
		case opPoke:
			tid, ok := pickID(rng, m.MaxTriangleID(), m.IsTriangle)
			if !ok {
				continue
			}
			u, v := rng.Float32(), rng.Float32()
			if u+v > 1 {
				u, v = 1-u, 1-v
			}
			_, res = m.PokeTriangle(tid, [3]float32{1 - u - v, u, v})
		default:
			eid, ok := pickID(rng, m.MaxEdgeID(), m.IsEdge)
			if !ok {
				continue
			}
			switch op {
			case opSplit:
				_, res = m.SplitEdge(eid, 0.25+rng.Float32()/2)
			case opFlip:
				_, res = m.FlipEdge(eid)
			case opCollapse:
				ev := m.GetEdgeV(eid)
				_, res = m.CollapseEdge(ev.A, ev.B, rng.Float32())
			}
		}
		report.Attempts++
		report.record(op, res)
	}

	if cfg.SplitBowties && m.HasAttributes() {
		report.BowtieSplit = m.Attributes().SplitAllBowties(true)
	}
	log.Info("edit session finished",
		zap.Int64("seed", cfg.Seed),
		zap.Int("attempts", report.Attempts),
		zap.Int("applied", report.applied()),
		zap.Int("bowtie_elements_split", report.BowtieSplit))
	return report
}

// pickID samples a live id below maxID, giving up after a few misses on sparse ranges.
func pickID(rng *rand.Rand, maxID int, live func(int) bool) (int, bool) {
	if maxID == 0 {
		return 0, false
	}
	for range 32 {
		if id := rng.IntN(maxID); live(id) {
			return id, true
		}
	}
	for id := 0; id < maxID; id++ {
		if live(id) {
			return id, true
		}
	}
	return 0, false
}

func writeEditReport(w io.Writer, r editReport) {
	fmt.Fprintf(w, "Seed:     %d\n", r.Seed)
	fmt.Fprintf(w, "Attempts: %d (%d applied)\n", r.Attempts, r.applied())
	for _, op := range editOps {
		byResult := r.Results[op]
		if len(byResult) == 0 {
			continue
		}
		names := make([]string, 0, len(byResult))
		for name := range byResult {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintf(w, "  %-9s", op)
		for _, name := range names {
			fmt.Fprintf(w, " %s=%d", name, byResult[name])
		}
		fmt.Fprintln(w)
	}
	if r.BowtieSplit > 0 {
		fmt.Fprintf(w, "Bowtie elements split: %d\n", r.BowtieSplit)
	}
}

func (a *app) editCmd() *cobra.Command {
	var (
		count   int
		compact bool
		asYAML  bool
	)
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Run a seeded random edit session and check mesh validity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.buildMesh()
			if err != nil {
				return err
			}
			edits := a.cfg.Edits
			if cmd.Flags().Changed("count") {
				edits.Count = count
			}

			report := randomEdits(m, edits, a.log)
			if err := m.CheckValidity(); err != nil {
				return fmt.Errorf("mesh invalid after %d edits (seed %d): %w", report.Attempts, report.Seed, err)
			}
			if compact {
				m.CompactInPlace()
			}

			out := cmd.OutOrStdout()
			if asYAML {
				return writeStats(out, collectStats(m), true)
			}
			writeEditReport(out, report)
			fmt.Fprintln(out, "Validity: ok")
			fmt.Fprintln(out)
			return writeStats(out, collectStats(m), false)
		},
	}
	cmd.Flags().IntVar(&count, "count", 0, "Number of edits (overrides edits.count)")
	cmd.Flags().BoolVar(&compact, "compact", false, "Compact the mesh after editing")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the final stats as YAML")
	return cmd
}
