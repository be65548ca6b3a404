package sink

import (
	"context"
	"fmt"

	"github.com/dd0wney/cluso-latticegraph/pkg/export"
	"github.com/dd0wney/cluso-latticegraph/pkg/logging"
)

// DefaultBatchSize bounds the rows sent in one UNWIND statement
const DefaultBatchSize = 500

const (
	clearRunCypher = `
MATCH (n:Network {run_id: $run_id})
OPTIONAL MATCH (n)-[:CONTAINS]->(a:Atom)
DETACH DELETE a, n`

	networkCypher = `
CREATE (n:Network {run_id: $run_id})
SET n.axis = $axis,
    n.cutoff = $cutoff,
    n.node_count = $node_count,
    n.edge_count = $edge_count,
    n.start_labels = $start_labels,
    n.end_labels = $end_labels`

	atomsCypher = `
MATCH (n:Network {run_id: $run_id})
UNWIND $atoms AS atom
CREATE (n)-[:CONTAINS]->(a:Atom {run_id: $run_id, label: atom.label})
SET a.source = atom.source,
    a.x = atom.x,
    a.y = atom.y,
    a.z = atom.z,
    a.is_start = atom.is_start,
    a.is_end = atom.is_end`

	edgesCypher = `
UNWIND $edges AS edge
MATCH (a:Atom {run_id: $run_id, label: edge.from})
MATCH (b:Atom {run_id: $run_id, label: edge.to})
CREATE (a)-[:CONDUCTS {weight: edge.weight}]->(b)`

	countCypher = `
MATCH (:Network {run_id: $run_id})-[:CONTAINS]->(a:Atom)
OPTIONAL MATCH (a)-[r:CONDUCTS]->()
RETURN count(DISTINCT a) AS atoms, count(r) AS edges`
)

// Publisher writes exported networks into a graph database. Each network
// becomes a :Network node that CONTAINS its :Atom nodes, joined by
// :CONDUCTS relationships.
type Publisher struct {
	client    Client
	logger    logging.Logger
	batchSize int
}

// NewPublisher creates a publisher; a non-positive batchSize uses
// DefaultBatchSize
func NewPublisher(client Client, logger logging.Logger, batchSize int) *Publisher {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Publisher{client: client, logger: logger.With(logging.Component("sink")), batchSize: batchSize}
}

// Publish replaces any earlier copy of the run and writes doc
func (p *Publisher) Publish(ctx context.Context, doc export.Document) error {
	log := p.logger.With(logging.RunID(doc.RunID))
	timer := logging.StartTimer(log, "network published")

	runParam := map[string]any{"run_id": doc.RunID}
	if _, err := p.client.ExecuteWrite(ctx, clearRunCypher, runParam); err != nil {
		timer.EndError(err)
		return fmt.Errorf("clear run %s: %w", doc.RunID, err)
	}

	_, err := p.client.ExecuteWrite(ctx, networkCypher, map[string]any{
		"run_id":       doc.RunID,
		"axis":         doc.Axis,
		"cutoff":       doc.Cutoff,
		"node_count":   len(doc.Nodes),
		"edge_count":   len(doc.Edges),
		"start_labels": toAnySlice(doc.Start),
		"end_labels":   toAnySlice(doc.End),
	})
	if err != nil {
		timer.EndError(err)
		return fmt.Errorf("create network node: %w", err)
	}

	if err := p.writeBatches(ctx, atomsCypher, "atoms", doc.RunID, atomRows(doc)); err != nil {
		timer.EndError(err)
		return err
	}
	if err := p.writeBatches(ctx, edgesCypher, "edges", doc.RunID, edgeRows(doc)); err != nil {
		timer.EndError(err)
		return err
	}

	timer.End(logging.Int("atoms", len(doc.Nodes)), logging.Int("edges", len(doc.Edges)))
	return nil
}

// Counts reads back how many atoms and edges are stored for a run
func (p *Publisher) Counts(ctx context.Context, runID string) (atoms, edges int64, err error) {
	res, err := p.client.ExecuteRead(ctx, countCypher, map[string]any{"run_id": runID})
	if err != nil {
		return 0, 0, fmt.Errorf("count run %s: %w", runID, err)
	}
	if len(res.Records) == 0 {
		return 0, 0, nil
	}
	rec := res.Records[0]
	atoms, _ = rec["atoms"].(int64)
	edges, _ = rec["edges"].(int64)
	return atoms, edges, nil
}

func (p *Publisher) writeBatches(ctx context.Context, cypher, key, runID string, rows []any) error {
	for lo := 0; lo < len(rows); lo += p.batchSize {
		hi := min(lo+p.batchSize, len(rows))
		_, err := p.client.ExecuteWrite(ctx, cypher, map[string]any{
			"run_id": runID,
			key:      rows[lo:hi],
		})
		if err != nil {
			return fmt.Errorf("write %s %d-%d: %w", key, lo, hi, err)
		}
	}
	return nil
}

func atomRows(doc export.Document) []any {
	starts := make(map[int]bool, len(doc.Start))
	for _, l := range doc.Start {
		starts[l] = true
	}
	ends := make(map[int]bool, len(doc.End))
	for _, l := range doc.End {
		ends[l] = true
	}

	rows := make([]any, len(doc.Nodes))
	for i, n := range doc.Nodes {
		rows[i] = map[string]any{
			"label":    n.Label,
			"source":   n.Source,
			"x":        n.Position[0],
			"y":        n.Position[1],
			"z":        n.Position[2],
			"is_start": starts[n.Label],
			"is_end":   ends[n.Label],
		}
	}
	return rows
}

func edgeRows(doc export.Document) []any {
	rows := make([]any, len(doc.Edges))
	for i, e := range doc.Edges {
		rows[i] = map[string]any{"from": e.From, "to": e.To, "weight": e.Weight}
	}
	return rows
}

func toAnySlice(ints []int) []any {
	out := make([]any, len(ints))
	for i, v := range ints {
		out[i] = v
	}
	return out
}
