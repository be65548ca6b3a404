package sink

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-latticegraph/pkg/conduction"
	"github.com/dd0wney/cluso-latticegraph/pkg/export"
	"github.com/dd0wney/cluso-latticegraph/pkg/lattice"
)

func chainDocument() export.Document {
	return export.Document{
		RunID:  "run-7",
		Axis:   0,
		Cutoff: 1.5,
		Nodes: []conduction.NetworkNode{
			{Label: 1, Source: 1, Position: lattice.Vec3{3, 0, 0}},
			{Label: 2, Source: 4, Position: lattice.Vec3{4, 0, 0}},
			{Label: 3, Source: 7, Position: lattice.Vec3{5, 0, 0}},
			{Label: 4, Source: 2, Position: lattice.Vec3{6, 0, 0}},
		},
		Edges: []conduction.NetworkEdge{{From: 1, To: 2, Weight: 1}, {From: 2, To: 3, Weight: 1}, {From: 3, To: 4, Weight: 1}},
		Start: []int{1},
		End:   []int{4},
	}
}

func TestPublisher_Publish(t *testing.T) {
	client := NewMemoryClient()
	p := NewPublisher(client, nil, 0)

	require.NoError(t, p.Publish(context.Background(), chainDocument()))

	calls := client.WriteCalls()
	require.Len(t, calls, 4)
	assert.Contains(t, calls[0].Query, "DETACH DELETE")
	assert.Contains(t, calls[1].Query, "CREATE (n:Network")
	assert.Equal(t, 4, calls[1].Params["node_count"])
	assert.Equal(t, []any{1}, calls[1].Params["start_labels"])

	atoms := calls[2].Params["atoms"].([]any)
	require.Len(t, atoms, 4)
	first := atoms[0].(map[string]any)
	assert.Equal(t, 1, first["label"])
	assert.Equal(t, true, first["is_start"])
	assert.Equal(t, false, first["is_end"])
	assert.Equal(t, 3.0, first["x"])
	assert.Equal(t, true, atoms[3].(map[string]any)["is_end"])

	edges := calls[3].Params["edges"].([]any)
	require.Len(t, edges, 3)
	assert.Equal(t, map[string]any{"from": 2, "to": 3, "weight": 1}, edges[1])
	for _, c := range calls {
		assert.Equal(t, "run-7", c.Params["run_id"])
	}
}

func TestPublisher_Batches(t *testing.T) {
	client := NewMemoryClient()
	p := NewPublisher(client, nil, 3)

	require.NoError(t, p.Publish(context.Background(), chainDocument()))

	var atomBatches, edgeBatches []int
	for _, c := range client.WriteCalls() {
		if rows, ok := c.Params["atoms"].([]any); ok {
			atomBatches = append(atomBatches, len(rows))
		}
		if rows, ok := c.Params["edges"].([]any); ok {
			edgeBatches = append(edgeBatches, len(rows))
		}
	}
	assert.Equal(t, []int{3, 1}, atomBatches)
	assert.Equal(t, []int{3}, edgeBatches)
}

func TestPublisher_EmptyNetwork(t *testing.T) {
	client := NewMemoryClient()
	doc := export.Document{RunID: "empty"}

	require.NoError(t, NewPublisher(client, nil, 0).Publish(context.Background(), doc))
	// only the clear and network statements
	assert.Len(t, client.WriteCalls(), 2)
}

func TestPublisher_Error(t *testing.T) {
	client := NewMemoryClient().WithError(errors.New("connection refused"))

	err := NewPublisher(client, nil, 0).Publish(context.Background(), chainDocument())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "connection refused"))
	assert.Error(t, client.VerifyConnectivity(context.Background()))
}

func TestPublisher_Counts(t *testing.T) {
	client := NewMemoryClient()
	client.PushReadResult(Result{Records: []Record{{"atoms": int64(4), "edges": int64(3)}}})
	p := NewPublisher(client, nil, 0)

	atoms, edges, err := p.Counts(context.Background(), "run-7")
	require.NoError(t, err)
	assert.Equal(t, int64(4), atoms)
	assert.Equal(t, int64(3), edges)
	assert.Equal(t, "run-7", client.ReadCalls()[0].Params["run_id"])

	atoms, edges, err = p.Counts(context.Background(), "missing")
	require.NoError(t, err)
	assert.Zero(t, atoms+edges)
}

func TestNewNeo4jClient_RequiresURI(t *testing.T) {
	_, err := NewNeo4jClient(context.Background(), Options{})
	assert.ErrorIs(t, err, ErrMissingURI)
}

func TestMemoryClient_Close(t *testing.T) {
	client := NewMemoryClient()
	require.NoError(t, client.Close(context.Background()))
	assert.True(t, client.Closed())
}
