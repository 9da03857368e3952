package ws

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"card-room/internal/app/table"
	"card-room/internal/game"
)

func compileProtocolSchema(t *testing.T) *jsonschema.Schema {
	t.Helper()
	compiler := jsonschema.NewCompiler()
	data, err := os.ReadFile("../../api/schema/ws_v1.schema.json")
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if err := compiler.AddResource("ws_v1.schema.json", strings.NewReader(string(data))); err != nil {
		t.Fatalf("add resource: %v", err)
	}
	schema, err := compiler.Compile("ws_v1.schema.json")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return schema
}

func validateMessage(t *testing.T, schema *jsonschema.Schema, msg any) {
	t.Helper()
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal %T: %v", msg, err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("unmarshal %T: %v", msg, err)
	}
	if err := schema.Validate(v); err != nil {
		t.Fatalf("schema validate %T: %v\npayload: %s", msg, err, data)
	}
}

func TestWSProtocolSchema(t *testing.T) {
	schema := compileProtocolSchema(t)

	validateMessage(t, schema, JoinResult{Type: "join_result", ProtocolVersion: game.ProtocolVersion, Ok: true, TableID: "tbl"})
	validateMessage(t, schema, JoinResult{Type: "join_result", ProtocolVersion: game.ProtocolVersion, Ok: false, Error: "table_full"})
	validateMessage(t, schema, ActionResult{Type: "action_result", ProtocolVersion: game.ProtocolVersion, Ok: true})
	validateMessage(t, schema, HandEnd{
		Type:            "hand_end",
		ProtocolVersion: game.ProtocolVersion,
		TableID:         "tbl",
		HandID:          "tbl-1",
		Winners:         []string{"a"},
		Pot:             40,
		Awards:          []game.PotAward{{Amount: 40, Winners: []string{"a"}, Category: "two pair"}},
		Showdown:        true,
	})
}

// Live snapshots straight from a table must satisfy the published schema,
// for both seated viewers and spectators.
func TestLiveSnapshotMatchesSchema(t *testing.T) {
	schema := compileProtocolSchema(t)

	svc := table.NewService(table.Config{SmallBlind: 10, BigBlind: 20, DefaultBuyIn: 1000}, nil, zerolog.Nop())
	ctx := context.Background()
	id := svc.CreateTable()
	for _, n := range []string{"a", "b", "c"} {
		if err := svc.Join(ctx, id, n); err != nil {
			t.Fatalf("join %s: %v", n, err)
		}
	}

	for _, viewer := range []string{"", "a", "b"} {
		snap, err := svc.PublicState(id, viewer)
		if err != nil {
			t.Fatalf("state for %q: %v", viewer, err)
		}
		validateMessage(t, schema, snap)
	}
}
