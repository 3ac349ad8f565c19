package requestctx

import (
	"context"
	"testing"
)

func TestEnsureOperationID(t *testing.T) {
	ctx := EnsureOperationID(context.Background())
	id := GetOperationID(ctx)
	if id == "" {
		t.Fatal("expected operation id in context")
	}

	if again := GetOperationID(EnsureOperationID(ctx)); again != id {
		t.Fatalf("expected existing id to be kept, got %q want %q", again, id)
	}
}

func TestWithOperationID(t *testing.T) {
	ctx := WithOperationID(context.Background(), "op-1")
	if GetOperationID(ctx) != "op-1" {
		t.Fatal("expected explicit operation id")
	}
	if GetOperationID(context.Background()) != "" {
		t.Fatal("expected empty id for bare context")
	}
}
