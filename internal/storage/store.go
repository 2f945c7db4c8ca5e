package storage

import (
	"context"

	"github.com/mindflowhq/mindflow/internal/model"
)

// The snapshot key mirrors the storage key the web app used.
const SnapshotKey = "mindflow_state"

// Store persists the whole AppState as one JSON document under one key.
// Load never fails the caller: an absent, empty, or unparsable snapshot
// yields the default initial state so the app always starts usable.
type Store interface {
	Load(ctx context.Context) model.AppState
	Save(ctx context.Context, state model.AppState) error
}
