package client

import (
	"context"
	"fmt"

	"stylesuggest/internal/suggestion/model"
	"stylesuggest/store"

	"github.com/goccy/go-json"
)

// SnapshotKey is the fixed KV key holding the JSON-encoded suggestion list.
const SnapshotKey = "suggestions"

func readSnapshot(ctx context.Context, kv store.KV) ([]model.Suggestion, error) {
	raw, ok, err := kv.Get(ctx, SnapshotKey)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	items := []model.Suggestion{}
	if !ok || raw == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []model.Suggestion{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if items == nil {
		items = []model.Suggestion{}
	}
	return items, nil
}

func writeSnapshot(ctx context.Context, kv store.KV, items []model.Suggestion) error {
	if items == nil {
		items = []model.Suggestion{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := kv.Set(ctx, SnapshotKey, string(raw)); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// merge replaces the record with s.ID or appends s. items is not modified.
func merge(items []model.Suggestion, s model.Suggestion) []model.Suggestion {
	out := make([]model.Suggestion, 0, len(items)+1)
	replaced := false
	for _, it := range items {
		if it.ID == s.ID {
			out = append(out, s)
			replaced = true
			continue
		}
		out = append(out, it)
	}
	if !replaced {
		out = append(out, s)
	}
	return out
}

func without(items []model.Suggestion, id string) []model.Suggestion {
	out := make([]model.Suggestion, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}
