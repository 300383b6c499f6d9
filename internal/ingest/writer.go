package ingest

import (
	"context"
	"log"

	"github.com/7lsnyc/notaryfindernow2/internal/entity"
)

// NotaryStore persists notary records keyed by place id.
type NotaryStore interface {
	Upsert(ctx context.Context, n *entity.Notary) error
}

// Writer upserts one record at a time and reports the outcome without
// failing the batch.
type Writer struct {
	store NotaryStore
}

func NewWriter(store NotaryStore) *Writer {
	return &Writer{store: store}
}

// Write stores n and reports whether it succeeded.
func (w *Writer) Write(ctx context.Context, n *entity.Notary) bool {
	if err := w.store.Upsert(ctx, n); err != nil {
		log.Printf("notary upsert failed place_id=%s name=%q error=%v", n.PlaceID, n.Name, err)
		return false
	}
	log.Printf("notary saved place_id=%s name=%q city=%q state=%q", n.PlaceID, n.Name, n.City, n.State)
	return true
}

// DryRunStore logs records instead of writing them.
type DryRunStore struct{}

func (DryRunStore) Upsert(_ context.Context, n *entity.Notary) error {
	log.Printf("dry run place_id=%s name=%q services=%+v booking=%+v", n.PlaceID, n.Name, n.ServiceTypes, n.BookingInfo)
	return nil
}

var _ NotaryStore = DryRunStore{}
