// Package workflow implements vecsearch's decision logic on top of a
// vectordb.Store and one embedder per vector mode.
//
// # Capability probing
//
// Probe reads a collection once and reports whether it has a sparse slot
// (and its name) and a dense vector (with size and distance).
//
// # Ingestion
//
// Ingest renders each record, derives its point id, embeds it with the
// corpus path of the mode's embedder and upserts batches one at a time:
//
//	report, err := svc.Ingest(ctx, records, "cmds", vectordb.ModeSparse)
//	if err != nil {
//	    // fatal: nothing was written
//	}
//	fmt.Println(report.Status, report.Upserted, report.Failed)
//
// A missing collection is created for the requested mode. An existing
// collection that cannot hold that mode fails with ErrCapabilityMismatch
// before anything is written. Per-record problems (nothing to render,
// embedding or upsert rejected) end up in report.Failures and do not stop
// the other records.
//
// # Search
//
// Search embeds the query with the query path and searches the mode's slot.
// A sparse search on a collection without a sparse slot is served by the
// dense embedder for that call and flagged with FallbackOccurred.
//
// # Errors
//
// KindOf maps any returned error to its kind name (ModelUnavailable,
// CollectionNotFound, CollectionCapabilityMismatch, StoreUnavailable,
// MalformedRecord, ...), which is what the CLI prints.
package workflow
