// Package indexing provides the scene embedding pipeline.
//
// The Pipeline type manages the indexing workflow for video scenes:
//   - Persisting scenes to storage
//   - Tracking each run as a job (waiting, active, completed, failed)
//   - Generating one embedding per modality (text, visual, audio) and
//     upserting the vectors into the per-modality collections
//
// Modality runs execute concurrently on worker pools. Within one modality,
// scenes are grouped into fixed-size batches; a failed batch falls back to
// embedding its items individually so a single faulty scene does not drag
// down its batch siblings.
package indexing
