// Package journal records study activity off the request path.
//
// The Recorder accepts progress and search-history records and writes
// them through a worker pool so content and search requests never wait
// on audit writes. Write failures are logged, not surfaced; the
// journal is advisory, not transactional.
package journal
