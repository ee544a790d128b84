// Package statsview serves live runtime statistics over HTTP. It is only
// functional when built with the statsview build tag:
//
//	go build -tags statsview ./cmd/nescore
//
// The charts are then at localhost:12600/debug/statsview and the standard
// pprof pages at localhost:12600/debug/pprof/.
package statsview
