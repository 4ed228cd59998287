// Package metrics records docpress run metrics.
//
// Components receive a Recorder and call it unconditionally. NoopRecorder is
// the default, so nothing needs a nil check:
//
//	imp := content.NewImporter(cfg, content.WithRecorder(metrics.NoopRecorder{}))
//
// When a metrics file is requested the CLI injects a PrometheusRecorder backed
// by its own registry and writes the registry out in the node-exporter
// textfile format once the command finishes (see WriteTextfile).
package metrics
