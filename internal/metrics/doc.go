// Package metrics records pipeline metrics behind the Recorder interface.
//
// Components default to NoopRecorder. When output.metrics_file is configured
// the CLI injects a PrometheusRecorder and writes its registry to that file in
// text exposition format once the run finishes.
package metrics
