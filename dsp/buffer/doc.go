// Package buffer provides a fixed-length sliding window over the most recent
// samples of a stream. The window never grows: updates shift or overwrite the
// backing array in place, so window-based estimators can hold one for the
// lifetime of a stream without allocating per call.
package buffer
