// Package transcode runs one external transcoder process per lossless file
// through a bounded pool and verifies the outputs once the queue drains.
//
// Files are dispatched in the order given. A failing process is logged and
// recorded without stopping its siblings; verification then reports every
// expected output that is missing or empty.
package transcode
