// Package ffprobe shells out to ffprobe for media duration probing. Only the
// container format section is requested; stream details are not needed by the
// pipeline.
package ffprobe
