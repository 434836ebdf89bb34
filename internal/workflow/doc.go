// Package workflow orchestrates the production pipeline: acquire a candidate
// confession, synthesize narration, render the video, route it by measured
// duration, split over-length videos, publish the results, and advance the
// durable episode counter.
package workflow
