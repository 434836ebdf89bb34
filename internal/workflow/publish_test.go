package workflow

import (
	"context"
	"errors"
	"sync"
	"testing"

	"brainrot/internal/metadata"
	"brainrot/internal/services"
	"brainrot/internal/services/uploader"
)

type recordingUploader struct {
	mu       sync.Mutex
	requests []uploader.Request
	failOn   map[string]error
}

func (u *recordingUploader) Upload(ctx context.Context, req uploader.Request) error {
	u.mu.Lock()
	u.requests = append(u.requests, req)
	u.mu.Unlock()
	if u.failOn != nil {
		if err, ok := u.failOn[req.Title]; ok {
			return err
		}
	}
	return nil
}

func TestShortTitle(t *testing.T) {
	got := ShortTitle("Reddit Confessions", 12, "My Roommate Ate My Homework")
	want := "Reddit Confessions #12 | My Roommate Ate My Homework #shorts"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBuildPartJobsNumbersContiguously(t *testing.T) {
	jobs := BuildPartJobs("Reddit Confessions", 3, "Title", []string{"/w/part1.mp4", "/w/part2.mp4"})
	if len(jobs) != 2 {
		t.Fatalf("got %d jobs, want 2", len(jobs))
	}
	if jobs[0].Title != "Reddit Confessions #3 | Title (Part 1/2)" {
		t.Fatalf("first title = %q", jobs[0].Title)
	}
	if jobs[1].Title != "Reddit Confessions #3 | Title (Part 2/2)" {
		t.Fatalf("second title = %q", jobs[1].Title)
	}
}

func TestBuildPartJobsLonePartKeepsPlainTitle(t *testing.T) {
	jobs := BuildPartJobs("Reddit Confessions", 3, "Title", []string{"/w/part1.mp4"})
	if len(jobs) != 1 {
		t.Fatalf("got %d jobs, want 1", len(jobs))
	}
	if jobs[0].Title != "Reddit Confessions #3 | Title" {
		t.Fatalf("title = %q", jobs[0].Title)
	}
}

func TestPublishSequentialStopsOnFirstFailure(t *testing.T) {
	client := &recordingUploader{failOn: map[string]error{
		"b": services.Wrap(services.ErrPublishFailed, "publish", "upload", "quota", nil),
	}}
	fanout := NewFanout(client, false, 0, "22", "public", "", nil)

	jobs := []Job{{FilePath: "1.mp4", Title: "a"}, {FilePath: "2.mp4", Title: "b"}, {FilePath: "3.mp4", Title: "c"}}
	err := fanout.Publish(t.Context(), jobs, metadata.Metadata{})
	if !errors.Is(err, services.ErrPublishFailed) {
		t.Fatalf("expected ErrPublishFailed, got %v", err)
	}
	if len(client.requests) != 2 {
		t.Fatalf("got %d uploads, want 2 (stop after first failure)", len(client.requests))
	}
}

func TestPublishConcurrentRunsAllJobs(t *testing.T) {
	failure := errors.New("rejected")
	client := &recordingUploader{failOn: map[string]error{"b": failure}}
	fanout := NewFanout(client, true, 0, "22", "public", "", nil)

	jobs := []Job{{FilePath: "1.mp4", Title: "a"}, {FilePath: "2.mp4", Title: "b"}, {FilePath: "3.mp4", Title: "c"}}
	err := fanout.Publish(t.Context(), jobs, metadata.Metadata{})
	if !errors.Is(err, failure) {
		t.Fatalf("expected upload failure, got %v", err)
	}
	if len(client.requests) != 3 {
		t.Fatalf("got %d uploads, want all 3", len(client.requests))
	}
}

func TestPublishCarriesMetadata(t *testing.T) {
	client := &recordingUploader{}
	fanout := NewFanout(client, false, 0, "22", "unlisted", "PL9", nil)

	meta := metadata.Metadata{Description: "desc", Keywords: []string{"shorts"}}
	if err := fanout.Publish(t.Context(), []Job{{FilePath: "v.mp4", Title: "t"}}, meta); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	req := client.requests[0]
	if req.Description != "desc" || req.Privacy != "unlisted" || req.PlaylistID != "PL9" || req.Category != "22" {
		t.Fatalf("request = %+v", req)
	}
}

func TestPublishRejectsEmptyBatch(t *testing.T) {
	fanout := NewFanout(&recordingUploader{}, false, 0, "22", "public", "", nil)
	if err := fanout.Publish(t.Context(), nil, metadata.Metadata{}); !errors.Is(err, services.ErrPublishFailed) {
		t.Fatalf("expected ErrPublishFailed, got %v", err)
	}
}
