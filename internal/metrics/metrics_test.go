package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordHTTPRequest(t *testing.T) {
	// Reset metrics
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("GET", "/api/v1/videos", "200", 0.123)

	// Verify counter incremented
	counter := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/videos", "200"))
	if counter != 1.0 {
		t.Errorf("Expected counter to be 1.0, got %f", counter)
	}
}

func TestRecordJobSubmitted(t *testing.T) {
	JobsSubmittedTotal.Reset()

	RecordJobSubmitted("720p", 25)
	RecordJobSubmitted("1080p", 38)
	RecordJobSubmitted("720p", 0)

	sd := testutil.ToFloat64(JobsSubmittedTotal.WithLabelValues("720p"))
	if sd != 2.0 {
		t.Errorf("Expected 720p submissions to be 2.0, got %f", sd)
	}

	hd := testutil.ToFloat64(JobsSubmittedTotal.WithLabelValues("1080p"))
	if hd != 1.0 {
		t.Errorf("Expected 1080p submissions to be 1.0, got %f", hd)
	}
}

func TestRecordJobCompleted(t *testing.T) {
	JobsCompletedTotal.Reset()

	RecordJobCompleted("completed", "1080p", 120.5, 0)
	RecordJobCompleted("failed", "720p", 30.2, 25)

	completed := testutil.ToFloat64(JobsCompletedTotal.WithLabelValues("completed"))
	if completed != 1.0 {
		t.Errorf("Expected completed counter to be 1.0, got %f", completed)
	}

	failed := testutil.ToFloat64(JobsCompletedTotal.WithLabelValues("failed"))
	if failed != 1.0 {
		t.Errorf("Expected failed counter to be 1.0, got %f", failed)
	}
}

func TestRecordAdWatch(t *testing.T) {
	AdWatchesTotal.Reset()

	RecordAdWatch(true, 28)
	RecordAdWatch(true, 31)
	RecordAdWatch(false, 0)

	granted := testutil.ToFloat64(AdWatchesTotal.WithLabelValues("granted"))
	if granted != 2.0 {
		t.Errorf("Expected granted counter to be 2.0, got %f", granted)
	}

	capped := testutil.ToFloat64(AdWatchesTotal.WithLabelValues("capped"))
	if capped != 1.0 {
		t.Errorf("Expected capped counter to be 1.0, got %f", capped)
	}
}

func TestRecordPurchase(t *testing.T) {
	PurchasesTotal.Reset()

	RecordPurchase("basic")
	RecordPurchase("basic")
	RecordPurchase("unlimited")

	basic := testutil.ToFloat64(PurchasesTotal.WithLabelValues("basic"))
	if basic != 2.0 {
		t.Errorf("Expected basic purchases to be 2.0, got %f", basic)
	}
}

func TestRecordCacheAccess(t *testing.T) {
	CacheHitsTotal.Reset()
	CacheMissesTotal.Reset()

	RecordCacheAccess("job_status", true)
	RecordCacheAccess("job_status", true)
	RecordCacheAccess("job_status", false)

	hits := testutil.ToFloat64(CacheHitsTotal.WithLabelValues("job_status"))
	if hits != 2.0 {
		t.Errorf("Expected cache hits to be 2.0, got %f", hits)
	}

	misses := testutil.ToFloat64(CacheMissesTotal.WithLabelValues("job_status"))
	if misses != 1.0 {
		t.Errorf("Expected cache misses to be 1.0, got %f", misses)
	}
}

func TestRecordError(t *testing.T) {
	ErrorsTotal.Reset()

	RecordError("api", "validation")
	RecordError("worker", "provider")
	RecordError("api", "validation")

	apiErrors := testutil.ToFloat64(ErrorsTotal.WithLabelValues("api", "validation"))
	if apiErrors != 2.0 {
		t.Errorf("Expected API validation errors to be 2.0, got %f", apiErrors)
	}

	workerErrors := testutil.ToFloat64(ErrorsTotal.WithLabelValues("worker", "provider"))
	if workerErrors != 1.0 {
		t.Errorf("Expected worker provider errors to be 1.0, got %f", workerErrors)
	}
}
