package views_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"

	"scribe/internal/analysis"
	"scribe/internal/logging"
	"scribe/internal/services"
	"scribe/internal/services/classification"
	"scribe/internal/testsupport"
	"scribe/internal/views"
)

func textFile(name, content string) views.SelectedFile {
	return views.SelectedFile{
		Name: name,
		Size: int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func newBackendClient(t *testing.T, backend *testsupport.Backend) *classification.Client {
	t.Helper()
	client, err := classification.NewClient(backend.URL())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestUploadWithoutFileIsRejectedLocally(t *testing.T) {
	backend := testsupport.NewBackend(t)
	view := views.NewUploadView(newBackendClient(t, backend), logging.NewNop())

	err := view.Submit(context.Background())
	if !errors.Is(err, views.ErrFileRequired) {
		t.Fatalf("expected ErrFileRequired, got %v", err)
	}
	snap := view.Snapshot()
	if snap.Status != views.MsgSelectFile {
		t.Fatalf("unexpected status %q", snap.Status)
	}
	if snap.State != views.StateIdle {
		t.Fatalf("state must not change, got %s", snap.State)
	}
	if len(backend.Requests()) != 0 {
		t.Fatal("expected no network call")
	}
}

func TestUploadSuccess(t *testing.T) {
	backend := testsupport.NewBackend(t)
	view := views.NewUploadView(newBackendClient(t, backend), nil)

	if err := view.SelectFile(textFile("talk.txt", "hello there")); err != nil {
		t.Fatalf("SelectFile: %v", err)
	}
	if snap := view.Snapshot(); snap.State != views.StateFileSelected || snap.FileName != "talk.txt" || snap.FileSizeLabel() != "11 B" {
		t.Fatalf("unexpected snapshot after select: %+v", snap)
	}

	if err := view.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	snap := view.Snapshot()
	if snap.State != views.StateSucceeded || snap.Status != views.MsgProcessingDone || snap.Error != "" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.Result == nil || snap.Result.AnalysisID != "an-1" || snap.Result.TranscriptID != "talk" {
		t.Fatalf("unexpected result: %+v", snap.Result)
	}
	if snap.Busy() {
		t.Fatal("view must not be busy after completion")
	}

	snap.Result.Entities.People[0] = "mutated"
	if again := view.Snapshot(); again.Result.Entities.People[0] == "mutated" {
		t.Fatal("snapshot must not alias view state")
	}
}

func TestUploadAcceptsZeroConfidenceWorkerReply(t *testing.T) {
	backend := testsupport.NewBackend(t)
	backend.Override("/upload", `{"status":"success","result":{"analysis_id":"an-7","transcript_id":"quiet",`+
		`"status":"success","error":"",`+
		`"tone":{"primary":"","secondary":[],"confidence":0.0},"style":{"primary":"","confidence":0.0},`+
		`"safety_flags":{"sensitive_domains":[],"severity":"None","requires_review":false}}}`)
	view := views.NewUploadView(newBackendClient(t, backend), nil)
	_ = view.SelectFile(textFile("quiet.txt", "..."))

	if err := view.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	snap := view.Snapshot()
	if snap.State != views.StateSucceeded || snap.Error != "" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	formatter := views.NewFormatter(language.AmericanEnglish, "", time.UTC)
	tone, _ := formatter.Report(*snap.Result).Section(views.SectionTone)
	if v, _ := tone.Value("Primary"); v != views.Placeholder {
		t.Fatalf("tone primary: %q", v)
	}
	raw, err := formatter.RawJSON(*snap.Result)
	if err != nil {
		t.Fatalf("RawJSON: %v", err)
	}
	if !strings.Contains(raw, `"error": ""`) || strings.Contains(raw, "entities") {
		t.Fatalf("raw json is not the server payload:\n%s", raw)
	}
}

func TestUploadInvalidReplyNeverYieldsPartialResult(t *testing.T) {
	for name, body := range map[string]string{
		"no marker": `{"result": {"analysis_id": "a", "tone": {"primary": "x"}, "style": {"primary": "y"}}}`,
		"no result": `{"status": "success"}`,
	} {
		t.Run(name, func(t *testing.T) {
			backend := testsupport.NewBackend(t)
			backend.Override("/upload", body)
			view := views.NewUploadView(newBackendClient(t, backend), nil)
			_ = view.SelectFile(textFile("a.txt", "x"))

			err := view.Submit(context.Background())
			if !errors.Is(err, analysis.ErrInvalidResponse) {
				t.Fatalf("expected invalid response, got %v", err)
			}
			snap := view.Snapshot()
			if snap.State != views.StateFailed || snap.Status != views.MsgProcessingFailed {
				t.Fatalf("unexpected snapshot: %+v", snap)
			}
			if snap.Error != views.MsgInvalidResponse {
				t.Fatalf("unexpected error message %q", snap.Error)
			}
			if snap.Result != nil {
				t.Fatal("partial result must not be exposed")
			}
		})
	}
}

func TestUploadHTTPErrorIncludesStatusCode(t *testing.T) {
	backend := testsupport.NewBackend(t)
	backend.FailWith(http.StatusBadGateway, `{"detail":"worker offline"}`)
	view := views.NewUploadView(newBackendClient(t, backend), nil)
	_ = view.SelectFile(textFile("a.mp3", "x"))

	if err := view.Submit(context.Background()); !errors.Is(err, services.ErrHTTPStatus) {
		t.Fatalf("expected http status error, got %v", err)
	}
	snap := view.Snapshot()
	if snap.Error != `Upload failed (502): {"detail":"worker offline"}` {
		t.Fatalf("unexpected error message %q", snap.Error)
	}
}

func TestUploadUnreachableBackend(t *testing.T) {
	backend := testsupport.NewBackend(t)
	client := newBackendClient(t, backend)
	backend.Close()

	view := views.NewUploadView(client, nil)
	_ = view.SelectFile(textFile("a.wav", "x"))
	if err := view.Submit(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	want := "Cannot connect to server. Please ensure the backend is running on " + backend.URL()
	if got := view.Snapshot().Error; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestUploadOpenFailureUsesErrorMessage(t *testing.T) {
	backend := testsupport.NewBackend(t)
	view := views.NewUploadView(newBackendClient(t, backend), nil)
	_ = view.SelectFile(views.SelectedFile{
		Name: "gone.mp4",
		Open: func() (io.ReadCloser, error) { return nil, errors.New("permission denied") },
	})

	if err := view.Submit(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if got := view.Snapshot().Error; got != "open gone.mp4: permission denied" {
		t.Fatalf("unexpected message %q", got)
	}
	if len(backend.Requests()) != 0 {
		t.Fatal("expected no network call")
	}
}

func TestUploadErrorMessageFallbacks(t *testing.T) {
	if got := views.UploadErrorMessage(errors.New("  "), "http://x"); got != views.MsgUnknownError {
		t.Fatalf("unexpected message %q", got)
	}
	if got := views.UploadErrorMessage(services.NewStatusError("upload", 500, nil), "http://x"); got != "Upload failed (500)" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := views.UploadErrorMessage(nil, "http://x"); got != "" {
		t.Fatalf("unexpected message %q", got)
	}
}

type blockingUploader struct {
	started chan struct{}
	release chan struct{}
	calls   int
}

func (u *blockingUploader) Upload(ctx context.Context, name string, _ io.Reader) (analysis.UploadResponse, error) {
	u.calls++
	close(u.started)
	<-u.release
	result := testsupport.SampleResult("slow")
	return analysis.UploadResponse{Status: analysis.StatusSuccess, Result: &result}, nil
}

func (u *blockingUploader) BaseURL() string { return "http://stub" }

func TestUploadRejectsOverlappingSubmissions(t *testing.T) {
	uploader := &blockingUploader{started: make(chan struct{}), release: make(chan struct{})}
	view := views.NewUploadView(uploader, nil)
	_ = view.SelectFile(textFile("a.txt", "x"))

	done := make(chan error, 1)
	go func() { done <- view.Submit(context.Background()) }()

	select {
	case <-uploader.started:
	case <-time.After(2 * time.Second):
		t.Fatal("upload did not start")
	}
	snap := view.Snapshot()
	if !snap.Busy() || snap.Status != views.MsgUploading {
		t.Fatalf("expected uploading snapshot, got %+v", snap)
	}
	if err := view.Submit(context.Background()); !errors.Is(err, views.ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if err := view.SelectFile(textFile("b.txt", "y")); !errors.Is(err, views.ErrBusy) {
		t.Fatalf("expected ErrBusy on reselect, got %v", err)
	}

	close(uploader.release)
	if err := <-done; err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if uploader.calls != 1 {
		t.Fatalf("expected one upload, got %d", uploader.calls)
	}
	if snap := view.Snapshot(); snap.State != views.StateSucceeded || snap.FileName != "a.txt" {
		t.Fatalf("unexpected final snapshot: %+v", snap)
	}
}

func TestSelectFileClearsPriorOutcome(t *testing.T) {
	backend := testsupport.NewBackend(t)
	backend.FailWith(http.StatusInternalServerError, "boom")
	view := views.NewUploadView(newBackendClient(t, backend), nil)
	_ = view.SelectFile(textFile("a.txt", "x"))
	_ = view.Submit(context.Background())
	if view.Snapshot().State != views.StateFailed {
		t.Fatal("expected failed state")
	}

	_ = view.SelectFile(textFile("b.txt", "yy"))
	snap := view.Snapshot()
	if snap.State != views.StateFileSelected || snap.Error != "" || snap.Status != "" || snap.Result != nil {
		t.Fatalf("expected cleared snapshot, got %+v", snap)
	}
}
