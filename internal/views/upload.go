package views

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/dustin/go-humanize"

	"scribe/internal/analysis"
	"scribe/internal/logging"
)

// State is the lifecycle position of an UploadView.
type State int

const (
	StateIdle State = iota
	StateFileSelected
	StateUploading
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFileSelected:
		return "file_selected"
	case StateUploading:
		return "uploading"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Uploader sends a file to the analysis service.
type Uploader interface {
	Upload(ctx context.Context, filename string, content io.Reader) (analysis.UploadResponse, error)
	BaseURL() string
}

// SelectedFile is the file chosen for upload. Open is called once per
// submission and the returned reader is closed afterwards.
type SelectedFile struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// UploadSnapshot is a point-in-time copy of an UploadView.
type UploadSnapshot struct {
	State    State
	Status   string
	Error    string
	FileName string
	FileSize int64
	Result   *analysis.Result
}

// Busy reports whether an upload is in flight.
func (s UploadSnapshot) Busy() bool {
	return s.State == StateUploading
}

// HasFile reports whether a file is selected.
func (s UploadSnapshot) HasFile() bool {
	return s.FileName != ""
}

// FileSizeLabel renders the selected file size for display.
func (s UploadSnapshot) FileSizeLabel() string {
	if s.FileSize < 0 {
		return ""
	}
	return humanize.IBytes(uint64(s.FileSize))
}

// UploadView tracks one file through selection, upload and result.
type UploadView struct {
	uploader Uploader
	logger   *slog.Logger

	mu     sync.Mutex
	state  State
	file   *SelectedFile
	status string
	errMsg string
	result *analysis.Result
}

// NewUploadView returns an idle view bound to uploader.
func NewUploadView(uploader Uploader, logger *slog.Logger) *UploadView {
	return &UploadView{
		uploader: uploader,
		logger:   logging.NewComponentLogger(logger, "upload-view"),
	}
}

// SelectFile replaces the selected file and clears any prior outcome.
// Selection is refused while an upload is in flight.
func (v *UploadView) SelectFile(file SelectedFile) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state == StateUploading {
		return ErrBusy
	}
	v.file = &file
	v.state = StateFileSelected
	v.status = ""
	v.errMsg = ""
	v.result = nil
	return nil
}

// Submit uploads the selected file and records the outcome. It returns
// ErrFileRequired or ErrBusy without touching the network, and otherwise
// the upload error, if any.
func (v *UploadView) Submit(ctx context.Context) error {
	v.mu.Lock()
	if v.state == StateUploading {
		v.mu.Unlock()
		return ErrBusy
	}
	if v.file == nil {
		v.status = MsgSelectFile
		v.mu.Unlock()
		return ErrFileRequired
	}
	file := *v.file
	v.state = StateUploading
	v.status = MsgUploading
	v.errMsg = ""
	v.result = nil
	v.mu.Unlock()

	v.logger.Info("upload started",
		logging.String("file", file.Name),
		logging.Int64("size", file.Size),
	)
	resp, err := v.upload(ctx, file)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.state = StateFailed
		v.status = MsgProcessingFailed
		v.errMsg = UploadErrorMessage(err, v.uploader.BaseURL())
		v.logger.Warn("upload failed",
			logging.String("file", file.Name),
			logging.Error(err),
		)
		return err
	}
	result := resp.Result.Clone()
	v.result = &result
	v.state = StateSucceeded
	v.status = MsgProcessingDone
	v.logger.Info("upload processed",
		logging.String("file", file.Name),
		logging.String("analysis_id", result.AnalysisID),
	)
	return nil
}

func (v *UploadView) upload(ctx context.Context, file SelectedFile) (analysis.UploadResponse, error) {
	if file.Open == nil {
		return analysis.UploadResponse{}, fmt.Errorf("open %s: no reader", file.Name)
	}
	content, err := file.Open()
	if err != nil {
		return analysis.UploadResponse{}, fmt.Errorf("open %s: %w", file.Name, err)
	}
	defer content.Close()

	resp, err := v.uploader.Upload(ctx, file.Name, content)
	if err != nil {
		return analysis.UploadResponse{}, err
	}
	if !resp.Succeeded() {
		return analysis.UploadResponse{}, &analysis.DecodeError{Reason: fmt.Sprintf("status %q without result", resp.Status)}
	}
	return resp, nil
}

// Snapshot returns a copy of the current view state.
func (v *UploadView) Snapshot() UploadSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	snap := UploadSnapshot{
		State:  v.state,
		Status: v.status,
		Error:  v.errMsg,
	}
	if v.file != nil {
		snap.FileName = v.file.Name
		snap.FileSize = v.file.Size
	}
	if v.result != nil {
		result := v.result.Clone()
		snap.Result = &result
	}
	return snap
}
