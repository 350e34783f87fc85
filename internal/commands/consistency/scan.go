package consistencycmd

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-localenav/internal/commands"
	"github.com/goliatone/go-localenav/internal/consistency"
	"github.com/goliatone/go-localenav/pkg/interfaces"
)

const scanMessageType = "localenav.consistency.scan"

// ScanCommand requests a full consistency scan of documents and translation
// groups. FailOnFindings turns a dirty report into an execution error so
// schedulers can alert on it.
type ScanCommand struct {
	TriggeredBy    string `json:"triggered_by,omitempty"`
	FailOnFindings bool   `json:"fail_on_findings,omitempty"`
}

// Type implements command.Message.
func (ScanCommand) Type() string { return scanMessageType }

// Validate ensures the message is well formed before reaching handlers.
func (m ScanCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.TriggeredBy, validation.RuneLength(0, 128)),
	)
}

// ErrFindings is returned when FailOnFindings is set and the scan surfaced
// inconsistencies.
var ErrFindings = errors.New("consistency: scan surfaced findings")

// ReportSink receives completed scan reports.
type ReportSink func(*consistency.Report)

// ScanHandler runs consistency scans via the shared command handler
// foundation. The report accumulator is created per execution and handed to
// the sink when one is configured.
type ScanHandler struct {
	inner *commands.Handler[ScanCommand]
}

// NewScanHandler constructs a handler wired to the provided checker.
func NewScanHandler(checker *consistency.Checker, sink ReportSink, logger interfaces.Logger, opts ...commands.HandlerOption[ScanCommand]) *ScanHandler {
	exec := func(ctx context.Context, msg ScanCommand) error {
		report := &consistency.Report{}
		if err := checker.Scan(ctx, report); err != nil {
			return err
		}
		if sink != nil {
			sink(report)
		}
		if msg.FailOnFindings && !report.Clean() {
			return ErrFindings
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ScanCommand]{
		commands.WithLogger[ScanCommand](logger),
		commands.WithOperation[ScanCommand]("consistency.scan"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ScanHandler{
		inner: commands.NewHandler[ScanCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ScanCommand].Execute.
func (h *ScanHandler) Execute(ctx context.Context, msg ScanCommand) error {
	return h.inner.Execute(ctx, msg)
}
