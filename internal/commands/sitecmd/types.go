package sitecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-sitecms/internal/revalidate"
	"github.com/goliatone/go-sitecms/internal/transfer"
)

const (
	exportMessageType     = "sitecms.transfer.export"
	importMessageType     = "sitecms.transfer.import"
	revalidateMessageType = "sitecms.revalidate"
)

// ExportSiteCommand reads every managed collection into a snapshot.
type ExportSiteCommand struct {
	ResultCallback func(transfer.Snapshot) `json:"-"`
}

func (ExportSiteCommand) Type() string { return exportMessageType }

func (ExportSiteCommand) Validate() error { return nil }

// ImportSiteCommand replaces managed collections with a JSON snapshot.
type ImportSiteCommand struct {
	Snapshot       []byte                `json:"snapshot"`
	ResultCallback func(transfer.Report) `json:"-"`
}

func (ImportSiteCommand) Type() string { return importMessageType }

func (m ImportSiteCommand) Validate() error {
	if len(strings.TrimSpace(string(m.Snapshot))) == 0 {
		return validation.Errors{
			"snapshot": validation.NewError("sitecms.transfer.import.snapshot_required", "snapshot must not be empty"),
		}
	}
	return nil
}

// RevalidateCommand issues a revalidation marker. Without a content type the
// whole site is marked stale.
type RevalidateCommand struct {
	ContentType string `json:"content_type,omitempty"`
}

func (RevalidateCommand) Type() string { return revalidateMessageType }

func (m RevalidateCommand) Validate() error {
	contentType := strings.TrimSpace(m.ContentType)
	if contentType == "" || len(revalidate.TargetsFor(contentType)) > 0 {
		return nil
	}
	return validation.Errors{
		"content_type": validation.NewError("sitecms.revalidate.content_type_unknown", "content type has no dependent routes"),
	}
}
