package domain

import "log/slog"

// Status is the tri-state outcome of availability detection.
type Status string

const (
	StatusAvailable Status = "available"
	StatusFull      Status = "full"
	StatusUnknown   Status = "unknown"
)

// Classification is the result of inspecting the rendered availability page once.
type Classification struct {
	Status Status
	// IconClass is the class attribute of the status icon, valid when IconFound is set.
	IconClass        string
	IconFound        bool
	DateElementFound bool
	// Reason explains an unknown classification.
	Reason string
	// LinkHint is a reservation link for the date when one was found on the page.
	LinkHint string
	// ClassSample holds a few paragraph class attributes seen while inspecting the page.
	ClassSample []string
}

// Unknown builds a classification for a page that could not be inspected.
func Unknown(reason string) Classification {
	return Classification{Status: StatusUnknown, Reason: reason}
}

// LogValue renders the classification as a structured log group.
func (c Classification) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("status", string(c.Status)),
		slog.Bool("date_element_found", c.DateElementFound),
	}
	if c.IconFound {
		attrs = append(attrs, slog.String("icon_class", c.IconClass))
	}
	if c.Reason != "" {
		attrs = append(attrs, slog.String("reason", c.Reason))
	}
	if c.LinkHint != "" {
		attrs = append(attrs, slog.String("link_hint", c.LinkHint))
	}
	if len(c.ClassSample) > 0 {
		attrs = append(attrs, slog.Any("class_sample", c.ClassSample))
	}
	return slog.GroupValue(attrs...)
}
