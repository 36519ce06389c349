package usecase

import (
	"strings"

	"github.com/sglre6355/vacancy-alert/internal/domain"
)

// DefaultFullMarker is the icon class fragment of the cross-mark glyph shown on booked-out days.
const DefaultFullMarker = "fa-xmark"

// MarkerClassifier marks a day full only when its status icon carries the cross-mark. A missing
// date element or icon counts as available.
type MarkerClassifier struct {
	fullMarker string
}

// NewMarkerClassifier returns a classifier matching fullMarker in the icon class. An empty marker
// selects DefaultFullMarker.
func NewMarkerClassifier(fullMarker string) *MarkerClassifier {
	if fullMarker == "" {
		fullMarker = DefaultFullMarker
	}
	return &MarkerClassifier{fullMarker: fullMarker}
}

// Classify applies the cross-mark rule to snapshot.
func (c *MarkerClassifier) Classify(snapshot domain.PageSnapshot) domain.Classification {
	result := domain.Classification{
		Status:           domain.StatusAvailable,
		IconClass:        snapshot.IconClass,
		IconFound:        snapshot.IconFound,
		DateElementFound: snapshot.DateElementFound,
		LinkHint:         snapshot.LinkHref,
		ClassSample:      snapshot.ClassSample,
	}

	if snapshot.Failure != "" {
		result.Status = domain.StatusUnknown
		result.Reason = snapshot.Failure
		return result
	}

	if snapshot.IconFound && strings.Contains(snapshot.IconClass, c.fullMarker) {
		result.Status = domain.StatusFull
	}

	return result
}
