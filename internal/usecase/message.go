package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/sglre6355/vacancy-alert/internal/domain"
)

const (
	runAtLayout      = "2006-01-02T15:04:05.000Z07:00"
	classSampleLimit = 10
)

// ComposeMessage renders the notification text for a classification.
func ComposeMessage(
	result domain.Classification,
	runAt time.Time,
	target domain.Target,
	venueTag string,
) string {
	var b strings.Builder

	switch result.Status {
	case domain.StatusAvailable:
		writeHeader(&b, venueTag, target, "空き出たかも", runAt)
		fmt.Fprintf(&b, "確認URL:\n%s\n", target.URL)
		if result.LinkHint != "" {
			fmt.Fprintf(&b, "\nリンク候補:\n%s\n", result.LinkHint)
		}
	case domain.StatusFull:
		writeHeader(&b, venueTag, target, "満席でした（×）", runAt)
		fmt.Fprintf(&b, "確認URL:\n%s\n", target.URL)
		icon := "n/a"
		if result.IconFound && result.IconClass != "" {
			icon = result.IconClass
		}
		fmt.Fprintf(&b, "icon: %s", icon)
	default:
		writeHeader(&b, venueTag, target, "判定失敗", runAt)
		reason := result.Reason
		if reason == "" {
			reason = "unknown"
		}
		fmt.Fprintf(&b, "reason: %s\n", reason)
		fmt.Fprintf(&b, "確認URL:\n%s\n", target.URL)
		if len(result.ClassSample) > 0 {
			sample := result.ClassSample
			if len(sample) > classSampleLimit {
				sample = sample[:classSampleLimit]
			}
			fmt.Fprintf(&b, "pClasses(sample): %s", strings.Join(sample, ", "))
		}
	}

	return b.String()
}

func writeHeader(b *strings.Builder, venueTag string, target domain.Target, headline string, runAt time.Time) {
	fmt.Fprintf(b, "%s%s %s\n", venueTag, target.DateLabel, headline)
	fmt.Fprintf(b, "runAt: %s\n", runAt.UTC().Format(runAtLayout))
}
