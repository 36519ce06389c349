package domain

// PageSnapshot is what a rendered page showed for the monitored date at inspection time.
type PageSnapshot struct {
	DateElementFound bool
	IconFound        bool
	IconClass        string
	// LinkHref is an absolute reservation link for the date, empty when none was found.
	LinkHref    string
	ClassSample []string
	// Failure is set when the page was readable but the date lookup itself failed.
	Failure string
}
