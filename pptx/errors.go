package pptx

import "errors"

// Sentinel errors for the package codec. Structural failures that prevent
// establishing the document shape (ErrPackageUnreadable, ErrManifestMissing)
// abort a parse; the rest classify per-unit failures that are recovered
// locally and surface as warnings.
var (
	// ErrPackageUnreadable indicates the input is not a valid zip archive
	// or lacks the minimal package structure.
	ErrPackageUnreadable = errors.New("pptx: not a valid package archive")

	// ErrManifestMissing indicates the core structural XML (presentation
	// manifest) is absent or unparseable. Fatal to the whole parse.
	ErrManifestMissing = errors.New("pptx: presentation manifest missing or malformed")

	// ErrSlidePartMissing indicates an expected slide part is absent. The
	// slide is skipped with a warning; not fatal to the document.
	ErrSlidePartMissing = errors.New("pptx: slide part missing")

	// ErrMediaUnresolvable indicates a picture's relationship target is
	// absent. The image element is dropped; not fatal.
	ErrMediaUnresolvable = errors.New("pptx: media target missing")

	// ErrThemeMissing indicates the theme part is absent or malformed. The
	// built-in default theme is substituted; never fatal.
	ErrThemeMissing = errors.New("pptx: theme part missing")

	// ErrExportFailed indicates a document attribute violates the
	// exporter's assumptions (e.g. non-positive canvas dimensions). Fatal
	// to that export call only.
	ErrExportFailed = errors.New("pptx: export failed")
)

// WarningCode classifies a non-fatal degradation encountered while parsing.
type WarningCode string

const (
	WarnSlideSkipped WarningCode = "slide-skipped"
	WarnMediaDropped WarningCode = "media-dropped"
	WarnThemeDefault WarningCode = "theme-default"
	WarnNotesDropped WarningCode = "notes-dropped"
)

// Warning records a non-fatal issue. Parsing continued; the offending unit
// was omitted or defaulted.
type Warning struct {
	Code    WarningCode
	Message string
}
