package slidewise

import "github.com/slidewise/slidewise/ocr"

// ExtractOptions holds configuration for text extraction.
type ExtractOptions struct {
	// Slide selection (1-indexed in API, stored as-is)
	slides []int

	// Content filtering
	includeNotes   bool
	slideNumbers   bool
	excludeFooters bool

	// OCR client for image text recognition, nil when disabled
	ocrClient *ocr.Client
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		slides:         nil, // nil means all slides
		includeNotes:   false,
		slideNumbers:   false,
		excludeFooters: false,
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		includeNotes:   o.includeNotes,
		slideNumbers:   o.slideNumbers,
		excludeFooters: o.excludeFooters,
		ocrClient:      o.ocrClient,
	}

	if o.slides != nil {
		newOpts.slides = make([]int, len(o.slides))
		copy(newOpts.slides, o.slides)
	}

	return newOpts
}
