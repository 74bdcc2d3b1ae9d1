package ocr

import (
	"testing"

	"github.com/slidewise/slidewise/model"
)

func TestRecognizeElement_EmptyPayload(t *testing.T) {
	c := &Client{}

	text, err := c.RecognizeElement(nil)
	if err != nil || text != "" {
		t.Errorf("RecognizeElement(nil) = %q, %v, want empty", text, err)
	}

	text, err = c.RecognizeElement(&model.Image{})
	if err != nil || text != "" {
		t.Errorf("RecognizeElement(empty image) = %q, %v, want empty", text, err)
	}
}

func TestClientLifecycle(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
}
