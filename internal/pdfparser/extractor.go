package pdfparser

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// PDFExtractor defines the interface for extracting text from PDF files.
// This interface allows for dependency injection and makes the statement
// parser testable without pdftotext installed.
type PDFExtractor interface {
	// ExtractText extracts the text of the PDF file at pdfPath, pages
	// separated by form feeds.
	ExtractText(pdfPath string) (string, error)
}

// RealPDFExtractor implements PDFExtractor using the pdftotext command in
// layout mode, which keeps statement columns on one line.
type RealPDFExtractor struct {
	// Password opens encrypted statements. Empty for unprotected files.
	Password string
}

// NewRealPDFExtractor creates a new RealPDFExtractor instance.
func NewRealPDFExtractor(password string) *RealPDFExtractor {
	return &RealPDFExtractor{Password: password}
}

// ExtractText extracts text from a PDF file using the pdftotext command.
func (e *RealPDFExtractor) ExtractText(pdfPath string) (string, error) {
	args := []string{"-layout"}
	if e.Password != "" {
		args = append(args, "-upw", e.Password)
	}
	args = append(args, pdfPath, "-")

	var stderr bytes.Buffer
	cmd := exec.Command("pdftotext", args...) // #nosec G204 -- fixed binary, user supplied statement path
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("error running pdftotext on %s: %w: %s", pdfPath, err, msg)
		}
		return "", fmt.Errorf("error running pdftotext on %s: %w", pdfPath, err)
	}
	return string(out), nil
}

// MockPDFExtractor implements PDFExtractor for testing purposes.
// It returns predefined text instead of running pdftotext.
type MockPDFExtractor struct {
	MockText string
	MockErr  error
	// Texts overrides MockText per file, keyed by base name.
	Texts map[string]string
	// Calls records the paths passed to ExtractText, in order.
	Calls []string
}

// NewMockPDFExtractor creates a new MockPDFExtractor with the given mock data.
func NewMockPDFExtractor(mockText string, mockErr error) *MockPDFExtractor {
	return &MockPDFExtractor{
		MockText: mockText,
		MockErr:  mockErr,
	}
}

// ExtractText returns the predefined text or error.
func (e *MockPDFExtractor) ExtractText(pdfPath string) (string, error) {
	e.Calls = append(e.Calls, pdfPath)
	if e.MockErr != nil {
		return "", e.MockErr
	}
	if text, ok := e.Texts[filepath.Base(pdfPath)]; ok {
		return text, nil
	}
	return e.MockText, nil
}
