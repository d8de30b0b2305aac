package services

import (
	"bytes"
	"errors"
	"fmt"
)

// xlsxMagic is the ZIP signature; an XLSX workbook is a ZIP container.
var xlsxMagic = []byte{0x50, 0x4B, 0x03, 0x04}

// FeedValidator guards the loader against corrupt exports: a CSV feed must
// look like text, a supplementary workbook must carry the XLSX signature,
// and neither may exceed the configured size.
type FeedValidator struct {
	maxSizeBytes int64
}

// NewFeedValidator creates a validator with the specified maximum file size.
// A zero maxSizeBytes disables the size check.
func NewFeedValidator(maxSizeBytes int64) *FeedValidator {
	return &FeedValidator{maxSizeBytes: maxSizeBytes}
}

// ValidateCSV checks that data plausibly is a delimited text export.
func (v *FeedValidator) ValidateCSV(data []byte) error {
	if err := v.validateSize(int64(len(data))); err != nil {
		return err
	}
	if !isTextContent(data) {
		return errors.New("export is not a text file")
	}
	return nil
}

// ValidateWorkbook checks that data carries the XLSX container signature.
func (v *FeedValidator) ValidateWorkbook(data []byte) error {
	if err := v.validateSize(int64(len(data))); err != nil {
		return err
	}
	if !bytes.HasPrefix(data, xlsxMagic) {
		return errors.New("spreadsheet is not an XLSX workbook")
	}
	return nil
}

func (v *FeedValidator) validateSize(size int64) error {
	if size == 0 {
		return errors.New("empty file")
	}
	if v.maxSizeBytes > 0 && size > v.maxSizeBytes {
		return fmt.Errorf("file size (%d bytes) exceeds maximum allowed size (%d bytes)", size, v.maxSizeBytes)
	}
	return nil
}

// isTextContent checks whether data appears to be text (for CSV detection)
func isTextContent(data []byte) bool {
	// Check first 512 bytes (or less if file is smaller)
	checkLen := len(data)
	if checkLen > 512 {
		checkLen = 512
	}

	sample := data[:checkLen]

	// Text files shouldn't have null bytes
	if bytes.Contains(sample, []byte{0x00}) {
		return false
	}

	// Count bytes outside the control range; accented UTF-8 text still passes
	printable := 0
	for _, b := range sample {
		if b >= 0x20 || b == 0x09 || b == 0x0A || b == 0x0D {
			printable++
		}
	}

	return float64(printable)/float64(len(sample)) > 0.95
}
