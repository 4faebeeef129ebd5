package utils

import (
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fileHeaderWithType(contentType string) *multipart.FileHeader {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", contentType)
	return &multipart.FileHeader{Filename: "id.bin", Header: header}
}

func TestIsAllowedIDProofType(t *testing.T) {
	for _, allowed := range []string{"image/jpeg", "image/png", "image/webp", "application/pdf"} {
		assert.True(t, IsAllowedIDProofType(fileHeaderWithType(allowed)), allowed)
	}
	for _, blocked := range []string{"application/x-msdownload", "text/html", "image/svg+xml", ""} {
		assert.False(t, IsAllowedIDProofType(fileHeaderWithType(blocked)), blocked)
	}
}

func TestGetFileURL(t *testing.T) {
	assert.Equal(t, "", GetFileURL(""))
	assert.Equal(t, "/uploads/20260815093000.png", GetFileURL("uploads/idproofs/20260815093000.png"))
	assert.Equal(t, "/uploads/id.pdf", GetFileURL("id.pdf"))
}
