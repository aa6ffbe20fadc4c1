package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const newsletter = "From: deals@example.com\r\n" +
	"To: me@example.com\r\n" +
	"Subject: Weekend picks\r\n" +
	"MIME-Version: 1.0\r\n" +
	"Content-Type: multipart/alternative; boundary=\"XYZ\"\r\n" +
	"\r\n" +
	"--XYZ\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"Plain version\r\n" +
	"--XYZ\r\n" +
	"Content-Type: text/html; charset=utf-8\r\n" +
	"Content-Transfer-Encoding: quoted-printable\r\n" +
	"\r\n" +
	"<div class=3D\"hotel-card\"><h3>Harbour Inn</h3><span class=3D\"hotel-location\">=\r\n" +
	"Sunny Bay</span></div>\r\n" +
	"--XYZ--\r\n"

func TestExtractHTML_Multipart(t *testing.T) {
	body, err := extractHTML([]byte(newsletter))
	require.NoError(t, err)
	assert.Contains(t, body, `<div class="hotel-card"><h3>Harbour Inn</h3>`)
	assert.Contains(t, body, `<span class="hotel-location">Sunny Bay</span>`)

	hotels, err := ParseHotelsHTML(strings.NewReader(body), "", "email")
	require.NoError(t, err)
	require.Len(t, hotels, 1)
	assert.Equal(t, "Harbour Inn", hotels[0].Name)
	assert.Equal(t, "Sunny Bay", hotels[0].Location)
}

func TestExtractHTML_PlainOnly(t *testing.T) {
	raw := "From: a@example.com\r\nSubject: hi\r\nContent-Type: text/plain\r\n\r\nhello\r\n"
	body, err := extractHTML([]byte(raw))
	require.NoError(t, err)
	assert.Empty(t, body)
}

func TestExtractHTML_Empty(t *testing.T) {
	_, err := extractHTML(nil)
	assert.Error(t, err)
}
