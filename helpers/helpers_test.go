package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sanitizeTest struct {
	name     string
	expected string
}

var sanitizeTests = []sanitizeTest{
	{name: "My Flyer #1.PNG", expected: "my_flyer_1.png"},
	{name: "flyer.jpg", expected: "flyer.jpg"},
	{name: "  spaced  out.gif", expected: "__spaced__out.gif"},
	{name: "../../etc/passwd", expected: "....etcpasswd"},
	{name: "summer-sale_2024.jpeg", expected: "summer-sale_2024.jpeg"},
	{name: "é!@$%", expected: ""},
}

type unsubscribedTest struct {
	value    string
	expected bool
}

var unsubscribedTests = []unsubscribedTest{
	{value: "true", expected: true},
	{value: "TRUE", expected: true},
	{value: " true ", expected: true},
	{value: "True\t", expected: true},
	{value: "false", expected: false},
	{value: "", expected: false},
	{value: "yes", expected: false},
	{value: "1", expected: false},
}

func TestHelpers(t *testing.T) {
	t.Run("sanitize file name", func(t *testing.T) {
		for _, test := range sanitizeTests {
			assert.Equal(t, test.expected, SanitizeFileName(test.name), "unexpected key for name=%s", test.name)
		}
	})

	t.Run("is unsubscribed", func(t *testing.T) {
		for _, test := range unsubscribedTests {
			assert.Equal(t, test.expected, IsUnsubscribed(test.value), "unexpected flag for value=%q", test.value)
		}
	})

	t.Run("content type from file name", func(t *testing.T) {
		assert.Equal(t, "image/png", ContentTypeFromFileName("my_flyer_1.png"))
		assert.Equal(t, "image/jpeg", ContentTypeFromFileName("flyer.jpg"))
		assert.Equal(t, "", ContentTypeFromFileName("flyer"))
		assert.Equal(t, "", ContentTypeFromFileName("flyer.nosuchext"))
	})

	t.Run("column index ignores case", func(t *testing.T) {
		header := []string{"Phone", " Name", "UNSUBSCRIBED "}
		assert.Equal(t, 0, ColumnIndex(header, "phone"))
		assert.Equal(t, 2, ColumnIndex(header, "Unsubscribed"))
		assert.Equal(t, -1, ColumnIndex(header, "email"))
	})

	t.Run("base64 round trip", func(t *testing.T) {
		decoded, err := Base64Decode(Base64Encode("flyer bytes"))
		assert.NoError(t, err, "error on Base64Decode: %v", err)
		assert.Equal(t, "flyer bytes", string(decoded))

		_, err = Base64Decode("not base64!")
		assert.Error(t, err, "expected an error decoding invalid base64")
	})

	t.Run("is localhost url", func(t *testing.T) {
		assert.True(t, IsLocalhostURL("http://localhost:4566"))
		assert.True(t, IsLocalhostURL("http://127.0.0.1:9000"))
		assert.False(t, IsLocalhostURL("https://s3.amazonaws.com"))
	})
}
