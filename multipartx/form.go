package multipartx

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/amphora/patentsafe-submit/errorx"
)

// Field is a plain text part of a form.
type Field struct {
	Name  string
	Value string
}

// File is a part carrying the full content of an attached file.
type File struct {
	FieldName   string
	FileName    string
	ContentType string
	Body        []byte
}

// Form accumulates the fields and files of a multipart/form-data message.
//
// Parts are written in the order they were added, all fields before all files. The boundary is
// chosen once when the Form is created and is not checked against the content it frames.
type Form struct {
	boundary string
	fields   []Field
	files    []File
}

// New returns an empty Form with a random boundary.
func New() (*Form, error) {
	boundary, err := randomBoundary()
	if err != nil {
		return nil, err
	}
	return NewWithBoundary(boundary)
}

// NewWithBoundary returns an empty Form using the given boundary.
func NewWithBoundary(boundary string) (*Form, error) {
	if err := ValidateBoundary(boundary); err != nil {
		return nil, err
	}
	return &Form{boundary: boundary}, nil
}

// Boundary returns the token framing the parts.
func (f *Form) Boundary() string {
	return f.boundary
}

// ContentType returns the value for the Content-Type header of the request carrying this form.
func (f *Form) ContentType() string {
	return "multipart/form-data; boundary=" + f.boundary
}

// AddField adds a text part. Repeated names are all kept.
func (f *Form) AddField(name, value string) {
	f.fields = append(f.fields, Field{Name: name, Value: value})
}

// AddFile adds a file part. When contentType is omitted or empty it is inferred from the
// extension of fileName.
func (f *Form) AddFile(fieldName, fileName string, body []byte, contentType ...string) {
	ct := ""
	if len(contentType) > 0 {
		ct = contentType[0]
	}
	if ct == "" {
		ct = ContentTypeByExtension(fileName)
	}
	f.files = append(f.files, File{
		FieldName:   fieldName,
		FileName:    fileName,
		ContentType: ct,
		Body:        body,
	})
}

// AddFileFromPath reads the whole file at path and adds it under its base name.
func (f *Form) AddFileFromPath(fieldName, path string) error {
	stats, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errorx.NotFoundErrorf("attachment %q does not exist", path).WithCause(err)
		}
		return errorx.InternalErrorf("cannot stat attachment %q", path).WithCause(err)
	}
	if stats.IsDir() {
		return errorx.InvalidArgumentErrorf("attachment %q is a directory", path)
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return errorx.InternalErrorf("cannot read attachment %q", path).WithCause(err)
	}

	f.AddFile(fieldName, filepath.Base(path), body)
	return nil
}

// Fields returns a copy of the fields in insertion order.
func (f *Form) Fields() []Field {
	return append([]Field(nil), f.fields...)
}

// Files returns a copy of the files in insertion order.
func (f *Form) Files() []File {
	return append([]File(nil), f.files...)
}

// Names and file names are written verbatim between double quotes, except for the three bytes
// that would end the quoted string or the header line.
var headerValueEscaper = strings.NewReplacer(`"`, "%22", "\r", "%0D", "\n", "%0A")

func escapeHeaderValue(s string) string {
	return headerValueEscaper.Replace(s)
}

// Content types are not quoted, so only line breaks are encoded. Quoted parameters such as
// charset="utf-8" pass through.
var contentTypeEscaper = strings.NewReplacer("\r", "%0D", "\n", "%0A")

func (f *Form) delimiter() string {
	return "--" + f.boundary + "\r\n"
}

func (f *Form) closeDelimiter() string {
	return "--" + f.boundary + "--\r\n"
}

func fieldHeader(field Field) string {
	return `Content-Disposition: form-data; name="` + escapeHeaderValue(field.Name) + "\"\r\n\r\n"
}

func fileHeader(file File) string {
	return `Content-Disposition: file; name="` + escapeHeaderValue(file.FieldName) +
		`"; filename="` + escapeHeaderValue(file.FileName) + "\"\r\n" +
		"Content-Type: " + contentTypeEscaper.Replace(file.ContentType) + "\r\n\r\n"
}

// Len returns the exact number of bytes WriteTo produces.
func (f *Form) Len() int64 {
	delimiter := int64(len(f.delimiter()))
	size := int64(len(f.closeDelimiter()))
	for _, field := range f.fields {
		size += delimiter + int64(len(fieldHeader(field))+len(field.Value)+2)
	}
	for _, file := range f.files {
		size += delimiter + int64(len(fileHeader(file))+len(file.Body)+2)
	}
	return size
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) write(p []byte) {
	if c.err != nil {
		return
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
}

func (c *countingWriter) writeString(s string) {
	if c.err != nil {
		return
	}
	n, err := io.WriteString(c.w, s)
	c.n += int64(n)
	c.err = err
}

// WriteTo writes the encoded message to w.
func (f *Form) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	delimiter := f.delimiter()

	for _, field := range f.fields {
		cw.writeString(delimiter)
		cw.writeString(fieldHeader(field))
		cw.writeString(field.Value)
		cw.writeString("\r\n")
	}

	for _, file := range f.files {
		cw.writeString(delimiter)
		cw.writeString(fileHeader(file))
		cw.write(file.Body)
		cw.writeString("\r\n")
	}

	cw.writeString(f.closeDelimiter())
	return cw.n, cw.err
}

// Bytes returns the encoded message.
func (f *Form) Bytes() []byte {
	var b bytes.Buffer
	b.Grow(int(f.Len()))
	// bytes.Buffer writes do not fail
	_, _ = f.WriteTo(&b)
	return b.Bytes()
}
