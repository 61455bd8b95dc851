package patentsafe

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/inhies/go-bytesize"
	"github.com/samber/lo"

	"github.com/amphora/patentsafe-submit/errorx"
	"github.com/amphora/patentsafe-submit/multipartx"
)

const (
	HTTPRetrievalPath = "/submit/http-retrieval"
	PDFUploadPath     = "/submit/pdf.jspa"

	// SubmissionDateLayout accepts the yyyy-m-d HH:MM:ss dates PatentSafe understands.
	SubmissionDateLayout = "2006-1-2 15:04:05"

	DefaultPDFDestination = "searchable"
)

// Form field names understood by the PatentSafe submission endpoints.
const (
	FieldURLTarget      = "urlTarget"
	FieldAuthorID       = "authorId"
	FieldMetadata       = "metadata"
	FieldURLQuery       = "urlQuery"
	FieldSummary        = "summary"
	FieldQueue          = "queue"
	FieldSubmissionDate = "submissionDate"
	FieldValidateAuthor = "validateAuthor"
	FieldAttachment     = "attachment"
	FieldDestination    = "destination"
	FieldPDFContent     = "pdfContent"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// URLSubmission asks PatentSafe to retrieve a document from a configured target and file it
// for an author.
type URLSubmission struct {
	Host           string `validate:"required,excludesall=/?#@"`
	AuthorID       string `validate:"required"`
	Target         string `validate:"required"`
	URLQuery       string
	Summary        string
	Queue          string
	SubmissionDate string
	Metadata       []Tag    `validate:"dive"`
	Attachments    []string `validate:"dive,required"`
	ValidateAuthor bool
}

func (s *URLSubmission) Validate() error {
	if err := validate.Struct(s); err != nil {
		return errorx.InvalidArgumentErrorf("invalid submission").WithCause(err)
	}
	if s.SubmissionDate != "" {
		if _, err := time.Parse(SubmissionDateLayout, s.SubmissionDate); err != nil {
			return errorx.InvalidArgumentErrorf("submission date %q must be in the form yyyy-m-dd HH:MM:ss", s.SubmissionDate).WithCause(err)
		}
	}
	return nil
}

// Form builds the multipart form of the submission. Attachments are read completely; a file that
// cannot be read or is larger than maxAttachmentSize fails the whole form. A zero
// maxAttachmentSize means no limit.
func (s *URLSubmission) Form(maxAttachmentSize bytesize.ByteSize) (*multipartx.Form, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	metadata, err := EncodeMetadata(s.Metadata)
	if err != nil {
		return nil, err
	}

	validateAuthor := ""
	if s.ValidateAuthor {
		validateAuthor = "true"
	}

	form, err := multipartx.New()
	if err != nil {
		return nil, err
	}

	form.AddField(FieldURLTarget, s.Target)
	form.AddField(FieldAuthorID, s.AuthorID)

	optional := []multipartx.Field{
		{Name: FieldMetadata, Value: metadata},
		{Name: FieldURLQuery, Value: s.URLQuery},
		{Name: FieldSummary, Value: s.Summary},
		{Name: FieldQueue, Value: s.Queue},
		{Name: FieldSubmissionDate, Value: s.SubmissionDate},
		{Name: FieldValidateAuthor, Value: validateAuthor},
	}
	for _, f := range lo.Filter(optional, func(f multipartx.Field, _ int) bool { return f.Value != "" }) {
		form.AddField(f.Name, f.Value)
	}

	for _, path := range s.Attachments {
		if err := addAttachment(form, FieldAttachment, path, maxAttachmentSize); err != nil {
			return nil, err
		}
	}

	return form, nil
}

// PDFSubmission uploads a finished PDF document for an author.
type PDFSubmission struct {
	Host        string `validate:"required,excludesall=/?#@"`
	AuthorID    string `validate:"required"`
	Destination string
	File        string `validate:"required"`
}

func (s *PDFSubmission) Validate() error {
	if err := validate.Struct(s); err != nil {
		return errorx.InvalidArgumentErrorf("invalid pdf submission").WithCause(err)
	}
	return nil
}

func (s *PDFSubmission) Form(maxAttachmentSize bytesize.ByteSize) (*multipartx.Form, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	form, err := multipartx.New()
	if err != nil {
		return nil, err
	}

	form.AddField(FieldAuthorID, s.AuthorID)
	form.AddField(FieldDestination, lo.Ternary(s.Destination != "", s.Destination, DefaultPDFDestination))

	if err := addAttachment(form, FieldPDFContent, s.File, maxAttachmentSize); err != nil {
		return nil, err
	}

	return form, nil
}

func addAttachment(form *multipartx.Form, fieldName, path string, maxSize bytesize.ByteSize) error {
	if maxSize > 0 {
		stats, err := os.Stat(path)
		if err == nil && !stats.IsDir() && bytesize.New(float64(stats.Size())) > maxSize {
			return errorx.PayloadTooLargeErrorf("attachment %q is %s, larger than the maximum of %s",
				path, bytesize.New(float64(stats.Size())), maxSize)
		}
	}
	return form.AddFileFromPath(fieldName, path)
}
