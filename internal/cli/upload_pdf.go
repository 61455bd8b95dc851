package cli

import (
	"context"

	"github.com/amphora/patentsafe-submit/httpx"
	"github.com/amphora/patentsafe-submit/patentsafe"
)

const UploadPDFName = "patentsafe-upload-pdf"

// UploadPDF returns the command uploading a PDF document:
//
//	patentsafe-upload-pdf [flags] ps_hostname authorId file.pdf
func UploadPDF() *Command {
	var destination string

	cmd := newCommand(UploadPDFName, []string{"ps_hostname", "authorId", "file.pdf"},
		func(ctx context.Context, env *environment, args []string) (*httpx.Response, error) {
			return env.client.UploadPDF(ctx, &patentsafe.PDFSubmission{
				Host:        args[0],
				AuthorID:    args[1],
				Destination: destination,
				File:        args[2],
			})
		})

	cmd.flags.StringVar(&destination, "destination", patentsafe.DefaultPDFDestination, "where PatentSafe files the document")

	return cmd
}
