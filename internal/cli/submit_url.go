package cli

import (
	"context"
	"log/slog"

	"github.com/davecgh/go-spew/spew"
	"go.opentelemetry.io/otel/attribute"

	"github.com/amphora/patentsafe-submit/httpx"
	"github.com/amphora/patentsafe-submit/patentsafe"
)

const SubmitURLName = "patentsafe-submit-url"

type submitURLOptions struct {
	urlQuery       string
	summary        string
	metadata       []string
	submissionDate string
	queue          string
	attachments    []string
	validateAuthor bool
}

// SubmitURL returns the command asking PatentSafe to retrieve a document from a URL target:
//
//	patentsafe-submit-url [flags] ps_hostname authorId target
func SubmitURL() *Command {
	opts := &submitURLOptions{}

	cmd := newCommand(SubmitURLName, []string{"ps_hostname", "authorId", "target"}, opts.run)

	flags := cmd.flags
	flags.StringVar(&opts.urlQuery, "urlQuery", "", "query string appended to the target URL")
	flags.StringVar(&opts.summary, "summary", "", "summary of the document")
	flags.StringArrayVar(&opts.metadata, "metadata", nil, "metadata as tag,value, may be repeated")
	flags.StringVar(&opts.submissionDate, "submissionDate", "", "submission date as yyyy-m-dd HH:MM:ss")
	flags.StringVar(&opts.queue, "queue", "", "queue the document is placed in")
	flags.StringArrayVar(&opts.attachments, "attachment", nil, "file attached to the document, may be repeated")
	flags.BoolVar(&opts.validateAuthor, "validateAuthor", false, "ask PatentSafe to check the author exists")

	return cmd
}

func (o *submitURLOptions) run(ctx context.Context, env *environment, args []string) (*httpx.Response, error) {
	tags, err := patentsafe.ParseTags(o.metadata)
	if err != nil {
		return nil, err
	}

	s := &patentsafe.URLSubmission{
		Host:           args[0],
		AuthorID:       args[1],
		Target:         args[2],
		URLQuery:       o.urlQuery,
		Summary:        o.summary,
		Queue:          o.queue,
		SubmissionDate: o.submissionDate,
		Metadata:       tags,
		Attachments:    o.attachments,
		ValidateAuthor: o.validateAuthor,
	}
	if env.logger.Enabled(ctx, slog.LevelDebug) {
		env.logger.Debug(ctx, "url submission", attribute.String("submission", spew.Sdump(s)))
	}

	return env.client.Submit(ctx, s)
}
