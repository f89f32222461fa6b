package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/uploadkit/core/logger"
	"github.com/dmitrymomot/uploadkit/core/storage"
)

// Processor binds an Uploader to one result shape and its field
// declarations. It is immutable and safe for concurrent use; all
// per-request state lives inside Process.
type Processor struct {
	uploader *Uploader
	shape    Shape
	wildcard bool
	fields   []Field
}

func newProcessor(u *Uploader, shape Shape, wildcard bool, fields ...Field) *Processor {
	return &Processor{uploader: u, shape: shape, wildcard: wildcard, fields: fields}
}

// requestState is the mutable state of one Process call.
type requestState struct {
	limits Limits
	adm    *limiter
	coll   *collector
	res    *Result
	stored []*storage.File
	fields int
	files  int
	parts  int
}

// Process consumes the request's multipart body part by part without
// buffering it. Ordinary fields are collected into Result.Fields; file
// parts run through admission, the filter, and the storage engine in that
// order. Files turned away by admission are drained and recorded in
// Result.Rejected without failing the request.
//
// On a fatal error every file already committed is removed (best effort,
// failures logged) before the error returns. The Result is never nil: on
// failure it still carries the ordinary fields parsed up to that point
// and no files.
func (p *Processor) Process(r *http.Request) (res *Result, err error) {
	res = &Result{Fields: url.Values{}}

	st := &requestState{
		limits: p.uploader.limits.normalized(),
		adm:    newLimiter(p.fields, p.wildcard),
		coll:   newCollector(p.shape, p.fields),
		res:    res,
	}

	// Guaranteed release: whatever was committed before a fatal error is
	// removed before that error reaches the caller.
	defer func() {
		if err != nil {
			p.cleanup(r.Context(), st.stored)
		}
	}()

	if err = p.validate(); err != nil {
		return res, err
	}

	mr, mrErr := r.MultipartReader()
	if mrErr != nil {
		return res, fmt.Errorf("upload: open multipart reader: %w", mrErr)
	}

	for {
		part, perr := mr.NextPart()
		if errors.Is(perr, io.EOF) {
			break
		}
		if perr != nil {
			return res, fmt.Errorf("upload: next part: %w", perr)
		}
		if err = p.consumePart(r, part, st); err != nil {
			return res, err
		}
	}

	st.coll.apply(res)
	return res, nil
}

// validate rejects declarations the pipeline cannot run with.
func (p *Processor) validate() error {
	for _, f := range p.fields {
		if f.Name == "" {
			return optionsError("empty field name in declaration")
		}
	}
	return nil
}

func (p *Processor) consumePart(r *http.Request, part *multipart.Part, st *requestState) error {
	st.parts++
	if st.limits.Parts > 0 && st.parts > st.limits.Parts {
		return newError(CodePartCount, "")
	}

	name := part.FormName()
	if name == "" {
		// Unnamed parts are skipped, matching standard form semantics.
		part.Close()
		return nil
	}
	if len(name) > st.limits.FieldNameSize {
		return newError(CodeFieldKey, "")
	}

	if filename, isFile := partFilename(part); isFile {
		st.files++
		if st.limits.Files > 0 && st.files > st.limits.Files {
			return newError(CodeFileCount, name)
		}
		return p.consumeFile(r, part, name, filename, st)
	}

	st.fields++
	if st.limits.Fields > 0 && st.fields > st.limits.Fields {
		return newError(CodeFieldCount, name)
	}
	return p.consumeField(part, name, st)
}

func (p *Processor) consumeField(part *multipart.Part, name string, st *requestState) error {
	var buf strings.Builder
	// One byte past the cap distinguishes at-limit from over-limit.
	n, err := io.Copy(&buf, io.LimitReader(part, st.limits.FieldSize+1))
	if err != nil {
		return fmt.Errorf("upload: read field %q: %w", name, err)
	}
	if n > st.limits.FieldSize {
		return newError(CodeFieldSize, name)
	}
	st.res.Fields.Add(name, buf.String())
	return nil
}

func (p *Processor) consumeFile(r *http.Request, part *multipart.Part, name, filename string, st *requestState) error {
	// A file under the fields-only shape is a hard failure, not a
	// skippable extra.
	if p.shape == ShapeNone {
		return newError(CodeUnexpectedFile, name)
	}

	info := storage.PartInfo{
		FieldName: name,
		MIMEType:  part.Header.Get("Content-Type"),
		Encoding:  part.Header.Get("Content-Transfer-Encoding"),
	}
	if info.MIMEType == "" {
		info.MIMEType = "application/octet-stream"
	}
	if p.uploader.preservePath {
		info.Filename = storage.SanitizePath(filename)
	} else {
		info.Filename = storage.Sanitize(filename)
	}

	if !st.adm.admit(name) {
		st.res.Rejected = append(st.res.Rejected, newError(CodeUnexpectedFile, name))
		// Drain the rejected part so the next boundary is reachable.
		part.Close()
		return nil
	}

	accept, ferr := p.uploader.filter(r, info)
	if ferr != nil {
		return wrapError(CodeFilter, name, ferr)
	}
	if !accept {
		part.Close()
		return nil
	}

	var body io.Reader = part
	var capped *sizeCapReader
	if st.limits.FileSize > 0 {
		capped = newSizeCapReader(part, st.limits.FileSize)
		body = capped
	}

	file, serr := p.uploader.engine.Save(r.Context(), &storage.Part{PartInfo: info, Body: body})
	if serr != nil {
		if capped != nil && capped.exceeded {
			return newError(CodeFileSize, name)
		}
		return wrapError(CodeStorage, name, serr)
	}
	if capped != nil && capped.exceeded {
		// The engine reported success despite the failed read; drop the
		// artifact and report the limit.
		p.removeFile(r.Context(), file)
		return newError(CodeFileSize, name)
	}

	st.stored = append(st.stored, file)
	if aerr := st.coll.add(file); aerr != nil {
		return aerr
	}
	return nil
}

// partFilename extracts the raw filename parameter of the part's
// Content-Disposition header. The stdlib accessor strips directory
// components, which would defeat preservePath, so the header is parsed
// directly. The second return distinguishes a file part from an ordinary
// field.
func partFilename(part *multipart.Part) (string, bool) {
	cd := part.Header.Get("Content-Disposition")
	if cd == "" {
		return "", false
	}
	_, params, err := mime.ParseMediaType(cd)
	if err != nil {
		fallback := part.FileName()
		return fallback, fallback != ""
	}
	filename, ok := params["filename"]
	return filename, ok && filename != ""
}

// cleanup removes every file committed before a fatal error. It runs on a
// detached context; the request's own context is usually already dead
// when unwinding a disconnect.
func (p *Processor) cleanup(ctx context.Context, stored []*storage.File) {
	if len(stored) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)
	for _, file := range stored {
		p.removeFile(ctx, file)
	}
}

// removeFile is best-effort removal. Failures are logged as cleanup
// errors and never replace the primary failure.
func (p *Processor) removeFile(ctx context.Context, file *storage.File) {
	if err := p.uploader.engine.Remove(ctx, file); err != nil {
		p.uploader.logger.ErrorContext(ctx, "stored file cleanup failed",
			logger.Component("upload"),
			logger.FieldName(file.FieldName),
			logger.Filename(file.Filename),
			logger.Error(wrapError(CodeCleanup, file.FieldName, err)),
		)
	}
}
