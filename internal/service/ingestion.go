package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"recipeapi/internal/dataset"
	"recipeapi/internal/model"
	"recipeapi/internal/storage"
)

const cleanupTimeout = 5 * time.Second

var tracer = otel.Tracer("recipeapi/internal/service")

// Ingestor turns one uploaded file into a RecordSet.
type Ingestor interface {
	// Ingest stores r under a fresh scratch key, decodes it as CSV and removes the scratch object
	// before returning, whether decoding succeeded or not.
	Ingest(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (model.RecordSet, error)
}

type ingestor struct {
	store storage.Storage
}

// NewIngestor constructs an Ingestor backed by the given scratch storage.
func NewIngestor(store storage.Storage) Ingestor {
	return &ingestor{store: store}
}

func (s *ingestor) Ingest(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (set model.RecordSet, err error) {
	if r == nil {
		return model.RecordSet{}, ErrReaderNil
	}

	key := scratchKey(originalFilename)

	ctx, span := tracer.Start(ctx, "ingest")
	span.SetAttributes(attribute.String("scratch.key", key), attribute.Int64("upload.size", size))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "ingest failed")
		} else {
			span.SetAttributes(attribute.Int("csv.rows", set.Len()))
		}
		span.End()
	}()

	// Registered before Put so a partially written object is removed too.
	defer func() {
		delCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
		defer cancel()
		delErr := s.store.Delete(delCtx, key)
		if delErr == nil {
			return
		}
		var ie *IngestionError
		if errors.As(err, &ie) {
			ie.Err = errors.Join(ie.Err, fmt.Errorf("cleanup: %w", delErr))
			return
		}
		set = model.RecordSet{}
		err = &IngestionError{Op: "delete", Kind: ErrStorage, Err: delErr}
	}()

	if _, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	}); err != nil {
		return model.RecordSet{}, &IngestionError{Op: "put", Kind: ErrStorage, Err: err}
	}

	rc, _, err := s.store.Get(ctx, key)
	if err != nil {
		return model.RecordSet{}, &IngestionError{Op: "get", Kind: ErrStorage, Err: err}
	}
	defer rc.Close()

	set, err = dataset.Decode(rc)
	if err != nil {
		return model.RecordSet{}, &IngestionError{Op: "decode", Kind: ErrCSVDecode, Err: err}
	}
	return set, nil
}

// scratchKey returns uploads/<uuid><ext>, keeping the upload's extension only when it is short
// and alphanumeric.
func scratchKey(originalFilename string) string {
	ext := strings.ToLower(path.Ext(originalFilename))
	if len(ext) < 2 || len(ext) > 8 || strings.IndexFunc(ext[1:], func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < '0' || r > '9')
	}) >= 0 {
		ext = ""
	}
	return "uploads/" + uuid.New().String() + ext
}
