package service

import (
	"context"
	"io"
	"time"

	"recipeapi/internal/model"
)

// UploadService runs the CSV-to-recommendation pipeline for one request.
type UploadService interface {
	// Process ingests the upload, then asks for a recommendation. It returns either a complete
	// result or an error, never a partial result.
	Process(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*model.UploadResult, error)
}

type uploadService struct {
	ingestor    Ingestor
	recommender Recommender
	metrics     *Metrics
}

// NewUploadService constructs a new UploadService. metrics may be nil.
func NewUploadService(ingestor Ingestor, recommender Recommender, metrics *Metrics) UploadService {
	return &uploadService{ingestor: ingestor, recommender: recommender, metrics: metrics}
}

func (s *uploadService) Process(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (res *model.UploadResult, err error) {
	defer func() { s.metrics.observeUpload(err) }()

	set, err := s.ingestor.Ingest(ctx, r, originalFilename, contentType, size)
	if err != nil {
		return nil, err
	}
	s.metrics.observeRows(set.Len())

	start := time.Now()
	text, err := s.recommender.Recommend(ctx, set)
	s.metrics.observeLLM(start)
	if err != nil {
		return nil, err
	}

	return &model.UploadResult{
		UserData:       set.Rows,
		Recommendation: text,
	}, nil
}
