package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"mindly-be/internal/dto"
	"mindly-be/internal/entity"
	"mindly-be/internal/pkg/logger"
	"mindly-be/internal/repository/contract"
	"mindly-be/internal/repository/specification"
	"mindly-be/pkg/embedding"
	"mindly-be/pkg/knowledge"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type IKnowledgeService interface {
	Search(ctx context.Context, request *dto.SearchKnowledgeRequest) ([]*dto.KnowledgeResult, error)
	// Enqueue hands documents to the ingestion consumer and returns immediately.
	Enqueue(ctx context.Context, request *dto.IngestDocumentsRequest) (*dto.IngestDocumentsResponse, error)
	// Store embeds and upserts passages synchronously.
	Store(ctx context.Context, passages []knowledge.Passage) (int, error)
	SeedDefaults(ctx context.Context) (int, error)
	LoadPDFs(ctx context.Context, manifest []knowledge.ManifestEntry) knowledge.LoadReport
	List(ctx context.Context, category string, limit, offset int) ([]*entity.KnowledgeDocument, int64, error)
}

type knowledgeService struct {
	repo        contract.KnowledgeRepository
	embedder    embedding.EmbeddingProvider
	publisher   IPublisherService
	logger      logger.ILogger
	defaultTopK int
	parallelism int
}

func NewKnowledgeService(
	repo contract.KnowledgeRepository,
	embedder embedding.EmbeddingProvider,
	publisher IPublisherService,
	log logger.ILogger,
	defaultTopK int,
) IKnowledgeService {
	if defaultTopK <= 0 {
		defaultTopK = 3
	}
	return &knowledgeService{
		repo:        repo,
		embedder:    embedder,
		publisher:   publisher,
		logger:      log,
		defaultTopK: defaultTopK,
		parallelism: 4,
	}
}

func (s *knowledgeService) available() bool {
	return s.repo != nil && s.embedder != nil
}

func (s *knowledgeService) Search(ctx context.Context, request *dto.SearchKnowledgeRequest) ([]*dto.KnowledgeResult, error) {
	if !s.available() {
		return nil, ErrKnowledgeUnavailable
	}
	k := request.K
	if k <= 0 {
		k = s.defaultTopK
	}

	vector, err := s.embedder.Generate(ctx, request.Query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scored, err := s.repo.SearchSimilar(ctx, vector, k, request.Category)
	if err != nil {
		return nil, fmt.Errorf("search knowledge: %w", err)
	}

	results := make([]*dto.KnowledgeResult, len(scored))
	for i, sd := range scored {
		d := sd.Document
		results[i] = &dto.KnowledgeResult{
			Id:         d.Id,
			Key:        d.DocKey,
			Content:    d.Content,
			Category:   d.Category,
			Type:       d.Type,
			Source:     d.Source,
			Similarity: sd.Similarity,
		}
	}
	return results, nil
}

func (s *knowledgeService) Enqueue(ctx context.Context, request *dto.IngestDocumentsRequest) (*dto.IngestDocumentsResponse, error) {
	if !s.available() || s.publisher == nil {
		return nil, ErrKnowledgeUnavailable
	}

	documents := make([]dto.IngestDocument, len(request.Documents))
	for i, d := range request.Documents {
		if strings.TrimSpace(d.Key) == "" {
			d.Key = "user_" + uuid.NewString()
		}
		documents[i] = d
	}

	payload, err := json.Marshal(dto.PublishIngestKnowledgeMessage{Documents: documents})
	if err != nil {
		return nil, err
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		return nil, fmt.Errorf("queue documents: %w", err)
	}

	return &dto.IngestDocumentsResponse{Queued: len(documents)}, nil
}

func (s *knowledgeService) Store(ctx context.Context, passages []knowledge.Passage) (int, error) {
	if !s.available() {
		return 0, ErrKnowledgeUnavailable
	}
	if len(passages) == 0 {
		return 0, nil
	}

	now := time.Now()
	documents := make([]*entity.KnowledgeDocument, len(passages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for i, p := range passages {
		g.Go(func() error {
			vector, err := s.embedder.Generate(gctx, p.Content, embedding.TaskRetrievalDocument)
			if err != nil {
				return fmt.Errorf("embed %s: %w", p.Key, err)
			}
			documents[i] = &entity.KnowledgeDocument{
				Id:             uuid.New(),
				DocKey:         p.Key,
				Content:        p.Content,
				Category:       p.Category,
				Type:           p.Type,
				Source:         p.Source,
				PdfPath:        p.PdfPath,
				EmbeddingValue: vector,
				CreatedAt:      now,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	if err := s.repo.UpsertBulk(ctx, documents); err != nil {
		return 0, fmt.Errorf("store passages: %w", err)
	}

	s.logger.Info("KnowledgeService", "Stored knowledge passages", map[string]interface{}{"count": len(documents)})
	return len(documents), nil
}

func (s *knowledgeService) SeedDefaults(ctx context.Context) (int, error) {
	return s.Store(ctx, knowledge.Defaults())
}

func (s *knowledgeService) LoadPDFs(ctx context.Context, manifest []knowledge.ManifestEntry) knowledge.LoadReport {
	report := knowledge.LoadReport{Errors: make(map[string]error)}

	for _, entry := range manifest {
		if _, err := os.Stat(entry.Path); err != nil {
			report.Failed++
			report.Errors[entry.Path] = fmt.Errorf("PDF not found: %w", err)
			continue
		}

		passages, err := knowledge.LoadPDF(entry.Path, entry.Category, entry.Source)
		if err == nil {
			_, err = s.Store(ctx, passages)
		}
		if err != nil {
			report.Failed++
			report.Errors[entry.Path] = err
			s.logger.Error("KnowledgeService", "Failed to load PDF", map[string]interface{}{
				"path":  entry.Path,
				"error": err.Error(),
			})
			continue
		}

		report.Successful++
		report.TotalChunks += len(passages)
	}
	return report
}

func (s *knowledgeService) List(ctx context.Context, category string, limit, offset int) ([]*entity.KnowledgeDocument, int64, error) {
	if s.repo == nil {
		return nil, 0, ErrKnowledgeUnavailable
	}
	filter := specification.ByCategory{Category: category}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	documents, err := s.repo.FindAll(ctx,
		filter,
		specification.OrderBy{Field: "doc_key"},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, 0, err
	}
	return documents, total, nil
}
