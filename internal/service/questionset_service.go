package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"testbank-service/internal/engine"
	"testbank-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SetInvalidator is notified after a question set changes so cached copies
// are dropped. A nil invalidator is fine when no cache is configured.
type SetInvalidator interface {
	Invalidate(ctx context.Context, setID string)
}

// QuestionSetRepo is the persistence surface the set service needs.
type QuestionSetRepo interface {
	engine.QuestionSetResolver
	List(ctx context.Context) ([]models.QuestionSet, error)
	Create(ctx context.Context, set *models.QuestionSet) error
	Update(ctx context.Context, id string, update bson.M) error
	Delete(ctx context.Context, id string) error
}

type QuestionSetService struct {
	Repo  QuestionSetRepo
	Cache SetInvalidator
}

func NewQuestionSetService(repo QuestionSetRepo, cache SetInvalidator) *QuestionSetService {
	return &QuestionSetService{Repo: repo, Cache: cache}
}

func (s *QuestionSetService) GetSet(ctx context.Context, id string) (*models.QuestionSet, error) {
	return s.Repo.ResolveSet(ctx, id)
}

func (s *QuestionSetService) ListSets(ctx context.Context) ([]models.QuestionSet, error) {
	return s.Repo.List(ctx)
}

// CreateSet assigns ids to embedded questions, validates each correct answer
// against its option list, and maintains the denormalized question count.
func (s *QuestionSetService) CreateSet(ctx context.Context, set *models.QuestionSet) error {
	if set.Name == "" {
		return fmt.Errorf("question set name is required: %w", engine.ErrInvalidState)
	}
	for i := range set.Questions {
		q := &set.Questions[i]
		if q.ID == "" {
			q.ID = primitive.NewObjectID().Hex()
		}
		if len(q.Options) == 0 {
			return fmt.Errorf("question %s has no options: %w", q.ID, engine.ErrInvalidState)
		}
		if !slices.Contains(q.Options, q.CorrectAnswer) {
			return fmt.Errorf("question %s: correct answer is not one of its options: %w", q.ID, engine.ErrInvalidState)
		}
	}
	set.TotalQuestions = len(set.Questions)
	set.CreatedAt = time.Now().UTC()
	return s.Repo.Create(ctx, set)
}

func (s *QuestionSetService) UpdateSet(ctx context.Context, id string, update bson.M) error {
	if err := s.Repo.Update(ctx, id, update); err != nil {
		return err
	}
	if s.Cache != nil {
		s.Cache.Invalidate(ctx, id)
	}
	return nil
}

func (s *QuestionSetService) DeleteSet(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.Cache != nil {
		s.Cache.Invalidate(ctx, id)
	}
	return nil
}
