package forum

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"tradesim/internal/domain"
	"tradesim/pkg/errors"
	"tradesim/pkg/logger"
)

// Board is the slice of the store the forum service needs.
type Board interface {
	Posts() []domain.ForumPost
	AddPost(ctx context.Context, post domain.ForumPost) error
	LikePost(ctx context.Context, id uuid.UUID) (int, error)
	CountryByID(id uuid.UUID) (domain.Country, bool)
}

type Service struct {
	board  Board
	logger logger.Logger
}

func NewService(board Board, log logger.Logger) *Service {
	return &Service{
		board:  board,
		logger: log,
	}
}

type CreatePostRequest struct {
	Author    string              `json:"author" validate:"required,min=2,max=100"`
	CountryID uuid.UUID           `json:"country_id" validate:"required"`
	Title     string              `json:"title" validate:"required,min=3,max=200"`
	Content   string              `json:"content" validate:"required,max=5000"`
	Category  domain.PostCategory `json:"category" validate:"required,oneof=general deals analysis news"`
}

// Publish appends a post to the forum. Posts are append-only; there is no
// edit operation.
func (s *Service) Publish(ctx context.Context, req *CreatePostRequest) (*domain.ForumPost, error) {
	if _, ok := s.board.CountryByID(req.CountryID); !ok {
		return nil, errors.ErrCountryNotFound
	}

	post := domain.ForumPost{
		ID:        uuid.New(),
		Author:    req.Author,
		CountryID: req.CountryID,
		Title:     req.Title,
		Content:   req.Content,
		Category:  req.Category,
		Date:      time.Now(),
	}

	if err := s.board.AddPost(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("Forum post published", map[string]interface{}{
		"post_id":  post.ID,
		"author":   post.Author,
		"category": post.Category,
	})
	return &post, nil
}

// List returns posts newest first, optionally restricted to one category.
func (s *Service) List(ctx context.Context, category string) []domain.ForumPost {
	posts := s.board.Posts()
	if category != "" {
		filtered := posts[:0]
		for _, p := range posts {
			if string(p.Category) == category {
				filtered = append(filtered, p)
			}
		}
		posts = filtered
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})
	return posts
}

// Like increments a post's like counter and returns the new count.
func (s *Service) Like(ctx context.Context, id uuid.UUID) (int, error) {
	return s.board.LikePost(ctx, id)
}
