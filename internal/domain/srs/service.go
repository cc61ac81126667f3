package srs

import (
	"errors"
	"time"

	"github.com/recallapp/recall-api/internal/domain"
)

// Common errors
var (
	ErrNilCard             = errors.New("card cannot be nil")
	ErrNegativeReviewCount = errors.New("card review count cannot be negative")
	ErrCardFullyReviewed   = errors.New("card is already fully reviewed")
)

// Service defines the interface for scheduling operations. All methods are
// deterministic given their inputs; now is always passed in explicitly and
// no method reads a clock or performs I/O.
type Service interface {
	// StageFor maps a review count to its display stage.
	StageFor(reviewCount int) Stage

	// IsDue reports whether the card is due for review at the given instant.
	IsDue(card *domain.Card, now time.Time) bool

	// Advance computes the card state after one more completed review,
	// returning a new card value. It rejects nil cards, cards with corrupt
	// negative review counts, and cards that are already fully reviewed
	// (those take the optional-review path, which never touches scheduling
	// state).
	Advance(card *domain.Card, now time.Time) (*domain.Card, error)

	// InitialReviewAt computes the first due timestamp for a card created at
	// the given time.
	InitialReviewAt(createdAt time.Time) time.Time

	// FilterDue returns the due subset of cards ordered ascending by
	// NextReviewAt, never-scheduled cards first.
	FilterDue(cards []*domain.Card, now time.Time) []*domain.Card
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a scheduler with the standard 1/7/21 day params.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates a scheduler with custom params.
// Returns an error if the params are invalid.
func NewServiceWithParams(params *Params) (Service, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &defaultService{params: params}, nil
}

func (s *defaultService) StageFor(reviewCount int) Stage {
	return stageFor(reviewCount, s.params)
}

func (s *defaultService) IsDue(card *domain.Card, now time.Time) bool {
	if card == nil {
		return false
	}
	return isDue(card, now)
}

func (s *defaultService) Advance(card *domain.Card, now time.Time) (*domain.Card, error) {
	if card == nil {
		return nil, ErrNilCard
	}

	if card.ReviewCount < 0 {
		return nil, ErrNegativeReviewCount
	}

	if card.IsFullyReviewed {
		return nil, ErrCardFullyReviewed
	}

	return advance(card, now, s.params), nil
}

func (s *defaultService) InitialReviewAt(createdAt time.Time) time.Time {
	return initialReviewAt(createdAt, s.params)
}

func (s *defaultService) FilterDue(cards []*domain.Card, now time.Time) []*domain.Card {
	return filterDue(cards, now, s.params)
}
