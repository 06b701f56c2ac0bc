package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"syncpad/internal/ai"
	"syncpad/internal/model"
)

// CollectionWiper bulk-deletes one ephemeral collection and reports how many
// rows went away.
type CollectionWiper interface {
	DeleteAll() (int64, error)
}

// MessageSeeder re-inserts the welcome message after a wipe.
type MessageSeeder interface {
	Create(message *model.Message) error
}

type ActivePageLister interface {
	ListActive() ([]model.Page, error)
}

// CleanupReport is what one cleanup run did, per collection.
type CleanupReport struct {
	Deleted  map[string]int64  `json:"deleted"`
	Errors   map[string]string `json:"errors,omitempty"`
	Reseeded int               `json:"reseeded"`
}

func (r *CleanupReport) Failed() bool {
	return len(r.Errors) > 0
}

// CleanupService wipes the ephemeral collections. Each collection is
// attempted independently: a failure is recorded in the report and the
// remaining collections are still processed. Wiping empty collections is a
// no-op, so re-running is always safe. After the wipe, every active page
// gets one system welcome message back.
type CleanupService struct {
	messages CollectionWiper
	todos    CollectionWiper
	notes    CollectionWiper
	docs     CollectionWiper
	pages    ActivePageLister
	seeder   MessageSeeder

	welcomeSender string
	welcomeText   string
	logger        *zap.Logger
}

func NewCleanupService(
	messages CollectionWiper,
	todos CollectionWiper,
	notes CollectionWiper,
	docs CollectionWiper,
	pages ActivePageLister,
	seeder MessageSeeder,
	welcomeSender string,
	welcomeText string,
	logger *zap.Logger,
) *CleanupService {
	if welcomeSender == "" {
		welcomeSender = "system"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CleanupService{
		messages:      messages,
		todos:         todos,
		notes:         notes,
		docs:          docs,
		pages:         pages,
		seeder:        seeder,
		welcomeSender: welcomeSender,
		welcomeText:   welcomeText,
		logger:        logger.Named("CleanupService"),
	}
}

func (s *CleanupService) Run(ctx context.Context) *CleanupReport {
	report := &CleanupReport{
		Deleted: make(map[string]int64),
		Errors:  make(map[string]string),
	}

	collections := []struct {
		name  string
		wiper CollectionWiper
	}{
		{"messages", s.messages},
		{"todos", s.todos},
		{"notes", s.notes},
		{"docs", s.docs},
	}

	for _, c := range collections {
		if c.wiper == nil {
			continue
		}
		deleted, err := c.wiper.DeleteAll()
		if err != nil {
			report.Errors[c.name] = err.Error()
			s.logger.Warn("wipe collection failed",
				zap.String("collection", c.name),
				zap.Error(err),
			)
			continue
		}
		report.Deleted[c.name] = deleted
	}

	report.Reseeded = s.reseedWelcome()

	s.logger.Info("cleanup completed",
		zap.Any("deleted", report.Deleted),
		zap.Int("reseeded", report.Reseeded),
		zap.Int("failed_collections", len(report.Errors)),
	)
	if len(report.Errors) == 0 {
		report.Errors = nil
	}
	return report
}

func (s *CleanupService) reseedWelcome() int {
	if s.pages == nil || s.seeder == nil || s.welcomeText == "" {
		return 0
	}
	pages, err := s.pages.ListActive()
	if err != nil {
		s.logger.Warn("list pages for welcome reseed failed", zap.Error(err))
		return 0
	}

	seeded := 0
	for _, page := range pages {
		welcome := &model.Message{
			PageID:     page.ID,
			Sender:     s.welcomeSender,
			Text:       s.welcomeText,
			IsComplete: true,
			CreatedAt:  time.Now(),
		}
		welcome.SetVector(ai.TextVector(s.welcomeText))
		if err := s.seeder.Create(welcome); err != nil {
			s.logger.Warn("reseed welcome message failed",
				zap.Uint("page_id", page.ID),
				zap.Error(err),
			)
			continue
		}
		seeded++
	}
	return seeded
}
