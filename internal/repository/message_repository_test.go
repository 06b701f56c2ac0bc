package repository

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"syncpad/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Every pooled connection gets its own in-memory database; keep one.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&model.Message{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// The ai placeholder is created with IsComplete=false and must come back
// that way from the database, or the responder treats it as already
// finished and never streams into it.
func TestCreatePreservesIncompleteFlag(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))

	placeholder := &model.Message{PageID: 1, Sender: "ai", Text: "", IsComplete: false}
	if err := repo.Create(placeholder); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(placeholder.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil {
		t.Fatal("placeholder not found")
	}
	if got.IsComplete {
		t.Fatal("placeholder stored with is_complete=true")
	}
	if got.Text != "" {
		t.Errorf("text = %q, want empty", got.Text)
	}
}

func TestCreatePreservesCompleteFlag(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))

	message := &model.Message{PageID: 1, Sender: "alice", Text: "hi", IsComplete: true}
	if err := repo.Create(message); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(message.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || !got.IsComplete {
		t.Fatalf("got %+v, want a complete row", got)
	}
}

func TestMarkCompleteFlipsFlag(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))

	placeholder := &model.Message{PageID: 1, Sender: "ai", IsComplete: false}
	if err := repo.Create(placeholder); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.MarkComplete(placeholder.ID); err != nil {
		t.Fatalf("MarkComplete: %v", err)
	}

	got, err := repo.GetByID(placeholder.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || !got.IsComplete {
		t.Fatalf("got %+v, want a complete row", got)
	}
}

func TestUpdateTextReplacesWholeText(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))

	row := &model.Message{PageID: 1, Sender: "ai", IsComplete: false}
	if err := repo.Create(row); err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, text := range []string{"po", "pong", "pong"} {
		if err := repo.UpdateText(row.ID, text); err != nil {
			t.Fatalf("UpdateText(%q): %v", text, err)
		}
	}

	got, err := repo.GetByID(row.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Text != "pong" {
		t.Errorf("text = %q, want %q", got.Text, "pong")
	}
}

func TestGetByIDMissingRow(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))

	got, err := repo.GetByID(42)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil for a missing row", got)
	}
}

func TestDeleteAllCountsRows(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))

	for i := 0; i < 3; i++ {
		if err := repo.Create(&model.Message{PageID: 1, Sender: "a", Text: "x", IsComplete: true}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	deleted, err := repo.DeleteAll()
	if err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}
	if deleted != 3 {
		t.Errorf("deleted = %d, want 3", deleted)
	}

	deleted, err = repo.DeleteAll()
	if err != nil {
		t.Fatalf("DeleteAll on empty: %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0 on empty table", deleted)
	}
}

func TestSearchTextCaseInsensitive(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))

	if err := repo.Create(&model.Message{PageID: 1, Sender: "a", Text: "Deployment Checklist", IsComplete: true}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(&model.Message{PageID: 1, Sender: "a", Text: "unrelated", IsComplete: true}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	results, err := repo.SearchText(1, "DEPLOY", 5)
	if err != nil {
		t.Fatalf("SearchText: %v", err)
	}
	if len(results) != 1 || results[0].Text != "Deployment Checklist" {
		t.Errorf("results = %v, want the deployment message", results)
	}
}
