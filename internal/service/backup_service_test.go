package service

import (
	"path/filepath"
	"testing"
	"time"

	"goboard/internal/repository"
)

func TestBackupExportImportRoundTrip(t *testing.T) {
	source := newTestDB(t)
	userRepo := repository.NewUserRepository(source)
	postRepo := repository.NewPostRepository(source)
	fileRepo := repository.NewFileRepository(source)

	auth := NewAuthService(userRepo, 5*time.Minute)
	board := NewBoardService(postRepo)

	alice, err := auth.Register("alice", "hunter2")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	bob, err := auth.Register("bob", "hunter2")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	post, err := board.CreatePost(alice.ID, "first post", "content")
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}
	if _, err := board.AddComment(post.ID, bob.ID, "nice one"); err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}
	if _, err := fileRepo.CreateFileRecord(alice.ID, "notes.txt"); err != nil {
		t.Fatalf("CreateFileRecord() error = %v", err)
	}

	backupPath := filepath.Join(t.TempDir(), "backup.json")
	if err := NewBackupService(source).Export(backupPath); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	// Restore into a fresh database and check the content survived
	target := newTestDB(t)
	if err := NewBackupService(target).Import(backupPath); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	restoredBoard := NewBoardService(repository.NewPostRepository(target))
	posts, err := restoredBoard.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts() error = %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("restored posts = %d, want 1", len(posts))
	}
	if posts[0].ID != post.ID || posts[0].Title != "first post" || posts[0].Username != "alice" {
		t.Errorf("restored post = %+v, want original id/title/author", posts[0])
	}

	_, comments, err := restoredBoard.GetPost(post.ID)
	if err != nil {
		t.Fatalf("GetPost() error = %v", err)
	}
	if len(comments) != 1 || comments[0].Content != "nice one" || comments[0].Username != "bob" {
		t.Errorf("restored comments = %+v, want bob's comment", comments)
	}

	// Password hashes survive, so users can log in against the restored data
	restoredAuth := NewAuthService(repository.NewUserRepository(target), 5*time.Minute)
	if _, _, err := restoredAuth.Login("alice", "hunter2"); err != nil {
		t.Errorf("Login() against restored database error = %v", err)
	}

	files, err := repository.NewFileRepository(target).ListFilesByUser(alice.ID)
	if err != nil {
		t.Fatalf("ListFilesByUser() error = %v", err)
	}
	if len(files) != 1 || files[0].Filename != "notes.txt" {
		t.Errorf("restored files = %+v, want notes.txt", files)
	}
}
