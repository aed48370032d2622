package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
	"github.com/iliyamo/hotel-booking/internal/testutil"
	"github.com/iliyamo/hotel-booking/internal/utils"
)

func TestUserRepo(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	users := repository.NewUserRepo(db)

	id, err := users.Create(ctx, "  Carol ", "Carol@Example.com ", "pw-123456", model.RoleUser, 4)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	u, err := users.GetByEmail(ctx, "CAROL@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if u.ID != id || u.Name != "Carol" || u.Email != "carol@example.com" {
		t.Errorf("stored user = %+v", u)
	}
	if !utils.VerifyPassword(u.PasswordHash, "pw-123456") {
		t.Error("password hash does not verify")
	}

	// SQLite reports UNIQUE violations differently from MySQL, so the
	// duplicate is detected through EmailTaken the way the service does.
	taken, err := users.EmailTaken(ctx, "carol@example.com", 0)
	if err != nil || !taken {
		t.Errorf("EmailTaken = %v, %v", taken, err)
	}
	if taken, _ := users.EmailTaken(ctx, "carol@example.com", id); taken {
		t.Error("EmailTaken counted the user itself")
	}

	if err := users.Update(ctx, id, "Caz", "caz@example.com", model.RoleAdmin, "", 4); err != nil {
		t.Fatalf("Update: %v", err)
	}
	u, _ = users.GetByID(ctx, id)
	if u.Name != "Caz" || u.Role != model.RoleAdmin || !utils.VerifyPassword(u.PasswordHash, "pw-123456") {
		t.Errorf("after update without password = %+v", u)
	}
	if err := users.Update(ctx, id, "Caz", "caz@example.com", model.RoleAdmin, "new-password", 4); err != nil {
		t.Fatalf("Update with password: %v", err)
	}
	u, _ = users.GetByID(ctx, id)
	if !utils.VerifyPassword(u.PasswordHash, "new-password") {
		t.Error("password not re-hashed")
	}
	if err := users.Update(ctx, 999, "X", "x@example.com", model.RoleUser, "", 4); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Update unknown err = %v", err)
	}

	list, err := users.List(ctx)
	if err != nil || len(list) != 1 {
		t.Errorf("List = %v, %v", list, err)
	}

	if err := users.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := users.Delete(ctx, id); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("second Delete err = %v", err)
	}
	if _, err := users.GetByID(ctx, id); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("GetByID deleted err = %v", err)
	}
}
