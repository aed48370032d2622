package service_test

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
	"github.com/iliyamo/hotel-booking/internal/service"
	"github.com/iliyamo/hotel-booking/internal/testutil"
	"github.com/iliyamo/hotel-booking/internal/utils"
)

const testSecret = "test-secret"

func newAuth(t *testing.T) (*service.AuthService, testutil.Fixture) {
	t.Helper()
	db := testutil.NewDB(t)
	f := testutil.Seed(t, db)
	return service.NewAuthService(repository.NewUserRepo(db), testSecret, time.Hour, 4, zap.NewNop()), f
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	auth, _ := newAuth(t)

	u, err := auth.Register(ctx, "Dave", "Dave@Example.com", "pass-word")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Role != model.RoleUser || u.Email != "dave@example.com" || u.ID == 0 {
		t.Errorf("registered user = %+v", u)
	}

	_, err = auth.Register(ctx, "Dave again", "dave@example.com", "x")
	assertKind(t, err, service.KindConflict, "User already exists")

	_, err = auth.Register(ctx, "", "e@example.com", "x")
	assertKind(t, err, service.KindValidation, "Name, email and password are required")

	sess, err := auth.Login(ctx, "dave@example.com", "pass-word")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := utils.ParseAccessToken(testSecret, sess.Token.Token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UserID != u.ID || claims.Role != model.RoleUser {
		t.Errorf("claims = %+v", claims)
	}
	if sess.User.ID != u.ID {
		t.Errorf("session user = %+v", sess.User)
	}
}

func TestLoginRejects(t *testing.T) {
	ctx := context.Background()
	auth, _ := newAuth(t)

	tests := []struct {
		name  string
		admin bool
		email string
		pw    string
		kind  service.Kind
		msg   string
	}{
		{name: "Given no password When logging in Then rejects as invalid", email: "alice@example.com", kind: service.KindValidation, msg: "Email and password are required"},
		{name: "Given a wrong password When logging in Then rejects credentials", email: "alice@example.com", pw: "nope", kind: service.KindInvalidCredentials, msg: "Invalid credentials"},
		{name: "Given an unknown email When logging in Then rejects credentials", email: "ghost@example.com", pw: "secret123", kind: service.KindInvalidCredentials, msg: "Invalid credentials"},
		{name: "Given a regular user When logging in as admin Then rejects", admin: true, email: "alice@example.com", pw: "secret123", kind: service.KindInvalidCredentials, msg: "Invalid admin credentials"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.admin {
				_, err = auth.AdminLogin(ctx, tt.email, tt.pw)
			} else {
				_, err = auth.Login(ctx, tt.email, tt.pw)
			}
			assertKind(t, err, tt.kind, tt.msg)
		})
	}

	sess, err := auth.AdminLogin(ctx, "admin@example.com", "secret123")
	if err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	if sess.User.Role != model.RoleAdmin {
		t.Errorf("admin session role = %s", sess.User.Role)
	}
}

func TestUserAdministration(t *testing.T) {
	ctx := context.Background()
	auth, f := newAuth(t)

	created, err := auth.CreateUser(ctx, service.UserInput{Name: "Eve", Email: "eve@example.com", Password: "pw", Role: "ADMIN"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if created.Role != model.RoleAdmin {
		t.Errorf("created role = %s", created.Role)
	}
	_, err = auth.CreateUser(ctx, service.UserInput{Name: "X", Email: "x@example.com", Password: "pw", Role: "owner"})
	assertKind(t, err, service.KindValidation, "role must be admin or user")

	list, err := auth.ListUsers(ctx)
	if err != nil || len(list) != 3 {
		t.Fatalf("ListUsers = %+v, %v", list, err)
	}
	if list[0].ID != f.UserID || list[0].Email != "alice@example.com" {
		t.Errorf("first listed user = %+v", list[0])
	}

	_, err = auth.UpdateUser(ctx, created.ID, service.UserInput{Name: "Eve", Email: "alice@example.com"})
	assertKind(t, err, service.KindConflict, "User already exists")

	updated, err := auth.UpdateUser(ctx, created.ID, service.UserInput{Name: "Eve Ops", Email: "eve@example.com"})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.Name != "Eve Ops" || updated.Role != model.RoleUser {
		t.Errorf("updated = %+v", updated)
	}
	if _, err := auth.Login(ctx, "eve@example.com", "pw"); err != nil {
		t.Errorf("password lost on update: %v", err)
	}

	_, err = auth.UpdateUser(ctx, 999, service.UserInput{Name: "N", Email: "n@example.com"})
	assertKind(t, err, service.KindNotFound, "User not found")

	if err := auth.DeleteUser(ctx, created.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	assertKind(t, auth.DeleteUser(ctx, created.ID), service.KindNotFound, "User not found")
	_, err = auth.GetUser(ctx, created.ID)
	assertKind(t, err, service.KindNotFound, "User not found")
}
