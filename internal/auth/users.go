package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"turismocombita/internal/content"
	"turismocombita/internal/store"
)

// UsersDocument is the name the account list is saved under.
const UsersDocument = "users"

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailTaken           = errors.New("email already registered")
	ErrBootstrapCredentials = errors.New("ADMIN_EMAIL and ADMIN_PASSWORD are required to create the first admin")
)

type User struct {
	ID       string `json:"id"`
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Rol      Role   `json:"rol"`
	Creado   string `json:"creado"`
}

// Summary is the user without credentials, as the API exposes it.
type Summary struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
	Rol    Role   `json:"rol"`
}

func (u User) Summary() Summary {
	return Summary{ID: u.ID, Nombre: u.Nombre, Email: u.Email, Rol: u.Rol}
}

type usersDoc struct {
	Users []User `json:"users"`
}

// Users manages accounts stored as one document on a store.Backend.
type Users struct {
	backend store.Backend
	cost    int
	now     func() time.Time

	mu sync.Mutex
}

// NewUsers uses cost for new password hashes; pass bcrypt.DefaultCost
// outside tests.
func NewUsers(b store.Backend, cost int) *Users {
	return &Users{backend: b, cost: cost, now: time.Now}
}

// Bootstrap creates the first admin when no user document exists yet.
// It reports whether an account was created.
func (u *Users) Bootstrap(ctx context.Context, email, password, nombre string) (bool, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	_, err := u.backend.Load(ctx, UsersDocument)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, store.ErrDocumentNotFound):
		return false, err
	}

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return false, ErrBootstrapCredentials
	}
	admin, err := u.newUser(nombre, email, password, RoleAdmin)
	if err != nil {
		return false, err
	}
	if err := u.save(ctx, usersDoc{Users: []User{admin}}); err != nil {
		return false, err
	}
	log.Printf("[auth] initial admin %s created", email)
	return true, nil
}

func (u *Users) Authenticate(ctx context.Context, email, password string) (User, error) {
	doc, err := u.load(ctx)
	if err != nil {
		return User{}, err
	}
	i := doc.indexByEmail(email)
	if i < 0 {
		return User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(doc.Users[i].Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return doc.Users[i], nil
}

func (u *Users) ChangePassword(ctx context.Context, id, current, next string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	doc, err := u.load(ctx)
	if err != nil {
		return err
	}
	i := doc.indexByID(id)
	if i < 0 {
		return ErrUserNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(doc.Users[i].Password), []byte(current)) != nil {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), u.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	doc.Users[i].Password = string(hash)
	return u.save(ctx, doc)
}

// Create adds an account; rol defaults to editor.
func (u *Users) Create(ctx context.Context, nombre, email, password string, rol Role) (User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	doc, err := u.load(ctx)
	if err != nil {
		return User{}, err
	}
	if doc.indexByEmail(email) >= 0 {
		return User{}, ErrEmailTaken
	}
	if rol == "" {
		rol = RoleEditor
	}
	nu, err := u.newUser(nombre, email, password, rol)
	if err != nil {
		return User{}, err
	}
	doc.Users = append(doc.Users, nu)
	if err := u.save(ctx, doc); err != nil {
		return User{}, err
	}
	return nu, nil
}

func (u *Users) List(ctx context.Context) ([]User, error) {
	doc, err := u.load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Users, nil
}

func (u *Users) newUser(nombre, email, password string, rol Role) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), u.cost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	if strings.TrimSpace(nombre) == "" {
		nombre = "Administrador"
	}
	return User{
		ID:       content.NewID(),
		Nombre:   strings.TrimSpace(nombre),
		Email:    strings.TrimSpace(email),
		Password: string(hash),
		Rol:      rol,
		Creado:   content.Timestamp(u.now()),
	}, nil
}

func (u *Users) load(ctx context.Context) (usersDoc, error) {
	data, err := u.backend.Load(ctx, UsersDocument)
	if errors.Is(err, store.ErrDocumentNotFound) {
		return usersDoc{}, nil
	}
	if err != nil {
		return usersDoc{}, fmt.Errorf("load users: %w", err)
	}
	var doc usersDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return usersDoc{}, fmt.Errorf("decode users: %w", err)
	}
	return doc, nil
}

func (u *Users) save(ctx context.Context, doc usersDoc) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := u.backend.Save(ctx, UsersDocument, data); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func (d usersDoc) indexByEmail(email string) int {
	email = strings.TrimSpace(email)
	for i, u := range d.Users {
		if strings.EqualFold(u.Email, email) {
			return i
		}
	}
	return -1
}

func (d usersDoc) indexByID(id string) int {
	for i, u := range d.Users {
		if u.ID == id {
			return i
		}
	}
	return -1
}
