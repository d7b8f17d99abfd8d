// Package repotest provides in-memory implementations of the repository
// interfaces for handler tests.
package repotest

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/waterlife-shop/waterlife-backend/catalog"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/repository"
	"github.com/waterlife-shop/waterlife-backend/search"
)

// DB is the shared backing store. Tables are exported so tests can seed and
// inspect them directly.
type DB struct {
	mu sync.Mutex

	Categories    []*models.Category
	Manufacturers []*models.Manufacturer
	Products      []*models.Product
	Orders        []*models.Order
	Users         []*models.User
	Resets        []*models.PasswordReset
	Admins        []*models.Admin
	Sessions      []*models.AdminSession
	Activity      []*models.ActivityLog
	Sections      []*models.HomepageSection
	Messages      []*models.ContactMessage
}

func New() *DB {
	return &DB{}
}

func (db *DB) ProductRepo() *Products           { return &Products{db} }
func (db *DB) CategoryRepo() *Categories        { return &Categories{db} }
func (db *DB) ManufacturerRepo() *Manufacturers { return &Manufacturers{db} }
func (db *DB) OrderRepo() *Orders               { return &Orders{db} }
func (db *DB) UserRepo() *Users                 { return &Users{db} }
func (db *DB) AdminRepo() *Admins               { return &Admins{db} }
func (db *DB) ActivityRepo() *Activity          { return &Activity{db} }
func (db *DB) ContentRepo() *Content            { return &Content{db} }
func (db *DB) ContactRepo() *Contact            { return &Contact{db} }

var (
	_ repository.ProductRepository      = (*Products)(nil)
	_ repository.CategoryRepository     = (*Categories)(nil)
	_ repository.ManufacturerRepository = (*Manufacturers)(nil)
	_ repository.OrderRepository        = (*Orders)(nil)
	_ repository.UserRepository         = (*Users)(nil)
	_ repository.AdminRepository        = (*Admins)(nil)
	_ repository.ActivityRepository     = (*Activity)(nil)
	_ repository.ContentRepository      = (*Content)(nil)
	_ repository.ContactRepository      = (*Contact)(nil)
)

func find[T any](rows []*T, match func(*T) bool) (*T, int) {
	for i, r := range rows {
		if match(r) {
			return r, i
		}
	}
	return nil, -1
}

func page[T any](rows []T, p, limit, def int) []T {
	p, limit = repository.Paging(p, limit, def)
	start := min((p-1)*limit, len(rows))
	end := min(start+limit, len(rows))
	return rows[start:end]
}

// ─────────────────────────────────────────────────────────────
// Products
// ─────────────────────────────────────────────────────────────

type Products struct{ db *DB }

// preload attaches the category and manufacturer rows. Caller holds the lock.
func (r *Products) preload(p models.Product) models.Product {
	if p.CategoryID != nil {
		p.Category, _ = find(r.db.Categories, func(c *models.Category) bool { return c.ID == *p.CategoryID })
	}
	if p.ManufacturerID != nil {
		p.Manufacturer, _ = find(r.db.Manufacturers, func(m *models.Manufacturer) bool { return m.ID == *p.ManufacturerID })
	}
	return p
}

func (r *Products) List(_ context.Context, q repository.ProductQuery) ([]models.Product, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var out []models.Product
	for _, stored := range r.db.Products {
		p := r.preload(*stored)
		if q.Status != "" && p.Status != q.Status {
			continue
		}
		if q.Featured != nil && p.Featured != *q.Featured {
			continue
		}
		if !catalog.Match(p.ToCatalog(), q.Filter) {
			continue
		}
		out = append(out, p)
	}
	total := len(out)
	if q.Limit > 0 {
		out = page(out, q.Page, q.Limit, catalog.ItemsPerPage)
	}
	return out, total, nil
}

func (r *Products) Get(_ context.Context, id uuid.UUID) (*models.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, _ := find(r.db.Products, func(p *models.Product) bool { return p.ID == id })
	if p == nil {
		return nil, repository.ErrNotFound
	}
	out := r.preload(*p)
	return &out, nil
}

func (r *Products) FindByIDs(_ context.Context, ids []uuid.UUID) ([]models.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Product
	for _, p := range r.db.Products {
		if slices.Contains(ids, p.ID) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *Products) Suggest(ctx context.Context, query string, limit int) ([]models.Product, error) {
	active, _, _ := r.List(ctx, repository.ProductQuery{Status: catalog.StatusActive})
	byID := make(map[string]models.Product, len(active))
	views := make([]catalog.Product, 0, len(active))
	for _, p := range active {
		byID[p.ID.String()] = p
		views = append(views, p.ToCatalog())
	}
	var out []models.Product
	for _, v := range search.Suggest(views, query, limit) {
		out = append(out, byID[v.ID])
	}
	return out, nil
}

func (r *Products) Facets(ctx context.Context) (*models.FilterMetadata, error) {
	active, _, _ := r.List(ctx, repository.ProductQuery{Status: catalog.StatusActive})
	meta := &models.FilterMetadata{Categories: []models.FacetOption{}, Manufacturers: []models.FacetOption{}}
	cats := map[string]*models.FacetOption{}
	mans := map[string]*models.FacetOption{}
	for i, p := range active {
		if p.Category != nil {
			if cats[p.Category.Slug] == nil {
				cats[p.Category.Slug] = &models.FacetOption{Value: p.Category.Slug, Label: p.Category.Name}
			}
			cats[p.Category.Slug].Count++
		}
		if p.Manufacturer != nil {
			if mans[p.Manufacturer.Slug] == nil {
				mans[p.Manufacturer.Slug] = &models.FacetOption{Value: p.Manufacturer.Slug, Label: p.Manufacturer.Name}
			}
			mans[p.Manufacturer.Slug].Count++
		}
		if i == 0 || p.Price < meta.PriceRange.Min {
			meta.PriceRange.Min = p.Price
		}
		if p.Price > meta.PriceRange.Max {
			meta.PriceRange.Max = p.Price
		}
		if p.Stock > 0 {
			meta.Availability.InStock++
		} else {
			meta.Availability.OutOfStock++
		}
	}
	for _, o := range cats {
		meta.Categories = append(meta.Categories, *o)
	}
	for _, o := range mans {
		meta.Manufacturers = append(meta.Manufacturers, *o)
	}
	sort.Slice(meta.Categories, func(i, j int) bool { return meta.Categories[i].Value < meta.Categories[j].Value })
	sort.Slice(meta.Manufacturers, func(i, j int) bool { return meta.Manufacturers[i].Value < meta.Manufacturers[j].Value })
	return meta, nil
}

func (r *Products) Create(_ context.Context, p *models.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	_ = p.BeforeCreate(nil)
	p.CreatedAt, p.UpdatedAt = time.Now(), time.Now()
	stored := *p
	stored.Category, stored.Manufacturer = nil, nil
	r.db.Products = append(r.db.Products, &stored)
	return nil
}

func (r *Products) Update(_ context.Context, p *models.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	_, i := find(r.db.Products, func(s *models.Product) bool { return s.ID == p.ID })
	if i < 0 {
		return repository.ErrNotFound
	}
	stored := *p
	stored.Category, stored.Manufacturer = nil, nil
	stored.UpdatedAt = time.Now()
	r.db.Products[i] = &stored
	return nil
}

func (r *Products) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	_, i := find(r.db.Products, func(p *models.Product) bool { return p.ID == id })
	if i < 0 {
		return repository.ErrNotFound
	}
	r.db.Products = slices.Delete(r.db.Products, i, i+1)
	return nil
}

// ─────────────────────────────────────────────────────────────
// Categories and manufacturers
// ─────────────────────────────────────────────────────────────

type Categories struct{ db *DB }

func (r *Categories) List(_ context.Context) ([]models.CategoryWithProducts, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]models.CategoryWithProducts, 0, len(r.db.Categories))
	for _, c := range r.db.Categories {
		n := 0
		for _, p := range r.db.Products {
			if p.CategoryID != nil && *p.CategoryID == c.ID {
				n++
			}
		}
		out = append(out, models.CategoryWithProducts{Category: *c, Products: n})
	}
	return out, nil
}

func (r *Categories) Get(_ context.Context, id uuid.UUID) (*models.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, _ := find(r.db.Categories, func(c *models.Category) bool { return c.ID == id })
	if c == nil {
		return nil, repository.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (r *Categories) Create(_ context.Context, c *models.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	_ = c.BeforeCreate(nil)
	if dup, _ := find(r.db.Categories, func(o *models.Category) bool { return o.Slug == c.Slug }); dup != nil {
		return repository.ErrDuplicate
	}
	stored := *c
	r.db.Categories = append(r.db.Categories, &stored)
	return nil
}

func (r *Categories) Update(_ context.Context, c *models.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	_, i := find(r.db.Categories, func(o *models.Category) bool { return o.ID == c.ID })
	if i < 0 {
		return repository.ErrNotFound
	}
	stored := *c
	r.db.Categories[i] = &stored
	return nil
}

func (r *Categories) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, p := range r.db.Products {
		if p.CategoryID != nil && *p.CategoryID == id {
			return repository.ErrInUse
		}
	}
	_, i := find(r.db.Categories, func(c *models.Category) bool { return c.ID == id })
	if i < 0 {
		return repository.ErrNotFound
	}
	r.db.Categories = slices.Delete(r.db.Categories, i, i+1)
	return nil
}

type Manufacturers struct{ db *DB }

func (r *Manufacturers) List(_ context.Context) ([]models.Manufacturer, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]models.Manufacturer, 0, len(r.db.Manufacturers))
	for _, m := range r.db.Manufacturers {
		out = append(out, *m)
	}
	return out, nil
}

func (r *Manufacturers) Get(_ context.Context, id uuid.UUID) (*models.Manufacturer, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	m, _ := find(r.db.Manufacturers, func(m *models.Manufacturer) bool { return m.ID == id })
	if m == nil {
		return nil, repository.ErrNotFound
	}
	out := *m
	return &out, nil
}

func (r *Manufacturers) Create(_ context.Context, m *models.Manufacturer) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	_ = m.BeforeCreate(nil)
	if dup, _ := find(r.db.Manufacturers, func(o *models.Manufacturer) bool { return o.Slug == m.Slug }); dup != nil {
		return repository.ErrDuplicate
	}
	stored := *m
	r.db.Manufacturers = append(r.db.Manufacturers, &stored)
	return nil
}

func (r *Manufacturers) Update(_ context.Context, m *models.Manufacturer) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	_, i := find(r.db.Manufacturers, func(o *models.Manufacturer) bool { return o.ID == m.ID })
	if i < 0 {
		return repository.ErrNotFound
	}
	stored := *m
	r.db.Manufacturers[i] = &stored
	return nil
}

func (r *Manufacturers) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, p := range r.db.Products {
		if p.ManufacturerID != nil && *p.ManufacturerID == id {
			return repository.ErrInUse
		}
	}
	_, i := find(r.db.Manufacturers, func(m *models.Manufacturer) bool { return m.ID == id })
	if i < 0 {
		return repository.ErrNotFound
	}
	r.db.Manufacturers = slices.Delete(r.db.Manufacturers, i, i+1)
	return nil
}

// ─────────────────────────────────────────────────────────────
// Orders
// ─────────────────────────────────────────────────────────────

type Orders struct{ db *DB }

func (r *Orders) Create(_ context.Context, o *models.Order) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	_ = o.BeforeCreate(nil)
	o.CreatedAt, o.UpdatedAt = time.Now(), time.Now()
	stored := *o
	r.db.Orders = append(r.db.Orders, &stored)
	return nil
}

func (r *Orders) Get(_ context.Context, id uuid.UUID) (*models.Order, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	o, _ := find(r.db.Orders, func(o *models.Order) bool { return o.ID == id })
	if o == nil {
		return nil, repository.ErrNotFound
	}
	out := *o
	return &out, nil
}

func (r *Orders) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Order, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Order
	for _, o := range slices.Backward(r.db.Orders) {
		if o.UserID != nil && *o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *Orders) List(_ context.Context, q models.AdminOrderQuery) ([]models.Order, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	needle := strings.ToLower(strings.TrimSpace(q.Q))
	var out []models.Order
	for _, o := range slices.Backward(r.db.Orders) {
		if q.Status != "" && o.Status != q.Status {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(o.OrderNumber), needle) &&
			!strings.Contains(strings.ToLower(o.Customer.Email), needle) &&
			!strings.Contains(strings.ToLower(o.Customer.LastName), needle) {
			continue
		}
		out = append(out, *o)
	}
	return page(out, q.Page, q.Limit, 20), len(out), nil
}

func (r *Orders) UpdateStatus(_ context.Context, id uuid.UUID, status string, notes *string) (*models.Order, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	o, _ := find(r.db.Orders, func(o *models.Order) bool { return o.ID == id })
	if o == nil {
		return nil, repository.ErrNotFound
	}
	o.Status = status
	if notes != nil {
		o.AdminNotes = notes
	}
	o.UpdatedAt = time.Now()
	out := *o
	return &out, nil
}

func (r *Orders) Stats(_ context.Context, now time.Time) (*models.OrderStats, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	stats := &models.OrderStats{ByStatus: map[string]int{}}
	for status := range models.OrderStatusLabels {
		stats.ByStatus[status] = 0
	}
	thisMonth, lastMonth := models.MonthBounds(now)
	for _, o := range r.db.Orders {
		stats.Total++
		stats.ByStatus[o.Status]++
		if models.OrderStatusOpen(o.Status) {
			stats.OpenValue += o.Total
		}
		switch {
		case !o.CreatedAt.Before(thisMonth):
			stats.ThisMonth++
		case !o.CreatedAt.Before(lastMonth):
			stats.LastMonth++
		}
	}
	stats.MonthChange = models.MonthChangePct(stats.ThisMonth, stats.LastMonth)
	return stats, nil
}

// ─────────────────────────────────────────────────────────────
// Users
// ─────────────────────────────────────────────────────────────

type Users struct{ db *DB }

func (r *Users) Create(_ context.Context, u *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	_ = u.BeforeCreate(nil)
	if dup, _ := find(r.db.Users, func(o *models.User) bool { return o.Email == u.Email }); dup != nil {
		return repository.ErrDuplicate
	}
	u.CreatedAt, u.UpdatedAt = time.Now(), time.Now()
	stored := *u
	r.db.Users = append(r.db.Users, &stored)
	return nil
}

func (r *Users) get(match func(*models.User) bool) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, _ := find(r.db.Users, match)
	if u == nil {
		return nil, repository.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (r *Users) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	return r.get(func(u *models.User) bool { return u.ID == id })
}

func (r *Users) GetByEmail(_ context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.get(func(u *models.User) bool { return u.Email == email })
}

func (r *Users) GetByGoogleID(_ context.Context, googleID string) (*models.User, error) {
	return r.get(func(u *models.User) bool { return u.GoogleID != nil && *u.GoogleID == googleID })
}

func (r *Users) Update(_ context.Context, u *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	_, i := find(r.db.Users, func(o *models.User) bool { return o.ID == u.ID })
	if i < 0 {
		return repository.ErrNotFound
	}
	stored := *u
	stored.UpdatedAt = time.Now()
	r.db.Users[i] = &stored
	return nil
}

func (r *Users) CreatePasswordReset(_ context.Context, pr *models.PasswordReset) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	_ = pr.BeforeCreate(nil)
	stored := *pr
	r.db.Resets = append(r.db.Resets, &stored)
	return nil
}

func (r *Users) ConsumePasswordReset(_ context.Context, tokenHash, passwordHash string, now time.Time) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	pr, _ := find(r.db.Resets, func(pr *models.PasswordReset) bool {
		return pr.TokenHash == tokenHash && pr.UsedAt == nil && pr.ExpiresAt.After(now)
	})
	if pr == nil {
		return nil, repository.ErrNotFound
	}
	u, _ := find(r.db.Users, func(u *models.User) bool { return u.ID == pr.UserID })
	if u == nil {
		return nil, repository.ErrNotFound
	}
	pr.UsedAt = &now
	u.PasswordHash = passwordHash
	out := *u
	return &out, nil
}

// ─────────────────────────────────────────────────────────────
// Admins and sessions
// ─────────────────────────────────────────────────────────────

type Admins struct{ db *DB }

func (r *Admins) GetByEmail(_ context.Context, email string) (*models.Admin, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a, _ := find(r.db.Admins, func(a *models.Admin) bool { return strings.EqualFold(a.Email, email) })
	if a == nil {
		return nil, repository.ErrNotFound
	}
	out := *a
	return &out, nil
}

func (r *Admins) GetByID(_ context.Context, id uuid.UUID) (*models.Admin, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a, _ := find(r.db.Admins, func(a *models.Admin) bool { return a.ID == id })
	if a == nil {
		return nil, repository.ErrNotFound
	}
	out := *a
	return &out, nil
}

func (r *Admins) Create(_ context.Context, a *models.Admin) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	_ = a.BeforeCreate(nil)
	stored := *a
	r.db.Admins = append(r.db.Admins, &stored)
	return nil
}

func (r *Admins) TouchLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if a, _ := find(r.db.Admins, func(a *models.Admin) bool { return a.ID == id }); a != nil {
		a.LastLoginAt = &at
	}
	return nil
}

func (r *Admins) CreateSession(_ context.Context, s *models.AdminSession) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	_ = s.BeforeCreate(nil)
	stored := *s
	r.db.Sessions = append(r.db.Sessions, &stored)
	return nil
}

func (r *Admins) ActiveSession(_ context.Context, tokenHash string, now time.Time) (*models.AdminSession, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, _ := find(r.db.Sessions, func(s *models.AdminSession) bool {
		return s.TokenHash == tokenHash && s.IsActive && s.ExpiresAt.After(now)
	})
	if s == nil {
		return nil, repository.ErrNotFound
	}
	out := *s
	return &out, nil
}

func (r *Admins) TouchSession(_ context.Context, tokenHash string, at time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if s, _ := find(r.db.Sessions, func(s *models.AdminSession) bool { return s.TokenHash == tokenHash }); s != nil {
		s.LastActivityAt = at
	}
	return nil
}

func (r *Admins) DeactivateSession(_ context.Context, tokenHash string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, s := range r.db.Sessions {
		if s.TokenHash == tokenHash {
			s.IsActive = false
		}
	}
	return nil
}

func (r *Admins) CleanupSessions(_ context.Context, now time.Time) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, s := range r.db.Sessions {
		if s.IsActive && !s.ExpiresAt.After(now) {
			s.IsActive = false
			n++
		}
	}
	return n, nil
}

// ─────────────────────────────────────────────────────────────
// Back office
// ─────────────────────────────────────────────────────────────

type Activity struct{ db *DB }

func (r *Activity) Create(_ context.Context, e *models.ActivityLog) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	_ = e.BeforeCreate(nil)
	e.CreatedAt = time.Now()
	stored := *e
	r.db.Activity = append(r.db.Activity, &stored)
	return nil
}

func (r *Activity) List(_ context.Context, q models.ActivityQuery) ([]models.ActivityLog, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.ActivityLog
	for _, e := range slices.Backward(r.db.Activity) {
		if q.AdminID != "" && e.AdminID.String() != q.AdminID {
			continue
		}
		if q.ResourceType != "" && e.ResourceType != q.ResourceType {
			continue
		}
		if q.Action != "" && e.Action != q.Action {
			continue
		}
		out = append(out, *e)
	}
	return page(out, q.Page, q.Limit, 50), len(out), nil
}

type Content struct{ db *DB }

func (r *Content) Sections(_ context.Context, activeOnly bool) ([]models.HomepageSection, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []models.HomepageSection{}
	for _, s := range r.db.Sections {
		if activeOnly && !s.Active {
			continue
		}
		out = append(out, *s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *Content) Upsert(_ context.Context, s *models.HomepageSection) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if existing, _ := find(r.db.Sections, func(o *models.HomepageSection) bool { return o.Key == s.Key }); existing != nil {
		s.ID, s.CreatedAt = existing.ID, existing.CreatedAt
		*existing = *s
		return nil
	}
	_ = s.BeforeCreate(nil)
	stored := *s
	r.db.Sections = append(r.db.Sections, &stored)
	return nil
}

func (r *Content) Delete(_ context.Context, key string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	_, i := find(r.db.Sections, func(s *models.HomepageSection) bool { return s.Key == key })
	if i < 0 {
		return repository.ErrNotFound
	}
	r.db.Sections = slices.Delete(r.db.Sections, i, i+1)
	return nil
}

type Contact struct{ db *DB }

func (r *Contact) Create(_ context.Context, m *models.ContactMessage) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	_ = m.BeforeCreate(nil)
	m.CreatedAt = time.Now()
	stored := *m
	r.db.Messages = append(r.db.Messages, &stored)
	return nil
}

func (r *Contact) List(_ context.Context, q models.ContactQuery) ([]models.ContactMessage, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.ContactMessage
	for _, m := range slices.Backward(r.db.Messages) {
		if q.Unread && m.Read {
			continue
		}
		out = append(out, *m)
	}
	return page(out, q.Page, q.Limit, 20), len(out), nil
}

func (r *Contact) MarkRead(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	m, _ := find(r.db.Messages, func(m *models.ContactMessage) bool { return m.ID == id })
	if m == nil {
		return repository.ErrNotFound
	}
	m.Read = true
	return nil
}

func (r *Contact) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	_, i := find(r.db.Messages, func(m *models.ContactMessage) bool { return m.ID == id })
	if i < 0 {
		return repository.ErrNotFound
	}
	r.db.Messages = slices.Delete(r.db.Messages, i, i+1)
	return nil
}

// ─────────────────────────────────────────────────────────────
// Seeding helpers
// ─────────────────────────────────────────────────────────────

func (db *DB) AddCategory(name string) *models.Category {
	c := &models.Category{Name: name}
	_ = c.BeforeCreate(nil)
	db.mu.Lock()
	defer db.mu.Unlock()
	db.Categories = append(db.Categories, c)
	return c
}

func (db *DB) AddManufacturer(name string) *models.Manufacturer {
	m := &models.Manufacturer{Name: name}
	_ = m.BeforeCreate(nil)
	db.mu.Lock()
	defer db.mu.Unlock()
	db.Manufacturers = append(db.Manufacturers, m)
	return m
}

// AddProduct stores an active product. cat and man may be nil.
func (db *DB) AddProduct(name string, price float64, stock int, cat *models.Category, man *models.Manufacturer) *models.Product {
	p := &models.Product{Name: name, Price: price, Stock: stock, Images: models.ProductImages{}}
	if cat != nil {
		p.CategoryID = &cat.ID
	}
	if man != nil {
		p.ManufacturerID = &man.ID
	}
	_ = p.BeforeCreate(nil)
	db.mu.Lock()
	defer db.mu.Unlock()
	db.Products = append(db.Products, p)
	return p
}

// Snapshots wires the fakes into the activity log loader.
func (db *DB) Snapshots() repository.Snapshots {
	return repository.Snapshots{
		Products:      db.ProductRepo(),
		Categories:    db.CategoryRepo(),
		Manufacturers: db.ManufacturerRepo(),
		Orders:        db.OrderRepo(),
		Content:       db.ContentRepo(),
	}
}
